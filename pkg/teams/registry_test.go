package teams

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pucklab/puckcast/pkg/apperrors"
	"github.com/pucklab/puckcast/pkg/models"
)

func testRegistry() *Registry {
	return NewRegistry([]models.Team{
		{ID: 6, Abbrev: "BOS"},
		{ID: 10, Abbrev: "TOR"},
		{ID: 68, Abbrev: "UTA"},
	})
}

func TestResolve_KnownTeam(t *testing.T) {
	id, err := testRegistry().Resolve("BOS")
	require.NoError(t, err)
	assert.Equal(t, int64(6), id)
}

func TestResolve_RelocatedFranchise(t *testing.T) {
	r := testRegistry()

	for _, code := range []string{"ARI", "PHX"} {
		id, err := r.Resolve(code)
		require.NoError(t, err, "code %s", code)
		assert.Equal(t, int64(68), id, "both Coyotes eras map to the Utah franchise")
	}
}

func TestResolve_UnknownTeam(t *testing.T) {
	_, err := testRegistry().Resolve("ZZZ")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnknownTeam)
	assert.Contains(t, err.Error(), "ZZZ")
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "UTA", Normalize("ARI"))
	assert.Equal(t, "UTA", Normalize("PHX"))
	assert.Equal(t, "BOS", Normalize("BOS"))
}

func TestSize(t *testing.T) {
	assert.Equal(t, 3, testRegistry().Size())
}
