package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pucklab/puckcast/pkg/models"
	"github.com/pucklab/puckcast/pkg/testhelpers"
)

func TestTeamRepository_UpsertAndGetAll(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.TruncateAll(t)

	ctx := context.Background()
	repo := NewTeamRepository(tdb.DB)

	require.NoError(t, repo.Upsert(ctx, &models.Team{
		ID: 53, Abbrev: "ARI", Name: "Arizona Coyotes", Conference: "Western", Division: "Central",
	}))
	require.NoError(t, repo.Upsert(ctx, &models.Team{
		ID: 6, Abbrev: "BOS", Name: "Boston Bruins", Conference: "Eastern", Division: "Atlantic",
	}))

	teams, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "ARI", teams[0].Abbrev, "ordered by abbreviation")
	assert.Equal(t, "BOS", teams[1].Abbrev)
}

func TestTeamRepository_UpsertKeepsIDOnRename(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.TruncateAll(t)

	ctx := context.Background()
	repo := NewTeamRepository(tdb.DB)

	require.NoError(t, repo.Upsert(ctx, &models.Team{
		ID: 68, Abbrev: "UTA", Name: "Utah Hockey Club", Conference: "Western", Division: "Central",
	}))
	// Franchise rebrand: same id, new name.
	require.NoError(t, repo.Upsert(ctx, &models.Team{
		ID: 68, Abbrev: "UTA", Name: "Utah Mammoth", Conference: "Western", Division: "Central",
	}))

	teams, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "Utah Mammoth", teams[0].Name)
}
