package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pucklab/puckcast/pkg/nhl"
)

type fakeDirectory struct {
	roster     []nhl.RosterTeam
	rosterErr  error
	current    []nhl.TeamStanding
	currentErr error
}

func (f *fakeDirectory) Teams(ctx context.Context) ([]nhl.RosterTeam, error) {
	return f.roster, f.rosterErr
}

func (f *fakeDirectory) StandingsNow(ctx context.Context) ([]nhl.TeamStanding, error) {
	return f.current, f.currentErr
}

func TestSeedTeams_EnrichesActiveFranchises(t *testing.T) {
	dir := &fakeDirectory{
		roster: []nhl.RosterTeam{
			{ID: 6, FullName: "Boston Bruins", TriCode: "BOS"},
			{ID: 35, FullName: "Atlanta Thrashers", TriCode: "ATL"},
			{ID: 0, FullName: "Unnamed", TriCode: ""},
		},
		current: []nhl.TeamStanding{
			{Abbrev: "BOS", ConferenceName: "Eastern", DivisionName: "Atlantic", LogoURL: "https://assets/BOS.svg"},
		},
	}
	repo := &fakeTeamRepo{}

	count, err := NewSeedService(dir, repo, zap.NewNop()).SeedTeams(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, count, "entries without an abbreviation are dropped")
	require.Len(t, repo.teams, 2)

	assert.Equal(t, "Eastern", repo.teams[0].Conference)
	assert.Equal(t, "Atlantic", repo.teams[0].Division)
	assert.Equal(t, "https://assets/BOS.svg", repo.teams[0].LogoURL)

	// Defunct franchises are kept for historical ingestion, with placeholder
	// metadata.
	assert.Equal(t, "ATL", repo.teams[1].Abbrev)
	assert.Equal(t, "Unknown", repo.teams[1].Conference)
}

func TestSeedTeams_MetadataFetchFailureDegrades(t *testing.T) {
	dir := &fakeDirectory{
		roster:     []nhl.RosterTeam{{ID: 6, FullName: "Boston Bruins", TriCode: "BOS"}},
		currentErr: errors.New("503"),
	}
	repo := &fakeTeamRepo{}

	count, err := NewSeedService(dir, repo, zap.NewNop()).SeedTeams(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, count)
	assert.Equal(t, "Unknown", repo.teams[0].Conference)
}

func TestSeedTeams_RosterFetchFailureFails(t *testing.T) {
	dir := &fakeDirectory{rosterErr: errors.New("timeout")}

	_, err := NewSeedService(dir, &fakeTeamRepo{}, zap.NewNop()).SeedTeams(context.Background())
	require.Error(t, err)
}
