package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pucklab/puckcast/pkg/models"
	"github.com/pucklab/puckcast/pkg/testhelpers"
)

func seedTeams(t *testing.T, tdb *testhelpers.TestDB) {
	t.Helper()

	repo := NewTeamRepository(tdb.DB)
	for _, team := range []models.Team{
		{ID: 6, Abbrev: "BOS", Name: "Boston Bruins", Conference: "Eastern", Division: "Atlantic"},
		{ID: 10, Abbrev: "TOR", Name: "Toronto Maple Leafs", Conference: "Eastern", Division: "Atlantic"},
	} {
		require.NoError(t, repo.Upsert(context.Background(), &team))
	}
}

func snapshot(teamID int64, date time.Time, points int) *models.DailySnapshot {
	return &models.DailySnapshot{
		Date:         date,
		SeasonID:     20222023,
		TeamID:       teamID,
		GamesPlayed:  10,
		Wins:         points / 2,
		Points:       points,
		GoalsFor:     30,
		GoalsAgainst: 20,
		L10Points:    12,
		StreakCode:   "W",
		StreakCount:  2,
	}
}

func TestStandingsRepository_InsertIfAbsent(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.TruncateAll(t)
	seedTeams(t, tdb)

	ctx := context.Background()
	repo := NewStandingsRepository(tdb.DB)
	date := time.Date(2022, 10, 7, 0, 0, 0, 0, time.UTC)

	written, err := repo.InsertIfAbsent(ctx, tdb.DB, snapshot(6, date, 10))
	require.NoError(t, err)
	assert.True(t, written)

	// A second write for the same (date, team) must not disturb the first.
	written, err = repo.InsertIfAbsent(ctx, tdb.DB, snapshot(6, date, 99))
	require.NoError(t, err)
	assert.False(t, written)

	latest, err := repo.LatestForSeason(ctx, 20222023)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, 10, latest[0].Snapshot.Points)
}

func TestStandingsRepository_Upsert(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.TruncateAll(t)
	seedTeams(t, tdb)

	ctx := context.Background()
	repo := NewStandingsRepository(tdb.DB)
	date := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	_, err := repo.Upsert(ctx, tdb.DB, snapshot(6, date, 40))
	require.NoError(t, err)

	// A rerun on the same date refreshes the numbers.
	written, err := repo.Upsert(ctx, tdb.DB, snapshot(6, date, 42))
	require.NoError(t, err)
	assert.True(t, written)

	latest, err := repo.LatestForSeason(ctx, 20222023)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, 42, latest[0].Snapshot.Points)
}

func TestStandingsRepository_LatestForSeason(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.TruncateAll(t)
	seedTeams(t, tdb)

	ctx := context.Background()
	repo := NewStandingsRepository(tdb.DB)
	older := time.Date(2022, 10, 7, 0, 0, 0, 0, time.UTC)
	newer := older.AddDate(0, 0, 7)

	for _, s := range []*models.DailySnapshot{
		snapshot(6, older, 4),
		snapshot(10, older, 2),
		snapshot(6, newer, 8),
		snapshot(10, newer, 10),
	} {
		_, err := repo.InsertIfAbsent(ctx, tdb.DB, s)
		require.NoError(t, err)
	}

	latest, err := repo.LatestForSeason(ctx, 20222023)
	require.NoError(t, err)
	require.Len(t, latest, 2, "only the most recent date's rows")

	// Ordered by points descending, joined with team metadata.
	assert.Equal(t, "TOR", latest[0].Team.Abbrev)
	assert.Equal(t, 10, latest[0].Snapshot.Points)
	assert.Equal(t, "BOS", latest[1].Team.Abbrev)
	assert.Equal(t, newer, latest[1].Snapshot.Date.UTC())
}

func TestStandingsRepository_LatestForSeasonEmpty(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.TruncateAll(t)

	latest, err := NewStandingsRepository(tdb.DB).LatestForSeason(context.Background(), 19992000)
	require.NoError(t, err)
	assert.Empty(t, latest)
}

func TestStandingsRepository_TransactionRollback(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.TruncateAll(t)
	seedTeams(t, tdb)

	ctx := context.Background()
	repo := NewStandingsRepository(tdb.DB)
	date := time.Date(2022, 11, 4, 0, 0, 0, 0, time.UTC)

	tx, err := tdb.DB.Begin(ctx)
	require.NoError(t, err)

	_, err = repo.InsertIfAbsent(ctx, tx, snapshot(6, date, 12))
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))

	latest, err := repo.LatestForSeason(ctx, 20222023)
	require.NoError(t, err)
	assert.Empty(t, latest, "rolled back writes must not be visible")
}
