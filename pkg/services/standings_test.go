package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pucklab/puckcast/pkg/models"
	"github.com/pucklab/puckcast/pkg/repositories"
)

type stubStandingsRepo struct {
	fakeStandingsRepo
	latest []models.TeamSnapshot
	err    error
}

func (s *stubStandingsRepo) LatestForSeason(ctx context.Context, seasonID int64) ([]models.TeamSnapshot, error) {
	return s.latest, s.err
}

var _ repositories.StandingsRepository = (*stubStandingsRepo)(nil)

func TestCurrentStandings_ScoresEveryTeam(t *testing.T) {
	repo := &stubStandingsRepo{
		latest: []models.TeamSnapshot{
			{
				Team: models.Team{ID: 6, Abbrev: "BOS"},
				Snapshot: models.DailySnapshot{
					TeamID: 6, GamesPlayed: 10, Wins: 7, Points: 15,
					GoalsFor: 35, GoalsAgainst: 20, L10Points: 12,
					StreakCode: "W", StreakCount: 3,
				},
			},
			{
				Team:     models.Team{ID: 10, Abbrev: "TOR"},
				Snapshot: models.DailySnapshot{TeamID: 10, GamesPlayed: 10, Wins: 3, Points: 7},
			},
		},
	}

	svc := NewStandingsService(repo, NewPredictor(zap.NewNop()), 20252026, zap.NewNop())

	scored, err := svc.CurrentStandings(context.Background())
	require.NoError(t, err)
	require.Len(t, scored, 2)

	// Unloaded predictor serves zero probabilities rather than failing.
	assert.Equal(t, 0.0, scored[0].Probability)
	assert.Equal(t, "BOS", scored[0].Team.Abbrev)
}

func TestCurrentStandings_EmptySeason(t *testing.T) {
	svc := NewStandingsService(&stubStandingsRepo{}, NewPredictor(zap.NewNop()), 20252026, zap.NewNop())

	scored, err := svc.CurrentStandings(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, scored)
	assert.Empty(t, scored)
}

func TestCurrentStandings_RepositoryError(t *testing.T) {
	repo := &stubStandingsRepo{err: errors.New("connection refused")}
	svc := NewStandingsService(repo, NewPredictor(zap.NewNop()), 20252026, zap.NewNop())

	_, err := svc.CurrentStandings(context.Background())
	require.Error(t, err)
}
