package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pucklab/puckcast/pkg/models"
	"github.com/pucklab/puckcast/pkg/repositories"
)

// ScoredStanding pairs a team's latest snapshot with its predicted playoff
// probability.
type ScoredStanding struct {
	Team        models.Team
	Snapshot    models.DailySnapshot
	Probability float64
}

// StandingsService serves the current-season standings read model.
type StandingsService interface {
	// CurrentStandings returns every team's most recent snapshot for the
	// configured season, scored by the predictor and ordered by points
	// descending. Empty, not an error, when nothing has been ingested yet.
	CurrentStandings(ctx context.Context) ([]ScoredStanding, error)
}

type standingsService struct {
	repo      repositories.StandingsRepository
	predictor *Predictor
	seasonID  int64
	logger    *zap.Logger
}

// NewStandingsService creates a new StandingsService for one season.
func NewStandingsService(
	repo repositories.StandingsRepository,
	predictor *Predictor,
	seasonID int64,
	logger *zap.Logger,
) StandingsService {
	return &standingsService{
		repo:      repo,
		predictor: predictor,
		seasonID:  seasonID,
		logger:    logger.Named("standings"),
	}
}

var _ StandingsService = (*standingsService)(nil)

func (s *standingsService) CurrentStandings(ctx context.Context) ([]ScoredStanding, error) {
	snaps, err := s.repo.LatestForSeason(ctx, s.seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest standings: %w", err)
	}

	scored := make([]ScoredStanding, 0, len(snaps))
	for _, ts := range snaps {
		scored = append(scored, ScoredStanding{
			Team:        ts.Team,
			Snapshot:    ts.Snapshot,
			Probability: s.predictor.Predict(DeriveFeatures(ts.Snapshot)),
		})
	}
	return scored, nil
}
