package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pucklab/puckcast/pkg/apperrors"
	"github.com/pucklab/puckcast/pkg/models"
	"github.com/pucklab/puckcast/pkg/nhl"
	"github.com/pucklab/puckcast/pkg/repositories"
	"github.com/pucklab/puckcast/pkg/teams"
)

// outcomeProbeDays bounds how far back from a season's declared end date the
// resolver searches for a date that still returns standings. Season end dates
// in configuration are approximate; the API returns an empty list for dates
// past the real final day.
const outcomeProbeDays = 7

// OutcomeService derives playoff qualification labels for completed seasons
// from the final standings' clinch indicators.
type OutcomeService struct {
	fetcher     StandingsFetcher
	teamRepo    repositories.TeamRepository
	outcomeRepo repositories.OutcomeRepository
	logger      *zap.Logger
}

// NewOutcomeService creates a new OutcomeService.
func NewOutcomeService(
	fetcher StandingsFetcher,
	teamRepo repositories.TeamRepository,
	outcomeRepo repositories.OutcomeRepository,
	logger *zap.Logger,
) *OutcomeService {
	return &OutcomeService{
		fetcher:     fetcher,
		teamRepo:    teamRepo,
		outcomeRepo: outcomeRepo,
		logger:      logger.Named("outcomes"),
	}
}

// Resolve labels every team of every given completed season: a non-empty
// clinch indicator on the season's final standings means the team made the
// playoffs. A season whose final standings cannot be located is skipped with
// a reason; resolution of the remaining seasons continues.
func (s *OutcomeService) Resolve(ctx context.Context, seasons []models.Season) (*models.OutcomeReport, error) {
	all, err := s.teamRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load team registry: %w", err)
	}
	registry := teams.NewRegistry(all)

	report := &models.OutcomeReport{RunID: uuid.New()}

	for _, season := range seasons {
		if season.Current {
			s.logger.Info("Season still in progress, skipping outcome resolution",
				zap.Int64("season_id", season.ID))
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}

		res := s.resolveSeason(ctx, registry, season)
		if res.Skipped() {
			report.SeasonsSkipped++
		} else {
			report.SeasonsResolved++
		}
		for _, row := range res.Rows {
			if row.Status == models.RowUpserted {
				report.RowsUpserted++
			} else {
				report.RowsSkipped++
			}
		}
		report.Seasons = append(report.Seasons, res)
	}

	s.logger.Info("Outcome resolution finished",
		zap.String("run_id", report.RunID.String()),
		zap.Int("seasons_resolved", report.SeasonsResolved),
		zap.Int("seasons_skipped", report.SeasonsSkipped),
		zap.Int("rows_upserted", report.RowsUpserted))
	return report, nil
}

func (s *OutcomeService) resolveSeason(ctx context.Context, registry *teams.Registry, season models.Season) models.DateResult {
	records, date, err := s.finalStandings(ctx, season)
	res := models.DateResult{Date: date, SeasonID: season.ID}
	if err != nil {
		res.SkipReason = err.Error()
		s.logger.Warn("Skipping season",
			zap.Int64("season_id", season.ID),
			zap.String("reason", res.SkipReason))
		return res
	}

	for _, rec := range records {
		abbrev := string(rec.Abbrev)
		teamID, err := registry.Resolve(abbrev)
		if err != nil {
			s.logger.Warn("Unknown team in final standings, skipping row",
				zap.String("abbrev", abbrev),
				zap.Int64("season_id", season.ID))
			res.Rows = append(res.Rows, models.RowOutcome{Abbrev: abbrev, Status: models.RowSkipped, Reason: err.Error()})
			continue
		}

		outcome := &models.SeasonOutcome{
			SeasonID:     season.ID,
			TeamID:       teamID,
			MadePlayoffs: rec.ClinchIndicator != "",
			Points:       rec.Points,
		}
		if err := s.outcomeRepo.Upsert(ctx, outcome); err != nil {
			res.Rows = append(res.Rows, models.RowOutcome{Abbrev: abbrev, Status: models.RowFailed, Reason: err.Error()})
			continue
		}
		res.Rows = append(res.Rows, models.RowOutcome{Abbrev: abbrev, Status: models.RowUpserted})
	}
	return res
}

// finalStandings fetches the standings on the season's end date, probing
// earlier days when the declared date is past the real final day and comes
// back empty.
func (s *OutcomeService) finalStandings(ctx context.Context, season models.Season) ([]nhl.TeamStanding, time.Time, error) {
	var lastErr error
	for back := 0; back <= outcomeProbeDays; back++ {
		date := season.End.AddDate(0, 0, -back)
		if date.Before(season.Start) {
			break
		}

		records, err := s.fetcher.Standings(ctx, date)
		if err != nil {
			lastErr = err
			continue
		}
		if len(records) > 0 {
			return records, date, nil
		}
	}

	if lastErr != nil {
		return nil, season.End, fmt.Errorf("no final standings near %s: %w",
			season.End.Format("2006-01-02"), lastErr)
	}
	return nil, season.End, fmt.Errorf("%w within %d days before %s",
		apperrors.ErrNoStandings, outcomeProbeDays, season.End.Format("2006-01-02"))
}
