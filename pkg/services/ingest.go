package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/pucklab/puckcast/pkg/apperrors"
	"github.com/pucklab/puckcast/pkg/models"
	"github.com/pucklab/puckcast/pkg/nhl"
	"github.com/pucklab/puckcast/pkg/repositories"
	"github.com/pucklab/puckcast/pkg/teams"
)

// ingestStep is the sampling interval when walking a season's date range.
// One snapshot per week keeps the row volume manageable without losing the
// trajectory shape.
const ingestStep = 7 * 24 * time.Hour

// StandingsFetcher is the slice of the NHL client the ingestor needs.
type StandingsFetcher interface {
	Standings(ctx context.Context, date time.Time) ([]nhl.TeamStanding, error)
}

// TxBeginner opens transactions; satisfied by *database.DB.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// IngestService walks season date ranges, fetches standings snapshots and
// persists them one date per transaction.
type IngestService struct {
	db            TxBeginner
	fetcher       StandingsFetcher
	standingsRepo repositories.StandingsRepository
	teamRepo      repositories.TeamRepository
	logger        *zap.Logger
}

// NewIngestService creates a new IngestService.
func NewIngestService(
	db TxBeginner,
	fetcher StandingsFetcher,
	standingsRepo repositories.StandingsRepository,
	teamRepo repositories.TeamRepository,
	logger *zap.Logger,
) *IngestService {
	return &IngestService{
		db:            db,
		fetcher:       fetcher,
		standingsRepo: standingsRepo,
		teamRepo:      teamRepo,
		logger:        logger.Named("ingest"),
	}
}

// Ingest walks each season from its start to its end in weekly steps and
// persists a snapshot per team per sampled date. Completed seasons are
// written first-seen-wins; the current season last-write-wins, so re-running
// it refreshes today's numbers.
//
// A date that cannot be fetched or committed is skipped with a recorded
// reason and the walk continues; only context cancellation or an unusable
// team registry aborts the run.
func (s *IngestService) Ingest(ctx context.Context, seasons []models.Season) (*models.IngestReport, error) {
	registry, err := s.loadRegistry(ctx)
	if err != nil {
		return nil, err
	}

	report := &models.IngestReport{
		RunID:     uuid.New(),
		StartedAt: time.Now().UTC(),
	}

	for _, season := range seasons {
		s.logger.Info("Ingesting season",
			zap.Int64("season_id", season.ID),
			zap.Time("start", season.Start),
			zap.Time("end", season.End),
			zap.Bool("current", season.Current))

		for date := season.Start; !date.After(season.End); date = date.Add(ingestStep) {
			if err := ctx.Err(); err != nil {
				report.FinishedAt = time.Now().UTC()
				return report, err
			}
			report.AddDate(s.ingestDate(ctx, registry, season, date))
		}
	}

	report.FinishedAt = time.Now().UTC()
	s.logger.Info("Ingestion run finished",
		zap.String("run_id", report.RunID.String()),
		zap.Int("dates_processed", report.DatesProcessed),
		zap.Int("dates_skipped", report.DatesSkipped),
		zap.Int("rows_upserted", report.RowsUpserted),
		zap.Int("rows_skipped", report.RowsSkipped))
	return report, nil
}

func (s *IngestService) loadRegistry(ctx context.Context) (*teams.Registry, error) {
	all, err := s.teamRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load team registry: %w", err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("teams table is empty, run seed-teams first")
	}
	return teams.NewRegistry(all), nil
}

// ingestDate fetches and persists one date inside a single transaction.
// Any persistence error rolls back the whole date so a partially written
// date never exists.
func (s *IngestService) ingestDate(ctx context.Context, registry *teams.Registry, season models.Season, date time.Time) models.DateResult {
	res := models.DateResult{Date: date, SeasonID: season.ID}

	records, err := s.fetcher.Standings(ctx, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrRateLimited) {
			res.SkipReason = fmt.Sprintf("rate limit retries exhausted: %v", err)
		} else {
			res.SkipReason = fmt.Sprintf("fetch failed: %v", err)
		}
		s.logger.Warn("Skipping date",
			zap.Time("date", date),
			zap.Int64("season_id", season.ID),
			zap.String("reason", res.SkipReason))
		return res
	}
	if len(records) == 0 {
		// Off-season dates return an empty standings list; nothing to write.
		return res
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		res.SkipReason = fmt.Sprintf("failed to begin transaction: %v", err)
		return res
	}
	defer tx.Rollback(ctx)

	for _, rec := range records {
		row, err := s.persistRecord(ctx, tx, registry, season, date, rec)
		if err != nil {
			res.Rows = nil
			res.SkipReason = fmt.Sprintf("persistence failed, date rolled back: %v", err)
			s.logger.Warn("Rolling back date",
				zap.Time("date", date),
				zap.Int64("season_id", season.ID),
				zap.Error(err))
			return res
		}
		res.Rows = append(res.Rows, row)
	}

	if err := tx.Commit(ctx); err != nil {
		res.Rows = nil
		res.SkipReason = fmt.Sprintf("failed to commit: %v", err)
		return res
	}
	return res
}

// persistRecord writes one team's snapshot. An unresolvable abbreviation is
// a per-row skip, never an error; a storage failure bubbles up to roll back
// the date.
func (s *IngestService) persistRecord(
	ctx context.Context,
	q repositories.Querier,
	registry *teams.Registry,
	season models.Season,
	date time.Time,
	rec nhl.TeamStanding,
) (models.RowOutcome, error) {
	abbrev := string(rec.Abbrev)
	if abbrev == "" {
		return models.RowOutcome{Status: models.RowSkipped, Reason: "missing team abbreviation"}, nil
	}

	teamID, err := registry.Resolve(abbrev)
	if err != nil {
		s.logger.Warn("Unknown team in standings, skipping row",
			zap.String("abbrev", abbrev),
			zap.Time("date", date))
		return models.RowOutcome{Abbrev: abbrev, Status: models.RowSkipped, Reason: err.Error()}, nil
	}

	snap := buildSnapshot(season.ID, teamID, date, rec)

	var written bool
	if season.Current {
		written, err = s.standingsRepo.Upsert(ctx, q, snap)
	} else {
		written, err = s.standingsRepo.InsertIfAbsent(ctx, q, snap)
	}
	if err != nil {
		return models.RowOutcome{}, err
	}
	if !written {
		return models.RowOutcome{Abbrev: abbrev, Status: models.RowSkipped, Reason: "already ingested"}, nil
	}
	return models.RowOutcome{Abbrev: abbrev, Status: models.RowUpserted}, nil
}

// buildSnapshot maps an upstream standings record to the stored snapshot.
// The last-10 point total is derived here since the API reports the window
// as separate win/loss counts.
func buildSnapshot(seasonID, teamID int64, date time.Time, rec nhl.TeamStanding) *models.DailySnapshot {
	return &models.DailySnapshot{
		Date:         date,
		SeasonID:     seasonID,
		TeamID:       teamID,
		GamesPlayed:  rec.GamesPlayed,
		Wins:         rec.Wins,
		Losses:       rec.Losses,
		OTLosses:     rec.OTLosses,
		Points:       rec.Points,
		GoalsFor:     rec.GoalsFor,
		GoalsAgainst: rec.GoalsAgainst,
		L10Points:    2*rec.L10Wins + rec.L10OTLosses,
		StreakCode:   rec.StreakCode,
		StreakCount:  rec.StreakCount,
	}
}
