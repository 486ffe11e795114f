package repositories

import (
	"context"
	"fmt"

	"github.com/pucklab/puckcast/pkg/database"
	"github.com/pucklab/puckcast/pkg/models"
)

// StandingsRepository provides data access for daily standings snapshots.
// Writes take a Querier so the ingestor can batch one date per transaction.
type StandingsRepository interface {
	// InsertIfAbsent writes a snapshot with first-seen-wins semantics:
	// a conflict on (date, team) is a no-op. Used for completed seasons so
	// re-ingestion never disturbs already-correct history. Reports whether
	// a row was written.
	InsertIfAbsent(ctx context.Context, q Querier, snap *models.DailySnapshot) (bool, error)
	// Upsert writes a snapshot with last-write-wins semantics: a conflict
	// overwrites the mutable stat fields. Used for the in-progress season,
	// where the same date's numbers evolve intraday.
	Upsert(ctx context.Context, q Querier, snap *models.DailySnapshot) (bool, error)
	// LatestForSeason returns every team's snapshot on the most recent
	// ingested date of the season, joined with franchise metadata. Empty
	// when the season has no data.
	LatestForSeason(ctx context.Context, seasonID int64) ([]models.TeamSnapshot, error)
}

type standingsRepository struct {
	db *database.DB
}

// NewStandingsRepository creates a new StandingsRepository.
func NewStandingsRepository(db *database.DB) StandingsRepository {
	return &standingsRepository{db: db}
}

var _ StandingsRepository = (*standingsRepository)(nil)

const insertSnapshotColumns = `
	(date, season_id, team_id, games_played, wins, losses, ot_losses,
	 points, goals_for, goals_against, l10_points, streak_code, streak_count)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

func snapshotArgs(s *models.DailySnapshot) []any {
	return []any{
		s.Date,
		s.SeasonID,
		s.TeamID,
		s.GamesPlayed,
		s.Wins,
		s.Losses,
		s.OTLosses,
		s.Points,
		s.GoalsFor,
		s.GoalsAgainst,
		s.L10Points,
		s.StreakCode,
		s.StreakCount,
	}
}

func (r *standingsRepository) InsertIfAbsent(ctx context.Context, q Querier, snap *models.DailySnapshot) (bool, error) {
	query := `INSERT INTO daily_standings ` + insertSnapshotColumns + `
		ON CONFLICT (date, team_id) DO NOTHING`

	tag, err := q.Exec(ctx, query, snapshotArgs(snap)...)
	if err != nil {
		return false, fmt.Errorf("failed to insert snapshot for team %d on %s: %w",
			snap.TeamID, snap.Date.Format("2006-01-02"), err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *standingsRepository) Upsert(ctx context.Context, q Querier, snap *models.DailySnapshot) (bool, error) {
	query := `INSERT INTO daily_standings ` + insertSnapshotColumns + `
		ON CONFLICT (date, team_id) DO UPDATE SET
			games_played = EXCLUDED.games_played,
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			ot_losses = EXCLUDED.ot_losses,
			points = EXCLUDED.points,
			goals_for = EXCLUDED.goals_for,
			goals_against = EXCLUDED.goals_against,
			l10_points = EXCLUDED.l10_points,
			streak_code = EXCLUDED.streak_code,
			streak_count = EXCLUDED.streak_count`

	tag, err := q.Exec(ctx, query, snapshotArgs(snap)...)
	if err != nil {
		return false, fmt.Errorf("failed to upsert snapshot for team %d on %s: %w",
			snap.TeamID, snap.Date.Format("2006-01-02"), err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *standingsRepository) LatestForSeason(ctx context.Context, seasonID int64) ([]models.TeamSnapshot, error) {
	query := `
		WITH latest AS (
			SELECT max(date) AS max_date
			FROM daily_standings
			WHERE season_id = $1
		)
		SELECT t.team_id, t.abbrev, t.name, t.conference, t.division, t.logo_url,
		       ds.date, ds.season_id, ds.games_played, ds.wins, ds.losses,
		       ds.ot_losses, ds.points, ds.goals_for, ds.goals_against,
		       ds.l10_points, ds.streak_code, ds.streak_count
		FROM daily_standings ds
		JOIN teams t ON ds.team_id = t.team_id
		JOIN latest l ON ds.date = l.max_date
		WHERE ds.season_id = $1
		ORDER BY ds.points DESC, t.abbrev`

	rows, err := r.db.Query(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest standings: %w", err)
	}
	defer rows.Close()

	var result []models.TeamSnapshot
	for rows.Next() {
		var ts models.TeamSnapshot
		err := rows.Scan(
			&ts.Team.ID,
			&ts.Team.Abbrev,
			&ts.Team.Name,
			&ts.Team.Conference,
			&ts.Team.Division,
			&ts.Team.LogoURL,
			&ts.Snapshot.Date,
			&ts.Snapshot.SeasonID,
			&ts.Snapshot.GamesPlayed,
			&ts.Snapshot.Wins,
			&ts.Snapshot.Losses,
			&ts.Snapshot.OTLosses,
			&ts.Snapshot.Points,
			&ts.Snapshot.GoalsFor,
			&ts.Snapshot.GoalsAgainst,
			&ts.Snapshot.L10Points,
			&ts.Snapshot.StreakCode,
			&ts.Snapshot.StreakCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan standings row: %w", err)
		}
		ts.Snapshot.TeamID = ts.Team.ID
		result = append(result, ts)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating standings rows: %w", err)
	}

	return result, nil
}
