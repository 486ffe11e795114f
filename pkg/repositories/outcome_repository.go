package repositories

import (
	"context"
	"fmt"

	"github.com/pucklab/puckcast/pkg/database"
	"github.com/pucklab/puckcast/pkg/models"
)

// OutcomeRepository provides data access for season outcome labels.
type OutcomeRepository interface {
	// Upsert writes an outcome; re-running resolution for a season updates
	// the existing row rather than duplicating it.
	Upsert(ctx context.Context, outcome *models.SeasonOutcome) error
	GetBySeason(ctx context.Context, seasonID int64) ([]models.SeasonOutcome, error)
}

type outcomeRepository struct {
	db *database.DB
}

// NewOutcomeRepository creates a new OutcomeRepository.
func NewOutcomeRepository(db *database.DB) OutcomeRepository {
	return &outcomeRepository{db: db}
}

var _ OutcomeRepository = (*outcomeRepository)(nil)

func (r *outcomeRepository) Upsert(ctx context.Context, outcome *models.SeasonOutcome) error {
	query := `
		INSERT INTO season_outcomes (season_id, team_id, made_playoffs, points)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (season_id, team_id) DO UPDATE SET
			made_playoffs = EXCLUDED.made_playoffs,
			points = EXCLUDED.points`

	_, err := r.db.Exec(ctx, query,
		outcome.SeasonID,
		outcome.TeamID,
		outcome.MadePlayoffs,
		outcome.Points,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert outcome for team %d season %d: %w",
			outcome.TeamID, outcome.SeasonID, err)
	}

	return nil
}

func (r *outcomeRepository) GetBySeason(ctx context.Context, seasonID int64) ([]models.SeasonOutcome, error) {
	query := `
		SELECT season_id, team_id, made_playoffs, points
		FROM season_outcomes
		WHERE season_id = $1
		ORDER BY points DESC, team_id`

	rows, err := r.db.Query(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []models.SeasonOutcome
	for rows.Next() {
		var o models.SeasonOutcome
		if err := rows.Scan(&o.SeasonID, &o.TeamID, &o.MadePlayoffs, &o.Points); err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		outcomes = append(outcomes, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating outcomes: %w", err)
	}

	return outcomes, nil
}
