package repositories

import (
	"context"
	"fmt"

	"github.com/pucklab/puckcast/pkg/database"
	"github.com/pucklab/puckcast/pkg/models"
)

// TeamRepository provides data access for franchises.
type TeamRepository interface {
	Upsert(ctx context.Context, team *models.Team) error
	GetAll(ctx context.Context) ([]models.Team, error)
}

type teamRepository struct {
	db *database.DB
}

// NewTeamRepository creates a new TeamRepository.
func NewTeamRepository(db *database.DB) TeamRepository {
	return &teamRepository{db: db}
}

var _ TeamRepository = (*teamRepository)(nil)

// Upsert inserts a franchise or refreshes its mutable metadata. The stable
// team id is the conflict key; the abbreviation is unique so a relocated
// franchise keeps its id when its code changes.
func (r *teamRepository) Upsert(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (team_id, abbrev, name, conference, division, logo_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (team_id) DO UPDATE SET
			abbrev = EXCLUDED.abbrev,
			name = EXCLUDED.name,
			conference = EXCLUDED.conference,
			division = EXCLUDED.division,
			logo_url = EXCLUDED.logo_url`

	_, err := r.db.Exec(ctx, query,
		team.ID,
		team.Abbrev,
		team.Name,
		team.Conference,
		team.Division,
		team.LogoURL,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert team %s: %w", team.Abbrev, err)
	}

	return nil
}

// GetAll returns every franchise, ordered by abbreviation.
func (r *teamRepository) GetAll(ctx context.Context) ([]models.Team, error) {
	query := `
		SELECT team_id, abbrev, name, conference, division, logo_url
		FROM teams
		ORDER BY abbrev`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Abbrev, &t.Name, &t.Conference, &t.Division, &t.LogoURL); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teams: %w", err)
	}

	return teams, nil
}
