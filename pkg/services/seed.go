package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pucklab/puckcast/pkg/models"
	"github.com/pucklab/puckcast/pkg/nhl"
	"github.com/pucklab/puckcast/pkg/repositories"
)

// unknownConference fills metadata for franchises absent from the current
// standings (defunct or relocated ones).
const unknownConference = "Unknown"

// TeamDirectory is the slice of the NHL client the seeder needs.
type TeamDirectory interface {
	Teams(ctx context.Context) ([]nhl.RosterTeam, error)
	StandingsNow(ctx context.Context) ([]nhl.TeamStanding, error)
}

// SeedService populates the teams table from the league's franchise listing,
// enriched with conference, division and logo metadata from the current
// standings where available.
type SeedService struct {
	directory TeamDirectory
	teamRepo  repositories.TeamRepository
	logger    *zap.Logger
}

// NewSeedService creates a new SeedService.
func NewSeedService(directory TeamDirectory, teamRepo repositories.TeamRepository, logger *zap.Logger) *SeedService {
	return &SeedService{
		directory: directory,
		teamRepo:  teamRepo,
		logger:    logger.Named("seed"),
	}
}

// SeedTeams upserts every franchise with a usable abbreviation. Metadata
// enrichment is best effort; a failure to fetch current standings degrades
// to "Unknown" placeholders rather than failing the seed.
func (s *SeedService) SeedTeams(ctx context.Context) (int, error) {
	roster, err := s.directory.Teams(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch franchise listing: %w", err)
	}

	meta := map[string]nhl.TeamStanding{}
	current, err := s.directory.StandingsNow(ctx)
	if err != nil {
		s.logger.Warn("Current standings unavailable, seeding without metadata", zap.Error(err))
	} else {
		for _, rec := range current {
			meta[string(rec.Abbrev)] = rec
		}
	}

	seeded := 0
	for _, rt := range roster {
		if rt.TriCode == "" {
			continue
		}

		team := &models.Team{
			ID:         rt.ID,
			Abbrev:     rt.TriCode,
			Name:       rt.FullName,
			Conference: unknownConference,
			Division:   unknownConference,
		}
		if m, ok := meta[rt.TriCode]; ok {
			team.Conference = m.ConferenceName
			team.Division = m.DivisionName
			team.LogoURL = m.LogoURL
		}

		if err := s.teamRepo.Upsert(ctx, team); err != nil {
			return seeded, err
		}
		seeded++
	}

	s.logger.Info("Teams seeded", zap.Int("count", seeded))
	return seeded, nil
}
