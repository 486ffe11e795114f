package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pucklab/puckcast/pkg/models"
)

// seasonsFile mirrors the on-disk season calendar.
type seasonsFile struct {
	Seasons []seasonEntry `yaml:"seasons"`
}

type seasonEntry struct {
	ID      int64  `yaml:"id"`
	Start   string `yaml:"start"`
	End     string `yaml:"end"`
	Current bool   `yaml:"current"`
}

// LoadSeasons reads the season calendar from a YAML file. Dates use
// YYYY-MM-DD. For the season marked current, an empty end date means
// "yesterday" so a live run always stops short of today's in-flight games.
func LoadSeasons(path string) ([]models.Season, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seasons file: %w", err)
	}

	var f seasonsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seasons file: %w", err)
	}
	if len(f.Seasons) == 0 {
		return nil, fmt.Errorf("seasons file %s defines no seasons", path)
	}

	seasons := make([]models.Season, 0, len(f.Seasons))
	for _, e := range f.Seasons {
		s := models.Season{ID: e.ID, Current: e.Current}

		s.Start, err = time.Parse("2006-01-02", e.Start)
		if err != nil {
			return nil, fmt.Errorf("season %d: invalid start date %q: %w", e.ID, e.Start, err)
		}

		if e.End == "" && e.Current {
			s.End = time.Now().AddDate(0, 0, -1).Truncate(24 * time.Hour)
		} else {
			s.End, err = time.Parse("2006-01-02", e.End)
			if err != nil {
				return nil, fmt.Errorf("season %d: invalid end date %q: %w", e.ID, e.End, err)
			}
		}

		if s.End.Before(s.Start) {
			return nil, fmt.Errorf("season %d: end %s precedes start %s", e.ID, e.End, e.Start)
		}

		seasons = append(seasons, s)
	}

	return seasons, nil
}
