// Package teams maps upstream team abbreviations to stable internal ids.
package teams

import (
	"fmt"

	"github.com/pucklab/puckcast/pkg/apperrors"
	"github.com/pucklab/puckcast/pkg/models"
)

// relocations redirects retired codes of relocated franchises to the code
// the successor franchise uses today. Historical standings keep reporting
// the code in use at the time.
var relocations = map[string]string{
	"ARI": "UTA", // Arizona Coyotes -> Utah
	"PHX": "UTA", // Phoenix Coyotes -> Utah
}

// Registry resolves external team codes to internal team ids. Build one per
// run from the teams table; it is read-only afterwards.
type Registry struct {
	byAbbrev map[string]int64
}

// NewRegistry builds a registry over the given teams.
func NewRegistry(teams []models.Team) *Registry {
	byAbbrev := make(map[string]int64, len(teams))
	for _, t := range teams {
		byAbbrev[t.Abbrev] = t.ID
	}
	return &Registry{byAbbrev: byAbbrev}
}

// Normalize applies the relocation table to a raw upstream code.
func Normalize(code string) string {
	if current, ok := relocations[code]; ok {
		return current
	}
	return code
}

// Resolve maps an external code to an internal team id, applying relocation
// remapping first. Returns apperrors.ErrUnknownTeam when no franchise matches;
// callers skip the record and keep going, they never abort the batch.
func (r *Registry) Resolve(code string) (int64, error) {
	id, ok := r.byAbbrev[Normalize(code)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrUnknownTeam, code)
	}
	return id, nil
}

// Size returns the number of registered franchises.
func (r *Registry) Size() int {
	return len(r.byAbbrev)
}
