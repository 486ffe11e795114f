// Package models contains domain types for puckcast.
package models

// Team is a franchise keyed by its stable internal id. The abbreviation is
// the upstream tricode currently assigned to the franchise; retired codes of
// relocated franchises are redirected by the team registry, never stored.
type Team struct {
	ID         int64  `json:"team_id"`
	Abbrev     string `json:"abbrev"`
	Name       string `json:"name"`
	Conference string `json:"conference"`
	Division   string `json:"division"`
	LogoURL    string `json:"logo_url"`
}
