package nhl

import "encoding/json"

// Tricode is a team abbreviation as returned by the standings API. Historical
// responses nest it as {"default": "BOS"} while some endpoints return a flat
// string; both decode to the bare code.
type Tricode string

// UnmarshalJSON accepts either a flat string or a localized object with a
// "default" key. Anything else decodes to the empty code, which callers treat
// as a skippable record.
func (t *Tricode) UnmarshalJSON(data []byte) error {
	var flat string
	if err := json.Unmarshal(data, &flat); err == nil {
		*t = Tricode(flat)
		return nil
	}

	var nested struct {
		Default string `json:"default"`
	}
	if err := json.Unmarshal(data, &nested); err == nil {
		*t = Tricode(nested.Default)
		return nil
	}

	*t = ""
	return nil
}

// TeamStanding is one team's row in a standings-by-date response. Numeric
// fields missing upstream decode to zero; nothing here is allowed to fail a
// whole date.
type TeamStanding struct {
	Abbrev          Tricode `json:"teamAbbrev"`
	Name            Tricode `json:"teamName"`
	GamesPlayed     int     `json:"gamesPlayed"`
	Wins            int     `json:"wins"`
	Losses          int     `json:"losses"`
	OTLosses        int     `json:"otLosses"`
	Points          int     `json:"points"`
	GoalsFor        int     `json:"goalFor"`
	GoalsAgainst    int     `json:"goalAgainst"`
	L10Wins         int     `json:"l10Wins"`
	L10Losses       int     `json:"l10Losses"`
	L10OTLosses     int     `json:"l10OtLosses"`
	StreakCode      string  `json:"streakCode"`
	StreakCount     int     `json:"streakCount"`
	ClinchIndicator string  `json:"clinchIndicator"`
	ConferenceName  string  `json:"conferenceName"`
	DivisionName    string  `json:"divisionName"`
	LogoURL         string  `json:"teamLogo"`
}

type standingsResponse struct {
	Standings []TeamStanding `json:"standings"`
}

// RosterTeam is one entry in the teams listing endpoint, which carries the
// league's stable franchise ids.
type RosterTeam struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	TriCode  string `json:"triCode"`
}

type rosterResponse struct {
	Data []RosterTeam `json:"data"`
}
