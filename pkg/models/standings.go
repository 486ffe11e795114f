package models

import "time"

// Streak direction codes as reported upstream.
const (
	StreakWin    = "W"
	StreakLoss   = "L"
	StreakOTLoss = "OT"
)

// DailySnapshot is one team's cumulative stats as observed on a given date.
// Unique per (date, team); a date belongs to exactly one season.
type DailySnapshot struct {
	Date         time.Time `json:"date"`
	SeasonID     int64     `json:"season_id"`
	TeamID       int64     `json:"team_id"`
	GamesPlayed  int       `json:"games_played"`
	Wins         int       `json:"wins"`
	Losses       int       `json:"losses"`
	OTLosses     int       `json:"ot_losses"`
	Points       int       `json:"points"`
	GoalsFor     int       `json:"goals_for"`
	GoalsAgainst int       `json:"goals_against"`
	// L10Points is the point total over the trailing 10 games (2 per win,
	// 1 per overtime loss).
	L10Points int `json:"l10_points"`
	// StreakCode is W, L or OT; empty when unknown.
	StreakCode  string `json:"streak_code"`
	StreakCount int    `json:"streak_count"`
}

// SeasonOutcome records whether a team qualified for the playoffs in a
// completed season, with its final point total. Unique per (season, team) and
// re-derivable from corrected data.
type SeasonOutcome struct {
	SeasonID     int64 `json:"season_id"`
	TeamID       int64 `json:"team_id"`
	MadePlayoffs bool  `json:"made_playoffs"`
	Points       int   `json:"points"`
}

// TeamSnapshot joins a franchise with its snapshot on one date; the read
// model behind the standings endpoint.
type TeamSnapshot struct {
	Team     Team
	Snapshot DailySnapshot
}

// Season defines one ingestion window. Current marks the in-progress season,
// which switches the standings upsert from first-seen-wins to
// last-write-wins.
type Season struct {
	ID      int64
	Start   time.Time
	End     time.Time
	Current bool
}

// FeatureVector is the fixed-order model input derived from one snapshot.
// Never persisted; computed on demand. Order is part of the trained model's
// contract.
type FeatureVector [7]float64

// Feature indices into a FeatureVector.
const (
	FeatGamesPlayed = iota
	FeatPoints
	FeatWinPct
	FeatGoalDiff
	FeatPointsWinInteraction
	FeatL10Pct
	FeatStreak
)

// FeatureNames lists the canonical feature order, matching the artifact's
// declared features.
var FeatureNames = [7]string{
	"games_played",
	"points",
	"win_pct",
	"goal_diff",
	"points_win_interaction",
	"l10_pct",
	"streak",
}
