package services

import (
	"math"

	"github.com/pucklab/puckcast/pkg/models"
)

// l10MaxPoints is the point ceiling over a 10 game window (2 per game).
const l10MaxPoints = 20.0

// DeriveFeatures computes the model input vector from one snapshot. Pure
// function, no I/O. The order matches models.FeatureNames and the trained
// artifact's contract.
//
// Ratios over games played are defined as zero when no games have been
// played; every value is scrubbed of NaN/Inf before use so a malformed
// snapshot can never poison the model input.
func DeriveFeatures(s models.DailySnapshot) models.FeatureVector {
	var f models.FeatureVector

	f[models.FeatGamesPlayed] = float64(s.GamesPlayed)
	f[models.FeatPoints] = float64(s.Points)

	if s.GamesPlayed > 0 {
		f[models.FeatWinPct] = float64(s.Wins) / float64(s.GamesPlayed)
	}

	f[models.FeatGoalDiff] = float64(s.GoalsFor - s.GoalsAgainst)
	f[models.FeatPointsWinInteraction] = float64(s.Points) * f[models.FeatWinPct]
	f[models.FeatL10Pct] = float64(s.L10Points) / l10MaxPoints
	f[models.FeatStreak] = streakNumeric(s.StreakCode, s.StreakCount)

	for i, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			f[i] = 0
		}
	}

	return f
}

// streakNumeric encodes a streak as a signed length: positive for a winning
// streak, negative for losing or overtime-loss streaks, zero for no streak or
// an unrecognized code.
func streakNumeric(code string, count int) float64 {
	switch code {
	case models.StreakWin:
		return float64(count)
	case models.StreakLoss, models.StreakOTLoss:
		return -float64(count)
	default:
		return 0
	}
}
