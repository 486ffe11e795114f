package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pucklab/puckcast/pkg/models"
)

func TestDeriveFeatures_MidSeasonSnapshot(t *testing.T) {
	snap := models.DailySnapshot{
		GamesPlayed:  10,
		Wins:         7,
		Points:       15,
		GoalsFor:     35,
		GoalsAgainst: 20,
		L10Points:    12,
		StreakCode:   models.StreakWin,
		StreakCount:  3,
	}

	f := DeriveFeatures(snap)

	assert.Equal(t, 10.0, f[models.FeatGamesPlayed])
	assert.Equal(t, 15.0, f[models.FeatPoints])
	assert.InDelta(t, 0.7, f[models.FeatWinPct], 1e-9)
	assert.Equal(t, 15.0, f[models.FeatGoalDiff])
	assert.InDelta(t, 10.5, f[models.FeatPointsWinInteraction], 1e-9)
	assert.InDelta(t, 0.6, f[models.FeatL10Pct], 1e-9)
	assert.Equal(t, 3.0, f[models.FeatStreak])
}

func TestDeriveFeatures_NoGamesPlayed(t *testing.T) {
	f := DeriveFeatures(models.DailySnapshot{})

	for i, v := range f {
		assert.Equal(t, 0.0, v, "feature %s should be zero", models.FeatureNames[i])
	}
}

func TestDeriveFeatures_NegativeGoalDiff(t *testing.T) {
	snap := models.DailySnapshot{
		GamesPlayed:  20,
		Wins:         5,
		Points:       12,
		GoalsFor:     40,
		GoalsAgainst: 70,
	}

	f := DeriveFeatures(snap)

	assert.Equal(t, -30.0, f[models.FeatGoalDiff])
	assert.InDelta(t, 0.25, f[models.FeatWinPct], 1e-9)
}

func TestStreakNumeric(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		count int
		want  float64
	}{
		{"winning streak", models.StreakWin, 5, 5},
		{"losing streak", models.StreakLoss, 4, -4},
		{"overtime loss streak", models.StreakOTLoss, 2, -2},
		{"unknown code", "X", 7, 0},
		{"empty code", "", 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, streakNumeric(tt.code, tt.count))
		})
	}
}
