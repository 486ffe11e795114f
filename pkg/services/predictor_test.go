package services

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pucklab/puckcast/pkg/models"
)

func writeArtifact(t *testing.T, artifact ModelArtifact) string {
	t.Helper()

	raw, err := json.Marshal(artifact)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func validArtifact() ModelArtifact {
	return ModelArtifact{
		Kind:     ModelKindLogistic,
		Features: models.FeatureNames[:],
		Weights:  []float64{0, 0.1, 1.5, 0.05, 0.01, 0.5, 0.02},
		Bias:     -2.0,
	}
}

func TestPredictor_NotLoaded(t *testing.T) {
	p := NewPredictor(zap.NewNop())

	assert.False(t, p.Loaded())
	assert.Equal(t, 0.0, p.Predict(models.FeatureVector{10, 15, 0.7, 15, 10.5, 0.6, 3}))
}

func TestPredictor_LoadFromFile(t *testing.T) {
	p := NewPredictor(zap.NewNop())
	require.NoError(t, p.LoadFromFile(writeArtifact(t, validArtifact())))
	assert.True(t, p.Loaded())
}

func TestPredictor_LoadMissingFile(t *testing.T) {
	p := NewPredictor(zap.NewNop())

	err := p.LoadFromFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.False(t, p.Loaded())
	assert.Equal(t, 0.0, p.Predict(models.FeatureVector{}))
}

func TestPredictor_LoadInvalidArtifact(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ModelArtifact)
	}{
		{"bad kind", func(a *ModelArtifact) { a.Kind = "random_forest" }},
		{"wrong weight count", func(a *ModelArtifact) { a.Weights = a.Weights[:3] }},
		{"wrong feature count", func(a *ModelArtifact) { a.Features = a.Features[:3] }},
		{"wrong feature order", func(a *ModelArtifact) {
			a.Features = append([]string{}, a.Features...)
			a.Features[0], a.Features[1] = a.Features[1], a.Features[0]
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artifact := validArtifact()
			tt.mutate(&artifact)

			p := NewPredictor(zap.NewNop())
			assert.Error(t, p.LoadFromFile(writeArtifact(t, artifact)))
			assert.False(t, p.Loaded())
		})
	}
}

func TestPredictor_LogisticBounds(t *testing.T) {
	p := NewPredictor(zap.NewNop())
	require.NoError(t, p.LoadFromFile(writeArtifact(t, validArtifact())))

	strong := p.Predict(models.FeatureVector{82, 120, 0.85, 80, 102, 0.9, 8})
	weak := p.Predict(models.FeatureVector{82, 40, 0.2, -90, 8, 0.1, -6})

	assert.Greater(t, strong, weak)
	assert.GreaterOrEqual(t, strong, 0.0)
	assert.LessOrEqual(t, strong, 1.0)
	assert.GreaterOrEqual(t, weak, 0.0)
	assert.LessOrEqual(t, weak, 1.0)
}

func TestPredictor_LinearClamped(t *testing.T) {
	artifact := validArtifact()
	artifact.Kind = ModelKindLinear
	artifact.Weights = []float64{0, 1, 0, 0, 0, 0, 0}
	artifact.Bias = 0

	p := NewPredictor(zap.NewNop())
	require.NoError(t, p.LoadFromFile(writeArtifact(t, artifact)))

	// Raw score of 120 must clamp to 1, raw -5 to 0.
	assert.Equal(t, 1.0, p.Predict(models.FeatureVector{0, 120, 0, 0, 0, 0, 0}))
	assert.Equal(t, 0.0, p.Predict(models.FeatureVector{0, -5, 0, 0, 0, 0, 0}))
}

func TestSigmoid(t *testing.T) {
	assert.InDelta(t, 0.5, sigmoid(0), 1e-9)
	assert.Equal(t, 1.0, sigmoid(100))
	assert.Equal(t, 0.0, sigmoid(-100))
	assert.Greater(t, sigmoid(2.0), sigmoid(1.0))
}
