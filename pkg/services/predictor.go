package services

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"go.uber.org/zap"

	"github.com/pucklab/puckcast/pkg/models"
)

// Model artifact kinds.
const (
	ModelKindLogistic = "logistic"
	ModelKindLinear   = "linear"
)

// ModelArtifact is the serialized trained classifier: a feature-ordered
// weight vector with a bias term. Training produces it offline; this process
// only ever reads it.
type ModelArtifact struct {
	Kind     string    `json:"kind"`
	Features []string  `json:"features"`
	Weights  []float64 `json:"weights"`
	Bias     float64   `json:"bias"`
}

// Predictor scores feature vectors against a loaded model artifact. It is
// constructed once at startup and handed to whatever serves requests; the
// zero state is "not loaded", in which every prediction is 0.0 so a missing
// artifact degrades the endpoint instead of failing it.
type Predictor struct {
	model  *ModelArtifact
	logger *zap.Logger
}

// NewPredictor creates an unloaded predictor.
func NewPredictor(logger *zap.Logger) *Predictor {
	return &Predictor{logger: logger.Named("predictor")}
}

// LoadFromFile reads and validates a JSON model artifact. On error the
// predictor stays unloaded.
func (p *Predictor) LoadFromFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read model artifact: %w", err)
	}

	var artifact ModelArtifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return fmt.Errorf("failed to parse model artifact: %w", err)
	}
	if err := validateArtifact(&artifact); err != nil {
		return fmt.Errorf("invalid model artifact %s: %w", path, err)
	}

	p.model = &artifact
	p.logger.Info("Model artifact loaded",
		zap.String("path", path),
		zap.String("kind", artifact.Kind),
		zap.Int("features", len(artifact.Features)))
	return nil
}

func validateArtifact(a *ModelArtifact) error {
	if a.Kind != ModelKindLogistic && a.Kind != ModelKindLinear {
		return fmt.Errorf("unsupported model kind %q", a.Kind)
	}
	if len(a.Weights) != len(models.FeatureNames) {
		return fmt.Errorf("expected %d weights, got %d", len(models.FeatureNames), len(a.Weights))
	}
	if len(a.Features) != len(models.FeatureNames) {
		return fmt.Errorf("expected %d features, got %d", len(models.FeatureNames), len(a.Features))
	}
	for i, name := range a.Features {
		if name != models.FeatureNames[i] {
			return fmt.Errorf("feature %d is %q, want %q", i, name, models.FeatureNames[i])
		}
	}
	return nil
}

// Loaded reports whether a model artifact is available.
func (p *Predictor) Loaded() bool {
	return p.model != nil
}

// Predict returns the playoff probability for one feature vector, clamped to
// [0, 1]. A logistic model yields the positive-class probability; a linear
// model's raw score is used directly. An unloaded predictor returns 0.0.
func (p *Predictor) Predict(f models.FeatureVector) float64 {
	if p.model == nil {
		return 0.0
	}

	score := p.model.Bias
	for i, w := range p.model.Weights {
		score += w * f[i]
	}

	if p.model.Kind == ModelKindLogistic {
		score = sigmoid(score)
	}

	return clamp01(score)
}

func sigmoid(z float64) float64 {
	if z > 20 {
		return 1.0
	}
	if z < -20 {
		return 0.0
	}
	return 1.0 / (1.0 + math.Exp(-z))
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0.0
	case v < 0.0:
		return 0.0
	case v > 1.0:
		return 1.0
	default:
		return v
	}
}
