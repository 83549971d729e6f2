// Package config loads engine tuning from YAML files. Everything has a
// built-in default, so configuration files only need to state what they
// change.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/taxometer/pkg/taxometer/category"
	"github.com/cognicore/taxometer/pkg/taxometer/convergence"
	"github.com/cognicore/taxometer/pkg/taxometer/grading"
	"github.com/cognicore/taxometer/pkg/taxometer/internalerr"
	"github.com/cognicore/taxometer/pkg/taxometer/legitimacy"
	"github.com/cognicore/taxometer/pkg/taxometer/metrics"
	"github.com/cognicore/taxometer/pkg/taxometer/remediation"
)

// Thresholds is the serializable form of every tunable health bar.
type Thresholds struct {
	MinOrthogonality   float64 `yaml:"min_orthogonality"`
	MinCoverage        float64 `yaml:"min_coverage"`
	MinBalance         float64 `yaml:"min_balance"`
	DensityTarget      float64 `yaml:"density_target"`
	MinActiveChildren  int     `yaml:"min_active_children"`
	MinCategoryHealth  float64 `yaml:"min_category_health"`
	MinCosineAlignment float64 `yaml:"min_cosine_alignment"`
	MaxIterations      int     `yaml:"max_iterations"`

	Weights Weights `yaml:"weights"`
}

// Weights is the serializable composite-grade weighting.
type Weights struct {
	Orthogonality   float64 `yaml:"orthogonality"`
	Uniformity      float64 `yaml:"uniformity"`
	Coverage        float64 `yaml:"coverage"`
	CategoryHealth  float64 `yaml:"category_health"`
	CosineAlignment float64 `yaml:"cosine_alignment"`
}

// Defaults returns the standard thresholds.
func Defaults() Thresholds {
	mth := metrics.DefaultThresholds()
	lth := legitimacy.DefaultThresholds()
	gw := grading.DefaultWeights()
	return Thresholds{
		MinOrthogonality:   mth.MinOrthogonality,
		MinCoverage:        mth.MinCoverage,
		MinBalance:         mth.MinBalance,
		DensityTarget:      mth.DensityTarget,
		MinActiveChildren:  mth.MinActiveChildren,
		MinCategoryHealth:  lth.MinCategoryHealth,
		MinCosineAlignment: lth.MinCosineAlignment,
		MaxIterations:      convergence.DefaultMaxIterations,
		Weights: Weights{
			Orthogonality:   gw.Orthogonality,
			Uniformity:      gw.Uniformity,
			Coverage:        gw.Coverage,
			CategoryHealth:  gw.CategoryHealth,
			CosineAlignment: gw.CosineAlignment,
		},
	}
}

// LoadThresholds reads a YAML file over the defaults and validates the
// result.
func LoadThresholds(path string) (Thresholds, error) {
	th := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return th, err
	}
	if err := yaml.Unmarshal(data, &th); err != nil {
		return th, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	if err := th.Validate(); err != nil {
		return th, err
	}
	return th, nil
}

// Validate rejects thresholds the engine cannot run with.
func (t Thresholds) Validate() error {
	for name, ratio := range map[string]float64{
		"min_orthogonality": t.MinOrthogonality,
		"min_coverage":      t.MinCoverage,
		"min_balance":       t.MinBalance,
	} {
		if ratio < 0 || ratio > 1 {
			return fmt.Errorf("%w: %s must be within [0,1], got %v", internalerr.ErrInvalidConfig, name, ratio)
		}
	}
	if t.DensityTarget <= 0 {
		return fmt.Errorf("%w: density_target must be positive", internalerr.ErrInvalidConfig)
	}
	if t.MaxIterations <= 0 {
		return fmt.Errorf("%w: max_iterations must be positive", internalerr.ErrInvalidConfig)
	}
	if t.MinCategoryHealth < 0 || t.MinCategoryHealth > 100 ||
		t.MinCosineAlignment < 0 || t.MinCosineAlignment > 100 {
		return fmt.Errorf("%w: alignment thresholds must be within [0,100]", internalerr.ErrInvalidConfig)
	}
	return nil
}

// MetricThresholds converts to the metric engine's thresholds.
func (t Thresholds) MetricThresholds() metrics.Thresholds {
	return metrics.Thresholds{
		MinOrthogonality:  t.MinOrthogonality,
		MinCoverage:       t.MinCoverage,
		MinBalance:        t.MinBalance,
		DensityTarget:     t.DensityTarget,
		MinActiveChildren: t.MinActiveChildren,
	}
}

// LegitimacyThresholds converts to the legitimacy assessor's thresholds.
func (t Thresholds) LegitimacyThresholds() legitimacy.Thresholds {
	return legitimacy.Thresholds{
		MinCategoryHealth:  t.MinCategoryHealth,
		MinCosineAlignment: t.MinCosineAlignment,
	}
}

// GradingWeights converts to the grading engine's weights.
func (t Thresholds) GradingWeights() grading.Weights {
	return grading.Weights{
		Orthogonality:   t.Weights.Orthogonality,
		Uniformity:      t.Weights.Uniformity,
		Coverage:        t.Weights.Coverage,
		CategoryHealth:  t.Weights.CategoryHealth,
		CosineAlignment: t.Weights.CosineAlignment,
	}
}

// Vocabulary is the serializable remediation keyword pool.
type Vocabulary struct {
	Themes  map[string][]string `yaml:"themes"`
	Generic []string            `yaml:"generic"`
}

// LoadVocabulary reads a remediation vocabulary from a YAML file.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	return &v, nil
}

// ToRemediation converts to the planner's vocabulary, falling back to the
// built-in pools for anything the file leaves out.
func (v *Vocabulary) ToRemediation() remediation.Vocabulary {
	vocab := remediation.DefaultVocabulary()
	for theme, pool := range v.Themes {
		if len(pool) > 0 {
			vocab.Themes[category.Theme(theme)] = pool
		}
	}
	if len(v.Generic) > 0 {
		vocab.Generic = v.Generic
	}
	return vocab
}
