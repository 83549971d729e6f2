package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/taxometer/pkg/taxometer/category"
	"github.com/cognicore/taxometer/pkg/taxometer/internalerr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	th := Defaults()
	if th.MinOrthogonality != 0.70 || th.MinCoverage != 0.60 || th.MinBalance != 0.80 {
		t.Fatalf("unexpected default bars: %+v", th)
	}
	if th.DensityTarget != 10 || th.MinActiveChildren != 3 || th.MaxIterations != 5 {
		t.Fatalf("unexpected default tuning: %+v", th)
	}
	if th.MinCategoryHealth != 70 || th.MinCosineAlignment != 60 {
		t.Fatalf("unexpected alignment bars: %+v", th)
	}
	if err := th.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadThresholdsOverlaysDefaults(t *testing.T) {
	path := writeFile(t, "thresholds.yaml", `
min_coverage: 0.5
max_iterations: 8
weights:
  orthogonality: 0.3
  uniformity: 0.3
  coverage: 0.2
  category_health: 0.1
  cosine_alignment: 0.1
`)
	th, err := LoadThresholds(path)
	if err != nil {
		t.Fatalf("LoadThresholds: %v", err)
	}
	if th.MinCoverage != 0.5 || th.MaxIterations != 8 {
		t.Fatalf("overrides not applied: %+v", th)
	}
	if th.MinOrthogonality != 0.70 {
		t.Fatalf("untouched default changed: %+v", th)
	}
	if th.Weights.Orthogonality != 0.3 {
		t.Fatalf("weights not applied: %+v", th.Weights)
	}
}

func TestLoadThresholdsRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"bad ratio":      "min_coverage: 1.5\n",
		"bad iterations": "max_iterations: -1\n",
		"bad density":    "density_target: 0\n",
		"bad alignment":  "min_category_health: 120\n",
	}
	for name, content := range cases {
		path := writeFile(t, "bad.yaml", content)
		if _, err := LoadThresholds(path); !errors.Is(err, internalerr.ErrInvalidConfig) {
			t.Fatalf("%s: expected invalid config error, got %v", name, err)
		}
	}
}

func TestLoadThresholdsRejectsMalformedYAML(t *testing.T) {
	path := writeFile(t, "garbage.yaml", "{{not yaml")
	if _, err := LoadThresholds(path); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("expected invalid config error, got %v", err)
	}
}

func TestLoadThresholdsMissingFile(t *testing.T) {
	if _, err := LoadThresholds(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected file error")
	}
}

func TestLoadVocabulary(t *testing.T) {
	path := writeFile(t, "vocab.yaml", `
themes:
  engineering:
    - widget
    - gadget
generic:
  - misc
`)
	v, err := LoadVocabulary(path)
	if err != nil {
		t.Fatalf("LoadVocabulary: %v", err)
	}

	vocab := v.ToRemediation()
	pool := vocab.ForTheme(category.ThemeEngineering)
	if len(pool) != 2 || pool[0] != "widget" {
		t.Fatalf("engineering pool = %v", pool)
	}
	if len(vocab.Generic) != 1 || vocab.Generic[0] != "misc" {
		t.Fatalf("generic pool = %v", vocab.Generic)
	}
	// Themes the file leaves out keep their built-in pools.
	if len(vocab.ForTheme(category.ThemeAnalysis)) == 0 {
		t.Fatal("untouched theme lost its default pool")
	}
}

func TestThresholdConversions(t *testing.T) {
	th := Defaults()

	mth := th.MetricThresholds()
	if mth.MinBalance != th.MinBalance || mth.DensityTarget != th.DensityTarget {
		t.Fatalf("metric conversion = %+v", mth)
	}
	lth := th.LegitimacyThresholds()
	if lth.MinCategoryHealth != 70 || lth.MinCosineAlignment != 60 {
		t.Fatalf("legitimacy conversion = %+v", lth)
	}
	gw := th.GradingWeights()
	if gw.Orthogonality != 0.25 || gw.CosineAlignment != 0.15 {
		t.Fatalf("weights conversion = %+v", gw)
	}
}
