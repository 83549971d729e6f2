// Package legitimacy certifies whether a scoring run is statistically
// trustworthy. Its verdict tolerates one failing check out of five, a
// deliberately looser bar than the convergence loop's all-metrics-healthy
// stopping condition; the two predicates serve different consumers and
// are kept independent.
package legitimacy

import "github.com/cognicore/taxometer/pkg/taxometer/metrics"

// Thresholds for the two alignment checks. The four core metrics carry
// their healthy flags in the snapshot already.
type Thresholds struct {
	MinCategoryHealth  float64 // default 70
	MinCosineAlignment float64 // default 60
}

// DefaultThresholds returns the standard legitimacy bars.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinCategoryHealth:  70,
		MinCosineAlignment: 60,
	}
}

// Reproducibility scoring: a deterministic-algorithm baseline minus
// penalties for conditions that make a rerun likely to disagree.
const (
	reproducibilityBaseline = 80.0
	smallCorpusPenalty      = 20.0
	highVariancePenalty     = 15.0
	manyCorrelationsPenalty = 10.0
	smallCorpusLimit        = 10
	maxCorrelatedPairs      = 3
)

// MaxValidCV is the loose variance bound used by the reproducibility
// penalty and the statistical-validity flag. The uniformity metric's own
// bar (balance >= 0.80) is intentionally stricter.
const MaxValidCV = 0.5

// Statistical-validity bounds (informational, non-blocking).
const (
	minValidCorpus     = 20
	minValidCategories = 3
	maxValidCategories = 12
)

// minimum passing checks out of five for a legitimate verdict.
const minPassingChecks = 4

// Check is one boolean legitimacy check with its observed value.
type Check struct {
	Name      string
	Passed    bool
	Value     float64
	Threshold float64
}

// StatisticalValidity carries the informational sample-quality flags.
type StatisticalValidity struct {
	CorpusSizeOK    bool // corpus holds at least 20 items
	CategoryCountOK bool // category count within [3,12]
	VarianceOK      bool // uniformity CV below MaxValidCV
}

// Verdict is the full legitimacy assessment for one snapshot.
type Verdict struct {
	Legitimate           bool
	Confidence           float64 // passing checks / 5 * 100
	PassedChecks         int
	Checks               []Check
	CriticalIssues       []string
	ReproducibilityScore float64
	Validity             StatisticalValidity
}

// Assess evaluates the five legitimacy checks against a snapshot. It is a
// pure function: same snapshot, same verdict.
func Assess(snap metrics.Snapshot, th Thresholds) Verdict {
	checks := []Check{
		{Name: "orthogonality", Passed: snap.Orthogonality.Healthy, Value: snap.Orthogonality.Score},
		{Name: "uniformity", Passed: snap.Uniformity.Healthy, Value: snap.Uniformity.Score},
		{Name: "coverage", Passed: snap.Coverage.Healthy, Value: snap.Coverage.Score},
		{
			Name:      "category_health",
			Passed:    snap.CategoryHealth.Score >= th.MinCategoryHealth,
			Value:     snap.CategoryHealth.Score,
			Threshold: th.MinCategoryHealth,
		},
		{
			Name:      "cosine_alignment",
			Passed:    snap.CosineAlignment.Score >= th.MinCosineAlignment,
			Value:     snap.CosineAlignment.Score,
			Threshold: th.MinCosineAlignment,
		},
	}

	verdict := Verdict{Checks: checks}
	for _, check := range checks {
		if check.Passed {
			verdict.PassedChecks++
		} else {
			verdict.CriticalIssues = append(verdict.CriticalIssues, check.Name+" below threshold")
		}
	}
	verdict.Confidence = float64(verdict.PassedChecks) / float64(len(checks)) * 100
	verdict.Legitimate = verdict.PassedChecks >= minPassingChecks
	verdict.ReproducibilityScore = reproducibility(snap)
	verdict.Validity = StatisticalValidity{
		CorpusSizeOK:    snap.CorpusSize >= minValidCorpus,
		CategoryCountOK: snap.CategoryCount >= minValidCategories && snap.CategoryCount <= maxValidCategories,
		VarianceOK:      snap.Uniformity.CV < MaxValidCV,
	}
	return verdict
}

func reproducibility(snap metrics.Snapshot) float64 {
	score := reproducibilityBaseline
	if snap.CorpusSize < smallCorpusLimit {
		score -= smallCorpusPenalty
	}
	if snap.Uniformity.CV > MaxValidCV {
		score -= highVariancePenalty
	}
	if len(snap.Orthogonality.CorrelatedPairs) > maxCorrelatedPairs {
		score -= manyCorrelationsPenalty
	}
	if score < 0 {
		score = 0
	}
	return score
}
