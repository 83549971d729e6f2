// Package metrics computes the four category-health metrics plus the two
// alignment cross-checks. Every computation is a pure function of
// (categories, corpus): measuring twice on unchanged inputs yields
// identical snapshots, and nothing here mutates the category set.
package metrics

import "github.com/cognicore/taxometer/pkg/taxometer/category"

// Snapshot is one immutable measurement of a category set against a
// corpus. Each iteration of the convergence loop produces a new one.
type Snapshot struct {
	Orthogonality OrthogonalityResult
	Coverage      CoverageResult
	Uniformity    UniformityResult
	Hierarchy     HierarchyResult

	CategoryHealth  AlignmentResult
	CosineAlignment AlignmentResult

	CategoryCount int
	CorpusSize    int
}

// AllHealthy reports whether all four core metrics pass their bars. This
// is the convergence loop's stopping condition and is deliberately
// stricter than the legitimacy assessor's 4-of-5 slack.
func (s Snapshot) AllHealthy() bool {
	return s.Orthogonality.Healthy &&
		s.Coverage.Healthy &&
		s.Uniformity.Healthy &&
		s.Hierarchy.Healthy
}

// Engine measures category sets. It holds only thresholds and is safe to
// reuse across runs.
type Engine struct {
	th Thresholds
}

// NewEngine creates a metric engine with the given thresholds.
func NewEngine(th Thresholds) *Engine {
	return &Engine{th: th}
}

// Thresholds returns the engine's health bars.
func (e *Engine) Thresholds() Thresholds {
	return e.th
}

// Measure computes a full snapshot. The corpus is scanned once; all six
// sub-computations derive from that single pass plus the category set.
func (e *Engine) Measure(set *category.Set, corpus []category.ContentItem) Snapshot {
	stats := collect(set, corpus)
	return Snapshot{
		Orthogonality:   measureOrthogonality(set, e.th),
		Coverage:        measureCoverage(stats, e.th),
		Uniformity:      measureUniformity(stats, e.th),
		Hierarchy:       measureHierarchy(stats, e.th),
		CategoryHealth:  measureCategoryHealth(stats, e.th),
		CosineAlignment: measureCosineAlignment(stats),
		CategoryCount:   set.Len(),
		CorpusSize:      len(corpus),
	}
}
