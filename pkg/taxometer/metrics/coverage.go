package metrics

import "github.com/cognicore/taxometer/pkg/taxometer/grading"

// CoverageResult reports the fraction of corpus items matched by at least
// one category. An empty corpus scores 0, never divides.
type CoverageResult struct {
	Score   float64
	Grade   grading.Grade
	Healthy bool

	CoveredItems int
	TotalItems   int
}

func measureCoverage(stats corpusStats, th Thresholds) CoverageResult {
	result := CoverageResult{
		CoveredItems: stats.covered,
		TotalItems:   stats.totalItems,
	}
	if stats.totalItems > 0 {
		ratio := float64(stats.covered) / float64(stats.totalItems)
		result.Score = ratio * 100
		result.Healthy = ratio >= th.MinCoverage
	}
	result.Grade = grading.ScoreToGrade(result.Score)
	return result
}
