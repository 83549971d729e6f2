package metrics

import "github.com/cognicore/taxometer/pkg/taxometer/grading"

// HierarchyResult reports whether the nested categories actually receive
// corpus mentions. This is a cardinality check: at least
// Thresholds.MinActiveChildren depth>0 categories must have a non-zero
// mention count.
type HierarchyResult struct {
	Score   float64
	Grade   grading.Grade
	Healthy bool

	ActiveChildren int
	TotalChildren  int
}

func measureHierarchy(stats corpusStats, th Thresholds) HierarchyResult {
	var result HierarchyResult
	for _, cs := range stats.perCat {
		if cs.cat.Depth == 0 {
			continue
		}
		result.TotalChildren++
		if cs.mentions > 0 {
			result.ActiveChildren++
		}
	}
	// The requirement caps at the number of children that exist: a flat
	// forest, or one with fewer nested categories than the bar, is not
	// penalized for cardinality remediation cannot change.
	required := th.MinActiveChildren
	if result.TotalChildren < required {
		required = result.TotalChildren
	}
	result.Healthy = result.ActiveChildren >= required

	// The score scales toward 100 as the required child count is reached,
	// so the cardinality check still grades like the other metrics.
	if result.Healthy {
		result.Score = 100
	} else {
		result.Score = float64(result.ActiveChildren) / float64(required) * 100
	}
	result.Grade = grading.ScoreToGrade(result.Score)
	return result
}
