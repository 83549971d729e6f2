package metrics

import "github.com/cognicore/taxometer/pkg/taxometer/grading"

// CategoryDensity is one category's mention density, normalized by its
// estimated node count.
type CategoryDensity struct {
	CategoryID      string
	Mentions        int
	NodeCount       int
	MentionsPerNode float64
}

// UniformityResult reports how evenly mentions spread across categories,
// measured by the coefficient of variation of mentions-per-node.
type UniformityResult struct {
	Score   float64
	Grade   grading.Grade
	Healthy bool

	// Balance is 1 - min(1, CV); CV is stddev/mean of the densities.
	Balance float64
	CV      float64

	Densities        []CategoryDensity
	Overloaded       []string // density above OverloadedFactor x target
	Underrepresented []string // density below UnderrepresentedFactor x target
}

func measureUniformity(stats corpusStats, th Thresholds) UniformityResult {
	result := UniformityResult{
		Densities: make([]CategoryDensity, len(stats.perCat)),
	}
	values := make([]float64, len(stats.perCat))
	for i, cs := range stats.perCat {
		perNode := float64(cs.mentions) / float64(cs.nodeCount)
		values[i] = perNode
		result.Densities[i] = CategoryDensity{
			CategoryID:      cs.cat.ID,
			Mentions:        cs.mentions,
			NodeCount:       cs.nodeCount,
			MentionsPerNode: perNode,
		}
		if perNode > OverloadedFactor*th.DensityTarget {
			result.Overloaded = append(result.Overloaded, cs.cat.ID)
		} else if perNode < UnderrepresentedFactor*th.DensityTarget {
			result.Underrepresented = append(result.Underrepresented, cs.cat.ID)
		}
	}

	m := mean(values)
	if m == 0 {
		// No mentions anywhere: CV is undefined, treat as maximally
		// unbalanced rather than dividing by zero.
		result.CV = 1
	} else {
		result.CV = stddev(values, m) / m
	}

	result.Balance = 1 - result.CV
	if result.Balance < 0 {
		result.Balance = 0
	}
	result.Score = result.Balance * 100
	result.Grade = grading.ScoreToGrade(result.Score)
	result.Healthy = result.Balance >= th.MinBalance
	return result
}
