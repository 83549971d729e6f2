package metrics

import (
	"github.com/cognicore/taxometer/pkg/taxometer/category"
	"github.com/cognicore/taxometer/pkg/taxometer/grading"
	"github.com/cognicore/taxometer/pkg/taxometer/vectorize"
)

// Severity levels for correlated category pairs.
const (
	SeverityModerate = "moderate"
	SeverityHigh     = "high"
)

// PairCorrelation flags one pair of categories whose keyword vectors
// overlap more than the independence bar allows.
type PairCorrelation struct {
	CategoryA  string
	CategoryB  string
	Similarity float64
	Severity   string
}

// OrthogonalityResult reports pairwise semantic independence across the
// category set.
type OrthogonalityResult struct {
	Score   float64
	Grade   grading.Grade
	Healthy bool

	// Average is the mean pairwise orthogonality (1 - similarity) in [0,1].
	Average          float64
	CorrelatedPairs  []PairCorrelation
	IndependentPairs int
}

// measureOrthogonality compares every unordered category pair by cosine
// similarity of their keyword vectors. A set with fewer than two
// categories is vacuously independent.
func measureOrthogonality(set *category.Set, th Thresholds) OrthogonalityResult {
	cats := set.All()
	vectors := make([]vectorize.Vector, len(cats))
	for i, c := range cats {
		vectors[i] = vectorize.BuildVector(c)
	}

	result := OrthogonalityResult{Average: 1}
	var orthoSum float64
	pairs := 0
	for i := 0; i < len(cats); i++ {
		for j := i + 1; j < len(cats); j++ {
			sim := vectorize.Cosine(vectors[i], vectors[j])
			orthoSum += 1 - sim
			pairs++
			if sim > CorrelatedSimilarity {
				severity := SeverityModerate
				if sim > HighSimilarity {
					severity = SeverityHigh
				}
				result.CorrelatedPairs = append(result.CorrelatedPairs, PairCorrelation{
					CategoryA:  cats[i].ID,
					CategoryB:  cats[j].ID,
					Similarity: sim,
					Severity:   severity,
				})
			} else {
				result.IndependentPairs++
			}
		}
	}
	if pairs > 0 {
		result.Average = orthoSum / float64(pairs)
	}

	result.Score = result.Average * 100
	result.Grade = grading.ScoreToGrade(result.Score)
	result.Healthy = result.Average >= th.MinOrthogonality
	return result
}
