package metrics

import (
	"github.com/cognicore/taxometer/pkg/taxometer/grading"
	"github.com/cognicore/taxometer/pkg/taxometer/vectorize"
)

// AlignmentResult carries one of the two cross-check scores
// (CategoryHealth, CosineAlignment). These feed the composite grade and
// the legitimacy verdict but never gate the convergence loop, so unlike
// the four core metrics they carry no healthy flag of their own.
type AlignmentResult struct {
	Score float64
	Grade grading.Grade
}

// measureCategoryHealth scores each category on three equally weighted
// clauses: it carries keywords, it receives at least one mention, and its
// mention density sits inside the accepted band. The metric is the mean
// per-category score.
func measureCategoryHealth(stats corpusStats, th Thresholds) AlignmentResult {
	if len(stats.perCat) == 0 {
		return AlignmentResult{Grade: grading.ScoreToGrade(0)}
	}
	var sum float64
	for _, cs := range stats.perCat {
		var score float64
		if len(cs.cat.Keywords) > 0 {
			score += 1.0 / 3
		}
		if cs.mentions > 0 {
			score += 1.0 / 3
		}
		perNode := float64(cs.mentions) / float64(cs.nodeCount)
		if perNode >= UnderrepresentedFactor*th.DensityTarget && perNode <= OverloadedFactor*th.DensityTarget {
			score += 1.0 / 3
		}
		sum += score
	}
	result := AlignmentResult{Score: sum / float64(len(stats.perCat)) * 100}
	result.Grade = grading.ScoreToGrade(result.Score)
	return result
}

// measureCosineAlignment cross-checks each category's vector against the
// term vector of the content it actually matched. High alignment means
// the keywords that attract items also describe them. Categories that
// matched nothing are skipped; if nothing matched anywhere the score is 0.
func measureCosineAlignment(stats corpusStats) AlignmentResult {
	var sum float64
	counted := 0
	for _, cs := range stats.perCat {
		if len(cs.matchedTokens) == 0 {
			continue
		}
		catVec := vectorize.BuildVector(cs.cat)
		contentVec := vectorize.TermVector(cs.matchedTokens)
		sum += vectorize.Cosine(catVec, contentVec)
		counted++
	}
	var result AlignmentResult
	if counted > 0 {
		result.Score = sum / float64(counted) * 100
	}
	result.Grade = grading.ScoreToGrade(result.Score)
	return result
}
