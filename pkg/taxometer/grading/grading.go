// Package grading maps continuous 0–100 metric scores onto letter grades
// and combines the individual metrics into one weighted composite.
package grading

// Grade is a letter grade on the usual A–F scale.
type Grade string

// Grade constants.
const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// ScoreToGrade maps a 0–100 score to a letter grade.
func ScoreToGrade(score float64) Grade {
	switch {
	case score >= 90:
		return GradeA
	case score >= 80:
		return GradeB
	case score >= 70:
		return GradeC
	case score >= 60:
		return GradeD
	default:
		return GradeF
	}
}

// Scores carries the five 0–100 inputs to the composite.
type Scores struct {
	Orthogonality   float64
	Uniformity      float64
	Coverage        float64
	CategoryHealth  float64
	CosineAlignment float64
}

// Weights defines the relative contribution of each metric to the
// composite score.
type Weights struct {
	Orthogonality   float64
	Uniformity      float64
	Coverage        float64
	CategoryHealth  float64
	CosineAlignment float64
}

// DefaultWeights returns the standard composite weighting: the two
// structural metrics dominate, coverage follows, the two alignment
// cross-checks share the remainder.
func DefaultWeights() Weights {
	return Weights{
		Orthogonality:   0.25,
		Uniformity:      0.25,
		Coverage:        0.20,
		CategoryHealth:  0.15,
		CosineAlignment: 0.15,
	}
}

// Composite returns the weighted composite score.
func (w Weights) Composite(s Scores) float64 {
	return s.Orthogonality*w.Orthogonality +
		s.Uniformity*w.Uniformity +
		s.Coverage*w.Coverage +
		s.CategoryHealth*w.CategoryHealth +
		s.CosineAlignment*w.CosineAlignment
}
