package metrics

// Thresholds control when each metric reports healthy. The zero value is
// not useful; start from DefaultThresholds.
type Thresholds struct {
	// MinOrthogonality is the minimum average pairwise orthogonality
	// (1 - cosine similarity) for the category set to count as
	// semantically independent. Default: 0.70.
	MinOrthogonality float64

	// MinCoverage is the minimum fraction of corpus items matched by at
	// least one category. Default: 0.60.
	MinCoverage float64

	// MinBalance is the minimum uniformity balance (1 - min(1, CV)).
	// Default: 0.80, i.e. a coefficient of variation of at most 0.20.
	// This is the canonical uniformity bar; the looser CV < 0.5 bound
	// appears only in the legitimacy assessor's validity flags.
	MinBalance float64

	// DensityTarget is the expected mentions-per-node for one category.
	// Categories above 2x are overloaded, below 0.3x underrepresented.
	// Default: 10.
	DensityTarget float64

	// MinActiveChildren is the number of depth>0 categories that must
	// receive at least one mention for hierarchy integrity. Default: 3.
	MinActiveChildren int
}

// DefaultThresholds returns the standard health bars.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinOrthogonality:  0.70,
		MinCoverage:       0.60,
		MinBalance:        0.80,
		DensityTarget:     10,
		MinActiveChildren: 3,
	}
}

// Correlation severity bounds: a pair is correlated above
// CorrelatedSimilarity, and severely so above HighSimilarity.
const (
	CorrelatedSimilarity = 0.5
	HighSimilarity       = 0.7
)

// Density band multipliers around Thresholds.DensityTarget.
const (
	OverloadedFactor       = 2.0
	UnderrepresentedFactor = 0.3
)
