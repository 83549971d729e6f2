package legitimacy

import (
	"testing"

	"github.com/cognicore/taxometer/pkg/taxometer/metrics"
)

func healthySnapshot() metrics.Snapshot {
	return metrics.Snapshot{
		Orthogonality:   metrics.OrthogonalityResult{Score: 85, Healthy: true},
		Uniformity:      metrics.UniformityResult{Score: 90, CV: 0.1, Healthy: true},
		Coverage:        metrics.CoverageResult{Score: 75, Healthy: true},
		Hierarchy:       metrics.HierarchyResult{Score: 100, Healthy: true},
		CategoryHealth:  metrics.AlignmentResult{Score: 80},
		CosineAlignment: metrics.AlignmentResult{Score: 70},
		CategoryCount:   5,
		CorpusSize:      40,
	}
}

func TestAssessAllChecksPass(t *testing.T) {
	verdict := Assess(healthySnapshot(), DefaultThresholds())

	if !verdict.Legitimate {
		t.Fatal("expected legitimate verdict")
	}
	if verdict.PassedChecks != 5 || verdict.Confidence != 100 {
		t.Fatalf("passed=%d confidence=%v, want 5/100", verdict.PassedChecks, verdict.Confidence)
	}
	if len(verdict.CriticalIssues) != 0 {
		t.Fatalf("unexpected critical issues: %v", verdict.CriticalIssues)
	}
	if verdict.ReproducibilityScore != 80 {
		t.Fatalf("reproducibility = %v, want baseline 80", verdict.ReproducibilityScore)
	}
	v := verdict.Validity
	if !v.CorpusSizeOK || !v.CategoryCountOK || !v.VarianceOK {
		t.Fatalf("validity flags = %+v, want all true", v)
	}
}

func TestAssessToleratesOneFailure(t *testing.T) {
	snap := healthySnapshot()
	snap.CosineAlignment.Score = 40 // below the 60 bar

	verdict := Assess(snap, DefaultThresholds())
	if !verdict.Legitimate {
		t.Fatal("4 of 5 checks must still be legitimate")
	}
	if verdict.PassedChecks != 4 || verdict.Confidence != 80 {
		t.Fatalf("passed=%d confidence=%v, want 4/80", verdict.PassedChecks, verdict.Confidence)
	}
	if len(verdict.CriticalIssues) != 1 {
		t.Fatalf("critical issues = %v, want one", verdict.CriticalIssues)
	}
}

func TestAssessRejectsTwoFailures(t *testing.T) {
	snap := healthySnapshot()
	snap.CosineAlignment.Score = 40
	snap.Coverage.Healthy = false

	verdict := Assess(snap, DefaultThresholds())
	if verdict.Legitimate {
		t.Fatal("3 of 5 checks must not be legitimate")
	}
	if verdict.Confidence != 60 {
		t.Fatalf("confidence = %v, want 60", verdict.Confidence)
	}
}

func TestReproducibilityPenalties(t *testing.T) {
	snap := healthySnapshot()
	snap.CorpusSize = 5                                                     // -20
	snap.Uniformity.CV = 0.6                                                // -15
	snap.Orthogonality.CorrelatedPairs = make([]metrics.PairCorrelation, 4) // -10

	verdict := Assess(snap, DefaultThresholds())
	if verdict.ReproducibilityScore != 35 {
		t.Fatalf("reproducibility = %v, want 35", verdict.ReproducibilityScore)
	}
	if verdict.Validity.CorpusSizeOK || verdict.Validity.VarianceOK {
		t.Fatalf("validity flags = %+v, want corpus and variance flagged", verdict.Validity)
	}
}

func TestReproducibilityNeverNegative(t *testing.T) {
	snap := healthySnapshot()
	snap.CorpusSize = 1
	snap.Uniformity.CV = 2
	snap.Orthogonality.CorrelatedPairs = make([]metrics.PairCorrelation, 10)

	verdict := Assess(snap, DefaultThresholds())
	if verdict.ReproducibilityScore < 0 {
		t.Fatalf("reproducibility = %v, want >= 0", verdict.ReproducibilityScore)
	}
}

func TestValidityCategoryCountBounds(t *testing.T) {
	snap := healthySnapshot()
	snap.CategoryCount = 13
	if verdict := Assess(snap, DefaultThresholds()); verdict.Validity.CategoryCountOK {
		t.Fatal("13 categories should fail the count bound")
	}
	snap.CategoryCount = 2
	if verdict := Assess(snap, DefaultThresholds()); verdict.Validity.CategoryCountOK {
		t.Fatal("2 categories should fail the count bound")
	}
	snap.CategoryCount = 3
	if verdict := Assess(snap, DefaultThresholds()); !verdict.Validity.CategoryCountOK {
		t.Fatal("3 categories should pass the count bound")
	}
}
