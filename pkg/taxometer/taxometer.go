// Package taxometer scores how well a weighted, hierarchical category set
// partitions a text corpus, and iteratively mutates category keyword sets
// until four independent health metrics pass their thresholds or the
// iteration budget runs out.
package taxometer

import (
	"context"
	"time"

	"github.com/cognicore/taxometer/pkg/taxometer/category"
	"github.com/cognicore/taxometer/pkg/taxometer/config"
	"github.com/cognicore/taxometer/pkg/taxometer/convergence"
	"github.com/cognicore/taxometer/pkg/taxometer/grading"
	"github.com/cognicore/taxometer/pkg/taxometer/legitimacy"
	"github.com/cognicore/taxometer/pkg/taxometer/metrics"
	"github.com/cognicore/taxometer/pkg/taxometer/remediation"
	"github.com/cognicore/taxometer/pkg/taxometer/store"
)

// Engine is the main facade: one Engine drives convergence runs over
// caller-supplied category sets and corpora.
type Engine struct {
	thresholds config.Thresholds
	metrics    *metrics.Engine
	planner    *remediation.Planner
	legitTh    legitimacy.Thresholds
	weights    grading.Weights
	history    store.Store
	now        func() time.Time
}

// Options configures an Engine. The zero value selects defaults
// everywhere; History and Reviewer are optional collaborators.
type Options struct {
	// Thresholds overrides the default health bars. Leave zero-valued
	// fields alone by starting from config.Defaults().
	Thresholds *config.Thresholds

	// Vocabulary overrides the planner's built-in keyword pools.
	Vocabulary *remediation.Vocabulary

	// Reviewer, when set, approves or rejects each remediation action
	// before it is applied.
	Reviewer remediation.Reviewer

	// History, when set, receives every finished run.
	History store.Store

	// Now supplies run timestamps; defaults to time.Now. Tests pin it.
	Now func() time.Time
}

// New creates an Engine.
func New(opts Options) *Engine {
	th := config.Defaults()
	if opts.Thresholds != nil {
		th = *opts.Thresholds
	}
	planner := remediation.NewPlanner()
	if opts.Vocabulary != nil {
		planner.Vocabulary = *opts.Vocabulary
	}
	planner.Reviewer = opts.Reviewer

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		thresholds: th,
		metrics:    metrics.NewEngine(th.MetricThresholds()),
		planner:    planner,
		legitTh:    th.LegitimacyThresholds(),
		weights:    th.GradingWeights(),
		history:    opts.History,
		now:        now,
	}
}

// Close releases the history store, if any.
func (e *Engine) Close() error {
	if e.history != nil {
		return e.history.Close()
	}
	return nil
}

// Grades is the letter-grade view of one snapshot.
type Grades struct {
	Orthogonality   grading.Grade
	Uniformity      grading.Grade
	Coverage        grading.Grade
	CategoryHealth  grading.Grade
	CosineAlignment grading.Grade
	Overall         grading.Grade
	OverallScore    float64
}

// HealthReport is the full result of a run: final measurements, grades,
// the legitimacy verdict, outstanding recommendations, and the complete
// iteration audit trail.
type HealthReport struct {
	RunID string
	State convergence.State

	Metrics    metrics.Snapshot
	Grades     Grades
	Legitimacy legitimacy.Verdict

	// Recommendations are the actions of the last non-converging
	// iteration: the fixes still outstanding when the run ended. Empty
	// for a run that converged.
	Recommendations []remediation.Action

	Iterations []convergence.IterationRecord
}

// Run validates the category set, drives the convergence loop to a
// terminal state, and assembles the health report. The set's keyword
// lists are mutated in place by remediation; everything else is
// read-only. A validation failure reports a malformed category graph
// before any measurement happens.
func (e *Engine) Run(ctx context.Context, set *category.Set, corpus []category.ContentItem) (HealthReport, error) {
	if err := set.Validate(); err != nil {
		return HealthReport{}, err
	}

	started := e.now()
	loop := convergence.NewLoop(e.metrics, e.planner, e.thresholds.MaxIterations)
	outcome, runErr := loop.Run(ctx, set, corpus)
	report := e.buildReport(outcome)
	if runErr != nil {
		return report, runErr
	}

	if e.history != nil {
		if err := e.history.SaveRun(ctx, toStoreRun(report, started, e.now())); err != nil {
			return report, err
		}
	}
	return report, nil
}

// Measure takes one snapshot without mutating anything: the pure
// measurement surface for callers that grade an existing category set.
func (e *Engine) Measure(ctx context.Context, set *category.Set, corpus []category.ContentItem) (metrics.Snapshot, Grades, legitimacy.Verdict, error) {
	if err := ctx.Err(); err != nil {
		return metrics.Snapshot{}, Grades{}, legitimacy.Verdict{}, err
	}
	if err := set.Validate(); err != nil {
		return metrics.Snapshot{}, Grades{}, legitimacy.Verdict{}, err
	}
	snap := e.metrics.Measure(set, corpus)
	return snap, e.grade(snap), legitimacy.Assess(snap, e.legitTh), nil
}

func (e *Engine) buildReport(outcome convergence.Outcome) HealthReport {
	report := HealthReport{
		RunID:      outcome.RunID,
		State:      outcome.State,
		Metrics:    outcome.Final,
		Grades:     e.grade(outcome.Final),
		Legitimacy: legitimacy.Assess(outcome.Final, e.legitTh),
		Iterations: outcome.Iterations,
	}
	if outcome.State != convergence.StateConverged && len(outcome.Iterations) > 0 {
		report.Recommendations = outcome.Iterations[len(outcome.Iterations)-1].ActionsApplied
	}
	return report
}

func (e *Engine) grade(snap metrics.Snapshot) Grades {
	score := e.weights.Composite(grading.Scores{
		Orthogonality:   snap.Orthogonality.Score,
		Uniformity:      snap.Uniformity.Score,
		Coverage:        snap.Coverage.Score,
		CategoryHealth:  snap.CategoryHealth.Score,
		CosineAlignment: snap.CosineAlignment.Score,
	})
	return Grades{
		Orthogonality:   snap.Orthogonality.Grade,
		Uniformity:      snap.Uniformity.Grade,
		Coverage:        snap.Coverage.Grade,
		CategoryHealth:  snap.CategoryHealth.Grade,
		CosineAlignment: snap.CosineAlignment.Grade,
		Overall:         grading.ScoreToGrade(score),
		OverallScore:    score,
	}
}

func toStoreRun(report HealthReport, started, finished time.Time) store.Run {
	run := store.Run{
		ID:             report.RunID,
		StartedAt:      started,
		FinishedAt:     finished,
		State:          string(report.State),
		CompositeScore: report.Grades.OverallScore,
		OverallGrade:   string(report.Grades.Overall),
		Legitimate:     report.Legitimacy.Legitimate,
		Confidence:     report.Legitimacy.Confidence,
	}
	for _, record := range report.Iterations {
		iteration := store.Iteration{
			Iteration:        record.Iteration,
			Orthogonality:    record.Snapshot.Orthogonality.Score,
			Coverage:         record.Snapshot.Coverage.Score,
			Uniformity:       record.Snapshot.Uniformity.Score,
			CategoryHealth:   record.Snapshot.CategoryHealth.Score,
			CosineAlignment:  record.Snapshot.CosineAlignment.Score,
			HierarchyHealthy: record.Snapshot.Hierarchy.Healthy,
		}
		for _, action := range record.ActionsApplied {
			iteration.Actions = append(iteration.Actions, store.ActionRecord{
				Type:       string(action.Type),
				CategoryID: action.CategoryID,
				RelatedID:  action.RelatedID,
				Add:        action.Add,
				Remove:     action.Remove,
				Reason:     action.Reason,
			})
		}
		run.Iterations = append(run.Iterations, iteration)
	}
	return run
}
