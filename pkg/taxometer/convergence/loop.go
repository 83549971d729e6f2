// Package convergence drives the bounded iterate-measure-repair loop:
// measure the category set, stop if every core metric is healthy,
// otherwise let the planner mutate keywords and go again, up to a fixed
// iteration budget. Exhausting the budget is an expected outcome, not an
// error.
package convergence

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/taxometer/pkg/taxometer/category"
	"github.com/cognicore/taxometer/pkg/taxometer/metrics"
	"github.com/cognicore/taxometer/pkg/taxometer/remediation"
)

// State is the loop's lifecycle state.
type State string

// Loop states. Converged and Exhausted are terminal.
const (
	StateRunning   State = "running"
	StateConverged State = "converged"
	StateExhausted State = "exhausted"
)

// DefaultMaxIterations bounds a run when the caller does not choose.
const DefaultMaxIterations = 5

// IterationRecord is the audit trail for one loop iteration: what was
// measured and which actions followed. ActionsApplied is empty on a
// converging iteration.
type IterationRecord struct {
	Iteration      int // 1-based
	Snapshot       metrics.Snapshot
	ActionsApplied []remediation.Action
}

// Outcome is the result of a full run.
type Outcome struct {
	RunID      string
	State      State
	Iterations []IterationRecord

	// Final is the last snapshot taken, converged or not.
	Final metrics.Snapshot
}

// Loop owns one convergence run at a time. The category set passed to Run
// is the single piece of mutable state: the metric engine reads it, the
// planner writes it, never concurrently.
type Loop struct {
	metrics       *metrics.Engine
	planner       *remediation.Planner
	maxIterations int
	entropy       *ulid.MonotonicEntropy
}

// NewLoop creates a loop. maxIterations <= 0 selects the default budget.
func NewLoop(engine *metrics.Engine, planner *remediation.Planner, maxIterations int) *Loop {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &Loop{
		metrics:       engine,
		planner:       planner,
		maxIterations: maxIterations,
		entropy:       ulid.Monotonic(rand.Reader, 0),
	}
}

// Run executes the loop to a terminal state. The context is checked
// between iterations only; cancelling mid-run keeps whatever keyword
// mutations the last completed iteration applied, which matches simply
// not calling the loop again. An interrupted run, whether by
// cancellation or a planner error, stays in StateRunning: it neither
// converged nor spent the budget, and the outcome carries the
// iterations completed so far together with the wrapped error.
func (l *Loop) Run(ctx context.Context, set *category.Set, corpus []category.ContentItem) (Outcome, error) {
	outcome := Outcome{
		RunID: ulid.MustNew(ulid.Now(), l.entropy).String(),
		State: StateRunning,
	}

	for iteration := 1; iteration <= l.maxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return outcome, fmt.Errorf("convergence run interrupted: %w", err)
		}

		snap := l.metrics.Measure(set, corpus)
		record := IterationRecord{Iteration: iteration, Snapshot: snap}
		outcome.Final = snap

		if snap.AllHealthy() {
			outcome.Iterations = append(outcome.Iterations, record)
			outcome.State = StateConverged
			return outcome, nil
		}

		actions, err := l.planner.Remediate(ctx, snap, set)
		record.ActionsApplied = actions
		outcome.Iterations = append(outcome.Iterations, record)
		if err != nil {
			return outcome, err
		}
	}

	outcome.State = StateExhausted
	return outcome, nil
}
