// Package store persists convergence run results for audit. The engine
// never requires a store; callers that want history across processes plug
// in the sqlite implementation, tests use memstore.
package store

import (
	"context"
	"time"
)

// Store persists run outcomes.
type Store interface {
	Close() error

	SaveRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}

// Run is one completed convergence run, flattened for persistence. It
// records results only; category definitions themselves are persisted by
// their own collaborator.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	State      string // converged or exhausted

	CompositeScore float64
	OverallGrade   string
	Legitimate     bool
	Confidence     float64

	Iterations []Iteration
}

// Iteration is one loop iteration's scores and action log.
type Iteration struct {
	Iteration        int
	Orthogonality    float64
	Coverage         float64
	Uniformity       float64
	CategoryHealth   float64
	CosineAlignment  float64
	HierarchyHealthy bool
	Actions          []ActionRecord
}

// ActionRecord is one remediation action as stored.
type ActionRecord struct {
	Type       string
	CategoryID string
	RelatedID  string
	Add        []string
	Remove     []string
	Reason     string
}
