package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/taxometer/pkg/taxometer/internalerr"
	"github.com/cognicore/taxometer/pkg/taxometer/store"
)

// Store is an in-memory implementation of store.Store for tests and
// single-process callers.
type Store struct {
	mu   sync.RWMutex
	runs map[string]store.Run
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{runs: make(map[string]store.Run)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveRun stores a run, keyed by its id. Saving the same id twice
// replaces the earlier record.
func (s *Store) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("save run: missing id: %w", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = copyRun(r)
	return nil
}

// GetRun returns a run by id.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.runs[id]; ok {
		return copyRun(r), true, nil
	}
	return store.Run{}, false, nil
}

// ListRuns returns runs ordered newest first by start time, id breaking
// ties.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Run, 0, len(s.runs))
	for _, r := range s.runs {
		out = append(out, copyRun(r))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func copyRun(r store.Run) store.Run {
	out := r
	out.Iterations = make([]store.Iteration, len(r.Iterations))
	for i, it := range r.Iterations {
		cp := it
		cp.Actions = make([]store.ActionRecord, len(it.Actions))
		for j, a := range it.Actions {
			ra := a
			ra.Add = append([]string(nil), a.Add...)
			ra.Remove = append([]string(nil), a.Remove...)
			cp.Actions[j] = ra
		}
		out.Iterations[i] = cp
	}
	return out
}
