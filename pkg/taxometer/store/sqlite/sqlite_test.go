package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/cognicore/taxometer/pkg/taxometer/internalerr"
	"github.com/cognicore/taxometer/pkg/taxometer/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(id string, started time.Time) store.Run {
	return store.Run{
		ID:             id,
		StartedAt:      started,
		FinishedAt:     started.Add(2 * time.Second),
		State:          "exhausted",
		CompositeScore: 61.25,
		OverallGrade:   "D",
		Legitimate:     false,
		Confidence:     60,
		Iterations: []store.Iteration{
			{
				Iteration:       1,
				Orthogonality:   40,
				Coverage:        80,
				Uniformity:      55,
				CategoryHealth:  66,
				CosineAlignment: 50,
				Actions: []store.ActionRecord{
					{
						Type:       "redistribute_keywords",
						CategoryID: "starved",
						Add:        []string{"deploy", "release"},
					},
					{
						Type:       "merge_or_split",
						CategoryID: "a",
						RelatedID:  "b",
						Reason:     "high severity keyword overlap",
					},
				},
			},
			{Iteration: 2, Orthogonality: 40, Coverage: 85, Uniformity: 70},
		},
	}
}

func TestSaveAndGetRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	run := sampleRun("run-1", time.UnixMilli(1_700_000_000_000).UTC())
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, ok, err := s.GetRun(ctx, "run-1")
	if err != nil || !ok {
		t.Fatalf("GetRun: ok=%v err=%v", ok, err)
	}
	if !got.StartedAt.Equal(run.StartedAt) || !got.FinishedAt.Equal(run.FinishedAt) {
		t.Fatalf("timestamps = %v/%v, want %v/%v", got.StartedAt, got.FinishedAt, run.StartedAt, run.FinishedAt)
	}
	if got.State != "exhausted" || got.CompositeScore != 61.25 || got.Legitimate {
		t.Fatalf("got = %+v", got)
	}
	if len(got.Iterations) != 2 {
		t.Fatalf("iterations = %d, want 2", len(got.Iterations))
	}
	actions := got.Iterations[0].Actions
	if len(actions) != 2 || actions[0].Add[1] != "release" || actions[1].RelatedID != "b" {
		t.Fatalf("actions = %+v", actions)
	}
}

func TestGetRunMissing(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.GetRun(context.Background(), "absent")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if ok {
		t.Fatal("missing run reported as found")
	}
}

func TestSaveRunReplaces(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	run := sampleRun("run-1", time.UnixMilli(1_700_000_000_000).UTC())
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	run.State = "converged"
	run.Legitimate = true
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, _, err := s.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.State != "converged" || !got.Legitimate {
		t.Fatalf("got = %+v, want replacement applied", got)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	base := time.UnixMilli(1_700_000_000_000).UTC()
	for i, id := range []string{"old", "mid", "new"} {
		if err := s.SaveRun(ctx, sampleRun(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("SaveRun(%s): %v", id, err)
		}
	}

	runs, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "new" || runs[1].ID != "mid" {
		t.Fatalf("runs = %+v, want newest first limited to 2", runs)
	}
}

func TestOpenIsIdempotentOnSchema(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")

	first, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if err := first.SaveRun(ctx, sampleRun("run-1", time.UnixMilli(1_700_000_000_000).UTC())); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer second.Close()

	if _, ok, err := second.GetRun(ctx, "run-1"); err != nil || !ok {
		t.Fatalf("run lost across reopen: ok=%v err=%v", ok, err)
	}
}

func TestSaveRunRejectsMissingID(t *testing.T) {
	s := openTestStore(t)
	err := s.SaveRun(context.Background(), store.Run{State: "converged"})
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if runs, _ := s.ListRuns(context.Background(), 0); len(runs) != 0 {
		t.Fatalf("rejected run was stored: %+v", runs)
	}
}
