// Package remediation turns failing metrics into category mutations. The
// planner is the only component that writes to the category set, and it
// runs strictly between measurement iterations.
package remediation

import (
	"context"
	"fmt"

	"github.com/cognicore/taxometer/pkg/taxometer/category"
	"github.com/cognicore/taxometer/pkg/taxometer/metrics"
)

// Per-action keyword limits.
const (
	enhanceLimit      = 3   // keywords added to each nested category
	redistributeLimit = 4   // keywords added to a starved category
	expandLimit       = 5   // keywords added to a top-level category
	truncateKeepRatio = 0.7 // share of keywords an overloaded category keeps
)

// Reviewer optionally approves each planned action before it is applied.
// Rejected actions are dropped silently; a reviewer error aborts planning.
type Reviewer interface {
	ApproveAction(ctx context.Context, action Action) (bool, error)
}

// Planner selects and applies remediation actions for failing metrics.
type Planner struct {
	Vocabulary Vocabulary
	Reviewer   Reviewer // optional
}

// NewPlanner creates a planner with the built-in vocabulary.
func NewPlanner() *Planner {
	return &Planner{Vocabulary: DefaultVocabulary()}
}

// Remediate plans fixes for every unhealthy metric in the snapshot and
// applies the approved mutating actions to the set immediately. Phases
// run in a fixed order (hierarchy, uniformity, coverage, orthogonality)
// because each later phase plans against the keyword sets the earlier
// phases already updated. The returned slice is the ordered action log,
// including non-mutating merge/split recommendations.
func (p *Planner) Remediate(ctx context.Context, snap metrics.Snapshot, set *category.Set) ([]Action, error) {
	var applied []Action

	phases := []func() []Action{
		func() []Action { return p.planHierarchy(snap, set) },
		func() []Action { return p.planUniformity(snap, set) },
		func() []Action { return p.planCoverage(snap, set) },
		func() []Action { return p.planOrthogonality(snap) },
	}
	for _, plan := range phases {
		for _, action := range plan() {
			if p.Reviewer != nil {
				ok, err := p.Reviewer.ApproveAction(ctx, action)
				if err != nil {
					return applied, fmt.Errorf("remediation review: %w", err)
				}
				if !ok {
					continue
				}
			}
			apply(action, set)
			applied = append(applied, action)
		}
	}
	return applied, nil
}

func apply(action Action, set *category.Set) {
	if !action.Mutates() {
		return
	}
	c, ok := set.Get(action.CategoryID)
	if !ok {
		return
	}
	for _, kw := range action.Add {
		c.AddKeyword(kw)
	}
	c.RemoveKeywords(action.Remove)
}

// planHierarchy feeds theme vocabulary to every nested category so the
// child layer starts drawing mentions.
func (p *Planner) planHierarchy(snap metrics.Snapshot, set *category.Set) []Action {
	if snap.Hierarchy.Healthy {
		return nil
	}
	var actions []Action
	for _, c := range set.All() {
		if c.Depth == 0 {
			continue
		}
		add := pick(p.Vocabulary.ForTheme(c.Theme), c, enhanceLimit)
		if len(add) == 0 {
			continue
		}
		actions = append(actions, Action{
			Type:       ActionEnhanceChildKeywords,
			CategoryID: c.ID,
			Add:        add,
			Reason:     "nested category receives no mentions",
		})
	}
	return actions
}

// planUniformity grows starved categories and truncates overloaded ones
// to about 70% of their keyword list.
func (p *Planner) planUniformity(snap metrics.Snapshot, set *category.Set) []Action {
	if snap.Uniformity.Healthy {
		return nil
	}
	var actions []Action
	for _, id := range snap.Uniformity.Underrepresented {
		c, ok := set.Get(id)
		if !ok {
			continue
		}
		add := pick(p.Vocabulary.ForTheme(c.Theme), c, redistributeLimit)
		if len(add) == 0 {
			continue
		}
		actions = append(actions, Action{
			Type:       ActionRedistributeKeywords,
			CategoryID: id,
			Add:        add,
			Reason:     "mention density below target band",
		})
	}
	for _, id := range snap.Uniformity.Overloaded {
		c, ok := set.Get(id)
		if !ok {
			continue
		}
		keep := int(float64(len(c.Keywords)) * truncateKeepRatio)
		if keep < 1 {
			keep = 1
		}
		if keep >= len(c.Keywords) {
			continue
		}
		remove := append([]string(nil), c.Keywords[keep:]...)
		actions = append(actions, Action{
			Type:       ActionRedistributeKeywords,
			CategoryID: id,
			Remove:     remove,
			Reason:     "mention density above target band",
		})
	}
	return actions
}

// planCoverage widens every top-level category with generic vocabulary.
func (p *Planner) planCoverage(snap metrics.Snapshot, set *category.Set) []Action {
	if snap.Coverage.Healthy {
		return nil
	}
	var actions []Action
	for _, c := range set.All() {
		if c.Depth != 0 {
			continue
		}
		add := pick(p.Vocabulary.Generic, c, expandLimit)
		if len(add) == 0 {
			continue
		}
		actions = append(actions, Action{
			Type:       ActionExpandKeywords,
			CategoryID: c.ID,
			Add:        add,
			Reason:     "corpus coverage below threshold",
		})
	}
	return actions
}

// planOrthogonality emits merge/split recommendations for correlated
// pairs. These never mutate state: changing category cardinality is the
// caller's decision.
func (p *Planner) planOrthogonality(snap metrics.Snapshot) []Action {
	if snap.Orthogonality.Healthy {
		return nil
	}
	var actions []Action
	for _, pair := range snap.Orthogonality.CorrelatedPairs {
		actions = append(actions, Action{
			Type:       ActionMergeOrSplit,
			CategoryID: pair.CategoryA,
			RelatedID:  pair.CategoryB,
			Reason:     fmt.Sprintf("%s severity keyword overlap (similarity %.2f)", pair.Severity, pair.Similarity),
		})
	}
	return actions
}
