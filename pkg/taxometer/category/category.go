package category

import (
	"fmt"
	"strings"

	"github.com/cognicore/taxometer/pkg/taxometer/internalerr"
)

// Category is a named, keyword-defined bucket used to classify content.
// Categories form a forest: ParentID links a child to its parent, Depth 0
// marks a top-level category.
type Category struct {
	ID       string
	Name     string
	Symbol   string // optional short marker, matched as a substring
	Keywords []string
	Weight   float64
	Depth    int
	ParentID string
	Theme    Theme
}

// HasKeyword reports whether the category already carries the keyword,
// case-insensitively.
func (c *Category) HasKeyword(kw string) bool {
	kw = strings.ToLower(strings.TrimSpace(kw))
	for _, existing := range c.Keywords {
		if strings.ToLower(existing) == kw {
			return true
		}
	}
	return false
}

// AddKeyword appends a keyword unless it is empty or already present.
// It reports whether the keyword was added.
func (c *Category) AddKeyword(kw string) bool {
	kw = strings.ToLower(strings.TrimSpace(kw))
	if kw == "" || c.HasKeyword(kw) {
		return false
	}
	c.Keywords = append(c.Keywords, kw)
	return true
}

// RemoveKeywords drops the given keywords from the category, case-insensitively.
func (c *Category) RemoveKeywords(kws []string) {
	if len(kws) == 0 {
		return
	}
	drop := make(map[string]struct{}, len(kws))
	for _, kw := range kws {
		drop[strings.ToLower(strings.TrimSpace(kw))] = struct{}{}
	}
	kept := c.Keywords[:0]
	for _, existing := range c.Keywords {
		if _, ok := drop[strings.ToLower(existing)]; ok {
			continue
		}
		kept = append(kept, existing)
	}
	c.Keywords = kept
}

// ContentItem is one corpus text surface (a commit message, a document
// excerpt). The engine treats Text as opaque and matches case-insensitively.
type ContentItem struct {
	Text string
}

// Set is the mutable category collection a convergence run operates on.
// The loop owns one Set: the metric engine reads it, the remediation
// planner mutates keyword lists in place. Cardinality is fixed for the
// duration of a run.
type Set struct {
	cats  []*Category
	index map[string]*Category
}

// NewSet builds a Set over the given categories. The slice is retained;
// callers hand over ownership for the duration of a run.
func NewSet(cats []*Category) *Set {
	s := &Set{
		cats:  cats,
		index: make(map[string]*Category, len(cats)),
	}
	for _, c := range cats {
		s.index[c.ID] = c
	}
	return s
}

// Validate checks the structural preconditions the engine assumes:
// unique non-empty ids, parent references that resolve, no parent cycles,
// and non-negative depths. It is the only boundary that reports a
// malformed graph; measurement itself never re-checks.
func (s *Set) Validate() error {
	seen := make(map[string]struct{}, len(s.cats))
	for _, c := range s.cats {
		if c.ID == "" {
			return fmt.Errorf("%w: category %q has empty id", internalerr.ErrMalformedGraph, c.Name)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("%w: duplicate category id %q", internalerr.ErrMalformedGraph, c.ID)
		}
		seen[c.ID] = struct{}{}
		if c.Depth < 0 {
			return fmt.Errorf("%w: category %q has negative depth", internalerr.ErrMalformedGraph, c.ID)
		}
	}
	for _, c := range s.cats {
		if c.ParentID == "" {
			continue
		}
		if _, ok := s.index[c.ParentID]; !ok {
			return fmt.Errorf("%w: category %q references missing parent %q", internalerr.ErrMalformedGraph, c.ID, c.ParentID)
		}
		// Walk the parent chain; revisiting a node means a cycle.
		visited := map[string]struct{}{c.ID: {}}
		cur := c.ParentID
		for cur != "" {
			if _, ok := visited[cur]; ok {
				return fmt.Errorf("%w: parent cycle through category %q", internalerr.ErrMalformedGraph, cur)
			}
			visited[cur] = struct{}{}
			cur = s.index[cur].ParentID
		}
	}
	return nil
}

// All returns the categories in insertion order. The returned slice is the
// Set's own backing; callers must not reorder it.
func (s *Set) All() []*Category {
	return s.cats
}

// Get returns the category with the given id.
func (s *Set) Get(id string) (*Category, bool) {
	c, ok := s.index[id]
	return c, ok
}

// Len returns the number of categories.
func (s *Set) Len() int {
	return len(s.cats)
}

// Children returns the direct children of the given category id.
func (s *Set) Children(id string) []*Category {
	var out []*Category
	for _, c := range s.cats {
		if c.ParentID == id {
			out = append(out, c)
		}
	}
	return out
}

// DescendantCount returns the number of categories below the given id,
// at any depth.
func (s *Set) DescendantCount(id string) int {
	count := 0
	for _, child := range s.Children(id) {
		count += 1 + s.DescendantCount(child.ID)
	}
	return count
}
