package metrics

import (
	"math"

	"github.com/cognicore/taxometer/pkg/taxometer/category"
	"github.com/cognicore/taxometer/pkg/taxometer/vectorize"
)

// categoryStats aggregates one category's footprint in the corpus.
type categoryStats struct {
	cat           *category.Category
	mentions      int
	nodeCount     int
	matchedTokens []string // tokens of every item this category matched
}

// corpusStats is one read-only pass over (categories, corpus). All metric
// sub-computations derive from it, so a snapshot scans the corpus once.
type corpusStats struct {
	totalItems int
	covered    int
	perCat     []categoryStats
}

func collect(set *category.Set, corpus []category.ContentItem) corpusStats {
	cats := set.All()
	stats := corpusStats{
		totalItems: len(corpus),
		perCat:     make([]categoryStats, len(cats)),
	}
	for i, c := range cats {
		stats.perCat[i] = categoryStats{
			cat:       c,
			nodeCount: nodeCount(set, c),
		}
	}

	for _, item := range corpus {
		matched := false
		var tokens []string
		for i := range stats.perCat {
			count := vectorize.MatchCount(item.Text, stats.perCat[i].cat)
			if count == 0 {
				continue
			}
			matched = true
			stats.perCat[i].mentions += count
			if tokens == nil {
				tokens = vectorize.Tokenize(item.Text)
			}
			stats.perCat[i].matchedTokens = append(stats.perCat[i].matchedTokens, tokens...)
		}
		if matched {
			stats.covered++
		}
	}
	return stats
}

// nodeCount estimates the number of conceptual sub-units in a category:
// itself plus all descendants, or, for a leaf carrying more than 3
// keywords, itself plus one unit per 3 keywords.
func nodeCount(set *category.Set, c *category.Category) int {
	descendants := set.DescendantCount(c.ID)
	if descendants > 0 {
		return 1 + descendants
	}
	if kw := len(c.Keywords); kw > 3 {
		return 1 + int(math.Ceil(float64(kw)/3))
	}
	return 1
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64, m float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}
