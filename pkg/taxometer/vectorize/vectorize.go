// Package vectorize turns categories and content into the term surfaces
// the metric engine compares: weighted term-frequency vectors for
// category-vs-category similarity, and whole-word mention counts for
// category-vs-content density.
package vectorize

import (
	"math"
	"strings"
	"unicode"

	"github.com/cognicore/taxometer/pkg/taxometer/category"
)

// Term weights for category vectors. Name tokens dominate because the
// name is the category's strongest identity signal.
const (
	nameTokenWeight    = 3.0
	keywordTokenWeight = 2.0
)

// Vector is a sparse term-weight mapping, L2-normalized on construction.
type Vector map[string]float64

// BuildVector builds the weighted term-frequency vector for a category:
// name tokens at weight 3.0, keyword tokens at weight 2.0, accumulated by
// lowercase token and then L2-normalized. A category with no name and no
// keywords yields the zero vector, which compares as similarity 0 with
// everything.
func BuildVector(c *category.Category) Vector {
	v := make(Vector)
	for _, tok := range strings.Fields(strings.ToLower(c.Name)) {
		v[tok] += nameTokenWeight
	}
	for _, kw := range c.Keywords {
		for _, tok := range strings.Fields(strings.ToLower(kw)) {
			v[tok] += keywordTokenWeight
		}
	}
	norm := v.Norm()
	if norm == 0 {
		return v
	}
	for tok, w := range v {
		v[tok] = w / norm
	}
	return v
}

// TermVector builds a plain L2-normalized term-frequency vector over
// pre-tokenized content, used for category-vs-content alignment.
func TermVector(tokens []string) Vector {
	v := make(Vector)
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		v[tok]++
	}
	norm := v.Norm()
	if norm == 0 {
		return v
	}
	for tok, w := range v {
		v[tok] = w / norm
	}
	return v
}

// Norm returns the Euclidean norm of the vector.
func (v Vector) Norm() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity between two vectors, defined as 0
// when either vector has zero norm. For a pair of vectors produced by
// BuildVector or TermVector the norms are 1, but the guard keeps the
// degenerate empty-category case from dividing by zero.
func Cosine(a, b Vector) float64 {
	normA, normB := a.Norm(), b.Norm()
	if normA == 0 || normB == 0 {
		return 0
	}
	// Iterate the smaller map.
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for tok, w := range a {
		dot += w * b[tok]
	}
	sim := dot / (normA * normB)
	// Rounding on normalized vectors can land a hair outside [0,1].
	if sim > 1 {
		sim = 1
	}
	if sim < 0 {
		sim = 0
	}
	return sim
}

// Tokenize splits text into lowercase tokens. Letters, digits and hyphens
// are token characters; everything else separates tokens. Single-character
// and purely numeric tokens are dropped, mixed tokens like "utf-8" are kept.
func Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder
	flush := func() {
		if current.Len() == 0 {
			return
		}
		word := strings.Trim(current.String(), "-")
		current.Reset()
		if len(word) <= 1 || isNumericOnly(word) {
			return
		}
		tokens = append(tokens, word)
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}

// MatchCount counts how strongly a category is mentioned in one text item:
// 1 if the lowercased name occurs as a substring, 1 more if the symbol
// does, plus the number of whole-word occurrences of every keyword. The
// result feeds coverage and density; an item with MatchCount > 0 for any
// category counts as covered.
func MatchCount(text string, c *category.Category) int {
	lower := strings.ToLower(text)
	count := 0
	if name := strings.ToLower(c.Name); name != "" && strings.Contains(lower, name) {
		count++
	}
	if sym := strings.ToLower(c.Symbol); sym != "" && strings.Contains(lower, sym) {
		count++
	}
	for _, kw := range c.Keywords {
		count += countWholeWord(lower, strings.ToLower(kw))
	}
	return count
}

// countWholeWord counts non-overlapping occurrences of word in text where
// both edges land on a word boundary. word may span several tokens
// ("neural network"); only its outer edges are boundary-checked.
func countWholeWord(text, word string) int {
	if word == "" {
		return 0
	}
	count, offset := 0, 0
	for {
		idx := strings.Index(text[offset:], word)
		if idx < 0 {
			return count
		}
		start := offset + idx
		end := start + len(word)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			count++
		}
		offset = end
	}
}

func boundaryBefore(text string, idx int) bool {
	if idx == 0 {
		return true
	}
	return !isWordByte(text[idx-1])
}

func boundaryAfter(text string, idx int) bool {
	if idx >= len(text) {
		return true
	}
	return !isWordByte(text[idx])
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
