package remediation

import "github.com/cognicore/taxometer/pkg/taxometer/category"

// Vocabulary holds the keyword pools remediation draws from. Pools are
// keyed by theme so that renaming a category never changes which fixes
// apply; Generic backs coverage expansion for any theme.
type Vocabulary struct {
	Themes  map[category.Theme][]string
	Generic []string
}

// DefaultVocabulary returns a built-in pool tuned for engineering-flavored
// corpora (commit histories, design documents). Callers with their own
// domains load a Vocabulary from config instead.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Themes: map[category.Theme][]string{
			category.ThemeAnalysis: {
				"analysis", "insight", "trend", "breakdown", "comparison",
				"evaluation", "assessment", "finding",
			},
			category.ThemeResearch: {
				"research", "study", "experiment", "hypothesis", "survey",
				"literature", "prototype", "novel",
			},
			category.ThemeEngineering: {
				"implement", "refactor", "fix", "feature", "module",
				"interface", "dependency", "performance",
			},
			category.ThemeOperations: {
				"deploy", "release", "rollback", "monitor", "incident",
				"pipeline", "infrastructure", "configuration",
			},
			category.ThemeDocumentation: {
				"document", "readme", "guide", "tutorial", "changelog",
				"reference", "example", "diagram",
			},
		},
		Generic: []string{
			"update", "change", "improve", "support", "issue",
			"review", "test", "design", "plan", "cleanup",
		},
	}
}

// ForTheme returns the pool for a theme, falling back to the generic pool
// for unknown or general themes.
func (v Vocabulary) ForTheme(theme category.Theme) []string {
	if pool, ok := v.Themes[theme]; ok && len(pool) > 0 {
		return pool
	}
	return v.Generic
}

// pick returns up to limit pool entries the category does not already
// carry.
func pick(pool []string, c *category.Category, limit int) []string {
	var out []string
	for _, kw := range pool {
		if len(out) == limit {
			break
		}
		if c.HasKeyword(kw) {
			continue
		}
		out = append(out, kw)
	}
	return out
}
