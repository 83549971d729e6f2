package category

import "strings"

// Theme is a coarse topical tag assigned at category creation time. The
// remediation planner keys its keyword vocabularies off the theme, so
// renaming a category never changes which fixes apply to it.
type Theme string

// Theme constants.
const (
	ThemeGeneral       Theme = "general"
	ThemeAnalysis      Theme = "analysis"
	ThemeResearch      Theme = "research"
	ThemeEngineering   Theme = "engineering"
	ThemeOperations    Theme = "operations"
	ThemeDocumentation Theme = "documentation"
)

// themeHints maps lowercase name fragments to themes, most specific first.
var themeHints = []struct {
	fragment string
	theme    Theme
}{
	{"analys", ThemeAnalysis},
	{"analyt", ThemeAnalysis},
	{"metric", ThemeAnalysis},
	{"research", ThemeResearch},
	{"patent", ThemeResearch},
	{"study", ThemeResearch},
	{"engineer", ThemeEngineering},
	{"build", ThemeEngineering},
	{"refactor", ThemeEngineering},
	{"infra", ThemeOperations},
	{"deploy", ThemeOperations},
	{"ops", ThemeOperations},
	{"doc", ThemeDocumentation},
	{"guide", ThemeDocumentation},
}

// ThemeForName classifies a human-readable category name into a Theme.
// It exists for callers migrating data that carried no theme tag; new
// categories should be created with an explicit Theme.
func ThemeForName(name string) Theme {
	lower := strings.ToLower(name)
	for _, hint := range themeHints {
		if strings.Contains(lower, hint.fragment) {
			return hint.theme
		}
	}
	return ThemeGeneral
}
