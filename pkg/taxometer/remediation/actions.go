package remediation

// ActionType identifies one kind of category mutation.
type ActionType string

// Action type constants.
const (
	// ActionRedistributeKeywords rebalances match density: starved
	// categories gain vocabulary, overloaded ones lose their tail.
	ActionRedistributeKeywords ActionType = "redistribute_keywords"

	// ActionExpandKeywords widens top-level categories to raise coverage.
	ActionExpandKeywords ActionType = "expand_keywords"

	// ActionMergeOrSplit is a recommendation only. Merging or splitting
	// changes category cardinality, which automatic remediation leaves to
	// the caller.
	ActionMergeOrSplit ActionType = "merge_or_split"

	// ActionEnhanceChildKeywords feeds nested categories theme vocabulary
	// so the hierarchy receives mentions.
	ActionEnhanceChildKeywords ActionType = "enhance_child_keywords"
)

// Action is one planned category mutation (or, for merge/split, one
// recommendation). Add and Remove list the exact keywords touched.
type Action struct {
	Type       ActionType
	CategoryID string
	RelatedID  string // second category of a merge/split pair
	Add        []string
	Remove     []string
	Reason     string
}

// Mutates reports whether applying the action changes category state.
func (a Action) Mutates() bool {
	return a.Type != ActionMergeOrSplit
}
