// Package types defines the cross-package data structures used by the treemark CLI.
package types

// SelectionState is the three-valued selection attached to every tree node.
type SelectionState int

const (
	// SelectionUnselected marks a node whose subtree is excluded from the document.
	SelectionUnselected SelectionState = iota
	// SelectionSelected marks a node whose subtree is included in the document.
	SelectionSelected
	// SelectionMixed marks a directory whose materialized children diverge.
	SelectionMixed
)

const (
	selectionUnselectedName = "unselected"
	selectionSelectedName   = "selected"
	selectionMixedName      = "mixed"
)

// String returns the human-readable name of the selection state.
func (selectionState SelectionState) String() string {
	switch selectionState {
	case SelectionSelected:
		return selectionSelectedName
	case SelectionMixed:
		return selectionMixedName
	default:
		return selectionUnselectedName
	}
}

// IsEffectivelySelected reports whether the state admits a path into the
// generated document. Mixed counts as selected: a partially selected
// directory still contributes its selected descendants.
func (selectionState SelectionState) IsEffectivelySelected() bool {
	return selectionState != SelectionUnselected
}

// Inherited resolves the state a freshly materialized child receives from its
// parent. Mixed collapses to selected because a child starts with no
// divergence of its own.
func (selectionState SelectionState) Inherited() SelectionState {
	if selectionState == SelectionUnselected {
		return SelectionUnselected
	}
	return SelectionSelected
}

// SelectionFromBool converts a plain toggle value into a selection state.
func SelectionFromBool(selected bool) SelectionState {
	if selected {
		return SelectionSelected
	}
	return SelectionUnselected
}

// DocumentStats aggregates information about one generated document.
type DocumentStats struct {
	FileCount     int
	EmbeddedBytes int64
	TokenCount    int
	TokenModel    string
}

// ValidatedRoot is an absolute root directory that already passed existence checks.
type ValidatedRoot struct {
	AbsolutePath string
	BaseName     string
}
