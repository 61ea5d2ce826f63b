package tui

import "github.com/charmbracelet/bubbles/key"

// browseKeyMap holds the bindings active while the tree browser owns the
// keyboard.
type browseKeyMap struct {
	MoveUp          key.Binding
	MoveDown        key.Binding
	ExpandCollapse  key.Binding
	ToggleSelection key.Binding
	SelectAll       key.Binding
	SelectNone      key.Binding
	Refresh         key.Binding
	Generate        key.Binding
	Quit            key.Binding
}

// newBrowseKeyMap returns the standard browser bindings.
func newBrowseKeyMap() browseKeyMap {
	return browseKeyMap{
		MoveUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		ExpandCollapse: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "expand/collapse"),
		),
		ToggleSelection: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle selection"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all"),
		),
		SelectNone: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "select none"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload tree"),
		),
		Generate: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "generate markdown"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// confirmKeyMap holds the bindings active while the generation dialog waits
// for an answer.
type confirmKeyMap struct {
	Yes    key.Binding
	No     key.Binding
	Cancel key.Binding
}

// newConfirmKeyMap returns the dialog bindings.
func newConfirmKeyMap() confirmKeyMap {
	return confirmKeyMap{
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "include unselected"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "selected only"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("c", "esc"),
			key.WithHelp("c/esc", "cancel"),
		),
	}
}
