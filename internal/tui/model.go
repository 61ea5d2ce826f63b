// Package tui implements the interactive file tree browser. The browser
// lets the user walk the directory tree, toggle selection per node, and
// trigger document generation through a confirmation dialog.
package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/temirov/treemark/internal/config"
	"github.com/temirov/treemark/internal/document"
	"github.com/temirov/treemark/internal/tree"
	"github.com/temirov/treemark/internal/types"
	"github.com/temirov/treemark/internal/utils"
)

// sessionMode identifies which input surface currently owns the keyboard.
type sessionMode int

const (
	// modeBrowse is the default tree navigation mode.
	modeBrowse sessionMode = iota
	// modeConfirm is active while the generation dialog is open.
	modeConfirm
)

// outputFilePermissions applies to the generated document file.
const outputFilePermissions = 0o644

// reservedChromeLineCount counts the view lines that are not tree rows: the
// root label, two separator blanks, the cursor detail line, the glyph
// legend, and the footer.
const reservedChromeLineCount = 6

// visibleRow pairs a flattened node with its depth below the root row.
type visibleRow struct {
	node  *tree.Node
	depth int
}

// Outcome reports what a finished browsing session produced. Quitting
// without generating leaves the zero value.
type Outcome struct {
	DocumentWritten bool
	DocumentText    string
	OutputPath      string
	Stats           types.DocumentStats
}

// Model is the bubbletea model behind the browser.
type Model struct {
	settings    config.Settings
	treeModel   *tree.Model
	builder     *document.Builder
	browseKeys  browseKeyMap
	confirmKeys confirmKeyMap
	styles      styleSet

	mode           sessionMode
	visibleRows    []visibleRow
	cursorIndex    int
	viewportOffset int
	viewportWidth  int
	viewportHeight int
	statusMessage  string
	outcome        Outcome
}

var _ tea.Model = (*Model)(nil)

// NewModel builds a browser over an already constructed tree model and
// document builder. The cursor starts on the root row.
func NewModel(settings config.Settings, treeModel *tree.Model, builder *document.Builder) *Model {
	browserModel := &Model{
		settings:    settings,
		treeModel:   treeModel,
		builder:     builder,
		browseKeys:  newBrowseKeyMap(),
		confirmKeys: newConfirmKeyMap(),
		styles:      newStyleSet(settings),
	}
	browserModel.rebuildVisibleRows()
	return browserModel
}

// Outcome returns the session result for the caller that ran the program.
func (browserModel *Model) Outcome() Outcome {
	return browserModel.outcome
}

// CursorPath returns the absolute path of the focused row.
func (browserModel *Model) CursorPath() string {
	currentRow, rowAvailable := browserModel.currentRow()
	if !rowAvailable {
		return utils.EmptyString
	}
	return currentRow.node.Path
}

// VisibleRowCount returns how many rows the flattened tree currently holds.
func (browserModel *Model) VisibleRowCount() int {
	return len(browserModel.visibleRows)
}

// Init implements tea.Model.
func (browserModel *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (browserModel *Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch typedMessage := message.(type) {
	case tea.WindowSizeMsg:
		browserModel.viewportWidth = typedMessage.Width
		browserModel.viewportHeight = typedMessage.Height
		browserModel.ensureCursorVisible()
		return browserModel, nil
	case tea.KeyMsg:
		if browserModel.mode == modeConfirm {
			return browserModel.updateConfirm(typedMessage)
		}
		return browserModel.updateBrowse(typedMessage)
	}
	return browserModel, nil
}

func (browserModel *Model) updateBrowse(keyMessage tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMessage, browserModel.browseKeys.Quit):
		return browserModel, tea.Quit
	case key.Matches(keyMessage, browserModel.browseKeys.MoveUp):
		browserModel.moveCursor(-1)
	case key.Matches(keyMessage, browserModel.browseKeys.MoveDown):
		browserModel.moveCursor(1)
	case key.Matches(keyMessage, browserModel.browseKeys.ExpandCollapse):
		browserModel.expandCollapseCursor()
	case key.Matches(keyMessage, browserModel.browseKeys.ToggleSelection):
		browserModel.toggleCursor()
	case key.Matches(keyMessage, browserModel.browseKeys.SelectAll):
		browserModel.treeModel.SelectAll()
	case key.Matches(keyMessage, browserModel.browseKeys.SelectNone):
		browserModel.treeModel.SelectNone()
	case key.Matches(keyMessage, browserModel.browseKeys.Refresh):
		browserModel.treeModel.Refresh()
		browserModel.rebuildVisibleRows()
	case key.Matches(keyMessage, browserModel.browseKeys.Generate):
		browserModel.statusMessage = utils.EmptyString
		browserModel.mode = modeConfirm
	}
	return browserModel, nil
}

func (browserModel *Model) updateConfirm(keyMessage tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMessage, browserModel.browseKeys.Quit):
		return browserModel, tea.Quit
	case key.Matches(keyMessage, browserModel.confirmKeys.Yes):
		return browserModel.generateDocument(true)
	case key.Matches(keyMessage, browserModel.confirmKeys.No):
		return browserModel.generateDocument(false)
	case key.Matches(keyMessage, browserModel.confirmKeys.Cancel):
		browserModel.mode = modeBrowse
	}
	return browserModel, nil
}

// generateDocument builds the document, writes it next to the root, and quits
// on success. A build or write failure keeps the session alive and surfaces
// the error in the footer.
func (browserModel *Model) generateDocument(includeUnselected bool) (tea.Model, tea.Cmd) {
	browserModel.mode = modeBrowse
	documentText, documentStats, buildError := browserModel.builder.Build(includeUnselected)
	if buildError != nil {
		browserModel.statusMessage = fmt.Sprintf(utils.ErrorLogFormat, buildError)
		return browserModel, nil
	}
	outputPath := browserModel.settings.OutputFilePath()
	writeError := os.WriteFile(outputPath, []byte(documentText), outputFilePermissions)
	if writeError != nil {
		browserModel.statusMessage = fmt.Sprintf(utils.ErrorLogFormat, writeError)
		return browserModel, nil
	}
	browserModel.outcome = Outcome{
		DocumentWritten: true,
		DocumentText:    documentText,
		OutputPath:      outputPath,
		Stats:           documentStats,
	}
	return browserModel, tea.Quit
}

// rebuildVisibleRows reflattens the tree and keeps the cursor on the row it
// was on when that path is still visible.
func (browserModel *Model) rebuildVisibleRows() {
	var preservedPath string
	if currentRow, rowAvailable := browserModel.currentRow(); rowAvailable {
		preservedPath = currentRow.node.Path
	}
	browserModel.visibleRows = flattenVisibleRows(browserModel.treeModel.Root(), 0)
	browserModel.cursorIndex = 0
	for rowIndex, row := range browserModel.visibleRows {
		if row.node.Path == preservedPath {
			browserModel.cursorIndex = rowIndex
			break
		}
	}
	browserModel.ensureCursorVisible()
}

func flattenVisibleRows(node *tree.Node, depth int) []visibleRow {
	rows := []visibleRow{{node: node, depth: depth}}
	if node.Expanded {
		for _, childNode := range node.Children {
			rows = append(rows, flattenVisibleRows(childNode, depth+1)...)
		}
	}
	return rows
}

func (browserModel *Model) currentRow() (visibleRow, bool) {
	if browserModel.cursorIndex < 0 || browserModel.cursorIndex >= len(browserModel.visibleRows) {
		return visibleRow{}, false
	}
	return browserModel.visibleRows[browserModel.cursorIndex], true
}

func (browserModel *Model) moveCursor(delta int) {
	nextIndex := browserModel.cursorIndex + delta
	if nextIndex < 0 || nextIndex >= len(browserModel.visibleRows) {
		return
	}
	browserModel.cursorIndex = nextIndex
	browserModel.ensureCursorVisible()
}

// expandCollapseCursor toggles disclosure of the focused directory. The
// first expansion populates the directory's children.
func (browserModel *Model) expandCollapseCursor() {
	currentRow, rowAvailable := browserModel.currentRow()
	if !rowAvailable || !currentRow.node.IsDirectory {
		return
	}
	if currentRow.node.Expanded {
		currentRow.node.Expanded = false
	} else {
		browserModel.treeModel.Populate(currentRow.node)
		currentRow.node.Expanded = true
	}
	browserModel.rebuildVisibleRows()
}

func (browserModel *Model) toggleCursor() {
	currentRow, rowAvailable := browserModel.currentRow()
	if !rowAvailable {
		return
	}
	browserModel.treeModel.Toggle(currentRow.node)
}

// treeRowCapacity returns how many tree rows fit in the viewport. Before the
// first window size message arrives every row is shown.
func (browserModel *Model) treeRowCapacity() int {
	if browserModel.viewportHeight <= 0 {
		return len(browserModel.visibleRows)
	}
	capacity := browserModel.viewportHeight - reservedChromeLineCount
	if capacity < 1 {
		capacity = 1
	}
	return capacity
}

func (browserModel *Model) ensureCursorVisible() {
	capacity := browserModel.treeRowCapacity()
	if capacity <= 0 {
		return
	}
	if browserModel.cursorIndex < browserModel.viewportOffset {
		browserModel.viewportOffset = browserModel.cursorIndex
	}
	if browserModel.cursorIndex >= browserModel.viewportOffset+capacity {
		browserModel.viewportOffset = browserModel.cursorIndex - capacity + 1
	}
	if browserModel.viewportOffset < 0 {
		browserModel.viewportOffset = 0
	}
}
