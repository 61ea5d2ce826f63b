package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/temirov/treemark/internal/config"
	"github.com/temirov/treemark/internal/types"
	"github.com/temirov/treemark/internal/utils"
)

const (
	// rootLabelFormat heads the browser with the absolute root path.
	rootLabelFormat = "Root: %s"
	// cursorMarker prefixes the focused row; cursorPlaceholder keeps the
	// other rows aligned with it.
	cursorMarker      = "> "
	cursorPlaceholder = "  "
	// rowIndentUnit indents one tree level.
	rowIndentUnit = "  "
	// collapsedDirectoryMarker and expandedDirectoryMarker signal whether a
	// directory row discloses its children; fileMarker keeps file rows
	// aligned with directory rows.
	collapsedDirectoryMarker = "▸ "
	expandedDirectoryMarker  = "▾ "
	fileMarker               = "  "
	// iconNameSeparator sits between the selection glyph and the entry name.
	iconNameSeparator = " "
	// confirmationQuestion is answered right before the document is written.
	confirmationQuestion = "Should unselected files/folders be visible in the file tree (above)?"
	// confirmationChoices lists the dialog answers.
	confirmationChoices = "[y] Yes    [n] No    [c] Cancel"
	// directoryDetailLabel stands in for a size on directory rows.
	directoryDetailLabel = "dir"
	// detailSeparator joins the cursor detail fields.
	detailSeparator = "  "
	// legendFormat explains the three selection glyphs.
	legendFormat = "%s selected   %s partial   %s unselected"
	// helpEntrySeparator joins the footer help entries.
	helpEntrySeparator = " • "
	// helpTextColor and dialogBorderColor are fixed chrome colors; the glyph
	// colors come from the resolved settings instead.
	helpTextColor     = "240"
	dialogBorderColor = "2"
	// statusTextColor marks footer error messages.
	statusTextColor = "1"
)

// styleSet carries the lipgloss styles derived from the resolved settings.
type styleSet struct {
	selected     lipgloss.Style
	selectedName lipgloss.Style
	unselected   lipgloss.Style
	mixed        lipgloss.Style
	help         lipgloss.Style
	status       lipgloss.Style
	dialog       lipgloss.Style
}

func newStyleSet(settings config.Settings) styleSet {
	selectedColor := lipgloss.Color(settings.SelectedColor)
	return styleSet{
		selected:     lipgloss.NewStyle().Foreground(selectedColor),
		selectedName: lipgloss.NewStyle().Foreground(selectedColor).Bold(true),
		unselected:   lipgloss.NewStyle().Foreground(lipgloss.Color(settings.UnselectedColor)),
		mixed:        lipgloss.NewStyle().Foreground(lipgloss.Color(settings.MixedColor)),
		help:         lipgloss.NewStyle().Foreground(lipgloss.Color(helpTextColor)),
		status:       lipgloss.NewStyle().Foreground(lipgloss.Color(statusTextColor)),
		dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(dialogBorderColor)).
			Padding(0, 2).
			Align(lipgloss.Center),
	}
}

// View implements tea.Model.
func (browserModel *Model) View() string {
	viewLines := []string{
		fmt.Sprintf(rootLabelFormat, browserModel.settings.RootPath),
		utils.EmptyString,
	}
	viewLines = append(viewLines, browserModel.renderTreeRows()...)
	viewLines = append(viewLines, utils.EmptyString)
	if browserModel.mode == modeConfirm {
		viewLines = append(viewLines, browserModel.renderConfirmDialog())
	} else {
		viewLines = append(viewLines,
			browserModel.cursorDetailLine(),
			browserModel.legendLine(),
			browserModel.footerLine())
	}
	return strings.Join(viewLines, "\n") + "\n"
}

func (browserModel *Model) renderTreeRows() []string {
	firstRowIndex := browserModel.viewportOffset
	lastRowIndex := firstRowIndex + browserModel.treeRowCapacity()
	if lastRowIndex > len(browserModel.visibleRows) {
		lastRowIndex = len(browserModel.visibleRows)
	}
	renderedRows := make([]string, 0, lastRowIndex-firstRowIndex)
	for rowIndex := firstRowIndex; rowIndex < lastRowIndex; rowIndex++ {
		renderedRows = append(renderedRows, browserModel.renderRow(rowIndex))
	}
	return renderedRows
}

func (browserModel *Model) renderRow(rowIndex int) string {
	row := browserModel.visibleRows[rowIndex]
	marker := cursorPlaceholder
	if rowIndex == browserModel.cursorIndex {
		marker = cursorMarker
	}
	disclosure := fileMarker
	if row.node.IsDirectory {
		disclosure = collapsedDirectoryMarker
		if row.node.Expanded {
			disclosure = expandedDirectoryMarker
		}
	}
	icon, nameStyle := browserModel.rowAppearance(row.node.Selection)
	indent := strings.Repeat(rowIndentUnit, row.depth)
	return marker + indent + disclosure + icon + iconNameSeparator + nameStyle.Render(row.node.Name)
}

// rowAppearance returns the styled glyph and the name style for a selection
// state. Selected entries carry a bold name, matching the emphasis the
// generated tree puts on kept content.
func (browserModel *Model) rowAppearance(selectionState types.SelectionState) (string, lipgloss.Style) {
	switch selectionState {
	case types.SelectionSelected:
		return browserModel.styles.selected.Render(browserModel.settings.SelectedIcon), browserModel.styles.selectedName
	case types.SelectionMixed:
		return browserModel.styles.mixed.Render(browserModel.settings.MixedIcon), browserModel.styles.mixed
	default:
		return browserModel.styles.unselected.Render(browserModel.settings.UnselectedIcon), browserModel.styles.unselected
	}
}

// cursorDetailLine describes the focused entry: root-relative path, size
// (or a directory label), and modification time.
func (browserModel *Model) cursorDetailLine() string {
	currentRow, rowAvailable := browserModel.currentRow()
	if !rowAvailable {
		return utils.EmptyString
	}
	relativePath := utils.RelativePathOrSelf(currentRow.node.Path, browserModel.settings.RootPath)
	fileInfo, statError := os.Stat(currentRow.node.Path)
	if statError != nil {
		return relativePath
	}
	sizeDetail := utils.FormatFileSize(fileInfo.Size())
	if currentRow.node.IsDirectory {
		sizeDetail = directoryDetailLabel
	}
	return strings.Join(
		[]string{relativePath, sizeDetail, utils.FormatTimestamp(fileInfo.ModTime())},
		detailSeparator)
}

func (browserModel *Model) legendLine() string {
	return fmt.Sprintf(legendFormat,
		browserModel.styles.selected.Render(browserModel.settings.SelectedIcon),
		browserModel.styles.mixed.Render(browserModel.settings.MixedIcon),
		browserModel.styles.unselected.Render(browserModel.settings.UnselectedIcon))
}

// footerLine shows the pending status message when one is set, otherwise the
// key help.
func (browserModel *Model) footerLine() string {
	if browserModel.statusMessage != utils.EmptyString {
		return browserModel.styles.status.Render(browserModel.statusMessage)
	}
	helpBindings := []key.Binding{
		browserModel.browseKeys.MoveUp,
		browserModel.browseKeys.MoveDown,
		browserModel.browseKeys.ExpandCollapse,
		browserModel.browseKeys.ToggleSelection,
		browserModel.browseKeys.SelectAll,
		browserModel.browseKeys.SelectNone,
		browserModel.browseKeys.Refresh,
		browserModel.browseKeys.Generate,
		browserModel.browseKeys.Quit,
	}
	helpEntries := make([]string, 0, len(helpBindings))
	for _, helpBinding := range helpBindings {
		helpEntries = append(helpEntries, helpBinding.Help().Key+iconNameSeparator+helpBinding.Help().Desc)
	}
	return browserModel.styles.help.Render(strings.Join(helpEntries, helpEntrySeparator))
}

func (browserModel *Model) renderConfirmDialog() string {
	dialogBox := browserModel.styles.dialog.Render(confirmationQuestion + "\n\n" + confirmationChoices)
	if browserModel.viewportWidth > 0 {
		return lipgloss.PlaceHorizontal(browserModel.viewportWidth, lipgloss.Center, dialogBox)
	}
	return dialogBox
}
