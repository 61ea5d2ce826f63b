// Package document renders the selection tree and the chosen file contents
// into a single markdown document.
package document

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/temirov/treemark/internal/config"
	"github.com/temirov/treemark/internal/tree"
	"github.com/temirov/treemark/internal/types"
	"github.com/temirov/treemark/internal/utils"
)

const (
	// documentTitleFormat renders the heading above the tree drawing.
	documentTitleFormat = "# File Tree for `%s`\n"
	// sectionSeparator divides the tree drawing from the file contents.
	sectionSeparator = "\n---\n"
	// selectedFilesHeading opens the file contents section.
	selectedFilesHeading = "## Selected files\n"
	// fileHeadingFormat renders one embedded file's heading.
	fileHeadingFormat = "\n### `%s`\n"
	// taggedFenceFormat opens a fence carrying a language tag.
	taggedFenceFormat = "```%s"
	// plainFence opens and closes an untagged fence.
	plainFence = "```"
	// binaryFileNotice replaces the contents of a detected binary file.
	binaryFileNotice = "_Binary file — content not embedded._"
	// truncatedNoticeFormat follows contents cut at the byte limit.
	truncatedNoticeFormat = "_...truncated at %d bytes_"
	// readErrorFormat replaces the contents of an unreadable file.
	readErrorFormat = "_Error reading file: %v_"
	// lineSeparator joins document lines; the document has no trailing newline.
	lineSeparator = "\n"

	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	// singularFileLabel and pluralFileLabel feed the summary line.
	singularFileLabel = "file"
	pluralFileLabel   = "files"
	// summaryLineFormat renders the post-generation summary.
	summaryLineFormat = "Summary: %d %s, %s%s%s"
	// tokenCountFormat extends the summary with a token count.
	tokenCountFormat = ", %d tokens"
	// tokenModelFormat extends the summary with the counting model.
	tokenModelFormat = " (model: %s)"
)

// SelectionResolver reports the selection state governing absolute paths.
// The tree model satisfies this interface.
type SelectionResolver interface {
	EffectiveSelection(path string) types.SelectionState
	IsPathSelected(path string) bool
}

// Builder assembles the markdown document from the filtered hierarchy and
// the current selection.
type Builder struct {
	settings  config.Settings
	traverser *tree.Traverser
	selection SelectionResolver
}

// NewBuilder wires a Builder to the traverser and selection it renders.
func NewBuilder(settings config.Settings, traverser *tree.Traverser, selection SelectionResolver) *Builder {
	return &Builder{settings: settings, traverser: traverser, selection: selection}
}

// Build renders the document. The tree section always shows selected
// entries; includeUnselected additionally shows unselected ones. The
// contents section embeds every effectively selected file in traversal
// order. Lines are joined with single newlines and the document carries no
// trailing newline.
func (builder *Builder) Build(includeUnselected bool) (string, types.DocumentStats, error) {
	documentLines := []string{
		fmt.Sprintf(documentTitleFormat, builder.settings.RootName),
		builder.settings.RootName,
	}
	builder.renderTreeLevel(&documentLines, builder.traverser.RootPath(), utils.EmptyString, includeUnselected)

	documentLines = append(documentLines, sectionSeparator, selectedFilesHeading)

	documentStats := types.DocumentStats{}
	walkError := builder.traverser.WalkFiles(builder.selection.IsPathSelected, func(absolutePath string) error {
		builder.renderFileSection(&documentLines, &documentStats, absolutePath)
		return nil
	})
	if walkError != nil {
		return utils.EmptyString, types.DocumentStats{}, walkError
	}

	return strings.Join(documentLines, lineSeparator), documentStats, nil
}

// renderTreeLevel draws one directory level. Unselected entries may be
// hidden from the drawing, but recursion still descends every directory so
// selected descendants of hidden entries keep their positions.
func (builder *Builder) renderTreeLevel(documentLines *[]string, directoryPath string, prefix string, includeUnselected bool) {
	entries := builder.traverser.ListEntries(directoryPath)
	for entryIndex, entry := range entries {
		isLastEntry := entryIndex == len(entries)-1
		selectionState := builder.selection.EffectiveSelection(entry.Path)
		if includeUnselected || selectionState.IsEffectivelySelected() {
			branchConnector := treeBranchConnector
			if isLastEntry {
				branchConnector = treeLastConnector
			}
			*documentLines = append(*documentLines, prefix+branchConnector+builder.selectionIcon(selectionState)+" "+entry.Name)
		}
		if entry.IsDirectory {
			childPrefix := prefix + treeBranchPadding
			if isLastEntry {
				childPrefix = prefix + treeLastPadding
			}
			builder.renderTreeLevel(documentLines, entry.Path, childPrefix, includeUnselected)
		}
	}
}

func (builder *Builder) selectionIcon(selectionState types.SelectionState) string {
	switch selectionState {
	case types.SelectionSelected:
		return builder.settings.SelectedIcon
	case types.SelectionMixed:
		return builder.settings.MixedIcon
	default:
		return builder.settings.UnselectedIcon
	}
}

// renderFileSection embeds one selected file. Unreadable and binary files
// leave a notice in place of their contents, so a single bad file never
// aborts the document.
func (builder *Builder) renderFileSection(documentLines *[]string, documentStats *types.DocumentStats, absolutePath string) {
	relativePath := builder.traverser.RelativePath(absolutePath)
	*documentLines = append(*documentLines, fmt.Sprintf(fileHeadingFormat, relativePath))
	documentStats.FileCount++

	fileHandle, openError := os.Open(absolutePath)
	if openError != nil {
		*documentLines = append(*documentLines, fmt.Sprintf(readErrorFormat, openError))
		return
	}
	defer func() {
		_ = fileHandle.Close()
	}()

	sampleLimit := builder.settings.MaxFileBytes + 1
	if sampleLimit > utils.SampleSniffLimit {
		sampleLimit = utils.SampleSniffLimit
	}
	sampleBuffer := make([]byte, sampleLimit)
	sampleLength, sampleError := io.ReadFull(fileHandle, sampleBuffer)
	if sampleError != nil && sampleError != io.EOF && sampleError != io.ErrUnexpectedEOF {
		*documentLines = append(*documentLines, fmt.Sprintf(readErrorFormat, sampleError))
		return
	}
	sample := sampleBuffer[:sampleLength]

	if utils.IsBinarySample(sample) && !builder.settings.EmbedBinary {
		*documentLines = append(*documentLines, binaryFileNotice)
		return
	}

	content := sample
	remainderLimit := builder.settings.MaxFileBytes + 1 - len(sample)
	if remainderLimit > 0 {
		remainderBuffer := make([]byte, remainderLimit)
		remainderLength, remainderError := io.ReadFull(fileHandle, remainderBuffer)
		if remainderError != nil && remainderError != io.EOF && remainderError != io.ErrUnexpectedEOF {
			*documentLines = append(*documentLines, fmt.Sprintf(readErrorFormat, remainderError))
			return
		}
		content = append(content, remainderBuffer[:remainderLength]...)
	}

	truncated := len(content) > builder.settings.MaxFileBytes
	if truncated {
		content = content[:builder.settings.MaxFileBytes]
	}
	documentStats.EmbeddedBytes += int64(len(content))

	fenceLine := plainFence
	if languageTag := LanguageForPath(absolutePath); languageTag != utils.EmptyString {
		fenceLine = fmt.Sprintf(taggedFenceFormat, languageTag)
	}
	*documentLines = append(*documentLines, fenceLine)
	*documentLines = append(*documentLines, strings.TrimRight(decodeWithReplacement(content), lineSeparator))
	*documentLines = append(*documentLines, plainFence)
	if truncated {
		*documentLines = append(*documentLines, fmt.Sprintf(truncatedNoticeFormat, builder.settings.MaxFileBytes))
	}
}

// decodeWithReplacement interprets content as UTF-8, substituting one
// replacement character for each invalid byte.
func decodeWithReplacement(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}
	var decodedBuilder strings.Builder
	decodedBuilder.Grow(len(content))
	for len(content) > 0 {
		decodedRune, runeSize := utf8.DecodeRune(content)
		if decodedRune == utf8.RuneError && runeSize == 1 {
			decodedBuilder.WriteRune(utf8.RuneError)
		} else {
			decodedBuilder.Write(content[:runeSize])
		}
		content = content[runeSize:]
	}
	return decodedBuilder.String()
}

// FormatSummaryLine formats document statistics into the post-generation
// summary line.
func FormatSummaryLine(documentStats types.DocumentStats) string {
	fileLabel := pluralFileLabel
	if documentStats.FileCount == 1 {
		fileLabel = singularFileLabel
	}
	tokenExtra := utils.EmptyString
	if documentStats.TokenCount > 0 {
		tokenExtra = fmt.Sprintf(tokenCountFormat, documentStats.TokenCount)
	}
	modelSuffix := utils.EmptyString
	if documentStats.TokenModel != utils.EmptyString && documentStats.TokenCount > 0 {
		modelSuffix = fmt.Sprintf(tokenModelFormat, documentStats.TokenModel)
	}
	return fmt.Sprintf(summaryLineFormat, documentStats.FileCount, fileLabel, utils.FormatFileSize(documentStats.EmbeddedBytes), tokenExtra, modelSuffix)
}
