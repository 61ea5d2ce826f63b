package tree

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/treemark/internal/filter"
	"github.com/temirov/treemark/internal/utils"
)

// Entry describes one filtered directory entry.
type Entry struct {
	Path        string
	Name        string
	IsDirectory bool
}

// SelectionPredicate reports whether the file at absolutePath participates
// in a walk. A nil predicate admits every file.
type SelectionPredicate func(absolutePath string) bool

// Traverser lists and walks the filtered directory hierarchy under a single
// root. The tree model and the document builder share one traverser so both
// observe the same entries in the same order.
type Traverser struct {
	rootPath   string
	pathFilter *filter.PathFilter
}

// NewTraverser builds a Traverser rooted at rootPath.
func NewTraverser(rootPath string, pathFilter *filter.PathFilter) *Traverser {
	return &Traverser{rootPath: rootPath, pathFilter: pathFilter}
}

// RootPath returns the absolute root of the traversal.
func (traverser *Traverser) RootPath() string {
	return traverser.rootPath
}

// RelativePath converts absolutePath into a forward-slash path relative to
// the traversal root.
func (traverser *Traverser) RelativePath(absolutePath string) string {
	return utils.RelativePathOrSelf(absolutePath, traverser.rootPath)
}

// ListEntries returns the filtered children of directoryPath with
// directories first, then case-insensitive by name. An unreadable directory
// yields no entries.
func (traverser *Traverser) ListEntries(directoryPath string) []Entry {
	directoryEntries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		return nil
	}

	entries := make([]Entry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		entryPath := filepath.Join(directoryPath, directoryEntry.Name())
		if traverser.pathFilter.ShouldSkip(traverser.RelativePath(entryPath)) {
			continue
		}
		entries = append(entries, Entry{
			Path:        entryPath,
			Name:        directoryEntry.Name(),
			IsDirectory: directoryEntry.IsDir(),
		})
	}

	sort.SliceStable(entries, func(firstIndex, secondIndex int) bool {
		firstEntry := entries[firstIndex]
		secondEntry := entries[secondIndex]
		if firstEntry.IsDirectory != secondEntry.IsDirectory {
			return firstEntry.IsDirectory
		}
		return strings.ToLower(firstEntry.Name) < strings.ToLower(secondEntry.Name)
	})

	return entries
}

// WalkFiles visits every file under the traversal root in depth-first
// listing order, descending into each directory before visiting the files
// beside it. Files rejected by selectionPredicate are passed over without
// stopping the walk.
func (traverser *Traverser) WalkFiles(selectionPredicate SelectionPredicate, visit func(absolutePath string) error) error {
	return traverser.walkDirectory(traverser.rootPath, selectionPredicate, visit)
}

func (traverser *Traverser) walkDirectory(directoryPath string, selectionPredicate SelectionPredicate, visit func(absolutePath string) error) error {
	for _, entry := range traverser.ListEntries(directoryPath) {
		if entry.IsDirectory {
			if walkError := traverser.walkDirectory(entry.Path, selectionPredicate, visit); walkError != nil {
				return walkError
			}
			continue
		}
		if selectionPredicate != nil && !selectionPredicate(entry.Path) {
			continue
		}
		if visitError := visit(entry.Path); visitError != nil {
			return visitError
		}
	}
	return nil
}
