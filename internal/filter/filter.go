// Package filter decides which filesystem entries participate in the file tree.
package filter

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/temirov/treemark/internal/utils"
)

// relativePathSeparator joins accumulated path segments for pattern matching.
const relativePathSeparator = "/"

// rootRelativePath marks the filter root itself, which is never skipped.
const rootRelativePath = "."

// Options configures a PathFilter.
type Options struct {
	RootPath        string
	ExcludePatterns []string
	IncludeHidden   bool
	UseGitignore    bool
}

// PathFilter evaluates exclusion patterns and the hidden-entry policy
// against root-relative paths.
type PathFilter struct {
	excludePatterns []string
	includeHidden   bool
	gitignoreRules  *ignore.GitIgnore
}

// NewPathFilter builds a PathFilter from options. When gitignore support is
// requested the root's .gitignore file is compiled if present.
func NewPathFilter(options Options) *PathFilter {
	pathFilter := &PathFilter{
		excludePatterns: options.ExcludePatterns,
		includeHidden:   options.IncludeHidden,
	}
	if options.UseGitignore && options.RootPath != utils.EmptyString {
		gitignorePath := filepath.Join(options.RootPath, utils.GitIgnoreFileName)
		if compiledRules, compileError := ignore.CompileIgnoreFile(gitignorePath); compileError == nil {
			pathFilter.gitignoreRules = compiledRules
		}
	}
	return pathFilter
}

// IsExcluded reports whether any prefix of relativePath matches an exclusion
// pattern. Each prefix is tested twice, once as its final segment name and
// once as the accumulated relative path, so a pattern can target either a
// bare name anywhere in the tree or a specific subpath.
func (pathFilter *PathFilter) IsExcluded(relativePath string) bool {
	pathSegments := utils.SplitPathSegments(relativePath)
	if len(pathSegments) == 0 {
		return false
	}
	accumulatedPath := utils.EmptyString
	for _, pathSegment := range pathSegments {
		if accumulatedPath == utils.EmptyString {
			accumulatedPath = pathSegment
		} else {
			accumulatedPath = accumulatedPath + relativePathSeparator + pathSegment
		}
		for _, excludePattern := range pathFilter.excludePatterns {
			if segmentMatched, _ := doublestar.Match(excludePattern, pathSegment); segmentMatched {
				return true
			}
			if pathMatched, _ := doublestar.Match(excludePattern, accumulatedPath); pathMatched {
				return true
			}
		}
	}
	return false
}

// IsHidden reports whether any component of relativePath starts with a dot.
// Only root-relative components are considered, so a hidden ancestor of the
// root never hides the whole tree.
func (pathFilter *PathFilter) IsHidden(relativePath string) bool {
	for _, pathSegment := range utils.SplitPathSegments(relativePath) {
		if strings.HasPrefix(pathSegment, utils.HiddenNamePrefix) {
			return true
		}
	}
	return false
}

// ShouldSkip reports whether the entry at relativePath is omitted from the
// tree entirely. The filter root itself is never skipped.
func (pathFilter *PathFilter) ShouldSkip(relativePath string) bool {
	if relativePath == utils.EmptyString || relativePath == rootRelativePath {
		return false
	}
	if !pathFilter.includeHidden && pathFilter.IsHidden(relativePath) {
		return true
	}
	if pathFilter.IsExcluded(relativePath) {
		return true
	}
	if pathFilter.gitignoreRules != nil && pathFilter.gitignoreRules.MatchesPath(relativePath) {
		return true
	}
	return false
}
