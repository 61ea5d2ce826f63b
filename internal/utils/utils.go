// Package utils contains general helper functions used across the treemark tool.
package utils

import (
	"path/filepath"
	"strings"
)

// Well-known file and directory names used across the project.
const (
	// IgnoreFileName is the name of the project's ignore file.
	IgnoreFileName = ".filetreeignore"
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
)

// HiddenNamePrefix marks path components treated as hidden.
const HiddenNamePrefix = "."

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// RelativePathOrSelf calculates the forward-slash relative path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// SplitPathSegments breaks a forward-slash relative path into its components.
// The current-directory marker yields an empty slice.
func SplitPathSegments(relativePath string) []string {
	normalizedPath := filepath.ToSlash(relativePath)
	if normalizedPath == EmptyString || normalizedPath == "." {
		return nil
	}
	return strings.Split(normalizedPath, "/")
}
