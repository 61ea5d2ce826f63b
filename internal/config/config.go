// Package config loads treemark configuration and ignore-file patterns.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/treemark/internal/utils"
)

const (
	// commentLinePrefix marks ignore-file lines that are skipped entirely.
	commentLinePrefix = "#"
	// warningCloseFormat reports a failure to close an ignore file.
	warningCloseFormat = "Warning: failed to close %s: %v\n"
	// errorLoadIgnoreFormat reports a failure to read an ignore file.
	errorLoadIgnoreFormat = "loading %s from %s: %w"
)

// LoadIgnoreFilePatterns reads the ignore file at ignoreFilePath and returns
// one pattern per non-empty, non-comment line. A missing file yields no
// patterns and no error.
//
// #nosec G304
func LoadIgnoreFilePatterns(ignoreFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, warningCloseFormat, ignoreFilePath, closeError)
		}
	}()

	var ignorePatterns []string
	lineScanner := bufio.NewScanner(fileHandle)
	for lineScanner.Scan() {
		trimmedLine := strings.TrimSpace(lineScanner.Text())
		if trimmedLine == utils.EmptyString || strings.HasPrefix(trimmedLine, commentLinePrefix) {
			continue
		}
		ignorePatterns = append(ignorePatterns, trimmedLine)
	}
	if scanError := lineScanner.Err(); scanError != nil {
		return nil, scanError
	}
	return ignorePatterns, nil
}

// CombineExcludePatterns extends basePatterns with the root directory's
// ignore-file patterns when useIgnoreFile is enabled, deduplicating while
// preserving order. Base patterns keep precedence over ignore-file entries.
func CombineExcludePatterns(rootDirectoryPath string, basePatterns []string, useIgnoreFile bool) ([]string, error) {
	combinedPatterns := make([]string, 0, len(basePatterns))
	for _, pattern := range basePatterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == utils.EmptyString {
			continue
		}
		combinedPatterns = append(combinedPatterns, trimmedPattern)
	}

	if useIgnoreFile {
		ignoreFilePath := filepath.Join(rootDirectoryPath, utils.IgnoreFileName)
		ignoreFilePatterns, loadError := LoadIgnoreFilePatterns(ignoreFilePath)
		if loadError != nil {
			return nil, fmt.Errorf(errorLoadIgnoreFormat, utils.IgnoreFileName, rootDirectoryPath, loadError)
		}
		combinedPatterns = append(combinedPatterns, ignoreFilePatterns...)
	}

	return utils.DeduplicatePatterns(combinedPatterns), nil
}
