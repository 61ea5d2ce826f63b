package filter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/treemark/internal/filter"
	"github.com/temirov/treemark/internal/utils"
)

// TestPathFilterIsExcluded verifies pattern matching against segment names and
// accumulated relative paths.
func TestPathFilterIsExcluded(testingInstance *testing.T) {
	testCases := []struct {
		testName        string
		excludePatterns []string
		relativePath    string
		expectedResult  bool
	}{
		{
			testName:        "bare name matches at any depth",
			excludePatterns: []string{"node_modules"},
			relativePath:    "src/node_modules/left-pad/index.js",
			expectedResult:  true,
		},
		{
			testName:        "glob matches segment name",
			excludePatterns: []string{"*.log"},
			relativePath:    "logs/app.log",
			expectedResult:  true,
		},
		{
			testName:        "subpath pattern matches its own subtree",
			excludePatterns: []string{"src/generated"},
			relativePath:    "src/generated/deep/file.go",
			expectedResult:  true,
		},
		{
			testName:        "subpath pattern leaves sibling trees alone",
			excludePatterns: []string{"src/generated"},
			relativePath:    "other/generated/file.go",
			expectedResult:  false,
		},
		{
			testName:        "doublestar pattern spans directories",
			excludePatterns: []string{"**/build"},
			relativePath:    "services/api/build/out.bin",
			expectedResult:  true,
		},
		{
			testName:        "unrelated path passes",
			excludePatterns: []string{"node_modules", "*.log"},
			relativePath:    "src/main.go",
			expectedResult:  false,
		},
		{
			testName:        "root marker is never excluded",
			excludePatterns: []string{"*"},
			relativePath:    ".",
			expectedResult:  false,
		},
	}

	for testCaseIndex, testCase := range testCases {
		pathFilter := filter.NewPathFilter(filter.Options{
			ExcludePatterns: testCase.excludePatterns,
			IncludeHidden:   true,
		})
		actualResult := pathFilter.IsExcluded(testCase.relativePath)
		if actualResult != testCase.expectedResult {
			testingInstance.Errorf("case %d (%s): IsExcluded(%q) = %v, want %v",
				testCaseIndex, testCase.testName, testCase.relativePath, actualResult, testCase.expectedResult)
		}
	}
}

// TestPathFilterIsHidden verifies the dot-prefix convention over root-relative components.
func TestPathFilterIsHidden(testingInstance *testing.T) {
	testCases := []struct {
		testName       string
		relativePath   string
		expectedResult bool
	}{
		{testName: "dot directory", relativePath: ".git", expectedResult: true},
		{testName: "hidden ancestor", relativePath: "src/.cache/entry.bin", expectedResult: true},
		{testName: "hidden file", relativePath: "src/.env", expectedResult: true},
		{testName: "visible path", relativePath: "src/visible.go", expectedResult: false},
		{testName: "root marker", relativePath: ".", expectedResult: false},
		{testName: "empty path", relativePath: "", expectedResult: false},
	}

	pathFilter := filter.NewPathFilter(filter.Options{IncludeHidden: true})
	for testCaseIndex, testCase := range testCases {
		actualResult := pathFilter.IsHidden(testCase.relativePath)
		if actualResult != testCase.expectedResult {
			testingInstance.Errorf("case %d (%s): IsHidden(%q) = %v, want %v",
				testCaseIndex, testCase.testName, testCase.relativePath, actualResult, testCase.expectedResult)
		}
	}
}

// TestPathFilterShouldSkip verifies the combined skip predicate.
func TestPathFilterShouldSkip(testingInstance *testing.T) {
	testCases := []struct {
		testName        string
		excludePatterns []string
		includeHidden   bool
		relativePath    string
		expectedResult  bool
	}{
		{
			testName:       "hidden entry kept when hidden entries are included",
			includeHidden:  true,
			relativePath:   ".config/settings.toml",
			expectedResult: false,
		},
		{
			testName:       "hidden entry skipped when hidden entries are excluded",
			includeHidden:  false,
			relativePath:   ".config/settings.toml",
			expectedResult: true,
		},
		{
			testName:        "excluded entry skipped regardless of hidden policy",
			excludePatterns: []string{"vendor"},
			includeHidden:   true,
			relativePath:    "vendor/module/file.go",
			expectedResult:  true,
		},
		{
			testName:        "root marker survives even with matching patterns",
			excludePatterns: []string{"*"},
			includeHidden:   false,
			relativePath:    ".",
			expectedResult:  false,
		},
		{
			testName:       "plain entry kept",
			includeHidden:  false,
			relativePath:   "cmd/main.go",
			expectedResult: false,
		},
	}

	for testCaseIndex, testCase := range testCases {
		pathFilter := filter.NewPathFilter(filter.Options{
			ExcludePatterns: testCase.excludePatterns,
			IncludeHidden:   testCase.includeHidden,
		})
		actualResult := pathFilter.ShouldSkip(testCase.relativePath)
		if actualResult != testCase.expectedResult {
			testingInstance.Errorf("case %d (%s): ShouldSkip(%q) = %v, want %v",
				testCaseIndex, testCase.testName, testCase.relativePath, actualResult, testCase.expectedResult)
		}
	}
}

// TestPathFilterGitignoreIntegration verifies optional .gitignore support.
func TestPathFilterGitignoreIntegration(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	gitignorePath := filepath.Join(rootDirectory, utils.GitIgnoreFileName)
	if writeError := os.WriteFile(gitignorePath, []byte("*.log\nbuild/\n"), 0o644); writeError != nil {
		testingInstance.Fatalf("failed to write %s: %v", gitignorePath, writeError)
	}

	gitignoreFilter := filter.NewPathFilter(filter.Options{
		RootPath:      rootDirectory,
		IncludeHidden: true,
		UseGitignore:  true,
	})
	if !gitignoreFilter.ShouldSkip("app.log") {
		testingInstance.Errorf("expected *.log entry to be skipped with gitignore enabled")
	}
	if !gitignoreFilter.ShouldSkip("build/out.txt") {
		testingInstance.Errorf("expected build output to be skipped with gitignore enabled")
	}
	if gitignoreFilter.ShouldSkip("src/keep.go") {
		testingInstance.Errorf("expected unrelated entry to be kept with gitignore enabled")
	}

	plainFilter := filter.NewPathFilter(filter.Options{
		RootPath:      rootDirectory,
		IncludeHidden: true,
		UseGitignore:  false,
	})
	if plainFilter.ShouldSkip("app.log") {
		testingInstance.Errorf("expected *.log entry to be kept with gitignore disabled")
	}
}
