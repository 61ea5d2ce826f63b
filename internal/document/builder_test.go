package document_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/treemark/internal/config"
	"github.com/temirov/treemark/internal/document"
	"github.com/temirov/treemark/internal/filter"
	"github.com/temirov/treemark/internal/tree"
	"github.com/temirov/treemark/internal/types"
)

// writeFixtureFile creates a file and its parent directories, failing the test on error.
func writeFixtureFile(testingInstance *testing.T, filePath string, content []byte) {
	testingInstance.Helper()
	if directoryError := os.MkdirAll(filepath.Dir(filePath), 0o755); directoryError != nil {
		testingInstance.Fatalf("failed to create directory for %s: %v", filePath, directoryError)
	}
	if writeError := os.WriteFile(filePath, content, 0o644); writeError != nil {
		testingInstance.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

// newFixtureBuilder wires a builder and its tree model over rootDirectory.
func newFixtureBuilder(rootDirectory string, maxFileBytes int, embedBinary bool, excludePatterns []string) (*document.Builder, *tree.Model) {
	pathFilter := filter.NewPathFilter(filter.Options{
		RootPath:        rootDirectory,
		ExcludePatterns: excludePatterns,
		IncludeHidden:   true,
	})
	traverser := tree.NewTraverser(rootDirectory, pathFilter)
	treeModel := tree.NewModel(traverser)
	settings := config.Settings{
		RootPath:       rootDirectory,
		RootName:       filepath.Base(rootDirectory),
		MaxFileBytes:   maxFileBytes,
		EmbedBinary:    embedBinary,
		SelectedIcon:   "◉",
		UnselectedIcon: "◯",
		MixedIcon:      "◐",
	}
	return document.NewBuilder(settings, traverser, treeModel), treeModel
}

// TestBuildRendersSelectedTreeAndContents drives the full document through a
// small project with one deselected binary and checks the exact output.
func TestBuildRendersSelectedTreeAndContents(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	rootName := filepath.Base(rootDirectory)
	writeFixtureFile(testingInstance, filepath.Join(rootDirectory, "src", "a.go"), []byte("fmt.Println(1)\n"))
	writeFixtureFile(testingInstance, filepath.Join(rootDirectory, "src", "b.bin"), []byte{0x00, 0x01, 0x02})
	writeFixtureFile(testingInstance, filepath.Join(rootDirectory, ".git", "config"), []byte("[core]\n"))

	documentBuilder, treeModel := newFixtureBuilder(rootDirectory, 300000, false, []string{".git"})
	sourceNode, indexed := treeModel.NodeAt(filepath.Join(rootDirectory, "src"))
	if !indexed {
		testingInstance.Fatalf("expected src node to be indexed")
	}
	treeModel.Populate(sourceNode)
	binaryNode, indexed := treeModel.NodeAt(filepath.Join(rootDirectory, "src", "b.bin"))
	if !indexed {
		testingInstance.Fatalf("expected b.bin node to be indexed")
	}
	treeModel.Toggle(binaryNode)

	generatedDocument, documentStats, buildError := documentBuilder.Build(false)
	if buildError != nil {
		testingInstance.Fatalf("Build failed: %v", buildError)
	}

	expectedDocument := "# File Tree for `" + rootName + "`\n" +
		"\n" +
		rootName + "\n" +
		"└── ◐ src\n" +
		"    ├── ◉ a.go\n" +
		"\n---\n" +
		"\n" +
		"## Selected files\n" +
		"\n" +
		"\n### `src/a.go`\n" +
		"\n" +
		"```go\n" +
		"fmt.Println(1)\n" +
		"```"
	if generatedDocument != expectedDocument {
		testingInstance.Fatalf("unexpected document:\n--- got ---\n%s\n--- want ---\n%s", generatedDocument, expectedDocument)
	}

	if documentStats.FileCount != 1 {
		testingInstance.Errorf("expected 1 embedded file, got %d", documentStats.FileCount)
	}
	if documentStats.EmbeddedBytes != int64(len("fmt.Println(1)\n")) {
		testingInstance.Errorf("expected %d embedded bytes, got %d", len("fmt.Println(1)\n"), documentStats.EmbeddedBytes)
	}
	if strings.HasSuffix(generatedDocument, "\n") {
		testingInstance.Errorf("expected no trailing newline")
	}
	if strings.Contains(generatedDocument, ".git") {
		testingInstance.Errorf("expected excluded directory to stay out of the document")
	}
}

// TestBuildIncludeUnselectedShowsAllEntries verifies the tree shows
// unselected entries on request while contents stay selection-gated.
func TestBuildIncludeUnselectedShowsAllEntries(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	writeFixtureFile(testingInstance, filepath.Join(rootDirectory, "src", "a.go"), []byte("package main\n"))
	writeFixtureFile(testingInstance, filepath.Join(rootDirectory, "src", "b.bin"), []byte{0x00, 0x01, 0x02})

	documentBuilder, treeModel := newFixtureBuilder(rootDirectory, 300000, false, nil)
	sourceNode, _ := treeModel.NodeAt(filepath.Join(rootDirectory, "src"))
	treeModel.Populate(sourceNode)
	binaryNode, _ := treeModel.NodeAt(filepath.Join(rootDirectory, "src", "b.bin"))
	treeModel.Toggle(binaryNode)

	generatedDocument, _, buildError := documentBuilder.Build(true)
	if buildError != nil {
		testingInstance.Fatalf("Build failed: %v", buildError)
	}

	if !strings.Contains(generatedDocument, "◯ b.bin") {
		testingInstance.Errorf("expected unselected entry rendered with unselected icon:\n%s", generatedDocument)
	}
	if !strings.Contains(generatedDocument, "◐ src") {
		testingInstance.Errorf("expected mixed directory icon:\n%s", generatedDocument)
	}
	if strings.Contains(generatedDocument, "### `src/b.bin`") {
		testingInstance.Errorf("expected unselected file to stay out of contents:\n%s", generatedDocument)
	}
}

// TestBuildBinaryNotice verifies binary files embed a notice instead of contents.
func TestBuildBinaryNotice(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	writeFixtureFile(testingInstance, filepath.Join(rootDirectory, "blob.bin"), []byte{0x00, 0xFF, 0x10, 0x03})

	documentBuilder, _ := newFixtureBuilder(rootDirectory, 300000, false, nil)
	generatedDocument, documentStats, buildError := documentBuilder.Build(false)
	if buildError != nil {
		testingInstance.Fatalf("Build failed: %v", buildError)
	}

	if !strings.Contains(generatedDocument, "### `blob.bin`") {
		testingInstance.Errorf("expected binary file heading:\n%s", generatedDocument)
	}
	if !strings.Contains(generatedDocument, "_Binary file — content not embedded._") {
		testingInstance.Errorf("expected binary notice:\n%s", generatedDocument)
	}
	if strings.Contains(generatedDocument, "```") {
		testingInstance.Errorf("expected no fence for binary file:\n%s", generatedDocument)
	}
	if documentStats.FileCount != 1 {
		testingInstance.Errorf("expected the binary file counted, got %d", documentStats.FileCount)
	}
	if documentStats.EmbeddedBytes != 0 {
		testingInstance.Errorf("expected no embedded bytes, got %d", documentStats.EmbeddedBytes)
	}
}

// TestBuildEmbedsBinaryWhenConfigured verifies the read_binary override.
func TestBuildEmbedsBinaryWhenConfigured(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	writeFixtureFile(testingInstance, filepath.Join(rootDirectory, "blob.bin"), []byte{0x41, 0x00, 0x42})

	documentBuilder, _ := newFixtureBuilder(rootDirectory, 300000, true, nil)
	generatedDocument, _, buildError := documentBuilder.Build(false)
	if buildError != nil {
		testingInstance.Fatalf("Build failed: %v", buildError)
	}

	if strings.Contains(generatedDocument, "_Binary file — content not embedded._") {
		testingInstance.Errorf("expected binary contents embedded, found notice:\n%s", generatedDocument)
	}
	if !strings.Contains(generatedDocument, "```\nA\x00B\n```") {
		testingInstance.Errorf("expected raw binary contents in fence:\n%q", generatedDocument)
	}
}

// TestBuildTruncation verifies the byte limit and its boundary.
func TestBuildTruncation(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	writeFixtureFile(testingInstance, filepath.Join(rootDirectory, "long.txt"), []byte("0123456789ABCDEF"))
	writeFixtureFile(testingInstance, filepath.Join(rootDirectory, "exact.txt"), []byte("0123456789"))

	documentBuilder, _ := newFixtureBuilder(rootDirectory, 10, false, nil)
	generatedDocument, documentStats, buildError := documentBuilder.Build(false)
	if buildError != nil {
		testingInstance.Fatalf("Build failed: %v", buildError)
	}

	if !strings.Contains(generatedDocument, "_...truncated at 10 bytes_") {
		testingInstance.Errorf("expected truncation notice for long.txt:\n%s", generatedDocument)
	}
	if strings.Count(generatedDocument, "_...truncated at 10 bytes_") != 1 {
		testingInstance.Errorf("expected exactly one truncation notice, file at the limit is not truncated:\n%s", generatedDocument)
	}
	if strings.Contains(generatedDocument, "ABCDEF") {
		testingInstance.Errorf("expected content cut at the byte limit:\n%s", generatedDocument)
	}
	if documentStats.EmbeddedBytes != 20 {
		testingInstance.Errorf("expected 20 embedded bytes across both files, got %d", documentStats.EmbeddedBytes)
	}
}

// TestBuildReadErrorNotice verifies an unreadable file leaves an inline notice.
func TestBuildReadErrorNotice(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	danglingLinkPath := filepath.Join(rootDirectory, "broken.txt")
	if symlinkError := os.Symlink(filepath.Join(rootDirectory, "missing-target"), danglingLinkPath); symlinkError != nil {
		testingInstance.Skipf("symlinks unavailable: %v", symlinkError)
	}

	documentBuilder, _ := newFixtureBuilder(rootDirectory, 300000, false, nil)
	generatedDocument, documentStats, buildError := documentBuilder.Build(false)
	if buildError != nil {
		testingInstance.Fatalf("Build failed: %v", buildError)
	}

	if !strings.Contains(generatedDocument, "### `broken.txt`") {
		testingInstance.Errorf("expected heading for unreadable file:\n%s", generatedDocument)
	}
	if !strings.Contains(generatedDocument, "_Error reading file: ") {
		testingInstance.Errorf("expected read error notice:\n%s", generatedDocument)
	}
	if documentStats.FileCount != 1 {
		testingInstance.Errorf("expected unreadable file counted, got %d", documentStats.FileCount)
	}
}

// TestFormatSummaryLine verifies the summary line variants.
func TestFormatSummaryLine(testingInstance *testing.T) {
	testCases := []struct {
		testName      string
		documentStats types.DocumentStats
		expectedLine  string
	}{
		{
			testName:      "single file without tokens",
			documentStats: types.DocumentStats{FileCount: 1, EmbeddedBytes: 15},
			expectedLine:  "Summary: 1 file, 15b",
		},
		{
			testName:      "plural files with token count and model",
			documentStats: types.DocumentStats{FileCount: 3, EmbeddedBytes: 1536, TokenCount: 42, TokenModel: "gpt-4o"},
			expectedLine:  "Summary: 3 files, 1.5kb, 42 tokens (model: gpt-4o)",
		},
		{
			testName:      "zero files",
			documentStats: types.DocumentStats{},
			expectedLine:  "Summary: 0 files, 0b",
		},
	}

	for testCaseIndex, testCase := range testCases {
		actualLine := document.FormatSummaryLine(testCase.documentStats)
		if actualLine != testCase.expectedLine {
			testingInstance.Errorf("case %d (%s): got %q, want %q",
				testCaseIndex, testCase.testName, actualLine, testCase.expectedLine)
		}
	}
}
