package document

import (
	"path/filepath"
	"strings"
)

// extensionLanguages maps lower-cased file extensions to fence language tags.
var extensionLanguages = map[string]string{
	".py":   "python",
	".js":   "javascript",
	".ts":   "typescript",
	".json": "json",
	".yml":  "yaml",
	".yaml": "yaml",
	".toml": "toml",
	".ini":  "ini",
	".sh":   "bash",
	".md":   "markdown",
	".html": "html",
	".css":  "css",
	".go":   "go",
	".rs":   "rust",
	".java": "java",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".hpp":  "cpp",
	".rb":   "ruby",
	".php":  "php",
}

// LanguageForPath returns the fence language tag for a file path. Unknown
// extensions yield the empty string, producing an untagged fence.
func LanguageForPath(path string) string {
	return extensionLanguages[strings.ToLower(filepath.Ext(path))]
}
