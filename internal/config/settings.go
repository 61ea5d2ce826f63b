package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/treemark/internal/types"
	"github.com/temirov/treemark/internal/utils"
)

// Default values applied beneath every configuration layer.
const (
	DefaultRootDirectory   = "."
	DefaultOutputFileName  = "FILETREE.md"
	DefaultMaxFileBytes    = 300000
	DefaultTokenModel      = "gpt-4o"
	DefaultSelectedIcon    = "◉"
	DefaultUnselectedIcon  = "◯"
	DefaultMixedIcon       = "◐"
	DefaultSelectedColor   = "2"
	DefaultUnselectedColor = "240"
	DefaultMixedColor      = "3"
)

// Error message formats for root directory validation.
const (
	errorAbsolutePathFormat     = "resolving absolute path for '%s': %w"
	errorRootMissingFormat      = "root directory does not exist: %s"
	errorRootNotDirectoryFormat = "root path is not a directory: %s"
	errorStatRootFormat         = "inspecting root directory '%s': %w"
)

// defaultExcludeDirectories are skipped unless the exclusion list is overridden.
var defaultExcludeDirectories = []string{
	utils.GitDirectoryName,
	"node_modules",
	"__pycache__",
	".venv",
	".mypy_cache",
}

// Settings is the fully resolved runtime configuration consumed by the
// tree model, the document builder, and the terminal browser.
type Settings struct {
	RootPath        string
	RootName        string
	OutputFileName  string
	ExcludePatterns []string
	IncludeHidden   bool
	MaxFileBytes    int
	EmbedBinary     bool
	UseIgnoreFile   bool
	UseGitignore    bool
	SelectedIcon    string
	UnselectedIcon  string
	MixedIcon       string
	SelectedColor   string
	UnselectedColor string
	MixedColor      string
	TokensEnabled   bool
	TokenModel      string
	CopyToClipboard bool
}

// DefaultConfiguration returns the built-in configuration layer.
func DefaultConfiguration() ApplicationConfiguration {
	includeHidden := true
	maxFileBytes := DefaultMaxFileBytes
	readBinary := false
	useIgnoreFile := true
	useGitignore := false
	tokensEnabled := false
	copyToClipboard := false
	return ApplicationConfiguration{
		RootDirectory:  DefaultRootDirectory,
		OutputFileName: DefaultOutputFileName,
		Excludes:       append([]string{}, defaultExcludeDirectories...),
		IncludeHidden:  &includeHidden,
		MaxFileBytes:   &maxFileBytes,
		ReadBinary:     &readBinary,
		UseIgnoreFile:  &useIgnoreFile,
		UseGitignore:   &useGitignore,
		Icons: IconConfiguration{
			Selected:   DefaultSelectedIcon,
			Unselected: DefaultUnselectedIcon,
			Mixed:      DefaultMixedIcon,
		},
		Colors: ColorConfiguration{
			Selected:   DefaultSelectedColor,
			Unselected: DefaultUnselectedColor,
			Mixed:      DefaultMixedColor,
		},
		Tokens: TokenConfiguration{
			Enabled: &tokensEnabled,
			Model:   DefaultTokenModel,
		},
		Clipboard: &copyToClipboard,
	}
}

// ValidateRootDirectory resolves rootDirectory to an absolute path and
// verifies that it names an existing directory.
func ValidateRootDirectory(rootDirectory string) (types.ValidatedRoot, error) {
	absolutePath, absoluteError := filepath.Abs(rootDirectory)
	if absoluteError != nil {
		return types.ValidatedRoot{}, fmt.Errorf(errorAbsolutePathFormat, rootDirectory, absoluteError)
	}
	pathInformation, statError := os.Stat(absolutePath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return types.ValidatedRoot{}, fmt.Errorf(errorRootMissingFormat, absolutePath)
		}
		return types.ValidatedRoot{}, fmt.Errorf(errorStatRootFormat, absolutePath, statError)
	}
	if !pathInformation.IsDir() {
		return types.ValidatedRoot{}, fmt.Errorf(errorRootNotDirectoryFormat, absolutePath)
	}
	return types.ValidatedRoot{AbsolutePath: absolutePath, BaseName: filepath.Base(absolutePath)}, nil
}

// ResolveSettings validates the root directory and flattens the merged
// configuration into runtime settings. The built-in defaults fill any field
// the configuration layers left unset.
func ResolveSettings(configuration ApplicationConfiguration) (Settings, error) {
	resolved := DefaultConfiguration().Merge(configuration)

	validatedRoot, rootError := ValidateRootDirectory(resolved.RootDirectory)
	if rootError != nil {
		return Settings{}, rootError
	}

	excludePatterns, excludeError := CombineExcludePatterns(validatedRoot.AbsolutePath, resolved.Excludes, *resolved.UseIgnoreFile)
	if excludeError != nil {
		return Settings{}, excludeError
	}

	return Settings{
		RootPath:        validatedRoot.AbsolutePath,
		RootName:        validatedRoot.BaseName,
		OutputFileName:  resolved.OutputFileName,
		ExcludePatterns: excludePatterns,
		IncludeHidden:   *resolved.IncludeHidden,
		MaxFileBytes:    *resolved.MaxFileBytes,
		EmbedBinary:     *resolved.ReadBinary,
		UseIgnoreFile:   *resolved.UseIgnoreFile,
		UseGitignore:    *resolved.UseGitignore,
		SelectedIcon:    resolved.Icons.Selected,
		UnselectedIcon:  resolved.Icons.Unselected,
		MixedIcon:       resolved.Icons.Mixed,
		SelectedColor:   resolved.Colors.Selected,
		UnselectedColor: resolved.Colors.Unselected,
		MixedColor:      resolved.Colors.Mixed,
		TokensEnabled:   *resolved.Tokens.Enabled,
		TokenModel:      resolved.Tokens.Model,
		CopyToClipboard: *resolved.Clipboard,
	}, nil
}

// OutputFilePath returns the absolute path of the generated document.
func (settings Settings) OutputFilePath() string {
	if filepath.IsAbs(settings.OutputFileName) {
		return settings.OutputFileName
	}
	return filepath.Join(settings.RootPath, settings.OutputFileName)
}
