package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/temirov/treemark/internal/utils"
)

// Environment variable names honored by the configuration loader.
const (
	EnvRootDirectory   = "ROOT_DIR"
	EnvOutputFileName  = "OUTPUT"
	EnvExcludes        = "EXCLUDES"
	EnvIncludeHidden   = "INCLUDE_HIDDEN"
	EnvMaxFileBytes    = "MAX_BYTES"
	EnvReadBinary      = "READ_BINARY"
	EnvSelectedIcon    = "ICON_SELECTED"
	EnvUnselectedIcon  = "ICON_UNSELECTED"
	EnvMixedIcon       = "ICON_PARTIAL"
	EnvSelectedColor   = "SELECT_COLOR"
	EnvUnselectedColor = "UNSELECT_COLOR"
	EnvMixedColor      = "PARTIAL_COLOR"
)

// excludeListSeparator splits the EXCLUDES environment value.
const excludeListSeparator = ","

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory  string
	ExplicitFilePath  string
	EnvironmentLookup func(string) (string, bool)
}

// ApplicationConfiguration holds the raw configuration layers before resolution.
// Pointer fields distinguish an unset value from an explicit false or zero.
type ApplicationConfiguration struct {
	RootDirectory  string             `mapstructure:"root_dir"`
	OutputFileName string             `mapstructure:"output"`
	Excludes       []string           `mapstructure:"excludes"`
	IncludeHidden  *bool              `mapstructure:"include_hidden"`
	MaxFileBytes   *int               `mapstructure:"max_bytes"`
	ReadBinary     *bool              `mapstructure:"read_binary"`
	UseIgnoreFile  *bool              `mapstructure:"use_ignore"`
	UseGitignore   *bool              `mapstructure:"use_gitignore"`
	Icons          IconConfiguration  `mapstructure:"icons"`
	Colors         ColorConfiguration `mapstructure:"colors"`
	Tokens         TokenConfiguration `mapstructure:"tokens"`
	Clipboard      *bool              `mapstructure:"clipboard"`
}

// IconConfiguration selects the glyphs rendered for each selection state.
type IconConfiguration struct {
	Selected   string `mapstructure:"selected"`
	Unselected string `mapstructure:"unselected"`
	Mixed      string `mapstructure:"mixed"`
}

// ColorConfiguration selects the terminal colors for each selection state.
type ColorConfiguration struct {
	Selected   string `mapstructure:"selected"`
	Unselected string `mapstructure:"unselected"`
	Mixed      string `mapstructure:"mixed"`
}

// TokenConfiguration controls token counting of the generated document.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// LoadApplicationConfiguration merges the global configuration file, the
// local configuration file, and the process environment, in that order.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == utils.EmptyString {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != utils.EmptyString {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfiguration, loadError := loadConfigurationFromPath(globalPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfiguration)
	}

	localPath, resolveError := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveError != nil {
		return ApplicationConfiguration{}, resolveError
	}
	if localPath != utils.EmptyString {
		localConfiguration, loadError := loadConfigurationFromPath(localPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(localConfiguration)
	}

	environmentLookup := options.EnvironmentLookup
	if environmentLookup == nil {
		environmentLookup = os.LookupEnv
	}
	merged = merged.Merge(LoadEnvironmentConfiguration(environmentLookup))

	merged.Excludes = utils.DeduplicatePatterns(merged.Excludes)

	return merged, nil
}

// LoadEnvironmentConfiguration builds a configuration overlay from the
// process environment using the original variable names.
func LoadEnvironmentConfiguration(lookup func(string) (string, bool)) ApplicationConfiguration {
	var overlay ApplicationConfiguration

	if value, present := lookup(EnvRootDirectory); present {
		overlay.RootDirectory = value
	}
	if value, present := lookup(EnvOutputFileName); present {
		overlay.OutputFileName = value
	}
	if value, present := lookup(EnvExcludes); present {
		var patterns []string
		for _, pattern := range strings.Split(value, excludeListSeparator) {
			trimmedPattern := strings.TrimSpace(pattern)
			if trimmedPattern != utils.EmptyString {
				patterns = append(patterns, trimmedPattern)
			}
		}
		overlay.Excludes = patterns
	}
	if value, present := lookup(EnvIncludeHidden); present {
		if parsed, ok := ParseBooleanLiteral(value); ok {
			overlay.IncludeHidden = &parsed
		}
	}
	if value, present := lookup(EnvMaxFileBytes); present {
		var parsed int
		if _, scanError := fmt.Sscanf(strings.TrimSpace(value), "%d", &parsed); scanError == nil {
			overlay.MaxFileBytes = &parsed
		}
	}
	if value, present := lookup(EnvReadBinary); present {
		if parsed, ok := ParseBooleanLiteral(value); ok {
			overlay.ReadBinary = &parsed
		}
	}
	if value, present := lookup(EnvSelectedIcon); present {
		overlay.Icons.Selected = value
	}
	if value, present := lookup(EnvUnselectedIcon); present {
		overlay.Icons.Unselected = value
	}
	if value, present := lookup(EnvMixedIcon); present {
		overlay.Icons.Mixed = value
	}
	if value, present := lookup(EnvSelectedColor); present {
		overlay.Colors.Selected = strings.TrimSpace(value)
	}
	if value, present := lookup(EnvUnselectedColor); present {
		overlay.Colors.Unselected = strings.TrimSpace(value)
	}
	if value, present := lookup(EnvMixedColor); present {
		overlay.Colors.Mixed = strings.TrimSpace(value)
	}

	return overlay
}

// booleanLiterals maps accepted textual boolean spellings to their values.
var booleanLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// ParseBooleanLiteral interprets the accepted boolean spellings, reporting
// whether the input was recognized.
func ParseBooleanLiteral(input string) (bool, bool) {
	parsed, recognized := booleanLiterals[strings.ToLower(strings.TrimSpace(input))]
	return parsed, recognized
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != utils.EmptyString {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == utils.EmptyString {
			absolutePath, absoluteError := filepath.Abs(explicitPath)
			if absoluteError != nil {
				return utils.EmptyString, fmt.Errorf("resolve configuration path %s: %w", explicitPath, absoluteError)
			}
			return absolutePath, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == utils.EmptyString {
		return utils.EmptyString, nil
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == utils.EmptyString {
		return ApplicationConfiguration{}, nil
	}
	pathInformation, statError := os.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statError)
	}
	if pathInformation.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	configurationReader := viper.New()
	configurationReader.SetConfigFile(path)
	if readError := configurationReader.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readError)
	}
	var configuration ApplicationConfiguration
	if decodeError := configurationReader.Unmarshal(&configuration); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeError)
	}
	return configuration, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	if override.RootDirectory != utils.EmptyString {
		result.RootDirectory = override.RootDirectory
	}
	if override.OutputFileName != utils.EmptyString {
		result.OutputFileName = override.OutputFileName
	}
	if len(override.Excludes) > 0 {
		result.Excludes = append([]string{}, utils.DeduplicatePatterns(override.Excludes)...)
	}
	if override.IncludeHidden != nil {
		result.IncludeHidden = cloneBool(override.IncludeHidden)
	}
	if override.MaxFileBytes != nil {
		result.MaxFileBytes = cloneInt(override.MaxFileBytes)
	}
	if override.ReadBinary != nil {
		result.ReadBinary = cloneBool(override.ReadBinary)
	}
	if override.UseIgnoreFile != nil {
		result.UseIgnoreFile = cloneBool(override.UseIgnoreFile)
	}
	if override.UseGitignore != nil {
		result.UseGitignore = cloneBool(override.UseGitignore)
	}
	result.Icons = result.Icons.merge(override.Icons)
	result.Colors = result.Colors.merge(override.Colors)
	result.Tokens = result.Tokens.merge(override.Tokens)
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	return result
}

func (configuration IconConfiguration) merge(override IconConfiguration) IconConfiguration {
	result := configuration
	if override.Selected != utils.EmptyString {
		result.Selected = override.Selected
	}
	if override.Unselected != utils.EmptyString {
		result.Unselected = override.Unselected
	}
	if override.Mixed != utils.EmptyString {
		result.Mixed = override.Mixed
	}
	return result
}

func (configuration ColorConfiguration) merge(override ColorConfiguration) ColorConfiguration {
	result := configuration
	if override.Selected != utils.EmptyString {
		result.Selected = override.Selected
	}
	if override.Unselected != utils.EmptyString {
		result.Unselected = override.Unselected
	}
	if override.Mixed != utils.EmptyString {
		result.Mixed = override.Mixed
	}
	return result
}

func (configuration TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := configuration
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != utils.EmptyString {
		result.Model = override.Model
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
