package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/treemark/internal/utils"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into the global configuration directory.
	InitTargetGlobal InitTarget = "global"

	defaultConfigurationTemplate = `root_dir: .
output: FILETREE.md
excludes:
  - .git
  - node_modules
  - __pycache__
  - .venv
  - .mypy_cache
include_hidden: true
max_bytes: 300000
read_binary: false
use_ignore: true
use_gitignore: false
icons:
  selected: "◉"
  unselected: "◯"
  mixed: "◐"
colors:
  selected: "2"
  unselected: "240"
  mixed: "3"
tokens:
  enabled: false
  model: gpt-4o
clipboard: false
`
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
}

// InitializeConfiguration writes the default configuration file to the
// requested target and returns the destination path.
func InitializeConfiguration(options InitOptions) (string, error) {
	initTarget := options.Target
	if initTarget == utils.EmptyString {
		initTarget = InitTargetLocal
	}

	var destinationPath string
	switch initTarget {
	case InitTargetLocal:
		workingDirectory := options.WorkingDirectory
		if workingDirectory == utils.EmptyString {
			currentDirectory, workingDirectoryError := os.Getwd()
			if workingDirectoryError != nil {
				return utils.EmptyString, fmt.Errorf("determine working directory for configuration: %w", workingDirectoryError)
			}
			workingDirectory = currentDirectory
		}
		destinationPath = filepath.Join(workingDirectory, utils.ConfigFileName)
	case InitTargetGlobal:
		homeDirectory, homeError := os.UserHomeDir()
		if homeError != nil {
			return utils.EmptyString, fmt.Errorf("resolve home directory for configuration: %w", homeError)
		}
		configurationDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
		if directoryError := os.MkdirAll(configurationDirectory, 0o755); directoryError != nil {
			return utils.EmptyString, fmt.Errorf("create configuration directory %s: %w", configurationDirectory, directoryError)
		}
		destinationPath = filepath.Join(configurationDirectory, utils.ConfigFileName)
	default:
		return utils.EmptyString, fmt.Errorf("unsupported init target %q", initTarget)
	}

	if _, statError := os.Stat(destinationPath); statError == nil {
		if !options.Force {
			return utils.EmptyString, fmt.Errorf("configuration file already exists at %s", destinationPath)
		}
	} else if !os.IsNotExist(statError) {
		return utils.EmptyString, fmt.Errorf("inspect configuration path %s: %w", destinationPath, statError)
	}

	if writeError := os.WriteFile(destinationPath, []byte(defaultConfigurationTemplate), 0o600); writeError != nil {
		return utils.EmptyString, fmt.Errorf("write configuration to %s: %w", destinationPath, writeError)
	}

	return destinationPath, nil
}
