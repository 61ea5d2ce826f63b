package utils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion       = "unknown"
	developmentVersion   = "(devel)"
	gitExecutableName    = "git"
	gitDescribeArgument  = "describe"
	gitTagsArgument      = "--tags"
	gitExactArgument     = "--exact-match"
	gitLongArgument      = "--long"
	gitDirtyArgument     = "--dirty"
	errorGitDirectoryFmt = ".git directory not found in or above %s"
	errorAbsolutePathFmt = "failed to get absolute path for %s: %w"
)

// GetApplicationVersion attempts to determine the application version using various methods.
// It checks Go build info first, then falls back to git describe commands if available.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != EmptyString && buildInfo.Main.Version != developmentVersion {
		return buildInfo.Main.Version
	}

	gitDirectoryPath, gitDirectoryError := findGitDirectory(".")
	if gitDirectoryError == nil && gitDirectoryPath != EmptyString {
		// #nosec G204
		gitExactCommand := exec.Command(gitExecutableName, gitDescribeArgument, gitTagsArgument, gitExactArgument)
		gitExactCommand.Dir = gitDirectoryPath
		gitExactOutput, errorGitExact := gitExactCommand.Output()
		if errorGitExact == nil && len(gitExactOutput) > 0 {
			return strings.TrimSpace(string(gitExactOutput))
		}

		// #nosec G204
		gitLongCommand := exec.Command(gitExecutableName, gitDescribeArgument, gitTagsArgument, gitLongArgument, gitDirtyArgument)
		gitLongCommand.Dir = gitDirectoryPath
		gitLongOutput, errorGitLong := gitLongCommand.Output()
		if errorGitLong == nil && len(gitLongOutput) > 0 {
			return strings.TrimSpace(string(gitLongOutput))
		}
	}

	return unknownVersion
}

// findGitDirectory searches upward from the provided starting directory
// until it locates a directory containing the .git folder and returns
// the path to that directory.
func findGitDirectory(startDirectory string) (string, error) {
	absoluteStartDirectory, errorAbsolute := filepath.Abs(startDirectory)
	if errorAbsolute != nil {
		return EmptyString, fmt.Errorf(errorAbsolutePathFmt, startDirectory, errorAbsolute)
	}

	currentDirectory := absoluteStartDirectory
	for {
		gitPath := filepath.Join(currentDirectory, GitDirectoryName)
		fileInformation, errorStat := os.Stat(gitPath)
		if errorStat == nil && fileInformation.IsDir() {
			return currentDirectory, nil
		}

		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			break
		}
		currentDirectory = parentDirectory
	}

	return EmptyString, fmt.Errorf(errorGitDirectoryFmt, absoluteStartDirectory)
}
