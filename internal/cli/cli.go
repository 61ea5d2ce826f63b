// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/temirov/treemark/internal/config"
	"github.com/temirov/treemark/internal/document"
	"github.com/temirov/treemark/internal/filter"
	"github.com/temirov/treemark/internal/services/clipboard"
	"github.com/temirov/treemark/internal/tokenizer"
	"github.com/temirov/treemark/internal/tree"
	"github.com/temirov/treemark/internal/tui"
	"github.com/temirov/treemark/internal/types"
	"github.com/temirov/treemark/internal/utils"
)

const (
	exclusionFlagName         = "e"
	outputFlagName            = "output"
	hiddenFlagName            = "hidden"
	readBinaryFlagName        = "read-binary"
	maxBytesFlagName          = "max-bytes"
	noIgnoreFlagName          = "no-ignore"
	gitignoreFlagName         = "gitignore"
	tokensFlagName            = "tokens"
	modelFlagName             = "model"
	copyFlagName              = "copy"
	configFlagName            = "config"
	includeUnselectedFlagName = "include-unselected"
	globalFlagName            = "global"
	forceFlagName             = "force"
	versionFlagName           = "version"
	versionTemplate           = "treemark version: %s\n"
	rootUse                   = "treemark [path]"
	rootShortDescription      = "interactive file tree to markdown exporter"
	rootLongDescription       = `treemark browses a directory tree, lets you pick the files and folders to
keep, and writes the result as one markdown document holding an ASCII tree
and the embedded file contents.
Run without a subcommand to open the interactive browser. Use build for a
non-interactive export and init to write a starter configuration file.`
	// rootUsageExample demonstrates browser usage.
	rootUsageExample = `  # Browse the current directory
  treemark

  # Browse another tree without hidden entries
  treemark ../service --hidden no`

	buildUse              = "build [path]"
	buildShortDescription = "write the document without opening the browser"
	// buildLongDescription provides detailed help for the build command.
	buildLongDescription = `Export the markdown document for a directory without the interactive
browser. Every non-excluded entry is treated as selected.`
	// buildUsageExample demonstrates build command usage.
	buildUsageExample = `  # Export the current directory
  treemark build

  # Export another tree, skipping dist, with token counts
  treemark build ../service -e dist --tokens`

	initUse              = "init"
	initShortDescription = "write a starter configuration file"
	// initLongDescription provides detailed help for the init command.
	initLongDescription = `Write a commented starter configuration file. The local target is
.treemark.yaml in the working directory; --global writes
~/.treemark/.treemark.yaml instead.`
	// initUsageExample demonstrates init command usage.
	initUsageExample = `  # Write .treemark.yaml into the working directory
  treemark init

  # Replace the global configuration
  treemark init --global --force`

	exclusionFlagDescription         = "exclude path pattern (repeatable)"
	outputFlagDescription            = "output file name"
	hiddenFlagDescription            = "include hidden files and directories"
	readBinaryFlagDescription        = "embed binary file contents"
	maxBytesFlagDescription          = "maximum bytes embedded per file"
	disableIgnoreFlagDescription     = "do not use .filetreeignore"
	gitignoreFlagDescription         = "respect .gitignore rules"
	tokensFlagDescription            = "include token counts in the summary"
	modelFlagDescription             = "tokenizer model for token counting"
	copyFlagDescription              = "copy the generated document to the clipboard"
	configFlagDescription            = "path to a configuration file"
	includeUnselectedFlagDescription = "keep unselected entries visible in the exported tree"
	globalFlagDescription            = "write the global configuration file"
	forceFlagDescription             = "overwrite an existing configuration file"
	versionFlagDescription           = "display application version"

	warningTokenCountFormat    = "Warning: failed to count tokens: %v\n"
	warningClipboardFormat     = "Warning: failed to copy to clipboard: %v\n"
	wroteDocumentFormat        = "Wrote %s\n"
	configurationWrittenFormat = "Configuration written to %s\n"
	browserRunErrorFormat      = "run browser: %w"
	writeDocumentErrorFormat   = "write document to %s: %w"
	// documentFilePermissions applies to the exported document file.
	documentFilePermissions = 0o644
)

// Execute runs the treemark application.
func Execute() error {
	rootCommand := createRootCommand()
	arguments := normalizeCopyFlagArguments(os.Args[1:])
	arguments = normalizeBooleanFlagArguments(rootCommand, arguments)
	rootCommand.SetArgs(arguments)
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command. Running it without a
// subcommand opens the interactive browser.
func createRootCommand() *cobra.Command {
	var showVersion bool
	var flagValues generationFlagValues

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			settings, settingsError := resolveRunSettings(command, arguments, &flagValues)
			if settingsError != nil {
				return settingsError
			}
			return runBrowse(settings)
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	addGenerationFlags(rootCommand, &flagValues)
	rootCommand.AddCommand(
		createBuildCommand(),
		createInitCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// generationFlagValues stores the flag state shared by the browse and build
// commands.
type generationFlagValues struct {
	excludePatterns   []string
	outputFileName    string
	includeHidden     bool
	readBinary        bool
	maxFileBytes      int
	disableIgnoreFile bool
	useGitignore      bool
	tokensEnabled     bool
	tokenModel        string
	copyToClipboard   bool
	configFilePath    string
}

// addGenerationFlags registers the shared generation flags on the command.
func addGenerationFlags(command *cobra.Command, flagValues *generationFlagValues) {
	flagSet := command.Flags()
	flagSet.StringArrayVarP(&flagValues.excludePatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	flagSet.StringVar(&flagValues.outputFileName, outputFlagName, utils.EmptyString, outputFlagDescription)
	registerBooleanFlag(flagSet, &flagValues.includeHidden, hiddenFlagName, true, hiddenFlagDescription)
	registerBooleanFlag(flagSet, &flagValues.readBinary, readBinaryFlagName, false, readBinaryFlagDescription)
	flagSet.IntVar(&flagValues.maxFileBytes, maxBytesFlagName, config.DefaultMaxFileBytes, maxBytesFlagDescription)
	flagSet.BoolVar(&flagValues.disableIgnoreFile, noIgnoreFlagName, false, disableIgnoreFlagDescription)
	flagSet.BoolVar(&flagValues.useGitignore, gitignoreFlagName, false, gitignoreFlagDescription)
	flagSet.BoolVar(&flagValues.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	flagSet.StringVar(&flagValues.tokenModel, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	registerCopyFlag(flagSet, &flagValues.copyToClipboard)
	flagSet.StringVar(&flagValues.configFilePath, configFlagName, utils.EmptyString, configFlagDescription)
}

// toConfiguration converts changed flags into a configuration overlay. Flags
// left at their defaults stay unset so the file and environment layers keep
// their values.
func (flagValues *generationFlagValues) toConfiguration(command *cobra.Command, arguments []string) config.ApplicationConfiguration {
	var overlay config.ApplicationConfiguration
	flagSet := command.Flags()
	if len(arguments) > 0 {
		overlay.RootDirectory = arguments[0]
	}
	if flagSet.Changed(exclusionFlagName) {
		overlay.Excludes = flagValues.excludePatterns
	}
	if flagSet.Changed(outputFlagName) {
		overlay.OutputFileName = flagValues.outputFileName
	}
	if flagSet.Changed(hiddenFlagName) {
		overlay.IncludeHidden = &flagValues.includeHidden
	}
	if flagSet.Changed(readBinaryFlagName) {
		overlay.ReadBinary = &flagValues.readBinary
	}
	if flagSet.Changed(maxBytesFlagName) {
		overlay.MaxFileBytes = &flagValues.maxFileBytes
	}
	if flagSet.Changed(noIgnoreFlagName) {
		useIgnoreFile := !flagValues.disableIgnoreFile
		overlay.UseIgnoreFile = &useIgnoreFile
	}
	if flagSet.Changed(gitignoreFlagName) {
		overlay.UseGitignore = &flagValues.useGitignore
	}
	if flagSet.Changed(tokensFlagName) {
		overlay.Tokens.Enabled = &flagValues.tokensEnabled
	}
	if flagSet.Changed(modelFlagName) {
		overlay.Tokens.Model = flagValues.tokenModel
	}
	if flagSet.Changed(copyFlagName) {
		overlay.Clipboard = &flagValues.copyToClipboard
	}
	return overlay
}

// resolveRunSettings layers the configuration files, the environment, and
// the changed flags, then resolves the result against the defaults.
func resolveRunSettings(command *cobra.Command, arguments []string, flagValues *generationFlagValues) (config.Settings, error) {
	loadedConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: flagValues.configFilePath,
	})
	if loadError != nil {
		return config.Settings{}, loadError
	}
	merged := loadedConfiguration.Merge(flagValues.toConfiguration(command, arguments))
	return config.ResolveSettings(merged)
}

// newGenerationPipeline wires the filter, traverser, tree model, and builder
// for a resolved settings value.
func newGenerationPipeline(settings config.Settings) (*tree.Model, *document.Builder) {
	pathFilter := filter.NewPathFilter(filter.Options{
		RootPath:        settings.RootPath,
		ExcludePatterns: settings.ExcludePatterns,
		IncludeHidden:   settings.IncludeHidden,
		UseGitignore:    settings.UseGitignore,
	})
	traverser := tree.NewTraverser(settings.RootPath, pathFilter)
	treeModel := tree.NewModel(traverser)
	builder := document.NewBuilder(settings, traverser, treeModel)
	return treeModel, builder
}

// runBrowse opens the interactive browser and reports the outcome once the
// session finishes. Quitting without generating produces no output.
func runBrowse(settings config.Settings) error {
	treeModel, builder := newGenerationPipeline(settings)
	browserModel := tui.NewModel(settings, treeModel, builder)

	program := tea.NewProgram(browserModel, tea.WithAltScreen())
	finalModel, runError := program.Run()
	if runError != nil {
		return fmt.Errorf(browserRunErrorFormat, runError)
	}
	finishedBrowser, isBrowser := finalModel.(*tui.Model)
	if !isBrowser {
		return nil
	}
	outcome := finishedBrowser.Outcome()
	if !outcome.DocumentWritten {
		return nil
	}
	reportGeneratedDocument(settings, outcome.DocumentText, outcome.OutputPath, outcome.Stats)
	return nil
}

// createBuildCommand returns the non-interactive export subcommand.
func createBuildCommand() *cobra.Command {
	var flagValues generationFlagValues
	var includeUnselected bool

	buildCommand := &cobra.Command{
		Use:     buildUse,
		Short:   buildShortDescription,
		Long:    buildLongDescription,
		Example: buildUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			settings, settingsError := resolveRunSettings(command, arguments, &flagValues)
			if settingsError != nil {
				return settingsError
			}
			_, builder := newGenerationPipeline(settings)
			documentText, documentStats, buildError := builder.Build(includeUnselected)
			if buildError != nil {
				return buildError
			}
			outputPath := settings.OutputFilePath()
			if writeError := os.WriteFile(outputPath, []byte(documentText), documentFilePermissions); writeError != nil {
				return fmt.Errorf(writeDocumentErrorFormat, outputPath, writeError)
			}
			reportGeneratedDocument(settings, documentText, outputPath, documentStats)
			return nil
		},
	}

	addGenerationFlags(buildCommand, &flagValues)
	buildCommand.Flags().BoolVar(&includeUnselected, includeUnselectedFlagName, false, includeUnselectedFlagDescription)
	return buildCommand
}

// createInitCommand returns the configuration bootstrap subcommand.
func createInitCommand() *cobra.Command {
	var writeGlobal bool
	var forceOverwrite bool

	initCommand := &cobra.Command{
		Use:     initUse,
		Short:   initShortDescription,
		Long:    initLongDescription,
		Example: initUsageExample,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			initTarget := config.InitTargetLocal
			if writeGlobal {
				initTarget = config.InitTargetGlobal
			}
			destinationPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target: initTarget,
				Force:  forceOverwrite,
			})
			if initError != nil {
				return initError
			}
			fmt.Printf(configurationWrittenFormat, destinationPath)
			return nil
		},
	}
	initCommand.Flags().BoolVar(&writeGlobal, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&forceOverwrite, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// reportGeneratedDocument finishes a successful generation: optional token
// counting, optional clipboard copy, and the written-path plus summary
// lines. Token and clipboard failures degrade to warnings.
func reportGeneratedDocument(settings config.Settings, documentText string, outputPath string, documentStats types.DocumentStats) {
	if settings.TokensEnabled {
		countTokensIntoStats(settings, documentText, &documentStats)
	}
	if settings.CopyToClipboard {
		if copyError := clipboard.NewService().CopyText(documentText); copyError != nil {
			fmt.Fprintf(os.Stderr, warningClipboardFormat, copyError)
		}
	}
	fmt.Printf(wroteDocumentFormat, outputPath)
	fmt.Println(document.FormatSummaryLine(documentStats))
}

func countTokensIntoStats(settings config.Settings, documentText string, documentStats *types.DocumentStats) {
	tokenCounter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: settings.TokenModel})
	if counterError != nil {
		fmt.Fprintf(os.Stderr, warningTokenCountFormat, counterError)
		return
	}
	countResult, countError := tokenizer.CountDocument(tokenCounter, documentText)
	if countError != nil {
		fmt.Fprintf(os.Stderr, warningTokenCountFormat, countError)
		return
	}
	if countResult.Counted {
		documentStats.TokenCount = countResult.Tokens
		documentStats.TokenModel = resolvedModel
	}
}
