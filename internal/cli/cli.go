// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/bundle/internal/assemble"
	"github.com/temirov/bundle/internal/config"
	"github.com/temirov/bundle/internal/hierarchy"
	"github.com/temirov/bundle/internal/output"
	"github.com/temirov/bundle/internal/resolve"
	"github.com/temirov/bundle/internal/services/clipboard"
	"github.com/temirov/bundle/internal/tokenizer"
	"github.com/temirov/bundle/internal/types"
	"github.com/temirov/bundle/internal/utils"
)

const (
	outputFlagName      = "output"
	outputFlagShorthand = "o"
	formatFlagName      = "format"
	copyFlagName        = "copy"
	tokensFlagName      = "tokens"
	modelFlagName       = "model"
	summaryFlagName     = "summary"
	configFlagName      = "config"
	versionFlagName     = "version"

	outputFlagDescription  = "write the artifact to a file instead of stdout"
	formatFlagDescription  = "output format"
	copyFlagDescription    = "copy the artifact to the system clipboard"
	tokensFlagDescription  = "include token counts"
	modelFlagDescription   = "tokenizer model to use for token counting"
	summaryFlagDescription = "print a summary of bundled files to stderr"
	configFlagDescription  = "path to a configuration file"
	versionFlagDescription = "display application version"

	versionTemplate = "bundle version: %s\n"

	rootUse              = "bundle"
	rootShortDescription = "bundle command line interface"
	rootLongDescription  = `bundle concatenates files into a single text artifact.
A directory tree of the selected files, rooted at their deepest common
ancestor, is prepended and every file's content follows in a fenced block
labeled with its ancestor-relative path.
Use --format to select raw, json, or xml output.`

	packUse              = "pack [patterns...]"
	treeUse              = "tree [patterns...]"
	packAlias            = "p"
	treeAlias            = "t"
	packShortDescription = "bundle matching files into one artifact (" + packAlias + ")"
	treeShortDescription = "display the tree of matching files (" + treeAlias + ")"

	// packLongDescription provides detailed help for the pack command.
	packLongDescription = `Expand the provided patterns, render the file tree, and concatenate every
matching file's content into a single artifact.
Use --output to write to a file and --copy to place the artifact on the clipboard.`
	// packUsageExample demonstrates pack command usage.
	packUsageExample = `  # Bundle all Go sources below the current directory
  bundle pack "**/*.go"

  # Write the artifact to a file with token counts
  bundle pack --tokens -o context.md "src/**/*.ts"`

	// treeLongDescription provides detailed help for the tree command.
	treeLongDescription = `Expand the provided patterns and render only the directory tree of the
matching files relative to their deepest common ancestor.`
	// treeUsageExample demonstrates tree command usage.
	treeUsageExample = `  # Show the tree of all markdown files
  bundle tree "docs/**/*.md"`

	invalidFormatMessage        = "invalid format value '%s'"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	writeOutputErrorFormat      = "writing output file %s: %w"
	copyErrorFormat             = "copying artifact to clipboard: %w"

	outputWrittenNoticeFormat = "Output written to %s\n"
)

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	switch format {
	case types.FormatRaw, types.FormatJSON, types.FormatXML:
		return true
	default:
		return false
	}
}

// Execute runs the bundle application.
func Execute() error {
	rootCommand := CreateRootCommand()
	return rootCommand.Execute()
}

// commandOptions stores the flag values shared by the pack and tree commands.
type commandOptions struct {
	outputPath      string
	format          string
	copyToClipboard bool
	tokensEnabled   bool
	tokenModel      string
	summaryEnabled  bool
}

// CreateRootCommand builds the root Cobra command with its subcommands.
func CreateRootCommand() *cobra.Command {
	var showVersion bool
	var configFilePath string

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&configFilePath, configFlagName, "", configFlagDescription)
	rootCommand.AddCommand(
		createPackCommand(&configFilePath),
		createTreeCommand(&configFilePath),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// addCommandFlags registers the shared flags on the command.
func addCommandFlags(command *cobra.Command, options *commandOptions) {
	command.Flags().StringVarP(&options.outputPath, outputFlagName, outputFlagShorthand, "", outputFlagDescription)
	command.Flags().StringVar(&options.format, formatFlagName, types.FormatRaw, formatFlagDescription)
	command.Flags().BoolVar(&options.copyToClipboard, copyFlagName, false, copyFlagDescription)
	command.Flags().BoolVar(&options.summaryEnabled, summaryFlagName, false, summaryFlagDescription)
}

// createPackCommand returns the pack subcommand.
func createPackCommand(configFilePath *string) *cobra.Command {
	var options commandOptions
	options.tokenModel = tokenizer.DefaultModel

	packCommand := &cobra.Command{
		Use:     packUse,
		Aliases: []string{packAlias},
		Short:   packShortDescription,
		Long:    packLongDescription,
		Example: packUsageExample,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			return runBundle(command, arguments, types.CommandPack, &options, *configFilePath)
		},
	}

	addCommandFlags(packCommand, &options)
	packCommand.Flags().BoolVar(&options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	packCommand.Flags().StringVar(&options.tokenModel, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	return packCommand
}

// createTreeCommand returns the tree subcommand.
func createTreeCommand(configFilePath *string) *cobra.Command {
	var options commandOptions

	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Example: treeUsageExample,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			return runBundle(command, arguments, types.CommandTree, &options, *configFilePath)
		},
	}

	addCommandFlags(treeCommand, &options)
	return treeCommand
}

// applyConfigurationDefaults overlays configured values onto flags the user
// did not set explicitly.
func applyConfigurationDefaults(command *cobra.Command, options *commandOptions, configuration config.CommandConfiguration) {
	if !command.Flags().Changed(formatFlagName) && configuration.Format != "" {
		options.format = configuration.Format
	}
	if !command.Flags().Changed(summaryFlagName) && configuration.Summary != nil {
		options.summaryEnabled = *configuration.Summary
	}
	if !command.Flags().Changed(copyFlagName) && configuration.Clipboard != nil {
		options.copyToClipboard = *configuration.Clipboard
	}
	if !command.Flags().Changed(outputFlagName) && configuration.Output != "" {
		options.outputPath = configuration.Output
	}
	if command.Flags().Lookup(tokensFlagName) != nil {
		if !command.Flags().Changed(tokensFlagName) && configuration.Tokens.Enabled != nil {
			options.tokensEnabled = *configuration.Tokens.Enabled
		}
		if !command.Flags().Changed(modelFlagName) && configuration.Tokens.Model != "" {
			options.tokenModel = configuration.Tokens.Model
		}
	}
}

// runBundle executes the pack or tree command over the provided patterns.
func runBundle(command *cobra.Command, patterns []string, commandName string, options *commandOptions, configFilePath string) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}

	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: configFilePath,
	})
	if configurationError != nil {
		return configurationError
	}
	commandConfiguration := applicationConfiguration.Pack
	if commandName == types.CommandTree {
		commandConfiguration = applicationConfiguration.Tree
	}
	applyConfigurationDefaults(command, options, commandConfiguration)

	outputFormat := strings.ToLower(options.format)
	if !isSupportedFormat(outputFormat) {
		return fmt.Errorf(invalidFormatMessage, outputFormat)
	}

	warningWriter := command.ErrOrStderr()

	resolvedPaths, resolutionError := resolve.Expand(patterns, warningWriter)
	if resolutionError != nil {
		return resolutionError
	}

	ancestorDirectory, ancestorWarnings := hierarchy.FindAncestor(resolvedPaths, workingDirectory)
	rootNode, buildWarnings := hierarchy.Build(resolvedPaths, ancestorDirectory)
	reportWarnings(warningWriter, append(ancestorWarnings, buildWarnings...))

	rootDisplayName := hierarchy.RootDisplayName(ancestorDirectory, workingDirectory)
	treeLines := hierarchy.Render(rootNode, rootDisplayName)

	var tokenCounter tokenizer.Counter
	var tokenModel string
	if options.tokensEnabled {
		createdCounter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: options.tokenModel})
		if counterError != nil {
			return counterError
		}
		tokenCounter = createdCounter
		tokenModel = resolvedModel
	}

	var blocks []assemble.Block
	if commandName == types.CommandPack {
		blocks = assemble.CollectBlocks(resolvedPaths, ancestorDirectory, warningWriter)
	}

	rendered, summary, renderError := renderResult(commandName, outputFormat, treeLines, rootDisplayName, rootNode, blocks, resolvedPaths, tokenCounter, tokenModel, options.summaryEnabled)
	if renderError != nil {
		return renderError
	}
	if options.summaryEnabled && summary != nil {
		fmt.Fprintln(warningWriter, output.FormatSummaryLine(summary))
	}

	return deliverResult(command, options, rendered)
}

// renderResult produces the textual result for the requested format together
// with the run summary when one was requested.
func renderResult(
	commandName string,
	outputFormat string,
	treeLines []string,
	rootDisplayName string,
	rootNode *hierarchy.Node,
	blocks []assemble.Block,
	resolvedPaths []string,
	tokenCounter tokenizer.Counter,
	tokenModel string,
	summaryEnabled bool,
) (string, *types.OutputSummary, error) {
	var fileOutputs []types.FileOutput
	if commandName == types.CommandPack {
		fileOutputs = output.BuildFileOutputs(blocks, tokenCounter)
	}

	var summary *types.OutputSummary
	if summaryEnabled || outputFormat != types.FormatRaw {
		if commandName == types.CommandPack {
			summary = output.ComputeSummary(fileOutputs, tokenModel)
		} else {
			summary = treeSummary(resolvedPaths)
		}
	}

	if outputFormat == types.FormatRaw {
		if commandName == types.CommandPack {
			return assemble.Artifact(treeLines, blocks), summary, nil
		}
		return strings.Join(treeLines, "\n"), summary, nil
	}

	structuredFiles := fileOutputs
	if commandName == types.CommandTree {
		structuredFiles = nil
	}
	packOutput := output.BuildPackOutput(rootDisplayName, rootNode, structuredFiles, summary)
	if outputFormat == types.FormatJSON {
		rendered, jsonError := output.RenderJSON(packOutput)
		return rendered, summary, jsonError
	}
	rendered, xmlError := output.RenderXML(packOutput)
	return rendered, summary, xmlError
}

// treeSummary aggregates file counts and sizes for the tree command without
// reading any file content.
func treeSummary(resolvedPaths []string) *types.OutputSummary {
	var totalBytes int64
	for _, resolvedPath := range resolvedPaths {
		if pathInfo, statError := os.Stat(resolvedPath); statError == nil {
			totalBytes += pathInfo.Size()
		}
	}
	return &types.OutputSummary{
		TotalFiles: len(resolvedPaths),
		TotalSize:  utils.FormatFileSize(totalBytes),
	}
}

// deliverResult writes the rendered result to the configured destinations.
// A single trailing newline is appended when writing to a file.
func deliverResult(command *cobra.Command, options *commandOptions, rendered string) error {
	if options.outputPath != "" {
		if writeError := os.WriteFile(options.outputPath, []byte(rendered+"\n"), 0o644); writeError != nil {
			return fmt.Errorf(writeOutputErrorFormat, options.outputPath, writeError)
		}
		fmt.Fprintf(command.ErrOrStderr(), outputWrittenNoticeFormat, options.outputPath)
	} else {
		fmt.Fprintln(command.OutOrStdout(), rendered)
	}

	if options.copyToClipboard {
		if copyError := clipboard.NewSystemWriter().Write(rendered); copyError != nil {
			return fmt.Errorf(copyErrorFormat, copyError)
		}
	}
	return nil
}
