// Package cli implements the command-line driving adapter. Commands
// talk to the core exclusively through driving ports, which the
// composition root injects via SetServices before Execute runs.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/runbook-cli/internal/core/ports/driven"
	"github.com/custodia-labs/runbook-cli/internal/core/ports/driving"
	"github.com/custodia-labs/runbook-cli/internal/logger"
)

// version is the application version, overridden at build time via ldflags.
var version = "dev"

// Services injected by the composition root.
var (
	catalogService   driving.CatalogService
	browserService   driving.BrowserService
	executionService driving.ExecutionService
	historyService   driving.HistoryService
	settingsService  driving.SettingsService
	catalogFetcher   driven.CatalogFetcher

	// catalogDir is the resolved local catalog directory.
	catalogDir string
)

// Services aggregates everything the command tree needs.
type Services struct {
	Catalog   driving.CatalogService
	Browser   driving.BrowserService
	Execution driving.ExecutionService
	History   driving.HistoryService
	Settings  driving.SettingsService
	Fetcher   driven.CatalogFetcher

	// CatalogDir is the local catalog directory, already resolved
	// against the application home.
	CatalogDir string
}

// SetServices wires core services into the command tree.
// Must be called before Execute.
func SetServices(s Services) {
	catalogService = s.Catalog
	browserService = s.Browser
	executionService = s.Execution
	historyService = s.History
	settingsService = s.Settings
	catalogFetcher = s.Fetcher
	catalogDir = s.CatalogDir
}

// Persistent flags shared by every command.
var (
	configDirFlag string
	verboseFlag   bool
)

// rootCmd is the base command. Running it without a subcommand
// launches the interactive TUI.
var rootCmd = &cobra.Command{
	Use:   "runbook",
	Short: "Browse and run curated command catalogs from your terminal",
	Long: `Runbook is a terminal companion for curated command catalogs.

It loads TOML catalog files into a tree of categories, directories and
commands, lets you browse and search them interactively, and runs the
commands you pick one at a time with their output captured.

Running runbook without a subcommand launches the interactive TUI.`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "",
		"Directory for configuration and state (default ~/.runbook)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"Enable verbose debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
