// Command runbook is a terminal catalog browser and runner for curated
// shell commands. It wires the file-backed configuration, the TOML
// catalog provider, the execution worker and the history store into the
// CLI adapter.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/runbook-cli/internal/adapters/driven/catalog/github"
	"github.com/custodia-labs/runbook-cli/internal/adapters/driven/catalog/toml"
	"github.com/custodia-labs/runbook-cli/internal/adapters/driven/catalog/watch"
	configfile "github.com/custodia-labs/runbook-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/runbook-cli/internal/adapters/driven/shell"
	"github.com/custodia-labs/runbook-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/runbook-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/runbook-cli/internal/core/ports/driving"
	"github.com/custodia-labs/runbook-cli/internal/core/services"
	"github.com/custodia-labs/runbook-cli/internal/logger"
)

func main() {
	os.Exit(run())
}

// run builds the application and executes the CLI. It returns the
// process exit code; deferred shutdown runs before the process exits.
func run() int {
	configDir, err := resolveConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	configStore, err := configfile.NewConfigStore(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading configuration: %v\n", err)
		return 1
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading settings: %v\n", err)
		return 1
	}

	catalogDir := settings.Catalog.Dir
	if catalogDir == "" {
		catalogDir = filepath.Join(configDir, "catalog")
	}
	if err := os.MkdirAll(catalogDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: creating catalog directory: %v\n", err)
		return 1
	}

	catalogService := services.NewCatalogService(toml.NewProvider(catalogDir), settings.Catalog.Validate)
	browserService := services.NewBrowserService(catalogService)

	// History is best-effort; the app still runs when the store cannot
	// be opened.
	var historyService driving.HistoryService
	historyStore, err := sqlite.NewStore(filepath.Join(configDir, "data"))
	if err != nil {
		logger.Warn("History disabled: %v", err)
	} else {
		defer historyStore.Close()
		historyService = services.NewHistoryService(historyStore.HistoryStore(), settings.Execution.HistoryLimit)
	}

	executionService := services.NewExecutionService(catalogService, browserService, shell.NewRunner(), historyService)
	if err := executionService.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: starting execution worker: %v\n", err)
		return 1
	}
	defer executionService.Stop()

	watcher := watch.NewWatcher(catalogDir, catalogService.Invalidate)
	if err := watcher.Start(); err != nil {
		logger.Warn("Catalog watching disabled: %v", err)
	} else {
		defer watcher.Stop()
	}

	fetcher := github.NewFetcher(context.Background(), settingsService.GitHubToken())

	cli.SetServices(cli.Services{
		Catalog:    catalogService,
		Browser:    browserService,
		Execution:  executionService,
		History:    historyService,
		Settings:   settingsService,
		Fetcher:    fetcher,
		CatalogDir: catalogDir,
	})

	if err := cli.Execute(); err != nil {
		// Cobra already printed the error.
		return 1
	}
	return 0
}

// resolveConfigDir determines the configuration directory before the
// command tree parses flags, since the stores are built first. The raw
// arguments are scanned without consuming them; cobra still parses
// --config-dir for help output.
func resolveConfigDir() (string, error) {
	if dir := configDirFromArgs(os.Args[1:]); dir != "" {
		return dir, nil
	}
	if dir := os.Getenv("RUNBOOK_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".runbook"), nil
}

// configDirFromArgs scans raw arguments for the --config-dir flag.
func configDirFromArgs(args []string) string {
	for i := 0; i < len(args); i++ {
		if args[i] == "--config-dir" && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(args[i], "--config-dir=") {
			return strings.TrimPrefix(args[i], "--config-dir=")
		}
	}
	return ""
}
