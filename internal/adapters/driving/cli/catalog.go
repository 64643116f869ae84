package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// Flags for the catalog fetch command.
var (
	catalogFetchRepo string
	catalogFetchRef  string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the local catalog",
	Long:  `Fetch catalog files from a remote repository and reload them.`,
}

var catalogFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the catalog from a GitHub repository",
	Long: `Downloads catalog files from a GitHub repository into the local
catalog directory, then reloads the catalog.

The repository defaults to the catalog.repo setting.`,
	Args: cobra.NoArgs,
	RunE: runCatalogFetch,
}

var catalogRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reload the catalog from disk",
	Args:  cobra.NoArgs,
	RunE:  runCatalogRefresh,
}

func init() {
	catalogFetchCmd.Flags().StringVar(&catalogFetchRepo, "repo", "",
		`Repository to fetch from ("owner/name")`)
	catalogFetchCmd.Flags().StringVar(&catalogFetchRef, "ref", "",
		"Git reference to fetch (default branch when empty)")

	catalogCmd.AddCommand(catalogFetchCmd)
	catalogCmd.AddCommand(catalogRefreshCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogFetch(cmd *cobra.Command, _ []string) error {
	if catalogFetcher == nil {
		return errors.New("catalog fetcher not configured")
	}

	repo := catalogFetchRepo
	if repo == "" && settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		repo = settings.Catalog.Repo
	}
	if repo == "" {
		return errors.New("no repository configured: pass --repo or set catalog.repo")
	}
	if catalogDir == "" {
		return errors.New("no catalog directory configured")
	}

	ctx := context.Background()

	cmd.Printf("Fetching catalog from %s...\n", repo)

	files, err := catalogFetcher.Fetch(ctx, repo, catalogFetchRef, catalogDir)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	cmd.Printf("Wrote %d files to %s.\n", files, catalogDir)

	if catalogService != nil {
		if err := catalogService.Refresh(ctx); err != nil {
			return fmt.Errorf("catalog reload failed: %w", err)
		}
		cmd.Println("Catalog reloaded.")
	}
	return nil
}

func runCatalogRefresh(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	ctx := context.Background()

	if err := catalogService.Refresh(ctx); err != nil {
		return fmt.Errorf("catalog reload failed: %w", err)
	}

	snapshot, err := catalogService.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	cmd.Printf("Catalog reloaded: %d categories.\n", len(snapshot.Categories))
	return nil
}
