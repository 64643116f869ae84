package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
)

var previewCmd = &cobra.Command{
	Use:   "preview <category> <name...>",
	Short: "Show what a catalog entry would run",
	Long: `Resolves a catalog entry by category and name path, then prints the
command text or script content it would execute, without running anything.

Example:
  runbook preview System "Package Updates" Upgrade`,
	Args: cobra.MinimumNArgs(2),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	ctx := context.Background()

	node, err := resolveNode(ctx, args[0], args[1:])
	if err != nil {
		return err
	}

	text, err := catalogService.Preview(ctx, args[0], node.ID)
	if err != nil {
		return fmt.Errorf("failed to preview %s: %w", node.Name, err)
	}

	cmd.Println(text)
	return nil
}

// resolveNode resolves a name path within a category to a catalog node.
func resolveNode(ctx context.Context, category string, path []string) (domain.Node, error) {
	snapshot, err := catalogService.Snapshot(ctx)
	if err != nil {
		return domain.Node{}, fmt.Errorf("failed to load catalog: %w", err)
	}

	cat, ok := snapshot.Category(category)
	if !ok {
		return domain.Node{}, fmt.Errorf("category not found: %s", category)
	}

	node, ok := cat.FindByNamePath(path)
	if !ok {
		return domain.Node{}, fmt.Errorf("entry not found: %s", strings.Join(path, " > "))
	}
	return node, nil
}
