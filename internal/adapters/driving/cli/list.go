package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
)

var listCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List catalog categories or a category's tree",
	Long: `Lists the catalog's categories. If a category name is provided,
its full tree of directories and commands is printed instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	ctx := context.Background()

	if len(args) == 0 {
		names, err := catalogService.Categories(ctx)
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}

		if len(names) == 0 {
			cmd.Println("No categories found.")
			return nil
		}

		cmd.Println("Categories:")
		cmd.Println()
		for i := range names {
			cmd.Printf("  %s\n", names[i])
		}
		cmd.Printf("\nTotal: %d categories\n", len(names))
		return nil
	}

	snapshot, err := catalogService.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	category, ok := snapshot.Category(args[0])
	if !ok {
		return fmt.Errorf("category not found: %s", args[0])
	}

	cmd.Printf("%s:\n\n", category.Name)
	count := printTree(cmd, category, category.RootID, 1)
	cmd.Printf("\nTotal: %d entries\n", count)
	return nil
}

// printTree prints the subtree below the given node, one indented line
// per entry, and returns the number of entries printed.
func printTree(cmd *cobra.Command, category domain.Category, id string, depth int) int {
	count := 0
	children := category.ChildrenOf(id)
	indent := strings.Repeat("  ", depth)

	for i := range children {
		node := children[i]
		switch {
		case node.HasChildren():
			cmd.Printf("%s%s/\n", indent, node.Name)
		case node.Description != "":
			cmd.Printf("%s%s - %s\n", indent, node.Name, node.Description)
		default:
			cmd.Printf("%s%s\n", indent, node.Name)
		}
		count++

		if node.HasChildren() {
			count += printTree(cmd, category, node.ID, depth+1)
		}
	}
	return count
}
