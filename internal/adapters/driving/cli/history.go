package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// historyLimit caps how many entries the history command prints.
var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent command executions",
	Long:  `Lists recorded execution results, newest first.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of entries to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	ctx := context.Background()

	results, err := historyService.Recent(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(results) == 0 {
		cmd.Println("No executions recorded.")
		return nil
	}

	cmd.Println("Recent executions:")
	cmd.Println()
	for i := range results {
		r := results[i]
		marker := "ok"
		if !r.Success {
			marker = "FAILED"
		}
		cmd.Printf("  %s  %-6s  %s (%s)\n",
			r.FinishedAt.Format("2006-01-02 15:04:05"), marker, r.Name, exitText(&r))
	}
	cmd.Printf("\nTotal: %d executions\n", len(results))
	return nil
}
