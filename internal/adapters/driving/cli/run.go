package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
)

// resultPollInterval is how often run checks for a finished execution.
const resultPollInterval = 100 * time.Millisecond

// runYes skips the confirmation prompt.
var runYes bool

var runCmd = &cobra.Command{
	Use:   "run <category> <name...>",
	Short: "Run a catalog command",
	Long: `Resolves a catalog entry by category and name path, asks for
confirmation, then runs it and prints the captured output.

The exit status is 1 when the command fails.

Example:
  runbook run System "Package Updates" Upgrade --yes`,
	Args: cobra.MinimumNArgs(2),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVarP(&runYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}
	if executionService == nil {
		return errors.New("execution service not configured")
	}

	ctx := context.Background()
	category := args[0]

	node, err := resolveNode(ctx, category, args[1:])
	if err != nil {
		return err
	}

	if !confirmationSkipped() {
		cmd.Printf("Run %q? [y/N]: ", node.Name)
		reader := bufio.NewReader(cmd.InOrStdin())
		input := readLine(reader)
		if !strings.EqualFold(input, "y") && !strings.EqualFold(input, "yes") {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	if err := executionService.Execute(ctx, category, node.ID); err != nil {
		return fmt.Errorf("failed to submit %s: %w", node.Name, err)
	}

	cmd.Printf("Running %s...\n\n", node.Name)

	result, err := waitForResult(ctx)
	if err != nil {
		return err
	}

	printResult(cmd, result)

	if !result.Success {
		return fmt.Errorf("%s failed", result.Name)
	}
	return nil
}

// confirmationSkipped reports whether the prompt should be bypassed,
// either by the --yes flag or the skip_confirmation setting.
func confirmationSkipped() bool {
	if runYes {
		return true
	}
	if settingsService == nil {
		return false
	}
	settings, err := settingsService.Get()
	if err != nil || settings == nil {
		return false
	}
	return settings.Execution.SkipConfirmation
}

// waitForResult polls until the submitted request completes. Delivery
// is guaranteed once Execute accepted the request, so the result is the
// only exit condition.
func waitForResult(ctx context.Context) (*domain.ExecutionResult, error) {
	ticker := time.NewTicker(resultPollInterval)
	defer ticker.Stop()

	for {
		if result := executionService.PollResult(); result != nil {
			return result, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// printResult prints one execution result.
func printResult(cmd *cobra.Command, result *domain.ExecutionResult) {
	status := "succeeded"
	if !result.Success {
		status = "failed"
	}

	cmd.Printf("%s %s in %s (%s)\n\n", result.Name, status,
		result.Duration().Round(time.Millisecond), exitText(result))
	cmd.Println(result.Output)

	// Output already carries stderr when stdout was empty; only print
	// the error when it adds information.
	if result.Error != "" && result.Error != result.Output {
		cmd.Printf("\nError: %s\n", result.Error)
	}
}

// exitText formats the exit code, covering processes that never ran.
func exitText(result *domain.ExecutionResult) string {
	if result.ExitCode == nil {
		return "no exit code"
	}
	return fmt.Sprintf("exit %d", *result.ExitCode)
}
