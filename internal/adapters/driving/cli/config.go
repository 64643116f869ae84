package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change runbook settings",
	Long: `Shows and updates runbook's settings.

Available keys:
  ui.theme                     TUI theme (default, ascii)
  ui.mouse                     TUI mouse support (true, false)
  execution.skip_confirmation  Skip the pre-run confirmation (true, false)
  catalog.dir                  Local catalog directory
  catalog.repo                 GitHub repository for catalog fetch (owner/name)`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configSetTokenCmd = &cobra.Command{
	Use:   "set-token",
	Short: "Store the GitHub API token used by catalog fetches",
	Long:  `Prompts for a GitHub API token without echoing it, then stores it.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigSetToken,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetTokenCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	dir := settings.Catalog.Dir
	if dir == "" {
		dir = "(default)"
	}
	repo := settings.Catalog.Repo
	if repo == "" {
		repo = "(not set)"
	}
	token := "(not set)"
	if t := settingsService.GitHubToken(); t != "" {
		token = maskToken(t)
	}

	cmd.Println("Current settings:")
	cmd.Println()
	cmd.Printf("  ui.theme:                     %s\n", settings.UI.Theme)
	cmd.Printf("  ui.mouse:                     %t\n", settings.UI.Mouse)
	cmd.Printf("  execution.skip_confirmation:  %t\n", settings.Execution.SkipConfirmation)
	cmd.Printf("  execution.history_limit:      %d\n", settings.Execution.HistoryLimit)
	cmd.Printf("  catalog.dir:                  %s\n", dir)
	cmd.Printf("  catalog.validate:             %t\n", settings.Catalog.Validate)
	cmd.Printf("  catalog.repo:                 %s\n", repo)
	cmd.Printf("  github.token:                 %s\n", token)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]

	switch key {
	case "ui.theme":
		if err := settingsService.SetTheme(domain.Theme(value)); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	case "ui.mouse":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s expects true or false, got %q", key, value)
		}
		if err := settingsService.SetMouse(enabled); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	case "execution.skip_confirmation":
		skip, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s expects true or false, got %q", key, value)
		}
		if err := settingsService.SetSkipConfirmation(skip); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	case "catalog.dir":
		if err := settingsService.SetCatalogDir(value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	case "catalog.repo":
		if err := settingsService.SetCatalogRepo(value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	default:
		return fmt.Errorf("unknown setting: %s", key)
	}

	cmd.Printf("Set %s to %s.\n", key, value)
	return nil
}

func runConfigSetToken(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Print("GitHub token (input hidden): ")
	token := readPassword(cmd.InOrStdin())
	cmd.Println()

	if token == "" {
		return errors.New("no token entered")
	}

	if err := settingsService.SetGitHubToken(token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	cmd.Printf("Token stored (%s).\n", maskToken(token))
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword(in io.Reader) string {
	// Try to read the token without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		token, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(token)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(in)
	return readLine(reader)
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
