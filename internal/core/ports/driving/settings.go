package driving

import "github.com/custodia-labs/runbook-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// SetTheme updates the TUI theme.
	SetTheme(theme domain.Theme) error

	// SetMouse toggles TUI mouse support.
	SetMouse(enabled bool) error

	// SetSkipConfirmation toggles the pre-execution confirmation prompt.
	SetSkipConfirmation(skip bool) error

	// SetCatalogDir updates the local catalog directory.
	SetCatalogDir(dir string) error

	// SetCatalogRepo updates the GitHub repository catalog fetches pull from.
	SetCatalogRepo(repo string) error

	// SetGitHubToken stores the GitHub API token used by catalog fetches.
	SetGitHubToken(token string) error

	// GitHubToken returns the stored GitHub API token, if any.
	GitHubToken() string

	// Validate checks that the current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
