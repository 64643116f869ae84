package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
	"github.com/custodia-labs/runbook-cli/internal/core/ports/driven"
	"github.com/custodia-labs/runbook-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyUITheme          = "ui.theme"
	keyUIMouse          = "ui.mouse"
	keySkipConfirmation = "execution.skip_confirmation"
	keyHistoryLimit     = "execution.history_limit"
	keyCatalogDir       = "catalog.dir"
	keyCatalogValidate  = "catalog.validate"
	keyCatalogRepo      = "catalog.repo"
	keyGitHubToken      = "github.token"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		UI: domain.UISettings{
			Theme: s.getTheme(defaults.UI.Theme),
			Mouse: s.getBool(keyUIMouse, defaults.UI.Mouse),
		},
		Execution: domain.ExecutionSettings{
			SkipConfirmation: s.getBool(keySkipConfirmation, defaults.Execution.SkipConfirmation),
			HistoryLimit:     s.getInt(keyHistoryLimit, defaults.Execution.HistoryLimit),
		},
		Catalog: domain.CatalogSettings{
			Dir:      s.configStore.GetString(keyCatalogDir), // No default - caller resolves against home
			Validate: s.getBool(keyCatalogValidate, defaults.Catalog.Validate),
			Repo:     s.configStore.GetString(keyCatalogRepo),
		},
	}

	return settings, nil
}

// SetTheme updates the TUI theme.
func (s *SettingsService) SetTheme(theme domain.Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("invalid theme %q: %w", theme, domain.ErrInvalidInput)
	}
	return s.configStore.Set(keyUITheme, theme.String())
}

// SetMouse toggles TUI mouse support.
func (s *SettingsService) SetMouse(enabled bool) error {
	return s.configStore.Set(keyUIMouse, enabled)
}

// SetSkipConfirmation toggles the pre-execution confirmation prompt.
func (s *SettingsService) SetSkipConfirmation(skip bool) error {
	return s.configStore.Set(keySkipConfirmation, skip)
}

// SetCatalogDir updates the local catalog directory.
func (s *SettingsService) SetCatalogDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("catalog dir cannot be empty: %w", domain.ErrInvalidInput)
	}
	return s.configStore.Set(keyCatalogDir, dir)
}

// SetCatalogRepo updates the GitHub repository catalog fetches pull from.
// The expected form is "owner/name".
func (s *SettingsService) SetCatalogRepo(repo string) error {
	if repo != "" {
		parts := strings.Split(repo, "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return fmt.Errorf("catalog repo must be owner/name, got %q: %w", repo, domain.ErrInvalidInput)
		}
	}
	return s.configStore.Set(keyCatalogRepo, repo)
}

// SetGitHubToken stores the GitHub API token used by catalog fetches.
func (s *SettingsService) SetGitHubToken(token string) error {
	return s.configStore.Set(keyGitHubToken, token)
}

// GitHubToken returns the stored GitHub API token, if any.
func (s *SettingsService) GitHubToken() string {
	return s.configStore.GetString(keyGitHubToken)
}

// Validate checks that the current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.UI.Theme.IsValid() {
		return fmt.Errorf("invalid theme: %s", settings.UI.Theme)
	}
	if settings.Execution.HistoryLimit < 0 {
		return fmt.Errorf("history limit cannot be negative: %d", settings.Execution.HistoryLimit)
	}
	if settings.Catalog.Repo != "" {
		parts := strings.Split(settings.Catalog.Repo, "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return fmt.Errorf("catalog repo must be owner/name, got %q", settings.Catalog.Repo)
		}
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getTheme(defaultVal domain.Theme) domain.Theme {
	val := s.configStore.GetString(keyUITheme)
	if val == "" {
		return defaultVal
	}
	theme := domain.Theme(val)
	if !theme.IsValid() {
		return defaultVal
	}
	return theme
}
