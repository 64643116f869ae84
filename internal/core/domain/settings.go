package domain

const unknownDescription = "Unknown"

// Theme selects the icon and colour set used by the TUI.
type Theme string

// Available themes.
const (
	// ThemeDefault uses Unicode icons and the full colour palette.
	ThemeDefault Theme = "default"

	// ThemeASCII uses plain ASCII markers for terminals without
	// Unicode or emoji support.
	ThemeASCII Theme = "ascii"
)

// IsValid returns true if the theme is recognised.
func (t Theme) IsValid() bool {
	switch t {
	case ThemeDefault, ThemeASCII:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t Theme) String() string {
	return string(t)
}

// Description returns a human-readable description of the theme.
func (t Theme) Description() string {
	switch t {
	case ThemeDefault:
		return "Default (Unicode icons)"
	case ThemeASCII:
		return "ASCII (compatibility markers)"
	default:
		return unknownDescription
	}
}

// AllThemes returns all available themes.
func AllThemes() []Theme {
	return []Theme{ThemeDefault, ThemeASCII}
}

// UISettings holds interactive interface configuration.
type UISettings struct {
	// Theme is the TUI icon and colour set.
	Theme Theme

	// Mouse enables mouse support in the TUI.
	Mouse bool
}

// ExecutionSettings holds command execution behaviour configuration.
type ExecutionSettings struct {
	// SkipConfirmation suppresses the confirmation prompt before
	// executing a command.
	SkipConfirmation bool

	// HistoryLimit caps how many execution results are retained.
	HistoryLimit int
}

// CatalogSettings holds catalog source configuration.
type CatalogSettings struct {
	// Dir is the local catalog directory.
	Dir string

	// Validate applies the provider's compatibility filter when loading.
	Validate bool

	// Repo is the optional GitHub repository ("owner/name") that
	// `catalog fetch` pulls catalog files from.
	Repo string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// UI holds interactive interface settings.
	UI UISettings

	// Execution holds command execution settings.
	Execution ExecutionSettings

	// Catalog holds catalog source settings.
	Catalog CatalogSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The catalog directory is left empty; callers resolve it against the
// application home directory.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		UI: UISettings{
			Theme: ThemeDefault,
			Mouse: false,
		},
		Execution: ExecutionSettings{
			SkipConfirmation: false,
			HistoryLimit:     200,
		},
		Catalog: CatalogSettings{
			Validate: false,
		},
	}
}
