// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/runbook-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewBrowser is the catalog browsing view.
	ViewBrowser ViewType = iota
	// ViewPreview shows a command's preview text.
	ViewPreview
	// ViewOutput shows execution progress and results.
	ViewOutput
	// ViewConfirm is the pre-execution confirmation modal.
	ViewConfirm
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewBrowser:
		return "browser"
	case ViewPreview:
		return "preview"
	case ViewOutput:
		return "output"
	case ViewConfirm:
		return "confirm"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// SessionLoaded carries the category list once the browsing session is up.
type SessionLoaded struct {
	Categories []string
	Err        error
}

// CategorySwitched signals the session moved to another category.
type CategorySwitched struct {
	Name string
	Err  error
}

// CatalogReloaded signals a catalog reload finished.
type CatalogReloaded struct {
	Err error
}

// PreviewRequested asks the app to show the preview for one item.
type PreviewRequested struct {
	Category string
	Item     domain.Item
}

// PreviewLoaded carries rendered preview text back to the model.
type PreviewLoaded struct {
	Title   string
	Content string
	Err     error
}

// ExecuteRequested asks the app to run one item. The app decides
// whether a confirmation step is needed first.
type ExecuteRequested struct {
	Category string
	Item     domain.Item
}

// ExecuteSelectedRequested asks the app to run the whole selection.
type ExecuteSelectedRequested struct{}

// ExecutionConfirmed signals the user accepted the confirmation modal.
type ExecutionConfirmed struct{}

// ExecutionCancelled signals the user dismissed the confirmation modal.
type ExecutionCancelled struct{}

// ExecutionSubmitted reports how many requests were enqueued.
type ExecutionSubmitted struct {
	Count int
	Err   error
}

// ResultReceived carries one completed execution result.
type ResultReceived struct {
	Result domain.ExecutionResult
}

// PollTick drives result polling while executions are outstanding.
type PollTick struct{}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
