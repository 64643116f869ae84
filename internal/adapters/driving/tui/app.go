package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/runbook-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/runbook-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/runbook-cli/internal/adapters/driving/tui/views/browser"
	"github.com/custodia-labs/runbook-cli/internal/adapters/driving/tui/views/confirm"
	"github.com/custodia-labs/runbook-cli/internal/adapters/driving/tui/views/output"
	"github.com/custodia-labs/runbook-cli/internal/adapters/driving/tui/views/preview"
	"github.com/custodia-labs/runbook-cli/internal/core/domain"
)

// pollInterval is how often the app polls for finished executions
// while requests are outstanding.
const pollInterval = 200 * time.Millisecond

// pendingExecution is the submission the confirmation modal is waiting on.
type pendingExecution struct {
	category  string
	item      domain.Item
	selection bool
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// browserView is the catalog browsing view.
	browserView *browser.View

	// previewView shows a command's preview text.
	previewView *preview.View

	// outputView shows execution progress and results.
	outputView *output.View

	// confirmView is the pre-execution confirmation modal.
	confirmView *confirm.View

	// pending is the submission awaiting confirmation, if any.
	pending *pendingExecution

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	icons := styles.IconsFor(themeName(ports))

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		browserView: browser.NewView(s, icons, ports.Browser),
		previewView: preview.NewView(s, ports.Catalog),
		outputView:  output.NewView(s),
		confirmView: confirm.NewView(s),
		currentView: messages.ViewBrowser,
	}, nil
}

// themeName resolves the configured theme, falling back to the default.
func themeName(ports *Ports) string {
	if ports.Settings == nil {
		return domain.ThemeDefault.String()
	}
	settings, err := ports.Settings.Get()
	if err != nil || settings == nil {
		return domain.ThemeDefault.String()
	}
	return settings.UI.Theme.String()
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("runbook - Command Catalog"),
		a.browserView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.browserView.SetDimensions(msg.Width, msg.Height)
		a.previewView.SetDimensions(msg.Width, msg.Height)
		a.outputView.SetDimensions(msg.Width, msg.Height)
		a.confirmView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewBrowser:
			a.browserView, cmd = a.browserView.Update(msg)
			return a, cmd

		case messages.ViewPreview:
			a.previewView, cmd = a.previewView.Update(msg)
			return a, cmd

		case messages.ViewOutput:
			a.outputView, cmd = a.outputView.Update(msg)
			return a, cmd

		case messages.ViewConfirm:
			a.confirmView, cmd = a.confirmView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			// Esc from help returns to the browser
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewBrowser
				return a, nil
			}
			return a, nil
		}
		return a, nil

	case spinner.TickMsg:
		// The spinner keeps animating even when another view is active.
		a.outputView, cmd = a.outputView.Update(msg)
		return a, cmd

	case messages.SessionLoaded, messages.CategorySwitched, messages.CatalogReloaded:
		a.browserView, cmd = a.browserView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewBrowser {
			a.browserView.Sync()
		}
		return a, nil

	case messages.PreviewRequested:
		a.currentView = messages.ViewPreview
		return a, a.previewView.SetItem(msg.Category, msg.Item)

	case messages.PreviewLoaded:
		a.previewView, cmd = a.previewView.Update(msg)
		return a, cmd

	case messages.ExecuteRequested:
		if a.skipConfirmation() {
			return a, a.submitItem(msg.Category, msg.Item)
		}
		a.pending = &pendingExecution{category: msg.Category, item: msg.Item}
		a.confirmView.SetItem(msg.Item)
		a.currentView = messages.ViewConfirm
		return a, nil

	case messages.ExecuteSelectedRequested:
		if a.skipConfirmation() {
			return a, a.submitSelection()
		}
		a.pending = &pendingExecution{selection: true}
		a.confirmView.SetSelectionCount(a.ports.Browser.SelectionCount())
		a.currentView = messages.ViewConfirm
		return a, nil

	case messages.ExecutionConfirmed:
		pending := a.pending
		a.pending = nil
		a.currentView = messages.ViewBrowser
		if pending == nil {
			return a, nil
		}
		if pending.selection {
			return a, a.submitSelection()
		}
		return a, a.submitItem(pending.category, pending.item)

	case messages.ExecutionCancelled:
		a.pending = nil
		a.currentView = messages.ViewBrowser
		return a, nil

	case messages.ExecutionSubmitted:
		if msg.Err != nil {
			a.err = msg.Err
			a.browserView, cmd = a.browserView.Update(messages.ErrorOccurred{Err: msg.Err})
			a.currentView = messages.ViewBrowser
			return a, cmd
		}
		a.browserView.Sync()
		a.outputView.SetExecuting(true)
		a.outputView.SetPending(a.ports.Execution.Pending())
		a.currentView = messages.ViewOutput
		return a, tea.Batch(a.pollTick(), a.outputView.SpinnerTick())

	case messages.PollTick:
		return a.drainResults()

	case messages.ResultReceived:
		a.outputView, cmd = a.outputView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		// Forward to current view
		switch a.currentView {
		case messages.ViewBrowser:
			a.browserView, cmd = a.browserView.Update(msg)
		case messages.ViewPreview:
			a.previewView, cmd = a.previewView.Update(msg)
		case messages.ViewOutput:
			a.outputView, cmd = a.outputView.Update(msg)
		case messages.ViewConfirm, messages.ViewHelp:
			// Modal views don't display errors
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to the active view
	switch a.currentView {
	case messages.ViewBrowser:
		a.browserView, cmd = a.browserView.Update(msg)
	case messages.ViewPreview:
		a.previewView, cmd = a.previewView.Update(msg)
	case messages.ViewOutput:
		a.outputView, cmd = a.outputView.Update(msg)
	case messages.ViewConfirm:
		a.confirmView, cmd = a.confirmView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// skipConfirmation reports whether the confirmation modal is disabled.
func (a *App) skipConfirmation() bool {
	if a.ports.Settings == nil {
		return false
	}
	settings, err := a.ports.Settings.Get()
	if err != nil || settings == nil {
		return false
	}
	return settings.Execution.SkipConfirmation
}

// submitItem returns a command that enqueues one node for execution.
func (a *App) submitItem(category string, item domain.Item) tea.Cmd {
	return func() tea.Msg {
		if err := a.ports.Execution.Execute(a.ctx, category, item.ID); err != nil {
			return messages.ExecutionSubmitted{Err: err}
		}
		return messages.ExecutionSubmitted{Count: 1}
	}
}

// submitSelection returns a command that enqueues the whole selection.
func (a *App) submitSelection() tea.Cmd {
	return func() tea.Msg {
		count, err := a.ports.Execution.ExecuteSelected(a.ctx)
		return messages.ExecutionSubmitted{Count: count, Err: err}
	}
}

// pollTick schedules the next result poll.
func (a *App) pollTick() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return messages.PollTick{}
	})
}

// drainResults collects every finished result and keeps polling while
// requests remain outstanding. Executing is read before draining: the
// pending count only reaches zero after the final result is pollable,
// so the tick that observes zero still drains everything.
func (a *App) drainResults() (tea.Model, tea.Cmd) {
	executing := a.ports.Execution.Executing()

	for {
		result := a.ports.Execution.PollResult()
		if result == nil {
			break
		}
		a.outputView.AddResult(*result)
	}

	a.outputView.SetPending(a.ports.Execution.Pending())
	if executing {
		a.outputView.SetExecuting(true)
		return a, a.pollTick()
	}

	a.outputView.SetExecuting(false)
	a.browserView.Sync()
	return a, nil
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewBrowser:
		return a.browserView.View()
	case messages.ViewPreview:
		return a.previewView.View()
	case messages.ViewOutput:
		return a.outputView.View()
	case messages.ViewConfirm:
		return a.confirmView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.browserView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  j/k, ↑/↓    Move the cursor
  enter       Enter a directory, or run the command under the cursor
  esc         Go back one level (restores the previous cursor position)
  tab/S-tab   Switch category

Search:
  /           Focus the filter input
  enter       Apply the filter and return to the list
  esc         Clear the filter

Execution:
  space       Select/deselect a multi-select command
  x           Run every selected command
  p           Preview the command under the cursor
  r           Reload the catalog from disk

Other:
  ?           This help
  q, ctrl+c   Quit

[esc] back to browser`
}

// Run starts the TUI application.
func (a *App) Run() error {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if a.mouseEnabled() {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(a, opts...)
	_, err := p.Run()
	return err
}

// mouseEnabled reports whether mouse support is configured on.
func (a *App) mouseEnabled() bool {
	if a.ports.Settings == nil {
		return false
	}
	settings, err := a.ports.Settings.Get()
	if err != nil || settings == nil {
		return false
	}
	return settings.UI.Mouse
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.browserView.SetDimensions(width, height)
	a.previewView.SetDimensions(width, height)
	a.outputView.SetDimensions(width, height)
	a.confirmView.SetDimensions(width, height)
}
