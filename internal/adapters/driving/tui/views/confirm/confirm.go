// Package confirm provides the pre-execution confirmation modal for the TUI.
package confirm

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/runbook-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/runbook-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/runbook-cli/internal/core/domain"
)

// View is the confirmation modal shown before commands execute.
type View struct {
	styles *styles.Styles

	prompt string
	detail string
	width  int
	height int
	ready  bool
}

// NewView creates a new confirmation view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s}
}

// SetItem primes the modal for a single command.
func (v *View) SetItem(item domain.Item) {
	v.prompt = fmt.Sprintf("Run %q?", item.Name)
	v.detail = item.Description
}

// SetSelectionCount primes the modal for a batched execution.
func (v *View) SetSelectionCount(count int) {
	v.prompt = fmt.Sprintf("Run %d selected commands?", count)
	v.detail = "Commands run one at a time, in selection order."
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the confirmation view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "y", "Y", "enter":
			return v, func() tea.Msg {
				return messages.ExecutionConfirmed{}
			}
		case "n", "N", "esc":
			return v, func() tea.Msg {
				return messages.ExecutionCancelled{}
			}
		}
	}

	return v, nil
}

// View renders the confirmation modal.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Warning.Render(v.prompt))
	b.WriteString("\n\n")

	if v.detail != "" {
		b.WriteString(v.styles.Muted.Render(v.detail))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[y/enter] run  [n/esc] cancel"))

	return v.styles.Border.Padding(1, 2).Render(b.String())
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Prompt returns the modal's question text.
func (v *View) Prompt() string {
	return v.prompt
}
