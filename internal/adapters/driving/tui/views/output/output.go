// Package output provides the execution output view component for the TUI.
// It shows a spinner while commands run and accumulates finished results.
package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/runbook-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/runbook-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/runbook-cli/internal/core/domain"
)

// View is the execution output view.
type View struct {
	styles *styles.Styles
	spin   spinner.Model

	results      []domain.ExecutionResult
	lines        []string
	executing    bool
	pending      int
	scrollOffset int
	width        int
	height       int
	ready        bool
}

// NewView creates a new output view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(s.Subtitle),
	)

	return &View{
		styles: s,
		spin:   spin,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SpinnerTick returns the command that drives the spinner animation.
func (v *View) SpinnerTick() tea.Cmd {
	return v.spin.Tick
}

// Update handles messages for the output view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		v.rebuildLines()
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !v.executing {
			return v, nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd

	case messages.ResultReceived:
		v.AddResult(msg.Result)
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup", "ctrl+u":
		v.scrollOffset -= v.visibleLines()
		if v.scrollOffset < 0 {
			v.scrollOffset = 0
		}
	case "pgdown", "ctrl+d":
		maxOffset := v.maxScrollOffset()
		v.scrollOffset += v.visibleLines()
		if v.scrollOffset > maxOffset {
			v.scrollOffset = maxOffset
		}
	case "home", "g":
		v.scrollOffset = 0
	case "end", "G":
		v.scrollOffset = v.maxScrollOffset()
	case "esc", "q":
		// Leaving the view never interrupts the worker; results keep
		// arriving and are shown on the next visit.
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewBrowser}
		}
	}

	return v, nil
}

// AddResult appends a finished result and scrolls to the bottom.
func (v *View) AddResult(result domain.ExecutionResult) {
	v.results = append(v.results, result)
	v.rebuildLines()
	v.scrollOffset = v.maxScrollOffset()
}

// SetExecuting toggles the running indicator.
func (v *View) SetExecuting(executing bool) {
	v.executing = executing
}

// SetPending updates the outstanding request count.
func (v *View) SetPending(pending int) {
	v.pending = pending
}

// Reset clears accumulated results.
func (v *View) Reset() {
	v.results = nil
	v.lines = nil
	v.scrollOffset = 0
	v.executing = false
	v.pending = 0
}

// rebuildLines re-renders all results into display lines.
func (v *View) rebuildLines() {
	contentWidth := v.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	v.lines = v.lines[:0]
	for i := 0; i < len(v.results); i++ {
		v.appendResultLines(&v.results[i], contentWidth)
	}
}

// appendResultLines renders one result block.
func (v *View) appendResultLines(result *domain.ExecutionResult, contentWidth int) {
	v.lines = append(v.lines, v.renderHeader(result))

	body := result.Output
	if !result.Success && result.Error != "" {
		body = result.Error
	}
	rawLines := strings.Split(body, "\n")
	for i := 0; i < len(rawLines); i++ {
		line := rawLines[i]
		for len(line) > contentWidth {
			v.lines = append(v.lines, "  "+line[:contentWidth])
			line = line[contentWidth:]
		}
		v.lines = append(v.lines, "  "+line)
	}
	v.lines = append(v.lines, "")
}

// renderHeader formats one result's status line.
func (v *View) renderHeader(result *domain.ExecutionResult) string {
	exit := "no exit code"
	if result.ExitCode != nil {
		exit = fmt.Sprintf("exit %d", *result.ExitCode)
	}
	elapsed := result.Duration().Round(time.Millisecond)

	if result.Success {
		return v.styles.Success.Render(
			fmt.Sprintf("✓ %s (%s, %s)", result.Name, exit, elapsed),
		)
	}
	return v.styles.Error.Render(
		fmt.Sprintf("✗ %s (%s, %s)", result.Name, exit, elapsed),
	)
}

// visibleLines returns the number of lines that can be displayed.
func (v *View) visibleLines() int {
	// Reserve lines for title, running indicator, help and padding
	reserved := 7
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	maxOffset := len(v.lines) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

// View renders the output view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Execution Output"))
	b.WriteString("\n")

	if v.executing {
		b.WriteString(v.spin.View())
		b.WriteString(v.styles.Warning.Render(fmt.Sprintf(" Running... (%d pending)", v.pending)))
	} else {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%d finished", len(v.results))))
	}
	b.WriteString("\n\n")

	if len(v.lines) == 0 {
		b.WriteString(v.styles.Muted.Render("No output yet."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visible := v.visibleLines()
	for i := v.scrollOffset; i < len(v.lines) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.lines[i])
		b.WriteString("\n")
	}

	if len(v.lines) > visible {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [line %d-%d of %d]",
			v.scrollOffset+1,
			minInt(v.scrollOffset+visible, len(v.lines)),
			len(v.lines))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.rebuildLines()
}

// Results returns the accumulated results.
func (v *View) Results() []domain.ExecutionResult {
	return v.results
}

// Executing reports whether the running indicator is shown.
func (v *View) Executing() bool {
	return v.executing
}

// Pending returns the displayed outstanding request count.
func (v *View) Pending() int {
	return v.pending
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
