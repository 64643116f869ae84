// Package browser provides the catalog browsing view for the TUI.
// It renders category tabs, a breadcrumb, a filterable item list and a
// status bar, all driven by one browsing session.
package browser

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/runbook-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/runbook-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/runbook-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/runbook-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/runbook-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/runbook-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/runbook-cli/internal/core/domain"
	"github.com/custodia-labs/runbook-cli/internal/core/ports/driving"
)

// View is the catalog browsing view.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	browser driving.BrowserService

	itemList  *list.ItemList
	filter    *input.FilterInput
	statusBar *status.Bar

	categories []string
	filtering  bool
	loading    bool
	width      int
	height     int
	ready      bool
	err        error
}

// NewView creates a new browsing view.
func NewView(s *styles.Styles, icons styles.Icons, browser driving.BrowserService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	return &View{
		styles:    s,
		keymap:    km,
		browser:   browser,
		itemList:  list.NewItemList(s, icons),
		filter:    input.NewFilterInput(s),
		statusBar: status.NewBar(s, km),
		loading:   true,
	}
}

// Init starts the browsing session.
func (v *View) Init() tea.Cmd {
	return v.loadSession()
}

// loadSession returns a command that loads the categories and switches
// the session to the first one.
func (v *View) loadSession() tea.Cmd {
	return func() tea.Msg {
		if v.browser == nil {
			return messages.SessionLoaded{Err: fmt.Errorf("browser service not available")}
		}

		ctx := context.Background()
		categories, err := v.browser.Categories(ctx)
		if err != nil {
			return messages.SessionLoaded{Err: err}
		}
		if len(categories) > 0 {
			if err := v.browser.SwitchCategory(ctx, categories[0]); err != nil {
				return messages.SessionLoaded{Categories: categories, Err: err}
			}
		}
		return messages.SessionLoaded{Categories: categories}
	}
}

// reloadCatalog returns a command that re-resolves the session against
// a fresh snapshot.
func (v *View) reloadCatalog() tea.Cmd {
	return func() tea.Msg {
		if v.browser == nil {
			return messages.CatalogReloaded{Err: fmt.Errorf("browser service not available")}
		}
		return messages.CatalogReloaded{Err: v.browser.Reload(context.Background())}
	}
}

// switchCategory returns a command that moves the session to the
// category step tabs away from the current one, wrapping around.
func (v *View) switchCategory(step int) tea.Cmd {
	if len(v.categories) == 0 {
		return nil
	}

	idx := 0
	current := v.browser.CurrentCategory()
	for i := 0; i < len(v.categories); i++ {
		if v.categories[i] == current {
			idx = i
			break
		}
	}
	name := v.categories[(idx+step+len(v.categories))%len(v.categories)]

	return func() tea.Msg {
		err := v.browser.SwitchCategory(context.Background(), name)
		return messages.CategorySwitched{Name: name, Err: err}
	}
}

// Update handles messages for the browsing view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SessionLoaded:
		v.loading = false
		v.categories = msg.Categories
		v.err = msg.Err
		v.syncItems()
		return v, nil

	case messages.CategorySwitched:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.err = nil
			v.filtering = false
			v.filter.Reset()
		}
		v.syncItems()
		return v, nil

	case messages.CatalogReloaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.err = nil
			v.filtering = false
			v.filter.Reset()
		}
		v.syncItems()
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.syncItems()
		return v, nil

	case tea.KeyMsg:
		if v.filtering {
			return v.handleFilterKeyMsg(msg)
		}
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses in browsing mode.
//
//nolint:gocognit,gocyclo // one case per keybinding
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Up):
		v.itemList.MoveUp()
		v.browser.SetSelectedIndex(v.itemList.Selected())

	case keymap.Matches(msg.String(), v.keymap.Down):
		v.itemList.MoveDown()
		v.browser.SetSelectedIndex(v.itemList.Selected())

	case keymap.Matches(msg.String(), v.keymap.Select):
		item := v.itemList.SelectedItem()
		if item == nil {
			return v, nil
		}
		if item.HasChildren {
			if err := v.browser.Enter(item.ID); err != nil {
				v.err = err
			}
			// Descending clears the session's search.
			v.filter.SetValue(v.browser.Search())
			v.syncItems()
			return v, nil
		}
		selected := *item
		category := v.browser.CurrentCategory()
		return v, func() tea.Msg {
			return messages.ExecuteRequested{Category: category, Item: selected}
		}

	case keymap.Matches(msg.String(), v.keymap.Toggle):
		item := v.itemList.SelectedItem()
		if item == nil {
			return v, nil
		}
		if err := v.browser.ToggleSelection(item.ID); err != nil {
			v.err = err
		}
		v.syncItems()

	case keymap.Matches(msg.String(), v.keymap.RunSelected):
		if v.browser.SelectionCount() == 0 {
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ExecuteSelectedRequested{}
		}

	case keymap.Matches(msg.String(), v.keymap.Preview):
		item := v.itemList.SelectedItem()
		if item == nil {
			return v, nil
		}
		selected := *item
		category := v.browser.CurrentCategory()
		return v, func() tea.Msg {
			return messages.PreviewRequested{Category: category, Item: selected}
		}

	case keymap.Matches(msg.String(), v.keymap.Search):
		v.filtering = true
		v.statusBar.SetState(status.StateFiltering)
		return v, v.filter.Focus()

	case keymap.Matches(msg.String(), v.keymap.NextCategory):
		return v, v.switchCategory(1)

	case keymap.Matches(msg.String(), v.keymap.PrevCategory):
		return v, v.switchCategory(-1)

	case keymap.Matches(msg.String(), v.keymap.Refresh):
		v.loading = true
		return v, v.reloadCatalog()

	case keymap.Matches(msg.String(), v.keymap.Back):
		// Popping a level clears any active search; at the root the pop
		// is a no-op and the search survives. Mirror either outcome.
		v.browser.GoBack()
		v.filter.SetValue(v.browser.Search())
		v.syncItems()

	case keymap.Matches(msg.String(), v.keymap.Help):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHelp}
		}

	case keymap.Matches(msg.String(), v.keymap.Quit):
		return v, tea.Quit
	}

	return v, nil
}

// handleFilterKeyMsg handles key presses while the filter input is focused.
func (v *View) handleFilterKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.filtering = false
		v.filter.Blur()
		v.filter.Reset()
		v.browser.SetSearch("")
		v.syncItems()
		return v, nil

	case "enter":
		// Keep the filter applied; return focus to the list.
		v.filtering = false
		v.filter.Blur()
		v.syncItems()
		return v, nil
	}

	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	v.browser.SetSearch(v.filter.Value())
	v.syncItems()
	return v, cmd
}

// Sync refreshes the visible items from the session state. The app
// calls it after operations that mutate the selection outside this view.
func (v *View) Sync() {
	v.syncItems()
}

// syncItems refreshes the list and status bar from the session state.
func (v *View) syncItems() {
	if v.browser == nil {
		return
	}

	items := v.browser.CurrentItems()
	v.itemList.SetItems(items)
	v.itemList.SetSelected(v.browser.SelectedIndex())

	v.statusBar.SetItemCount(len(items))
	switch {
	case v.err != nil:
		v.statusBar.SetState(status.StateError)
		v.statusBar.SetMessage(v.err.Error())
	case v.filtering || v.browser.Search() != "":
		v.statusBar.SetState(status.StateFiltering)
	default:
		v.statusBar.SetState(status.StateBrowsing)
		v.statusBar.SetMessage("")
	}
}

// View renders the browsing view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Runbook"))
	b.WriteString("\n")
	b.WriteString(v.renderTabs())
	b.WriteString("\n")
	b.WriteString(v.renderBreadcrumb())
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading catalog..."))
		b.WriteString("\n")
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.filtering || v.filter.Value() != "" {
		b.WriteString(v.filter.View())
		b.WriteString("\n\n")
	}

	b.WriteString(v.itemList.View())
	b.WriteString("\n\n")

	if count := v.browser.SelectionCount(); count > 0 {
		b.WriteString(v.styles.Success.Render(fmt.Sprintf("%d selected", count)))
		b.WriteString("  ")
		b.WriteString(v.styles.Help.Render("[x] run selected"))
		b.WriteString("\n")
	}

	b.WriteString(v.statusBar.View())

	return b.String()
}

// renderTabs renders the category tab row.
func (v *View) renderTabs() string {
	if len(v.categories) == 0 {
		return v.styles.Muted.Render("(no categories)")
	}

	current := v.browser.CurrentCategory()
	tabs := make([]string, 0, len(v.categories))
	for i := 0; i < len(v.categories); i++ {
		name := v.categories[i]
		if name == current {
			tabs = append(tabs, v.styles.ActiveTab.Render(name))
		} else {
			tabs = append(tabs, v.styles.Tab.Render(name))
		}
	}
	return strings.Join(tabs, " ")
}

// renderBreadcrumb renders the navigation trail.
func (v *View) renderBreadcrumb() string {
	if v.browser == nil {
		return ""
	}
	return v.styles.Muted.Render(strings.Join(v.browser.Breadcrumb(), " > "))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	// Reserve lines for title, tabs, breadcrumb, filter, selection
	// summary and status bar.
	reserved := 10
	listHeight := height - reserved
	if listHeight < 3 {
		listHeight = 3
	}
	v.itemList.SetDimensions(width, listHeight)
	v.filter.SetWidth(width)
	v.statusBar.SetWidth(width)
}

// Categories returns the loaded category names.
func (v *View) Categories() []string {
	return v.categories
}

// Items returns the currently visible items.
func (v *View) Items() []domain.Item {
	return v.itemList.Items()
}

// SelectedIndex returns the cursor position within the visible items.
func (v *View) SelectedIndex() int {
	return v.itemList.Selected()
}

// SelectedItem returns the item under the cursor, or nil.
func (v *View) SelectedItem() *domain.Item {
	return v.itemList.SelectedItem()
}

// Filtering reports whether the filter input has focus.
func (v *View) Filtering() bool {
	return v.filtering
}

// FilterText returns the current filter text.
func (v *View) FilterText() string {
	return v.filter.Value()
}

// Loading reports whether the initial session load is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
