package browser

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmem "github.com/custodia-labs/runbook-cli/internal/adapters/driven/catalog/memory"
	"github.com/custodia-labs/runbook-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/runbook-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/runbook-cli/internal/core/domain"
	"github.com/custodia-labs/runbook-cli/internal/core/services"
)

// testSnapshot builds the browsing fixture:
//
//	Linux
//	├── System (directory)
//	│   ├── Upgrade (raw)
//	│   └── Cleanup (raw, multi_select)
//	└── Update (raw, multi_select)
//	Applications
//	└── Browser (raw)
func testSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Categories: []domain.Category{
			{
				Name:   "Linux",
				RootID: "root",
				Nodes: map[string]domain.Node{
					"root": {
						ID:       "root",
						Name:     "root",
						Children: []string{"system", "update"},
						Command:  domain.NoCommand(),
					},
					"system": {
						ID:          "system",
						Name:        "System",
						Description: "System maintenance tasks",
						Children:    []string{"upgrade", "cleanup"},
						Command:     domain.NoCommand(),
					},
					"upgrade": {
						ID:          "upgrade",
						Name:        "Upgrade",
						Description: "Upgrade all packages",
						Command:     domain.RawCommand("apt-get upgrade -y"),
					},
					"cleanup": {
						ID:          "cleanup",
						Name:        "Cleanup",
						Description: "Remove unused packages",
						MultiSelect: true,
						Command:     domain.RawCommand("apt-get autoremove -y"),
					},
					"update": {
						ID:          "update",
						Name:        "Update",
						Description: "Update package lists",
						MultiSelect: true,
						Command:     domain.RawCommand("echo ok"),
					},
				},
			},
			{
				Name:   "Applications",
				RootID: "root",
				Nodes: map[string]domain.Node{
					"root": {
						ID:       "root",
						Name:     "root",
						Children: []string{"browser"},
						Command:  domain.NoCommand(),
					},
					"browser": {
						ID:          "browser",
						Name:        "Browser",
						Description: "Install a web browser",
						Command:     domain.RawCommand("apt-get install -y firefox"),
					},
				},
			},
		},
	}
}

// newTestView builds a browsing view over real services with the
// session already loaded.
func newTestView(t *testing.T) *View {
	t.Helper()

	provider := catalogmem.NewProvider(testSnapshot())
	catalog := services.NewCatalogService(provider, false)
	session := services.NewBrowserService(catalog)

	view := NewView(styles.DefaultStyles(), styles.DefaultIcons(), session)
	view.SetDimensions(80, 24)

	cmd := view.Init()
	require.NotNil(t, cmd)
	view, _ = view.Update(cmd())
	require.NoError(t, view.Err())

	return view
}

// runeKey builds the key message for a single printable key.
func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// itemNames projects the visible items to their display names.
func itemNames(items []domain.Item) []string {
	names := make([]string, len(items))
	for i := 0; i < len(items); i++ {
		names[i] = items[i].Name
	}
	return names
}

func TestNewView_DefaultsStyles(t *testing.T) {
	view := NewView(nil, styles.DefaultIcons(), nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.True(t, view.Loading())
}

func TestView_Init_LoadsSession(t *testing.T) {
	view := newTestView(t)

	assert.Equal(t, []string{"Linux", "Applications"}, view.Categories())
	assert.False(t, view.Loading())
	assert.Equal(t, []string{"System", "Update"}, itemNames(view.Items()))
	assert.Equal(t, 0, view.SelectedIndex())
}

func TestView_Navigation_MovesCursor(t *testing.T) {
	view := newTestView(t)

	view, _ = view.Update(runeKey('j'))
	assert.Equal(t, 1, view.SelectedIndex())
	require.NotNil(t, view.SelectedItem())
	assert.Equal(t, "Update", view.SelectedItem().Name)

	// Cursor stops at the last item.
	view, _ = view.Update(runeKey('j'))
	assert.Equal(t, 1, view.SelectedIndex())

	view, _ = view.Update(runeKey('k'))
	assert.Equal(t, 0, view.SelectedIndex())
	assert.Equal(t, "System", view.SelectedItem().Name)
}

func TestView_Select_EntersDirectory(t *testing.T) {
	view := newTestView(t)

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, []string{"Upgrade", "Cleanup"}, itemNames(view.Items()))
	assert.Contains(t, view.View(), "Linux > System")
}

func TestView_Select_LeafRequestsExecution(t *testing.T) {
	view := newTestView(t)
	view, _ = view.Update(runeKey('j'))

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	requested, ok := cmd().(messages.ExecuteRequested)
	require.True(t, ok)
	assert.Equal(t, "Linux", requested.Category)
	assert.Equal(t, "update", requested.Item.ID)
	assert.Equal(t, []string{"System", "Update"}, itemNames(view.Items()))
}

func TestView_Select_EmptyListIsNoOp(t *testing.T) {
	view := newTestView(t)
	view, _ = view.Update(runeKey('/'))
	view, _ = view.Update(runeKey('z'))
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Empty(t, view.Items())

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestView_Back_RestoresCursor(t *testing.T) {
	view := newTestView(t)

	// Enter System, move the cursor inside it.
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view, _ = view.Update(runeKey('j'))
	require.Equal(t, 1, view.SelectedIndex())

	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, []string{"System", "Update"}, itemNames(view.Items()))
	assert.Equal(t, 0, view.SelectedIndex(), "cursor returns to the entry point")
}

func TestView_Back_AtRootKeepsFilter(t *testing.T) {
	view := newTestView(t)

	view, _ = view.Update(runeKey('/'))
	view, _ = view.Update(runeKey('u'))
	view, _ = view.Update(runeKey('p'))
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, []string{"Update"}, itemNames(view.Items()))

	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, "up", view.FilterText())
	assert.Equal(t, []string{"Update"}, itemNames(view.Items()))
}

func TestView_Back_FromDirectoryClearsFilter(t *testing.T) {
	view := newTestView(t)
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// Filter inside System, then pop back to the root.
	view, _ = view.Update(runeKey('/'))
	view, _ = view.Update(runeKey('r'))
	view, _ = view.Update(runeKey('e'))
	view, _ = view.Update(runeKey('m'))
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, []string{"Cleanup"}, itemNames(view.Items()))

	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, "", view.FilterText())
	assert.Equal(t, []string{"System", "Update"}, itemNames(view.Items()))
}

func TestView_FilterFlow(t *testing.T) {
	view := newTestView(t)

	view, _ = view.Update(runeKey('/'))
	assert.True(t, view.Filtering())

	view, _ = view.Update(runeKey('u'))
	view, _ = view.Update(runeKey('p'))
	assert.Equal(t, "up", view.FilterText())
	assert.Equal(t, []string{"Update"}, itemNames(view.Items()))

	// Enter keeps the filter applied and returns focus to the list.
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, view.Filtering())
	assert.Equal(t, "up", view.FilterText())
	assert.Equal(t, []string{"Update"}, itemNames(view.Items()))
}

func TestView_FilterEsc_Clears(t *testing.T) {
	view := newTestView(t)

	view, _ = view.Update(runeKey('/'))
	view, _ = view.Update(runeKey('u'))
	require.Equal(t, []string{"Update"}, itemNames(view.Items()))

	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, view.Filtering())
	assert.Equal(t, "", view.FilterText())
	assert.Equal(t, []string{"System", "Update"}, itemNames(view.Items()))
}

func TestView_Filter_MatchesDescription(t *testing.T) {
	view := newTestView(t)

	view, _ = view.Update(runeKey('/'))
	view, _ = view.Update(runeKey('m'))
	view, _ = view.Update(runeKey('a'))

	// "ma" only appears in System's description.
	assert.Equal(t, []string{"System"}, itemNames(view.Items()))
}

func TestView_Toggle_MultiSelect(t *testing.T) {
	view := newTestView(t)
	view, _ = view.Update(runeKey('j'))

	view, _ = view.Update(tea.KeyMsg{Type: tea.KeySpace})

	items := view.Items()
	require.Len(t, items, 2)
	assert.True(t, items[1].IsSelected)

	view, _ = view.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, view.Items()[1].IsSelected)
}

func TestView_Toggle_NonMultiSelectRefused(t *testing.T) {
	view := newTestView(t)

	view, _ = view.Update(tea.KeyMsg{Type: tea.KeySpace})

	assert.NoError(t, view.Err())
	assert.False(t, view.Items()[0].IsSelected)
}

func TestView_RunSelected_RequiresSelection(t *testing.T) {
	view := newTestView(t)

	_, cmd := view.Update(runeKey('x'))
	assert.Nil(t, cmd)

	view, _ = view.Update(runeKey('j'))
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeySpace})
	_, cmd = view.Update(runeKey('x'))

	require.NotNil(t, cmd)
	_, ok := cmd().(messages.ExecuteSelectedRequested)
	assert.True(t, ok)
}

func TestView_Preview_RequestsPreview(t *testing.T) {
	view := newTestView(t)

	_, cmd := view.Update(runeKey('p'))

	require.NotNil(t, cmd)
	requested, ok := cmd().(messages.PreviewRequested)
	require.True(t, ok)
	assert.Equal(t, "Linux", requested.Category)
	assert.Equal(t, "system", requested.Item.ID)
}

func TestView_SwitchCategory_Tab(t *testing.T) {
	view := newTestView(t)

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.NotNil(t, cmd)

	switched, ok := cmd().(messages.CategorySwitched)
	require.True(t, ok)
	require.NoError(t, switched.Err)
	assert.Equal(t, "Applications", switched.Name)

	view, _ = view.Update(switched)
	assert.Equal(t, []string{"Browser"}, itemNames(view.Items()))
}

func TestView_SwitchCategory_ShiftTabWraps(t *testing.T) {
	view := newTestView(t)

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	require.NotNil(t, cmd)

	switched, ok := cmd().(messages.CategorySwitched)
	require.True(t, ok)
	assert.Equal(t, "Applications", switched.Name, "wraps backwards from the first category")

	view, _ = view.Update(switched)
	assert.Contains(t, view.View(), "Browser")
}

func TestView_CategorySwitched_ClearsFilter(t *testing.T) {
	view := newTestView(t)
	view, _ = view.Update(runeKey('/'))
	view, _ = view.Update(runeKey('u'))

	view, _ = view.Update(messages.CategorySwitched{Name: "Applications"})

	assert.False(t, view.Filtering())
	assert.Equal(t, "", view.FilterText())
}

func TestView_Refresh_ReloadsCatalog(t *testing.T) {
	view := newTestView(t)

	view, cmd := view.Update(runeKey('r'))
	assert.True(t, view.Loading())
	require.NotNil(t, cmd)

	reloaded, ok := cmd().(messages.CatalogReloaded)
	require.True(t, ok)
	require.NoError(t, reloaded.Err)

	view, _ = view.Update(reloaded)
	assert.False(t, view.Loading())
	assert.Equal(t, []string{"System", "Update"}, itemNames(view.Items()))
}

func TestView_Help_ChangesView(t *testing.T) {
	view := newTestView(t)

	_, cmd := view.Update(runeKey('?'))

	require.NotNil(t, cmd)
	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewHelp, changed.View)
}

func TestView_Quit(t *testing.T) {
	view := newTestView(t)

	_, cmd := view.Update(runeKey('q'))

	assert.NotNil(t, cmd)
}

func TestView_ErrorOccurred_Shown(t *testing.T) {
	view := newTestView(t)

	view, _ = view.Update(messages.ErrorOccurred{Err: errors.New("catalog failed")})

	assert.Error(t, view.Err())
	assert.Contains(t, view.View(), "Error: catalog failed")
}

func TestView_View_RendersChrome(t *testing.T) {
	view := newTestView(t)

	output := view.View()

	assert.Contains(t, output, "Runbook")
	assert.Contains(t, output, "Linux")
	assert.Contains(t, output, "Applications")
	assert.Contains(t, output, "System")
	assert.Contains(t, output, "Update")
	assert.Contains(t, output, "2 items")
}

func TestView_View_ShowsSelectionSummary(t *testing.T) {
	view := newTestView(t)
	view, _ = view.Update(runeKey('j'))
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeySpace})

	output := view.View()

	assert.Contains(t, output, "1 selected")
	assert.Contains(t, output, "[x] run selected")
}
