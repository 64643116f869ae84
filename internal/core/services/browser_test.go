package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmem "github.com/custodia-labs/runbook-cli/internal/adapters/driven/catalog/memory"
	"github.com/custodia-labs/runbook-cli/internal/core/domain"
)

// newTestBrowser builds a browser session over testSnapshot, switched
// to the Linux category.
func newTestBrowser(t *testing.T) *BrowserService {
	t.Helper()

	provider := catalogmem.NewProvider(testSnapshot())
	catalog := NewCatalogService(provider, false)
	browser := NewBrowserService(catalog)

	require.NoError(t, browser.SwitchCategory(context.Background(), "Linux"))
	return browser
}

// itemNames projects items to their names for order assertions.
func itemNames(items []domain.Item) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}

func TestNewBrowserService(t *testing.T) {
	provider := catalogmem.NewProvider(testSnapshot())
	catalog := NewCatalogService(provider, false)

	browser := NewBrowserService(catalog)

	require.NotNil(t, browser)
	assert.Equal(t, "", browser.CurrentCategory())
	assert.True(t, browser.AtRoot())
	assert.Empty(t, browser.CurrentItems())
}

func TestBrowserService_SwitchCategory(t *testing.T) {
	browser := newTestBrowser(t)

	assert.Equal(t, "Linux", browser.CurrentCategory())
	assert.Equal(t, []string{"System", "Update"}, itemNames(browser.CurrentItems()))
	assert.True(t, browser.AtRoot())
}

func TestBrowserService_SwitchCategoryUnknown(t *testing.T) {
	browser := newTestBrowser(t)

	err := browser.SwitchCategory(context.Background(), "Windows")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	// The session stays on the previous category.
	assert.Equal(t, "Linux", browser.CurrentCategory())
}

func TestBrowserService_SwitchCategoryResetsSession(t *testing.T) {
	browser := newTestBrowser(t)
	ctx := context.Background()

	require.NoError(t, browser.Enter("system"))
	browser.SetSearch("up")
	require.NoError(t, browser.SwitchCategory(ctx, "Applications"))

	assert.True(t, browser.AtRoot())
	assert.Equal(t, "", browser.Search())
	assert.Equal(t, 0, browser.SelectionCount())
	assert.Equal(t, []string{"Browser"}, itemNames(browser.CurrentItems()))
}

func TestBrowserService_EnterAndGoBackWalkthrough(t *testing.T) {
	browser := newTestBrowser(t)

	// Move the cursor to "Update" before descending elsewhere.
	browser.SetSelectedIndex(1)

	require.NoError(t, browser.Enter("system"))
	assert.False(t, browser.AtRoot())
	assert.Equal(t, []string{"Upgrade", "Cleanup"}, itemNames(browser.CurrentItems()))
	assert.Equal(t, 0, browser.SelectedIndex(), "entering resets the cursor")
	assert.Equal(t, []string{"Linux", "System"}, browser.Breadcrumb())

	browser.GoBack()
	assert.True(t, browser.AtRoot())
	assert.Equal(t, []string{"System", "Update"}, itemNames(browser.CurrentItems()))
	assert.Equal(t, 1, browser.SelectedIndex(), "going back restores the pre-enter cursor")
	assert.Equal(t, []string{"Linux"}, browser.Breadcrumb())
}

func TestBrowserService_EnterLeafIsNoOp(t *testing.T) {
	browser := newTestBrowser(t)

	require.NoError(t, browser.Enter("update"))

	assert.True(t, browser.AtRoot())
	assert.Equal(t, []string{"System", "Update"}, itemNames(browser.CurrentItems()))
}

func TestBrowserService_EnterUnknownNode(t *testing.T) {
	browser := newTestBrowser(t)

	err := browser.Enter("missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, browser.AtRoot())
}

func TestBrowserService_GoBackAtRootIsNoOp(t *testing.T) {
	browser := newTestBrowser(t)

	browser.GoBack()
	browser.GoBack()

	assert.True(t, browser.AtRoot())
	assert.Equal(t, []string{"System", "Update"}, itemNames(browser.CurrentItems()))
}

func TestBrowserService_EnterClearsSearch(t *testing.T) {
	browser := newTestBrowser(t)

	browser.SetSearch("sys")
	require.NoError(t, browser.Enter("system"))

	assert.Equal(t, "", browser.Search())
	assert.Equal(t, []string{"Upgrade", "Cleanup"}, itemNames(browser.CurrentItems()))
}

func TestBrowserService_GoBackClearsSearch(t *testing.T) {
	browser := newTestBrowser(t)

	require.NoError(t, browser.Enter("system"))
	browser.SetSearch("up")
	browser.GoBack()

	assert.Equal(t, "", browser.Search())
	assert.Equal(t, []string{"System", "Update"}, itemNames(browser.CurrentItems()))
}

func TestBrowserService_SearchFiltersItems(t *testing.T) {
	browser := newTestBrowser(t)

	browser.SetSearch("upd")

	assert.Equal(t, []string{"Update"}, itemNames(browser.CurrentItems()))
}

func TestBrowserService_SearchMatchesDescription(t *testing.T) {
	browser := newTestBrowser(t)

	browser.SetSearch("maintenance")

	assert.Equal(t, []string{"System"}, itemNames(browser.CurrentItems()))
}

func TestBrowserService_SearchClampsSelectedIndex(t *testing.T) {
	browser := newTestBrowser(t)

	browser.SetSelectedIndex(1)
	browser.SetSearch("system")

	assert.Equal(t, []string{"System"}, itemNames(browser.CurrentItems()))
	assert.Equal(t, 0, browser.SelectedIndex())
}

func TestBrowserService_ClearingSearchRestoresItems(t *testing.T) {
	browser := newTestBrowser(t)

	browser.SetSearch("upd")
	browser.SetSearch("")

	assert.Equal(t, []string{"System", "Update"}, itemNames(browser.CurrentItems()))
}

func TestBrowserService_ToggleSelection(t *testing.T) {
	browser := newTestBrowser(t)

	require.NoError(t, browser.ToggleSelection("update"))
	assert.Equal(t, []string{"update"}, browser.Selection())
	assert.Equal(t, 1, browser.SelectionCount())

	require.NoError(t, browser.ToggleSelection("update"))
	assert.Empty(t, browser.Selection())
}

func TestBrowserService_ToggleSelectionSingleSelectNode(t *testing.T) {
	browser := newTestBrowser(t)

	require.NoError(t, browser.ToggleSelection("upgrade"))

	assert.Empty(t, browser.Selection(), "nodes without multi_select are never admitted")
}

func TestBrowserService_ToggleSelectionUnknownNode(t *testing.T) {
	browser := newTestBrowser(t)

	err := browser.ToggleSelection("missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBrowserService_SelectionSurvivesNavigation(t *testing.T) {
	browser := newTestBrowser(t)

	require.NoError(t, browser.ToggleSelection("update"))
	require.NoError(t, browser.Enter("system"))
	browser.GoBack()

	assert.Equal(t, []string{"update"}, browser.Selection())
}

func TestBrowserService_SelectionMarkedOnItems(t *testing.T) {
	browser := newTestBrowser(t)

	require.NoError(t, browser.ToggleSelection("update"))

	items := browser.CurrentItems()
	require.Len(t, items, 2)
	assert.False(t, items[0].IsSelected)
	assert.True(t, items[1].IsSelected)
	assert.True(t, items[1].IsMultiSelect)
}

func TestBrowserService_ClearSelection(t *testing.T) {
	browser := newTestBrowser(t)

	require.NoError(t, browser.ToggleSelection("update"))
	browser.ClearSelection()

	assert.Equal(t, 0, browser.SelectionCount())
}

func TestBrowserService_Reload(t *testing.T) {
	provider := catalogmem.NewProvider(testSnapshot())
	catalog := NewCatalogService(provider, false)
	browser := NewBrowserService(catalog)
	ctx := context.Background()

	require.NoError(t, browser.SwitchCategory(ctx, "Linux"))
	require.NoError(t, browser.Enter("system"))
	require.NoError(t, catalog.Refresh(ctx))

	require.NoError(t, browser.Reload(ctx))

	assert.Equal(t, "Linux", browser.CurrentCategory())
	assert.True(t, browser.AtRoot())
	assert.Equal(t, 0, browser.SelectionCount())
}

func TestBrowserService_ReloadCategoryGone(t *testing.T) {
	provider := catalogmem.NewProvider(testSnapshot())
	catalog := NewCatalogService(provider, false)
	browser := NewBrowserService(catalog)
	ctx := context.Background()

	require.NoError(t, browser.SwitchCategory(ctx, "Applications"))

	provider.SetSnapshot(&domain.Snapshot{
		Categories: []domain.Category{testSnapshot().Categories[0]},
	})
	require.NoError(t, catalog.Refresh(ctx))

	require.NoError(t, browser.Reload(ctx))

	assert.Equal(t, "Linux", browser.CurrentCategory(), "falls back to the first category")
}

func TestBrowserService_SetSelectedIndexNegative(t *testing.T) {
	browser := newTestBrowser(t)

	browser.SetSelectedIndex(-3)

	assert.Equal(t, 0, browser.SelectedIndex())
}
