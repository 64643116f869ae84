package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
	"github.com/custodia-labs/runbook-cli/internal/core/ports/driving"
)

// Ensure BrowserService implements the interface.
var _ driving.BrowserService = (*BrowserService)(nil)

// BrowserService owns one interactive browsing session: the navigation
// stack over the current category, the search query and the selection
// set. Navigation and selection are reset whenever the category
// switches or the snapshot reloads.
type BrowserService struct {
	catalog driving.CatalogService

	mu        sync.Mutex
	category  domain.Category
	stack     *domain.NavigationStack
	search    string
	selection *domain.SelectionSet
}

// NewBrowserService creates a browsing session over the catalog.
// The session has no category until SwitchCategory is called.
func NewBrowserService(catalog driving.CatalogService) *BrowserService {
	return &BrowserService{
		catalog:   catalog,
		selection: domain.NewSelectionSet(),
	}
}

// Categories returns the category names in catalog order.
func (s *BrowserService) Categories(ctx context.Context) ([]string, error) {
	return s.catalog.Categories(ctx)
}

// SwitchCategory resets the session to the named category's root,
// clearing search text and selection.
func (s *BrowserService) SwitchCategory(ctx context.Context, name string) error {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return err
	}

	category, ok := snap.Category(name)
	if !ok {
		return fmt.Errorf("category %q: %w", name, domain.ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.category = category
	s.stack = domain.NewNavigationStack(category)
	s.search = ""
	s.selection = domain.NewSelectionSet()
	return nil
}

// CurrentCategory returns the active category name.
func (s *BrowserService) CurrentCategory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category.Name
}

// CurrentItems returns the visible items of the current frame after
// search filtering, with selection membership marked.
func (s *BrowserService) CurrentItems() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.MakeItems(s.visibleLocked(), s.selection)
}

// Enter descends into a grouping node from the current view.
// Leaves are a no-op. Unknown ids return ErrNotFound.
func (s *BrowserService) Enter(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stack == nil {
		return fmt.Errorf("no category selected: %w", domain.ErrNotFound)
	}

	if _, ok := s.category.Node(id); !ok {
		return fmt.Errorf("node %q: %w", id, domain.ErrNotFound)
	}

	if s.stack.Enter(id) {
		s.search = ""
	}
	return nil
}

// GoBack pops one navigation level, restoring the selection index
// recorded when the level was entered. At the root it is a no-op.
func (s *BrowserService) GoBack() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stack == nil {
		return
	}

	if s.stack.GoBack() {
		s.search = ""
		s.clampLocked()
	}
}

// AtRoot reports whether the session is at the category root.
func (s *BrowserService) AtRoot() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stack == nil || s.stack.AtRoot()
}

// Breadcrumb returns the category name followed by the entered node
// names, in navigation order.
func (s *BrowserService) Breadcrumb() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stack == nil {
		return nil
	}
	return s.stack.Breadcrumb()
}

// SetSearch replaces the search query and recomputes the visible items,
// clamping the selection index if it fell out of bounds.
func (s *BrowserService) SetSearch(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = text
	s.clampLocked()
}

// Search returns the active search query.
func (s *BrowserService) Search() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search
}

// SelectedIndex returns the selection index within CurrentItems.
func (s *BrowserService) SelectedIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stack == nil {
		return 0
	}
	return s.stack.SelectedIndex()
}

// SetSelectedIndex moves the selection within CurrentItems.
func (s *BrowserService) SetSelectedIndex(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stack == nil {
		return
	}
	s.stack.SetSelectedIndex(i)
}

// ToggleSelection flips selection membership for a node. Nodes without
// multi_select are never admitted; unknown ids return ErrNotFound.
func (s *BrowserService) ToggleSelection(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.category.Node(id)
	if !ok {
		return fmt.Errorf("node %q: %w", id, domain.ErrNotFound)
	}

	s.selection.Toggle(node)
	return nil
}

// Selection returns the selected node ids in insertion order.
func (s *BrowserService) Selection() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Members()
}

// SelectionCount returns the number of selected nodes.
func (s *BrowserService) SelectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Len()
}

// ClearSelection empties the selection set.
func (s *BrowserService) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Clear()
}

// Reload re-resolves the session against a fresh snapshot, returning to
// the current category's root with empty search and selection. If the
// category disappeared from the snapshot, the first category is used.
func (s *BrowserService) Reload(ctx context.Context) error {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	name := s.category.Name
	s.mu.Unlock()

	category, ok := snap.Category(name)
	if !ok {
		if len(snap.Categories) == 0 {
			return fmt.Errorf("catalog has no categories: %w", domain.ErrCatalogUnavailable)
		}
		category = snap.Categories[0]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.category = category
	s.stack = domain.NewNavigationStack(category)
	s.search = ""
	s.selection = domain.NewSelectionSet()
	return nil
}

// visibleLocked recomputes the filtered children of the current frame.
// Callers must hold mu.
func (s *BrowserService) visibleLocked() []domain.Node {
	if s.stack == nil {
		return nil
	}
	return domain.FilterNodes(s.stack.CurrentChildren(), s.search)
}

// clampLocked snaps the selection index back to 0 if it fell outside
// the freshly filtered sequence. Callers must hold mu.
func (s *BrowserService) clampLocked() {
	if s.stack == nil {
		return
	}
	visible := s.visibleLocked()
	s.stack.SetSelectedIndex(domain.ClampIndex(s.stack.SelectedIndex(), len(visible)))
}
