package driving

import (
	"context"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
)

// BrowserService drives one interactive catalog browsing session:
// a navigation stack over the current category, a search filter over
// the current frame's children, and a selection set for batched
// execution. Each interactive session owns exactly one.
type BrowserService interface {
	// Categories returns the category names in catalog order.
	Categories(ctx context.Context) ([]string, error)

	// SwitchCategory resets the session to the named category's root,
	// clearing search text and selection.
	SwitchCategory(ctx context.Context, name string) error

	// CurrentCategory returns the active category name.
	CurrentCategory() string

	// CurrentItems returns the visible items of the current frame
	// after search filtering, in catalog order, with selection
	// membership marked.
	CurrentItems() []domain.Item

	// Enter descends into a grouping node from the current view.
	// Leaves are a no-op. Unknown ids return ErrNotFound.
	Enter(id string) error

	// GoBack pops one navigation level, restoring the selection index
	// recorded when the level was entered. At the root it is a no-op.
	GoBack()

	// AtRoot reports whether the session is at the category root.
	AtRoot() bool

	// Breadcrumb returns the category name followed by the entered
	// node names, in navigation order.
	Breadcrumb() []string

	// SetSearch replaces the search query and recomputes the visible
	// items, clamping the selection index if it fell out of bounds.
	SetSearch(text string)

	// Search returns the active search query.
	Search() string

	// SelectedIndex returns the selection index within CurrentItems.
	SelectedIndex() int

	// SetSelectedIndex moves the selection within CurrentItems.
	SetSelectedIndex(i int)

	// ToggleSelection flips selection membership for a visible node.
	// Nodes without multi_select are never admitted.
	ToggleSelection(id string) error

	// Selection returns the selected node ids in insertion order.
	Selection() []string

	// SelectionCount returns the number of selected nodes.
	SelectionCount() int

	// ClearSelection empties the selection set.
	ClearSelection()

	// Reload re-resolves the session against a fresh snapshot,
	// returning to the current category's root with empty search and
	// selection.
	Reload(ctx context.Context) error
}
