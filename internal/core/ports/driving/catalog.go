package driving

import (
	"context"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
)

// CatalogService provides read access to the memoized catalog.
type CatalogService interface {
	// Categories returns the category names in catalog order.
	// The first call loads a snapshot from the provider; later calls
	// are served from the cache until Invalidate or Refresh.
	Categories(ctx context.Context) ([]string, error)

	// Snapshot returns the current catalog snapshot, loading one if
	// the cache is empty.
	Snapshot(ctx context.Context) (*domain.Snapshot, error)

	// Node resolves a node by category name and node id.
	Node(ctx context.Context, category, id string) (domain.Node, error)

	// Preview renders the node's command text or, for a script node,
	// its source content, alongside the description. Read-only, no
	// side effects.
	Preview(ctx context.Context, category, id string) (string, error)

	// Refresh invalidates the cache and loads a fresh snapshot.
	Refresh(ctx context.Context) error

	// Invalidate clears the cache unconditionally. The next read
	// performs exactly one fresh provider call.
	Invalidate()
}
