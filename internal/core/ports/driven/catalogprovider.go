package driven

import (
	"context"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
)

// CatalogProvider produces catalog snapshots.
// Construction of the catalog is owned entirely by the provider; the
// core consumes snapshots read-only and never patches them.
type CatalogProvider interface {
	// Load builds a fresh snapshot. validate=true applies the
	// provider's own compatibility filter; validate=false returns
	// every node. The core passes the flag through without
	// interpreting it.
	Load(ctx context.Context, validate bool) (*domain.Snapshot, error)
}
