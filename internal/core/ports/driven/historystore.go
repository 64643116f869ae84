package driven

import (
	"context"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
)

// HistoryStore persists execution results.
// Backed by SQLite for durable storage.
type HistoryStore interface {
	// Record stores one execution result.
	Record(ctx context.Context, result domain.ExecutionResult) error

	// List returns the most recent results, newest first.
	// limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]domain.ExecutionResult, error)

	// Prune deletes all but the newest keep results.
	Prune(ctx context.Context, keep int) error
}
