package driving

import (
	"context"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
)

// HistoryService exposes recorded execution results.
type HistoryService interface {
	// Recent returns the most recent results, newest first.
	Recent(ctx context.Context, limit int) ([]domain.ExecutionResult, error)

	// Record stores a result and prunes history to the configured cap.
	Record(ctx context.Context, result domain.ExecutionResult) error
}
