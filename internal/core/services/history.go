package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
	"github.com/custodia-labs/runbook-cli/internal/core/ports/driven"
	"github.com/custodia-labs/runbook-cli/internal/core/ports/driving"
	"github.com/custodia-labs/runbook-cli/internal/logger"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService records execution results and serves them back,
// pruning storage to a configured cap after every write.
type HistoryService struct {
	store driven.HistoryStore
	limit int
}

// NewHistoryService creates a history service. limit caps how many
// results are retained; limit <= 0 disables pruning.
func NewHistoryService(store driven.HistoryStore, limit int) *HistoryService {
	return &HistoryService{store: store, limit: limit}
}

// Recent returns the most recent results, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.ExecutionResult, error) {
	results, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing execution history: %w", err)
	}
	return results, nil
}

// Record stores a result and prunes history to the configured cap.
func (s *HistoryService) Record(ctx context.Context, result domain.ExecutionResult) error {
	if result.RequestID == "" {
		return fmt.Errorf("result has no request id: %w", domain.ErrInvalidInput)
	}

	if err := s.store.Record(ctx, result); err != nil {
		return fmt.Errorf("recording execution result: %w", err)
	}

	if s.limit > 0 {
		if err := s.store.Prune(ctx, s.limit); err != nil {
			// Pruning is housekeeping; a failure must not lose the result.
			logger.Warn("Failed to prune execution history: %v", err)
		}
	}
	return nil
}
