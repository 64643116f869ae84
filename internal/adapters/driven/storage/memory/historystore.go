package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
	"github.com/custodia-labs/runbook-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of the history store port.
type HistoryStore struct {
	mu      sync.RWMutex
	results []domain.ExecutionResult
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Record appends a result to the history.
func (s *HistoryStore) Record(_ context.Context, result domain.ExecutionResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
	return nil
}

// List returns recorded results newest first. A limit of zero or less
// returns everything.
func (s *HistoryStore) List(_ context.Context, limit int) ([]domain.ExecutionResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ExecutionResult, 0, len(s.results))
	for i := len(s.results) - 1; i >= 0; i-- {
		out = append(out, s.results[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Prune discards all but the newest keep results.
func (s *HistoryStore) Prune(_ context.Context, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep <= 0 {
		s.results = nil
		return nil
	}
	if len(s.results) > keep {
		s.results = s.results[len(s.results)-keep:]
	}
	return nil
}
