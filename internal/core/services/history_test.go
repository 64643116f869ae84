package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storagemem "github.com/custodia-labs/runbook-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/runbook-cli/internal/core/domain"
)

// sampleResult builds a successful result with the given request id.
func sampleResult(id string) domain.ExecutionResult {
	now := time.Now()
	return domain.ExecutionResult{
		RequestID:  id,
		NodeID:     "update",
		Name:       "Update",
		Success:    true,
		Output:     "ok",
		StartedAt:  now,
		FinishedAt: now.Add(50 * time.Millisecond),
	}
}

func TestNewHistoryService(t *testing.T) {
	service := NewHistoryService(storagemem.NewHistoryStore(), 10)

	require.NotNil(t, service)
}

func TestHistoryService_RecordAndRecent(t *testing.T) {
	service := NewHistoryService(storagemem.NewHistoryStore(), 10)
	ctx := context.Background()

	require.NoError(t, service.Record(ctx, sampleResult("req-1")))
	require.NoError(t, service.Record(ctx, sampleResult("req-2")))

	recent, err := service.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "req-2", recent[0].RequestID, "newest first")
	assert.Equal(t, "req-1", recent[1].RequestID)
}

func TestHistoryService_RecentHonorsLimit(t *testing.T) {
	service := NewHistoryService(storagemem.NewHistoryStore(), 0)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, service.Record(ctx, sampleResult(fmt.Sprintf("req-%d", i))))
	}

	recent, err := service.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "req-4", recent[0].RequestID)
	assert.Equal(t, "req-3", recent[1].RequestID)
}

func TestHistoryService_RecordMissingRequestID(t *testing.T) {
	service := NewHistoryService(storagemem.NewHistoryStore(), 10)

	err := service.Record(context.Background(), sampleResult(""))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryService_PrunesToLimit(t *testing.T) {
	service := NewHistoryService(storagemem.NewHistoryStore(), 3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, service.Record(ctx, sampleResult(fmt.Sprintf("req-%d", i))))
	}

	recent, err := service.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "req-4", recent[0].RequestID)
	assert.Equal(t, "req-2", recent[2].RequestID)
}

func TestHistoryService_ZeroLimitDisablesPruning(t *testing.T) {
	service := NewHistoryService(storagemem.NewHistoryStore(), 0)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, service.Record(ctx, sampleResult(fmt.Sprintf("req-%d", i))))
	}

	recent, err := service.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recent, 5)
}
