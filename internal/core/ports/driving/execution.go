package driving

import (
	"context"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
)

// ExecutionService serializes command execution onto one background
// worker. Submission and result delivery are both non-blocking from the
// caller's perspective.
type ExecutionService interface {
	// Start launches the worker. Returns ErrAlreadyRunning if the
	// worker is already up.
	Start() error

	// Stop shuts the worker down after the in-flight command (if any)
	// completes. Safe to call when not running.
	Stop()

	// Execute validates and enqueues one node for execution, returning
	// immediately. Unknown nodes fail with ErrNotFound, grouping nodes
	// with ErrNotExecutable; neither reaches the worker.
	Execute(ctx context.Context, category, nodeID string) error

	// ExecuteSelected submits one request per selected node in
	// submission-stable order, then clears the selection. Returns the
	// number of requests submitted.
	ExecuteSelected(ctx context.Context) (int, error)

	// PollResult returns the next completed result, or nil if none is
	// ready. It never blocks; absence of a result is not an error.
	PollResult() *domain.ExecutionResult

	// Executing reports whether at least one request is outstanding.
	Executing() bool

	// Pending returns the number of outstanding requests.
	Pending() int
}
