package domain

import "time"

// ExecutionRequest is one unit of work submitted to the execution
// worker. Requests are consumed strictly in submission order.
type ExecutionRequest struct {
	// ID is the unique identifier for this request.
	ID string

	// Category is the name of the category the node belongs to.
	Category string

	// NodeID identifies the node being executed.
	NodeID string

	// Name is the node's display name, carried for result reporting.
	Name string

	// Command is the command specification to execute.
	// Grouping nodes are rejected before a request is ever built.
	Command CommandSpec

	// SubmittedAt is when the request was enqueued.
	SubmittedAt time.Time
}

// ExecutionResult is the outcome of one executed request, delivered
// through the result channel and recorded to history.
type ExecutionResult struct {
	// RequestID links back to the originating request.
	RequestID string

	// NodeID identifies the node that was executed.
	NodeID string

	// Name is the node's display name.
	Name string

	// Success indicates the process exit status reported success.
	Success bool

	// Output is the displayed output: standard output if non-empty,
	// else standard error if non-empty, else a fixed placeholder.
	Output string

	// Error holds the standard error text on failure, or the spawn
	// error's description when the process could not be started.
	// Empty on success.
	Error string

	// ExitCode is the process exit code. Nil when the process never
	// ran or was terminated by a signal.
	ExitCode *int

	// StartedAt is when the worker began executing the request.
	StartedAt time.Time

	// FinishedAt is when execution completed.
	FinishedAt time.Time
}

// Duration returns how long the execution took.
func (r ExecutionResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// SuccessPlaceholder is the displayed output for a successful command
// that produced nothing on either stream.
const SuccessPlaceholder = "Command executed successfully"
