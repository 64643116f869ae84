package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested category or node does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotExecutable indicates the target is a grouping node with no command.
	// Raised synchronously to the caller; such a request never reaches the worker.
	ErrNotExecutable = errors.New("not executable")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCatalogUnavailable indicates the catalog provider could not supply a snapshot.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// Execution Errors.
	//
	// These two are never returned to callers directly; they are captured
	// into an ExecutionResult and delivered through the result channel.

	// ErrSpawnFailure indicates the process could not be started.
	ErrSpawnFailure = errors.New("spawn failure")

	// ErrNonZeroExit indicates the process ran but reported failure.
	ErrNonZeroExit = errors.New("non-zero exit")

	// Lifecycle Errors.

	// ErrAlreadyRunning indicates a worker component was started twice.
	ErrAlreadyRunning = errors.New("already running")

	// ErrNotRunning indicates a request was submitted before the worker started.
	ErrNotRunning = errors.New("not running")
)
