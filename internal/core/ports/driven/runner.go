package driven

import (
	"context"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
)

// RunOutput is the raw outcome of one spawned process.
type RunOutput struct {
	// Stdout is the captured standard output.
	Stdout string

	// Stderr is the captured standard error, kept separate from Stdout.
	Stderr string

	// ExitCode is the process exit code. Nil when the process was
	// terminated by a signal.
	ExitCode *int

	// Success indicates the exit status reported success.
	Success bool
}

// CommandRunner spawns processes for command specifications.
// Implementations force a non-interactive, locale-independent
// environment and capture both output streams.
type CommandRunner interface {
	// Run executes the command specification and blocks until the
	// process exits. The returned error covers spawn failures only
	// (executable missing, permission denied); a process that ran and
	// failed is reported through RunOutput, not the error.
	Run(ctx context.Context, spec domain.CommandSpec) (RunOutput, error)
}
