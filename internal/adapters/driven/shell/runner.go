// Package shell provides the process-spawning implementation of the
// command runner port. Raw commands run through the system shell;
// script commands spawn their executable directly with the script's
// directory as working directory.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
	"github.com/custodia-labs/runbook-cli/internal/core/ports/driven"
	"github.com/custodia-labs/runbook-cli/internal/logger"
)

// Ensure Runner implements the interface.
var _ driven.CommandRunner = (*Runner)(nil)

// defaultShell interprets raw command text. The text is passed as a
// single argument, never re-tokenized.
const defaultShell = "sh"

// Runner spawns commands with captured output streams and a
// non-interactive, locale-independent environment.
type Runner struct {
	shell string
}

// NewRunner creates a runner using the default shell.
func NewRunner() *Runner {
	return &Runner{shell: defaultShell}
}

// Run executes the command specification and blocks until the process
// exits. The returned error covers spawn failures only; a process that
// ran and exited non-zero is reported through RunOutput.
func (r *Runner) Run(ctx context.Context, spec domain.CommandSpec) (driven.RunOutput, error) {
	cmd, err := r.build(ctx, spec)
	if err != nil {
		return driven.RunOutput{}, err
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Env = nonInteractiveEnv()

	runErr := cmd.Run()
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			// The process never ran.
			return driven.RunOutput{}, fmt.Errorf("spawning %q: %w", spec.Kind, runErr)
		}
		logger.Debug("Command exited non-zero: %v", runErr)
	}

	return driven.RunOutput{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode(runErr),
		Success:  runErr == nil,
	}, nil
}

// build assembles the exec.Cmd for a command specification.
func (r *Runner) build(ctx context.Context, spec domain.CommandSpec) (*exec.Cmd, error) {
	switch spec.Kind {
	case domain.CommandRaw:
		return exec.CommandContext(ctx, r.shell, "-c", spec.Raw), nil

	case domain.CommandLocalFile:
		cmd := exec.CommandContext(ctx, spec.Executable, spec.Args...)
		// Scripts resolve their relative includes against their own
		// directory, not the caller's.
		cmd.Dir = filepath.Dir(spec.SourcePath)
		return cmd, nil

	default:
		return nil, fmt.Errorf("command kind %q: %w", spec.Kind, domain.ErrNotExecutable)
	}
}

// nonInteractiveEnv returns the inherited environment with overrides
// that suppress interactive prompts and locale-dependent output.
// Later entries win, so the overrides apply even when the parent
// environment sets them differently. PATH is inherited untouched.
func nonInteractiveEnv() []string {
	return append(os.Environ(),
		"DEBIAN_FRONTEND=noninteractive",
		"NEEDRESTART_MODE=a",
		"LC_ALL=C",
	)
}

// exitCode extracts the process exit code from cmd.Run's error.
// A clean exit is 0; a signal-killed process has no exit code.
func exitCode(err error) *int {
	if err == nil {
		code := 0
		return &code
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return &code
		}
	}
	return nil
}
