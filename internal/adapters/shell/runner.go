// Package shell runs external commands for the resolver backends and the toolchain.
package shell

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CommandRunner = (*Runner)(nil)

// Runner implements ports.CommandRunner with os/exec.
type Runner struct{}

// NewRunner creates a new Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes cmd to completion and returns its combined output.
// Cancellation of ctx kills the process.
func (r *Runner) Run(ctx context.Context, cmd domain.Command) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...) //nolint:gosec // commands are built by kiln
	c.Dir = cmd.Dir
	c.Env = mergeEnvironment(os.Environ(), cmd.Env)

	out, err := c.CombinedOutput()
	if err != nil {
		return out, commandError(cmd, err)
	}
	return out, nil
}

func commandError(cmd domain.Command, err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		failed := zerr.With(zerr.Wrap(err, domain.ErrCommandFailed.Error()), domain.ExitCodeKey, exitErr.ExitCode())
		return zerr.With(failed, "command", cmd.Name)
	}
	startErr := zerr.With(zerr.Wrap(err, domain.ErrCommandStartFailed.Error()), domain.ExitCodeKey, -1)
	return zerr.With(startErr, "command", cmd.Name)
}
