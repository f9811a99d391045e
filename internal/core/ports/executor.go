// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/kiln/internal/core/domain"
)

// CommandRunner runs external commands to completion.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type CommandRunner interface {
	// Run executes cmd and returns its combined stdout and stderr.
	// A non-zero exit is returned as an error carrying the exit code; the output is
	// returned in both cases.
	Run(ctx context.Context, cmd domain.Command) ([]byte, error)
}

// Executor runs interactive commands attached to a pseudo-terminal.
type Executor interface {
	// Execute runs cmd and streams its output to stdout and stderr.
	Execute(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) error
}
