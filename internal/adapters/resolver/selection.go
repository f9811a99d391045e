package resolver

import (
	"context"
	"sync"

	"go.trai.ch/kiln/internal/adapters/shell"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

var _ ports.ResolverSelector = (*Selector)(nil)

// Selector detects the resolver executables on first use and remembers the outcome.
type Selector struct {
	runner ports.CommandRunner
	logger ports.Logger
	binDir string

	once      sync.Once
	selection ports.ResolverSelection
}

// NewSelector creates a Selector. Executables in binDir win over those on PATH.
func NewSelector(runner ports.CommandRunner, logger ports.Logger, binDir string) *Selector {
	return &Selector{runner: runner, logger: logger, binDir: binDir}
}

// Select returns the backends to use for this process.
func (s *Selector) Select(ctx context.Context) ports.ResolverSelection {
	s.once.Do(func() {
		s.selection = Select(ctx, s.runner, s.logger, s.binDir)
	})
	return s.selection
}

// Select detects the resolver executables and returns the backends to use. A missing
// remote-index backend leaves Primary nil and logs a warning.
func Select(ctx context.Context, runner ports.CommandRunner, logger ports.Logger, binDir string) ports.ResolverSelection {
	selection := ports.ResolverSelection{Local: NewLocal()}

	if path, ok := detect(ctx, runner, CoursierName, binDir); ok {
		selection.Primary = NewCoursier(path, runner, logger)
	} else {
		logger.Warn(CoursierName + " not found, falling back to " + ScalaCLIName)
	}

	scalaCLI, ok := shell.Locate(ScalaCLIName, binDir)
	if !ok {
		scalaCLI = ScalaCLIName
	}
	selection.Fallback = NewScalaCLI(scalaCLI, runner)

	return selection
}

// detect reports whether name is installed and answers --version with exit status 0.
func detect(ctx context.Context, runner ports.CommandRunner, name, binDir string) (string, bool) {
	path, ok := shell.Locate(name, binDir)
	if !ok {
		return "", false
	}
	if _, err := runner.Run(ctx, domain.Command{Name: path, Args: []string{"--version"}}); err != nil {
		return "", false
	}
	return path, true
}
