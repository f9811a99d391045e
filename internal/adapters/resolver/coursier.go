// Package resolver implements the dependency resolution backends and their selection.
package resolver

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// CoursierName is the executable and backend name of the remote-index resolver.
const CoursierName = "coursier"

var _ ports.DependencyResolver = (*Coursier)(nil)

// Coursier resolves transitive closures by querying the remote package index through coursier.
type Coursier struct {
	path   string
	runner ports.CommandRunner
	logger ports.Logger
}

// NewCoursier creates a Coursier backend that runs the executable at path.
func NewCoursier(path string, runner ports.CommandRunner, logger ports.Logger) *Coursier {
	return &Coursier{path: path, runner: runner, logger: logger}
}

// Name returns the backend name.
func (c *Coursier) Name() string {
	return CoursierName
}

// Validate checks that coursier can resolve dep.
func (c *Coursier) Validate(ctx context.Context, dep domain.Dependency) error {
	if dep.IsLocal() {
		return validateLocal(dep)
	}

	out, err := c.run(ctx, "resolve", dep)
	if err != nil {
		unavailable := zerr.With(zerr.Wrap(err, domain.ErrDependencyUnavailable.Error()), "coordinate", dep.Coordinate())
		return domain.Classify(domain.ErrResolution, withOutput(unavailable, out))
	}
	return nil
}

// ResolveTransitive runs coursier resolve for every direct dependency and merges the results
// in first-seen order. A dependency coursier fails to resolve is kept on its own with a warning.
func (c *Coursier) ResolveTransitive(ctx context.Context, deps []domain.Dependency) ([]domain.Dependency, error) {
	closure := domain.NewClosure()
	for _, dep := range deps {
		if dep.IsLocal() {
			closure.Add(dep)
			continue
		}

		out, err := c.run(ctx, "resolve", dep)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if domain.ExitCode(err) == -1 {
				unavailable := zerr.With(zerr.Wrap(err, domain.ErrBackendUnavailable.Error()), "backend", CoursierName)
				return nil, domain.Classify(domain.ErrResolution, unavailable)
			}
			c.logger.Warn(fmt.Sprintf("failed to resolve transitive dependencies of %s, keeping it as a direct dependency", dep.Coordinate()))
			closure.Add(dep)
			continue
		}

		resolved := parseResolveOutput(out)
		if len(resolved) == 0 {
			closure.Add(dep)
			continue
		}
		closure.Add(resolved...)
	}
	return closure.Dependencies(), nil
}

// Prepare downloads every published dependency into the local coursier cache.
func (c *Coursier) Prepare(ctx context.Context, deps []domain.Dependency, _ string) error {
	for _, dep := range deps {
		if dep.IsLocal() {
			if err := validateLocal(dep); err != nil {
				return err
			}
			continue
		}

		out, err := c.run(ctx, "fetch", dep)
		if err != nil {
			failed := zerr.With(zerr.Wrap(err, domain.ErrPrepareFailed.Error()), "coordinate", dep.Coordinate())
			return domain.Classify(domain.ErrResolution, withOutput(failed, out))
		}
	}
	return nil
}

func (c *Coursier) run(ctx context.Context, subcommand string, dep domain.Dependency) ([]byte, error) {
	return c.runner.Run(ctx, domain.Command{
		Name: c.path,
		Args: []string{subcommand, "--quiet", dep.ToolCoordinate()},
	})
}

// parseResolveOutput reads one group:artifact:version per line. Trailing fields such as the
// scope are ignored, as are blank lines, comments and anything that is not a coordinate.
func parseResolveOutput(out []byte) []domain.Dependency {
	var deps []domain.Dependency
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ":")
		if len(parts) < 3 {
			continue
		}
		dep, err := domain.ParseCoordinate(strings.Join(parts[:3], ":"))
		if err != nil || dep.Version == "" {
			continue
		}
		deps = append(deps, dep)
	}
	return deps
}

func withOutput(err error, out []byte) error {
	if trimmed := strings.TrimSpace(string(out)); trimmed != "" {
		return zerr.With(err, "output", trimmed)
	}
	return err
}
