package resolver

import (
	"context"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// ScalaCLIName is the executable and backend name of the toolchain-delegated resolver.
const ScalaCLIName = "scala-cli"

var _ ports.DependencyResolver = (*ScalaCLI)(nil)

// ScalaCLI leaves transitive resolution to the compiler toolchain.
type ScalaCLI struct {
	path   string
	runner ports.CommandRunner
}

// NewScalaCLI creates a ScalaCLI backend that runs the executable at path.
func NewScalaCLI(path string, runner ports.CommandRunner) *ScalaCLI {
	return &ScalaCLI{path: path, runner: runner}
}

// Name returns the backend name.
func (s *ScalaCLI) Name() string {
	return ScalaCLIName
}

// Validate compiles an empty program against dep.
func (s *ScalaCLI) Validate(ctx context.Context, dep domain.Dependency) error {
	if dep.IsLocal() {
		return validateLocal(dep)
	}

	out, err := s.runner.Run(ctx, domain.Command{
		Name: s.path,
		Args: []string{"--dependency", dep.ToolCoordinate(), "-e", "println()"},
	})
	if err != nil {
		unavailable := zerr.With(zerr.Wrap(err, domain.ErrDependencyUnavailable.Error()), "coordinate", dep.Coordinate())
		return domain.Classify(domain.ErrResolution, withOutput(unavailable, out))
	}
	return nil
}

// ResolveTransitive returns deps unchanged; the toolchain resolves them during compilation.
func (s *ScalaCLI) ResolveTransitive(_ context.Context, deps []domain.Dependency) ([]domain.Dependency, error) {
	closure := domain.NewClosure()
	closure.Add(deps...)
	return closure.Dependencies(), nil
}

// Prepare checks that local references exist. Published dependencies are fetched by the toolchain.
func (s *ScalaCLI) Prepare(_ context.Context, deps []domain.Dependency, _ string) error {
	for _, dep := range deps {
		if !dep.IsLocal() {
			continue
		}
		if err := validateLocal(dep); err != nil {
			return err
		}
	}
	return nil
}
