package resolver

import (
	"context"
	"os"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// LocalName is the backend name of the local-project resolver.
const LocalName = "local"

var _ ports.DependencyResolver = (*Local)(nil)

// Local handles references to other projects on disk. It never computes a closure
// across projects and never consults the package index.
type Local struct{}

// NewLocal creates a new Local backend.
func NewLocal() *Local {
	return &Local{}
}

// Name returns the backend name.
func (l *Local) Name() string {
	return LocalName
}

// Validate checks that the referenced project directory exists.
func (l *Local) Validate(_ context.Context, dep domain.Dependency) error {
	return validateLocal(dep)
}

// ResolveTransitive validates every reference and passes it through unchanged.
func (l *Local) ResolveTransitive(_ context.Context, deps []domain.Dependency) ([]domain.Dependency, error) {
	closure := domain.NewClosure()
	for _, dep := range deps {
		if err := validateLocal(dep); err != nil {
			return nil, err
		}
		closure.Add(dep)
	}
	return closure.Dependencies(), nil
}

// Prepare validates every reference.
func (l *Local) Prepare(_ context.Context, deps []domain.Dependency, _ string) error {
	for _, dep := range deps {
		if err := validateLocal(dep); err != nil {
			return err
		}
	}
	return nil
}

func validateLocal(dep domain.Dependency) error {
	if !dep.IsLocal() {
		return domain.Classify(domain.ErrResolution, zerr.With(domain.ErrDependencyUnavailable, "coordinate", dep.Coordinate()))
	}

	info, err := os.Stat(dep.LocalDir())
	if err != nil || !info.IsDir() {
		notFound := zerr.With(domain.ErrLocalPathNotFound, "path", dep.Path)
		return domain.Classify(domain.ErrResolution, zerr.With(notFound, "resolved", dep.LocalDir()))
	}
	return nil
}
