package ports

import (
	"context"

	"go.trai.ch/kiln/internal/core/domain"
)

// DependencyResolver is a dependency resolution backend.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type DependencyResolver interface {
	// Name returns the backend name used in logs and errors.
	Name() string

	// Validate checks that a single dependency can be resolved by this backend.
	Validate(ctx context.Context, dep domain.Dependency) error

	// ResolveTransitive expands deps into their transitive closure.
	ResolveTransitive(ctx context.Context, deps []domain.Dependency) ([]domain.Dependency, error)

	// Prepare makes deps available ahead of a build rooted at targetDir.
	Prepare(ctx context.Context, deps []domain.Dependency, targetDir string) error
}

// ResolverSelection is the set of backends chosen once per process.
// Primary is nil when the remote-index backend is not available.
type ResolverSelection struct {
	Primary  DependencyResolver
	Fallback DependencyResolver
	Local    DependencyResolver
}

// Chain returns the backends to try for a published dependency, in order.
func (s ResolverSelection) Chain() []DependencyResolver {
	chain := make([]DependencyResolver, 0, 2)
	if s.Primary != nil {
		chain = append(chain, s.Primary)
	}
	if s.Fallback != nil {
		chain = append(chain, s.Fallback)
	}
	return chain
}

// Select returns s itself, so a fixed selection can stand in for a ResolverSelector.
func (s ResolverSelection) Select(context.Context) ResolverSelection {
	return s
}

// ResolverSelector chooses the resolver backends. Implementations detect backends at most once per process.
type ResolverSelector interface {
	Select(ctx context.Context) ResolverSelection
}

// VersionLookup pins version constraints against the package index.
type VersionLookup interface {
	// ResolveVersion returns the published version of group:artifact that satisfies constraint:
	// latest (or empty), stable, a range such as [1.0,2.0), or a comma-separated list of options.
	ResolveVersion(ctx context.Context, group, artifact, constraint string) (string, error)
}
