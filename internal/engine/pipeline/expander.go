package pipeline

import (
	"context"
	"fmt"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// Expander turns direct dependencies into their transitive closure.
type Expander struct {
	logger ports.Logger
}

// NewExpander creates a new Expander.
func NewExpander(logger ports.Logger) *Expander {
	return &Expander{logger: logger}
}

// Expand resolves every direct dependency in order. Local references go to the local
// backend; published coordinates try each backend of the chain until one succeeds.
// The returned closure keeps first-seen order and holds each coordinate once.
func (e *Expander) Expand(
	ctx context.Context,
	selection ports.ResolverSelection,
	deps []domain.Dependency,
) (*domain.Closure, error) {
	closure := domain.NewClosure()
	for _, dep := range deps {
		resolved, err := e.expandOne(ctx, selection, dep)
		if err != nil {
			return nil, err
		}
		closure.Add(resolved...)
	}
	return closure, nil
}

func (e *Expander) expandOne(
	ctx context.Context,
	selection ports.ResolverSelection,
	dep domain.Dependency,
) ([]domain.Dependency, error) {
	if dep.IsLocal() {
		if selection.Local == nil {
			return nil, exhausted(dep)
		}
		resolved, err := selection.Local.ResolveTransitive(ctx, []domain.Dependency{dep})
		if err != nil {
			return nil, domain.Classify(domain.ErrResolution, err)
		}
		return resolved, nil
	}

	for _, backend := range selection.Chain() {
		resolved, err := backend.ResolveTransitive(ctx, []domain.Dependency{dep})
		if err == nil {
			return resolved, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		e.logger.Warn(fmt.Sprintf("%s could not resolve %s: %v", backend.Name(), dep.Coordinate(), err))
	}
	return nil, exhausted(dep)
}

// Validate checks every direct dependency against the backend that would resolve it and
// returns one error per dependency that no backend accepts.
func (e *Expander) Validate(
	ctx context.Context,
	selection ports.ResolverSelection,
	deps []domain.Dependency,
) []error {
	var errs []error
	for _, dep := range deps {
		if err := e.validateOne(ctx, selection, dep); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (e *Expander) validateOne(ctx context.Context, selection ports.ResolverSelection, dep domain.Dependency) error {
	if dep.IsLocal() {
		if selection.Local == nil {
			return exhausted(dep)
		}
		return domain.Classify(domain.ErrResolution, selection.Local.Validate(ctx, dep))
	}

	var last error
	for _, backend := range selection.Chain() {
		if last = backend.Validate(ctx, dep); last == nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}
	if last != nil {
		return domain.Classify(domain.ErrResolution, last)
	}
	return exhausted(dep)
}

// Prepare asks the first backend of each kind to fetch deps ahead of a build in targetDir.
// Failures are warnings; the compiler reports anything that is really missing.
func (e *Expander) Prepare(
	ctx context.Context,
	selection ports.ResolverSelection,
	deps []domain.Dependency,
	targetDir string,
) {
	var local, published []domain.Dependency
	for _, dep := range deps {
		if dep.IsLocal() {
			local = append(local, dep)
		} else {
			published = append(published, dep)
		}
	}

	if len(local) > 0 && selection.Local != nil {
		if err := selection.Local.Prepare(ctx, local, targetDir); err != nil {
			e.logger.Warn(fmt.Sprintf("failed to prepare local dependencies: %v", err))
		}
	}

	chain := selection.Chain()
	if len(published) == 0 || len(chain) == 0 {
		return
	}
	if err := chain[0].Prepare(ctx, published, targetDir); err != nil && ctx.Err() == nil {
		e.logger.Warn(fmt.Sprintf("%s failed to fetch dependencies: %v", chain[0].Name(), err))
	}
}

func exhausted(dep domain.Dependency) error {
	return domain.Classify(domain.ErrResolution, zerr.With(domain.ErrBackendsExhausted, "dependency", dep.Coordinate()))
}
