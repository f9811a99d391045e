package app

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/kiln/internal/ui/output"
	"go.trai.ch/kiln/internal/ui/style"
)

// DepsOptions configuration for the Deps method.
type DepsOptions struct {
	// Check validates every direct dependency against the resolver backends.
	Check bool
}

// Deps prints the resolved dependency closure of every selected project.
func (a *App) Deps(ctx context.Context, opts DepsOptions) error {
	ws, err := a.load()
	if err != nil {
		return err
	}

	out := output.New(a.stdout)
	var problems []error
	for i, project := range ws.Projects {
		deps, err := a.pipeline.Resolve(ctx, ws, project)
		if err != nil {
			return err
		}

		if i > 0 {
			_, _ = fmt.Fprintln(out)
		}
		name := out.String(project.Name()).Foreground(out.Color(string(style.Ember))).Bold()
		_, _ = fmt.Fprintf(out, "%s %s\n", name, out.String(dependencyCount(len(deps))).Faint())
		for _, dep := range deps {
			_, _ = fmt.Fprintf(out, "  %s %s\n", style.Dot, dep.Coordinate())
		}

		if !opts.Check {
			continue
		}
		errs, err := a.pipeline.Check(ctx, ws, project)
		if err != nil {
			return err
		}
		problems = append(problems, errs...)
	}

	if len(problems) > 0 {
		return errors.Join(problems...)
	}
	if opts.Check {
		a.logger.Info(fmt.Sprintf("%s all dependencies are available", style.Check))
	}
	return nil
}

func dependencyCount(n int) string {
	if n == 1 {
		return "(1 dependency)"
	}
	return fmt.Sprintf("(%d dependencies)", n)
}
