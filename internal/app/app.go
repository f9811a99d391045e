// Package app implements the application layer for kiln.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader        ports.ManifestLoader
	pipeline      *pipeline.Pipeline
	caches        ports.BuildCacheFactory
	watcher       ports.Watcher
	fingerprinter ports.Fingerprinter
	metrics       ports.Metrics
	logger        ports.Logger

	dir            string
	stdout         io.Writer
	stderr         io.Writer
	debounceWindow time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ManifestLoader,
	p *pipeline.Pipeline,
	caches ports.BuildCacheFactory,
	watcher ports.Watcher,
	fingerprinter ports.Fingerprinter,
	metrics ports.Metrics,
	log ports.Logger,
) *App {
	return &App{
		loader:         loader,
		pipeline:       p,
		caches:         caches,
		watcher:        watcher,
		fingerprinter:  fingerprinter,
		metrics:        metrics,
		logger:         log,
		dir:            ".",
		stdout:         os.Stdout,
		stderr:         os.Stderr,
		debounceWindow: defaultDebounceWindow,
	}
}

// WithDir sets the directory manifests are discovered from.
func (a *App) WithDir(dir string) *App {
	a.dir = dir
	return a
}

// WithOutput sets the streams listings and programs write to.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithDebounceWindow sets how long watch mode waits for the file tree to settle.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.debounceWindow = d
	return a
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	NoCache     bool
	StrictCache bool
	Watch       bool
	MetricsFile string
}

func (o BuildOptions) pipeline() pipeline.Options {
	return pipeline.Options{NoCache: o.NoCache, StrictCache: o.StrictCache}
}

// Build builds every selected project in declared order, then keeps rebuilding on
// source changes when opts.Watch is set.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	ws, err := a.load()
	if err != nil {
		return err
	}

	err = a.buildAll(ctx, ws, opts)
	if !opts.Watch {
		return errors.Join(err, a.writeMetrics(opts.MetricsFile))
	}

	if err != nil {
		a.logger.Error(err)
	}
	a.logMetricsError(opts.MetricsFile)
	return a.watch(ctx, ws, opts)
}

func (a *App) load() (*domain.Workspace, error) {
	ws, err := a.loader.Load(a.dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load manifest")
	}
	if len(ws.Projects) == 0 {
		return nil, zerr.With(domain.ErrNoProjects, "root", ws.Root)
	}
	return ws, nil
}

func (a *App) buildAll(ctx context.Context, ws *domain.Workspace, opts BuildOptions) error {
	var built, cached int
	for _, project := range ws.Projects {
		result, err := a.pipeline.Build(ctx, ws, project, opts.pipeline())
		if err != nil {
			return err
		}
		if result.CacheHit {
			cached++
		} else {
			built++
			a.logger.Info(fmt.Sprintf("built %s in %s", result.Project, result.Duration.Round(time.Millisecond)))
		}
	}

	if len(ws.Projects) > 1 {
		a.logger.Info(fmt.Sprintf("%d projects built, %d restored from cache", built, cached))
	}
	return nil
}

func (a *App) writeMetrics(path string) error {
	if path == "" {
		return nil
	}
	return a.metrics.WriteTextfile(path)
}

func (a *App) logMetricsError(path string) {
	if err := a.writeMetrics(path); err != nil {
		a.logger.Error(err)
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	NoCache     bool
	StrictCache bool
	Args        []string
}

// Run builds the selected project and runs its main entry point.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	ws, err := a.load()
	if err != nil {
		return err
	}

	project, err := runTarget(ws)
	if err != nil {
		return err
	}

	buildOpts := pipeline.Options{NoCache: opts.NoCache, StrictCache: opts.StrictCache}
	return a.pipeline.Run(ctx, ws, project, buildOpts, opts.Args, a.stdout, a.stderr)
}

// runTarget picks the single project to run, preferring the one that declares a main class.
func runTarget(ws *domain.Workspace) (*domain.Project, error) {
	if len(ws.Projects) == 1 {
		return ws.Projects[0], nil
	}

	var target *domain.Project
	for _, project := range ws.Projects {
		if project.Package().Main == "" {
			continue
		}
		if target != nil {
			return nil, zerr.With(zerr.With(domain.ErrRunTargetAmbiguous, "first", target.Name()), "second", project.Name())
		}
		target = project
	}
	if target == nil {
		return nil, zerr.With(domain.ErrRunTargetAmbiguous, "projects", len(ws.Projects))
	}
	return target, nil
}

// Test runs the tests of every selected project in declared order. A failing project does
// not stop the others; every failure is reported.
func (a *App) Test(ctx context.Context) error {
	ws, err := a.load()
	if err != nil {
		return err
	}

	var errs error
	var ran int
	for _, project := range ws.Projects {
		tested, err := a.pipeline.Test(ctx, ws, project, a.stdout, a.stderr)
		if tested {
			ran++
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return errors.Join(errs, ctxErr)
			}
			errs = errors.Join(errs, err)
		}
	}

	if ran == 0 && errs == nil {
		a.logger.Info("no tests to run")
	}
	return errs
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Cache bool
}

// Clean removes the target directory of every selected project and, with opts.Cache, its build cache.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	ws, err := a.load()
	if err != nil {
		return err
	}

	var errs error
	for _, project := range ws.Projects {
		target := project.TargetDir()
		if err := os.RemoveAll(target); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, "failed to remove target directory"), "path", target))
		} else {
			a.logger.Info(fmt.Sprintf("removed %s", target))
		}

		if opts.Cache {
			errs = errors.Join(errs, a.clearCache(project))
		}
	}
	return errs
}

func (a *App) clearCache(project *domain.Project) error {
	path := domain.CachePath(project.Root)

	cache, err := a.caches.Open(project.Root, ports.CacheOptions{})
	if err != nil {
		// An unreadable index must not keep the cache from being removed.
		a.logger.Warn(fmt.Sprintf("%s: %v", project.Name(), err))
		if rmErr := os.RemoveAll(path); rmErr != nil {
			return domain.Classify(domain.ErrCache, zerr.With(zerr.Wrap(rmErr, domain.ErrCacheRemoveFailed.Error()), "path", path))
		}
	} else if err := cache.Clear(); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("removed %s", path))
	return nil
}
