// Package pipeline builds one project at a time: merge its dependency declarations,
// resolve them into a closure, and either restore cached outputs or compile and cache them.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// shortHashLen is how many hex digits of a cache key are shown in logs.
const shortHashLen = 12

// Options control a single build.
type Options struct {
	// NoCache skips both cache lookup and cache save.
	NoCache bool
	// StrictCache fails a restore when a recorded output is missing.
	StrictCache bool
}

// Pipeline runs projects through resolution and the build cache.
type Pipeline struct {
	selector  ports.ResolverSelector
	versions  ports.VersionLookup
	caches    ports.BuildCacheFactory
	toolchain ports.Toolchain
	tracer    ports.Tracer
	metrics   ports.Metrics
	logger    ports.Logger
	expander  *Expander
}

// New creates a new Pipeline.
func New(
	selector ports.ResolverSelector,
	versions ports.VersionLookup,
	caches ports.BuildCacheFactory,
	toolchain ports.Toolchain,
	tracer ports.Tracer,
	metrics ports.Metrics,
	logger ports.Logger,
) *Pipeline {
	return &Pipeline{
		selector:  selector,
		versions:  versions,
		caches:    caches,
		toolchain: toolchain,
		tracer:    tracer,
		metrics:   metrics,
		logger:    logger,
		expander:  NewExpander(logger),
	}
}

// DirectDependencies merges the project's declarations with the workspace and pins every
// dependency declared with a version constraint. Local references are anchored at the project root
// and language variants are rewritten to the concrete artifact for the project's language version.
func (p *Pipeline) DirectDependencies(
	ctx context.Context,
	ws *domain.Workspace,
	project *domain.Project,
) ([]domain.Dependency, error) {
	merged, err := domain.MergeDependencies(project.Manifest.Dependencies, ws.Config)
	if err != nil {
		return nil, zerr.With(err, "project", project.Name())
	}

	languageVersion := project.Package().ScalaVersion
	direct := make([]domain.Dependency, 0, len(merged))
	for _, dep := range merged {
		if dep.IsLocal() {
			direct = append(direct, dep.WithBase(project.Root))
			continue
		}
		if dep.NeedsVersion() {
			pinned, err := p.pin(ctx, dep, languageVersion)
			if err != nil {
				return nil, zerr.With(err, "project", project.Name())
			}
			dep = pinned
		}
		direct = append(direct, dep.Concrete(languageVersion))
	}
	return direct, nil
}

func (p *Pipeline) pin(ctx context.Context, dep domain.Dependency, languageVersion string) (domain.Dependency, error) {
	version, err := p.versions.ResolveVersion(ctx, dep.Group, dep.ArtifactName(languageVersion), dep.Version)
	if err != nil {
		return domain.Dependency{}, domain.Classify(domain.ErrResolution, zerr.With(err, "dependency", dep.Coordinate()))
	}
	p.logger.Info(fmt.Sprintf("using %s %s", dep.Coordinate(), version))
	return dep.WithVersion(version), nil
}

// Resolve returns the transitive closure of the project's dependencies.
func (p *Pipeline) Resolve(ctx context.Context, ws *domain.Workspace, project *domain.Project) ([]domain.Dependency, error) {
	ctx, span := p.tracer.Start(ctx, "resolve")
	defer span.End()
	span.SetAttribute("project", project.Name())

	direct, err := p.DirectDependencies(ctx, ws, project)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	closure, err := p.expander.Expand(ctx, p.selector.Select(ctx), direct)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.With(err, "project", project.Name())
	}
	span.SetAttribute("dependencies", closure.Len())
	return closure.Dependencies(), nil
}

// Check validates every direct dependency of the project and returns one error per
// dependency no backend accepts.
func (p *Pipeline) Check(ctx context.Context, ws *domain.Workspace, project *domain.Project) ([]error, error) {
	direct, err := p.DirectDependencies(ctx, ws, project)
	if err != nil {
		return nil, err
	}
	return p.expander.Validate(ctx, p.selector.Select(ctx), direct), nil
}

// Build brings the project's target directory up to date, restoring it from the build cache
// when the sources and resolved dependencies are unchanged.
func (p *Pipeline) Build(
	ctx context.Context,
	ws *domain.Workspace,
	project *domain.Project,
	opts Options,
) (domain.BuildResult, error) {
	start := time.Now()
	name := project.Name()

	ctx, span := p.tracer.Start(ctx, "build")
	defer span.End()
	span.SetAttribute("project", name)

	result, err := p.build(ctx, ws, project, opts)
	result.Project = name
	result.Duration = time.Since(start)
	if err != nil {
		span.RecordError(err)
		return result, err
	}

	span.SetAttribute("cache_hit", result.CacheHit)
	p.metrics.BuildDuration(name, result.Duration)
	return result, nil
}

func (p *Pipeline) build(
	ctx context.Context,
	ws *domain.Workspace,
	project *domain.Project,
	opts Options,
) (domain.BuildResult, error) {
	var result domain.BuildResult

	pkg := project.Package()
	if pkg.Backend != domain.BackendScalaCLI {
		err := zerr.With(zerr.With(domain.ErrUnsupportedBackend, "backend", pkg.Backend), "project", project.Name())
		return result, domain.Classify(domain.ErrBuild, err)
	}

	deps, err := p.Resolve(ctx, ws, project)
	if err != nil {
		return result, err
	}
	result.Dependencies = deps

	cache, hash := p.lookup(project, deps, opts)
	result.Hash = hash

	if cache != nil && cache.Has(hash) {
		if p.restore(ctx, cache, project, hash) {
			p.metrics.CacheHit(project.Name())
			result.CacheHit = true
			return result, nil
		}
	}
	if cache != nil {
		p.metrics.CacheMiss(project.Name())
	}

	if err := p.compile(ctx, project, deps); err != nil {
		return result, err
	}

	if cache != nil {
		p.save(cache, project, hash)
	}
	return result, nil
}

// lookup opens the project's cache and computes its key. A nil cache means the build runs uncached.
func (p *Pipeline) lookup(project *domain.Project, deps []domain.Dependency, opts Options) (ports.BuildCache, string) {
	if opts.NoCache {
		return nil, ""
	}

	cacheOpts := ports.CacheOptions{Strict: opts.StrictCache || project.Manifest.Cache.Strict}
	if project.TargetInSource() {
		cacheOpts.Exclude = []string{project.TargetDir()}
	}
	cache, err := p.caches.Open(project.Root, cacheOpts)
	if err != nil {
		p.cacheWarning(project, "open", err)
		return nil, ""
	}

	hash, err := cache.Hash(project.SourceDir(), domain.Coordinates(deps))
	if err != nil {
		p.cacheWarning(project, "hash", err)
		return nil, ""
	}
	return cache, hash
}

func (p *Pipeline) restore(ctx context.Context, cache ports.BuildCache, project *domain.Project, hash string) bool {
	_, span := p.tracer.Start(ctx, "restore")
	defer span.End()
	span.SetAttribute("hash", hash)

	missing, err := cache.Restore(hash, project.TargetDir())
	if err != nil {
		span.RecordError(err)
		p.cacheWarning(project, "restore", err)
		return false
	}
	for _, rel := range missing {
		p.logger.Warn(fmt.Sprintf("%s: cached output %s is missing, skipped", project.Name(), rel))
	}
	p.logger.Info(fmt.Sprintf("%s is up to date (cache %s)", project.Name(), short(hash)))
	return true
}

// compile starts from an empty target directory so outputs of deleted sources never reach
// the cache entry saved afterwards.
func (p *Pipeline) compile(ctx context.Context, project *domain.Project, deps []domain.Dependency) error {
	ctx, span := p.tracer.Start(ctx, "compile")
	defer span.End()

	if err := os.RemoveAll(project.TargetDir()); err != nil {
		span.RecordError(err)
		cleanErr := zerr.With(zerr.Wrap(err, domain.ErrTargetCleanFailed.Error()), "path", project.TargetDir())
		return domain.Classify(domain.ErrBuild, zerr.With(cleanErr, "project", project.Name()))
	}

	p.expander.Prepare(ctx, p.selector.Select(ctx), deps, project.TargetDir())

	p.logger.Info(fmt.Sprintf("compiling %s", project.Name()))
	err := p.toolchain.Compile(ctx, domain.CompileRequest{
		SourceDir:       project.SourceDir(),
		OutputDir:       project.TargetDir(),
		WorkspaceDir:    project.Root,
		LanguageVersion: project.Package().ScalaVersion,
		Dependencies:    deps,
	})
	if err != nil {
		span.RecordError(err)
		return zerr.With(err, "project", project.Name())
	}
	return nil
}

func (p *Pipeline) save(cache ports.BuildCache, project *domain.Project, hash string) {
	if err := cache.Save(hash, project.TargetDir()); err != nil {
		p.cacheWarning(project, "save", err)
		return
	}
	p.metrics.CacheSave(project.Name())
}

func (p *Pipeline) cacheWarning(project *domain.Project, op string, err error) {
	p.metrics.CacheError(project.Name(), op)
	p.logger.Warn(fmt.Sprintf("%s: build cache %s failed: %v", project.Name(), op, err))
}

// Run builds the project and then runs its main entry point with args.
func (p *Pipeline) Run(
	ctx context.Context,
	ws *domain.Workspace,
	project *domain.Project,
	opts Options,
	args []string,
	stdout, stderr io.Writer,
) error {
	result, err := p.Build(ctx, ws, project, opts)
	if err != nil {
		return err
	}

	ctx, span := p.tracer.Start(ctx, "run")
	defer span.End()
	span.SetAttribute("project", project.Name())

	err = p.toolchain.Run(ctx, domain.RunRequest{
		SourceDir:       project.SourceDir(),
		WorkspaceDir:    project.Root,
		LanguageVersion: project.Package().ScalaVersion,
		MainClass:       project.Package().Main,
		Dependencies:    result.Dependencies,
		Args:            args,
	}, stdout, stderr)
	if err != nil {
		span.RecordError(err)
		return zerr.With(err, "project", project.Name())
	}
	return nil
}

// Test resolves the project's dependencies and runs the tests under its test directory.
// A project without a test directory has nothing to run and reports ran as false.
func (p *Pipeline) Test(
	ctx context.Context,
	ws *domain.Workspace,
	project *domain.Project,
	stdout, stderr io.Writer,
) (ran bool, err error) {
	testDir := project.TestDir()
	if info, statErr := os.Stat(testDir); statErr != nil || !info.IsDir() {
		p.logger.Info(fmt.Sprintf("%s: no tests found in %s", project.Name(), project.Package().TestDir))
		return false, nil
	}

	pkg := project.Package()
	if pkg.Backend != domain.BackendScalaCLI {
		unsupported := zerr.With(zerr.With(domain.ErrUnsupportedBackend, "backend", pkg.Backend), "project", project.Name())
		return false, domain.Classify(domain.ErrBuild, unsupported)
	}

	deps, err := p.Resolve(ctx, ws, project)
	if err != nil {
		return false, err
	}

	ctx, span := p.tracer.Start(ctx, "test")
	defer span.End()
	span.SetAttribute("project", project.Name())

	p.logger.Info(fmt.Sprintf("testing %s", project.Name()))
	err = p.toolchain.Test(ctx, domain.TestRequest{
		SourceDir:       project.SourceDir(),
		TestDir:         testDir,
		WorkspaceDir:    project.Root,
		LanguageVersion: pkg.ScalaVersion,
		Dependencies:    deps,
	}, stdout, stderr)
	if err != nil {
		span.RecordError(err)
		return true, zerr.With(err, "project", project.Name())
	}
	return true, nil
}

func short(hash string) string {
	if len(hash) > shortHashLen {
		return hash[:shortHashLen]
	}
	return hash
}
