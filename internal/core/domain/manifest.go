package domain

import (
	"errors"
	"maps"
	"path/filepath"
	"slices"

	"go.trai.ch/zerr"
)

// Build system backends a package can declare.
const (
	BackendScalaCLI = "scala-cli"
	BackendSbt      = "sbt"
	BackendGradle   = "gradle"
	BackendMaven    = "maven"
)

var validBackends = []string{BackendScalaCLI, BackendSbt, BackendGradle, BackendMaven}

// Package holds the package table of a manifest.
type Package struct {
	Name         string
	Version      string
	Main         string
	ScalaVersion string
	SourceDir    string
	TargetDir    string
	TestDir      string
	Backend      string
}

// WithDefaults returns a copy of p with unset optional fields filled in.
func (p Package) WithDefaults() Package {
	if p.ScalaVersion == "" {
		p.ScalaVersion = DefaultScalaVersion
	}
	if p.SourceDir == "" {
		p.SourceDir = DefaultSourceDir
	}
	if p.TargetDir == "" {
		p.TargetDir = DefaultTargetDir
	}
	if p.TestDir == "" {
		p.TestDir = DefaultTestDir
	}
	if p.Backend == "" {
		p.Backend = BackendScalaCLI
	}
	return p
}

// WorkspaceConfig holds the workspace table of a root manifest.
type WorkspaceConfig struct {
	Members      []string
	Dependencies map[string]DependencySpec
}

// CacheSettings holds the cache table of a manifest.
type CacheSettings struct {
	// Strict treats a cache entry with a missing output as an error instead of skipping the file.
	Strict bool
}

// Manifest is a parsed kiln.yaml. Package is nil for a workspace root that is not itself a project.
type Manifest struct {
	Package      *Package
	Dependencies map[string]DependencySpec
	Workspace    *WorkspaceConfig
	Cache        CacheSettings
}

// Validate checks the manifest and returns every problem found, joined into one error
// classified as ErrManifest.
func (m *Manifest) Validate() error {
	var errs []error

	if m.Package != nil {
		errs = append(errs, validatePackage(m.Package)...)
	}

	for _, name := range slices.Sorted(maps.Keys(m.Dependencies)) {
		if err := validateSpec(name, m.Dependencies[name], false); err != nil {
			errs = append(errs, err)
		}
	}

	if m.Workspace != nil {
		errs = append(errs, validateWorkspace(m.Workspace)...)
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrManifest}, errs...)...)
}

func validatePackage(p *Package) []error {
	var errs []error
	if p.Name == "" {
		errs = append(errs, ErrMissingPackageName)
	}
	if p.Version == "" {
		errs = append(errs, ErrMissingPackageVersion)
	} else if !ValidVersion(p.Version) {
		errs = append(errs, zerr.With(ErrInvalidVersion, "version", p.Version))
	}
	if p.Backend != "" && !slices.Contains(validBackends, p.Backend) {
		errs = append(errs, zerr.With(ErrInvalidBackend, "backend", p.Backend))
	}
	if err := validateLayout(p.WithDefaults()); err != nil {
		errs = append(errs, err)
	}
	return errs
}

// validateLayout rejects target directories that would take the project or its sources with
// them when a build clears stale outputs.
func validateLayout(p Package) error {
	target := filepath.Clean(p.TargetDir)
	source := filepath.Clean(p.SourceDir)
	if filepath.IsAbs(target) || !Within(target, ".") || target == "." || Within(source, target) {
		return zerr.With(zerr.With(ErrInvalidTargetDir, "target_dir", p.TargetDir), "source_dir", p.SourceDir)
	}
	return nil
}

func validateWorkspace(ws *WorkspaceConfig) []error {
	var errs []error

	seen := make(map[string]int, len(ws.Members))
	for i, member := range ws.Members {
		if member == "" {
			errs = append(errs, zerr.With(ErrEmptyMember, "index", i))
			continue
		}
		clean := filepath.Clean(member)
		if first, dup := seen[clean]; dup {
			err := zerr.With(ErrDuplicateMember, "member", member)
			err = zerr.With(err, "first_occurrence", first)
			errs = append(errs, zerr.With(err, "duplicate_at", i))
			continue
		}
		seen[clean] = i
	}

	for _, name := range slices.Sorted(maps.Keys(ws.Dependencies)) {
		if err := validateSpec(name, ws.Dependencies[name], true); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func validateSpec(name string, spec DependencySpec, inWorkspace bool) error {
	if name == "" {
		return ErrEmptyDependencyName
	}
	if IsLocalKey(name) {
		return nil
	}

	if spec.Kind == SpecSimple {
		if spec.Value == "" {
			return zerr.With(ErrEmptyDependencySpec, "dependency", name)
		}
		if _, err := ParseCoordinate(SimpleCoordinate(name, spec.Value)); err != nil {
			return zerr.With(err, "dependency", name)
		}
		return nil
	}

	switch {
	case spec.Workspace && inWorkspace:
		return zerr.With(ErrWorkspaceDependencyCycle, "dependency", name)
	case spec.Workspace && spec.Version != "":
		return zerr.With(zerr.With(ErrWorkspaceVersionConflict, "dependency", name), "version", spec.Version)
	case spec.Workspace:
		return nil
	case spec.Version == "":
		return zerr.With(ErrMissingVersion, "dependency", name)
	case !ValidDependencyVersion(spec.Version):
		return zerr.With(zerr.With(ErrInvalidVersion, "dependency", name), "version", spec.Version)
	}
	return nil
}

// Project is one buildable package on disk.
type Project struct {
	// Root is the absolute directory that holds the project's manifest.
	Root string
	// RelPath is Root relative to the workspace root, or "." for a standalone project.
	RelPath  string
	Manifest *Manifest
}

// Name returns the package name.
func (p *Project) Name() string {
	return p.Manifest.Package.Name
}

// Package returns the package table with defaults applied.
func (p *Project) Package() Package {
	return p.Manifest.Package.WithDefaults()
}

// SourceDir returns the absolute source directory.
func (p *Project) SourceDir() string {
	return filepath.Join(p.Root, p.Package().SourceDir)
}

// TargetDir returns the absolute output directory.
func (p *Project) TargetDir() string {
	return filepath.Join(p.Root, p.Package().TargetDir)
}

// TestDir returns the absolute test source directory.
func (p *Project) TestDir() string {
	return filepath.Join(p.Root, p.Package().TestDir)
}

// TargetInSource reports whether the output directory is nested under the source directory,
// as with source-dir ".", so source hashing has to skip it.
func (p *Project) TargetInSource() bool {
	return Within(p.TargetDir(), p.SourceDir())
}

// Workspace is the set of projects selected for one invocation.
type Workspace struct {
	// Root is the directory of the workspace manifest, or the project root in standalone mode.
	Root string
	// Config is nil in standalone mode.
	Config *WorkspaceConfig
	// Projects are the selected projects in build order.
	Projects []*Project
}
