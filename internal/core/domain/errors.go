package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

// Error families. Component boundaries join one of these onto the specific error
// so callers can classify a failure with errors.Is.
var (
	// ErrManifest classifies malformed or invalid manifests.
	ErrManifest = zerr.New("invalid manifest")

	// ErrResolution classifies dependency resolution failures.
	ErrResolution = zerr.New("dependency resolution failed")

	// ErrCache classifies build cache I/O failures.
	ErrCache = zerr.New("build cache failure")

	// ErrBuild classifies failures of the external compiler.
	ErrBuild = zerr.New("build failed")
)

// Manifest errors.
var (
	// ErrManifestNotFound is returned when no manifest exists in the directory or any parent.
	ErrManifestNotFound = zerr.New("could not find " + ManifestFileName)

	// ErrManifestReadFailed is returned when the manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest")

	// ErrManifestParseFailed is returned when the manifest is not valid YAML.
	ErrManifestParseFailed = zerr.New("failed to parse manifest")

	// ErrMissingPackageName is returned when a project manifest has no package name.
	ErrMissingPackageName = zerr.New("package name must not be empty")

	// ErrMissingPackageVersion is returned when a project manifest has no package version.
	ErrMissingPackageVersion = zerr.New("package version must not be empty")

	// ErrInvalidVersion is returned when a version string contains characters outside [A-Za-z0-9._-]
	// and, for dependencies, is not a range or a list of options either.
	ErrInvalidVersion = zerr.New("invalid version, only alphanumerics, '.', '-' and '_' are allowed")

	// ErrInvalidTargetDir is returned when the target directory is not a subdirectory of the
	// project that stays clear of the sources.
	ErrInvalidTargetDir = zerr.New("target-dir must be a project subdirectory outside source-dir")

	// ErrEmptyDependencyName is returned when a dependency key is empty.
	ErrEmptyDependencyName = zerr.New("dependency name must not be empty")

	// ErrEmptyDependencySpec is returned when a simple dependency spec is an empty string.
	ErrEmptyDependencySpec = zerr.New("dependency spec must not be empty")

	// ErrMissingVersion is returned when a non-workspace detailed dependency has no version.
	ErrMissingVersion = zerr.New("dependency must declare a version or set workspace: true")

	// ErrWorkspaceVersionConflict is returned when a dependency sets both workspace and version.
	ErrWorkspaceVersionConflict = zerr.New("workspace dependency must not declare a version")

	// ErrInvalidBackend is returned when the package backend is not a known build system.
	ErrInvalidBackend = zerr.New("invalid backend, expected one of scala-cli, sbt, gradle, maven")

	// ErrDuplicateMember is returned when a workspace lists the same member twice.
	ErrDuplicateMember = zerr.New("duplicate workspace member")

	// ErrEmptyMember is returned when a workspace member path is empty.
	ErrEmptyMember = zerr.New("workspace member path must not be empty")

	// ErrMemberManifestMissing is returned when a workspace member has no manifest.
	ErrMemberManifestMissing = zerr.New("workspace member has no " + ManifestFileName)
)

// Resolution errors.
var (
	// ErrInvalidCoordinate is returned when a coordinate does not match the coordinate grammar.
	ErrInvalidCoordinate = zerr.New("invalid coordinate, expected group:artifact:version or group::artifact:version")

	// ErrWorkspaceDependencyMissing is returned when a workspace-flagged dependency has no workspace entry.
	ErrWorkspaceDependencyMissing = zerr.New("workspace dependency is not declared in the workspace")

	// ErrWorkspaceDependencyCycle is returned when a workspace entry is itself flagged as workspace.
	ErrWorkspaceDependencyCycle = zerr.New("workspace dependency refers back to the workspace")

	// ErrLocalPathNotFound is returned when a local project reference points at a missing directory.
	ErrLocalPathNotFound = zerr.New("local project path does not exist")

	// ErrBackendUnavailable is returned when a resolver backend executable cannot be found.
	ErrBackendUnavailable = zerr.New("resolver backend is not available")

	// ErrBackendsExhausted is returned when every resolver backend failed for a dependency.
	ErrBackendsExhausted = zerr.New("all resolver backends failed")

	// ErrResolveCommandFailed is returned when a resolver subprocess exits with an error.
	ErrResolveCommandFailed = zerr.New("resolver command failed")

	// ErrDependencyUnavailable is returned when a dependency fails validation.
	ErrDependencyUnavailable = zerr.New("dependency is not available")

	// ErrPrepareFailed is returned when fetching a dependency ahead of the build fails.
	ErrPrepareFailed = zerr.New("failed to fetch dependency")

	// ErrVersionLookupFailed is returned when the package index request fails.
	ErrVersionLookupFailed = zerr.New("failed to look up published versions")

	// ErrVersionLookupParseFailed is returned when the package index response cannot be parsed.
	ErrVersionLookupParseFailed = zerr.New("failed to parse package index response")

	// ErrVersionNotFound is returned when no published version of an artifact satisfies its constraint.
	ErrVersionNotFound = zerr.New("no published version found")
)

// Cache errors.
var (
	// ErrCacheNotInitialized is returned when the build cache is used before its index is loaded.
	ErrCacheNotInitialized = zerr.New("build cache is not initialized")

	// ErrCacheCreateFailed is returned when the cache directory cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create build cache directory")

	// ErrCacheIndexReadFailed is returned when the cache index cannot be read.
	ErrCacheIndexReadFailed = zerr.New("failed to read build cache index")

	// ErrCacheIndexUnmarshalFailed is returned when the cache index is not valid JSON.
	ErrCacheIndexUnmarshalFailed = zerr.New("failed to unmarshal build cache index")

	// ErrCacheIndexWriteFailed is returned when the cache index cannot be persisted.
	ErrCacheIndexWriteFailed = zerr.New("failed to write build cache index")

	// ErrCacheEntryNotFound is returned when restoring a hash the index does not know.
	ErrCacheEntryNotFound = zerr.New("build cache entry not found")

	// ErrCacheEntryIncomplete is returned by a strict restore when a recorded output is missing.
	ErrCacheEntryIncomplete = zerr.New("build cache entry is missing an output")

	// ErrCacheCopyFailed is returned when copying a file into or out of the cache fails.
	ErrCacheCopyFailed = zerr.New("failed to copy cached file")

	// ErrCacheRemoveFailed is returned when an entry directory cannot be removed.
	ErrCacheRemoveFailed = zerr.New("failed to remove build cache entry")

	// ErrSourceHashFailed is returned when hashing the source tree fails.
	ErrSourceHashFailed = zerr.New("failed to hash source tree")
)

// Build errors.
var (
	// ErrBuildFailed is returned when the compiler exits with a non-zero status.
	ErrBuildFailed = zerr.New("compilation failed")

	// ErrRunFailed is returned when running the compiled program fails.
	ErrRunFailed = zerr.New("program exited with an error")

	// ErrTestFailed is returned when the test runner reports failures.
	ErrTestFailed = zerr.New("tests failed")

	// ErrTargetCleanFailed is returned when stale outputs cannot be removed before compiling.
	ErrTargetCleanFailed = zerr.New("failed to clear target directory")

	// ErrUnsupportedBackend is returned when a project selects a backend kiln cannot drive.
	ErrUnsupportedBackend = zerr.New("backend is not supported for building")

	// ErrToolchainNotFound is returned when the compiler executable cannot be found.
	ErrToolchainNotFound = zerr.New("compiler toolchain not found")

	// ErrNoProjects is returned when a workspace has no buildable members.
	ErrNoProjects = zerr.New("no projects to build")

	// ErrRunTargetAmbiguous is returned when kiln run cannot tell which project to run.
	ErrRunTargetAmbiguous = zerr.New("more than one project can run, invoke kiln run inside one member")
)

// Metrics errors.
var (
	// ErrMetricsWriteFailed is returned when the metrics textfile cannot be written.
	ErrMetricsWriteFailed = zerr.New("failed to write metrics file")
)

// Watch errors.
var (
	// ErrWatchFailed is returned when the file watcher cannot be created or attached.
	ErrWatchFailed = zerr.New("failed to watch files")
)

// Process errors.
var (
	// ErrCommandFailed is returned when an external command exits with a non-zero status.
	ErrCommandFailed = zerr.New("command failed")

	// ErrCommandStartFailed is returned when an external command cannot be started.
	ErrCommandStartFailed = zerr.New("failed to start command")
)

var families = []error{ErrManifest, ErrResolution, ErrCache, ErrBuild}

// IsFamily reports whether err is one of the family roots itself.
func IsFamily(err error) bool {
	for _, family := range families {
		if err == family { //nolint:errorlint // identity check against the roots
			return true
		}
	}
	return false
}

// InFamily reports whether err already carries one of the error families.
func InFamily(err error) bool {
	for _, family := range families {
		if errors.Is(err, family) {
			return true
		}
	}
	return false
}

// Classify joins family onto err unless err is nil or already classified.
func Classify(family, err error) error {
	if err == nil || InFamily(err) {
		return err
	}
	return errors.Join(family, err)
}
