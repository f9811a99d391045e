package domain

import (
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// LatestKeyword is the version placeholder that asks the package index for the newest release.
const LatestKeyword = "latest"

// StableKeyword asks the package index for the newest release that is not a pre-release.
const StableKeyword = "stable"

// localKeyPrefix marks a dependency key as a path to another project.
const localKeyPrefix = "path:"

var (
	validVersionRegex = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	// versionRangeRegex matches [min,max), (min,max] and the like. Either bound may be empty.
	versionRangeRegex = regexp.MustCompile(`^[\[(]([A-Za-z0-9._-]*),([A-Za-z0-9._-]*)[\])]$`)
)

// SpecKind distinguishes the two shapes a declared dependency can take.
type SpecKind uint8

const (
	// SpecSimple is a dependency declared as a plain string.
	SpecSimple SpecKind = iota
	// SpecDetailed is a dependency declared as a table with version and workspace fields.
	SpecDetailed
)

// DependencySpec is a dependency as declared in a manifest, before merging.
type DependencySpec struct {
	Kind SpecKind
	// Value is the declared string of a simple spec: a version or a full coordinate.
	Value string
	// Version is the declared version of a detailed spec. Empty means none was declared.
	Version string
	// Workspace marks a detailed spec that takes its definition from the workspace.
	Workspace bool
}

// SimpleSpec returns a simple spec holding value.
func SimpleSpec(value string) DependencySpec {
	return DependencySpec{Kind: SpecSimple, Value: value}
}

// DetailedSpec returns a detailed spec.
func DetailedSpec(version string, workspace bool) DependencySpec {
	return DependencySpec{Kind: SpecDetailed, Version: version, Workspace: workspace}
}

// DependencyKind distinguishes resolved dependencies.
type DependencyKind uint8

const (
	// KindMaven is a published package addressed by a coordinate.
	KindMaven DependencyKind = iota
	// KindLocal is a reference to another project on disk.
	KindLocal
)

// Dependency is a resolved dependency. Values are immutable once created.
type Dependency struct {
	Kind DependencyKind

	Group    string
	Artifact string
	Version  string
	// LanguageVariant marks a coordinate written with '::', whose artifact name
	// carries the language binary version suffix.
	LanguageVariant bool
	// LanguageSuffix pins the binary version suffix explicitly (group::artifact@2.13:version).
	LanguageSuffix string

	// Path is the project-relative path of a local reference.
	Path string
	// Base is the directory Path is relative to. It is not part of the coordinate.
	Base string
}

// NewMavenDependency returns a published-package dependency.
func NewMavenDependency(group, artifact, version string, languageVariant bool) Dependency {
	return Dependency{
		Kind:            KindMaven,
		Group:           group,
		Artifact:        artifact,
		Version:         version,
		LanguageVariant: languageVariant,
	}
}

// NewLocalDependency returns a reference to the project at path.
func NewLocalDependency(path string) Dependency {
	return Dependency{Kind: KindLocal, Path: path}
}

// IsLocal reports whether d references a project on disk.
func (d Dependency) IsLocal() bool {
	return d.Kind == KindLocal
}

// NeedsVersion reports whether d must be pinned against the package index before use.
func (d Dependency) NeedsVersion() bool {
	return d.Kind == KindMaven && IsVersionConstraint(d.Version)
}

// WithBase returns a copy of d whose local path is relative to dir.
func (d Dependency) WithBase(dir string) Dependency {
	d.Base = dir
	return d
}

// LocalDir returns the directory a local reference points at.
func (d Dependency) LocalDir() string {
	if filepath.IsAbs(d.Path) || d.Base == "" {
		return filepath.Clean(d.Path)
	}
	return filepath.Join(d.Base, d.Path)
}

// Concrete returns d with the language suffix folded into the artifact name for
// languageVersion, so that it reads the same to every backend.
func (d Dependency) Concrete(languageVersion string) Dependency {
	if d.Kind == KindLocal || (!d.LanguageVariant && d.LanguageSuffix == "") {
		return d
	}
	return NewMavenDependency(d.Group, d.ArtifactName(languageVersion), d.Version, false)
}

// WithVersion returns a copy of d pinned to version.
func (d Dependency) WithVersion(version string) Dependency {
	d.Version = version
	return d
}

// Coordinate returns the canonical string form of d. It is the identity used for
// deduplication and cache keys.
func (d Dependency) Coordinate() string {
	if d.Kind == KindLocal {
		return d.Path
	}

	sep := ":"
	if d.LanguageVariant {
		sep = "::"
	}

	artifact := d.Artifact
	if d.LanguageSuffix != "" {
		artifact += "@" + d.LanguageSuffix
	}

	coordinate := d.Group + sep + artifact
	if d.Version != "" {
		coordinate += ":" + d.Version
	}
	return coordinate
}

// ArtifactName returns the published artifact name for the given language version.
// An explicit suffix wins over the one derived from languageVersion.
func (d Dependency) ArtifactName(languageVersion string) string {
	switch {
	case d.LanguageSuffix != "":
		return d.Artifact + "_" + d.LanguageSuffix
	case d.LanguageVariant && languageVersion != "":
		return d.Artifact + "_" + BinaryVersion(languageVersion)
	default:
		return d.Artifact
	}
}

// ToolCoordinate returns the coordinate in the form external tools accept.
// An explicit suffix is folded into the artifact name.
func (d Dependency) ToolCoordinate() string {
	if d.Kind == KindLocal || d.LanguageSuffix == "" {
		return d.Coordinate()
	}
	coordinate := d.Group + ":" + d.Artifact + "_" + d.LanguageSuffix
	if d.Version != "" {
		coordinate += ":" + d.Version
	}
	return coordinate
}

// BinaryVersion returns the binary compatibility version of a language version:
// "3" for 3.x releases and "major.minor" otherwise.
func BinaryVersion(languageVersion string) string {
	parts := strings.Split(languageVersion, ".")
	if parts[0] == "3" || len(parts) < 2 {
		return parts[0]
	}
	return parts[0] + "." + parts[1]
}

// ParseCoordinate parses group::artifact[@suffix][:version] and group:artifact[:version].
// A missing version or the latest keyword leaves the dependency unpinned.
func ParseCoordinate(s string) (Dependency, error) {
	invalid := func() (Dependency, error) {
		return Dependency{}, zerr.With(ErrInvalidCoordinate, "coordinate", s)
	}

	var group, rest string
	variant := false
	if g, r, ok := strings.Cut(s, "::"); ok {
		group, rest, variant = g, r, true
	} else {
		g, r, ok := strings.Cut(s, ":")
		if !ok {
			return invalid()
		}
		group, rest = g, r
	}

	artifact, version, hasVersion := strings.Cut(rest, ":")
	if strings.Contains(version, ":") || (hasVersion && version == "") {
		return invalid()
	}

	var suffix string
	if a, sfx, ok := strings.Cut(artifact, "@"); ok {
		if !variant || sfx == "" {
			return invalid()
		}
		artifact, suffix = a, sfx
	}

	if !isCoordinatePart(group) || !isCoordinatePart(artifact) {
		return invalid()
	}
	if version != "" && !ValidDependencyVersion(version) {
		return Dependency{}, zerr.With(zerr.With(ErrInvalidVersion, "coordinate", s), "version", version)
	}

	dep := NewMavenDependency(group, artifact, version, variant)
	dep.LanguageSuffix = suffix
	return dep, nil
}

func isCoordinatePart(s string) bool {
	return s != "" && !strings.ContainsAny(s, " \t\n/@")
}

// IsLocalKey reports whether a dependency key names a path to another project rather than a coordinate.
func IsLocalKey(name string) bool {
	if strings.HasPrefix(name, localKeyPrefix) {
		return true
	}
	return strings.Contains(name, "/") && !strings.Contains(name, ":")
}

// LocalPath returns the path named by a local dependency key.
func LocalPath(name string) string {
	return strings.TrimPrefix(name, localKeyPrefix)
}

// SimpleCoordinate builds the coordinate of a simple spec. A value that already
// contains a ':' is a full coordinate and is used verbatim; otherwise it is the version
// appended to the dependency key.
func SimpleCoordinate(name, value string) string {
	if strings.Contains(value, ":") {
		return value
	}
	return name + ":" + value
}

// ValidVersion reports whether version is a well-formed version string or the latest keyword.
func ValidVersion(version string) bool {
	return validVersionRegex.MatchString(version)
}

// ValidDependencyVersion reports whether version is a concrete version or a constraint
// the package index can resolve.
func ValidDependencyVersion(version string) bool {
	return ValidVersion(version) || (version != "" && IsVersionConstraint(version))
}

// IsVersionConstraint reports whether version names a set of versions rather than one:
// empty, latest, stable, a range such as [1.0,2.0), or a comma-separated list of options.
func IsVersionConstraint(version string) bool {
	switch {
	case version == "", version == LatestKeyword, version == StableKeyword:
		return true
	case versionRangeRegex.MatchString(version):
		return true
	}
	options := strings.Split(version, ",")
	if len(options) < 2 {
		return false
	}
	for _, option := range options {
		if !validVersionRegex.MatchString(strings.TrimSpace(option)) {
			return false
		}
	}
	return true
}

// VersionRange is a parsed range constraint. Empty bounds are open.
type VersionRange struct {
	Min          string
	MinInclusive bool
	Max          string
	MaxInclusive bool
}

// ParseVersionRange parses a range constraint such as [1.0,2.0).
func ParseVersionRange(constraint string) (VersionRange, bool) {
	m := versionRangeRegex.FindStringSubmatch(constraint)
	if m == nil {
		return VersionRange{}, false
	}
	return VersionRange{
		Min:          m[1],
		MinInclusive: constraint[0] == '[',
		Max:          m[2],
		MaxInclusive: constraint[len(constraint)-1] == ']',
	}, true
}

// VersionOptions splits a comma-separated list of acceptable versions, in order of preference.
func VersionOptions(constraint string) []string {
	options := strings.Split(constraint, ",")
	for i := range options {
		options[i] = strings.TrimSpace(options[i])
	}
	return options
}
