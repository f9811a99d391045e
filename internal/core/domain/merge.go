package domain

import (
	"maps"
	"slices"

	"go.trai.ch/zerr"
)

// MergeDependencies resolves a project's declared dependencies into its effective direct
// dependency list. Workspace-flagged entries take their definition from ws, which may be nil
// for a standalone project. The result is ordered by dependency key and unique by coordinate.
func MergeDependencies(deps map[string]DependencySpec, ws *WorkspaceConfig) ([]Dependency, error) {
	names := slices.Sorted(maps.Keys(deps))

	seen := make(map[string]struct{}, len(names))
	merged := make([]Dependency, 0, len(names))
	for _, name := range names {
		dep, err := mergeDependency(name, deps[name], ws, false)
		if err != nil {
			return nil, err
		}

		coordinate := dep.Coordinate()
		if _, dup := seen[coordinate]; dup {
			continue
		}
		seen[coordinate] = struct{}{}
		merged = append(merged, dep)
	}

	return merged, nil
}

func mergeDependency(name string, spec DependencySpec, ws *WorkspaceConfig, viaWorkspace bool) (Dependency, error) {
	if name == "" {
		return Dependency{}, Classify(ErrManifest, ErrEmptyDependencyName)
	}

	if IsLocalKey(name) {
		return NewLocalDependency(LocalPath(name)), nil
	}

	if spec.Kind == SpecSimple {
		if spec.Value == "" {
			return Dependency{}, Classify(ErrManifest, zerr.With(ErrEmptyDependencySpec, "dependency", name))
		}
		return parseMerged(SimpleCoordinate(name, spec.Value))
	}

	if spec.Workspace {
		return mergeFromWorkspace(name, spec, ws, viaWorkspace)
	}

	if spec.Version == "" {
		return Dependency{}, Classify(ErrManifest, zerr.With(ErrMissingVersion, "dependency", name))
	}
	return parseMerged(name + ":" + spec.Version)
}

func mergeFromWorkspace(name string, spec DependencySpec, ws *WorkspaceConfig, viaWorkspace bool) (Dependency, error) {
	if viaWorkspace {
		return Dependency{}, Classify(ErrResolution, zerr.With(ErrWorkspaceDependencyCycle, "dependency", name))
	}
	if spec.Version != "" {
		err := zerr.With(ErrWorkspaceVersionConflict, "dependency", name)
		return Dependency{}, Classify(ErrManifest, zerr.With(err, "version", spec.Version))
	}

	var wsSpec DependencySpec
	found := false
	if ws != nil {
		wsSpec, found = ws.Dependencies[name]
	}
	if !found {
		return Dependency{}, Classify(ErrResolution, zerr.With(ErrWorkspaceDependencyMissing, "dependency", name))
	}

	return mergeDependency(name, wsSpec, ws, true)
}

func parseMerged(coordinate string) (Dependency, error) {
	dep, err := ParseCoordinate(coordinate)
	if err != nil {
		return Dependency{}, Classify(ErrResolution, err)
	}
	return dep, nil
}
