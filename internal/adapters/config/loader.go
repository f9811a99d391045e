// Package config loads kiln.yaml manifests and discovers workspaces.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ManifestLoader using YAML files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// location is the outcome of manifest discovery.
type location struct {
	// root is the directory of the governing manifest.
	root     string
	manifest *domain.Manifest
	// member is the cleaned member path cwd belongs to, or "" to select every project.
	member string
}

// Load discovers the manifest governing cwd and returns the selected projects.
func (l *Loader) Load(cwd string) (*domain.Workspace, error) {
	loc, err := l.locate(cwd)
	if err != nil {
		return nil, err
	}

	if loc.manifest.Workspace == nil {
		project, err := newProject(loc.root, loc.root, loc.manifest)
		if err != nil {
			return nil, err
		}
		return &domain.Workspace{Root: loc.root, Projects: []*domain.Project{project}}, nil
	}

	ws := &domain.Workspace{Root: loc.root, Config: loc.manifest.Workspace}

	if loc.manifest.Package != nil && loc.member == "" {
		project, err := newProject(loc.root, loc.root, loc.manifest)
		if err != nil {
			return nil, err
		}
		ws.Projects = append(ws.Projects, project)
	}

	for _, member := range loc.manifest.Workspace.Members {
		member = filepath.Clean(member)
		if loc.member != "" && member != loc.member {
			continue
		}
		project, err := l.loadMember(loc.root, member)
		if err != nil {
			return nil, err
		}
		ws.Projects = append(ws.Projects, project)
	}

	return ws, nil
}

// DiscoverRoot returns the directory of the manifest governing cwd.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	loc, err := l.locate(cwd)
	if err != nil {
		return "", err
	}
	return loc.root, nil
}

// locate walks up from cwd. The nearest manifest wins unless an ancestor workspace
// lists the nearest manifest's directory as a member, in which case the workspace
// governs and only that member is selected.
func (l *Loader) locate(cwd string) (*location, error) {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve working directory")
	}

	var nearest *location
	for dir := abs; ; {
		path := filepath.Join(dir, domain.ManifestFileName)
		if _, statErr := os.Stat(path); statErr == nil {
			manifest, err := readManifest(path)
			if err != nil {
				return nil, err
			}

			if nearest == nil {
				nearest = &location{root: dir, manifest: manifest}
				if manifest.Workspace != nil {
					return nearest, nil
				}
			} else if manifest.Workspace != nil {
				rel, relErr := filepath.Rel(dir, nearest.root)
				if relErr == nil && isMember(manifest.Workspace, rel) {
					return &location{root: dir, manifest: manifest, member: rel}, nil
				}
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if nearest == nil {
		return nil, domain.Classify(domain.ErrManifest, zerr.With(domain.ErrManifestNotFound, "cwd", cwd))
	}
	return nearest, nil
}

func isMember(ws *domain.WorkspaceConfig, rel string) bool {
	for _, member := range ws.Members {
		if filepath.Clean(member) == rel {
			return true
		}
	}
	return false
}

func (l *Loader) loadMember(root, member string) (*domain.Project, error) {
	dir := filepath.Join(root, member)
	path := filepath.Join(dir, domain.ManifestFileName)

	// A member is a local project reference: a missing directory is a resolution failure,
	// a directory without a manifest is a manifest problem.
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		notFound := zerr.With(domain.ErrLocalPathNotFound, "member", member)
		return nil, domain.Classify(domain.ErrResolution, zerr.With(notFound, "resolved", dir))
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, domain.Classify(domain.ErrManifest, zerr.With(domain.ErrMemberManifestMissing, "member", member))
	}

	manifest, err := readManifest(path)
	if err != nil {
		return nil, err
	}

	if manifest.Workspace != nil {
		l.Logger.Warn(fmt.Sprintf("workspace table in member %s is ignored", member))
		manifest.Workspace = nil
	}

	return newProject(root, dir, manifest)
}

func newProject(wsRoot, dir string, manifest *domain.Manifest) (*domain.Project, error) {
	if manifest.Package == nil {
		err := zerr.With(domain.ErrMissingPackageName, "path", filepath.Join(dir, domain.ManifestFileName))
		return nil, domain.Classify(domain.ErrManifest, err)
	}

	rel, err := filepath.Rel(wsRoot, dir)
	if err != nil {
		rel = "."
	}
	return &domain.Project{Root: dir, RelPath: rel, Manifest: manifest}, nil
}

// readManifest reads, parses and validates the manifest at path.
func readManifest(path string) (*domain.Manifest, error) {
	// #nosec G304 -- path is built from a discovered directory
	data, err := os.ReadFile(path)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
		return nil, domain.Classify(domain.ErrManifest, err)
	}

	var dto Manifest
	if err := yaml.Unmarshal(data, &dto); err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "path", path)
		return nil, domain.Classify(domain.ErrManifest, err)
	}

	manifest := dto.toDomain()
	if err := manifest.Validate(); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return manifest, nil
}
