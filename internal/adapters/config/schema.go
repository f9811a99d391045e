package config

import (
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Manifest represents the structure of a kiln.yaml file.
type Manifest struct {
	Package      *PackageDTO        `yaml:"package"`
	Dependencies map[string]SpecDTO `yaml:"dependencies"`
	Workspace    *WorkspaceDTO      `yaml:"workspace"`
	Cache        *CacheDTO          `yaml:"cache"`
}

// CacheDTO represents the cache table.
type CacheDTO struct {
	Strict bool `yaml:"strict"`
}

// PackageDTO represents the package table.
type PackageDTO struct {
	Name         string `yaml:"name"`
	Version      string `yaml:"version"`
	Main         string `yaml:"main"`
	ScalaVersion string `yaml:"scala-version"`
	SourceDir    string `yaml:"source-dir"`
	TargetDir    string `yaml:"target-dir"`
	TestDir      string `yaml:"test-dir"`
	Backend      string `yaml:"backend"`
}

// WorkspaceDTO represents the workspace table.
type WorkspaceDTO struct {
	Members      []string           `yaml:"members"`
	Dependencies map[string]SpecDTO `yaml:"dependencies"`
}

// SpecDTO is a dependency value, written either as a string or as a table.
type SpecDTO struct {
	Spec domain.DependencySpec
}

type detailedSpecDTO struct {
	Version   string `yaml:"version"`
	Workspace bool   `yaml:"workspace"`
}

// UnmarshalYAML decodes a scalar into a simple spec and a mapping into a detailed spec.
func (s *SpecDTO) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			s.Spec = domain.SimpleSpec("")
			return nil
		}
		s.Spec = domain.SimpleSpec(node.Value)
		return nil
	case yaml.MappingNode:
		var raw detailedSpecDTO
		if err := node.Decode(&raw); err != nil {
			return err
		}
		s.Spec = domain.DetailedSpec(raw.Version, raw.Workspace)
		return nil
	default:
		return zerr.With(zerr.New("dependency must be a version string or a table"), "line", node.Line)
	}
}

func (m *Manifest) toDomain() *domain.Manifest {
	out := &domain.Manifest{
		Dependencies: specsToDomain(m.Dependencies),
	}
	if m.Package != nil {
		out.Package = &domain.Package{
			Name:         m.Package.Name,
			Version:      m.Package.Version,
			Main:         m.Package.Main,
			ScalaVersion: m.Package.ScalaVersion,
			SourceDir:    m.Package.SourceDir,
			TargetDir:    m.Package.TargetDir,
			TestDir:      m.Package.TestDir,
			Backend:      m.Package.Backend,
		}
	}
	if m.Cache != nil {
		out.Cache = domain.CacheSettings{Strict: m.Cache.Strict}
	}
	if m.Workspace != nil {
		out.Workspace = &domain.WorkspaceConfig{
			Members:      m.Workspace.Members,
			Dependencies: specsToDomain(m.Workspace.Dependencies),
		}
	}
	return out
}

func specsToDomain(in map[string]SpecDTO) map[string]domain.DependencySpec {
	out := make(map[string]domain.DependencySpec, len(in))
	for name, dto := range in {
		out[name] = dto.Spec
	}
	return out
}
