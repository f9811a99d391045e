package ports

import "go.trai.ch/kiln/internal/core/domain"

// ManifestLoader defines the interface for loading project and workspace manifests.
//
//go:generate mockgen -source=manifest_loader.go -destination=mocks/mock_manifest_loader.go -package=mocks
type ManifestLoader interface {
	// Load discovers the manifest governing cwd and returns the projects selected for it.
	// Invoked from a workspace root it returns every member in declared order; invoked
	// inside a member it returns only that member, still carrying the workspace config.
	Load(cwd string) (*domain.Workspace, error)

	// DiscoverRoot walks up from cwd and returns the directory of the outermost
	// manifest that governs it.
	DiscoverRoot(cwd string) (string, error)
}
