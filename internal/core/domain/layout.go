package domain

import (
	"path/filepath"
	"strings"
)

const (
	// KilnDirName is the name of the per-project metadata directory.
	KilnDirName = ".kiln"

	// CacheDirName is the name of the build cache directory.
	CacheDirName = "cache"

	// IndexFileName is the name of the build cache index file.
	IndexFileName = "index.json"

	// ManifestFileName is the name of the project and workspace manifest.
	ManifestFileName = "kiln.yaml"

	// BundledBinDirName is the directory next to the kiln executable that may hold bundled tools.
	BundledBinDirName = "bin"

	// DefaultSourceDir is the source directory used when the manifest does not set one.
	DefaultSourceDir = "src"

	// DefaultTargetDir is the output directory used when the manifest does not set one.
	DefaultTargetDir = "target"

	// DefaultTestDir is the test source directory used when the manifest does not set one.
	DefaultTestDir = "test"

	// DefaultScalaVersion is the language version used when the manifest does not set one.
	DefaultScalaVersion = "3.3.1"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// ScratchDirs lists the directories the compiler toolchain leaves in a source tree.
var ScratchDirs = []string{".bsp", ".scala-build"}

// DefaultKilnPath returns the default root directory for kiln metadata.
func DefaultKilnPath() string {
	return KilnDirName
}

// DefaultCachePath returns the default path of the build cache relative to a project root.
// It joins .kiln and cache.
func DefaultCachePath() string {
	return filepath.Join(KilnDirName, CacheDirName)
}

// CachePath returns the build cache directory of the project rooted at projectRoot.
func CachePath(projectRoot string) string {
	return filepath.Join(projectRoot, DefaultCachePath())
}

// Within reports whether path equals dir or lies below it. Both must be absolute, or both relative.
func Within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
