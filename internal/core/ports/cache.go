package ports

import (
	"time"

	"go.trai.ch/kiln/internal/core/domain"
)

// BuildCache is a content-addressed store of build outputs for one project.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type BuildCache interface {
	// Init loads the index from disk. Every other method except Hash fails with
	// domain.ErrCacheNotInitialized until Init succeeds.
	Init() error

	// Hash computes the cache key of a source tree and its resolved dependency coordinates.
	Hash(sourceDir string, coordinates []string) (string, error)

	// Has reports whether the index holds an entry for hash.
	Has(hash string) bool

	// Restore copies the outputs recorded for hash into targetDir. In lenient mode it
	// returns the relative paths that were missing from the entry and skipped.
	Restore(hash, targetDir string) ([]string, error)

	// Save copies every file under targetDir into a new entry for hash and persists the index.
	Save(hash, targetDir string) error

	// Expire removes entries older than maxAge and returns how many were removed.
	Expire(maxAge time.Duration) (int, error)

	// Stats summarizes the cache contents.
	Stats() (domain.CacheStats, error)

	// Clear removes every entry together with the cache directory.
	Clear() error
}

// CacheOptions configure a build cache instance.
type CacheOptions struct {
	// Strict makes a restore fail when a recorded output is missing from its entry.
	Strict bool
	// Exclude lists absolute directories Hash leaves out, such as a target directory
	// nested under the sources.
	Exclude []string
}

// BuildCacheFactory opens the build cache of a project.
type BuildCacheFactory interface {
	// Open returns an initialized cache rooted under projectRoot.
	Open(projectRoot string, opts CacheOptions) (BuildCache, error)
}
