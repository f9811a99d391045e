// Package cas implements the content-addressed build cache.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	kilnfs "go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BuildCache = (*Store)(nil)

// Store implements ports.BuildCache with one directory per entry and a JSON index.
//
// Layout:
//
//	<root>/index.json
//	<root>/<hash>/<relative output path>
type Store struct {
	root    string
	strict  bool
	exclude []string
	walker  *kilnfs.Walker
	now     func() time.Time

	mu     sync.RWMutex
	index  domain.CacheIndex
	loaded bool
}

// NewStore creates a Store rooted at root. Call Init before using it.
func NewStore(root string, walker *kilnfs.Walker, opts ports.CacheOptions) *Store {
	return newStoreWithClock(root, walker, opts, time.Now)
}

func newStoreWithClock(root string, walker *kilnfs.Walker, opts ports.CacheOptions, now func() time.Time) *Store {
	return &Store{
		root:    filepath.Clean(root),
		strict:  opts.Strict,
		exclude: opts.Exclude,
		walker:  walker,
		now:     now,
	}
}

// Root returns the cache directory.
func (s *Store) Root() string {
	return s.root
}

// Init creates the cache directory and loads the index. Entries whose directory
// no longer exists are dropped from the in-memory index.
func (s *Store) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.root, domain.DirPerm); err != nil {
		return s.fail(zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "path", s.root))
	}

	index := make(domain.CacheIndex)

	//nolint:gosec // Path is built from the cache root
	data, err := os.ReadFile(s.indexPath())
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return s.fail(zerr.With(zerr.Wrap(err, domain.ErrCacheIndexReadFailed.Error()), "path", s.indexPath()))
	case len(data) > 0:
		if err := json.Unmarshal(data, &index); err != nil {
			return s.fail(zerr.With(zerr.Wrap(err, domain.ErrCacheIndexUnmarshalFailed.Error()), "path", s.indexPath()))
		}
	}

	for hash := range index {
		if _, err := os.Stat(s.entryDir(hash)); err != nil {
			delete(index, hash)
		}
	}

	s.index = index
	s.loaded = true
	return nil
}

// Has reports whether the index holds an entry for hash.
func (s *Store) Has(hash string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return false
	}
	_, ok := s.index[hash]
	return ok
}

// Restore copies the outputs recorded for hash into targetDir.
func (s *Store) Restore(hash, targetDir string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return nil, s.fail(domain.ErrCacheNotInitialized)
	}

	entry, ok := s.index[hash]
	if !ok {
		return nil, s.fail(zerr.With(domain.ErrCacheEntryNotFound, "hash", hash))
	}

	var missing []string
	for _, rel := range entry.Outputs {
		src := filepath.Join(s.entryDir(hash), filepath.FromSlash(rel))
		if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
			if s.strict {
				err := zerr.With(domain.ErrCacheEntryIncomplete, "hash", hash)
				return nil, s.fail(zerr.With(err, "output", rel))
			}
			missing = append(missing, rel)
			continue
		}

		dst := filepath.Join(targetDir, filepath.FromSlash(rel))
		if err := copyFile(src, dst); err != nil {
			return nil, s.fail(zerr.With(err, "output", rel))
		}
	}

	return missing, nil
}

// Save copies every file under targetDir into a fresh entry for hash and persists the index.
// A failed save leaves no entry directory behind.
func (s *Store) Save(hash, targetDir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return s.fail(domain.ErrCacheNotInitialized)
	}

	files, err := s.walker.SortedFiles(targetDir, nil)
	if err != nil {
		return s.fail(zerr.With(zerr.Wrap(err, domain.ErrCacheCopyFailed.Error()), "path", targetDir))
	}

	entryDir := s.entryDir(hash)
	if err := os.RemoveAll(entryDir); err != nil {
		return s.fail(zerr.With(zerr.Wrap(err, domain.ErrCacheRemoveFailed.Error()), "hash", hash))
	}

	outputs := make([]string, 0, len(files))
	for _, path := range files {
		rel, err := filepath.Rel(targetDir, path)
		if err != nil {
			_ = os.RemoveAll(entryDir)
			return s.fail(zerr.With(zerr.Wrap(err, domain.ErrCacheCopyFailed.Error()), "path", path))
		}
		if err := copyFile(path, filepath.Join(entryDir, rel)); err != nil {
			_ = os.RemoveAll(entryDir)
			return s.fail(err)
		}
		outputs = append(outputs, filepath.ToSlash(rel))
	}
	slices.Sort(outputs)

	if err := os.MkdirAll(entryDir, domain.DirPerm); err != nil {
		return s.fail(zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "path", entryDir))
	}

	previous, existed := s.index[hash]
	s.index[hash] = domain.CacheEntry{
		Hash:      hash,
		Timestamp: s.now().UTC(),
		Outputs:   outputs,
	}

	if err := s.persist(); err != nil {
		if existed {
			s.index[hash] = previous
		} else {
			delete(s.index, hash)
		}
		_ = os.RemoveAll(entryDir)
		return s.fail(err)
	}
	return nil
}

// Expire removes entries older than maxAge together with their directories.
func (s *Store) Expire(maxAge time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return 0, s.fail(domain.ErrCacheNotInitialized)
	}

	cutoff := s.now().Add(-maxAge)
	removed := 0
	for hash, entry := range s.index {
		if !entry.Timestamp.Before(cutoff) {
			continue
		}
		if err := os.RemoveAll(s.entryDir(hash)); err != nil {
			return removed, s.fail(zerr.With(zerr.Wrap(err, domain.ErrCacheRemoveFailed.Error()), "hash", hash))
		}
		delete(s.index, hash)
		removed++
	}

	if removed == 0 {
		return 0, nil
	}
	if err := s.persist(); err != nil {
		return removed, s.fail(err)
	}
	return removed, nil
}

// Stats summarizes the entries in the index and their size on disk.
func (s *Store) Stats() (domain.CacheStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats domain.CacheStats
	if !s.loaded {
		return stats, s.fail(domain.ErrCacheNotInitialized)
	}

	for hash, entry := range s.index {
		stats.Entries++
		stats.Outputs += len(entry.Outputs)
		if stats.Oldest.IsZero() || entry.Timestamp.Before(stats.Oldest) {
			stats.Oldest = entry.Timestamp
		}
		if entry.Timestamp.After(stats.Newest) {
			stats.Newest = entry.Timestamp
		}

		for _, rel := range entry.Outputs {
			info, err := os.Stat(filepath.Join(s.entryDir(hash), filepath.FromSlash(rel)))
			if err != nil {
				continue
			}
			stats.Bytes += info.Size()
		}
	}
	return stats, nil
}

// Clear removes the whole cache directory and empties the index.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.RemoveAll(s.root); err != nil {
		return s.fail(zerr.With(zerr.Wrap(err, domain.ErrCacheRemoveFailed.Error()), "path", s.root))
	}
	s.index = make(domain.CacheIndex)
	s.loaded = true
	return nil
}

// persist writes the index through a temporary file and a rename so readers never
// observe a partial index. Must be called with mu held.
func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.index, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheIndexWriteFailed.Error())
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(s.root, "index-*.json.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheIndexWriteFailed.Error()), "path", s.root)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, domain.ErrCacheIndexWriteFailed.Error())
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrCacheIndexWriteFailed.Error())
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrCacheIndexWriteFailed.Error())
	}
	if err := os.Rename(tmpName, s.indexPath()); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheIndexWriteFailed.Error()), "path", s.indexPath())
	}
	return nil
}

func (s *Store) fail(err error) error {
	return domain.Classify(domain.ErrCache, err)
}

func (s *Store) indexPath() string {
	return filepath.Join(s.root, domain.IndexFileName)
}

func (s *Store) entryDir(hash string) string {
	return filepath.Join(s.root, hash)
}
