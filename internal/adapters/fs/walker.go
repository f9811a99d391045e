// Package fs provides file system adapters for walking and fingerprinting directory trees.
package fs

import (
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
)

// skippedDirs are never descended into.
var skippedDirs = []string{".git", ".jj", ".bsp", ".scala-build", ".kiln"}

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields the path of every regular file under root in directory order.
// VCS, toolchain scratch and kiln metadata directories are skipped, as are names
// matching any of the ignore patterns. An absolute ignore pattern skips exactly that path.
// Unreadable entries end the walk early.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = walk(root, ignores, func(path string) error {
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// SortedFiles returns every regular file under root sorted lexicographically by full path.
// A missing root has no files.
func (w *Walker) SortedFiles(root string, ignores []string) ([]string, error) {
	var files []string
	err := walk(root, ignores, func(path string) error {
		files = append(files, path)
		return nil
	})
	if errors.Is(err, os.ErrNotExist) {
		if _, statErr := os.Stat(root); errors.Is(statErr, os.ErrNotExist) {
			return nil, nil
		}
	}
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

func walk(root string, ignores []string, fn func(path string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path != root {
			if d.IsDir() && (slices.Contains(skippedDirs, d.Name()) || ignored(path, ignores)) {
				return filepath.SkipDir
			}
			if ignored(path, ignores) {
				return nil
			}
		}

		if !d.Type().IsRegular() {
			return nil
		}
		return fn(path)
	})
}

func ignored(path string, ignores []string) bool {
	name := filepath.Base(path)
	for _, pattern := range ignores {
		if filepath.IsAbs(pattern) {
			if filepath.Clean(pattern) == path {
				return true
			}
			continue
		}
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
