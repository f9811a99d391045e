package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
}

func TestWalker_SortedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "a")
	writeFile(t, filepath.Join(root, "a", "b.scala"), "b")
	writeFile(t, filepath.Join(root, ".git", "config"), "git")
	writeFile(t, filepath.Join(root, ".scala-build", "cache"), "scratch")
	writeFile(t, filepath.Join(root, "ignored", "file"), "ignored")
	writeFile(t, filepath.Join(root, "z", "c.scala"), "c")

	files, err := fs.NewWalker().SortedFiles(root, []string{"ignored"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "a", "b.scala"),
		filepath.Join(root, "z", "c.scala"),
	}, files)
}

func TestWalker_SortedFiles_AbsoluteIgnore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Main.scala"), "main")
	writeFile(t, filepath.Join(root, "out", "Main.class"), "class")
	writeFile(t, filepath.Join(root, "lib", "out", "Lib.scala"), "lib")

	files, err := fs.NewWalker().SortedFiles(root, []string{filepath.Join(root, "out")})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "Main.scala"),
		filepath.Join(root, "lib", "out", "Lib.scala"),
	}, files)
}

func TestWalker_SortedFiles_MissingRoot(t *testing.T) {
	files, err := fs.NewWalker().SortedFiles(filepath.Join(t.TempDir(), "missing"), nil)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestWalker_WalkFiles_StopsEarly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "1"), "1")
	writeFile(t, filepath.Join(root, "2"), "2")
	writeFile(t, filepath.Join(root, "3"), "3")

	var seen []string
	for path := range fs.NewWalker().WalkFiles(root, nil) {
		seen = append(seen, path)
		if len(seen) == 2 {
			break
		}
	}
	assert.Len(t, seen, 2)
	assert.True(t, slices.IsSorted(seen))
}

func TestFingerprinter_Fingerprint(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Main.scala"), "object Main")

	f := fs.NewFingerprinter(fs.NewWalker())

	first, err := f.Fingerprint(root)
	require.NoError(t, err)

	again, err := f.Fingerprint(root)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	writeFile(t, filepath.Join(root, "Main.scala"), "object Main2")
	changed, err := f.Fingerprint(root)
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)

	writeFile(t, filepath.Join(root, ".scala-build", "noise"), "noise")
	noisy, err := f.Fingerprint(root)
	require.NoError(t, err)
	assert.Equal(t, changed, noisy)
}

func TestFingerprinter_ComputeFileHash_Missing(t *testing.T) {
	f := fs.NewFingerprinter(fs.NewWalker())
	_, err := f.ComputeFileHash(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
