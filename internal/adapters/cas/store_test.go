package cas_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/cas"
	kilnfs "go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func newStore(t *testing.T, opts ports.CacheOptions) (*cas.Store, *time.Time) {
	t.Helper()
	now := epoch
	store := cas.NewStoreWithClock(filepath.Join(t.TempDir(), "cache"), opts, func() time.Time { return now })
	require.NoError(t, store.Init())
	return store, &now
}

func TestStore_Hash(t *testing.T) {
	store, _ := newStore(t, ports.CacheOptions{})

	src := t.TempDir()
	writeFile(t, filepath.Join(src, "Main.scala"), "object Main")
	writeFile(t, filepath.Join(src, "util", "Util.scala"), "object Util")

	coords := []string{"org.typelevel::cats-core:2.10.0", "org.slf4j:slf4j-api:2.0.9"}

	first, err := store.Hash(src, coords)
	require.NoError(t, err)
	assert.Len(t, first, 64)

	again, err := store.Hash(src, coords)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	reordered, err := store.Hash(src, []string{coords[1], coords[0]})
	require.NoError(t, err)
	assert.NotEqual(t, first, reordered)

	writeFile(t, filepath.Join(src, "Main.scala"), "object Main {}")
	changed, err := store.Hash(src, coords)
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)
}

func TestStore_Hash_SkipsScratchDirs(t *testing.T) {
	store, _ := newStore(t, ports.CacheOptions{})

	src := t.TempDir()
	writeFile(t, filepath.Join(src, "Main.scala"), "object Main")
	before, err := store.Hash(src, nil)
	require.NoError(t, err)

	writeFile(t, filepath.Join(src, ".scala-build", "state"), "ignored")
	after, err := store.Hash(src, nil)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStore_Hash_SkipsExcludedDirs(t *testing.T) {
	src := t.TempDir()
	target := filepath.Join(src, "target")
	store, _ := newStore(t, ports.CacheOptions{Exclude: []string{target}})

	writeFile(t, filepath.Join(src, "Main.scala"), "object Main")
	before, err := store.Hash(src, nil)
	require.NoError(t, err)

	writeFile(t, filepath.Join(target, "Main.class"), "bytecode")
	after, err := store.Hash(src, nil)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	writeFile(t, filepath.Join(src, "pkg", "target", "Util.scala"), "object Util")
	nested, err := store.Hash(src, nil)
	require.NoError(t, err)
	assert.NotEqual(t, before, nested, "only the excluded path is skipped, not every directory with that name")
}

func TestStore_Hash_MissingSourceDir(t *testing.T) {
	store, _ := newStore(t, ports.CacheOptions{})

	missing, err := store.Hash(filepath.Join(t.TempDir(), "nope"), []string{"a:b:1"})
	require.NoError(t, err)

	empty, err := store.Hash(t.TempDir(), []string{"a:b:1"})
	require.NoError(t, err)
	assert.Equal(t, empty, missing)
}

func TestStore_SaveRestore(t *testing.T) {
	store, _ := newStore(t, ports.CacheOptions{})

	target := t.TempDir()
	writeFile(t, filepath.Join(target, "main.jar"), "jar")
	writeFile(t, filepath.Join(target, "classes", "Main.class"), "class")

	require.False(t, store.Has("abc"))
	require.NoError(t, store.Save("abc", target))
	assert.True(t, store.Has("abc"))

	restoreDir := t.TempDir()
	missing, err := store.Restore("abc", restoreDir)
	require.NoError(t, err)
	assert.Empty(t, missing)

	got, err := os.ReadFile(filepath.Join(restoreDir, "classes", "Main.class"))
	require.NoError(t, err)
	assert.Equal(t, "class", string(got))
	got, err = os.ReadFile(filepath.Join(restoreDir, "main.jar"))
	require.NoError(t, err)
	assert.Equal(t, "jar", string(got))
}

func TestStore_SaveReplacesEntry(t *testing.T) {
	store, _ := newStore(t, ports.CacheOptions{})

	target := t.TempDir()
	writeFile(t, filepath.Join(target, "old.class"), "old")
	require.NoError(t, store.Save("abc", target))

	require.NoError(t, os.Remove(filepath.Join(target, "old.class")))
	writeFile(t, filepath.Join(target, "new.class"), "new")
	require.NoError(t, store.Save("abc", target))

	_, err := os.Stat(filepath.Join(store.Root(), "abc", "old.class"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, 1, stats.Outputs)
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	root := filepath.Join(t.TempDir(), "cache")
	clock := func() time.Time { return epoch }

	target := t.TempDir()
	writeFile(t, filepath.Join(target, "Main.class"), "class")

	first := cas.NewStoreWithClock(root, ports.CacheOptions{}, clock)
	require.NoError(t, first.Init())
	require.NoError(t, first.Save("abc", target))

	second := cas.NewStoreWithClock(root, ports.CacheOptions{}, clock)
	require.NoError(t, second.Init())
	assert.True(t, second.Has("abc"))
}

func TestStore_InitPrunesMissingEntries(t *testing.T) {
	root := filepath.Join(t.TempDir(), "cache")
	clock := func() time.Time { return epoch }

	target := t.TempDir()
	writeFile(t, filepath.Join(target, "Main.class"), "class")

	first := cas.NewStoreWithClock(root, ports.CacheOptions{}, clock)
	require.NoError(t, first.Init())
	require.NoError(t, first.Save("abc", target))
	require.NoError(t, os.RemoveAll(filepath.Join(root, "abc")))

	second := cas.NewStoreWithClock(root, ports.CacheOptions{}, clock)
	require.NoError(t, second.Init())
	assert.False(t, second.Has("abc"))
}

func TestStore_RestoreMissingOutput(t *testing.T) {
	target := t.TempDir()
	writeFile(t, filepath.Join(target, "a.class"), "a")
	writeFile(t, filepath.Join(target, "b.class"), "b")

	t.Run("lenient", func(t *testing.T) {
		store, _ := newStore(t, ports.CacheOptions{})
		require.NoError(t, store.Save("abc", target))
		require.NoError(t, os.Remove(filepath.Join(store.Root(), "abc", "b.class")))

		restoreDir := t.TempDir()
		missing, err := store.Restore("abc", restoreDir)
		require.NoError(t, err)
		assert.Equal(t, []string{"b.class"}, missing)
		assert.FileExists(t, filepath.Join(restoreDir, "a.class"))
	})

	t.Run("strict", func(t *testing.T) {
		store, _ := newStore(t, ports.CacheOptions{Strict: true})
		require.NoError(t, store.Save("abc", target))
		require.NoError(t, os.Remove(filepath.Join(store.Root(), "abc", "b.class")))

		_, err := store.Restore("abc", t.TempDir())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCache)
		assert.ErrorContains(t, err, domain.ErrCacheEntryIncomplete.Error())
	})
}

func TestStore_RestoreUnknownHash(t *testing.T) {
	store, _ := newStore(t, ports.CacheOptions{})

	_, err := store.Restore("nope", t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCache)
	assert.ErrorContains(t, err, domain.ErrCacheEntryNotFound.Error())
}

func TestStore_NotInitialized(t *testing.T) {
	store := cas.NewStore(filepath.Join(t.TempDir(), "cache"), kilnfs.NewWalker(), ports.CacheOptions{})

	assert.False(t, store.Has("abc"))

	_, err := store.Restore("abc", t.TempDir())
	require.ErrorIs(t, err, domain.ErrCacheNotInitialized)

	err = store.Save("abc", t.TempDir())
	require.ErrorIs(t, err, domain.ErrCacheNotInitialized)

	_, err = store.Stats()
	require.ErrorIs(t, err, domain.ErrCacheNotInitialized)

	_, err = store.Expire(time.Hour)
	require.ErrorIs(t, err, domain.ErrCacheNotInitialized)
}

func TestStore_CorruptIndex(t *testing.T) {
	root := filepath.Join(t.TempDir(), "cache")
	writeFile(t, filepath.Join(root, domain.IndexFileName), "{not json")

	store := cas.NewStore(root, kilnfs.NewWalker(), ports.CacheOptions{})
	err := store.Init()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCache)
	assert.ErrorContains(t, err, domain.ErrCacheIndexUnmarshalFailed.Error())
}

func TestStore_EmptyIndexFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "cache")
	writeFile(t, filepath.Join(root, domain.IndexFileName), "")

	store := cas.NewStore(root, kilnfs.NewWalker(), ports.CacheOptions{})
	require.NoError(t, store.Init())
	assert.False(t, store.Has("abc"))
}

func TestStore_Expire(t *testing.T) {
	store, now := newStore(t, ports.CacheOptions{})

	target := t.TempDir()
	writeFile(t, filepath.Join(target, "Main.class"), "class")

	require.NoError(t, store.Save("old", target))
	*now = epoch.Add(48 * time.Hour)
	require.NoError(t, store.Save("new", target))

	removed, err := store.Expire(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.False(t, store.Has("old"))
	assert.True(t, store.Has("new"))
	assert.NoDirExists(t, filepath.Join(store.Root(), "old"))

	removed, err = store.Expire(24 * time.Hour)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestStore_Stats(t *testing.T) {
	store, now := newStore(t, ports.CacheOptions{})

	target := t.TempDir()
	writeFile(t, filepath.Join(target, "a.class"), "1234")
	writeFile(t, filepath.Join(target, "b.class"), "12")
	require.NoError(t, store.Save("first", target))

	*now = epoch.Add(time.Hour)
	require.NoError(t, store.Save("second", target))

	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, 4, stats.Outputs)
	assert.Equal(t, int64(12), stats.Bytes)
	assert.Equal(t, epoch, stats.Oldest)
	assert.Equal(t, epoch.Add(time.Hour), stats.Newest)
}

func TestStore_Clear(t *testing.T) {
	store, _ := newStore(t, ports.CacheOptions{})

	target := t.TempDir()
	writeFile(t, filepath.Join(target, "Main.class"), "class")
	require.NoError(t, store.Save("abc", target))

	require.NoError(t, store.Clear())
	assert.False(t, store.Has("abc"))
	assert.NoDirExists(t, store.Root())

	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Zero(t, stats.Entries)
}

func TestStore_IndexFormat(t *testing.T) {
	store, _ := newStore(t, ports.CacheOptions{})

	target := t.TempDir()
	writeFile(t, filepath.Join(target, "main.jar"), "jar")
	writeFile(t, filepath.Join(target, "classes", "Main.class"), "class")
	require.NoError(t, store.Save("3f2a", target))

	data, err := os.ReadFile(filepath.Join(store.Root(), domain.IndexFileName))
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "index", data)
}

func TestFactory_Open(t *testing.T) {
	projectRoot := t.TempDir()
	factory := cas.NewFactory(kilnfs.NewWalker())

	cache, err := factory.Open(projectRoot, ports.CacheOptions{})
	require.NoError(t, err)
	assert.NotNil(t, cache)
	assert.DirExists(t, domain.CachePath(projectRoot))
}
