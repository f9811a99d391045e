package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/watcher"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func waitForEvent(t *testing.T, events <-chan ports.WatchEvent, match func(ports.WatchEvent) bool) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case event, ok := <-events:
			require.True(t, ok, "event stream closed")
			if match(event) {
				return
			}
		case <-timeout:
			t.Fatal("timed out waiting for file event")
		}
	}
}

func TestWatcher_ReportsChanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	root := t.TempDir()
	src := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(src, domain.DirPerm))

	w, err := watcher.NewWatcher(logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, root))
	defer func() { _ = w.Stop() }()

	events := make(chan ports.WatchEvent, 100)
	go func() {
		defer close(events)
		for event := range w.Events() {
			events <- event
		}
	}()

	mainFile := filepath.Join(src, "Main.scala")
	require.NoError(t, os.WriteFile(mainFile, []byte("object Main"), domain.FilePerm))
	waitForEvent(t, events, func(e ports.WatchEvent) bool { return e.Path == mainFile })

	nested := filepath.Join(src, "pkg")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))
	waitForEvent(t, events, func(e ports.WatchEvent) bool {
		return e.Path == nested && e.Operation == ports.OpCreate
	})

	nestedFile := filepath.Join(nested, "Util.scala")
	require.Eventually(t, func() bool {
		_ = os.WriteFile(nestedFile, []byte("object Util"), domain.FilePerm)
		select {
		case e := <-events:
			return e.Path == nestedFile
		case <-time.After(100 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWatcher_EventsEndOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	w, err := watcher.NewWatcher(logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx, t.TempDir()))
	defer func() { _ = w.Stop() }()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range w.Events() {
		}
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("event stream did not end")
	}
}

func TestInSkippedDir(t *testing.T) {
	require.True(t, watcher.InSkippedDir("/work/src/.scala-build/state"))
	require.True(t, watcher.InSkippedDir("/work/.kiln/cache/index.json"))
	require.True(t, watcher.InSkippedDir("/work/src/.bsp"))
	require.False(t, watcher.InSkippedDir("/work/src/Main.scala"))
	require.False(t, watcher.InSkippedDir("Main.scala"))
}
