package app

import (
	"context"
	"fmt"

	"go.trai.ch/kiln/internal/adapters/watcher" //nolint:depguard // debouncing is shared with the adapter
	"go.trai.ch/kiln/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

const defaultDebounceWindow = watcher.DefaultDebounceWindow

// watch rebuilds the workspace whenever a source tree settles after a change.
// It returns nil once ctx is cancelled.
func (a *App) watch(ctx context.Context, ws *domain.Workspace, opts BuildOptions) error {
	fingerprints := make(map[string]uint64, len(ws.Projects))
	for _, project := range ws.Projects {
		dir := project.SourceDir()
		if err := a.watcher.Start(ctx, dir); err != nil {
			return err
		}
		if fp, err := a.fingerprinter.Fingerprint(dir); err == nil {
			fingerprints[dir] = fp
		}
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	a.logger.Info("watching for changes, press Ctrl+C to stop")

	changes := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(a.debounceWindow, func(paths []string) {
		select {
		case changes <- paths:
		default:
			// A rebuild is already queued and will see these changes too.
		}
	})
	defer debouncer.Stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case paths := <-changes:
				a.rebuild(ctx, ws, opts, fingerprints, paths)
			}
		}
	})

	return g.Wait()
}

// rebuild runs a workspace build unless every source tree fingerprint is unchanged.
// Build failures are reported and watching continues.
func (a *App) rebuild(
	ctx context.Context,
	ws *domain.Workspace,
	opts BuildOptions,
	fingerprints map[string]uint64,
	paths []string,
) {
	changed := false
	for _, project := range ws.Projects {
		dir := project.SourceDir()
		fp, err := a.fingerprinter.Fingerprint(dir)
		if err != nil {
			a.logger.Warn(fmt.Sprintf("failed to fingerprint %s: %v", dir, err))
			changed = true
			continue
		}
		if old, ok := fingerprints[dir]; !ok || old != fp {
			fingerprints[dir] = fp
			changed = true
		}
	}
	if !changed {
		return
	}

	a.logger.Info(fmt.Sprintf("%d files changed, rebuilding", len(paths)))
	if err := a.buildAll(ctx, ws, opts); err != nil {
		if ctx.Err() != nil {
			return
		}
		a.logger.Error(err)
	}
	a.logMetricsError(opts.MetricsFile)
}
