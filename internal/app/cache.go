package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/docker/go-units"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/ui/output"
	"go.trai.ch/kiln/internal/ui/style"
)

// DefaultMaxAge is the age past which kiln cache gc removes entries.
const DefaultMaxAge = 7 * 24 * time.Hour

// CacheStats prints a summary of every selected project's build cache.
func (a *App) CacheStats(_ context.Context) error {
	ws, err := a.load()
	if err != nil {
		return err
	}

	out := output.New(a.stdout)
	var errs error
	for _, project := range ws.Projects {
		cache, err := a.caches.Open(project.Root, ports.CacheOptions{})
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		stats, err := cache.Stats()
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}

		name := out.String(project.Name()).Foreground(out.Color(string(style.Ember))).Bold()
		_, _ = fmt.Fprintf(out, "%s %s\n", name, out.String(domain.CachePath(project.Root)).Faint())
		_, _ = fmt.Fprintf(out, "  entries  %d\n", stats.Entries)
		_, _ = fmt.Fprintf(out, "  outputs  %d\n", stats.Outputs)
		_, _ = fmt.Fprintf(out, "  size     %s\n", units.HumanSize(float64(stats.Bytes)))
		if stats.Entries > 0 {
			_, _ = fmt.Fprintf(out, "  oldest   %s\n", stats.Oldest.UTC().Format(time.RFC3339))
			_, _ = fmt.Fprintf(out, "  newest   %s\n", stats.Newest.UTC().Format(time.RFC3339))
		}
	}
	return errs
}

// CacheGC removes cache entries older than maxAge from every selected project.
func (a *App) CacheGC(_ context.Context, maxAge time.Duration) error {
	ws, err := a.load()
	if err != nil {
		return err
	}

	var errs error
	total := 0
	for _, project := range ws.Projects {
		cache, err := a.caches.Open(project.Root, ports.CacheOptions{})
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		removed, err := cache.Expire(maxAge)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		total += removed
		if removed > 0 {
			a.logger.Info(fmt.Sprintf("%s: removed %d entries older than %s", project.Name(), removed, maxAge))
		}
	}

	if errs == nil && total == 0 {
		a.logger.Info(fmt.Sprintf("no entries older than %s", maxAge))
	}
	return errs
}
