package ports

import "time"

// Metrics records build cache activity.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// CacheHit records a build skipped because its outputs were restored.
	CacheHit(project string)
	// CacheMiss records a build that had to invoke the compiler.
	CacheMiss(project string)
	// CacheSave records a new cache entry.
	CacheSave(project string)
	// CacheError records a cache failure that was downgraded to a warning.
	CacheError(project, op string)
	// BuildDuration records how long one project took end to end.
	BuildDuration(project string, d time.Duration)
	// WriteTextfile writes every metric in the Prometheus text format to path.
	WriteTextfile(path string) error
}
