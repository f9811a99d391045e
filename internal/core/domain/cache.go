package domain

import "time"

// CacheEntry records one saved build: when it was stored and which outputs it holds.
type CacheEntry struct {
	Hash      string    `json:"hash"`
	Timestamp time.Time `json:"timestamp"`
	// Outputs are paths relative to the target directory, sorted.
	Outputs []string `json:"outputs"`
}

// CacheIndex maps a cache key to its entry.
type CacheIndex map[string]CacheEntry

// CacheStats summarizes a build cache.
type CacheStats struct {
	Entries int
	Outputs int
	// Bytes is the size of every file stored in entry directories.
	Bytes  int64
	Oldest time.Time
	Newest time.Time
}
