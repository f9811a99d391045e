package cas

import (
	"time"

	kilnfs "go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/core/ports"
)

// NewStoreWithClock exports newStoreWithClock for testing.
func NewStoreWithClock(root string, opts ports.CacheOptions, now func() time.Time) *Store {
	return newStoreWithClock(root, kilnfs.NewWalker(), opts, now)
}
