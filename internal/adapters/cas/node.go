package cas

import (
	"context"

	"github.com/grindlemire/graft"
	kilnfs "go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the build cache factory Graft node.
const NodeID graft.ID = "adapter.build_cache"

// Factory opens per-project build caches under .kiln/cache.
type Factory struct {
	walker *kilnfs.Walker
}

// NewFactory creates a new Factory.
func NewFactory(walker *kilnfs.Walker) *Factory {
	return &Factory{walker: walker}
}

// Open returns the initialized cache of the project rooted at projectRoot.
func (f *Factory) Open(projectRoot string, opts ports.CacheOptions) (ports.BuildCache, error) {
	store := NewStore(domain.CachePath(projectRoot), f.walker, opts)
	if err := store.Init(); err != nil {
		return nil, err
	}
	return store, nil
}

func init() {
	graft.Register(graft.Node[ports.BuildCacheFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{kilnfs.WalkerNodeID},
		Run: func(ctx context.Context) (ports.BuildCacheFactory, error) {
			walker, err := graft.Dep[*kilnfs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(walker), nil
		},
	})
}
