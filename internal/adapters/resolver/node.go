package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/logger"
	"go.trai.ch/kiln/internal/adapters/shell"
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the resolver selector Graft node.
const NodeID graft.ID = "adapter.resolver_selector"

func init() {
	graft.Register(graft.Node[ports.ResolverSelector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, shell.RunnerNodeID},
		Run: func(ctx context.Context) (ports.ResolverSelector, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewSelector(runner, log, shell.BundledBinDir()), nil
		},
	})
}
