package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/cas"         //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/adapters/logger"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/adapters/mavenindex"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/adapters/metrics"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/adapters/resolver"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/adapters/telemetry"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/adapters/toolchain"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			resolver.NodeID,
			mavenindex.NodeID,
			cas.NodeID,
			toolchain.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			selector, err := graft.Dep[ports.ResolverSelector](ctx)
			if err != nil {
				return nil, err
			}

			versions, err := graft.Dep[ports.VersionLookup](ctx)
			if err != nil {
				return nil, err
			}

			caches, err := graft.Dep[ports.BuildCacheFactory](ctx)
			if err != nil {
				return nil, err
			}

			tc, err := graft.Dep[ports.Toolchain](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(selector, versions, caches, tc, tracer, m, log), nil
		},
	})
}
