package mavenindex

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the version lookup Graft node.
const NodeID graft.ID = "adapter.version_lookup"

func init() {
	graft.Register(graft.Node[ports.VersionLookup]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.VersionLookup, error) {
			return NewIndex(), nil
		},
	})
}
