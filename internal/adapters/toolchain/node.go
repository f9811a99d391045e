package toolchain

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/shell"
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the toolchain Graft node.
const NodeID graft.ID = "adapter.toolchain"

const executableName = "scala-cli"

func init() {
	graft.Register(graft.Node[ports.Toolchain]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.RunnerNodeID, shell.ExecutorNodeID},
		Run: func(ctx context.Context) (ports.Toolchain, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			binDir := shell.BundledBinDir()
			path, ok := shell.Locate(executableName, binDir)
			if !ok {
				path = executableName
			}
			if info, err := os.Stat(binDir); err != nil || !info.IsDir() {
				binDir = ""
			}
			return NewScalaCLI(path, runner, executor, WithBinDir(binDir)), nil
		},
	})
}
