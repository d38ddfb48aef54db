package toolchain

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/plink/internal/adapters/logger"
	"go.trai.ch/plink/internal/core/ports"
)

// NodeID is the unique identifier for the toolchain loader Graft node.
const NodeID graft.ID = "adapter.toolchain"

func init() {
	graft.Register(graft.Node[ports.ToolchainLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ToolchainLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
