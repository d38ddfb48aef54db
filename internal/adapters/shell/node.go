package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/plink/internal/adapters/detector"
	"go.trai.ch/plink/internal/adapters/logger"
	"go.trai.ch/plink/internal/core/ports"
)

// NodeID is the unique identifier for the tool runner Graft node.
const NodeID graft.ID = "adapter.runner"

func init() {
	graft.Register(graft.Node[ports.ToolRunner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, detector.NodeID},
		Run: func(ctx context.Context) (ports.ToolRunner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			mode, err := graft.Dep[detector.OutputMode](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(log, mode.UsePTY()), nil
		},
	})
}
