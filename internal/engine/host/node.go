package host

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/plink/internal/adapters/dynlib"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/plink/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/plink/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/plink/internal/core/ports"
)

// NodeID is the unique identifier for the host Graft node.
const NodeID graft.ID = "engine.host"

func init() {
	graft.Register(graft.Node[*Host]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			dynlib.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Host, error) {
			opener, err := graft.Dep[ports.LibraryOpener](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return New(opener, log, tracer), nil
		},
	})
}
