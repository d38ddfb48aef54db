package orchestrator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/plink/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/plink/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/plink/internal/adapters/llvm"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/plink/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/plink/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/plink/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/plink/internal/core/ports"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			fs.StalenessNodeID,
			llvm.NodeID,
			fs.FilesNodeID,
			fs.CRTNodeID,
			fs.HasherNodeID,
			cas.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			runner, err := graft.Dep[ports.ToolRunner](ctx)
			if err != nil {
				return nil, err
			}

			staleness, err := graft.Dep[ports.StalenessChecker](ctx)
			if err != nil {
				return nil, err
			}

			extractor, err := graft.Dep[ports.ExportExtractor](ctx)
			if err != nil {
				return nil, err
			}

			files, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}

			crt, err := graft.Dep[ports.CRTFinder](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.BuildRecordStore](ctx)
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

			return New(runner, staleness, extractor, files, crt, hasher, store, log, tracer), nil
		},
	})
}
