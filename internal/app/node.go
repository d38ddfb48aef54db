package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/plink/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/plink/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/plink/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/plink/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/plink/internal/adapters/toolchain" //nolint:depguard // Wired in app layer
	"go.trai.ch/plink/internal/core/ports"
	"go.trai.ch/plink/internal/engine/host"
	"go.trai.ch/plink/internal/engine/orchestrator"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			toolchain.NodeID,
			orchestrator.NodeID,
			fs.LocatorNodeID,
			host.NodeID,
			cas.NodeID,
			fs.HasherNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	toolchains, err := graft.Dep[ports.ToolchainLoader](ctx)
	if err != nil {
		return nil, err
	}

	orch, err := graft.Dep[*orchestrator.Orchestrator](ctx)
	if err != nil {
		return nil, err
	}

	locator, err := graft.Dep[ports.ArtifactLocator](ctx)
	if err != nil {
		return nil, err
	}

	h, err := graft.Dep[*host.Host](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.BuildRecordStore](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, toolchains, orch, locator, h, store, hasher, log), nil
}
