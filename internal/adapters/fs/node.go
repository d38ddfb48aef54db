package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/plink/internal/adapters/logger"
	"go.trai.ch/plink/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// HasherNodeID is the unique identifier for the hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
	// StalenessNodeID is the unique identifier for the staleness checker Graft node.
	StalenessNodeID graft.ID = "adapter.fs.staleness"
	// LocatorNodeID is the unique identifier for the artifact locator Graft node.
	LocatorNodeID graft.ID = "adapter.fs.locator"
	// FilesNodeID is the unique identifier for the file system Graft node.
	FilesNodeID graft.ID = "adapter.fs.files"
	// CRTNodeID is the unique identifier for the C runtime finder Graft node.
	CRTNodeID graft.ID = "adapter.fs.crt"
)

func init() {
	// Walker Node (Concrete implementation needed by the CRT finder)
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.StalenessChecker]{
		ID:        StalenessNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.StalenessChecker, error) {
			return NewStaleness(), nil
		},
	})

	graft.Register(graft.Node[ports.ArtifactLocator]{
		ID:        LocatorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ArtifactLocator, error) {
			return NewLocator(), nil
		},
	})

	graft.Register(graft.Node[ports.FileSystem]{
		ID:        FilesNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileSystem, error) {
			return NewFiles(), nil
		},
	})

	// CRT finder memoises its result, so it must be cached.
	graft.Register(graft.Node[ports.CRTFinder]{
		ID:        CRTNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, WalkerNodeID},
		Run: func(ctx context.Context) (ports.CRTFinder, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewCRTFinder(log, walker), nil
		},
	})
}
