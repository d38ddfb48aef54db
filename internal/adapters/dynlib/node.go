package dynlib

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/plink/internal/core/ports"
)

// NodeID is the unique identifier for the library opener Graft node.
const NodeID graft.ID = "adapter.dynlib"

func init() {
	graft.Register(graft.Node[ports.LibraryOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.LibraryOpener, error) {
			return NewOpener(), nil
		},
	})
}
