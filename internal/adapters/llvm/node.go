package llvm

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/plink/internal/core/ports"
)

// NodeID is the unique identifier for the export extractor Graft node.
const NodeID graft.ID = "adapter.llvm.extractor"

func init() {
	graft.Register(graft.Node[ports.ExportExtractor]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ExportExtractor, error) {
			return NewExtractor(), nil
		},
	})
}
