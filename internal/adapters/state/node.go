package state

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/flexgen/internal/core/ports"
)

// NodeID is the unique identifier for the record store Graft node.
const NodeID graft.ID = "adapter.record_store"

func init() {
	graft.Register(graft.Node[ports.RecordStoreFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RecordStoreFactory, error) {
			return NewFactory(), nil
		},
	})
}
