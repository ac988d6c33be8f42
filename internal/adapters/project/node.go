package project

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/flexgen/internal/core/ports"
)

// NodeID is the unique identifier for the project loader Graft node.
const NodeID graft.ID = "adapter.project_loader"

func init() {
	graft.Register(graft.Node[ports.ProjectLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ProjectLoader, error) {
			return NewLoader(), nil
		},
	})
}
