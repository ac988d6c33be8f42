package plugin

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/flexgen/internal/core/ports"
)

// NodeID is the unique identifier for the catalogue compiler Graft node.
const NodeID graft.ID = "adapter.plugin_catalogue"

func init() {
	graft.Register(graft.Node[ports.CatalogueCompiler]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CatalogueCompiler, error) {
			return NewCompiler(), nil
		},
	})
}
