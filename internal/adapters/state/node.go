package state

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/capstan-tools/capstan/internal/core/ports"
)

// NodeID is the unique identifier for the selection store Graft node.
const NodeID graft.ID = "adapter.state"

func init() {
	graft.Register(graft.Node[ports.SelectionStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SelectionStore, error) {
			return NewStore(DefaultPath()), nil
		},
	})
}
