package shell

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/capstan-tools/capstan/internal/adapters/logger"
	"github.com/capstan-tools/capstan/internal/adapters/telemetry"
	"github.com/capstan-tools/capstan/internal/core/ports"
)

// NodeID is the unique identifier for the invoker Graft node.
const NodeID graft.ID = "adapter.invoker"

func init() {
	graft.Register(graft.Node[ports.Invoker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, telemetry.NodeID},
		Run: func(ctx context.Context) (ports.Invoker, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			return NewInvoker(log, tel), nil
		},
	})
}
