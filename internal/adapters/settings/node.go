package settings

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/capstan-tools/capstan/internal/adapters/logger"
	"github.com/capstan-tools/capstan/internal/adapters/project"
	"github.com/capstan-tools/capstan/internal/core/ports"
)

// NodeID is the unique identifier for the settings Graft node.
const NodeID graft.ID = "adapter.settings"

func init() {
	graft.Register(graft.Node[ports.SettingsSource]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, project.NodeID},
		Run: func(ctx context.Context) (ports.SettingsSource, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			root, err := graft.Dep[project.Root](ctx)
			if err != nil {
				return nil, err
			}
			return NewSource(log, root.String()), nil
		},
	})
}
