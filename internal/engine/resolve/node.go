package resolve

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/capstan-tools/capstan/internal/adapters/project"
	"github.com/capstan-tools/capstan/internal/adapters/settings"
	"github.com/capstan-tools/capstan/internal/core/ports"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolve"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{project.NodeID, settings.NodeID},
		Run: func(ctx context.Context) (*Resolver, error) {
			root, err := graft.Dep[project.Root](ctx)
			if err != nil {
				return nil, err
			}
			source, err := graft.Dep[ports.SettingsSource](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(root.String(), source.Load()), nil
		},
	})
}
