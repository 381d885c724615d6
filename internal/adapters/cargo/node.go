package cargo

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/capstan-tools/capstan/internal/adapters/logger"
	"github.com/capstan-tools/capstan/internal/adapters/manifest"
	"github.com/capstan-tools/capstan/internal/adapters/settings"
	"github.com/capstan-tools/capstan/internal/adapters/shell"
	"github.com/capstan-tools/capstan/internal/core/ports"
)

// NodeID is the unique identifier for the metadata source Graft node.
const NodeID graft.ID = "adapter.metadata"

func init() {
	graft.Register(graft.Node[ports.MetadataSource]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID, manifest.NodeID, settings.NodeID},
		Run: func(ctx context.Context) (ports.MetadataSource, error) {
			invoker, err := graft.Dep[ports.Invoker](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			loader, err := graft.Dep[ports.ManifestLoader](ctx)
			if err != nil {
				return nil, err
			}
			source, err := graft.Dep[ports.SettingsSource](ctx)
			if err != nil {
				return nil, err
			}
			return NewSource(invoker, log, loader, source.Load()), nil
		},
	})
}
