package workspace

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/capstan-tools/capstan/internal/adapters/cargo"
	"github.com/capstan-tools/capstan/internal/adapters/logger"
	"github.com/capstan-tools/capstan/internal/adapters/manifest"
	"github.com/capstan-tools/capstan/internal/adapters/project"
	"github.com/capstan-tools/capstan/internal/adapters/settings"
	"github.com/capstan-tools/capstan/internal/adapters/state"
	"github.com/capstan-tools/capstan/internal/core/ports"
)

// NodeID is the unique identifier for the workspace model Graft node.
const NodeID graft.ID = "engine.workspace"

func init() {
	graft.Register(graft.Node[*Model]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			project.NodeID,
			logger.NodeID,
			cargo.NodeID,
			manifest.NodeID,
			state.NodeID,
			settings.NodeID,
		},
		Run: func(ctx context.Context) (*Model, error) {
			root, err := graft.Dep[project.Root](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			source, err := graft.Dep[ports.MetadataSource](ctx)
			if err != nil {
				return nil, err
			}
			loader, err := graft.Dep[ports.ManifestLoader](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.SelectionStore](ctx)
			if err != nil {
				return nil, err
			}
			settingsSource, err := graft.Dep[ports.SettingsSource](ctx)
			if err != nil {
				return nil, err
			}
			return New(root.String(), log, source, loader, store, settingsSource.Load()), nil
		},
	})
}
