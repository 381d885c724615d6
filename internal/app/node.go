package app

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/capstan-tools/capstan/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"github.com/capstan-tools/capstan/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"github.com/capstan-tools/capstan/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"github.com/capstan-tools/capstan/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"github.com/capstan-tools/capstan/internal/core/ports"
	"github.com/capstan-tools/capstan/internal/engine/resolve"
	"github.com/capstan-tools/capstan/internal/engine/workspace"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			workspace.NodeID,
			resolve.NodeID,
			shell.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			model, err := graft.Dep[*workspace.Model](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[*resolve.Resolver](ctx)
			if err != nil {
				return nil, err
			}
			invoker, err := graft.Dep[ports.Invoker](ctx)
			if err != nil {
				return nil, err
			}
			fsWatcher, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(model, resolver, invoker, fsWatcher, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{AppNodeID, logger.NodeID, telemetry.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log, Telemetry: tel}, nil
		},
	})
}

// Components contains the initialized application components the CLI layer
// needs.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
}
