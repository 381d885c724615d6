// Package app implements the application layer for capstan.
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/capstan-tools/capstan/internal/core/domain"
	"github.com/capstan-tools/capstan/internal/core/ports"
	"github.com/capstan-tools/capstan/internal/engine/resolve"
	"github.com/capstan-tools/capstan/internal/engine/workspace"
)

// App wires the workspace model, the resolver and the process invoker behind
// the CLI layer.
type App struct {
	model    *workspace.Model
	resolver *resolve.Resolver
	invoker  ports.Invoker
	watcher  ports.Watcher
	logger   ports.Logger

	initialized bool
}

// New creates a new App instance.
func New(model *workspace.Model, resolver *resolve.Resolver, invoker ports.Invoker, watcher ports.Watcher, logger ports.Logger) *App {
	return &App{
		model:    model,
		resolver: resolver,
		invoker:  invoker,
		watcher:  watcher,
		logger:   logger,
	}
}

// Model exposes the workspace model to the CLI layer.
func (a *App) Model() *workspace.Model { return a.model }

// Refresh (re)runs discovery. The first call also restores the persisted
// selection. It always completes; a broken project simply yields an empty
// model.
func (a *App) Refresh(ctx context.Context) {
	if !a.initialized {
		a.model.Initialize(ctx)
		a.initialized = true
		return
	}
	a.model.Refresh(ctx)
}

// Invoke resolves a task definition and launches the tool with streamed
// output. Invocation failures propagate to the caller; they carry the tool's
// exit code and are the user's concern, not ours.
func (a *App) Invoke(ctx context.Context, def domain.TaskDefinition) error {
	inv := a.resolver.Resolve(def, a.model.Discovery())
	a.logger.Info("running " + inv.CommandLine())
	return a.invoker.Stream(ctx, inv)
}

// Watch refreshes the model whenever the manifest or a cargo config file
// changes, until ctx is cancelled.
func (a *App) Watch(ctx context.Context) error {
	root := a.model.Root()
	paths := []string{
		filepath.Join(root, "Cargo.toml"),
		filepath.Join(root, ".cargo", "config.toml"),
	}
	if err := a.watcher.Start(ctx, paths); err != nil {
		return err
	}
	defer func() { _ = a.watcher.Stop() }()

	for event := range a.watcher.Events() {
		a.logger.Info(fmt.Sprintf("%s changed, refreshing", event.Path))
		a.Refresh(ctx)
	}
	return nil
}
