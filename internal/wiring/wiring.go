// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/capstan-tools/capstan/internal/adapters/cargo"
	_ "github.com/capstan-tools/capstan/internal/adapters/logger"
	_ "github.com/capstan-tools/capstan/internal/adapters/manifest"
	_ "github.com/capstan-tools/capstan/internal/adapters/project"
	_ "github.com/capstan-tools/capstan/internal/adapters/settings"
	_ "github.com/capstan-tools/capstan/internal/adapters/shell"
	_ "github.com/capstan-tools/capstan/internal/adapters/state"
	_ "github.com/capstan-tools/capstan/internal/adapters/telemetry"
	_ "github.com/capstan-tools/capstan/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "github.com/capstan-tools/capstan/internal/app"
	_ "github.com/capstan-tools/capstan/internal/engine/resolve"
	_ "github.com/capstan-tools/capstan/internal/engine/workspace"
)
