// Package main is the entry point for the capstan tool.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"

	"github.com/capstan-tools/capstan/cmd/capstan/commands"
	"github.com/capstan-tools/capstan/internal/app"
	"github.com/capstan-tools/capstan/internal/core/domain"
	_ "github.com/capstan-tools/capstan/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available if initialization failed; write
		// directly to stderr.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = components.Telemetry.Close() }()

	cli := commands.New(components.App)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrCommandFailed) {
			// The tool's own output already explained the failure.
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
