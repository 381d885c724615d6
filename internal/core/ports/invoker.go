package ports

import (
	"context"

	"github.com/capstan-tools/capstan/internal/core/domain"
)

// Invoker runs external build-tool processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=invoker.go -destination=mocks/mock_invoker.go -package=mocks
type Invoker interface {
	// Capture runs the invocation to completion and returns its stdout.
	// A non-zero exit surfaces as domain.ErrCommandFailed carrying the
	// captured stderr and exit code.
	Capture(ctx context.Context, inv domain.Invocation) (string, error)

	// Stream runs the invocation with stdout and stderr streamed through
	// the logger and telemetry. The process runs under its own lifetime;
	// no timeout is applied beyond ctx.
	Stream(ctx context.Context, inv domain.Invocation) error
}
