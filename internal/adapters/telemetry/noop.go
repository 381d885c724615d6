package telemetry

import (
	"context"
	"io"

	"github.com/capstan-tools/capstan/internal/core/ports"
)

// Noop is a ports.Telemetry implementation that records nothing. Used in
// tests and when progress recording is disabled.
type Noop struct{}

// NewNoop creates a Noop telemetry.
func NewNoop() *Noop { return &Noop{} }

// Record returns a vertex that discards everything.
func (Noop) Record(_ context.Context, _ string) ports.Vertex { return noopVertex{} }

// Close is a no-op.
func (Noop) Close() error { return nil }

type noopVertex struct{}

func (noopVertex) Stdout() io.Writer { return io.Discard }
func (noopVertex) Stderr() io.Writer { return io.Discard }
func (noopVertex) Complete(error)    {}

var _ ports.Telemetry = Noop{}
