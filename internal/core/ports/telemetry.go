package ports

import (
	"context"
	"io"
)

// Telemetry records tool invocations for progress rendering.
//
//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Telemetry interface {
	// Record opens a vertex for one invocation.
	Record(ctx context.Context, name string) Vertex

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex is one recorded invocation.
type Vertex interface {
	// Stdout returns a writer capturing the process standard output.
	Stdout() io.Writer

	// Stderr returns a writer capturing the process error output.
	Stderr() io.Writer

	// Complete marks the vertex finished, successfully or with an error.
	Complete(err error)
}
