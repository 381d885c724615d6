package ports

import (
	"context"

	"github.com/capstan-tools/capstan/internal/core/domain"
)

// MetadataSource discovers a project's structure.
//
//go:generate go run go.uber.org/mock/mockgen -source=metadata.go -destination=mocks/mock_metadata.go -package=mocks
type MetadataSource interface {
	// Discover returns the project model for the given root. It never
	// fails: a broken metadata subcommand degrades to the directory
	// convention fallback, and a broken fallback degrades to an empty
	// model, logged only.
	Discover(ctx context.Context, projectRoot string) domain.Discovery

	// Platforms lists the installed platform target triples. Failures
	// degrade to an empty list, logged only.
	Platforms(ctx context.Context) []string
}
