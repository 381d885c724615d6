package ports

import "github.com/capstan-tools/capstan/internal/core/domain"

// ManifestLoader parses manifest and cargo config files, best-effort.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestLoader interface {
	// Load parses the file at path. The boolean is false when the file is
	// absent; malformed content degrades to an empty document, logged
	// only. Load never fails.
	Load(path string) (domain.Document, bool)
}
