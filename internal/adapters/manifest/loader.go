// Package manifest parses Cargo.toml and cargo config files into the
// extraction documents the workspace model consumes.
package manifest

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/capstan-tools/capstan/internal/core/domain"
	"github.com/capstan-tools/capstan/internal/core/ports"
)

// Loader implements ports.ManifestLoader on top of a real TOML parser.
// Parsing stays best-effort: malformed content degrades to an empty document
// and is only logged, so callers always get something to extract from.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load parses the file at path. The boolean is false when the file is absent
// or unreadable.
func (l *Loader) Load(path string) (domain.Document, bool) {
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the project root
	if err != nil {
		if !os.IsNotExist(err) {
			l.logger.Warn(fmt.Sprintf("manifest %s unreadable: %v", path, err))
		}
		return domain.Document{}, false
	}
	return l.Parse(string(data)), true
}

// Parse decodes manifest text. A syntax error yields an empty document.
func (l *Loader) Parse(text string) domain.Document {
	var root map[string]any
	if err := toml.Unmarshal([]byte(text), &root); err != nil {
		l.logger.Warn(fmt.Sprintf("manifest parse failed, continuing with empty document: %v", err))
		return domain.NewDocument(nil)
	}
	return domain.NewDocument(root)
}

var _ ports.ManifestLoader = (*Loader)(nil)
