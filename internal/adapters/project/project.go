// Package project locates the project root for the current invocation.
package project

import (
	"os"
	"path/filepath"
)

// Root is the absolute path of the project being operated on.
type Root string

// String returns the root as a plain path.
func (r Root) String() string { return string(r) }

// ManifestPath returns the conventional manifest location under the root.
func (r Root) ManifestPath() string { return filepath.Join(string(r), "Cargo.toml") }

// Locate walks up from dir looking for a Cargo.toml, the way cargo itself
// resolves the current project. When none is found the starting directory is
// returned, letting discovery fall back to its conventions.
func Locate(dir string) Root {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Root(dir)
	}
	for current := abs; ; {
		if info, err := os.Stat(filepath.Join(current, "Cargo.toml")); err == nil && !info.IsDir() {
			return Root(current)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return Root(abs)
		}
		current = parent
	}
}
