// Package build carries build-time metadata.
package build

// Version is the application version, overridden at link time via
// -ldflags "-X github.com/capstan-tools/capstan/internal/build.Version=...".
var Version = "dev"
