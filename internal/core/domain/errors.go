package domain

import "go.trai.ch/zerr"

var (
	// ErrCommandFailed is returned when a captured or streamed tool
	// invocation exits non-zero. It carries the exit code and the
	// captured stderr as attributes.
	ErrCommandFailed = zerr.New("command failed")

	// ErrMetadataUnavailable marks a failed metadata subcommand before the
	// directory-convention fallback takes over. It never leaves the
	// discovery adapter.
	ErrMetadataUnavailable = zerr.New("cargo metadata unavailable")

	// ErrTargetNotFound is returned when a named target is absent from the
	// discovered target list.
	ErrTargetNotFound = zerr.New("target not found")

	// ErrProfileNotFound is returned when a requested profile name is
	// neither built-in nor discovered.
	ErrProfileNotFound = zerr.New("profile not found")
)
