package ports

import "github.com/capstan-tools/capstan/internal/core/domain"

// SettingsSource loads user configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=settings.go -destination=mocks/mock_settings.go -package=mocks
type SettingsSource interface {
	// Load returns the effective settings. It never fails; unreadable or
	// malformed configuration degrades to the defaults, logged only.
	Load() domain.Settings
}
