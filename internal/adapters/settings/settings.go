// Package settings loads user configuration through viper.
package settings

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/capstan-tools/capstan/internal/core/domain"
	"github.com/capstan-tools/capstan/internal/core/ports"
)

// Source implements ports.SettingsSource. Values come from .capstan.yaml in
// the project root or the user's home directory, overridden by CAPSTAN_*
// environment variables. Loading never fails; anything unreadable degrades
// to the defaults.
type Source struct {
	logger  ports.Logger
	workDir string
}

// NewSource creates a new Source rooted at workDir.
func NewSource(logger ports.Logger, workDir string) *Source {
	return &Source{logger: logger, workDir: workDir}
}

// Load returns the effective settings.
func (s *Source) Load() domain.Settings {
	v := viper.New()
	v.SetConfigName(".capstan")
	v.SetConfigType("yaml")
	if s.workDir != "" {
		v.AddConfigPath(s.workDir)
	}
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.SetEnvPrefix("CAPSTAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := domain.DefaultSettings()
	v.SetDefault("cargo_path", defaults.CargoPath)
	v.SetDefault("rustup_path", defaults.RustupPath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			s.logger.Warn(fmt.Sprintf("settings file unreadable, using defaults: %v", err))
		}
	}

	cfg := defaults
	if err := v.Unmarshal(&cfg); err != nil {
		s.logger.Warn(fmt.Sprintf("settings malformed, using defaults: %v", err))
		return defaults
	}
	if cfg.CargoPath == "" {
		cfg.CargoPath = defaults.CargoPath
	}
	if cfg.RustupPath == "" {
		cfg.RustupPath = defaults.RustupPath
	}
	return cfg
}

var _ ports.SettingsSource = (*Source)(nil)
