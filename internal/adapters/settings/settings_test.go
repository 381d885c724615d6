package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/capstan-tools/capstan/internal/adapters/settings"
	"github.com/capstan-tools/capstan/internal/core/ports/mocks"
)

func newSource(t *testing.T, workDir string) *settings.Source {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return settings.NewSource(logger, workDir)
}

func TestLoadDefaults(t *testing.T) {
	// Point HOME at an empty directory so a real ~/.capstan.yaml cannot
	// leak into the test.
	t.Setenv("HOME", t.TempDir())

	cfg := newSource(t, t.TempDir()).Load()
	assert.Equal(t, "cargo", cfg.CargoPath)
	assert.Equal(t, "rustup", cfg.RustupPath)
	assert.Empty(t, cfg.ExtraArgs)
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	workDir := t.TempDir()

	content := `cargo_path: sccache cargo
extra_args: ["--locked"]
extra_env:
  RUST_LOG: debug
features: ["tls"]
all_features: false
run:
  command_override: cargo-watch -x
  extra_env:
    RUST_BACKTRACE: "1"
test:
  extra_args: ["--nocapture"]
`
	require.NoError(t, os.WriteFile(filepath.Join(workDir, ".capstan.yaml"), []byte(content), 0o600))

	cfg := newSource(t, workDir).Load()
	assert.Equal(t, "sccache cargo", cfg.CargoPath)
	assert.Equal(t, "rustup", cfg.RustupPath)
	assert.Equal(t, []string{"--locked"}, cfg.ExtraArgs)
	assert.Equal(t, "debug", cfg.ExtraEnv["RUST_LOG"])
	assert.Equal(t, []string{"tls"}, cfg.Features)
	assert.Equal(t, "cargo-watch -x", cfg.Run.CommandOverride)
	assert.Equal(t, "1", cfg.Run.ExtraEnv["RUST_BACKTRACE"])
	assert.Equal(t, []string{"--nocapture"}, cfg.Test.ExtraArgs)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CAPSTAN_CARGO_PATH", "/opt/cargo/bin/cargo")

	cfg := newSource(t, t.TempDir()).Load()
	assert.Equal(t, "/opt/cargo/bin/cargo", cfg.CargoPath)
}

func TestLoadMalformedFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	workDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(workDir, ".capstan.yaml"), []byte("cargo_path: [broken"), 0o600))

	cfg := newSource(t, workDir).Load()
	assert.Equal(t, "cargo", cfg.CargoPath)
}
