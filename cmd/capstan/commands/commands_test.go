package commands_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/capstan-tools/capstan/cmd/capstan/commands"
	"github.com/capstan-tools/capstan/internal/app"
	"github.com/capstan-tools/capstan/internal/build"
	"github.com/capstan-tools/capstan/internal/core/domain"
	"github.com/capstan-tools/capstan/internal/core/ports/mocks"
	"github.com/capstan-tools/capstan/internal/engine/resolve"
	"github.com/capstan-tools/capstan/internal/engine/workspace"
)

type cliFixture struct {
	cli     *commands.CLI
	invoker *mocks.MockInvoker
	out     *bytes.Buffer
}

func newCLI(t *testing.T, disc domain.Discovery) *cliFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	source := mocks.NewMockMetadataSource(ctrl)
	source.EXPECT().Discover(gomock.Any(), gomock.Any()).Return(disc).AnyTimes()
	source.EXPECT().Platforms(gomock.Any()).Return([]string{"x86_64-unknown-linux-gnu"}).AnyTimes()

	loader := mocks.NewMockManifestLoader(ctrl)
	loader.EXPECT().Load(gomock.Any()).Return(domain.Document{}, false).AnyTimes()

	store := mocks.NewMockSelectionStore(ctrl)
	stored := map[string]string{}
	store.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(func(key domain.StateKey, value string) error {
		stored[key.Encode()] = value
		return nil
	}).AnyTimes()
	store.EXPECT().Get(gomock.Any()).DoAndReturn(func(key domain.StateKey) (string, bool, error) {
		v, ok := stored[key.Encode()]
		return v, ok, nil
	}).AnyTimes()

	settings := domain.DefaultSettings()
	model := workspace.New("/w/app", logger, source, loader, store, settings)
	resolver := resolve.NewResolver("/w/app", settings)
	invoker := mocks.NewMockInvoker(ctrl)
	watcher := mocks.NewMockWatcher(ctrl)

	cli := commands.New(app.New(model, resolver, invoker, watcher, logger))
	out := &bytes.Buffer{}
	cli.SetOut(out)
	return &cliFixture{cli: cli, invoker: invoker, out: out}
}

func testDiscovery() domain.Discovery {
	return domain.Discovery{
		Targets: []domain.Target{
			{Name: "server", Kinds: []domain.TargetKind{domain.KindBin}, PackageName: "alpha"},
			{Name: "worker", Kinds: []domain.TargetKind{domain.KindBin}, PackageName: "beta"},
		},
		Packages: []domain.Package{
			{Name: "alpha", Version: "0.1.0", Features: []string{"tls"}},
			{Name: "beta", Version: "0.2.0"},
		},
	}
}

func TestTargetsCommand(t *testing.T) {
	f := newCLI(t, testDiscovery())
	f.cli.SetArgs([]string{"targets"})

	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Contains(t, f.out.String(), "server")
	assert.Contains(t, f.out.String(), "worker")
	// The default target carries the marker.
	assert.Contains(t, f.out.String(), "* server")
}

func TestPackagesCommand(t *testing.T) {
	f := newCLI(t, testDiscovery())
	f.cli.SetArgs([]string{"packages"})

	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Contains(t, f.out.String(), "alpha")
	assert.Contains(t, f.out.String(), "0.2.0")
}

func TestProfilesCommand(t *testing.T) {
	f := newCLI(t, testDiscovery())
	f.cli.SetArgs([]string{"profiles"})

	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Contains(t, f.out.String(), "release")
	assert.Contains(t, f.out.String(), "builtin")
}

func TestPlatformsCommand(t *testing.T) {
	f := newCLI(t, testDiscovery())
	f.cli.SetArgs([]string{"platforms"})

	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Contains(t, f.out.String(), "x86_64-unknown-linux-gnu")
}

func TestFeaturesCommand(t *testing.T) {
	f := newCLI(t, testDiscovery())
	f.cli.SetArgs([]string{"features", "--toggle", "tls"})

	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Contains(t, f.out.String(), "* tls (alpha)")
	assert.Contains(t, f.out.String(), domain.AllFeaturesSentinel)
}

func TestMetadataCommand(t *testing.T) {
	f := newCLI(t, testDiscovery())
	f.cli.SetArgs([]string{"metadata"})

	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Contains(t, f.out.String(), "packages:       2")
	assert.Contains(t, f.out.String(), "targets:        2")
	assert.Contains(t, f.out.String(), "multi-package:  true")
}

func TestSelectCommand(t *testing.T) {
	f := newCLI(t, testDiscovery())
	f.cli.SetArgs([]string{"select", "package", "alpha"})
	require.NoError(t, f.cli.Execute(context.Background()))

	f.cli.SetArgs([]string{"select", "build-target", "server"})
	require.NoError(t, f.cli.Execute(context.Background()))

	f.cli.SetArgs([]string{"select", "profile", "release"})
	require.NoError(t, f.cli.Execute(context.Background()))
}

func TestSelectUnknownValues(t *testing.T) {
	f := newCLI(t, testDiscovery())

	f.cli.SetArgs([]string{"select", "package", "ghost"})
	require.ErrorIs(t, f.cli.Execute(context.Background()), domain.ErrTargetNotFound)

	f.cli.SetArgs([]string{"select", "build-target", "ghost"})
	require.ErrorIs(t, f.cli.Execute(context.Background()), domain.ErrTargetNotFound)

	f.cli.SetArgs([]string{"select", "profile", "ghost"})
	require.ErrorIs(t, f.cli.Execute(context.Background()), domain.ErrProfileNotFound)

	f.cli.SetArgs([]string{"select", "nonsense", "x"})
	require.Error(t, f.cli.Execute(context.Background()))
}

func TestArgsCommand(t *testing.T) {
	f := newCLI(t, testDiscovery())
	f.cli.SetArgs([]string{"args", "build"})

	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Equal(t, "build --bin server\n", f.out.String())
}

func TestArgsCommandUnknownAction(t *testing.T) {
	f := newCLI(t, testDiscovery())
	f.cli.SetArgs([]string{"args", "frobnicate"})
	require.Error(t, f.cli.Execute(context.Background()))
}

func TestBuildCommandInvokes(t *testing.T) {
	f := newCLI(t, testDiscovery())
	f.invoker.EXPECT().
		Stream(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv domain.Invocation) error {
			assert.Equal(t, "cargo", inv.Program)
			assert.Equal(t, []string{"build", "--package", "alpha", "--bin", "server"}, inv.Args)
			return nil
		})

	f.cli.SetArgs([]string{"build", "--bin", "server"})
	require.NoError(t, f.cli.Execute(context.Background()))
}

func TestRunCommandFailurePropagates(t *testing.T) {
	f := newCLI(t, testDiscovery())
	f.invoker.EXPECT().Stream(gomock.Any(), gomock.Any()).Return(domain.ErrCommandFailed)

	f.cli.SetArgs([]string{"run", "--bin", "worker"})
	require.ErrorIs(t, f.cli.Execute(context.Background()), domain.ErrCommandFailed)
}

func TestActionFlags(t *testing.T) {
	f := newCLI(t, testDiscovery())
	f.invoker.EXPECT().
		Stream(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv domain.Invocation) error {
			assert.Equal(t, []string{
				"build",
				"--profile", "release",
				"--package", "beta",
				"--bin", "worker",
				"--features", "tls,zstd",
				"--target", "aarch64-apple-darwin",
			}, inv.Args)
			return nil
		})

	f.cli.SetArgs([]string{
		"build", "--bin", "worker", "--package", "beta",
		"--profile", "release", "--features", "tls,zstd",
		"--target", "aarch64-apple-darwin",
	})
	require.NoError(t, f.cli.Execute(context.Background()))
}

func TestActionUnknownProfile(t *testing.T) {
	f := newCLI(t, testDiscovery())
	f.cli.SetArgs([]string{"build", "--profile", "ghost"})
	require.ErrorIs(t, f.cli.Execute(context.Background()), domain.ErrProfileNotFound)
}

func TestVersionCommand(t *testing.T) {
	f := newCLI(t, testDiscovery())
	f.cli.SetArgs([]string{"version"})

	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Equal(t, build.Version+"\n", f.out.String())
}
