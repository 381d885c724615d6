package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/capstan-tools/capstan/internal/app"
	"github.com/capstan-tools/capstan/internal/core/domain"
	"github.com/capstan-tools/capstan/internal/core/ports"
	"github.com/capstan-tools/capstan/internal/core/ports/mocks"
	"github.com/capstan-tools/capstan/internal/engine/resolve"
	"github.com/capstan-tools/capstan/internal/engine/workspace"
)

type appFixture struct {
	app     *app.App
	invoker *mocks.MockInvoker
	watcher *mocks.MockWatcher
	store   *mocks.MockSelectionStore
	gets    int
}

func newApp(t *testing.T) *appFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	disc := domain.Discovery{Targets: []domain.Target{
		{Name: "server", Kinds: []domain.TargetKind{domain.KindBin}, PackageName: "alpha"},
	}}
	source := mocks.NewMockMetadataSource(ctrl)
	source.EXPECT().Discover(gomock.Any(), gomock.Any()).Return(disc).AnyTimes()
	source.EXPECT().Platforms(gomock.Any()).Return(nil).AnyTimes()

	loader := mocks.NewMockManifestLoader(ctrl)
	loader.EXPECT().Load(gomock.Any()).Return(domain.Document{}, false).AnyTimes()

	f := &appFixture{
		invoker: mocks.NewMockInvoker(ctrl),
		watcher: mocks.NewMockWatcher(ctrl),
		store:   mocks.NewMockSelectionStore(ctrl),
	}
	f.store.EXPECT().Get(gomock.Any()).DoAndReturn(func(domain.StateKey) (string, bool, error) {
		f.gets++
		return "", false, nil
	}).AnyTimes()
	f.store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	settings := domain.DefaultSettings()
	model := workspace.New("/w/app", logger, source, loader, f.store, settings)
	f.app = app.New(model, resolve.NewResolver("/w/app", settings), f.invoker, f.watcher, logger)
	return f
}

func TestRefreshRestoresOnlyOnce(t *testing.T) {
	f := newApp(t)

	f.app.Refresh(context.Background())
	after := f.gets
	assert.Positive(t, after)

	// Subsequent refreshes rediscover but do not re-read the store.
	f.app.Refresh(context.Background())
	assert.Equal(t, after, f.gets)
}

func TestInvoke(t *testing.T) {
	f := newApp(t)
	f.app.Refresh(context.Background())

	f.invoker.EXPECT().
		Stream(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv domain.Invocation) error {
			assert.Equal(t, "cargo", inv.Program)
			assert.Equal(t, []string{"build", "--bin", "server"}, inv.Args)
			return nil
		})

	def := f.app.Model().DefinitionForAction(domain.ActionBuild, nil)
	def.Target = "server"
	require.NoError(t, f.app.Invoke(context.Background(), def))
}

func TestInvokeFailurePropagates(t *testing.T) {
	f := newApp(t)
	f.invoker.EXPECT().Stream(gomock.Any(), gomock.Any()).Return(domain.ErrCommandFailed)

	err := f.app.Invoke(context.Background(), domain.TaskDefinition{Action: domain.ActionBuild})
	require.ErrorIs(t, err, domain.ErrCommandFailed)
}

func TestWatchRefreshesPerEvent(t *testing.T) {
	f := newApp(t)
	f.app.Refresh(context.Background())

	events := []ports.WatchEvent{{Path: "/w/app/Cargo.toml"}, {Path: "/w/app/.cargo/config.toml"}}
	f.watcher.EXPECT().Start(gomock.Any(), []string{"/w/app/Cargo.toml", "/w/app/.cargo/config.toml"}).Return(nil)
	f.watcher.EXPECT().Events().Return(func(yield func(ports.WatchEvent) bool) {
		for _, event := range events {
			if !yield(event) {
				return
			}
		}
	})
	f.watcher.EXPECT().Stop().Return(nil)

	require.NoError(t, f.app.Watch(context.Background()))
}

func TestWatchStartFailure(t *testing.T) {
	f := newApp(t)
	f.watcher.EXPECT().Start(gomock.Any(), gomock.Any()).Return(assert.AnError)

	require.ErrorIs(t, f.app.Watch(context.Background()), assert.AnError)
}
