package workspace_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/capstan-tools/capstan/internal/core/domain"
	"github.com/capstan-tools/capstan/internal/core/ports/mocks"
	"github.com/capstan-tools/capstan/internal/engine/workspace"
)

type fixture struct {
	ctrl     *gomock.Controller
	source   *mocks.MockMetadataSource
	manifest *mocks.MockManifestLoader
	store    *mocks.MockSelectionStore
	stored   map[string]string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		ctrl:     ctrl,
		source:   mocks.NewMockMetadataSource(ctrl),
		manifest: mocks.NewMockManifestLoader(ctrl),
		store:    mocks.NewMockSelectionStore(ctrl),
		stored:   map[string]string{},
	}
	f.store.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(func(key domain.StateKey, value string) error {
		f.stored[key.Encode()] = value
		return nil
	}).AnyTimes()
	f.store.EXPECT().Get(gomock.Any()).DoAndReturn(func(key domain.StateKey) (string, bool, error) {
		v, ok := f.stored[key.Encode()]
		return v, ok, nil
	}).AnyTimes()
	return f
}

func (f *fixture) model(t *testing.T, disc domain.Discovery, settings domain.Settings) *workspace.Model {
	t.Helper()
	logger := mocks.NewMockLogger(f.ctrl)
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	f.manifest.EXPECT().Load(gomock.Any()).Return(domain.Document{}, false).AnyTimes()
	f.source.EXPECT().Discover(gomock.Any(), gomock.Any()).Return(disc).AnyTimes()
	f.source.EXPECT().Platforms(gomock.Any()).Return([]string{"x86_64-unknown-linux-gnu"}).AnyTimes()
	return workspace.New("/w/app", logger, f.source, f.manifest, f.store, settings)
}

func multiPackageDiscovery() domain.Discovery {
	return domain.Discovery{
		Targets: []domain.Target{
			{Name: "alpha", Kinds: []domain.TargetKind{domain.KindLib}, PackageName: "alpha"},
			{Name: "server", Kinds: []domain.TargetKind{domain.KindBin}, PackageName: "alpha"},
			{Name: "worker", Kinds: []domain.TargetKind{domain.KindBin}, PackageName: "beta"},
		},
		Packages: []domain.Package{
			{Name: "alpha", Features: []string{"tls"}},
			{Name: "beta"},
		},
	}
}

func TestInitializeComputesDefaultTarget(t *testing.T) {
	f := newFixture(t)
	m := f.model(t, multiPackageDiscovery(), domain.DefaultSettings())
	m.Initialize(context.Background())

	// First bin wins over the earlier lib.
	target, ok := m.DefaultTarget()
	require.True(t, ok)
	assert.Equal(t, "server", target.Name)
	assert.Equal(t, []string{"x86_64-unknown-linux-gnu"}, m.Platforms())
}

func TestDefaultTargetFallsBackToFirst(t *testing.T) {
	f := newFixture(t)
	disc := domain.Discovery{Targets: []domain.Target{
		{Name: "alpha", Kinds: []domain.TargetKind{domain.KindLib}, PackageName: "alpha"},
	}}
	m := f.model(t, disc, domain.DefaultSettings())
	m.Initialize(context.Background())

	target, ok := m.DefaultTarget()
	require.True(t, ok)
	assert.Equal(t, "alpha", target.Name)
}

func TestRefreshSkipsUnchangedTargetsNotification(t *testing.T) {
	f := newFixture(t)
	m := f.model(t, multiPackageDiscovery(), domain.DefaultSettings())

	notifications := 0
	m.Subscribe(domain.TopicTargets, func(domain.Topic) { notifications++ })

	m.Initialize(context.Background())
	assert.Equal(t, 1, notifications)

	// Identical discovery output fires nothing.
	m.Refresh(context.Background())
	assert.Equal(t, 1, notifications)
}

func TestSelectionNotifications(t *testing.T) {
	f := newFixture(t)
	m := f.model(t, multiPackageDiscovery(), domain.DefaultSettings())
	m.Initialize(context.Background())

	var fired []domain.Topic
	for _, topic := range []domain.Topic{
		domain.TopicPackage, domain.TopicBuildTarget, domain.TopicRunTarget,
		domain.TopicBenchTarget, domain.TopicPlatformTarget, domain.TopicFeatures,
	} {
		m.Subscribe(topic, func(changed domain.Topic) { fired = append(fired, changed) })
	}

	m.SetSelectedPackage("alpha")
	assert.Equal(t, []domain.Topic{domain.TopicPackage}, fired)

	fired = nil
	m.SetSelectedBuildTarget("server")
	m.ToggleFeature("tls")
	m.SetSelectedPackage("beta")

	// The package switch resets the build target and the features, one
	// notification each.
	assert.Equal(t, []domain.Topic{
		domain.TopicBuildTarget,
		domain.TopicFeatures,
		domain.TopicPackage,
		domain.TopicBuildTarget,
		domain.TopicFeatures,
	}, fired)
	assert.Empty(t, m.Selection().BuildTarget)
	assert.Empty(t, m.Selection().FeatureList())
}

func TestSelectionAccessorDetachedFromState(t *testing.T) {
	f := newFixture(t)
	m := f.model(t, multiPackageDiscovery(), domain.DefaultSettings())
	m.Initialize(context.Background())
	m.ToggleFeature("tls")

	// Writes through the returned feature map must not bypass the reducer.
	sel := m.Selection()
	sel.Features["zstd"] = struct{}{}
	delete(sel.Features, "tls")

	assert.True(t, m.Selection().HasFeature("tls"))
	assert.False(t, m.Selection().HasFeature("zstd"))
}

func TestSelectionPersistsAndRestores(t *testing.T) {
	f := newFixture(t)
	m := f.model(t, multiPackageDiscovery(), domain.DefaultSettings())
	m.Initialize(context.Background())

	m.SetSelectedPackage("alpha")
	m.SetSelectedRunTarget("server")
	m.ToggleFeature("tls")
	m.SetSelectedPlatformTarget("x86_64-unknown-linux-gnu")
	m.SetProfile(domain.ProfileRelease)

	// A second model over the same store sees the same selection.
	restored := f.model(t, multiPackageDiscovery(), domain.DefaultSettings())
	restored.Initialize(context.Background())

	sel := restored.Selection()
	assert.Equal(t, "alpha", sel.Package)
	assert.Equal(t, "server", sel.RunTarget)
	assert.Equal(t, []string{"tls"}, sel.FeatureList())
	assert.Equal(t, "x86_64-unknown-linux-gnu", sel.PlatformTarget)
	assert.Equal(t, "release", sel.Profile.Name)
}

func TestRestoreSkipsUnknownProfile(t *testing.T) {
	f := newFixture(t)
	m := f.model(t, multiPackageDiscovery(), domain.DefaultSettings())
	m.Initialize(context.Background())

	f.stored[domain.StateKey{Workspace: "/w/app", MultiPackage: true, Field: domain.TopicProfile.String()}.Encode()] = "vanished"

	restored := f.model(t, multiPackageDiscovery(), domain.DefaultSettings())
	restored.Initialize(context.Background())
	assert.True(t, restored.Selection().Profile.IsNone())
}

func TestDefinitionForAction(t *testing.T) {
	f := newFixture(t)
	m := f.model(t, multiPackageDiscovery(), domain.DefaultSettings())
	m.Initialize(context.Background())

	m.SetSelectedPackage("alpha")
	m.SetSelectedBuildTarget("server")
	m.SetSelectedRunTarget("server")
	m.SetSelectedBenchTarget("micro")
	m.ToggleFeature("tls")
	m.SetProfile(domain.ProfileRelease)

	def := m.DefinitionForAction(domain.ActionBuild, []string{"--verbose"})
	assert.Equal(t, domain.ActionBuild, def.Action)
	assert.Equal(t, "server", def.Target)
	assert.Equal(t, "alpha", def.Package)
	assert.Equal(t, []string{"tls"}, def.Features)
	assert.Equal(t, "release", def.Profile.Name)
	assert.Equal(t, []string{"--verbose"}, def.ExtraArgs)

	// Run and bench consult their own target slots.
	assert.Equal(t, "server", m.DefinitionForAction(domain.ActionRun, nil).Target)
	assert.Equal(t, "micro", m.DefinitionForAction(domain.ActionBench, nil).Target)

	// Clean never names a target.
	clean := m.DefinitionForAction(domain.ActionClean, nil)
	assert.Empty(t, clean.Target)
	assert.Empty(t, clean.TargetKind)
}

func TestDefinitionForActionLibSentinel(t *testing.T) {
	f := newFixture(t)
	m := f.model(t, multiPackageDiscovery(), domain.DefaultSettings())
	m.Initialize(context.Background())

	m.SetSelectedBuildTarget(domain.LibTargetSentinel)

	def := m.DefinitionForAction(domain.ActionBuild, nil)
	assert.Empty(t, def.Target)
	assert.Equal(t, domain.KindLib, def.TargetKind)
}

func TestDefinitionForActionAllFeatures(t *testing.T) {
	f := newFixture(t)
	m := f.model(t, multiPackageDiscovery(), domain.DefaultSettings())
	m.Initialize(context.Background())

	m.ToggleFeature("tls")
	m.ToggleFeature(domain.AllFeaturesSentinel)

	def := m.DefinitionForAction(domain.ActionBuild, nil)
	assert.True(t, def.AllFeatures)
	assert.Empty(t, def.Features)
}
