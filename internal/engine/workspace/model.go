// Package workspace owns the aggregate project model: the parsed manifest,
// the discovered target list, the profile registry and the current selection
// state. It is the single writer of selection state; all callers run on one
// logical flow, so no locking is needed here.
package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/capstan-tools/capstan/internal/core/domain"
	"github.com/capstan-tools/capstan/internal/core/ports"
)

// Model is the aggregate root for one project.
type Model struct {
	root     string
	logger   ports.Logger
	source   ports.MetadataSource
	manifest ports.ManifestLoader
	store    ports.SelectionStore
	settings domain.Settings

	notifier *domain.Notifier

	doc         domain.Document
	docFound    bool
	discovery   domain.Discovery
	platforms   []string
	profiles    *domain.ProfileRegistry
	selection   domain.Selection
	current     *domain.Target
	fingerprint uint64
	refreshed   bool
}

// New creates a Model for the project at root. Call Initialize before use.
func New(root string, logger ports.Logger, source ports.MetadataSource, manifest ports.ManifestLoader, store ports.SelectionStore, settings domain.Settings) *Model {
	return &Model{
		root:      root,
		logger:    logger,
		source:    source,
		manifest:  manifest,
		store:     store,
		settings:  settings,
		notifier:  domain.NewNotifier(),
		profiles:  domain.NewProfileRegistry(),
		selection: domain.NewSelection(),
	}
}

// Initialize runs the first discovery pass and restores the persisted
// selection. Like Refresh it always completes so callers always have some
// state to render, even if empty.
func (m *Model) Initialize(ctx context.Context) {
	m.Refresh(ctx)
	m.restoreSelection()
}

// Refresh re-reads the manifest, re-runs discovery and the platform query
// (concurrently), rebuilds the profile registry and recomputes the cached
// default target. Sub-step failures are logged and swallowed. A refresh that
// produces an identical target list fires no targets notification.
func (m *Model) Refresh(ctx context.Context) {
	m.doc, m.docFound = m.manifest.Load(filepath.Join(m.root, "Cargo.toml"))

	var (
		disc      domain.Discovery
		platforms []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		disc = m.source.Discover(gctx, m.root)
		return nil
	})
	g.Go(func() error {
		platforms = m.source.Platforms(gctx)
		return nil
	})
	// Both branches recover internally; Wait only propagates ctx errors.
	if err := g.Wait(); err != nil {
		m.logger.Warn(fmt.Sprintf("refresh interrupted: %v", err))
	}

	m.platforms = platforms
	m.rebuildProfiles()

	fingerprint := disc.Fingerprint()
	changed := !m.refreshed || fingerprint != m.fingerprint
	m.discovery = disc
	m.fingerprint = fingerprint
	m.refreshed = true
	m.computeDefaultTarget()

	if changed {
		m.notifier.Publish(domain.TopicTargets)
	}
}

// rebuildProfiles clears custom profiles and rediscovers them from the
// manifest and the cargo config files. The clear must happen first so stale
// names do not accumulate across refreshes.
func (m *Model) rebuildProfiles() {
	m.profiles.ClearCustom()

	// Both section spellings appear in the wild, depending on the tool
	// version that wrote the manifest.
	for _, name := range m.doc.SectionKeys("profile") {
		m.profiles.AddCustom(name)
	}
	for _, name := range m.doc.SectionKeys("profiles") {
		m.profiles.AddCustom(name)
	}

	configPaths := []string{filepath.Join(m.root, ".cargo", "config.toml")}
	if home, err := os.UserHomeDir(); err == nil {
		configPaths = append(configPaths, filepath.Join(home, ".cargo", "config.toml"))
	}
	for _, path := range configPaths {
		doc, ok := m.manifest.Load(path)
		if !ok {
			continue
		}
		for _, name := range doc.SectionKeys("profile") {
			m.profiles.AddCustom(name)
		}
	}
}

// computeDefaultTarget prefers the first bin target in discovery order, then
// the first target of any kind. Most interactive actions only make sense for
// binaries.
func (m *Model) computeDefaultTarget() {
	m.current = nil
	for i := range m.discovery.Targets {
		if m.discovery.Targets[i].IsExecutable() {
			m.current = &m.discovery.Targets[i]
			return
		}
	}
	if len(m.discovery.Targets) > 0 {
		m.current = &m.discovery.Targets[0]
	}
}

// SetSelectedPackage selects a package, or all packages when name is empty.
// Changing the package resets every package-scoped selection; one
// notification fires per field whose value actually changed.
func (m *Model) SetSelectedPackage(name string) {
	m.apply(domain.SelectionOp{Kind: domain.OpSelectPackage, Value: name})
}

// SetSelectedBuildTarget selects the build target by name, or the
// LibTargetSentinel for the library target.
func (m *Model) SetSelectedBuildTarget(name string) {
	m.apply(domain.SelectionOp{Kind: domain.OpSelectBuildTarget, Value: name})
}

// SetSelectedRunTarget selects the run target.
func (m *Model) SetSelectedRunTarget(name string) {
	m.apply(domain.SelectionOp{Kind: domain.OpSelectRunTarget, Value: name})
}

// SetSelectedBenchTarget selects the benchmark target.
func (m *Model) SetSelectedBenchTarget(name string) {
	m.apply(domain.SelectionOp{Kind: domain.OpSelectBenchTarget, Value: name})
}

// SetSelectedPlatformTarget selects the cross-compilation triple.
func (m *Model) SetSelectedPlatformTarget(triple string) {
	m.apply(domain.SelectionOp{Kind: domain.OpSelectPlatformTarget, Value: triple})
}

// ToggleFeature flips one feature, enforcing the all-features exclusion.
func (m *Model) ToggleFeature(name string) {
	m.apply(domain.SelectionOp{Kind: domain.OpToggleFeature, Value: name})
}

// SetProfile switches the current profile.
func (m *Model) SetProfile(p domain.Profile) {
	m.apply(domain.SelectionOp{Kind: domain.OpSetProfile, Profile: p})
}

// apply runs the reducer, persists the fields that changed and notifies.
// The mutate-and-notify sequence is synchronous and never suspends, so two
// selection changes cannot interleave.
func (m *Model) apply(op domain.SelectionOp) {
	next, changed := domain.Reduce(m.selection, op)
	m.selection = next
	if len(changed) == 0 {
		return
	}
	for _, topic := range changed {
		m.persist(topic)
	}
	m.notifier.Publish(changed...)
}

func (m *Model) persist(topic domain.Topic) {
	var value string
	switch topic {
	case domain.TopicPackage:
		value = m.selection.Package
	case domain.TopicBuildTarget:
		value = m.selection.BuildTarget
	case domain.TopicRunTarget:
		value = m.selection.RunTarget
	case domain.TopicBenchTarget:
		value = m.selection.BenchTarget
	case domain.TopicPlatformTarget:
		value = m.selection.PlatformTarget
	case domain.TopicFeatures:
		value = m.selection.EncodeFeatures()
	case domain.TopicProfile:
		value = m.selection.Profile.Name
	default:
		return
	}
	if err := m.store.Put(m.stateKey(topic), value); err != nil {
		m.logger.Warn(fmt.Sprintf("failed to persist %s: %v", topic, err))
	}
}

func (m *Model) stateKey(topic domain.Topic) domain.StateKey {
	return domain.StateKey{
		Workspace:    m.root,
		MultiPackage: m.discovery.MultiPackage(),
		Field:        topic.String(),
	}
}

// restoreSelection loads the persisted selection. Absent keys keep their
// documented defaults; store errors are logged and skipped.
func (m *Model) restoreSelection() {
	restore := func(topic domain.Topic) (string, bool) {
		value, ok, err := m.store.Get(m.stateKey(topic))
		if err != nil {
			m.logger.Warn(fmt.Sprintf("failed to restore %s: %v", topic, err))
			return "", false
		}
		return value, ok
	}

	if v, ok := restore(domain.TopicPackage); ok {
		m.selection.Package = v
	}
	if v, ok := restore(domain.TopicBuildTarget); ok {
		m.selection.BuildTarget = v
	}
	if v, ok := restore(domain.TopicRunTarget); ok {
		m.selection.RunTarget = v
	}
	if v, ok := restore(domain.TopicBenchTarget); ok {
		m.selection.BenchTarget = v
	}
	if v, ok := restore(domain.TopicPlatformTarget); ok {
		m.selection.PlatformTarget = v
	}
	if v, ok := restore(domain.TopicFeatures); ok {
		m.selection.Features = domain.DecodeFeatures(v)
	}
	if v, ok := restore(domain.TopicProfile); ok {
		if p, found := m.profiles.Lookup(v); found {
			m.selection.Profile = p
		}
	}
}

// BuildArguments assembles the whole-workspace argument list for an action.
// The order is a compatibility contract with cargo's flag precedence rules:
// verb, profile, package scope, target kind, platform, features, static
// extras, caller extras.
func (m *Model) BuildArguments(action domain.BuildAction, extraArgs []string) []string {
	args := []string{string(action)}

	if p := m.selection.Profile; !p.IsNone() {
		args = append(args, "--profile", p.Name)
	}
	if m.selection.Package != "" && m.discovery.MultiPackage() {
		args = append(args, "--package", m.selection.Package)
	}
	if action != domain.ActionClean && m.current != nil {
		switch {
		case m.current.IsExecutable():
			args = append(args, "--bin", m.current.Name)
		case m.current.IsLibrary():
			args = append(args, "--lib")
		}
	}
	if m.selection.PlatformTarget != "" {
		args = append(args, "--target", m.selection.PlatformTarget)
	}
	if len(m.settings.Features) > 0 {
		args = append(args, "--features", strings.Join(m.settings.Features, ","))
	}
	if m.settings.AllFeatures {
		args = append(args, "--all-features")
	}
	if m.settings.NoDefaultFeatures {
		args = append(args, "--no-default-features")
	}
	args = append(args, m.settings.ForAction(action).ExtraArgs...)
	args = append(args, extraArgs...)
	return args
}

// DefinitionForAction builds a task definition from the current selection.
// The per-action target selection is consulted: run uses the run target,
// bench the benchmark target, everything else the build target.
func (m *Model) DefinitionForAction(action domain.BuildAction, extraArgs []string) domain.TaskDefinition {
	def := domain.TaskDefinition{
		Action:         action,
		Profile:        m.selection.Profile,
		Package:        m.selection.Package,
		PlatformTarget: m.selection.PlatformTarget,
		ExtraArgs:      extraArgs,
	}
	if m.selection.AllFeatures() {
		def.AllFeatures = true
	} else {
		def.Features = m.selection.FeatureList()
	}

	var selected string
	switch action {
	case domain.ActionRun:
		selected = m.selection.RunTarget
	case domain.ActionBench:
		selected = m.selection.BenchTarget
	case domain.ActionClean:
		// clean operates on the whole tree, never on one target
	default:
		selected = m.selection.BuildTarget
	}
	if selected == domain.LibTargetSentinel {
		def.TargetKind = domain.KindLib
	} else {
		def.Target = selected
	}
	return def
}

// Subscribe registers a listener for a change topic. Delivery is synchronous
// in registration order; a panicking listener propagates to the mutator.
func (m *Model) Subscribe(topic domain.Topic, fn func(domain.Topic)) {
	m.notifier.Subscribe(topic, fn)
}

// Root returns the project root directory.
func (m *Model) Root() string { return m.root }

// Selection returns a copy of the current selection state. Mutating the
// returned value, its feature set included, does not touch model state.
func (m *Model) Selection() domain.Selection { return m.selection.Clone() }

// Discovery returns the last discovery result.
func (m *Model) Discovery() domain.Discovery { return m.discovery }

// Targets returns the discovered targets in discovery order.
func (m *Model) Targets() []domain.Target { return m.discovery.Targets }

// Packages returns the discovered member packages.
func (m *Model) Packages() []domain.Package { return m.discovery.Packages }

// Platforms returns the installed platform triples.
func (m *Model) Platforms() []string { return m.platforms }

// Profiles returns the known profiles: built-ins first, then discovered
// custom profiles.
func (m *Model) Profiles() []domain.Profile { return m.profiles.All() }

// ProfileByName resolves a profile by name.
func (m *Model) ProfileByName(name string) (domain.Profile, bool) {
	return m.profiles.Lookup(name)
}

// DefaultTarget returns the cached default target, if any.
func (m *Model) DefaultTarget() (domain.Target, bool) {
	if m.current == nil {
		return domain.Target{}, false
	}
	return *m.current, true
}

// Manifest returns the parsed project manifest; the boolean is false when the
// manifest file is absent.
func (m *Model) Manifest() (domain.Document, bool) { return m.doc, m.docFound }
