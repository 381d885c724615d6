package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/capstan-tools/capstan/internal/core/domain"
	"github.com/capstan-tools/capstan/internal/engine/resolve"
)

func discovery() domain.Discovery {
	return domain.Discovery{
		Targets: []domain.Target{
			{Name: "alpha", Kinds: []domain.TargetKind{domain.KindLib}, PackageName: "alpha"},
			{Name: "server", Kinds: []domain.TargetKind{domain.KindBin}, PackageName: "alpha"},
			{Name: "worker", Kinds: []domain.TargetKind{domain.KindBin}, PackageName: "beta"},
			{Name: "demo", Kinds: []domain.TargetKind{domain.KindExample}, PackageName: "alpha"},
			{Name: "integration", Kinds: []domain.TargetKind{domain.KindTest}, PackageName: "alpha"},
			{Name: "micro", Kinds: []domain.TargetKind{domain.KindBench}, PackageName: "alpha"},
		},
	}
}

func TestResolveDefaults(t *testing.T) {
	r := resolve.NewResolver("/w/app", domain.DefaultSettings())

	inv := r.Resolve(domain.TaskDefinition{Action: domain.ActionBuild, Target: "server"}, discovery())
	assert.Equal(t, "cargo", inv.Program)
	assert.Equal(t, []string{"build", "--package", "alpha", "--bin", "server"}, inv.Args)
	assert.Equal(t, "/w/app", inv.Dir)
}

func TestResolveEverythingMode(t *testing.T) {
	r := resolve.NewResolver("/w/app", domain.DefaultSettings())

	// No target and no kind: the whole workspace, no target flags at all.
	inv := r.Resolve(domain.TaskDefinition{Action: domain.ActionBuild}, discovery())
	assert.Equal(t, []string{"build"}, inv.Args)
}

func TestResolveKindInference(t *testing.T) {
	r := resolve.NewResolver("/w/app", domain.DefaultSettings())
	disc := discovery()

	tests := []struct {
		target string
		flags  []string
	}{
		{"server", []string{"--bin", "server"}},
		{"alpha", []string{"--lib"}},
		{"demo", []string{"--example", "demo"}},
		{"integration", []string{"--test", "integration"}},
		{"micro", []string{"--bench", "micro"}},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			inv := r.Resolve(domain.TaskDefinition{Action: domain.ActionBuild, Target: tt.target}, disc)
			assert.Equal(t, append([]string{"build", "--package", "alpha"}, tt.flags...), inv.Args)
		})
	}
}

func TestResolveExplicitKindWins(t *testing.T) {
	r := resolve.NewResolver("/w/app", domain.DefaultSettings())

	inv := r.Resolve(domain.TaskDefinition{
		Action:     domain.ActionBuild,
		TargetKind: domain.KindLib,
		Package:    "alpha",
	}, discovery())
	assert.Equal(t, []string{"build", "--package", "alpha", "--lib"}, inv.Args)
}

func TestResolveUnknownTarget(t *testing.T) {
	r := resolve.NewResolver("/w/app", domain.DefaultSettings())

	// A vanished target yields no kind flag and no package scope.
	inv := r.Resolve(domain.TaskDefinition{Action: domain.ActionBuild, Target: "ghost"}, discovery())
	assert.Equal(t, []string{"build"}, inv.Args)
}

func TestResolveSinglePackageSkipsScope(t *testing.T) {
	r := resolve.NewResolver("/w/app", domain.DefaultSettings())
	disc := domain.Discovery{Targets: []domain.Target{
		{Name: "solo", Kinds: []domain.TargetKind{domain.KindBin}, PackageName: "solo"},
	}}

	inv := r.Resolve(domain.TaskDefinition{Action: domain.ActionBuild, Target: "solo", Package: "solo"}, disc)
	assert.Equal(t, []string{"build", "--bin", "solo"}, inv.Args)
}

func TestResolveFullArgumentOrder(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.ExtraArgs = []string{"--locked"}
	settings.Bench = domain.CommandSettings{ExtraArgs: []string{"--quiet"}}
	r := resolve.NewResolver("/w/app", settings)

	inv := r.Resolve(domain.TaskDefinition{
		Action:         domain.ActionBench,
		Target:         "micro",
		Profile:        domain.ProfileRelease,
		Features:       []string{"tls", "zstd"},
		PlatformTarget: "aarch64-apple-darwin",
		ExtraArgs:      []string{"--color", "always"},
	}, discovery())

	assert.Equal(t, []string{
		"bench",
		"--color", "always",
		"--profile", "release",
		"--package", "alpha",
		"--bench", "micro",
		"--features", "tls,zstd",
		"--target", "aarch64-apple-darwin",
		"--locked",
		"--quiet",
	}, inv.Args)
}

func TestResolveAllFeatures(t *testing.T) {
	r := resolve.NewResolver("/w/app", domain.DefaultSettings())

	inv := r.Resolve(domain.TaskDefinition{Action: domain.ActionBuild, AllFeatures: true}, discovery())
	assert.Equal(t, []string{"build", "--all-features"}, inv.Args)
}

func TestResolveCommandOverride(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Run = domain.CommandSettings{CommandOverride: "cargo-watch -x"}
	r := resolve.NewResolver("/w/app", settings)

	inv := r.Resolve(domain.TaskDefinition{Action: domain.ActionRun, Target: "server"}, discovery())

	// The override replaces the verb token in place.
	assert.Equal(t, "cargo-watch", inv.Program)
	assert.Equal(t, []string{"-x", "--package", "alpha", "--bin", "server"}, inv.Args)
}

func TestResolveOverrideOnlyForRunAndTest(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Run = domain.CommandSettings{CommandOverride: "cargo-watch -x"}
	r := resolve.NewResolver("/w/app", settings)

	// The run override does not leak into build.
	inv := r.Resolve(domain.TaskDefinition{Action: domain.ActionBuild, Target: "server"}, discovery())
	assert.Equal(t, "cargo", inv.Program)
}

func TestResolveWrapperCargoPath(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.CargoPath = "sccache cargo"
	r := resolve.NewResolver("/w/app", settings)

	inv := r.Resolve(domain.TaskDefinition{Action: domain.ActionBuild}, discovery())
	assert.Equal(t, "sccache", inv.Program)
	assert.Equal(t, []string{"cargo", "build"}, inv.Args)
}

func TestResolveEnvironment(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.ExtraEnv = map[string]string{"RUST_LOG": "info", "SHARED": "base"}
	settings.Run = domain.CommandSettings{ExtraEnv: map[string]string{"SHARED": "run"}}
	r := resolve.NewResolver("/w/app", settings)

	run := r.Resolve(domain.TaskDefinition{Action: domain.ActionRun}, discovery())
	assert.Equal(t, "run", run.Env["SHARED"])
	assert.Equal(t, "info", run.Env["RUST_LOG"])

	// Bench shares the run environment slot, build gets only the base.
	bench := r.Resolve(domain.TaskDefinition{Action: domain.ActionBench}, discovery())
	assert.Equal(t, "run", bench.Env["SHARED"])

	build := r.Resolve(domain.TaskDefinition{Action: domain.ActionBuild}, discovery())
	assert.Equal(t, "base", build.Env["SHARED"])
}
