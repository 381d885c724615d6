package domain

// BuildAction is a cargo subcommand verb the tool knows how to assemble
// arguments for. Unrecognized verbs pass through with no special flags.
type BuildAction string

const (
	ActionBuild BuildAction = "build"
	ActionRun   BuildAction = "run"
	ActionTest  BuildAction = "test"
	ActionBench BuildAction = "bench"
	ActionClean BuildAction = "clean"
	ActionDoc   BuildAction = "doc"
)

// KnownAction reports whether the verb is one of the assembled actions.
func KnownAction(a BuildAction) bool {
	switch a {
	case ActionBuild, ActionRun, ActionTest, ActionBench, ActionClean, ActionDoc:
		return true
	}
	return false
}

// TaskDefinition describes one requested invocation. It is constructed per
// invocation, resolved into an Invocation, and discarded; it is never
// persisted or mutated after construction.
type TaskDefinition struct {
	// Action is the requested verb.
	Action BuildAction

	// Target optionally names a specific target. Empty means "everything":
	// the resolver must not fall back to any cached current target.
	Target string

	// TargetKind optionally forces the target-kind flag. When empty and a
	// Target is named, the kind is inferred from the discovered target.
	TargetKind TargetKind

	// Profile overrides the profile flag. A none/zero profile emits no
	// flag.
	Profile Profile

	// Features is an explicit feature list, comma-joined into a single
	// --features argument when non-empty.
	Features []string

	// AllFeatures adds --all-features, independently of Features.
	AllFeatures bool

	// Package overrides package scoping. When empty the resolver falls
	// back to the named target's owning package.
	Package string

	// PlatformTarget is a target triple for the --target flag.
	PlatformTarget string

	// ExtraArgs are raw caller-supplied arguments spliced in directly
	// after the action verb, before any assembled flags.
	ExtraArgs []string
}
