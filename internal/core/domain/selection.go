package domain

import (
	"sort"
	"strings"
)

// Selection sentinels.
const (
	// LibTargetSentinel selects "the library target of the selected
	// package" without naming it.
	LibTargetSentinel = "lib"

	// AllFeaturesSentinel enables every declared feature. It is mutually
	// exclusive with any concrete feature name.
	AllFeaturesSentinel = "all-features"
)

// Selection is the per-workspace selection tuple. It is a plain value; all
// transitions go through Reduce so the cascade rules live in one place.
type Selection struct {
	// Package scopes actions to one package. Empty means "all packages".
	Package string

	// BuildTarget, RunTarget and BenchTarget each hold a target name, the
	// LibTargetSentinel, or empty for "no explicit choice".
	BuildTarget string
	RunTarget   string
	BenchTarget string

	// PlatformTarget is a target triple for cross builds, or empty.
	PlatformTarget string

	// Features is the enabled feature set. It never contains the
	// AllFeaturesSentinel alongside any other member.
	Features map[string]struct{}

	// Profile is the current build profile. The zero value behaves as the
	// none sentinel.
	Profile Profile
}

// NewSelection returns the documented defaults: no package, no targets, no
// features, the none profile.
func NewSelection() Selection {
	return Selection{Features: map[string]struct{}{}, Profile: ProfileNone}
}

// Clone returns a copy with its own feature set, safe to hand out to
// callers without exposing the original map.
func (s Selection) Clone() Selection {
	out := s
	out.Features = cloneFeatures(s.Features)
	return out
}

// FeatureList returns the enabled features sorted by name.
func (s Selection) FeatureList() []string {
	out := make([]string, 0, len(s.Features))
	for f := range s.Features {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// HasFeature reports membership in the feature set.
func (s Selection) HasFeature(name string) bool {
	_, ok := s.Features[name]
	return ok
}

// AllFeatures reports whether the all-features sentinel is enabled.
func (s Selection) AllFeatures() bool { return s.HasFeature(AllFeaturesSentinel) }

// EncodeFeatures renders the feature set for persistence.
func (s Selection) EncodeFeatures() string {
	return strings.Join(s.FeatureList(), ",")
}

// DecodeFeatures parses a persisted feature set.
func DecodeFeatures(encoded string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, f := range strings.Split(encoded, ",") {
		if f != "" {
			out[f] = struct{}{}
		}
	}
	return out
}

// OpKind enumerates the selection transitions.
type OpKind int

const (
	OpSelectPackage OpKind = iota
	OpSelectBuildTarget
	OpSelectRunTarget
	OpSelectBenchTarget
	OpSelectPlatformTarget
	OpToggleFeature
	OpSetProfile
)

// SelectionOp is one requested transition.
type SelectionOp struct {
	Kind    OpKind
	Value   string
	Profile Profile
}

// Reduce applies op to s and returns the new state plus the list of topics
// whose value actually changed, in a fixed order. It is a pure function; the
// input state is never mutated.
func Reduce(s Selection, op SelectionOp) (Selection, []Topic) {
	var changed []Topic
	next := s
	next.Features = cloneFeatures(s.Features)

	switch op.Kind {
	case OpSelectPackage:
		if s.Package == op.Value {
			return next, nil
		}
		next.Package = op.Value
		changed = append(changed, TopicPackage)
		// The target selections and the feature set are package-scoped
		// and become meaningless across a package switch.
		if next.BuildTarget != "" {
			next.BuildTarget = ""
			changed = append(changed, TopicBuildTarget)
		}
		if next.RunTarget != "" {
			next.RunTarget = ""
			changed = append(changed, TopicRunTarget)
		}
		if next.BenchTarget != "" {
			next.BenchTarget = ""
			changed = append(changed, TopicBenchTarget)
		}
		if next.PlatformTarget != "" {
			next.PlatformTarget = ""
			changed = append(changed, TopicPlatformTarget)
		}
		if len(next.Features) > 0 {
			next.Features = map[string]struct{}{}
			changed = append(changed, TopicFeatures)
		}

	case OpSelectBuildTarget:
		if s.BuildTarget != op.Value {
			next.BuildTarget = op.Value
			changed = append(changed, TopicBuildTarget)
		}

	case OpSelectRunTarget:
		if s.RunTarget != op.Value {
			next.RunTarget = op.Value
			changed = append(changed, TopicRunTarget)
		}

	case OpSelectBenchTarget:
		if s.BenchTarget != op.Value {
			next.BenchTarget = op.Value
			changed = append(changed, TopicBenchTarget)
		}

	case OpSelectPlatformTarget:
		if s.PlatformTarget != op.Value {
			next.PlatformTarget = op.Value
			changed = append(changed, TopicPlatformTarget)
		}

	case OpToggleFeature:
		next.Features = toggleFeature(s.Features, op.Value)
		// Even a transition to or from the empty set is a real change.
		changed = append(changed, TopicFeatures)

	case OpSetProfile:
		if !s.Profile.Equal(op.Profile) {
			next.Profile = op.Profile
			changed = append(changed, TopicProfile)
		}
	}

	return next, changed
}

// toggleFeature returns a fresh set with name toggled, enforcing the
// all-features exclusion rule.
func toggleFeature(features map[string]struct{}, name string) map[string]struct{} {
	if name == AllFeaturesSentinel {
		if _, on := features[AllFeaturesSentinel]; on {
			return map[string]struct{}{}
		}
		return map[string]struct{}{AllFeaturesSentinel: {}}
	}

	out := cloneFeatures(features)
	delete(out, AllFeaturesSentinel)
	if _, on := features[name]; on {
		delete(out, name)
	} else {
		out[name] = struct{}{}
	}
	return out
}

func cloneFeatures(features map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(features))
	for f := range features {
		out[f] = struct{}{}
	}
	return out
}
