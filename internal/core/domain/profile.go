package domain

// Profile is a named build configuration. Identity and equality are by name.
type Profile struct {
	Name    string
	Builtin bool
}

// Built-in profiles. ProfileNone is the sentinel meaning "emit no profile
// flag"; the rest mirror cargo's conventional profiles.
var (
	ProfileNone    = Profile{Name: "none", Builtin: true}
	ProfileDev     = Profile{Name: "dev", Builtin: true}
	ProfileRelease = Profile{Name: "release", Builtin: true}
	ProfileTest    = Profile{Name: "test", Builtin: true}
	ProfileBench   = Profile{Name: "bench", Builtin: true}
)

var builtinProfiles = []Profile{ProfileNone, ProfileDev, ProfileRelease, ProfileTest, ProfileBench}

// IsNone reports whether the profile is the no-flag sentinel. The zero value
// counts as none so an unset selection behaves like the default.
func (p Profile) IsNone() bool { return p.Name == "" || p.Name == ProfileNone.Name }

// Equal compares profiles by name.
func (p Profile) Equal(other Profile) bool { return p.Name == other.Name }

// ProfileRegistry holds the built-in profiles plus the custom ones discovered
// in manifest and cargo config files. It is owned by the workspace model;
// there is no package-level registry state.
type ProfileRegistry struct {
	custom []Profile
	seen   map[string]bool
}

// NewProfileRegistry returns a registry containing only the built-ins.
func NewProfileRegistry() *ProfileRegistry {
	return &ProfileRegistry{seen: make(map[string]bool)}
}

// AddCustom registers a discovered profile name. Empty names, built-in names
// and duplicates are ignored.
func (r *ProfileRegistry) AddCustom(name string) {
	if name == "" || r.seen[name] {
		return
	}
	for _, b := range builtinProfiles {
		if b.Name == name {
			return
		}
	}
	r.seen[name] = true
	r.custom = append(r.custom, Profile{Name: name})
}

// ClearCustom drops all custom profiles. It must run before every
// rediscovery pass so stale profiles do not accumulate across refreshes.
func (r *ProfileRegistry) ClearCustom() {
	r.custom = nil
	r.seen = make(map[string]bool)
}

// All returns the built-in profiles followed by the custom ones in insertion
// order.
func (r *ProfileRegistry) All() []Profile {
	out := make([]Profile, 0, len(builtinProfiles)+len(r.custom))
	out = append(out, builtinProfiles...)
	out = append(out, r.custom...)
	return out
}

// Lookup resolves a profile by name, built-in or custom.
func (r *ProfileRegistry) Lookup(name string) (Profile, bool) {
	for _, p := range r.All() {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}
