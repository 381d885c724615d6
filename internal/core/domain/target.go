// Package domain contains the core project model for capstan: targets,
// packages, profiles, selection state and the invocation values handed to the
// process launcher.
package domain

// TargetKind classifies a buildable unit as cargo reports it.
type TargetKind string

// Target kinds reported by cargo metadata. A target may carry several
// lib-like kinds at once (e.g. rlib + cdylib).
const (
	KindBin       TargetKind = "bin"
	KindLib       TargetKind = "lib"
	KindDylib     TargetKind = "dylib"
	KindStaticlib TargetKind = "staticlib"
	KindCdylib    TargetKind = "cdylib"
	KindRlib      TargetKind = "rlib"
	KindProcMacro TargetKind = "proc-macro"
	KindExample   TargetKind = "example"
	KindTest      TargetKind = "test"
	KindBench     TargetKind = "bench"
)

// libraryKinds are the kinds that all map to the --lib flag.
var libraryKinds = map[TargetKind]bool{
	KindLib:       true,
	KindDylib:     true,
	KindStaticlib: true,
	KindCdylib:    true,
	KindRlib:      true,
	KindProcMacro: true,
}

// Target is one buildable unit discovered in a project. Targets are created
// fresh on every discovery pass and never mutated afterwards; the whole list
// is replaced atomically on refresh.
type Target struct {
	// Name is unique within its package and kind.
	Name string

	// Kinds is never empty; discovery defaults it to {bin} when the
	// metadata omits it.
	Kinds []TargetKind

	// SourcePath is the absolute path to the target's root source file.
	SourcePath string

	// Edition is the language edition, informational only.
	Edition string

	// PackageName is the owning package. Empty for single-crate projects
	// that are not workspace members.
	PackageName string

	// PackageDirectory is the absolute path to the owning package root,
	// used to decide whether a --package flag is needed.
	PackageDirectory string
}

// HasKind reports whether the target carries the given kind.
func (t Target) HasKind(k TargetKind) bool {
	for _, have := range t.Kinds {
		if have == k {
			return true
		}
	}
	return false
}

// IsExecutable reports whether the target builds a binary.
func (t Target) IsExecutable() bool { return t.HasKind(KindBin) }

// IsLibrary reports whether any of the target's kinds is lib-like.
func (t Target) IsLibrary() bool {
	for _, k := range t.Kinds {
		if libraryKinds[k] {
			return true
		}
	}
	return false
}

// IsExample reports whether the target is an example.
func (t Target) IsExample() bool { return t.HasKind(KindExample) }

// IsTest reports whether the target is an integration test.
func (t Target) IsTest() bool { return t.HasKind(KindTest) }

// IsBench reports whether the target is a benchmark.
func (t Target) IsBench() bool { return t.HasKind(KindBench) }

// NormalizeKinds returns kinds unchanged when non-empty and {bin} otherwise.
func NormalizeKinds(kinds []TargetKind) []TargetKind {
	if len(kinds) == 0 {
		return []TargetKind{KindBin}
	}
	return kinds
}
