package domain

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Discovery is the result of one metadata pass over a project. It is replaced
// wholesale on every refresh; callers must not mutate it.
type Discovery struct {
	// Targets lists every discovered target in discovery order.
	Targets []Target

	// Packages lists the workspace member packages, in metadata order.
	Packages []Package

	// WorkspaceMembers holds the member identifiers exactly as the tool
	// reported them.
	WorkspaceMembers []string

	// WorkspaceRoot is the reported workspace root directory.
	WorkspaceRoot string
}

// MultiPackage reports whether more than one distinct package name appears
// across the known targets. The --package scoping flag is only meaningful in
// that case.
func (d Discovery) MultiPackage() bool {
	seen := ""
	for _, t := range d.Targets {
		if t.PackageName == "" {
			continue
		}
		if seen == "" {
			seen = t.PackageName
			continue
		}
		if t.PackageName != seen {
			return true
		}
	}
	return false
}

// FindTarget returns the first target with the given name, in discovery order.
func (d Discovery) FindTarget(name string) (Target, bool) {
	for _, t := range d.Targets {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}

// PackageByName returns the named package.
func (d Discovery) PackageByName(name string) (Package, bool) {
	for _, p := range d.Packages {
		if p.Name == name {
			return p, true
		}
	}
	return Package{}, false
}

// Fingerprint digests the discovery into a stable hash. Two passes over
// unchanged tool output produce the same fingerprint, which lets the
// workspace model skip redundant change notifications.
func (d Discovery) Fingerprint() uint64 {
	h := xxhash.New()
	for _, t := range d.Targets {
		_, _ = h.WriteString(t.PackageName)
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(t.Name)
		_, _ = h.WriteString("\x00")
		for _, k := range t.Kinds {
			_, _ = h.WriteString(string(k))
			_, _ = h.WriteString(",")
		}
		_, _ = h.WriteString(t.SourcePath)
		_, _ = h.WriteString("\x00")
	}
	for _, p := range d.Packages {
		_, _ = h.WriteString(p.Name)
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(strconv.Itoa(len(p.Features)))
		for _, f := range p.Features {
			_, _ = h.WriteString(f)
			_, _ = h.WriteString(",")
		}
	}
	return h.Sum64()
}
