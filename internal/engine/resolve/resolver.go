// Package resolve compiles task definitions into concrete process
// invocations. Resolution is pure: no I/O and no failure mode. A malformed
// definition degrades to the least-surprising command line rather than an
// error.
package resolve

import (
	"strings"

	"github.com/capstan-tools/capstan/internal/core/domain"
)

// Resolver turns task definitions into invocations against one project.
type Resolver struct {
	root     string
	settings domain.Settings
}

// NewResolver creates a Resolver for the project at root.
func NewResolver(root string, settings domain.Settings) *Resolver {
	return &Resolver{root: root, settings: settings}
}

// Resolve produces the process invocation for a definition. The argument
// order is a compatibility contract with cargo's flag precedence and must not
// be reordered.
func (r *Resolver) Resolve(def domain.TaskDefinition, disc domain.Discovery) domain.Invocation {
	assembled := r.assemble(def, disc)
	env := r.settings.EnvFor(def.Action)

	if override := strings.TrimSpace(r.settings.OverrideFor(def.Action)); override != "" {
		program, leading := domain.SplitCommand(override)
		return domain.Invocation{
			Program: program,
			Args:    spliceVerb(assembled, string(def.Action), leading),
			Env:     env,
			Dir:     r.root,
		}
	}

	program, leading := domain.SplitCommand(r.settings.CargoPath)
	if program == "" {
		program = "cargo"
	}
	args := make([]string, 0, len(leading)+len(assembled))
	args = append(args, leading...)
	args = append(args, assembled...)
	return domain.Invocation{Program: program, Args: args, Env: env, Dir: r.root}
}

// assemble builds the default argument sequence:
// verb, definition extras, profile, package scope, target kind, features,
// platform, static extras, per-action extras.
func (r *Resolver) assemble(def domain.TaskDefinition, disc domain.Discovery) []string {
	args := []string{string(def.Action)}
	args = append(args, def.ExtraArgs...)

	if !def.Profile.IsNone() {
		args = append(args, "--profile", def.Profile.Name)
	}
	if pkg := packageScope(def, disc); pkg != "" {
		args = append(args, "--package", pkg)
	}
	args = append(args, targetKindFlag(def, disc)...)
	if len(def.Features) > 0 {
		args = append(args, "--features", strings.Join(def.Features, ","))
	}
	if def.AllFeatures {
		args = append(args, "--all-features")
	}
	if def.PlatformTarget != "" {
		args = append(args, "--target", def.PlatformTarget)
	}
	args = append(args, r.settings.ExtraArgs...)
	args = append(args, r.settings.ForAction(def.Action).ExtraArgs...)
	return args
}

// packageScope resolves the --package value: the explicit override, else the
// named target's owning package. Scoping only applies to multi-package
// projects.
func packageScope(def domain.TaskDefinition, disc domain.Discovery) string {
	if !disc.MultiPackage() {
		return ""
	}
	if def.Package != "" {
		return def.Package
	}
	if def.Target != "" {
		if t, ok := disc.FindTarget(def.Target); ok {
			return t.PackageName
		}
	}
	return ""
}

// targetKindFlag maps the definition onto cargo's target selection flags. A
// definition with neither kind nor target is the intentional "everything"
// mode: no flag is emitted, and in particular no cached default target is
// consulted.
func targetKindFlag(def domain.TaskDefinition, disc domain.Discovery) []string {
	kind := def.TargetKind
	if kind == "" {
		if def.Target == "" {
			return nil
		}
		t, ok := disc.FindTarget(def.Target)
		if !ok {
			return nil
		}
		switch {
		case t.IsExecutable():
			kind = domain.KindBin
		case t.IsLibrary():
			kind = domain.KindLib
		case t.IsExample():
			kind = domain.KindExample
		case t.IsTest():
			kind = domain.KindTest
		case t.IsBench():
			kind = domain.KindBench
		default:
			return nil
		}
	}

	switch kind {
	case domain.KindBin:
		if def.Target == "" {
			return nil
		}
		return []string{"--bin", def.Target}
	case domain.KindLib, domain.KindDylib, domain.KindStaticlib, domain.KindCdylib, domain.KindRlib, domain.KindProcMacro:
		return []string{"--lib"}
	case domain.KindExample:
		if def.Target == "" {
			return nil
		}
		return []string{"--example", def.Target}
	case domain.KindTest:
		if def.Target == "" {
			return nil
		}
		return []string{"--test", def.Target}
	case domain.KindBench:
		if def.Target == "" {
			return nil
		}
		return []string{"--bench", def.Target}
	}
	return nil
}

// spliceVerb replaces the action verb token in args with the override's
// leading arguments, preserving everything that followed the verb. When the
// verb is absent the override args are prepended instead.
func spliceVerb(args []string, verb string, overrideArgs []string) []string {
	for i, arg := range args {
		if arg == verb {
			out := make([]string, 0, len(args)-1+len(overrideArgs))
			out = append(out, args[:i]...)
			out = append(out, overrideArgs...)
			out = append(out, args[i+1:]...)
			return out
		}
	}
	out := make([]string, 0, len(args)+len(overrideArgs))
	out = append(out, overrideArgs...)
	out = append(out, args...)
	return out
}
