// Package cargo discovers a project's structure from the build tool's
// metadata subcommand, falling back to directory conventions when the
// subcommand fails.
package cargo

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"go.trai.ch/zerr"

	"github.com/capstan-tools/capstan/internal/core/domain"
	"github.com/capstan-tools/capstan/internal/core/ports"
)

// Source implements ports.MetadataSource.
type Source struct {
	invoker  ports.Invoker
	logger   ports.Logger
	manifest ports.ManifestLoader
	settings domain.Settings
}

// NewSource creates a new Source.
func NewSource(invoker ports.Invoker, logger ports.Logger, manifest ports.ManifestLoader, settings domain.Settings) *Source {
	return &Source{
		invoker:  invoker,
		logger:   logger,
		manifest: manifest,
		settings: settings,
	}
}

// Discover returns the project model for the given root. Metadata failures of
// any sort degrade to the directory-convention fallback; Discover itself
// never fails.
func (s *Source) Discover(ctx context.Context, projectRoot string) domain.Discovery {
	disc, err := s.fromMetadata(ctx, projectRoot)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("cargo metadata failed, scanning directory conventions: %v", err))
		return s.fromConventions(projectRoot)
	}
	return disc
}

func (s *Source) fromMetadata(ctx context.Context, projectRoot string) (domain.Discovery, error) {
	program, leading := domain.SplitCommand(s.settings.CargoPath)
	if program == "" {
		program = "cargo"
	}
	inv := domain.Invocation{
		Program: program,
		Args:    append(leading, "metadata", "--format-version", "1", "--no-deps"),
		Dir:     projectRoot,
	}

	out, err := s.invoker.Capture(ctx, inv)
	if err != nil {
		return domain.Discovery{}, err
	}

	doc := gjson.Parse(out)
	if !doc.Get("packages").Exists() {
		return domain.Discovery{}, zerr.With(domain.ErrMetadataUnavailable, "reason", "no packages array in output")
	}

	disc := domain.Discovery{
		WorkspaceRoot: doc.Get("workspace_root").String(),
	}
	for _, member := range doc.Get("workspace_members").Array() {
		disc.WorkspaceMembers = append(disc.WorkspaceMembers, member.String())
	}

	for _, pkg := range doc.Get("packages").Array() {
		name := pkg.Get("name").String()
		manifestPath := pkg.Get("manifest_path").String()
		if !isWorkspaceMember(name, manifestPath, disc.WorkspaceRoot, disc.WorkspaceMembers) {
			continue
		}

		disc.Packages = append(disc.Packages, domain.Package{
			Name:         name,
			Version:      pkg.Get("version").String(),
			Edition:      pkg.Get("edition").String(),
			ManifestPath: manifestPath,
			Features:     featureNames(pkg.Get("features")),
		})

		packageDir := filepath.Dir(manifestPath)
		for _, t := range pkg.Get("targets").Array() {
			var kinds []domain.TargetKind
			for _, k := range t.Get("kind").Array() {
				kinds = append(kinds, domain.TargetKind(k.String()))
			}
			disc.Targets = append(disc.Targets, domain.Target{
				Name:             t.Get("name").String(),
				Kinds:            domain.NormalizeKinds(kinds),
				SourcePath:       t.Get("src_path").String(),
				Edition:          t.Get("edition").String(),
				PackageName:      name,
				PackageDirectory: packageDir,
			})
		}
	}

	return disc, nil
}

// isWorkspaceMember applies the membership test: the manifest path is
// textually prefixed by the workspace root, or any member identifier contains
// the package name. Some tool versions report membership inconsistently,
// hence the OR. The substring match (rather than exact identity) is the
// observed behavior and is kept as-is.
func isWorkspaceMember(name, manifestPath, workspaceRoot string, members []string) bool {
	if workspaceRoot != "" && strings.HasPrefix(manifestPath, workspaceRoot) {
		return true
	}
	for _, m := range members {
		if name != "" && strings.Contains(m, name) {
			return true
		}
	}
	return false
}

// featureNames retains only the declared names, sorted. gjson map iteration
// order is not stable, and discovery must be idempotent.
func featureNames(features gjson.Result) []string {
	if !features.Exists() {
		return nil
	}
	var names []string
	for name := range features.Map() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var _ ports.MetadataSource = (*Source)(nil)
