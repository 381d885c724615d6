package cargo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/capstan-tools/capstan/internal/core/domain"
)

// fromConventions scans the conventional crate layout: src/main.rs implies a
// bin target, src/lib.rs a lib target, src/bin/ one bin per source file, and
// examples/, tests/, benches/ one target of the matching kind per source
// file. Unreadable directories contribute nothing and are only logged; the
// result is always a (possibly empty) model.
func (s *Source) fromConventions(projectRoot string) domain.Discovery {
	manifestPath := filepath.Join(projectRoot, "Cargo.toml")
	doc, manifestFound := s.manifest.Load(manifestPath)

	packageName, ok := doc.Get("package.name")
	if !ok {
		packageName = filepath.Base(projectRoot)
	}

	var disc domain.Discovery
	if manifestFound {
		disc.Packages = []domain.Package{{
			Name:         packageName,
			Version:      stringOr(doc, "package.version", ""),
			Edition:      stringOr(doc, "package.edition", ""),
			ManifestPath: manifestPath,
			Features:     doc.SectionKeys("features"),
		}}
	}

	mainPath := filepath.Join(projectRoot, "src", "main.rs")
	if fileExists(mainPath) {
		disc.Targets = append(disc.Targets, s.conventionTarget(packageName, domain.KindBin, mainPath, packageName, projectRoot))
	}
	libPath := filepath.Join(projectRoot, "src", "lib.rs")
	if fileExists(libPath) {
		disc.Targets = append(disc.Targets, s.conventionTarget(packageName, domain.KindLib, libPath, packageName, projectRoot))
	}

	disc.Targets = append(disc.Targets, s.scanSourceDir(filepath.Join(projectRoot, "src", "bin"), domain.KindBin, packageName, projectRoot)...)
	disc.Targets = append(disc.Targets, s.scanSourceDir(filepath.Join(projectRoot, "examples"), domain.KindExample, packageName, projectRoot)...)
	disc.Targets = append(disc.Targets, s.scanSourceDir(filepath.Join(projectRoot, "tests"), domain.KindTest, packageName, projectRoot)...)
	disc.Targets = append(disc.Targets, s.scanSourceDir(filepath.Join(projectRoot, "benches"), domain.KindBench, packageName, projectRoot)...)

	return disc
}

// scanSourceDir yields one target per .rs file in dir, named after the file.
func (s *Source) scanSourceDir(dir string, kind domain.TargetKind, packageName, packageDir string) []domain.Target {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn(fmt.Sprintf("skipping unreadable directory %s: %v", dir, err))
		}
		return nil
	}

	var targets []domain.Target
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".rs") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".rs")
		targets = append(targets, s.conventionTarget(name, kind, filepath.Join(dir, entry.Name()), packageName, packageDir))
	}
	return targets
}

func (s *Source) conventionTarget(name string, kind domain.TargetKind, sourcePath, packageName, packageDir string) domain.Target {
	return domain.Target{
		Name:             name,
		Kinds:            []domain.TargetKind{kind},
		SourcePath:       sourcePath,
		PackageName:      packageName,
		PackageDirectory: packageDir,
	}
}

func stringOr(doc domain.Document, path, fallback string) string {
	if v, ok := doc.Get(path); ok {
		return v
	}
	return fallback
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
