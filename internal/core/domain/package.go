package domain

// Package is a named unit of source code owning one or more targets and a set
// of declared features.
type Package struct {
	// Name is the package name as declared in its manifest.
	Name string

	// Version is the declared package version, informational.
	Version string

	// Edition is the default language edition for the package's targets.
	Edition string

	// ManifestPath is the absolute path to the package's manifest file.
	ManifestPath string

	// Features lists the declared feature names, sorted for determinism.
	Features []string
}
