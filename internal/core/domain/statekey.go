package domain

import "fmt"

// StateKey namespaces one persisted selection field. Persisted values never
// collide across workspaces, nor between the single- and multi-package view
// of the same workspace.
type StateKey struct {
	// Workspace identifies the workspace folder, usually its absolute
	// root path.
	Workspace string

	// MultiPackage mirrors the project's multi-package detection at the
	// time the value was written.
	MultiPackage bool

	// Field is the logical selection field name, a Topic string.
	Field string
}

// Encode renders the key for the flat key/value store.
func (k StateKey) Encode() string {
	return fmt.Sprintf("%s|%t|%s", k.Workspace, k.MultiPackage, k.Field)
}
