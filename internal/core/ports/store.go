package ports

import "github.com/capstan-tools/capstan/internal/core/domain"

// SelectionStore persists selection state across sessions. Individual reads
// and writes are atomic; there is no transaction across fields.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type SelectionStore interface {
	// Get retrieves a persisted value. ok is false when the key was never
	// written; callers apply their documented defaults.
	Get(key domain.StateKey) (value string, ok bool, err error)

	// Put stores a value.
	Put(key domain.StateKey, value string) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key domain.StateKey) error
}
