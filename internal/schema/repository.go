package schema

import (
	"context"
)

// Repository defines the interface for dataset schema storage.
type Repository interface {
	// Create stores a new dataset schema. Returns ErrAlreadyExists if
	// a schema with the same (Name, Version) already exists.
	Create(ctx context.Context, ds *Dataset) error

	// Get retrieves a dataset schema by key. Returns ErrNotFound if not found.
	Get(ctx context.Context, key Key) (*Dataset, error)

	// List returns all schema versions, optionally filtered by dataset name.
	List(ctx context.Context, name string) ([]*Dataset, error)

	// UpdateState changes the state of a dataset schema (e.g., deprecate).
	UpdateState(ctx context.Context, key Key, state State) error

	// Delete removes a dataset schema. This is a hard delete.
	Delete(ctx context.Context, key Key) error
}
