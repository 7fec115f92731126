package schema

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultCacheCapacity is the default number of dataset schemas to cache.
const DefaultCacheCapacity = 1000

// Registry provides dataset schema lookup with caching.
type Registry struct {
	repo  Repository
	cache *LRUCache
}

// NewRegistry creates a new dataset schema registry.
func NewRegistry(repo Repository) *Registry {
	return &Registry{
		repo:  repo,
		cache: NewLRUCache(DefaultCacheCapacity),
	}
}

// NewRegistryWithCache creates a registry with a custom cache capacity.
func NewRegistryWithCache(repo Repository, cacheCapacity int) *Registry {
	return &Registry{
		repo:  repo,
		cache: NewLRUCache(cacheCapacity),
	}
}

// Get retrieves a specific version of a dataset schema.
func (r *Registry) Get(ctx context.Context, name string, version int) (*Dataset, error) {
	key := Key{Name: name, Version: version}
	ds, err := r.getWithCache(ctx, key)
	if err == nil {
		return ds, nil
	}
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("dataset schema not found: %s v%d", name, version)
	}
	return nil, err
}

// Latest retrieves the highest active version of a dataset schema. Jobs
// reference datasets by name alone, so this is the lookup the engine
// compiles against.
func (r *Registry) Latest(ctx context.Context, name string) (*Dataset, error) {
	all, err := r.repo.List(ctx, name)
	if err != nil {
		return nil, err
	}

	var latest *Dataset
	for _, ds := range all {
		if ds.State != StateActive {
			continue
		}
		if latest == nil || ds.Version > latest.Version {
			latest = ds
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("dataset schema not found: %s", name)
	}
	return latest, nil
}

// getWithCache retrieves a dataset schema from cache or repository.
func (r *Registry) getWithCache(ctx context.Context, key Key) (*Dataset, error) {
	// Check cache first
	if ds := r.cache.Get(key); ds != nil {
		return ds, nil
	}

	// Cache miss - fetch from repository
	ds, err := r.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	// Populate cache
	r.cache.Put(ds)
	return ds, nil
}

// Register creates a new dataset schema version.
func (r *Registry) Register(ctx context.Context, name string, version int, format Format, definition []byte, strictMode bool) (*Dataset, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}
	if version < 1 {
		return nil, errors.New("version must be >= 1")
	}
	if len(definition) == 0 {
		return nil, errors.New("definition is required")
	}

	ds := &Dataset{
		ID:          uuid.New().String(),
		Name:        name,
		Version:     version,
		Format:      format,
		Definition:  definition,
		Fingerprint: ComputeFingerprint(definition),
		State:       StateActive,
		StrictMode:  strictMode,
		CreatedAt:   time.Now().UTC(),
	}

	if err := r.repo.Create(ctx, ds); err != nil {
		return nil, err
	}

	// Populate cache
	r.cache.Put(ds)
	return ds, nil
}

// Deprecate marks a dataset schema version as deprecated.
func (r *Registry) Deprecate(ctx context.Context, name string, version int) error {
	key := Key{Name: name, Version: version}

	if err := r.repo.UpdateState(ctx, key, StateDeprecated); err != nil {
		return err
	}

	// Invalidate cache
	r.cache.Invalidate(key)
	return nil
}

// List returns all schema versions, optionally filtered by dataset name.
func (r *Registry) List(ctx context.Context, name string) ([]*Dataset, error) {
	return r.repo.List(ctx, name)
}
