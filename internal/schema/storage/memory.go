package storage

import (
	"context"
	"sync"

	"github.com/windrow-lab/windrow/internal/schema"
)

// MemoryRepository is an in-memory implementation of schema.Repository.
// Useful for testing and development.
type MemoryRepository struct {
	mu       sync.RWMutex
	datasets map[schema.Key]*schema.Dataset
}

// NewMemoryRepository creates a new in-memory dataset schema repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		datasets: make(map[schema.Key]*schema.Dataset),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, ds *schema.Dataset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := ds.Key()
	if _, exists := r.datasets[key]; exists {
		return schema.ErrAlreadyExists
	}

	// Store a copy to prevent external modification
	copy := *ds
	r.datasets[key] = &copy
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, key schema.Key) (*schema.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ds, exists := r.datasets[key]
	if !exists {
		return nil, schema.ErrNotFound
	}

	// Return a copy to prevent external modification
	copy := *ds
	return &copy, nil
}

func (r *MemoryRepository) List(ctx context.Context, name string) ([]*schema.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*schema.Dataset
	for _, ds := range r.datasets {
		if name != "" && ds.Name != name {
			continue
		}
		copy := *ds
		result = append(result, &copy)
	}
	return result, nil
}

func (r *MemoryRepository) UpdateState(ctx context.Context, key schema.Key, state schema.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ds, exists := r.datasets[key]
	if !exists {
		return schema.ErrNotFound
	}

	ds.State = state
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, key schema.Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.datasets[key]; !exists {
		return schema.ErrNotFound
	}

	delete(r.datasets, key)
	return nil
}
