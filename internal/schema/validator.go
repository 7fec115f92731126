package schema

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Validator validates row data against registered dataset schemas.
type Validator struct {
	formatRegistry *FormatRegistry

	// Cache of compiled dataset schemas
	mu           sync.RWMutex
	compiled     map[string]*CompiledDataset
	compileGroup singleflight.Group // Dedupe concurrent compilation
}

// NewValidator creates a new dataset schema validator with format registry support.
func NewValidator(formatRegistry *FormatRegistry) *Validator {
	return &Validator{
		formatRegistry: formatRegistry,
		compiled:       make(map[string]*CompiledDataset),
	}
}

// RegisterFormat registers a format compiler and validator.
func (v *Validator) RegisterFormat(format Format, compiler FormatCompiler, validator FormatValidator) {
	v.formatRegistry.RegisterFormat(format, compiler, validator)
}

// validatorCacheKey generates a unique key for the compiled schema cache.
// The fingerprint is part of the key so a re-registered definition never
// collides with a stale compile.
func validatorCacheKey(ds *Dataset) string {
	return fmt.Sprintf("%s:%d:%s", ds.Name, ds.Version, ds.Fingerprint)
}

// ValidateRow validates the row data against the dataset schema.
func (v *Validator) ValidateRow(ctx context.Context, ds *Dataset, data map[string]interface{}) error {
	compiled, err := v.Compile(ctx, ds)
	if err != nil {
		return err
	}

	// Get format-specific validator
	validator, err := v.formatRegistry.GetValidator(ds.Format)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return validator.ValidateRow(ctx, compiled, data)
}

// Compile retrieves or compiles a dataset schema. The engine resolves job
// field types through the compiled form, so this is exported.
// Uses singleflight to dedupe concurrent compilation of the same schema.
func (v *Validator) Compile(ctx context.Context, ds *Dataset) (*CompiledDataset, error) {
	key := validatorCacheKey(ds)

	// Check cache first
	v.mu.RLock()
	if compiled, exists := v.compiled[key]; exists {
		v.mu.RUnlock()
		return compiled, nil
	}
	v.mu.RUnlock()

	// Use singleflight to dedupe concurrent compilation
	result, err, _ := v.compileGroup.Do(key, func() (interface{}, error) {
		// Double-check cache after acquiring singleflight lock
		v.mu.RLock()
		if compiled, exists := v.compiled[key]; exists {
			v.mu.RUnlock()
			return compiled, nil
		}
		v.mu.RUnlock()

		// Get format-specific compiler
		compiler, err := v.formatRegistry.GetCompiler(ds.Format)
		if err != nil {
			return nil, fmt.Errorf("compilation failed: %w", err)
		}

		// Compile the schema
		compiled, err := compiler.Compile(ctx, ds)
		if err != nil {
			return nil, err
		}

		// Cache the result
		v.mu.Lock()
		v.compiled[key] = compiled
		v.mu.Unlock()

		return compiled, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(*CompiledDataset), nil
}

// InvalidateCache removes a compiled dataset schema from cache.
func (v *Validator) InvalidateCache(ds *Dataset) {
	key := validatorCacheKey(ds)
	v.mu.Lock()
	delete(v.compiled, key)
	v.mu.Unlock()
}
