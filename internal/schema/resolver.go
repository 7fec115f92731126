package schema

import (
	"context"
	"fmt"

	"github.com/windrow-lab/windrow/internal/core/column"
)

// TypeResolver resolves job fields to element types against the latest
// active schema of each dataset. The engine compiles its jobs through
// this at startup; a job naming a field the dataset does not define, or
// a dataset with no schema at all, fails the compile.
type TypeResolver struct {
	registry  *Registry
	validator *Validator
}

// NewTypeResolver creates a resolver over the given registry and validator.
func NewTypeResolver(reg *Registry, val *Validator) *TypeResolver {
	return &TypeResolver{registry: reg, validator: val}
}

// FieldDType returns the element type of a dataset field.
func (r *TypeResolver) FieldDType(ctx context.Context, dataset, field string) (column.DType, error) {
	ds, err := r.registry.Latest(ctx, dataset)
	if err != nil {
		return "", err
	}

	compiled, err := r.validator.Compile(ctx, ds)
	if err != nil {
		return "", fmt.Errorf("compile dataset %s v%d: %w", ds.Name, ds.Version, err)
	}

	spec, ok := compiled.Field(field)
	if !ok {
		return "", fmt.Errorf("dataset %q has no field %q", dataset, field)
	}
	return spec.DType, nil
}
