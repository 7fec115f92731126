package yaml

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/windrow-lab/windrow/internal/schema"
)

// Compiler compiles YAML dataset schema definitions.
type Compiler struct{}

// NewCompiler creates a new YAML compiler.
func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile parses a YAML schema definition and returns the compiled dataset.
func (c *Compiler) Compile(ctx context.Context, ds *schema.Dataset) (*schema.CompiledDataset, error) {
	// Validate format
	if ds.Format != schema.FormatYaml {
		return nil, fmt.Errorf("expected yaml format, got %s", ds.Format)
	}

	// Parse YAML
	var spec DatasetSpec
	if err := yaml.Unmarshal(ds.Definition, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse YAML schema: %w", err)
	}

	// Validate schema structure
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid YAML schema: %w", err)
	}

	// Ensure dataset name matches
	if spec.Dataset != ds.Name {
		return nil, fmt.Errorf("schema dataset %q does not match registered name %q", spec.Dataset, ds.Name)
	}

	// Ensure version matches
	if spec.Version != ds.Version {
		return nil, fmt.Errorf("schema version %d does not match registered version %d", spec.Version, ds.Version)
	}

	fields := make([]schema.FieldSpec, 0, len(spec.Fields))
	for _, f := range spec.Fields {
		fields = append(fields, schema.FieldSpec{
			Name:     f.Name,
			DType:    f.DType,
			Required: f.Required,
		})
	}

	compiled := schema.NewCompiledDataset(ds.Name, ds.Version, schema.FormatYaml,
		ds.StrictMode || spec.StrictMode, // Honor both flags
		fields)
	compiled.Spec = &spec
	return compiled, nil
}
