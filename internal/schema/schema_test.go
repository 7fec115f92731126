package schema_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/windrow-lab/windrow/internal/core/column"
	"github.com/windrow-lab/windrow/internal/schema"
	"github.com/windrow-lab/windrow/internal/schema/formats/yaml"
	"github.com/windrow-lab/windrow/internal/schema/storage"
)

func TestRegistry_Register(t *testing.T) {
	repo := storage.NewMemoryRepository()
	reg := schema.NewRegistry(repo)
	ctx := context.Background()

	tests := []struct {
		name       string
		dataset    string
		version    int
		definition []byte
		wantErr    bool
		errMsg     string
	}{
		{
			name:       "valid schema",
			dataset:    "api_requests",
			version:    1,
			definition: []byte("dataset: api_requests\nversion: 1\nfields:\n  endpoint: string\n"),
			wantErr:    false,
		},
		{
			name:       "missing name",
			dataset:    "",
			version:    1,
			definition: []byte("dataset: api_requests\nversion: 1\nfields:\n  endpoint: string\n"),
			wantErr:    true,
			errMsg:     "name is required",
		},
		{
			name:       "invalid version",
			dataset:    "api_requests",
			version:    0,
			definition: []byte("dataset: api_requests\nversion: 0\nfields:\n  endpoint: string\n"),
			wantErr:    true,
			errMsg:     "version must be >= 1",
		},
		{
			name:       "empty definition",
			dataset:    "api_requests",
			version:    2,
			definition: []byte{},
			wantErr:    true,
			errMsg:     "definition is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := reg.Register(ctx, tt.dataset, tt.version, schema.FormatYaml, tt.definition, true)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Register() expected error, got nil")
				} else if tt.errMsg != "" && err.Error() != tt.errMsg {
					t.Errorf("Register() error = %v, want %v", err.Error(), tt.errMsg)
				}
				return
			}

			if err != nil {
				t.Errorf("Register() unexpected error: %v", err)
				return
			}

			if ds.ID == "" {
				t.Error("Register() dataset.ID should not be empty")
			}
			if ds.Name != tt.dataset {
				t.Errorf("Register() dataset.Name = %v, want %v", ds.Name, tt.dataset)
			}
			if ds.Fingerprint == "" {
				t.Error("Register() dataset.Fingerprint should not be empty")
			}
			if ds.State != schema.StateActive {
				t.Errorf("Register() dataset.State = %v, want %v", ds.State, schema.StateActive)
			}
		})
	}
}

func TestRegistry_Get(t *testing.T) {
	repo := storage.NewMemoryRepository()
	reg := schema.NewRegistry(repo)
	ctx := context.Background()

	v1 := []byte("dataset: api_requests\nversion: 1\nfields:\n  endpoint: string\n")
	if _, err := reg.Register(ctx, "api_requests", 1, schema.FormatYaml, v1, true); err != nil {
		t.Fatalf("Failed to register v1: %v", err)
	}
	v2 := []byte("dataset: api_requests\nversion: 2\nfields:\n  endpoint: string\n  latency_ms: float64\n")
	if _, err := reg.Register(ctx, "api_requests", 2, schema.FormatYaml, v2, true); err != nil {
		t.Fatalf("Failed to register v2: %v", err)
	}

	tests := []struct {
		name    string
		dataset string
		version int
		wantErr bool
	}{
		{
			name:    "first version",
			dataset: "api_requests",
			version: 1,
			wantErr: false,
		},
		{
			name:    "second version",
			dataset: "api_requests",
			version: 2,
			wantErr: false,
		},
		{
			name:    "dataset not found",
			dataset: "nonexistent",
			version: 1,
			wantErr: true,
		},
		{
			name:    "version not found",
			dataset: "api_requests",
			version: 3,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := reg.Get(ctx, tt.dataset, tt.version)

			if tt.wantErr {
				if err == nil {
					t.Error("Get() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("Get() unexpected error: %v", err)
				return
			}

			if ds.Version != tt.version {
				t.Errorf("Get() dataset.Version = %v, want %v", ds.Version, tt.version)
			}
		})
	}
}

func TestRegistry_Latest(t *testing.T) {
	repo := storage.NewMemoryRepository()
	reg := schema.NewRegistry(repo)
	ctx := context.Background()

	for v := 1; v <= 3; v++ {
		def := []byte(fmt.Sprintf("dataset: api_requests\nversion: %d\nfields:\n  endpoint: string\n", v))
		if _, err := reg.Register(ctx, "api_requests", v, schema.FormatYaml, def, true); err != nil {
			t.Fatalf("Failed to register v%d: %v", v, err)
		}
	}

	ds, err := reg.Latest(ctx, "api_requests")
	if err != nil {
		t.Fatalf("Latest() unexpected error: %v", err)
	}
	if ds.Version != 3 {
		t.Errorf("Latest() version = %d, want 3", ds.Version)
	}

	// Deprecating the head version makes the previous one latest.
	if err := reg.Deprecate(ctx, "api_requests", 3); err != nil {
		t.Fatalf("Deprecate() unexpected error: %v", err)
	}
	ds, err = reg.Latest(ctx, "api_requests")
	if err != nil {
		t.Fatalf("Latest() after deprecate unexpected error: %v", err)
	}
	if ds.Version != 2 {
		t.Errorf("Latest() after deprecate version = %d, want 2", ds.Version)
	}

	if _, err := reg.Latest(ctx, "nonexistent"); err == nil {
		t.Error("Latest() expected error for unknown dataset, got nil")
	}
}

func TestValidator_ValidateRow(t *testing.T) {
	v := schema.InitializeValidator()
	v.RegisterFormat(schema.FormatYaml, yaml.NewCompiler(), yaml.NewValidator())
	ctx := context.Background()

	def := []byte(`
dataset: api_requests
version: 1
fields:
  endpoint:    string
  method:      string
  status_code: int32
  latency_ms:  float64
`)

	ds := &schema.Dataset{
		ID:          "test-id",
		Name:        "api_requests",
		Version:     1,
		Format:      schema.FormatYaml,
		Definition:  def,
		Fingerprint: schema.ComputeFingerprint(def),
		StrictMode:  true,
	}

	tests := []struct {
		name    string
		data    map[string]interface{}
		wantErr bool
	}{
		{
			name: "valid row - all fields",
			data: map[string]interface{}{
				"endpoint":    "/v1/users",
				"method":      "POST",
				"status_code": float64(201),
				"latency_ms":  float64(45.2),
			},
			wantErr: false,
		},
		{
			name: "valid row - partial fields",
			data: map[string]interface{}{
				"endpoint": "/v1/test",
				"method":   "GET",
			},
			wantErr: false,
		},
		{
			name:    "valid row - empty",
			data:    map[string]interface{}{},
			wantErr: false,
		},
		{
			name: "invalid - wrong type for string field",
			data: map[string]interface{}{
				"endpoint": 123,
			},
			wantErr: true,
		},
		{
			name: "invalid - fractional value for int32 field",
			data: map[string]interface{}{
				"status_code": float64(201.5),
			},
			wantErr: true,
		},
		{
			name: "invalid - unknown field in strict mode",
			data: map[string]interface{}{
				"endpoint":    "/v1/test",
				"extra_field": "not in schema",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRow(ctx, ds, tt.data)

			if tt.wantErr {
				if err == nil {
					t.Error("ValidateRow() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("ValidateRow() unexpected error: %v", err)
			}
		})
	}
}

func TestTypeResolver_FieldDType(t *testing.T) {
	repo := storage.NewMemoryRepository()
	reg := schema.NewRegistry(repo)
	val := schema.InitializeValidator()
	val.RegisterFormat(schema.FormatYaml, yaml.NewCompiler(), yaml.NewValidator())
	resolver := schema.NewTypeResolver(reg, val)
	ctx := context.Background()

	v1 := []byte("dataset: api_requests\nversion: 1\nfields:\n  latency_ms: float64\n")
	if _, err := reg.Register(ctx, "api_requests", 1, schema.FormatYaml, v1, true); err != nil {
		t.Fatalf("Failed to register v1: %v", err)
	}

	dt, err := resolver.FieldDType(ctx, "api_requests", "latency_ms")
	if err != nil {
		t.Fatalf("FieldDType() unexpected error: %v", err)
	}
	if dt != column.Float64 {
		t.Errorf("FieldDType() = %v, want %v", dt, column.Float64)
	}

	// A newer schema version changes the resolved type.
	v2 := []byte("dataset: api_requests\nversion: 2\nfields:\n  latency_ms: decimal\n")
	if _, err := reg.Register(ctx, "api_requests", 2, schema.FormatYaml, v2, true); err != nil {
		t.Fatalf("Failed to register v2: %v", err)
	}
	dt, err = resolver.FieldDType(ctx, "api_requests", "latency_ms")
	if err != nil {
		t.Fatalf("FieldDType() unexpected error after v2: %v", err)
	}
	if dt != column.Decimal {
		t.Errorf("FieldDType() after v2 = %v, want %v", dt, column.Decimal)
	}

	if _, err := resolver.FieldDType(ctx, "api_requests", "nonexistent"); err == nil {
		t.Error("FieldDType() expected error for unknown field, got nil")
	}
	if _, err := resolver.FieldDType(ctx, "unknown_dataset", "latency_ms"); err == nil {
		t.Error("FieldDType() expected error for unknown dataset, got nil")
	}
}

func TestComputeFingerprint(t *testing.T) {
	data := []byte("test data")
	fp1 := schema.ComputeFingerprint(data)
	fp2 := schema.ComputeFingerprint(data)

	if fp1 != fp2 {
		t.Errorf("ComputeFingerprint() not deterministic: %v != %v", fp1, fp2)
	}

	if len(fp1) != 64 { // SHA-256 hex is 64 chars
		t.Errorf("ComputeFingerprint() length = %d, want 64", len(fp1))
	}

	different := []byte("different data")
	fp3 := schema.ComputeFingerprint(different)
	if fp1 == fp3 {
		t.Error("ComputeFingerprint() should produce different hashes for different data")
	}
}
