package yaml

import (
	"context"
	"testing"

	"github.com/windrow-lab/windrow/internal/schema"
)

func TestCompiler_Compile(t *testing.T) {
	compiler := NewCompiler()
	ctx := context.Background()

	tests := []struct {
		name       string
		definition string
		wantErr    bool
		errMsg     string
	}{
		{
			name: "valid shorthand - all element types",
			definition: `
dataset: test_events
version: 1
fields:
  str_field: string
  i32_field: int32
  i64_field: int64
  f32_field: float32
  f64_field: float64
  dec_field: decimal
  ts_field:  timestamp
`,
			wantErr: false,
		},
		{
			name: "valid shorthand - required fields",
			definition: `
dataset: test_events
version: 1
fields:
  name:   string!
  age:    int32!
  amount: decimal!
`,
			wantErr: false,
		},
		{
			name: "valid long form - with constraints",
			definition: `
dataset: test_events
version: 1
fields:
  endpoint:
    type: string!
    minLength: 1
    maxLength: 500
    pattern: "^/[a-zA-Z0-9/_-]*$"
  status_code:
    type: int32!
    min: 100
    max: 599
  method:
    type: string
    enum: [GET, POST, PUT, DELETE]
`,
			wantErr: false,
		},
		{
			name: "valid long form - required via explicit flag",
			definition: `
dataset: test_events
version: 1
fields:
  name:
    type: string
    required: true
`,
			wantErr: false,
		},
		{
			name: "valid mix - shorthand and long form",
			definition: `
dataset: test_events
version: 1
fields:
  user_id: string!
  action:  string!
  latency:
    type: float64
    min: 0
`,
			wantErr: false,
		},
		{
			name: "invalid - missing dataset name",
			definition: `
version: 1
fields:
  name: string
`,
			wantErr: true,
			errMsg:  "dataset name is required",
		},
		{
			name: "invalid - name does not match registration",
			definition: `
dataset: other_events
version: 1
fields:
  name: string
`,
			wantErr: true,
			errMsg:  "does not match registered name",
		},
		{
			name: "invalid - version < 1",
			definition: `
dataset: test_events
version: 0
fields:
  name: string
`,
			wantErr: true,
			errMsg:  "version must be >= 1",
		},
		{
			name: "invalid - no fields",
			definition: `
dataset: test_events
version: 1
fields: {}
`,
			wantErr: true,
			errMsg:  "schema must define at least one field",
		},
		{
			name: "invalid - duplicate field",
			definition: `
dataset: test_events
version: 1
fields:
  name: string
  name: int32
`,
			wantErr: true,
			errMsg:  "duplicate field",
		},
		{
			name: "invalid - bool is not a column type",
			definition: `
dataset: test_events
version: 1
fields:
  active: bool
`,
			wantErr: true,
			errMsg:  "unsupported type",
		},
		{
			name: "invalid - unsupported type 'array'",
			definition: `
dataset: test_events
version: 1
fields:
  tags: array
`,
			wantErr: true,
			errMsg:  "unsupported type",
		},
		{
			name: "invalid - unsupported type 'map'",
			definition: `
dataset: test_events
version: 1
fields:
  data: map
`,
			wantErr: true,
			errMsg:  "unsupported type",
		},
		{
			name: "invalid - unknown type name",
			definition: `
dataset: test_events
version: 1
fields:
  value: foobar
`,
			wantErr: true,
			errMsg:  "unsupported type",
		},
		{
			name: "invalid - string field with numeric bounds",
			definition: `
dataset: test_events
version: 1
fields:
  name:
    type: string
    min: 1
`,
			wantErr: true,
			errMsg:  "string fields do not support min/max",
		},
		{
			name: "invalid - numeric field with pattern",
			definition: `
dataset: test_events
version: 1
fields:
  count:
    type: int64
    pattern: "^[0-9]+$"
`,
			wantErr: true,
			errMsg:  "numeric fields do not support length or pattern",
		},
		{
			name: "invalid - timestamp field with enum",
			definition: `
dataset: test_events
version: 1
fields:
  occurred_at:
    type: timestamp
    enum: [a, b]
`,
			wantErr: true,
			errMsg:  "timestamp fields do not support enum",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := &schema.Dataset{
				Name:       "test_events",
				Version:    1,
				Format:     schema.FormatYaml,
				Definition: []byte(tt.definition),
			}

			compiled, err := compiler.Compile(ctx, ds)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Compile() expected error, got nil")
					return
				}
				if tt.errMsg != "" && !contains(err.Error(), tt.errMsg) {
					t.Errorf("Compile() error = %v, want containing %q", err, tt.errMsg)
				}
				return
			}

			if err != nil {
				t.Errorf("Compile() unexpected error: %v", err)
				return
			}

			if compiled == nil {
				t.Error("Compile() returned nil compiled schema")
				return
			}

			if compiled.Format != schema.FormatYaml {
				t.Errorf("Compile() format = %v, want %v", compiled.Format, schema.FormatYaml)
			}
		})
	}
}

func TestCompiler_PreservesFieldOrder(t *testing.T) {
	compiler := NewCompiler()
	ctx := context.Background()

	definition := `
dataset: test_events
version: 1
fields:
  zulu:    string
  alpha:   int64!
  mike:
    type: float64
    min: 0
  bravo:   timestamp
`
	ds := &schema.Dataset{
		Name:       "test_events",
		Version:    1,
		Format:     schema.FormatYaml,
		Definition: []byte(definition),
	}

	compiled, err := compiler.Compile(ctx, ds)
	if err != nil {
		t.Fatalf("Compile() unexpected error: %v", err)
	}

	// Column layouts follow declaration order, not lexical order.
	want := []string{"zulu", "alpha", "mike", "bravo"}
	if len(compiled.Fields) != len(want) {
		t.Fatalf("Compile() produced %d fields, want %d", len(compiled.Fields), len(want))
	}
	for i, name := range want {
		if compiled.Fields[i].Name != name {
			t.Errorf("Fields[%d].Name = %q, want %q", i, compiled.Fields[i].Name, name)
		}
	}
	if !compiled.Fields[1].Required {
		t.Error("Fields[1] (alpha) should be required")
	}
	if compiled.Fields[0].Required {
		t.Error("Fields[0] (zulu) should not be required")
	}
}

func TestValidator_ValidateRow(t *testing.T) {
	compiler := NewCompiler()
	validator := NewValidator()
	ctx := context.Background()

	schemaYAML := `
dataset: test_validation
version: 1
strictMode: true
fields:
  name:
    type: string!
    minLength: 1
    maxLength: 100
  email:
    type: string
    pattern: "^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\\.[a-zA-Z]{2,}$"
  age:
    type: int32
    min: 0
    max: 150
  status:
    type: string
    enum: [active, inactive, pending]
  created_at: timestamp
`

	ds := &schema.Dataset{
		Name:       "test_validation",
		Version:    1,
		Format:     schema.FormatYaml,
		Definition: []byte(schemaYAML),
		StrictMode: true,
	}

	compiled, err := compiler.Compile(ctx, ds)
	if err != nil {
		t.Fatalf("Failed to compile schema: %v", err)
	}

	tests := []struct {
		name    string
		data    map[string]interface{}
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid - all fields",
			data: map[string]interface{}{
				"name":       "John Doe",
				"email":      "john@example.com",
				"age":        float64(30),
				"status":     "active",
				"created_at": "2025-06-01T12:00:00Z",
			},
			wantErr: false,
		},
		{
			name: "valid - required fields only",
			data: map[string]interface{}{
				"name": "Jane Doe",
			},
			wantErr: false,
		},
		{
			name: "valid - explicit null for optional field",
			data: map[string]interface{}{
				"name":  "Jane Doe",
				"email": nil,
			},
			wantErr: false,
		},
		{
			name: "invalid - missing required field",
			data: map[string]interface{}{
				"email": "test@example.com",
			},
			wantErr: true,
			errMsg:  "required field is missing",
		},
		{
			name: "invalid - null for required field",
			data: map[string]interface{}{
				"name": nil,
			},
			wantErr: true,
			errMsg:  "required field cannot be null",
		},
		{
			name: "invalid - string too short",
			data: map[string]interface{}{
				"name": "",
			},
			wantErr: true,
			errMsg:  "less than minimum",
		},
		{
			name: "invalid - string too long",
			data: map[string]interface{}{
				"name": string(make([]byte, 101)),
			},
			wantErr: true,
			errMsg:  "exceeds maximum",
		},
		{
			name: "invalid - pattern mismatch",
			data: map[string]interface{}{
				"name":  "Test User",
				"email": "not-an-email",
			},
			wantErr: true,
			errMsg:  "does not match pattern",
		},
		{
			name: "invalid - number out of range (too small)",
			data: map[string]interface{}{
				"name": "Test User",
				"age":  float64(-1),
			},
			wantErr: true,
			errMsg:  "less than minimum",
		},
		{
			name: "invalid - number out of range (too large)",
			data: map[string]interface{}{
				"name": "Test User",
				"age":  float64(200),
			},
			wantErr: true,
			errMsg:  "exceeds maximum",
		},
		{
			name: "invalid - enum mismatch",
			data: map[string]interface{}{
				"name":   "Test User",
				"status": "unknown",
			},
			wantErr: true,
			errMsg:  "not in enum",
		},
		{
			name: "invalid - unreadable value for number field",
			data: map[string]interface{}{
				"name": "Test User",
				"age":  "thirty",
			},
			wantErr: true,
			errMsg:  "cannot read",
		},
		{
			name: "invalid - wrong type for timestamp field",
			data: map[string]interface{}{
				"name":       "Test User",
				"created_at": true,
			},
			wantErr: true,
			errMsg:  "expected timestamp",
		},
		{
			name: "invalid - unknown field in strict mode",
			data: map[string]interface{}{
				"name":          "Test User",
				"unknown_field": "value",
			},
			wantErr: true,
			errMsg:  "unknown field",
		},
		{
			name: "invalid - array value for scalar field rejected",
			data: map[string]interface{}{
				"name": []interface{}{"not", "a", "string"},
			},
			wantErr: true,
			errMsg:  "expected string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateRow(ctx, compiled, tt.data)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ValidateRow() expected error, got nil")
					return
				}
				if tt.errMsg != "" && !contains(err.Error(), tt.errMsg) {
					t.Errorf("ValidateRow() error = %v, want containing %q", err, tt.errMsg)
				}
				return
			}

			if err != nil {
				t.Errorf("ValidateRow() unexpected error: %v", err)
			}
		})
	}
}

func TestValidator_NumberOverflow(t *testing.T) {
	compiler := NewCompiler()
	validator := NewValidator()
	ctx := context.Background()

	tests := []struct {
		name       string
		dtype      string
		value      interface{}
		wantErr    bool
		errContain string
	}{
		// int32 tests
		{
			name:    "int32 - valid min",
			dtype:   "int32",
			value:   float64(-2147483648),
			wantErr: false,
		},
		{
			name:    "int32 - valid max",
			dtype:   "int32",
			value:   float64(2147483647),
			wantErr: false,
		},
		{
			name:       "int32 - overflow (too large)",
			dtype:      "int32",
			value:      float64(3000000000), // 3 billion
			wantErr:    true,
			errContain: "out of range for int32",
		},
		{
			name:       "int32 - underflow (too small)",
			dtype:      "int32",
			value:      float64(-3000000000),
			wantErr:    true,
			errContain: "out of range for int32",
		},
		{
			name:       "int32 - reject fractional",
			dtype:      "int32",
			value:      float64(123.45),
			wantErr:    true,
			errContain: "fractional value",
		},

		// int64 tests
		{
			name:    "int64 - valid large number",
			dtype:   "int64",
			value:   float64(9007199254740991), // Max safe integer in float64
			wantErr: false,
		},
		{
			name:       "int64 - reject fractional",
			dtype:      "int64",
			value:      float64(999.999),
			wantErr:    true,
			errContain: "fractional value",
		},

		// float tests
		{
			name:    "float32 - valid decimal",
			dtype:   "float32",
			value:   float64(123.456),
			wantErr: false,
		},
		{
			name:    "float64 - valid decimal",
			dtype:   "float64",
			value:   float64(999999.999999),
			wantErr: false,
		},
		{
			name:    "float64 - valid integer",
			dtype:   "float64",
			value:   float64(12345),
			wantErr: false,
		},

		// decimal tests - string payloads parse exactly, no range limit
		{
			name:    "decimal - exact string payload",
			dtype:   "decimal",
			value:   "123456789012345678901234567890.5",
			wantErr: false,
		},
		{
			name:       "decimal - unparseable string",
			dtype:      "decimal",
			value:      "not a number",
			wantErr:    true,
			errContain: "cannot read",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schemaYAML := `
dataset: test_overflow
version: 1
fields:
  value: ` + tt.dtype + `
`
			ds := &schema.Dataset{
				Name:       "test_overflow",
				Version:    1,
				Format:     schema.FormatYaml,
				Definition: []byte(schemaYAML),
			}

			compiled, err := compiler.Compile(ctx, ds)
			if err != nil {
				t.Fatalf("Failed to compile schema: %v", err)
			}

			data := map[string]interface{}{
				"value": tt.value,
			}

			err = validator.ValidateRow(ctx, compiled, data)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ValidateRow() expected error for value %v, got nil", tt.value)
					return
				}
				if tt.errContain != "" && !contains(err.Error(), tt.errContain) {
					t.Errorf("ValidateRow() error = %v, want containing %q", err, tt.errContain)
				}
				return
			}

			if err != nil {
				t.Errorf("ValidateRow() unexpected error: %v", err)
			}
		})
	}
}

// Helper function to check if a string contains a substring
func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 ||
		(len(s) > 0 && len(substr) > 0 && containsImpl(s, substr)))
}

func containsImpl(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
