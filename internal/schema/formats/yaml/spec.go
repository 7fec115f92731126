package yaml

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/windrow-lab/windrow/internal/core/column"
)

// DatasetSpec represents a compiled YAML dataset schema specification.
// This is the runtime representation used for row validation.
type DatasetSpec struct {
	Dataset     string    `yaml:"dataset"`
	Version     int       `yaml:"version"`
	Description string    `yaml:"description,omitempty"`
	StrictMode  bool      `yaml:"strictMode,omitempty"`
	Fields      FieldList `yaml:"fields"`
}

// FieldList holds a dataset's fields in definition order. A plain map
// would lose the order the schema author wrote, and column layouts are
// ordered, so decoding walks the mapping node directly.
type FieldList []*Field

// UnmarshalYAML decodes the fields mapping while preserving key order.
func (l *FieldList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("fields must be a mapping")
	}
	out := make(FieldList, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]
		f := &Field{Name: keyNode.Value}
		if err := f.decode(valNode); err != nil {
			return fmt.Errorf("field %q: %w", keyNode.Value, err)
		}
		out = append(out, f)
	}
	*l = out
	return nil
}

// Field defines a single column in a YAML dataset schema.
//
// Fields support two declaration styles:
//
//	Shorthand (scalar): latency_ms: float64!
//	Long form (mapping): endpoint:
//	                        type: string!
//	                        minLength: 1
//
// Type names are the column element types: int32, int64, float32,
// float64, decimal, timestamp, string.
// Append "!" to mark a field as required.
type Field struct {
	// Name is the column name (the mapping key; not part of the value node).
	Name string `yaml:"-"`

	// Type is the user-facing type tag, e.g. "float64!". Parsed into
	// DType and Required during decoding.
	Type string `yaml:"type"`

	// DType is the resolved column element type.
	DType column.DType `yaml:"-"`

	// Required indicates if the field must be present and non-null
	// (default: false). Set by the "!" suffix on the type name, or
	// explicitly via "required: true" in long form.
	Required bool `yaml:"required,omitempty"`

	// Enum restricts values to a specific set (for strings and numbers).
	Enum []interface{} `yaml:"enum,omitempty"`

	// Min/Max constraints for numeric fields.
	Min *float64 `yaml:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty"`

	// String constraints.
	MinLength *int   `yaml:"minLength,omitempty"`
	MaxLength *int   `yaml:"maxLength,omitempty"`
	Pattern   string `yaml:"pattern,omitempty"`

	// Compiled constraint forms (not serialized, populated during Validate).
	compiledPattern *regexp.Regexp
	enumStrs        []string
	enumNums        []decimal.Decimal
}

// decode handles both shorthand and long-form field declarations.
//
//	shorthand:  field_name: int64!
//	long form:  field_name:
//	              type: int64!
//	              min: 0
func (f *Field) decode(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return f.parseTypeString(value.Value)
	}

	// Long form: decode struct fields via alias (avoids infinite recursion),
	// then normalize the type string.
	type fieldAlias Field
	alias := fieldAlias{Name: f.Name}
	if err := value.Decode(&alias); err != nil {
		return err
	}
	*f = Field(alias)

	if f.Type == "" {
		return fmt.Errorf("field missing 'type'")
	}
	return f.parseTypeString(f.Type)
}

// parseTypeString parses a user-facing type tag like "int64!" and sets
// DType and (if "!" is present) Required on the receiver.
func (f *Field) parseTypeString(s string) error {
	tag := s
	if strings.HasSuffix(tag, "!") {
		f.Required = true
		tag = strings.TrimSuffix(tag, "!")
	}

	dt, err := column.ParseDType(tag)
	if err != nil {
		return fmt.Errorf("unsupported type %q (must be one of: %s)", tag, dtypeNames())
	}
	f.Type = s
	f.DType = dt
	return nil
}

func dtypeNames() string {
	dts := column.DTypes()
	names := make([]string, len(dts))
	for i, dt := range dts {
		names[i] = string(dt)
	}
	return strings.Join(names, ", ")
}

// Validate checks if the YAML dataset spec is structurally valid.
// This is called during schema compilation to catch definition errors.
func (s *DatasetSpec) Validate() error {
	if s.Dataset == "" {
		return fmt.Errorf("dataset name is required")
	}
	if s.Version < 1 {
		return fmt.Errorf("version must be >= 1")
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("schema must define at least one field")
	}

	seen := make(map[string]bool, len(s.Fields))
	for _, field := range s.Fields {
		if seen[field.Name] {
			return fmt.Errorf("duplicate field %q", field.Name)
		}
		seen[field.Name] = true
		if err := field.Validate(); err != nil {
			return fmt.Errorf("field %q: %w", field.Name, err)
		}
	}

	return nil
}

// Validate checks if a field definition is structurally valid and
// compiles its constraint forms.
func (f *Field) Validate() error {
	switch {
	case f.DType == column.String:
		return f.validateStringField()
	case f.DType == column.Timestamp:
		return f.validateTimestampField()
	case f.DType.Arithmetic():
		return f.validateNumberField()
	default:
		return fmt.Errorf("unsupported type %q", f.DType)
	}
}

// validateStringField validates string-specific constraints.
func (f *Field) validateStringField() error {
	if f.Min != nil || f.Max != nil {
		return fmt.Errorf("string fields do not support min/max constraints")
	}
	if f.MinLength != nil && *f.MinLength < 0 {
		return fmt.Errorf("minLength cannot be negative")
	}
	if f.MaxLength != nil && *f.MaxLength < 0 {
		return fmt.Errorf("maxLength cannot be negative")
	}
	if f.MinLength != nil && f.MaxLength != nil && *f.MinLength > *f.MaxLength {
		return fmt.Errorf("minLength (%d) cannot exceed maxLength (%d)", *f.MinLength, *f.MaxLength)
	}

	if f.Pattern != "" {
		if len(f.Pattern) > 1000 {
			return fmt.Errorf("pattern too long (max 1000 chars)")
		}
		compiled, err := regexp.Compile(f.Pattern)
		if err != nil {
			return fmt.Errorf("invalid regex pattern: %w", err)
		}
		f.compiledPattern = compiled
	}

	if len(f.Enum) > 0 {
		f.enumStrs = make([]string, 0, len(f.Enum))
		for i, val := range f.Enum {
			str, ok := val.(string)
			if !ok {
				return fmt.Errorf("enum[%d]: expected string, got %T", i, val)
			}
			f.enumStrs = append(f.enumStrs, str)
		}
	}

	return nil
}

// validateTimestampField validates timestamp-specific constraints.
func (f *Field) validateTimestampField() error {
	if f.MinLength != nil || f.MaxLength != nil || f.Pattern != "" {
		return fmt.Errorf("timestamp fields do not support length or pattern constraints")
	}
	if f.Min != nil || f.Max != nil {
		return fmt.Errorf("timestamp fields do not support min/max constraints")
	}
	if len(f.Enum) > 0 {
		return fmt.Errorf("timestamp fields do not support enum constraints")
	}
	return nil
}

// validateNumberField validates constraints on arithmetic fields.
func (f *Field) validateNumberField() error {
	if f.MinLength != nil || f.MaxLength != nil || f.Pattern != "" {
		return fmt.Errorf("numeric fields do not support length or pattern constraints")
	}

	if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
		return fmt.Errorf("min (%v) cannot exceed max (%v)", *f.Min, *f.Max)
	}

	if len(f.Enum) > 0 {
		f.enumNums = make([]decimal.Decimal, 0, len(f.Enum))
		for i, val := range f.Enum {
			s, err := column.CoerceValue(f.DType, val)
			if err != nil {
				return fmt.Errorf("enum[%d]: %w", i, err)
			}
			f.enumNums = append(f.enumNums, s.Num)
		}
	}

	return nil
}
