package protobuf

import (
	"context"
	"fmt"

	"github.com/windrow-lab/windrow/internal/core/column"
	"github.com/windrow-lab/windrow/internal/schema"
)

// Validator validates row data against protobuf dataset schemas.
type Validator struct{}

// NewValidator creates a new protobuf validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateRow validates the row data against the compiled protobuf schema.
// proto3 fields are optional, so presence is never enforced; present
// values must coerce to the field's element type.
func (v *Validator) ValidateRow(ctx context.Context, compiled *schema.CompiledDataset, data map[string]interface{}) error {
	// In strict mode, check for unknown fields
	if compiled.StrictMode {
		var unknownFields []string
		for key := range data {
			if !compiled.HasField(key) {
				unknownFields = append(unknownFields, key)
			}
		}
		if len(unknownFields) > 0 {
			return schema.NewUnknownFieldsError(compiled.Dataset, compiled.Version, unknownFields)
		}
	}

	// Validate each present field against its element type
	var errors []*schema.ValidationError
	for _, fieldSpec := range compiled.Fields {
		value, exists := data[fieldSpec.Name]
		if !exists || value == nil {
			continue
		}

		if err := v.validateValue(compiled, fieldSpec, value); err != nil {
			err.Format = string(schema.FormatProtobuf)
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return &schema.MultiValidationError{Errors: errors}
	}

	return nil
}

// validateValue checks one present value against its field's element type.
func (v *Validator) validateValue(c *schema.CompiledDataset, fs schema.FieldSpec, value interface{}) *schema.ValidationError {
	// Strings assert exactly; coercion would happily render numbers.
	if fs.DType == column.String {
		if _, ok := value.(string); !ok {
			return schema.NewTypeMismatchError(c.Dataset, c.Version, fs.Name, "string", jsonTypeName(value))
		}
		return nil
	}

	if _, err := column.CoerceValue(fs.DType, value); err != nil {
		return &schema.ValidationError{
			Dataset:      c.Dataset,
			Version:      c.Version,
			Field:        fs.Name,
			Message:      err.Error(),
			ExpectedType: string(fs.DType),
			ActualType:   jsonTypeName(value),
		}
	}
	return nil
}

// jsonTypeName returns a human-readable type name for JSON values.
func jsonTypeName(v interface{}) string {
	if v == nil {
		return "null"
	}
	switch v.(type) {
	case bool:
		return "bool"
	case float64:
		return "number"
	case string:
		return "string"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
