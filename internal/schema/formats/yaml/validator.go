package yaml

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/windrow-lab/windrow/internal/core/column"
	"github.com/windrow-lab/windrow/internal/schema"
)

// Validator validates row data against YAML dataset schemas.
type Validator struct{}

// NewValidator creates a new YAML validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateRow validates the row data against the compiled YAML schema.
func (v *Validator) ValidateRow(ctx context.Context, compiled *schema.CompiledDataset, data map[string]interface{}) error {
	// Get the YAML spec
	spec, ok := compiled.Spec.(*DatasetSpec)
	if !ok {
		return fmt.Errorf("compiled schema is not a YAML DatasetSpec: %T", compiled.Spec)
	}

	// Check for unknown fields in strict mode
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

	// Validate each field in the schema
	var errors []*schema.ValidationError
	for _, fieldSpec := range spec.Fields {
		value, exists := data[fieldSpec.Name]

		// Check required fields
		if fieldSpec.Required && !exists {
			errors = append(errors, &schema.ValidationError{
				Dataset: compiled.Dataset,
				Version: compiled.Version,
				Field:   fieldSpec.Name,
				Message: "required field is missing",
				Format:  string(schema.FormatYaml),
			})
			continue
		}

		// Skip validation if field not present (and not required)
		if !exists {
			continue
		}

		// Validate the field value
		if err := v.validateField(compiled, fieldSpec, value); err != nil {
			if ve, ok := err.(*schema.ValidationError); ok {
				ve.Format = string(schema.FormatYaml) // Include format in error
				errors = append(errors, ve)
			} else {
				errors = append(errors, &schema.ValidationError{
					Dataset: compiled.Dataset,
					Version: compiled.Version,
					Field:   fieldSpec.Name,
					Message: err.Error(),
					Format:  string(schema.FormatYaml),
				})
			}
		}
	}

	if len(errors) > 0 {
		return &schema.MultiValidationError{Errors: errors}
	}

	return nil
}

// validateField validates a single field value against its spec.
func (v *Validator) validateField(c *schema.CompiledDataset, spec *Field, value interface{}) error {
	// Handle null values
	if value == nil {
		if spec.Required {
			return &schema.ValidationError{
				Dataset: c.Dataset,
				Version: c.Version,
				Field:   spec.Name,
				Message: "required field cannot be null",
			}
		}
		return nil // Nullable field
	}

	// Dispatch by element type
	switch {
	case spec.DType == column.String:
		return v.validateString(c, spec, value)
	case spec.DType == column.Timestamp:
		return v.validateTimestamp(c, spec, value)
	case spec.DType.Arithmetic():
		return v.validateNumber(c, spec, value)
	default:
		return &schema.ValidationError{
			Dataset: c.Dataset,
			Version: c.Version,
			Field:   spec.Name,
			Message: fmt.Sprintf("unknown field type: %s", spec.DType),
		}
	}
}

// validateString validates a string field.
func (v *Validator) validateString(c *schema.CompiledDataset, spec *Field, value interface{}) error {
	str, ok := value.(string)
	if !ok {
		return schema.NewTypeMismatchError(c.Dataset, c.Version, spec.Name, "string", jsonTypeName(value))
	}

	// Enum constraint
	if len(spec.enumStrs) > 0 {
		found := false
		for _, allowed := range spec.enumStrs {
			if allowed == str {
				found = true
				break
			}
		}
		if !found {
			return &schema.ValidationError{
				Dataset: c.Dataset,
				Version: c.Version,
				Field:   spec.Name,
				Message: fmt.Sprintf("value %q not in enum %v", str, spec.enumStrs),
			}
		}
	}

	// Length constraints
	length := len(str)
	if spec.MinLength != nil && length < *spec.MinLength {
		return &schema.ValidationError{
			Dataset: c.Dataset,
			Version: c.Version,
			Field:   spec.Name,
			Message: fmt.Sprintf("string length %d is less than minimum %d", length, *spec.MinLength),
		}
	}
	if spec.MaxLength != nil && length > *spec.MaxLength {
		return &schema.ValidationError{
			Dataset: c.Dataset,
			Version: c.Version,
			Field:   spec.Name,
			Message: fmt.Sprintf("string length %d exceeds maximum %d", length, *spec.MaxLength),
		}
	}

	// Pattern constraint (regex)
	if spec.compiledPattern != nil {
		if !spec.compiledPattern.MatchString(str) {
			return &schema.ValidationError{
				Dataset: c.Dataset,
				Version: c.Version,
				Field:   spec.Name,
				Message: fmt.Sprintf("string does not match pattern %q", spec.Pattern),
			}
		}
	}

	return nil
}

// validateTimestamp validates a timestamp field.
func (v *Validator) validateTimestamp(c *schema.CompiledDataset, spec *Field, value interface{}) error {
	if _, err := column.CoerceValue(column.Timestamp, value); err != nil {
		return schema.NewTypeMismatchError(c.Dataset, c.Version, spec.Name, "timestamp", jsonTypeName(value))
	}
	return nil
}

// validateNumber validates an arithmetic field. Coercion enforces the
// element type (including integral range checks); constraints then apply
// to the coerced decimal.
func (v *Validator) validateNumber(c *schema.CompiledDataset, spec *Field, value interface{}) error {
	s, err := column.CoerceValue(spec.DType, value)
	if err != nil {
		return &schema.ValidationError{
			Dataset:      c.Dataset,
			Version:      c.Version,
			Field:        spec.Name,
			Message:      err.Error(),
			ExpectedType: string(spec.DType),
			ActualType:   jsonTypeName(value),
		}
	}
	num := s.Num

	// Enum constraint
	if len(spec.enumNums) > 0 {
		found := false
		for _, allowed := range spec.enumNums {
			if allowed.Equal(num) {
				found = true
				break
			}
		}
		if !found {
			return &schema.ValidationError{
				Dataset: c.Dataset,
				Version: c.Version,
				Field:   spec.Name,
				Message: fmt.Sprintf("value %s not in enum %v", num, spec.Enum),
			}
		}
	}

	// Min/max constraints
	if spec.Min != nil && num.LessThan(decimal.NewFromFloat(*spec.Min)) {
		return &schema.ValidationError{
			Dataset: c.Dataset,
			Version: c.Version,
			Field:   spec.Name,
			Message: fmt.Sprintf("value %s is less than minimum %v", num, *spec.Min),
		}
	}
	if spec.Max != nil && num.GreaterThan(decimal.NewFromFloat(*spec.Max)) {
		return &schema.ValidationError{
			Dataset: c.Dataset,
			Version: c.Version,
			Field:   spec.Name,
			Message: fmt.Sprintf("value %s exceeds maximum %v", num, *spec.Max),
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
