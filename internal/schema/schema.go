package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/windrow-lab/windrow/internal/core/column"
)

// State represents the lifecycle state of a dataset schema.
type State string

const (
	StateActive     State = "active"
	StateDeprecated State = "deprecated"
	StateDeleted    State = "deleted"
)

// Format represents the format of the schema definition.
type Format string

const (
	FormatProtobuf Format = "protobuf"
	FormatYaml     Format = "yaml"
	FormatJSON     Format = "json"
)

// Dataset represents a registered dataset schema: the named, versioned
// definition of the columns its rows carry.
type Dataset struct {
	// ID is the unique dataset schema identifier (UUID).
	ID string `json:"id"`

	// Name is the dataset this schema describes (e.g., "api_requests").
	Name string `json:"name"`

	// Version is the schema version number (1, 2, 3...).
	Version int `json:"version"`

	// Format is the schema format (yaml or protobuf).
	Format Format `json:"format"`

	// Definition is the raw schema content (e.g., .proto file content).
	Definition []byte `json:"definition"`

	// Fingerprint is SHA-256 hash of Definition for deduplication.
	Fingerprint string `json:"fingerprint"`

	// State is the lifecycle state of the dataset schema.
	State State `json:"state"`

	// StrictMode rejects rows with unknown fields when true.
	StrictMode bool `json:"strict_mode"`

	// CreatedAt is when the schema was registered.
	CreatedAt time.Time `json:"created_at"`

	// DeprecatedAt is when the schema was deprecated (nil if active).
	DeprecatedAt *time.Time `json:"deprecated_at,omitempty"`
}

// ComputeFingerprint calculates SHA-256 hash of the definition.
func ComputeFingerprint(definition []byte) string {
	hash := sha256.Sum256(definition)
	return hex.EncodeToString(hash[:])
}

// Key uniquely identifies a dataset schema for lookup.
type Key struct {
	Name    string
	Version int
}

// Key returns the lookup key for this dataset schema.
func (d *Dataset) Key() Key {
	return Key{
		Name:    d.Name,
		Version: d.Version,
	}
}

// FieldSpec is one compiled column of a dataset: its name, element type,
// and whether rows must carry it.
type FieldSpec struct {
	Name     string       `json:"name"`
	DType    column.DType `json:"dtype"`
	Required bool         `json:"required"`
}

// CompiledDataset is a dataset schema compiled into its column layout,
// ready for row validation and field type resolution. Fields preserve
// definition order.
//
// Spec carries the format-specific compiled payload when row validation
// needs more than the field list (the YAML format keeps its constraint
// spec there; protobuf needs nothing beyond Fields).
type CompiledDataset struct {
	Dataset    string
	Version    int
	Format     Format
	StrictMode bool
	Fields     []FieldSpec

	Spec interface{}

	fieldIndex map[string]int
}

// NewCompiledDataset builds a compiled dataset and indexes its fields.
func NewCompiledDataset(name string, version int, format Format, strict bool, fields []FieldSpec) *CompiledDataset {
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		idx[f.Name] = i
	}
	return &CompiledDataset{
		Dataset:    name,
		Version:    version,
		Format:     format,
		StrictMode: strict,
		Fields:     fields,
		fieldIndex: idx,
	}
}

// Field returns the spec of the named field.
func (c *CompiledDataset) Field(name string) (FieldSpec, bool) {
	i, ok := c.fieldIndex[name]
	if !ok {
		return FieldSpec{}, false
	}
	return c.Fields[i], true
}

// HasField reports whether the dataset defines the named field.
func (c *CompiledDataset) HasField(name string) bool {
	_, ok := c.fieldIndex[name]
	return ok
}
