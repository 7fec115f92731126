package column

import "fmt"

// DType is the logical element type of a column. The engine stores every
// arithmetic dtype as decimal internally; the logical dtype still decides
// operator eligibility, payload validation and rendering.
type DType string

const (
	Int32     DType = "int32"
	Int64     DType = "int64"
	Float32   DType = "float32"
	Float64   DType = "float64"
	Decimal   DType = "decimal"
	Timestamp DType = "timestamp"
	String    DType = "string"
)

// dtypes lists all element types in declaration order. Kept as a slice so
// API responses and error messages enumerate deterministically.
var dtypes = []DType{Int32, Int64, Float32, Float64, Decimal, Timestamp, String}

// DTypes returns all known element types in a stable order.
func DTypes() []DType {
	out := make([]DType, len(dtypes))
	copy(out, dtypes)
	return out
}

// Arithmetic reports whether the dtype participates in numeric arithmetic.
// Timestamp and String are ordered wrapper types: they compare and count,
// but cannot be summed or averaged.
func (d DType) Arithmetic() bool {
	switch d {
	case Int32, Int64, Float32, Float64, Decimal:
		return true
	}
	return false
}

// Integral reports whether the dtype holds whole numbers only.
func (d DType) Integral() bool {
	return d == Int32 || d == Int64
}

// Valid reports whether d is a known element type.
func (d DType) Valid() bool {
	switch d {
	case Int32, Int64, Float32, Float64, Decimal, Timestamp, String:
		return true
	}
	return false
}

// ParseDType converts a schema type name into a DType.
func ParseDType(s string) (DType, error) {
	d := DType(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown element type %q", s)
	}
	return d, nil
}
