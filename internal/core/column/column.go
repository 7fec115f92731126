package column

import (
	"time"

	"github.com/shopspring/decimal"
)

// Column is an immutable typed vector with an optional validity mask.
// A nil mask means every element is valid; this keeps the common
// fully-valid case allocation-free.
//
// All arithmetic dtypes share the decimal backing slice: the logical
// dtype governs semantics, not physical layout.
type Column struct {
	dtype DType
	nums  []decimal.Decimal
	times []time.Time
	strs  []string
	valid []bool
	nulls int
}

// Len returns the number of elements, valid or not.
func (c *Column) Len() int {
	switch c.dtype {
	case Timestamp:
		return len(c.times)
	case String:
		return len(c.strs)
	default:
		return len(c.nums)
	}
}

// DType returns the logical element type.
func (c *Column) DType() DType { return c.dtype }

// IsValid reports whether element i is present (non-null).
func (c *Column) IsValid(i int) bool {
	return c.valid == nil || c.valid[i]
}

// NullCount returns the number of null elements.
func (c *Column) NullCount() int { return c.nulls }

// Number returns element i of an arithmetic column. The value is
// unspecified when the element is null.
func (c *Column) Number(i int) decimal.Decimal { return c.nums[i] }

// Time returns element i of a timestamp column.
func (c *Column) Time(i int) time.Time { return c.times[i] }

// Str returns element i of a string column.
func (c *Column) Str(i int) string { return c.strs[i] }

// Scalar returns element i as a typed scalar.
func (c *Column) Scalar(i int) Scalar {
	switch c.dtype {
	case Timestamp:
		return TimeScalar(c.times[i])
	case String:
		return StringScalar(c.strs[i])
	default:
		return NumberScalar(c.dtype, c.nums[i])
	}
}
