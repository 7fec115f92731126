package column

import (
	"time"

	"github.com/shopspring/decimal"
)

// Builder assembles a Column element by element. Zero value is not usable;
// construct with NewBuilder. A builder must not be reused after Finish.
type Builder struct {
	dtype DType
	nums  []decimal.Decimal
	times []time.Time
	strs  []string
	valid []bool
	nulls int
}

// NewBuilder returns a builder for a column of the given dtype. The dtype
// must be valid; callers resolve it through a compiled dataset schema or
// ParseDType first.
func NewBuilder(dt DType) *Builder {
	return &Builder{dtype: dt}
}

// Len returns the number of elements appended so far.
func (b *Builder) Len() int { return len(b.valid) }

// AppendNull appends a null element.
func (b *Builder) AppendNull() {
	b.appendZero()
	b.valid = append(b.valid, false)
	b.nulls++
}

// AppendValue coerces a dynamic payload value into the column's dtype and
// appends it. nil appends a null. Coercion failure of a present value is
// an error; the element is not appended.
func (b *Builder) AppendValue(v any) error {
	if v == nil {
		b.AppendNull()
		return nil
	}
	s, err := CoerceValue(b.dtype, v)
	if err != nil {
		return err
	}
	switch b.dtype {
	case Timestamp:
		b.AppendTime(s.Time)
	case String:
		b.AppendString(s.Str)
	default:
		b.AppendNumber(s.Num)
	}
	return nil
}

// AppendNumber appends a decimal element to an arithmetic column.
func (b *Builder) AppendNumber(v decimal.Decimal) {
	b.nums = append(b.nums, v)
	b.valid = append(b.valid, true)
}

// AppendTime appends a timestamp element.
func (b *Builder) AppendTime(t time.Time) {
	b.times = append(b.times, t)
	b.valid = append(b.valid, true)
}

// AppendString appends a string element.
func (b *Builder) AppendString(s string) {
	b.strs = append(b.strs, s)
	b.valid = append(b.valid, true)
}

// Finish freezes the appended elements into an immutable Column.
// The validity mask is dropped when no nulls were appended.
func (b *Builder) Finish() *Column {
	col := &Column{
		dtype: b.dtype,
		nums:  b.nums,
		times: b.times,
		strs:  b.strs,
		nulls: b.nulls,
	}
	if b.nulls > 0 {
		col.valid = b.valid
	}
	return col
}

// appendZero keeps the value slice aligned with the validity mask when a
// null is appended.
func (b *Builder) appendZero() {
	switch b.dtype {
	case Timestamp:
		b.times = append(b.times, time.Time{})
	case String:
		b.strs = append(b.strs, "")
	default:
		b.nums = append(b.nums, decimal.Decimal{})
	}
}
