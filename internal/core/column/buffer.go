package column

import (
	"time"

	"github.com/shopspring/decimal"
)

// Buffer is a preallocated fixed-length output column. Each slot is
// written at most once, by index. Distinct slot ranges may be written
// from different goroutines without synchronization: writes never touch
// shared counters and slices are sized up front.
//
// Slots never written freeze as null.
type Buffer struct {
	dtype DType
	nums  []decimal.Decimal
	times []time.Time
	strs  []string
	valid []bool
}

// NewBuffer returns a buffer of n null slots with the given dtype.
func NewBuffer(dt DType, n int) *Buffer {
	b := &Buffer{dtype: dt, valid: make([]bool, n)}
	switch dt {
	case Timestamp:
		b.times = make([]time.Time, n)
	case String:
		b.strs = make([]string, n)
	default:
		b.nums = make([]decimal.Decimal, n)
	}
	return b
}

// Len returns the number of slots.
func (b *Buffer) Len() int { return len(b.valid) }

// DType returns the buffer's element type.
func (b *Buffer) DType() DType { return b.dtype }

// Set writes a valid value into slot i. The scalar's backing value is
// read according to the buffer's dtype.
func (b *Buffer) Set(i int, s Scalar) {
	switch b.dtype {
	case Timestamp:
		b.times[i] = s.Time
	case String:
		b.strs[i] = s.Str
	default:
		b.nums[i] = s.Num
	}
	b.valid[i] = true
}

// SetNull marks slot i null. Slots start null, so this is only needed
// for clarity at call sites that decide per slot.
func (b *Buffer) SetNull(i int) {
	b.valid[i] = false
}

// Freeze turns the buffer into an immutable Column. The null count is
// taken here, after all writers have finished.
func (b *Buffer) Freeze() *Column {
	nulls := 0
	for _, ok := range b.valid {
		if !ok {
			nulls++
		}
	}
	col := &Column{
		dtype: b.dtype,
		nums:  b.nums,
		times: b.times,
		strs:  b.strs,
		nulls: nulls,
	}
	if nulls > 0 {
		col.valid = b.valid
	}
	return col
}
