package rolling

import "fmt"

// Bounds describes the row-count window evaluated at each slot. The
// window at slot i covers rows [i-Preceding+1, i+Following], clamped to
// the column. Preceding counts the current row, so Preceding=3,
// Following=0 is the classic trailing 3-row window.
//
// MinPeriods is the smallest number of valid elements a window must hold
// to produce an output; slots below it are null. Keeping it at 1 or more
// is what guarantees a mean never divides by zero. MinPeriods larger
// than the full window span is allowed and yields all-null output.
type Bounds struct {
	Preceding  int
	Following  int
	MinPeriods int
}

// Validate checks the structural invariants:
// Preceding >= 1, Following >= 0, MinPeriods >= 1.
func (b Bounds) Validate() error {
	if b.Preceding < 1 {
		return fmt.Errorf("window preceding must be >= 1, got %d", b.Preceding)
	}
	if b.Following < 0 {
		return fmt.Errorf("window following must be >= 0, got %d", b.Following)
	}
	if b.MinPeriods < 1 {
		return fmt.Errorf("window min_periods must be >= 1, got %d", b.MinPeriods)
	}
	return nil
}

// Span returns the number of rows a fully interior window covers.
func (b Bounds) Span() int {
	return b.Preceding + b.Following
}

// Frame returns the half-open row range [lo, hi) of the window at slot i
// in a column of length n. Edges clamp: windows near the boundaries
// shrink rather than read out of range.
func (b Bounds) Frame(i, n int) (lo, hi int) {
	lo = i - b.Preceding + 1
	if lo < 0 {
		lo = 0
	}
	hi = i + b.Following + 1
	if hi > n {
		hi = n
	}
	return lo, hi
}
