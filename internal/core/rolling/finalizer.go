package rolling

import (
	"github.com/shopspring/decimal"

	"github.com/windrow-lab/windrow/internal/core/column"
)

// Finalizer turns a window's accumulated value into its output element.
// FinalizerFor resolves the strategy once per plan; no per-slot dispatch.
//
// Finalizers are pure: the same value and count always produce the same
// output, and finalizing never mutates the accumulator.
type Finalizer interface {
	// Finalize maps the accumulator to the output value. validCount is
	// the number of valid elements folded into value.
	Finalize(value column.Scalar, validCount int) (column.Scalar, error)
}

// FinalizerFor returns the output strategy for kind k: mean divides by
// the valid-element count, every other kind passes the accumulator
// through untouched.
func FinalizerFor(k Kind) Finalizer {
	if k == KindMean {
		return meanFinalizer{}
	}
	return identityFinalizer{}
}

// Finalize is shorthand for FinalizerFor(k).Finalize(value, validCount).
func Finalize(k Kind, value column.Scalar, validCount int) (column.Scalar, error) {
	return FinalizerFor(k).Finalize(value, validCount)
}

// identityFinalizer returns the accumulator as-is. The count is ignored,
// including zero: sum, min, max and count have nothing to divide.
type identityFinalizer struct{}

func (identityFinalizer) Finalize(v column.Scalar, _ int) (column.Scalar, error) {
	return v, nil
}

// meanFinalizer divides the accumulated sum by the valid-element count.
// Division is exact decimal arithmetic, so integral inputs are promoted
// out of the integer domain rather than truncated: mean(10 over 4) = 2.5.
//
// A zero count is a caller bug, not data: plans null-fill windows below
// MinPeriods (>= 1) before ever reaching the finalizer.
type meanFinalizer struct{}

func (meanFinalizer) Finalize(v column.Scalar, validCount int) (column.Scalar, error) {
	if validCount == 0 {
		return column.Scalar{}, ErrDivisionByZero
	}
	q := v.Num.Div(decimal.NewFromInt(int64(validCount)))
	return column.NumberScalar(column.Decimal, q), nil
}
