package column

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// CoerceValue converts a dynamic payload value into a scalar of the given
// dtype. Schema validation and column building share this rule set, so a
// value that passes validation is guaranteed to build. nil is not
// accepted here; callers handle nulls before coercing.
func CoerceValue(dt DType, v any) (Scalar, error) {
	switch dt {
	case Timestamp:
		t, err := coerceTime(v)
		if err != nil {
			return Scalar{}, err
		}
		return TimeScalar(t), nil
	case String:
		s, err := cast.ToStringE(v)
		if err != nil {
			return Scalar{}, fmt.Errorf("cannot read %T as string", v)
		}
		return StringScalar(s), nil
	default:
		n, err := coerceNumber(dt, v)
		if err != nil {
			return Scalar{}, err
		}
		return NumberScalar(dt, n), nil
	}
}

var (
	minInt32 = decimal.NewFromInt(math.MinInt32)
	maxInt32 = decimal.NewFromInt(math.MaxInt32)
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// coerceNumber converts a dynamic payload value into a decimal under the
// given arithmetic dtype. JSON decoding hands numbers over as float64,
// so that case comes first; strings parse exactly to preserve decimal
// payloads; everything else goes through cast.
func coerceNumber(dt DType, v any) (decimal.Decimal, error) {
	var d decimal.Decimal
	switch value := v.(type) {
	case float64:
		d = decimal.NewFromFloat(value)
	case float32:
		d = decimal.NewFromFloat32(value)
	case int:
		d = decimal.NewFromInt(int64(value))
	case int64:
		d = decimal.NewFromInt(value)
	case int32:
		d = decimal.NewFromInt(int64(value))
	case decimal.Decimal:
		d = value
	case string:
		parsed, err := decimal.NewFromString(value)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("cannot read %q as %s", value, dt)
		}
		d = parsed
	case bool:
		// cast would read this as 0 or 1; a bool in a numeric field is a
		// mismatch, not a value.
		return decimal.Decimal{}, fmt.Errorf("cannot read %T as %s", v, dt)
	default:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("cannot read %T as %s", v, dt)
		}
		d = decimal.NewFromFloat(f)
	}
	if dt.Integral() {
		if !d.IsInteger() {
			return decimal.Decimal{}, fmt.Errorf("fractional value %s not allowed for %s", d, dt)
		}
		lo, hi := minInt64, maxInt64
		if dt == Int32 {
			lo, hi = minInt32, maxInt32
		}
		if d.LessThan(lo) || d.GreaterThan(hi) {
			return decimal.Decimal{}, fmt.Errorf("value %s out of range for %s", d, dt)
		}
	}
	return d, nil
}

// coerceTime accepts time.Time, RFC 3339 strings (plus the other layouts
// cast knows) and numeric unix seconds.
func coerceTime(v any) (time.Time, error) {
	t, err := cast.ToTimeE(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot read %T as timestamp", v)
	}
	return t, nil
}
