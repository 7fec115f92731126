package column

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Scalar is a single typed element. Exactly one of the value fields is
// meaningful, selected by DType: Num for arithmetic dtypes, Time for
// timestamps, Str for strings.
type Scalar struct {
	DType DType
	Num   decimal.Decimal
	Time  time.Time
	Str   string
}

// NumberScalar wraps a decimal value under an arithmetic dtype.
func NumberScalar(dt DType, v decimal.Decimal) Scalar {
	return Scalar{DType: dt, Num: v}
}

// TimeScalar wraps a timestamp value.
func TimeScalar(t time.Time) Scalar {
	return Scalar{DType: Timestamp, Time: t}
}

// StringScalar wraps a string value.
func StringScalar(s string) Scalar {
	return Scalar{DType: String, Str: s}
}

// StorageText renders the scalar as the canonical text form persisted in
// result rows. Numbers use decimal notation, timestamps RFC 3339 with
// nanoseconds, strings pass through.
func (s Scalar) StorageText() string {
	switch s.DType {
	case Timestamp:
		return s.Time.UTC().Format(time.RFC3339Nano)
	case String:
		return s.Str
	default:
		return s.Num.String()
	}
}

// ParseStorageText is the inverse of StorageText.
func ParseStorageText(dt DType, text string) (Scalar, error) {
	switch dt {
	case Timestamp:
		t, err := time.Parse(time.RFC3339Nano, text)
		if err != nil {
			return Scalar{}, fmt.Errorf("parse %s value %q: %w", dt, text, err)
		}
		return TimeScalar(t), nil
	case String:
		return StringScalar(text), nil
	default:
		n, err := decimal.NewFromString(text)
		if err != nil {
			return Scalar{}, fmt.Errorf("parse %s value %q: %w", dt, text, err)
		}
		return NumberScalar(dt, n), nil
	}
}

// Render returns the scalar as a JSON-marshalable value: decimal for
// numbers (marshals as a quoted exact string), RFC 3339 time, or string.
func (s Scalar) Render() any {
	switch s.DType {
	case Timestamp:
		return s.Time.UTC()
	case String:
		return s.Str
	default:
		return s.Num
	}
}
