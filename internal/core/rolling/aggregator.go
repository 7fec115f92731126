package rolling

import (
	"github.com/shopspring/decimal"

	"github.com/windrow-lab/windrow/internal/core/column"
)

// Aggregator defines the fold semantics of one operator kind over one
// element category. ForColumn resolves the implementation once per plan;
// the per-slot fold then runs with no type dispatch.
type Aggregator interface {
	// Initial returns the accumulator after the first valid element of a
	// window. count → 1; every other kind → the element itself.
	Initial(incoming column.Scalar) column.Scalar

	// Apply folds the next valid element into the accumulator.
	Apply(current, incoming column.Scalar) column.Scalar
}

// ForColumn resolves the aggregator for kind k over element type dt.
// This is the operational face of Supported: an ineligible pair comes
// back as a *ConfigError wrapping ErrUnsupportedAggregation.
func ForColumn(k Kind, dt column.DType) (Aggregator, error) {
	if !Supported(dt, k) {
		return nil, &ConfigError{Kind: k, DType: dt}
	}
	switch k {
	case KindCount:
		return countAgg{}, nil
	case KindSum, KindMean:
		// mean folds exactly like sum; the division happens in its finalizer.
		return sumAgg{}, nil
	case KindMin:
		switch dt {
		case column.Timestamp:
			return timeMinAgg{}, nil
		case column.String:
			return stringMinAgg{}, nil
		default:
			return numberMinAgg{}, nil
		}
	default: // KindMax
		switch dt {
		case column.Timestamp:
			return timeMaxAgg{}, nil
		case column.String:
			return stringMaxAgg{}, nil
		default:
			return numberMaxAgg{}, nil
		}
	}
}

var one = decimal.NewFromInt(1)

// countAgg counts valid elements. The incoming value is ignored, which is
// what lets count run over any element type.
type countAgg struct{}

func (countAgg) Initial(_ column.Scalar) column.Scalar {
	return column.NumberScalar(column.Int64, one)
}

func (countAgg) Apply(cur, _ column.Scalar) column.Scalar {
	return column.NumberScalar(column.Int64, cur.Num.Add(one))
}

// sumAgg accumulates the decimal sum. Arithmetic columns only.
type sumAgg struct{}

func (sumAgg) Initial(v column.Scalar) column.Scalar { return v }
func (sumAgg) Apply(cur, inc column.Scalar) column.Scalar {
	cur.Num = cur.Num.Add(inc.Num)
	return cur
}

// numberMinAgg tracks the lowest decimal value seen.
type numberMinAgg struct{}

func (numberMinAgg) Initial(v column.Scalar) column.Scalar { return v }
func (numberMinAgg) Apply(cur, inc column.Scalar) column.Scalar {
	if inc.Num.LessThan(cur.Num) {
		return inc
	}
	return cur
}

// numberMaxAgg tracks the highest decimal value seen.
type numberMaxAgg struct{}

func (numberMaxAgg) Initial(v column.Scalar) column.Scalar { return v }
func (numberMaxAgg) Apply(cur, inc column.Scalar) column.Scalar {
	if inc.Num.GreaterThan(cur.Num) {
		return inc
	}
	return cur
}

// timeMinAgg tracks the earliest timestamp seen.
type timeMinAgg struct{}

func (timeMinAgg) Initial(v column.Scalar) column.Scalar { return v }
func (timeMinAgg) Apply(cur, inc column.Scalar) column.Scalar {
	if inc.Time.Before(cur.Time) {
		return inc
	}
	return cur
}

// timeMaxAgg tracks the latest timestamp seen.
type timeMaxAgg struct{}

func (timeMaxAgg) Initial(v column.Scalar) column.Scalar { return v }
func (timeMaxAgg) Apply(cur, inc column.Scalar) column.Scalar {
	if inc.Time.After(cur.Time) {
		return inc
	}
	return cur
}

// stringMinAgg tracks the lexicographically smallest string seen.
type stringMinAgg struct{}

func (stringMinAgg) Initial(v column.Scalar) column.Scalar { return v }
func (stringMinAgg) Apply(cur, inc column.Scalar) column.Scalar {
	if inc.Str < cur.Str {
		return inc
	}
	return cur
}

// stringMaxAgg tracks the lexicographically largest string seen.
type stringMaxAgg struct{}

func (stringMaxAgg) Initial(v column.Scalar) column.Scalar { return v }
func (stringMaxAgg) Apply(cur, inc column.Scalar) column.Scalar {
	if inc.Str > cur.Str {
		return inc
	}
	return cur
}
