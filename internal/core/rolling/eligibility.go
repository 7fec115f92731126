package rolling

import "github.com/windrow-lab/windrow/internal/core/column"

// Supported reports whether operator kind k can aggregate columns of
// element type dt. The rule is small and worth stating in full:
//
//	arithmetic dtypes (int32, int64, float32, float64, decimal) take any kind;
//	timestamp and string take only min, max and count;
//	sum and mean over timestamp or string are rejected;
//	unknown kinds and dtypes are rejected.
//
// Ordering and presence are the only semantics a non-arithmetic column
// guarantees, and min/max/count are exactly the kinds that need no more.
//
// The check is pure and runs once per job at plan build time. A job that
// fails it is rejected before the engine reads a single row.
func Supported(dt column.DType, k Kind) bool {
	if !dt.Valid() || !ValidKind(k) {
		return false
	}
	if dt.Arithmetic() {
		return true
	}
	switch k {
	case KindMin, KindMax, KindCount:
		return true
	}
	return false
}

// SupportedKinds returns the operator kinds eligible for dt, in the
// stable Kinds() order.
func SupportedKinds(dt column.DType) []Kind {
	out := make([]Kind, 0, len(kinds))
	for _, k := range kinds {
		if Supported(dt, k) {
			out = append(out, k)
		}
	}
	return out
}
