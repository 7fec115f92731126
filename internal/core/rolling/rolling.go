package rolling

import "fmt"

// Supported rolling operator kinds.
// mean is the only kind with a non-identity output step: it divides the
// accumulated sum by the window's valid-element count at the end.
const (
	KindSum   Kind = "sum"
	KindMean  Kind = "mean"
	KindMin   Kind = "min"
	KindMax   Kind = "max"
	KindCount Kind = "count"
)

// Kind names a rolling aggregation operator.
type Kind string

// kinds lists all operator kinds in declaration order, for deterministic
// enumeration in API responses and error messages.
var kinds = []Kind{KindSum, KindMean, KindMin, KindMax, KindCount}

// Kinds returns all operator kinds in a stable order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// ValidKind reports whether k is a known operator kind.
func ValidKind(k Kind) bool {
	switch k {
	case KindSum, KindMean, KindMin, KindMax, KindCount:
		return true
	}
	return false
}

// ParseKind converts a job-file operator name into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !ValidKind(k) {
		return "", fmt.Errorf("unknown operator %q", s)
	}
	return k, nil
}
