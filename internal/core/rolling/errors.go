package rolling

import (
	"errors"
	"fmt"

	"github.com/windrow-lab/windrow/internal/core/column"
)

// ErrUnsupportedAggregation is returned when an operator kind is paired
// with an element type it cannot aggregate. It always surfaces while a
// plan is being built, never while rows are processed, and it is not
// recoverable by retrying: the job definition itself is wrong.
var ErrUnsupportedAggregation = errors.New("unsupported aggregation")

// ErrDivisionByZero is returned when a mean is finalized over zero valid
// elements. Plans guard this with MinPeriods >= 1, so seeing it means a
// caller invoked the finalizer without the guard.
var ErrDivisionByZero = errors.New("mean over zero valid elements")

// ConfigError names the operator and element type rejected by the
// eligibility check. errors.Is(err, ErrUnsupportedAggregation) matches.
type ConfigError struct {
	Kind  Kind
	DType column.DType
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("operator %q cannot aggregate %s columns: %s", e.Kind, e.DType, ErrUnsupportedAggregation)
}

func (e *ConfigError) Unwrap() error { return ErrUnsupportedAggregation }
