package preview

import (
	"errors"
	"fmt"
	"time"

	"github.com/windrow-lab/windrow/internal/core/column"
	"github.com/windrow-lab/windrow/internal/core/rolling"
)

const maxPreviewValues = 10000

// ErrInvalidPreview marks request validation errors that should return HTTP 400.
var ErrInvalidPreview = errors.New("invalid preview request")

// PreviewRequest describes a one-off rolling computation over inline values.
// It exercises the same plan path as a configured job, without touching
// storage or checkpoints.
type PreviewRequest struct {
	DType    string        `json:"dtype" binding:"required"`
	Operator string        `json:"operator" binding:"required"`
	Window   WindowRequest `json:"window"`
	Values   []interface{} `json:"values"`
}

// WindowRequest mirrors the window block of a job definition.
// min_periods defaults to 1.
type WindowRequest struct {
	Preceding  int `json:"preceding"`
	Following  int `json:"following"`
	MinPeriods int `json:"min_periods"`
}

// PreviewResponse carries the rolled values, one slot per input value.
// Slots below min_periods are null.
type PreviewResponse struct {
	DType       string        `json:"dtype"`
	OutputDType string        `json:"output_dtype"`
	Operator    string        `json:"operator"`
	Window      WindowRequest `json:"window"`
	Values      []interface{} `json:"values"`
}

// OperatorSupport lists the operator kinds eligible for one element type.
type OperatorSupport struct {
	DType     string   `json:"dtype"`
	Operators []string `json:"operators"`
}

// Service evaluates ad-hoc rolling computations. It is stateless; every
// request compiles its own plan.
type Service struct{}

// NewService creates a new preview service.
func NewService() *Service {
	return &Service{}
}

// Evaluate compiles a plan for the request and applies it to the inline
// values. An operator paired with an element type it cannot aggregate
// surfaces as rolling.ErrUnsupportedAggregation; everything else wrong
// with the request wraps ErrInvalidPreview.
func (s *Service) Evaluate(req PreviewRequest) (*PreviewResponse, error) {
	dt, err := column.ParseDType(req.DType)
	if err != nil {
		return nil, invalidf("%s", err)
	}

	kind, err := rolling.ParseKind(req.Operator)
	if err != nil {
		return nil, invalidf("%s", err)
	}

	if len(req.Values) == 0 {
		return nil, invalidf("values must not be empty")
	}
	if len(req.Values) > maxPreviewValues {
		return nil, invalidf("at most %d values per preview", maxPreviewValues)
	}

	bounds := rolling.Bounds{
		Preceding:  req.Window.Preceding,
		Following:  req.Window.Following,
		MinPeriods: req.Window.MinPeriods,
	}
	if bounds.MinPeriods == 0 {
		bounds.MinPeriods = 1
	}

	plan, err := rolling.NewPlan(dt, kind, bounds)
	if err != nil {
		if errors.Is(err, rolling.ErrUnsupportedAggregation) {
			return nil, err
		}
		return nil, invalidf("%s", err)
	}

	// Unlike the ingest path, a value the column cannot hold is the
	// caller's mistake here, so it rejects instead of nulling.
	b := column.NewBuilder(dt)
	for i, v := range req.Values {
		if err := b.AppendValue(v); err != nil {
			return nil, invalidf("values[%d]: %s", i, err)
		}
	}

	out, err := plan.Apply(b.Finish())
	if err != nil {
		return nil, fmt.Errorf("apply plan: %w", err)
	}

	values := make([]interface{}, out.Len())
	for i := 0; i < out.Len(); i++ {
		if !out.IsValid(i) {
			continue
		}
		values[i] = renderElement(out, i)
	}

	return &PreviewResponse{
		DType:       string(dt),
		OutputDType: string(plan.OutputDType()),
		Operator:    string(kind),
		Window: WindowRequest{
			Preceding:  bounds.Preceding,
			Following:  bounds.Following,
			MinPeriods: bounds.MinPeriods,
		},
		Values: values,
	}, nil
}

// OperatorMatrix enumerates, per element type, the operator kinds that
// pass the eligibility check. The same tables drive job compilation, so
// the matrix is authoritative for what a job file may declare.
func (s *Service) OperatorMatrix() []OperatorSupport {
	dtypes := column.DTypes()
	matrix := make([]OperatorSupport, 0, len(dtypes))
	for _, dt := range dtypes {
		kinds := rolling.SupportedKinds(dt)
		ops := make([]string, len(kinds))
		for i, k := range kinds {
			ops[i] = string(k)
		}
		matrix = append(matrix, OperatorSupport{DType: string(dt), Operators: ops})
	}
	return matrix
}

func renderElement(col *column.Column, i int) interface{} {
	switch col.DType() {
	case column.Timestamp:
		return col.Time(i).UTC().Format(time.RFC3339Nano)
	case column.String:
		return col.Str(i)
	default:
		return col.Number(i)
	}
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidPreview, fmt.Sprintf(format, args...))
}
