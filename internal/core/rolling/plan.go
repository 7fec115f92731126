package rolling

import (
	"fmt"

	"github.com/windrow-lab/windrow/internal/core/column"
)

// Plan is one rolling operator bound to one element type and one window
// shape. Building a plan runs the eligibility check and resolves the
// aggregator and finalizer; applying it does per-slot folds with no
// dispatch left.
//
// Plans are immutable and safe for concurrent use: ApplyRange writes
// only into the caller's buffer.
type Plan struct {
	kind   Kind
	input  column.DType
	output column.DType
	bounds Bounds
	agg    Aggregator
	fin    Finalizer
}

// NewPlan binds kind k to columns of element type dt under bounds b.
// Ineligible (dt, k) pairs fail here with a *ConfigError, and invalid
// bounds fail here too: a misconfigured job never touches data.
func NewPlan(dt column.DType, k Kind, b Bounds) (*Plan, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	agg, err := ForColumn(k, dt)
	if err != nil {
		return nil, err
	}
	return &Plan{
		kind:   k,
		input:  dt,
		output: outputDType(k, dt),
		bounds: b,
		agg:    agg,
		fin:    FinalizerFor(k),
	}, nil
}

// outputDType: count yields int64 whatever the input; mean yields exact
// decimal (integral inputs promote rather than truncate); the rest keep
// the input's dtype.
func outputDType(k Kind, dt column.DType) column.DType {
	switch k {
	case KindCount:
		return column.Int64
	case KindMean:
		return column.Decimal
	default:
		return dt
	}
}

// Kind returns the plan's operator kind.
func (p *Plan) Kind() Kind { return p.kind }

// InputDType returns the element type the plan was built for.
func (p *Plan) InputDType() column.DType { return p.input }

// OutputDType returns the element type of the plan's output column.
func (p *Plan) OutputDType() column.DType { return p.output }

// Bounds returns the plan's window shape.
func (p *Plan) Bounds() Bounds { return p.bounds }

// Apply evaluates every slot of src sequentially and returns the output
// column. src must have the plan's input dtype.
func (p *Plan) Apply(src *column.Column) (*column.Column, error) {
	dst := column.NewBuffer(p.output, src.Len())
	if err := p.ApplyRange(dst, src, 0, src.Len()); err != nil {
		return nil, err
	}
	return dst.Freeze(), nil
}

// ApplyRange evaluates slots [lo, hi) of src into dst. Slots are
// independent, so disjoint ranges of the same buffer can be evaluated
// concurrently; this is the engine's unit of parallel work.
//
// dst must be as long as src and carry the plan's output dtype.
func (p *Plan) ApplyRange(dst *column.Buffer, src *column.Column, lo, hi int) error {
	if src.DType() != p.input {
		return fmt.Errorf("plan built for %s columns, got %s", p.input, src.DType())
	}
	if dst.Len() != src.Len() || dst.DType() != p.output {
		return fmt.Errorf("output buffer must be %s with %d slots, got %s with %d",
			p.output, src.Len(), dst.DType(), dst.Len())
	}
	if lo < 0 || hi > src.Len() || lo > hi {
		return fmt.Errorf("slot range [%d, %d) out of bounds for %d rows", lo, hi, src.Len())
	}
	for i := lo; i < hi; i++ {
		if err := p.applySlot(dst, src, i); err != nil {
			return err
		}
	}
	return nil
}

// applySlot folds the window at slot i. Null elements are skipped and do
// not count toward MinPeriods; windows below MinPeriods null-fill the
// slot without invoking the finalizer.
func (p *Plan) applySlot(dst *column.Buffer, src *column.Column, i int) error {
	lo, hi := p.bounds.Frame(i, src.Len())

	var acc column.Scalar
	count := 0
	for j := lo; j < hi; j++ {
		if !src.IsValid(j) {
			continue
		}
		if count == 0 {
			acc = p.agg.Initial(src.Scalar(j))
		} else {
			acc = p.agg.Apply(acc, src.Scalar(j))
		}
		count++
	}

	if count < p.bounds.MinPeriods {
		dst.SetNull(i)
		return nil
	}
	out, err := p.fin.Finalize(acc, count)
	if err != nil {
		return fmt.Errorf("slot %d: %w", i, err)
	}
	dst.Set(i, out)
	return nil
}
