package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/windrow-lab/windrow/internal/core/column"
	"github.com/windrow-lab/windrow/internal/core/rolling"
)

// FieldResolver resolves a dataset field to its element type. The dataset
// registry implements it; tests substitute a map.
type FieldResolver interface {
	FieldDType(ctx context.Context, dataset, field string) (column.DType, error)
}

// CompiledJob is a job spec bound to its resolved element type and plan.
// Once compiled, batch runs do no dispatch: the plan carries the
// aggregator and finalizer picked for this job.
type CompiledJob struct {
	Spec  rolling.JobSpec
	DType column.DType
	Plan  *rolling.Plan
}

// CompileJobs resolves every job's field type and builds its plan. Any
// failure aborts the whole compile: an operator paired with a field type
// it cannot aggregate is a configuration error, and the service refuses
// to start rather than skip the job silently.
func CompileJobs(ctx context.Context, jobs []rolling.JobSpec, resolver FieldResolver) ([]CompiledJob, error) {
	compiled := make([]CompiledJob, 0, len(jobs))
	for _, spec := range jobs {
		dt, err := resolver.FieldDType(ctx, spec.Dataset, spec.Field)
		if err != nil {
			return nil, fmt.Errorf("job %q: resolve field %s.%s: %w", spec.Name, spec.Dataset, spec.Field, err)
		}

		plan, err := rolling.NewPlan(dt, spec.Kind, spec.Bounds)
		if err != nil {
			return nil, fmt.Errorf("job %q: %w", spec.Name, err)
		}

		slog.Info("[Compile] Job compiled",
			"job", spec.Name,
			"dataset", spec.Dataset,
			"field", spec.Field,
			"dtype", dt,
			"operator", spec.Kind,
			"preceding", spec.Bounds.Preceding,
			"following", spec.Bounds.Following,
			"min_periods", spec.Bounds.MinPeriods,
		)

		compiled = append(compiled, CompiledJob{Spec: spec, DType: dt, Plan: plan})
	}
	return compiled, nil
}
