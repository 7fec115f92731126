package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windrow-lab/windrow/internal/core/column"
	"github.com/windrow-lab/windrow/internal/core/rolling"
)

// mapResolver resolves field types from a "dataset.field" map.
type mapResolver map[string]column.DType

func (m mapResolver) FieldDType(ctx context.Context, dataset, field string) (column.DType, error) {
	dt, ok := m[dataset+"."+field]
	if !ok {
		return "", fmt.Errorf("dataset %q has no field %q", dataset, field)
	}
	return dt, nil
}

func TestCompileJobs_ResolvesTypeAndPlan(t *testing.T) {
	resolver := mapResolver{
		"api_requests.latency_ms": column.Float64,
		"api_requests.region":     column.String,
	}
	jobs := []rolling.JobSpec{
		{
			Name:    "mean_latency",
			Dataset: "api_requests",
			Field:   "latency_ms",
			Kind:    rolling.KindMean,
			Bounds:  rolling.Bounds{Preceding: 5, MinPeriods: 1},
		},
		{
			Name:    "min_region",
			Dataset: "api_requests",
			Field:   "region",
			Kind:    rolling.KindMin,
			Bounds:  rolling.Bounds{Preceding: 3, MinPeriods: 1},
		},
	}

	compiled, err := CompileJobs(context.Background(), jobs, resolver)
	require.NoError(t, err)
	require.Len(t, compiled, 2)

	assert.Equal(t, column.Float64, compiled[0].DType)
	assert.Equal(t, column.Decimal, compiled[0].Plan.OutputDType())
	assert.Equal(t, column.String, compiled[1].DType)
	assert.Equal(t, column.String, compiled[1].Plan.OutputDType())
}

func TestCompileJobs_RejectsUnsupportedPairing(t *testing.T) {
	resolver := mapResolver{"api_requests.region": column.String}
	jobs := []rolling.JobSpec{
		{
			Name:    "sum_region",
			Dataset: "api_requests",
			Field:   "region",
			Kind:    rolling.KindSum,
			Bounds:  rolling.Bounds{Preceding: 3, MinPeriods: 1},
		},
	}

	// The pairing fails at compile time, before any row is read.
	compiled, err := CompileJobs(context.Background(), jobs, resolver)
	require.Error(t, err)
	assert.Nil(t, compiled)
	assert.True(t, errors.Is(err, rolling.ErrUnsupportedAggregation))
	assert.Contains(t, err.Error(), "sum_region")
}

func TestCompileJobs_OneBadJobAbortsAll(t *testing.T) {
	resolver := mapResolver{
		"api_requests.latency_ms": column.Float64,
		"api_requests.region":     column.String,
	}
	jobs := []rolling.JobSpec{
		{
			Name:    "sum_latency",
			Dataset: "api_requests",
			Field:   "latency_ms",
			Kind:    rolling.KindSum,
			Bounds:  rolling.Bounds{Preceding: 3, MinPeriods: 1},
		},
		{
			Name:    "mean_region",
			Dataset: "api_requests",
			Field:   "region",
			Kind:    rolling.KindMean,
			Bounds:  rolling.Bounds{Preceding: 3, MinPeriods: 1},
		},
	}

	compiled, err := CompileJobs(context.Background(), jobs, resolver)
	require.Error(t, err)
	assert.Nil(t, compiled)
}

func TestCompileJobs_UnknownField(t *testing.T) {
	resolver := mapResolver{}
	jobs := []rolling.JobSpec{
		{
			Name:    "sum_latency",
			Dataset: "api_requests",
			Field:   "latency_ms",
			Kind:    rolling.KindSum,
			Bounds:  rolling.Bounds{Preceding: 3, MinPeriods: 1},
		},
	}

	_, err := CompileJobs(context.Background(), jobs, resolver)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "latency_ms")
}

func TestCompileJobs_Empty(t *testing.T) {
	compiled, err := CompileJobs(context.Background(), nil, mapResolver{})
	require.NoError(t, err)
	assert.Empty(t, compiled)
}
