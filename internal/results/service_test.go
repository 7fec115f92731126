package results

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/windrow-lab/windrow/internal/core/column"
	"github.com/windrow-lab/windrow/internal/core/rolling"
	"github.com/windrow-lab/windrow/internal/engine"
	enginemocks "github.com/windrow-lab/windrow/internal/mocks/engine"
)

func testJobs() []engine.CompiledJob {
	return []engine.CompiledJob{
		{
			Spec: rolling.JobSpec{
				Name:        "sum_latency",
				Dataset:     "api_requests",
				Field:       "latency_ms",
				Kind:        rolling.KindSum,
				Bounds:      rolling.Bounds{Preceding: 4, Following: 0, MinPeriods: 2},
				Fingerprint: "fp-current",
			},
			DType: column.Float64,
		},
		{
			Spec: rolling.JobSpec{
				Name:        "max_endpoint",
				Dataset:     "api_requests",
				Field:       "endpoint",
				Kind:        rolling.KindMax,
				Bounds:      rolling.Bounds{Preceding: 9, Following: 0, MinPeriods: 1},
				Fingerprint: "fp-endpoint",
			},
			DType: column.String,
		},
	}
}

func TestService_QueryResults_Validation(t *testing.T) {
	store := enginemocks.NewResultStore(t)
	svc := NewService(store, testJobs())

	tests := []struct {
		name string
		req  ResultsQueryRequest
	}{
		{
			name: "negative from_seq",
			req:  ResultsQueryRequest{Job: "sum_latency", FromSeq: -1},
		},
		{
			name: "limit above maximum",
			req:  ResultsQueryRequest{Job: "sum_latency", Limit: maxQueryLimit + 1},
		},
		{
			name: "negative limit",
			req:  ResultsQueryRequest{Job: "sum_latency", Limit: -5},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.QueryResults(context.Background(), tc.req)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrInvalidQuery)
		})
	}
}

func TestService_QueryResults_UnknownJob(t *testing.T) {
	store := enginemocks.NewResultStore(t)
	svc := NewService(store, testJobs())

	_, err := svc.QueryResults(context.Background(), ResultsQueryRequest{Job: "missing_job"})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrJobNotFound)
}

func TestService_QueryResults_DefaultsLimit(t *testing.T) {
	store := enginemocks.NewResultStore(t)
	store.EXPECT().ReadCheckpoint(mock.Anything, "sum_latency").Return(int64(0), nil).Once()
	store.EXPECT().
		QueryResults(mock.Anything, "sum_latency", int64(0), defaultQueryLimit).
		Return(nil, nil).
		Once()

	svc := NewService(store, testJobs())

	resp, err := svc.QueryResults(context.Background(), ResultsQueryRequest{Job: "sum_latency"})
	require.NoError(t, err)
	require.Equal(t, defaultQueryLimit, resp.Limit)
	require.Empty(t, resp.Values)
}

func TestService_QueryResults_RendersStoredSlots(t *testing.T) {
	occurredAt := time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC)

	stored := []engine.Result{
		{
			JobName:     "sum_latency",
			Seq:         5,
			OccurredAt:  occurredAt,
			DType:       column.Float64,
			Valid:       false, // below min_periods
			Fingerprint: "fp-current",
		},
		{
			JobName:     "sum_latency",
			Seq:         6,
			OccurredAt:  occurredAt.Add(time.Minute),
			DType:       column.Float64,
			Value:       column.NumberScalar(column.Float64, decimal.RequireFromString("6.5")),
			Valid:       true,
			Fingerprint: "fp-current",
		},
		{
			JobName:     "sum_latency",
			Seq:         7,
			OccurredAt:  occurredAt.Add(2 * time.Minute),
			DType:       column.Float64,
			Value:       column.NumberScalar(column.Float64, decimal.RequireFromString("9")),
			Valid:       true,
			Fingerprint: "fp-older", // computed before the job definition changed
		},
	}

	store := enginemocks.NewResultStore(t)
	store.EXPECT().ReadCheckpoint(mock.Anything, "sum_latency").Return(int64(7), nil).Once()
	store.EXPECT().
		QueryResults(mock.Anything, "sum_latency", int64(4), 10).
		Return(stored, nil).
		Once()

	svc := NewService(store, testJobs())

	resp, err := svc.QueryResults(context.Background(), ResultsQueryRequest{
		Job:     "sum_latency",
		FromSeq: 4,
		Limit:   10,
	})
	require.NoError(t, err)
	require.Equal(t, "sum_latency", resp.Job)
	require.Equal(t, "api_requests", resp.Dataset)
	require.Equal(t, "sum", resp.Operator)
	require.Equal(t, "float64", resp.DType)
	require.Equal(t, int64(7), resp.DataThroughSeq)
	require.Len(t, resp.Values, 3)

	// Null slot: value absent, not zero
	require.Equal(t, int64(5), resp.Values[0].Seq)
	require.Nil(t, resp.Values[0].Value)
	require.False(t, resp.Values[0].Stale)

	require.Equal(t, int64(6), resp.Values[1].Seq)
	require.Equal(t, decimal.RequireFromString("6.5"), resp.Values[1].Value)
	require.False(t, resp.Values[1].Stale)

	// Fingerprint mismatch flags the slot as stale
	require.Equal(t, int64(7), resp.Values[2].Seq)
	require.True(t, resp.Values[2].Stale)
}

func TestService_QueryResults_RendersStringSlots(t *testing.T) {
	occurredAt := time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC)

	store := enginemocks.NewResultStore(t)
	store.EXPECT().ReadCheckpoint(mock.Anything, "max_endpoint").Return(int64(3), nil).Once()
	store.EXPECT().
		QueryResults(mock.Anything, "max_endpoint", int64(0), defaultQueryLimit).
		Return([]engine.Result{
			{
				JobName:     "max_endpoint",
				Seq:         3,
				OccurredAt:  occurredAt,
				DType:       column.String,
				Value:       column.StringScalar("/v1/users"),
				Valid:       true,
				Fingerprint: "fp-endpoint",
			},
		}, nil).
		Once()

	svc := NewService(store, testJobs())

	resp, err := svc.QueryResults(context.Background(), ResultsQueryRequest{Job: "max_endpoint"})
	require.NoError(t, err)
	require.Len(t, resp.Values, 1)
	require.Equal(t, "/v1/users", resp.Values[0].Value)
	require.Equal(t, "string", resp.DType)
}

func TestService_ListJobs_SortedByName(t *testing.T) {
	store := enginemocks.NewResultStore(t)
	svc := NewService(store, testJobs())

	summaries := svc.ListJobs()
	require.Len(t, summaries, 2)

	require.Equal(t, "max_endpoint", summaries[0].Name)
	require.Equal(t, "sum_latency", summaries[1].Name)

	require.Equal(t, "api_requests", summaries[1].Dataset)
	require.Equal(t, "latency_ms", summaries[1].Field)
	require.Equal(t, "sum", summaries[1].Operator)
	require.Equal(t, "float64", summaries[1].DType)
	require.Equal(t, WindowSummary{Preceding: 4, Following: 0, MinPeriods: 2}, summaries[1].Window)
	require.Equal(t, "fp-current", summaries[1].Fingerprint)
}
