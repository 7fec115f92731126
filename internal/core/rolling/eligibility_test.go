package rolling

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/windrow-lab/windrow/internal/core/column"
)

func TestSupported_TruthTable(t *testing.T) {
	arithmetic := []column.DType{column.Int32, column.Int64, column.Float32, column.Float64, column.Decimal}
	wrappers := []column.DType{column.Timestamp, column.String}

	for _, dt := range arithmetic {
		for _, k := range Kinds() {
			require.True(t, Supported(dt, k), "dt=%s kind=%s", dt, k)
		}
	}

	for _, dt := range wrappers {
		tests := []struct {
			kind Kind
			want bool
		}{
			{KindMin, true},
			{KindMax, true},
			{KindCount, true},
			{KindSum, false},
			{KindMean, false},
		}
		for _, tc := range tests {
			require.Equal(t, tc.want, Supported(dt, tc.kind), "dt=%s kind=%s", dt, tc.kind)
		}
	}
}

func TestSupported_RejectsUnknown(t *testing.T) {
	require.False(t, Supported(column.DType("uint8"), KindMin))
	require.False(t, Supported(column.Int64, Kind("median")))
	require.False(t, Supported(column.DType(""), Kind("")))
}

func TestSupportedKinds(t *testing.T) {
	require.Equal(t, Kinds(), SupportedKinds(column.Float64))
	require.Equal(t, []Kind{KindMin, KindMax, KindCount}, SupportedKinds(column.String))
	require.Equal(t, []Kind{KindMin, KindMax, KindCount}, SupportedKinds(column.Timestamp))
	require.Empty(t, SupportedKinds(column.DType("uint8")))
}

func TestForColumn_IneligiblePair(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		dtype column.DType
	}{
		{"sum over string", KindSum, column.String},
		{"sum over timestamp", KindSum, column.Timestamp},
		{"mean over string", KindMean, column.String},
		{"mean over timestamp", KindMean, column.Timestamp},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			agg, err := ForColumn(tc.kind, tc.dtype)
			require.Nil(t, agg)
			require.ErrorIs(t, err, ErrUnsupportedAggregation)

			var ce *ConfigError
			require.True(t, errors.As(err, &ce))
			require.Equal(t, tc.kind, ce.Kind)
			require.Equal(t, tc.dtype, ce.DType)
			require.Contains(t, ce.Error(), string(tc.kind))
			require.Contains(t, ce.Error(), string(tc.dtype))
		})
	}
}
