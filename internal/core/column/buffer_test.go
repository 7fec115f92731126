package column

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestBufferFreeze(t *testing.T) {
	b := NewBuffer(Decimal, 4)
	b.Set(0, NumberScalar(Decimal, decimal.NewFromInt(10)))
	b.SetNull(1)
	b.Set(3, NumberScalar(Decimal, decimal.RequireFromString("2.5")))
	// slot 2 never written: freezes as null

	col := b.Freeze()
	require.Equal(t, 4, col.Len())
	require.Equal(t, 2, col.NullCount())
	require.True(t, col.IsValid(0))
	require.False(t, col.IsValid(1))
	require.False(t, col.IsValid(2))
	require.True(t, col.IsValid(3))
	require.True(t, decimal.RequireFromString("2.5").Equal(col.Number(3)))
}

func TestBufferDisjointParallelWrites(t *testing.T) {
	const n = 1000
	b := NewBuffer(Int64, n)

	var wg sync.WaitGroup
	for _, r := range [][2]int{{0, 250}, {250, 500}, {500, 750}, {750, n}} {
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				if i%7 == 0 {
					b.SetNull(i)
					continue
				}
				b.Set(i, NumberScalar(Int64, decimal.NewFromInt(int64(i))))
			}
		}(r[0], r[1])
	}
	wg.Wait()

	col := b.Freeze()
	for i := 0; i < n; i++ {
		if i%7 == 0 {
			require.False(t, col.IsValid(i), "slot %d", i)
			continue
		}
		require.True(t, col.IsValid(i), "slot %d", i)
		require.Equal(t, int64(i), col.Number(i).IntPart())
	}
}

func TestBufferTimeAndString(t *testing.T) {
	tb := NewBuffer(Timestamp, 1)
	ts := TimeScalar(mustTime(t, "2025-06-01T10:00:00Z"))
	tb.Set(0, ts)
	tc := tb.Freeze()
	require.True(t, tc.Time(0).Equal(ts.Time))
	require.Equal(t, Timestamp, tc.DType())

	sb := NewBuffer(String, 2)
	sb.Set(1, StringScalar("z"))
	sc := sb.Freeze()
	require.False(t, sc.IsValid(0))
	require.Equal(t, "z", sc.Str(1))
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

