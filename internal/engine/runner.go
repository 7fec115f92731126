package engine

import (
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/windrow-lab/windrow/internal/core/column"
	"github.com/windrow-lab/windrow/internal/core/rolling"
)

const (
	defaultPoolSize  = 8
	defaultChunkSize = 1024
)

// Runner evaluates plan slots data-parallel over a shared goroutine pool.
// Slots are independent, so the output column is identical whatever the
// chunking; the pool only bounds how many chunks run at once.
//
// One Runner is shared by every job and by the preview API. Close releases
// the pool.
type Runner struct {
	pool      *ants.Pool
	chunkSize int
}

// NewRunner creates a runner with poolSize goroutines evaluating
// chunkSize slots per task. Non-positive arguments fall back to defaults.
func NewRunner(poolSize, chunkSize int) (*Runner, error) {
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, fmt.Errorf("create slot pool: %w", err)
	}
	return &Runner{pool: pool, chunkSize: chunkSize}, nil
}

// Close releases the underlying pool. Pending tasks finish first.
func (r *Runner) Close() {
	r.pool.Release()
}

// Evaluate computes output slots [lo, hi) of plan over src and returns
// the full-length output column; slots outside the range stay null.
// The range is sharded into chunks, one pool task per chunk, all writing
// disjoint slices of one shared buffer. First error wins; every chunk is
// joined before returning.
func (r *Runner) Evaluate(plan *rolling.Plan, src *column.Column, lo, hi int) (*column.Column, error) {
	if lo < 0 || hi > src.Len() || lo > hi {
		return nil, fmt.Errorf("slot range [%d, %d) out of bounds for %d rows", lo, hi, src.Len())
	}

	dst := column.NewBuffer(plan.OutputDType(), src.Len())

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	for start := lo; start < hi; start += r.chunkSize {
		end := start + r.chunkSize
		if end > hi {
			end = hi
		}
		start, end := start, end

		wg.Add(1)
		submitErr := r.pool.Submit(func() {
			defer wg.Done()
			if err := plan.ApplyRange(dst, src, start, end); err != nil {
				errOnce.Do(func() { firstErr = err })
			}
		})
		if submitErr != nil {
			wg.Done()
			errOnce.Do(func() { firstErr = fmt.Errorf("submit slot chunk: %w", submitErr) })
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return dst.Freeze(), nil
}

// EvaluateAll computes every slot of src.
func (r *Runner) EvaluateAll(plan *rolling.Plan, src *column.Column) (*column.Column, error) {
	return r.Evaluate(plan, src, 0, src.Len())
}
