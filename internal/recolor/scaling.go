package recolor

import (
	"context"
	"fmt"
	"time"
)

// DefaultScalingWorkers is the worker-count curve measured when no counts are
// given.
var DefaultScalingWorkers = []int{1, 2, 6, 16, 40}

// Timing is the measured latency of one worker count.
type Timing struct {
	Workers int           `json:"workers"`
	Best    time.Duration `json:"best_ns"`
	Mean    time.Duration `json:"mean_ns"`

	// Speedup is the best time of the first measured count divided by Best.
	Speedup float64 `json:"speedup"`
}

// MeasureScaling reports how wall-clock latency changes with the number of
// bands.
//
// Each worker count is run `runs` times (at least once) against a fresh
// destination buffer. The concurrency cap is lifted to the band count so
// every band gets its own goroutine.
//
// Returns an error if a count is invalid, any run fails, or ctx is done.
func MeasureScaling(ctx context.Context, src *Buffer, workerCounts []int, runs int) ([]Timing, error) {
	if len(workerCounts) == 0 {
		workerCounts = DefaultScalingWorkers
	}
	runs = max(runs, 1)

	timings := make([]Timing, 0, len(workerCounts))
	for _, workers := range workerCounts {
		t := Timing{Workers: workers}
		var total time.Duration
		for r := 0; r < runs; r++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			dst := NewBuffer(src.Width, src.Height)
			start := time.Now()
			err := RecolorParallel(ctx, src, dst, Options{Workers: workers, MaxConcurrent: workers})
			elapsed := time.Since(start)
			if err != nil {
				return nil, fmt.Errorf("workers=%d run %d: %w", workers, r+1, err)
			}
			total += elapsed
			if r == 0 || elapsed < t.Best {
				t.Best = elapsed
			}
		}
		t.Mean = total / time.Duration(runs)
		timings = append(timings, t)
	}

	base := timings[0].Best
	for i := range timings {
		if timings[i].Best > 0 {
			timings[i].Speedup = float64(base) / float64(timings[i].Best)
		}
	}
	return timings, nil
}
