package recolor

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Options controls how RecolorParallel partitions and schedules the work.
type Options struct {
	// Workers is the number of horizontal bands. Must be at least 1.
	Workers int

	// MaxConcurrent caps how many bands run at the same time.
	// Zero or negative uses runtime.GOMAXPROCS(0). The output never depends
	// on this value.
	MaxConcurrent int

	// KeepRowGap reproduces plain floor division: when the height is not a
	// multiple of Workers, the last height%Workers rows belong to no band and
	// are left untouched in the destination. When false those rows are
	// appended to the last band.
	KeepRowGap bool
}

// MaxWorkers is the largest band count Bands accepts.
const MaxWorkers = 1 << 16

// recolorBand is the per-band kernel. Tests swap it to inject faults.
var recolorBand = RecolorRegion

// Bands splits an image of the given height into workers contiguous,
// full-width bands of floor(height/workers) rows each.
//
// Band i starts at row i*floor(height/workers). With keepRowGap the trailing
// remainder rows are not covered by any band; otherwise the last band is
// extended to the bottom of the image.
//
// workers may exceed height, leaving zero-height bands, but not MaxWorkers.
func Bands(width, height, workers int, keepRowGap bool) ([]Region, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: worker count %d must be at least 1", ErrInvalidArgument, workers)
	}
	if workers > MaxWorkers {
		return nil, fmt.Errorf("%w: worker count %d exceeds %d", ErrInvalidArgument, workers, MaxWorkers)
	}

	bandHeight := height / workers
	bands := make([]Region, workers)
	for i := range bands {
		bands[i] = Region{Left: 0, Top: i * bandHeight, Width: width, Height: bandHeight}
	}
	if !keepRowGap {
		last := &bands[workers-1]
		last.Height = height - last.Top
	}
	return bands, nil
}

// RecolorParallel recolors src into dst using opts.Workers concurrent bands
// and returns after every band has finished.
//
// Parameters:
//   - ctx: Checked before each band starts. A band that has not started when
//     ctx is done is recorded as failed; bands already running complete.
//   - src: Source pixels. Only read.
//   - dst: Destination with the same dimensions as src. Each band writes a
//     disjoint range of rows.
//   - opts: Band count, concurrency cap and remainder policy.
//
// Returns:
//   - nil when every band completed.
//   - An error wrapping ErrInvalidArgument for bad options or buffers. No band
//     is started in that case.
//   - A *PartialError naming every failed band otherwise. It is returned only
//     after all bands have joined, so dst is safe to read either way.
//
// # Failures
//
// A panic inside a band is recovered and reported as a *BandError for that
// band. It never aborts the other bands.
func RecolorParallel(ctx context.Context, src, dst *Buffer, opts Options) error {
	if src == nil || dst == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidArgument)
	}
	if !src.SameSize(dst) {
		return fmt.Errorf("%w: destination %dx%d does not match source %dx%d",
			ErrInvalidArgument, dst.Width, dst.Height, src.Width, src.Height)
	}

	bands, err := Bands(src.Width, src.Height, opts.Workers, opts.KeepRowGap)
	if err != nil {
		return err
	}

	limit := opts.MaxConcurrent
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	// One slot per band; each task writes only its own slot.
	failures := make([]*BandError, len(bands))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, band := range bands {
		g.Go(func() error {
			failures[i] = runBand(ctx, i, band, src, dst)
			return nil
		})
	}
	_ = g.Wait()

	var failed []*BandError
	for _, f := range failures {
		if f != nil {
			failed = append(failed, f)
		}
	}
	if len(failed) > 0 {
		return &PartialError{Failed: failed, Total: len(bands)}
	}
	return nil
}

// runBand executes a single band and converts a panic or a done context into
// a *BandError.
func runBand(ctx context.Context, index int, band Region, src, dst *Buffer) (bandErr *BandError) {
	if err := ctx.Err(); err != nil {
		return &BandError{Index: index, Region: band, Err: err}
	}

	defer func() {
		if r := recover(); r != nil {
			bandErr = &BandError{Index: index, Region: band, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	recolorBand(src, dst, band)
	return nil
}

// RecolorBuffer allocates a destination buffer the size of src and fills it with
// RecolorParallel.
//
// On a *PartialError the partially written destination is returned along
// with the error.
func RecolorBuffer(ctx context.Context, src *Buffer, opts Options) (*Buffer, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil buffer", ErrInvalidArgument)
	}
	dst := NewBuffer(src.Width, src.Height)
	if err := RecolorParallel(ctx, src, dst, opts); err != nil {
		if _, ok := err.(*PartialError); ok {
			return dst, err
		}
		return nil, err
	}
	return dst, nil
}
