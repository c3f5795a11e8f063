package recolor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument reports misuse by the caller, such as a worker
	// count below 1 or buffers of different sizes.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTaskFailure reports that at least one band did not complete.
	ErrTaskFailure = errors.New("band task failed")
)

// BandError describes a band that terminated abnormally.
type BandError struct {
	// Index is the 0-based band number.
	Index int

	// Region is the rectangle the band was assigned.
	Region Region

	// Err is the underlying cause: a recovered panic or a context error.
	Err error
}

func (e *BandError) Error() string {
	return fmt.Sprintf("band %d rows [%d,%d): %v", e.Index, e.Region.Top, e.Region.Top+e.Region.Height, e.Err)
}

func (e *BandError) Unwrap() error { return e.Err }

// Is makes every BandError match ErrTaskFailure.
func (e *BandError) Is(target error) bool { return target == ErrTaskFailure }

// PartialError is returned once all bands have joined and one or more of
// them failed. Bands not listed were written completely.
type PartialError struct {
	// Failed lists the failed bands in ascending index order.
	Failed []*BandError

	// Total is the number of bands that were dispatched.
	Total int
}

func (e *PartialError) Error() string {
	parts := make([]string, len(e.Failed))
	for i, f := range e.Failed {
		parts[i] = f.Error()
	}
	return fmt.Sprintf("recolor: %d of %d bands failed: %s", len(e.Failed), e.Total, strings.Join(parts, "; "))
}

// Unwrap exposes each failed band to errors.Is and errors.As.
func (e *PartialError) Unwrap() []error {
	errs := make([]error, len(e.Failed))
	for i, f := range e.Failed {
		errs[i] = f
	}
	return errs
}

// FailedBands returns the indexes of the failed bands.
func (e *PartialError) FailedBands() []int {
	idx := make([]int, len(e.Failed))
	for i, f := range e.Failed {
		idx[i] = f.Index
	}
	return idx
}
