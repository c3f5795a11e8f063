// Package recolor shifts near-grayscale pixels of an image toward purple,
// splitting the work into horizontal bands that are processed in parallel.
//
// The package works on Buffer, a flat row-major grid of packed 32-bit ARGB
// values. A source buffer is read-only for the whole operation; a separately
// allocated destination buffer of identical dimensions receives the result.
//
// # Pixel Classification
//
// A pixel is a shade of gray when every pairwise difference between its red,
// green and blue channels is strictly below GrayThreshold (30). Gray pixels
// are moved toward purple by raising red and lowering green and blue:
//
//	red   = min(255, red+RedBoost)     // +10
//	green = max(0, green-GreenCut)     // -80
//	blue  = max(0, blue-BlueCut)       // -20
//
// All other pixels are copied unchanged. Every written pixel is fully opaque.
//
// # Band Partitioning
//
// RecolorParallel divides the image height by the worker count and assigns
// each worker a contiguous band of rows spanning the full width. Bands never
// overlap, so the destination is written without locks: every goroutine owns
// a disjoint index range of Buffer.Pix.
//
// When the height is not a multiple of the worker count, the trailing rows are
// given to the last band. Options.KeepRowGap restores the floor-division
// behavior where those rows are never processed and stay zero.
//
// # Error Handling
//
//   - ErrInvalidArgument: worker count below 1 or above MaxWorkers, nil or
//     mismatched buffers.
//   - ErrTaskFailure: a band did not complete. The dispatcher still joins every
//     band and then returns a *PartialError listing each failed *BandError.
//
// # Thread Safety
//
// The classifier and packing functions are pure. Buffer.SetPixel may be called
// concurrently for distinct coordinates. RecolorParallel is safe to call from
// multiple goroutines as long as the calls use different destination buffers.
package recolor
