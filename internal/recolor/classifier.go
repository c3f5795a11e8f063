package recolor

// Tuning constants for the purple shift.
const (
	// GrayThreshold is the exclusive upper bound on the pairwise channel
	// difference of a pixel treated as a shade of gray.
	GrayThreshold = 30

	// RedBoost is added to the red channel of gray pixels.
	RedBoost = 10

	// GreenCut is subtracted from the green channel of gray pixels.
	GreenCut = 80

	// BlueCut is subtracted from the blue channel of gray pixels.
	BlueCut = 20
)

// IsShadeOfGray reports whether no channel of the color is noticeably
// stronger than the others.
//
// Returns true iff |r-g|, |r-b| and |g-b| are all below GrayThreshold.
func IsShadeOfGray(r, g, b uint8) bool {
	return absDiff(r, g) < GrayThreshold &&
		absDiff(r, b) < GrayThreshold &&
		absDiff(g, b) < GrayThreshold
}

// Recolor returns the purple-shifted channels of a gray pixel, or the input
// unchanged when the pixel is not a shade of gray.
//
// Channel arithmetic saturates at 0 and 255.
func Recolor(r, g, b uint8) (uint8, uint8, uint8) {
	if !IsShadeOfGray(r, g, b) {
		return r, g, b
	}
	return clamp8(int(r) + RedBoost), clamp8(int(g) - GreenCut), clamp8(int(b) - BlueCut)
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func clamp8(v int) uint8 {
	return uint8(max(0, min(255, v)))
}
