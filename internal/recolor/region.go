package recolor

import "fmt"

// Region is a rectangle in source buffer coordinates.
//
// A region may extend past the buffer edges; iteration is clamped to the
// buffer and out-of-range coordinates are skipped silently.
type Region struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.Left, r.Top, r.Width, r.Height)
}

// clip returns the half-open pixel ranges of r that fall inside a
// width x height grid.
func (r Region) clip(width, height int) (x0, y0, x1, y1 int) {
	x0, y0 = max(r.Left, 0), max(r.Top, 0)
	x1, y1 = min(r.Left+r.Width, width), min(r.Top+r.Height, height)
	return x0, y0, x1, y1
}

// RecolorRegion recolors the pixels of src inside r and writes them to the
// same coordinates in dst.
//
// Only coordinates inside both buffers are touched; nothing outside r is
// read or written.
func RecolorRegion(src, dst *Buffer, r Region) {
	x0, y0, x1, y1 := r.clip(min(src.Width, dst.Width), min(src.Height, dst.Height))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dst.SetPixel(x, y, PackChannels(Recolor(src.Channels(x, y))))
		}
	}
}

// RecolorSingle recolors the whole image as one region on the calling
// goroutine.
func RecolorSingle(src, dst *Buffer) {
	RecolorRegion(src, dst, Region{Width: src.Width, Height: src.Height})
}
