package recolor

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/parallel"
)

// OpaqueAlpha is the high byte forced onto every packed destination pixel.
const OpaqueAlpha uint32 = 0xFF000000

// Buffer is a fixed-size grid of packed 32-bit ARGB pixels.
//
// Pixels are stored row-major: the pixel at (x, y) is Pix[y*Width+x].
// Each value uses the layout alpha<<24 | red<<16 | green<<8 | blue.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint32
}

// NewBuffer allocates a zeroed buffer of the given dimensions.
// Negative dimensions are treated as zero.
func NewBuffer(width, height int) *Buffer {
	width, height = max(width, 0), max(height, 0)
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint32, width*height),
	}
}

// At returns the packed value stored at (x, y).
func (b *Buffer) At(x, y int) uint32 {
	return b.Pix[y*b.Width+x]
}

// Channels unpacks the red, green and blue channels of the pixel at (x, y).
func (b *Buffer) Channels(x, y int) (r, g, bl uint8) {
	return UnpackChannels(b.At(x, y))
}

// SetPixel stores a packed value at (x, y).
//
// Concurrent calls are safe as long as no two goroutines write the same
// coordinate. No locking is performed.
func (b *Buffer) SetPixel(x, y int, rgb uint32) {
	b.Pix[y*b.Width+x] = rgb
}

// SameSize reports whether both buffers have identical dimensions.
func (b *Buffer) SameSize(o *Buffer) bool {
	return b.Width == o.Width && b.Height == o.Height
}

// UnpackChannels splits a packed value into its red (bits 16-23), green
// (bits 8-15) and blue (bits 0-7) channels. The alpha byte is ignored.
func UnpackChannels(v uint32) (r, g, b uint8) {
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}

// PackChannels combines three channels into a fully opaque packed value.
func PackChannels(r, g, b uint8) uint32 {
	return OpaqueAlpha | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// FromImage copies an image into a new Buffer with its origin moved to (0,0).
//
// Colors are stored non-premultiplied, with the source alpha kept in the high
// byte. Rows are converted in parallel.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	buf := NewBuffer(bounds.Dx(), bounds.Dy())

	if src, ok := img.(*image.NRGBA); ok {
		parallel.Line(buf.Height, func(start, end int) {
			for y := start; y < end; y++ {
				row := src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
				for x := 0; x < buf.Width; x++ {
					p := row[x*4 : x*4+4]
					buf.Pix[y*buf.Width+x] = uint32(p[3])<<24 | uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])
				}
			}
		})
		return buf
	}

	parallel.Line(buf.Height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < buf.Width; x++ {
				c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
				buf.Pix[y*buf.Width+x] = uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
			}
		}
	})
	return buf
}

// Image returns the buffer as an *image.NRGBA for encoding.
//
// Alpha is taken from the high byte, so untouched zero pixels come out as
// transparent black.
func (b *Buffer) Image() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	parallel.Line(b.Height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < b.Width; x++ {
				v := b.Pix[y*b.Width+x]
				i := out.PixOffset(x, y)
				out.Pix[i+0] = uint8(v >> 16)
				out.Pix[i+1] = uint8(v >> 8)
				out.Pix[i+2] = uint8(v)
				out.Pix[i+3] = uint8(v >> 24)
			}
		}
	})
	return out
}
