package imaging

import (
	"fmt"
	"image"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL space.
//
// Gray pixels have zero saturation; the purple shift moves them to a hue
// around 300 degrees.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult describes a single pixel color.
type ColorResult struct {
	Hex   string   `json:"hex"`   // "#RRGGBB", alpha excluded
	RGB   RGBColor `json:"rgb"`   // Non-premultiplied components
	Alpha uint8    `json:"alpha"` // 0 = transparent, 255 = opaque
	HSL   HSLColor `json:"hsl"`
}

// NewColorResult builds a ColorResult from 8-bit non-premultiplied channels.
func NewColorResult(r, g, b, a uint8) ColorResult {
	return ColorResult{
		Hex:   fmt.Sprintf("#%02X%02X%02X", r, g, b),
		RGB:   RGBColor{R: r, G: g, B: b},
		Alpha: a,
		HSL:   toHSL(r, g, b),
	}
}

// SampleColor returns the color of the pixel at (x, y).
//
// Coordinates are relative to the image bounds, so (0,0) is always the
// top-left pixel. Colors are reported non-premultiplied.
//
// Returns an error if the coordinates fall outside the image.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < 0 || y < 0 || x >= bounds.Dx() || y >= bounds.Dy() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, bounds.Dx(), bounds.Dy())
	}

	r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
	if a == 0 {
		res := NewColorResult(0, 0, 0, 0)
		return &res, nil
	}
	// Un-premultiply before narrowing to 8 bits.
	r, g, b = r*0xFFFF/a, g*0xFFFF/a, b*0xFFFF/a
	res := NewColorResult(uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8))
	return &res, nil
}

func toHSL(r, g, b uint8) HSLColor {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, l := c.Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return HSLColor{
		H: int(math.Round(h)) % 360,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}
