package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestSampleColor(t *testing.T) {
	img := solidImage(100, 100, color.NRGBA{255, 128, 64, 255})

	result, err := SampleColor(img, 50, 50)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if result.Hex != "#FF8040" {
		t.Errorf("Hex: got %s, want #FF8040", result.Hex)
	}
	if result.RGB != (RGBColor{255, 128, 64}) {
		t.Errorf("RGB: got %+v, want {255 128 64}", result.RGB)
	}
	if result.Alpha != 255 {
		t.Errorf("Alpha: got %d, want 255", result.Alpha)
	}
}

func TestSampleColor_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		color   color.NRGBA
		wantHex string
		wantHSL HSLColor
	}{
		{"pure red", color.NRGBA{255, 0, 0, 255}, "#FF0000", HSLColor{0, 100, 50}},
		{"pure green", color.NRGBA{0, 255, 0, 255}, "#00FF00", HSLColor{120, 100, 50}},
		{"pure blue", color.NRGBA{0, 0, 255, 255}, "#0000FF", HSLColor{240, 100, 50}},
		{"white", color.NRGBA{255, 255, 255, 255}, "#FFFFFF", HSLColor{0, 0, 100}},
		{"black", color.NRGBA{0, 0, 0, 255}, "#000000", HSLColor{0, 0, 0}},
		{"magenta", color.NRGBA{255, 0, 255, 255}, "#FF00FF", HSLColor{300, 100, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SampleColor(solidImage(4, 4, tt.color), 1, 1)
			if err != nil {
				t.Fatalf("SampleColor failed: %v", err)
			}
			if result.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", result.Hex, tt.wantHex)
			}
			if result.HSL != tt.wantHSL {
				t.Errorf("HSL: got %+v, want %+v", result.HSL, tt.wantHSL)
			}
		})
	}
}

func TestSampleColor_NonPremultiplied(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{200, 100, 50, 128})

	result, err := SampleColor(img, 0, 0)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if result.Alpha != 128 {
		t.Errorf("Alpha: got %d, want 128", result.Alpha)
	}
	// Round-tripping through premultiplied RGBA may lose one unit.
	if d := int(result.RGB.R) - 200; d < -1 || d > 1 {
		t.Errorf("R: got %d, want ~200", result.RGB.R)
	}

	transparent, err := SampleColor(img, 1, 0)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if transparent.Alpha != 0 || transparent.Hex != "#000000" {
		t.Errorf("transparent pixel: got %+v", transparent)
	}
}

func TestSampleColor_OffsetBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 10, 20, 20))
	img.SetNRGBA(10, 10, color.NRGBA{1, 2, 3, 255})

	result, err := SampleColor(img, 0, 0)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if result.Hex != "#010203" {
		t.Errorf("Hex: got %s, want #010203", result.Hex)
	}
}

func TestSampleColor_OutOfBounds(t *testing.T) {
	img := solidImage(100, 100, color.NRGBA{255, 0, 0, 255})

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 50},
		{"negative y", 50, -1},
		{"x too large", 100, 50},
		{"y too large", 50, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SampleColor(img, tt.x, tt.y); err == nil {
				t.Error("SampleColor should fail for out-of-bounds coordinates")
			}
		})
	}
}
