package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// solidImage creates an in-memory image filled with a single color.
func solidImage(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// writeTestImage saves a solid image into the test's temp dir and returns
// its path.
func writeTestImage(t *testing.T, name string, width, height int, c color.Color) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := Save(solidImage(width, height, c), path, 0); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache()
	if cache == nil {
		t.Fatal("NewImageCache returned nil")
	}
	if cache.Len() != 0 {
		t.Fatalf("new cache has %d entries", cache.Len())
	}
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	imgPath := writeTestImage(t, "gray.png", 100, 80, color.NRGBA{128, 128, 128, 255})

	img1, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b := img1.Bounds(); b.Dx() != 100 || b.Dy() != 80 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x80", b.Dx(), b.Dy())
	}

	img2, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if img1 != img2 {
		t.Error("second Load did not return cached image")
	}
}

func TestImageCache_Load_Formats(t *testing.T) {
	for _, name := range []string{"a.png", "a.jpg", "a.jpeg", "a.gif", "a.bmp", "a.tif", "a.tiff", "a.webp"} {
		t.Run(name, func(t *testing.T) {
			path := writeTestImage(t, name, 12, 7, color.NRGBA{200, 40, 40, 255})
			img, err := NewImageCache().Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 7 {
				t.Errorf("dimensions: got %dx%d, want 12x7", b.Dx(), b.Dy())
			}
		})
	}
}

func TestImageCache_Load_NonExistent(t *testing.T) {
	cache := NewImageCache()
	if _, err := cache.Load("/nonexistent/path/to/image.png"); err == nil {
		t.Error("Load should fail for non-existent file")
	}
}

func TestImageCache_Load_InvalidImage(t *testing.T) {
	cache := NewImageCache()
	path := filepath.Join(t.TempDir(), "invalid.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := cache.Load(path); err == nil {
		t.Error("Load should fail for invalid image data")
	}
	if cache.Len() != 0 {
		t.Error("failed load should not be cached")
	}
}

func TestDecode_UnknownExtension(t *testing.T) {
	// Each file is written with a known extension, then renamed so only
	// the content identifies the format.
	for _, ext := range []string{".png", ".jpg", ".gif", ".bmp", ".tiff"} {
		t.Run(ext, func(t *testing.T) {
			written := writeTestImage(t, "image"+ext, 3, 2, color.White)
			path := written + ".data"
			if err := os.Rename(written, path); err != nil {
				t.Fatalf("rename failed: %v", err)
			}

			img, err := NewImageCache().Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
				t.Errorf("size: got %dx%d, want 3x2", b.Dx(), b.Dy())
			}
			if r, g, b, _ := img.At(1, 1).RGBA(); r>>8 < 250 || g>>8 < 250 || b>>8 < 250 {
				t.Errorf("pixel: got (%d,%d,%d), want white", r>>8, g>>8, b>>8)
			}
		})
	}
}

func TestDecode_UnknownExtension_PNGNotTakenByTGA(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.data")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := png.Encode(f, solidImage(3, 3, color.NRGBA{10, 200, 30, 255})); err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	f.Close()

	img, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got, want := color.NRGBAModel.Convert(img.At(2, 2)), (color.NRGBA{10, 200, 30, 255}); got != want {
		t.Errorf("pixel: got %v, want %v", got, want)
	}
}

func TestDecode_UnknownExtension_Garbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.data")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := Decode(path); err == nil {
		t.Error("Decode should fail for unrecognized data")
	}
	if _, err := Decode(filepath.Join(t.TempDir(), "missing.data")); err == nil {
		t.Error("Decode should fail for a missing file")
	}
}

func TestImageCache_ClearAndEvict(t *testing.T) {
	cache := NewImageCache()
	a := writeTestImage(t, "a.png", 5, 5, color.Black)
	b := writeTestImage(t, "b.png", 5, 5, color.White)

	for _, p := range []string{a, b} {
		if _, err := cache.Load(p); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
	}
	if cache.Len() != 2 {
		t.Fatalf("Len = %d, want 2", cache.Len())
	}

	cache.Evict(a)
	cache.Evict("/nonexistent/path")
	if cache.Len() != 1 {
		t.Errorf("after Evict: Len = %d, want 1", cache.Len())
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("after Clear: Len = %d, want 0", cache.Len())
	}
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache()
	imgPath := writeTestImage(t, "c.png", 50, 50, color.NRGBA{128, 128, 128, 255})

	var wg sync.WaitGroup
	errs := make(chan error, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(imgPath); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Load error: %v", err)
	}
}

func TestLoadImageInfo(t *testing.T) {
	cache := NewImageCache()
	imgPath := writeTestImage(t, "info.png", 200, 150, color.NRGBA{255, 128, 64, 255})

	info, err := LoadImageInfo(cache, imgPath)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if info.Width != 200 || info.Height != 150 {
		t.Errorf("dimensions: got %dx%d, want 200x150", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.ColorDepth != "8-bit" {
		t.Errorf("ColorDepth: got %s, want 8-bit", info.ColorDepth)
	}
	if info.FileSizeBytes <= 0 {
		t.Error("FileSizeBytes should be positive")
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path   string
		format string
	}{
		{"a.png", "png"},
		{"a.PNG", "png"},
		{"a.jpg", "jpeg"},
		{"a.jpeg", "jpeg"},
		{"a.gif", "gif"},
		{"a.bmp", "bmp"},
		{"a.tif", "tiff"},
		{"a.webp", "webp"},
		{"a.tga", "tga"},
		{"a.xyz", "unknown"},
		{"noext", "unknown"},
	}
	for _, tt := range tests {
		if got := FormatOf(tt.path); got != tt.format {
			t.Errorf("FormatOf(%q) = %s, want %s", tt.path, got, tt.format)
		}
	}
}

func TestLoadImageInfo_NonExistent(t *testing.T) {
	if _, err := LoadImageInfo(NewImageCache(), "/nonexistent/image.png"); err == nil {
		t.Error("LoadImageInfo should fail for non-existent file")
	}
}

func TestGetDimensions(t *testing.T) {
	cache := NewImageCache()
	imgPath := writeTestImage(t, "dims.png", 300, 200, color.NRGBA{100, 100, 100, 255})

	dims, err := GetDimensions(cache, imgPath)
	if err != nil {
		t.Fatalf("GetDimensions failed: %v", err)
	}
	if dims.Width != 300 || dims.Height != 200 {
		t.Errorf("dimensions: got %dx%d, want 300x200", dims.Width, dims.Height)
	}
}
