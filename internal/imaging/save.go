package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality is used when Save is given a quality outside 1-100.
const DefaultJPEGQuality = 95

// Save encodes img to path using the format implied by the file extension.
//
// Supported extensions are .png, .jpg/.jpeg, .gif, .tif/.tiff, .bmp and .webp.
// Missing parent directories are created. jpegQuality only affects JPEG output.
//
// # Errors
//
//   - Returns error for an unsupported extension (nothing is written)
//   - Returns error if the directory or file cannot be created
//   - Returns error if encoding or closing the file fails
func Save(img image.Image, path string, jpegQuality int) (err error) {
	if jpegQuality < 1 || jpegQuality > 100 {
		jpegQuality = DefaultJPEGQuality
	}

	webp := strings.EqualFold(filepath.Ext(path), ".webp")
	var format imaging.Format
	if !webp {
		format, err = imaging.FormatFromFilename(path)
		if err != nil {
			return fmt.Errorf("cannot save %s: %w", path, err)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	if webp {
		if err := nativewebp.Encode(f, img, nil); err != nil {
			return fmt.Errorf("failed to encode webp: %w", err)
		}
		return nil
	}

	if err := imaging.Encode(f, img, format, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("failed to encode %s: %w", FormatOf(path), err)
	}
	return nil
}

// EncodePNGBase64 encodes img as PNG and returns it base64-encoded, for
// inline previews.
func EncodePNGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
