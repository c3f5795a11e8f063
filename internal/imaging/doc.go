// Package imaging loads and saves the images handed to the recoloring core.
//
// It is the decode/encode collaborator around internal/recolor: it turns files
// into image.Image values, caches them for repeated operations, writes results
// back to disk, and samples individual pixels for inspection.
//
// # Formats
//
// Decoding is selected by file extension:
//   - .png, .jpg/.jpeg, .gif (standard library)
//   - .bmp, .tif/.tiff, .webp (golang.org/x/image)
//   - .tga (github.com/ftrvxmtrx/tga)
//
// Encoding supports .png, .jpg/.jpeg, .gif, .tif/.tiff and .bmp through
// github.com/disintegration/imaging, and lossless .webp through
// github.com/HugoSmits86/nativewebp. TGA is read-only.
//
// # Coordinate System
//
// Pixel coordinates are 0-based relative to the image bounds: (0,0) is the
// top-left pixel, X increases rightward and Y increases downward.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Cached images must not be mutated.
package imaging
