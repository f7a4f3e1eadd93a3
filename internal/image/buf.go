// Package image decodes and encodes the raster files consumed and produced
// by convolve.
//
// Decoded pixels land in an ImageBuf: a dense, row-major buffer of
// interleaved 8-bit samples with no row padding, in one of the Gray8, RGB8
// or RGBA8 formats. Container formats are PNG, JPEG, BMP and TIFF for both
// directions, plus GIF and WebP for decoding.
package image

import "errors"

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("image: invalid format")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")
)

// ImageBuf is a dense pixel buffer: Height rows of Width pixels, each pixel
// Format.Channels() consecutive bytes.
//
// Thread safety: ImageBuf is safe for concurrent read access. Writes to the
// slice returned by Data require external synchronization.
type ImageBuf struct {
	data   []byte
	width  int
	height int
	format Format
}

// NewImageBuf creates a zeroed image buffer with the given dimensions and format.
// Returns an error if dimensions are invalid or format is unknown.
func NewImageBuf(width, height int, format Format) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	return &ImageBuf{
		data:   make([]byte, format.ImageBytes(width, height)),
		width:  width,
		height: height,
		format: format,
	}, nil
}

// FromRaw creates an ImageBuf over existing data without copying.
// The caller must ensure data remains valid for the lifetime of the ImageBuf.
// Data longer than required is truncated to the image size.
func FromRaw(data []byte, width, height int, format Format) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	required := format.ImageBytes(width, height)
	if len(data) < required {
		return nil, ErrDataTooSmall
	}

	return &ImageBuf{
		data:   data[:required],
		width:  width,
		height: height,
		format: format,
	}, nil
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int {
	return b.height
}

// Format returns the pixel format.
func (b *ImageBuf) Format() Format {
	return b.format
}

// Stride returns the number of bytes per row.
func (b *ImageBuf) Stride() int {
	return b.format.RowBytes(b.width)
}

// Data returns the underlying pixel data.
func (b *ImageBuf) Data() []byte {
	return b.data
}

// RowBytes returns the bytes for row y, or nil if y is out of range.
func (b *ImageBuf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	stride := b.Stride()
	start := y * stride
	return b.data[start : start+stride]
}
