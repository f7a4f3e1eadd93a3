package convolve

import (
	"bytes"
	"fmt"
)

// RawImage is a dense 8-bit raster: Height rows of Width pixels, each pixel
// Channels interleaved samples, rows stored back to back with no padding.
//
// A RawImage is treated as immutable once produced. Engine.Apply and
// PadReflect never modify their input; they return new images.
type RawImage struct {
	height   int
	width    int
	channels int
	pix      []byte
}

// NewRawImage allocates a zeroed image.
func NewRawImage(height, width, channels int) (*RawImage, error) {
	if err := checkImageDims(height, width, channels); err != nil {
		return nil, err
	}
	return &RawImage{
		height:   height,
		width:    width,
		channels: channels,
		pix:      make([]byte, height*width*channels),
	}, nil
}

// RawImageFromPixels builds an image from a copy of pix, which must hold
// exactly height*width*channels samples in row-major, channel-interleaved
// order.
func RawImageFromPixels(height, width, channels int, pix []byte) (*RawImage, error) {
	if err := checkImageDims(height, width, channels); err != nil {
		return nil, err
	}
	if want := height * width * channels; len(pix) != want {
		return nil, fmt.Errorf("%w: pixel buffer has %d samples, %dx%dx%d needs %d",
			ErrInvalidArgument, len(pix), height, width, channels, want)
	}

	img := &RawImage{
		height:   height,
		width:    width,
		channels: channels,
		pix:      make([]byte, len(pix)),
	}
	copy(img.pix, pix)
	return img, nil
}

func checkImageDims(height, width, channels int) error {
	if height <= 0 || width <= 0 || channels <= 0 {
		return fmt.Errorf("%w: image dimensions %dx%dx%d must be positive",
			ErrInvalidArgument, height, width, channels)
	}
	return nil
}

// Height returns the number of rows.
func (img *RawImage) Height() int { return img.height }

// Width returns the number of pixels per row.
func (img *RawImage) Width() int { return img.width }

// Channels returns the number of samples per pixel.
func (img *RawImage) Channels() int { return img.channels }

// Len returns the number of samples, height*width*channels.
func (img *RawImage) Len() int { return len(img.pix) }

// Pix returns the underlying samples. The slice is shared, not copied;
// callers must not modify it.
func (img *RawImage) Pix() []byte { return img.pix }

// At returns the sample at (row, col) in channel ch.
// It panics if the coordinates are out of range, like a slice index.
func (img *RawImage) At(row, col, ch int) uint8 {
	return img.pix[(row*img.width+col)*img.channels+ch]
}

// Clone returns a deep copy.
func (img *RawImage) Clone() *RawImage {
	pix := make([]byte, len(img.pix))
	copy(pix, img.pix)
	return &RawImage{height: img.height, width: img.width, channels: img.channels, pix: pix}
}

// Equal reports whether both images have the same shape and samples.
func (img *RawImage) Equal(other *RawImage) bool {
	if img == nil || other == nil {
		return img == other
	}
	return img.height == other.height &&
		img.width == other.width &&
		img.channels == other.channels &&
		bytes.Equal(img.pix, other.pix)
}

// String returns a short description such as "RawImage(480x640x3)".
func (img *RawImage) String() string {
	return fmt.Sprintf("RawImage(%dx%dx%d)", img.height, img.width, img.channels)
}

// validate checks the buffer invariant. Images built by this package always
// pass; the check guards zero values and hand-built structs.
func (img *RawImage) validate() error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidArgument)
	}
	if err := checkImageDims(img.height, img.width, img.channels); err != nil {
		return err
	}
	if len(img.pix) != img.height*img.width*img.channels {
		return fmt.Errorf("%w: image buffer length %d does not match %dx%dx%d",
			ErrInvalidArgument, len(img.pix), img.height, img.width, img.channels)
	}
	return nil
}
