package convolve

import "fmt"

// Two boundary policies exist in this package and are deliberately kept apart:
//
//   - Engine.Apply uses the skip policy: kernel taps that land outside the
//     image are left out of the sum, so border pixels see fewer taps.
//   - PadReflect materializes a reflected border around an image. Apply never
//     uses it; callers who want reflected borders pad first and crop after.

// PadReflect returns a new image with padRows extra rows above and below
// and padCols extra columns left and right. Border samples mirror the
// image with the edge sample repeated (fedcba|abcdef|fedcba); padding wider
// than the image keeps reflecting back and forth.
func PadReflect(img *RawImage, padRows, padCols int) (*RawImage, error) {
	if err := img.validate(); err != nil {
		return nil, err
	}
	if padRows < 0 || padCols < 0 {
		return nil, fmt.Errorf("%w: padding %d rows, %d columns must not be negative",
			ErrInvalidArgument, padRows, padCols)
	}

	out, err := NewRawImage(img.height+2*padRows, img.width+2*padCols, img.channels)
	if err != nil {
		return nil, err
	}

	ch := img.channels
	for r := 0; r < out.height; r++ {
		srcRow := reflectIndex(r-padRows, img.height)
		for c := 0; c < out.width; c++ {
			srcCol := reflectIndex(c-padCols, img.width)
			srcOff := (srcRow*img.width + srcCol) * ch
			dstOff := (r*out.width + c) * ch
			copy(out.pix[dstOff:dstOff+ch], img.pix[srcOff:srcOff+ch])
		}
	}

	return out, nil
}

// reflectIndex maps i onto [0, size) by reflecting at the edges with the
// edge element repeated. The pattern is periodic with period 2*size.
func reflectIndex(i, size int) int {
	if size == 1 {
		return 0
	}
	period := 2 * size
	i %= period
	if i < 0 {
		i += period
	}
	if i >= size {
		i = period - 1 - i
	}
	return i
}
