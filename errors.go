package convolve

import "errors"

// Error kinds. Every error returned by this package wraps exactly one of
// them; test with errors.Is.
var (
	// ErrInvalidArgument is returned for malformed kernels or images: a
	// literal of the wrong length, a non-positive sigma, an even size where
	// an odd one is required, non-positive dimensions, or a pixel buffer
	// whose length does not match its dimensions.
	ErrInvalidArgument = errors.New("convolve: invalid argument")

	// ErrIO is returned when an image cannot be read, decoded, encoded or
	// written.
	ErrIO = errors.New("convolve: I/O error")
)
