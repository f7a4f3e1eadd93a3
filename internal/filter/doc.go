// Package filter generates the numeric weight tables behind convolve kernels.
//
// Generators return dense row-major []float32 tables of size*size weights:
//   - Gaussian blur (normalized to sum to 1.0)
//   - Edge detection (Laplacian style, sums to 0)
//
// Parameter validation is the caller's job; the generators assume a positive
// odd size and, for Gaussian, a positive finite sigma.
package filter
