// Package convolve applies 2D convolution kernels to 8-bit raster images.
//
// # Quick Start
//
//	import "github.com/gogpu/convolve"
//
//	img, err := convolve.Load("input.png")
//	if err != nil {
//	    return err
//	}
//
//	k, err := convolve.Gaussian(5, 1.0)
//	if err != nil {
//	    return err
//	}
//
//	out, err := convolve.Apply(img, k)
//	if err != nil {
//	    return err
//	}
//
//	return convolve.Save("output.png", out)
//
// # Images
//
// RawImage is a dense buffer of interleaved 8-bit samples, row-major with no
// row padding. Load produces 3-channel RGB images; LoadWithChannels can also
// produce gray or RGBA. The engine works on any positive channel count.
//
// # Kernels
//
// Kernel is an immutable row-major float32 matrix whose center tap is at
// (Height/2, Width/2). Kernels come from fixed literals (Sharpen, Emboss,
// Identity), from FromLiteral or NewKernel, or from the generators Gaussian
// and EdgeDetection. KernelSpec selects one by KernelKind for callers that
// take the choice from user input.
//
// # Convolution
//
// Engine.Apply computes every output sample as the weighted sum of the
// in-bounds source samples under the kernel. Taps that fall outside the
// image are skipped, so border pixels are under-weighted rather than padded.
// Sums are truncated toward zero and wrapped to 8 bits without clamping
// unless the engine was built with WithSampleMode(SampleClamp).
//
// Work is split into (channel, row band) chunks and run on a fixed-size
// worker pool; results do not depend on the number of workers.
//
// # Padding
//
// PadReflect is a separate boundary policy that grows an image with a
// mirrored border. Apply never pads.
package convolve
