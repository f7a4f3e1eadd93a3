package convolve

import (
	"math/rand/v2"
	"testing"
)

// Test helper functions shared across convolve tests.

// mustImage builds an image from pix, or a deterministic pattern when pix is nil.
func mustImage(t testing.TB, height, width, channels int, pix []byte) *RawImage {
	t.Helper()
	if pix == nil {
		pix = make([]byte, height*width*channels)
		for i := range pix {
			pix[i] = byte(i*31 + 7)
		}
	}
	img, err := RawImageFromPixels(height, width, channels, pix)
	if err != nil {
		t.Fatalf("RawImageFromPixels(%d, %d, %d): %v", height, width, channels, err)
	}
	return img
}

// randomImage builds an image of seeded random samples.
func randomImage(t testing.TB, seed uint64, height, width, channels int) *RawImage {
	t.Helper()
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	pix := make([]byte, height*width*channels)
	for i := range pix {
		pix[i] = byte(r.UintN(256))
	}
	return mustImage(t, height, width, channels, pix)
}

// mustKernel builds a kernel or fails the test.
func mustKernel(t testing.TB, height, width int, weights []float32) *Kernel {
	t.Helper()
	k, err := NewKernel(height, width, weights)
	if err != nil {
		t.Fatalf("NewKernel(%d, %d): %v", height, width, err)
	}
	return k
}

// referenceConvolve is the single-threaded textbook form of the skip
// policy, used to cross-check the chunked engine.
func referenceConvolve(img *RawImage, k *Kernel, narrow func(float32) uint8) []byte {
	out := make([]byte, img.Len())
	cy, cx := k.Center()
	for c := 0; c < img.Channels(); c++ {
		for x := 0; x < img.Height(); x++ {
			for y := 0; y < img.Width(); y++ {
				var sum float32
				for j := 0; j < k.Height(); j++ {
					for i := 0; i < k.Width(); i++ {
						xk, yk := x+j-cy, y+i-cx
						if xk >= 0 && yk >= 0 && xk < img.Height() && yk < img.Width() {
							sum += float32(float32(img.At(xk, yk, c)) * k.At(j, i))
						}
					}
				}
				out[(x*img.Width()+y)*img.Channels()+c] = narrow(sum)
			}
		}
	}
	return out
}
