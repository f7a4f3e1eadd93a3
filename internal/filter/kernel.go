package filter

import (
	"math"
	"sync"
)

// Gaussian2D generates a size*size Gaussian kernel for the given sigma.
// The kernel is normalized so all values sum to 1.0.
//
// Cell (i, j) gets exp(-(x²+y²)/(2σ²)) with x = i - size/2 and y = j - size/2,
// using the integer center of the kernel. When 2σ² underflows to zero the
// result is the limit kernel: 1 at the center, 0 elsewhere.
func Gaussian2D(size int, sigma float64) []float32 {
	kernel := make([]float32, size*size)
	half := KernelCenter(size)

	// G(x,y) = exp(-(x²+y²)/(2σ²)); the 1/(2πσ²) factor cancels on normalization
	twoSigmaSq := 2 * sigma * sigma
	if twoSigmaSq == 0 {
		kernel[half*size+half] = 1
		return kernel
	}
	weights := make([]float64, size*size)
	sum := float64(0)

	for i := 0; i < size; i++ {
		x := float64(i - half)
		for j := 0; j < size; j++ {
			y := float64(j - half)
			val := math.Exp(-(x*x + y*y) / twoSigmaSq)
			weights[i*size+j] = val
			sum += val
		}
	}

	if !(sum > 0) || math.IsInf(sum, 1) {
		kernel[half*size+half] = 1
		return kernel
	}
	for i, w := range weights {
		kernel[i] = float32(w / sum)
	}

	return kernel
}

// EdgeDetection2D generates a size*size high-pass kernel: every cell is -1
// except the center, which is size*size-1, so the kernel sums to 0.
func EdgeDetection2D(size int) []float32 {
	kernel := make([]float32, size*size)
	for i := range kernel {
		kernel[i] = -1
	}

	center := KernelCenter(size)
	kernel[center*size+center] = float32(size*size - 1)

	return kernel
}

// gaussianKey identifies a Gaussian table by its exact parameters.
type gaussianKey struct {
	size  int
	sigma uint64 // math.Float64bits(sigma)
}

// kernelCache caches computed Gaussian kernels to avoid recomputation.
// Cached slices are shared and must be treated as read-only.
type kernelCache struct {
	mu     sync.RWMutex
	cache  map[gaussianKey][]float32
	maxLen int
}

var defaultKernelCache = newKernelCache(64)

// newKernelCache creates a kernel cache with the given maximum entries.
func newKernelCache(maxLen int) *kernelCache {
	return &kernelCache{
		cache:  make(map[gaussianKey][]float32),
		maxLen: maxLen,
	}
}

// get retrieves a kernel from cache or generates and caches it.
func (c *kernelCache) get(size int, sigma float64) []float32 {
	key := gaussianKey{size: size, sigma: math.Float64bits(sigma)}

	c.mu.RLock()
	if kernel, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return kernel
	}
	c.mu.RUnlock()

	kernel := Gaussian2D(size, sigma)

	c.mu.Lock()
	if len(c.cache) >= c.maxLen {
		// Evict half; map iteration order picks the victims.
		count := 0
		for k := range c.cache {
			delete(c.cache, k)
			count++
			if count >= c.maxLen/2 {
				break
			}
		}
	}
	c.cache[key] = kernel
	c.mu.Unlock()

	return kernel
}

// len reports the number of cached tables.
func (c *kernelCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// CachedGaussian2D returns a cached Gaussian kernel for (size, sigma).
// The returned slice is shared between callers and must not be modified.
func CachedGaussian2D(size int, sigma float64) []float32 {
	return defaultKernelCache.get(size, sigma)
}

// KernelCenter returns the center index of a kernel dimension of the given size.
func KernelCenter(kernelSize int) int {
	return kernelSize / 2
}
