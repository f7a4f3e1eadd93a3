package convolve

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/convolve/internal/filter"
)

// Kernel is an immutable convolution matrix: Height rows of Width float32
// weights stored row-major in one flat slice.
//
// The center tap sits at (Height/2, Width/2) using integer division, so
// even dimensions are allowed and simply put the center below and to the
// right of the geometric middle.
//
// Kernels never change after construction and are safe to share between
// goroutines.
type Kernel struct {
	height int
	width  int
	data   []float32
}

// Fixed 3x3 kernels, built once.
var (
	sharpenKernel = mustLiteral([]float32{
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	}, 3)

	embossKernel = mustLiteral([]float32{
		-1, 0, 0,
		0, 0, 0,
		0, 0, 1,
	}, 3)

	identityKernel = mustLiteral([]float32{
		0, 0, 0,
		0, 1, 0,
		0, 0, 0,
	}, 3)
)

func mustLiteral(values []float32, size int) *Kernel {
	k, err := FromLiteral(values, size)
	if err != nil {
		panic(err)
	}
	return k
}

// Sharpen returns the 3x3 sharpen kernel {0,-1,0, -1,5,-1, 0,-1,0}.
func Sharpen() *Kernel { return sharpenKernel }

// Emboss returns the 3x3 emboss kernel {-1,0,0, 0,0,0, 0,0,1}.
func Emboss() *Kernel { return embossKernel }

// Identity returns the 3x3 identity kernel, which reproduces its input.
func Identity() *Kernel { return identityKernel }

// NewKernel builds a height x width kernel from a copy of weights, given
// row-major. Any positive dimensions are accepted, odd or even.
func NewKernel(height, width int, weights []float32) (*Kernel, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: kernel dimensions %dx%d must be positive",
			ErrInvalidArgument, height, width)
	}
	if len(weights) != height*width {
		return nil, fmt.Errorf("%w: %d weights for a %dx%d kernel",
			ErrInvalidArgument, len(weights), height, width)
	}

	data := make([]float32, len(weights))
	copy(data, weights)
	return &Kernel{height: height, width: width, data: data}, nil
}

// FromLiteral reshapes size*size values into a square kernel, row-major.
func FromLiteral(values []float32, size int) (*Kernel, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: kernel size %d must be positive", ErrInvalidArgument, size)
	}
	if len(values) != size*size {
		return nil, fmt.Errorf("%w: literal has %d values, size %d needs %d",
			ErrInvalidArgument, len(values), size, size*size)
	}
	return NewKernel(size, size, values)
}

// Gaussian returns a size x size Gaussian blur kernel normalized to sum to 1.
// size must be odd and positive; sigma must be positive and finite.
func Gaussian(size int, sigma float64) (*Kernel, error) {
	if err := checkOddSize(size); err != nil {
		return nil, err
	}
	if !(sigma > 0) || math.IsInf(sigma, 1) {
		return nil, fmt.Errorf("%w: gaussian sigma %v must be positive", ErrInvalidArgument, sigma)
	}

	// The cached table is shared; Kernel never writes to its data.
	return &Kernel{height: size, width: size, data: filter.CachedGaussian2D(size, sigma)}, nil
}

// EdgeDetection returns a size x size high-pass kernel: -1 everywhere and
// size*size-1 at the center, so the weights sum to 0. size must be odd.
func EdgeDetection(size int) (*Kernel, error) {
	if err := checkOddSize(size); err != nil {
		return nil, err
	}
	return &Kernel{height: size, width: size, data: filter.EdgeDetection2D(size)}, nil
}

func checkOddSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: kernel size %d must be positive", ErrInvalidArgument, size)
	}
	if size%2 == 0 {
		return fmt.Errorf("%w: kernel size %d must be odd", ErrInvalidArgument, size)
	}
	return nil
}

// Height returns the number of kernel rows.
func (k *Kernel) Height() int { return k.height }

// Width returns the number of kernel columns.
func (k *Kernel) Width() int { return k.width }

// Center returns the center tap (row, col) = (Height/2, Width/2).
func (k *Kernel) Center() (row, col int) {
	return filter.KernelCenter(k.height), filter.KernelCenter(k.width)
}

// At returns the weight at (row, col).
func (k *Kernel) At(row, col int) float32 {
	return k.data[row*k.width+col]
}

// Weights returns a row-major copy of the weights.
func (k *Kernel) Weights() []float32 {
	out := make([]float32, len(k.data))
	copy(out, k.data)
	return out
}

// Sum returns the sum of all weights, accumulated in float64.
func (k *Kernel) Sum() float64 {
	var sum float64
	for _, w := range k.data {
		sum += float64(w)
	}
	return sum
}

// String formats the kernel one row per line.
func (k *Kernel) String() string {
	var sb strings.Builder
	for r := 0; r < k.height; r++ {
		for c := 0; c < k.width; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%f", k.At(r, c))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// validate rejects zero-value and hand-built kernels that break the
// buffer invariant.
func (k *Kernel) validate() error {
	if k == nil {
		return fmt.Errorf("%w: nil kernel", ErrInvalidArgument)
	}
	if k.height <= 0 || k.width <= 0 {
		return fmt.Errorf("%w: kernel dimensions %dx%d must be positive",
			ErrInvalidArgument, k.height, k.width)
	}
	if len(k.data) != k.height*k.width {
		return fmt.Errorf("%w: kernel buffer length %d does not match %dx%d",
			ErrInvalidArgument, len(k.data), k.height, k.width)
	}
	return nil
}
