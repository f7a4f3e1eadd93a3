package convolve

import (
	"math"
	"sync"
	"time"

	"github.com/gogpu/convolve/internal/parallel"
)

// SampleMode selects how an accumulated float32 sum becomes an output byte.
type SampleMode uint8

const (
	// SampleWrap truncates toward zero and keeps the low 8 bits, with no
	// clamping: 256 becomes 0 and -1 becomes 255. NaN and ±Inf become 0.
	// This is the default.
	SampleWrap SampleMode = iota

	// SampleClamp truncates toward zero and then clamps to [0, 255].
	SampleClamp
)

// String returns "wrap" or "clamp".
func (m SampleMode) String() string {
	switch m {
	case SampleWrap:
		return "wrap"
	case SampleClamp:
		return "clamp"
	default:
		return "unknown"
	}
}

// EngineOption configures an Engine during creation.
type EngineOption func(*engineOptions)

type engineOptions struct {
	workers      int
	rowsPerChunk int
	sampleMode   SampleMode
}

// WithWorkers sets the number of pool goroutines. n <= 0 uses GOMAXPROCS.
func WithWorkers(n int) EngineOption {
	return func(o *engineOptions) {
		o.workers = n
	}
}

// WithRowsPerChunk fixes the number of output rows per work item.
// n <= 0 lets the engine size chunks from the image and pool size.
func WithRowsPerChunk(n int) EngineOption {
	return func(o *engineOptions) {
		o.rowsPerChunk = n
	}
}

// WithSampleMode selects the float-to-byte conversion. The default is
// SampleWrap.
func WithSampleMode(m SampleMode) EngineOption {
	return func(o *engineOptions) {
		o.sampleMode = m
	}
}

// Engine applies kernels to images on a fixed-size worker pool.
//
// The output image is split into (channel, row band) chunks; every output
// sample belongs to exactly one chunk and is written by exactly one worker.
// Input image and kernel are only read, so one Engine may run several
// Apply calls concurrently.
type Engine struct {
	pool         *parallel.WorkerPool
	rowsPerChunk int
	narrow       func(float32) uint8
	sampleMode   SampleMode
}

// NewEngine starts an engine and its worker pool. Call Close to stop the
// workers.
func NewEngine(opts ...EngineOption) *Engine {
	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		pool:         parallel.NewWorkerPool(o.workers),
		rowsPerChunk: o.rowsPerChunk,
		narrow:       wrapSample,
		sampleMode:   o.sampleMode,
	}
	if o.sampleMode == SampleClamp {
		e.narrow = clampSample
	}

	Logger().Debug("convolve: engine started",
		"workers", e.pool.Workers(),
		"sample_mode", e.sampleMode.String())
	return e
}

// Workers returns the size of the worker pool.
func (e *Engine) Workers() int {
	return e.pool.Workers()
}

// SampleMode returns the engine's float-to-byte conversion.
func (e *Engine) SampleMode() SampleMode {
	return e.sampleMode
}

// Close stops the worker pool. Apply still works afterwards but runs on
// the calling goroutine. Close is safe to call multiple times.
func (e *Engine) Close() {
	if e.pool.IsRunning() {
		Logger().Debug("convolve: engine closed", "workers", e.pool.Workers())
	}
	e.pool.Close()
}

// Apply convolves img with k and returns a new image of the same shape.
//
// For output pixel (x, y) and channel c the engine sums
// img[x+j-cy][y+i-cx][c] * k[j][i] over every tap (j, i) whose source
// pixel lies inside the image; taps that fall outside are skipped, not
// padded. (cy, cx) is the kernel center. The sum is converted to a byte
// by the engine's SampleMode.
//
// Apply fails with ErrInvalidArgument if either argument is nil or
// malformed. img is never modified.
func (e *Engine) Apply(img *RawImage, k *Kernel) (*RawImage, error) {
	if err := img.validate(); err != nil {
		return nil, err
	}
	if err := k.validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	out := &RawImage{
		height:   img.height,
		width:    img.width,
		channels: img.channels,
		pix:      make([]byte, len(img.pix)),
	}

	rows := e.rowsPerChunk
	if rows <= 0 {
		rows = parallel.RowsPerChunk(img.height, img.channels, e.pool.Workers())
	}
	chunks := parallel.SplitPlanes(img.channels, img.height, rows)

	e.pool.ExecuteChunks(chunks, func(c parallel.Chunk) {
		convolveChunk(out.pix, img, k, c, e.narrow)
	})

	Logger().Debug("convolve: convolution pass",
		"image", img.String(),
		"kernel_height", k.height,
		"kernel_width", k.width,
		"chunks", len(chunks),
		"rows_per_chunk", chunks[0].Rows(),
		"workers", e.pool.Workers(),
		"elapsed", time.Since(start))

	return out, nil
}

// convolveChunk computes rows [c.RowStart, c.RowEnd) of channel c.Channel.
// It writes only the output samples of that chunk.
func convolveChunk(dst []byte, img *RawImage, k *Kernel, c parallel.Chunk, narrow func(float32) uint8) {
	height, width, channels := img.height, img.width, img.channels
	src := img.pix
	cy, cx := k.Center()

	for x := c.RowStart; x < c.RowEnd; x++ {
		for y := 0; y < width; y++ {
			var sum float32

			for j := 0; j < k.height; j++ {
				xk := x + j - cy
				if xk < 0 || xk >= height {
					continue
				}
				srcRow := xk * width
				kRow := k.data[j*k.width : (j+1)*k.width]

				for i, weight := range kRow {
					yk := y + i - cx
					if yk < 0 || yk >= width {
						continue
					}
					// Explicit conversion rounds the product on its own (no FMA).
					sum += float32(float32(src[(srcRow+yk)*channels+c.Channel]) * weight)
				}
			}

			dst[(x*width+y)*channels+c.Channel] = narrow(sum)
		}
	}
}

// wrapSample truncates toward zero and wraps modulo 256.
// Mod first keeps the integer conversion in range for any finite sum.
func wrapSample(sum float32) uint8 {
	f := float64(sum)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return uint8(int64(math.Mod(f, 256)))
}

// clampSample truncates toward zero and saturates to [0, 255].
func clampSample(sum float32) uint8 {
	switch {
	case !(sum > 0):
		return 0
	case sum >= 255:
		return 255
	default:
		return uint8(sum)
	}
}

var defaultEngine = sync.OnceValue(func() *Engine { return NewEngine() })

// Apply convolves img with k on a shared, lazily started default engine
// using GOMAXPROCS workers and SampleWrap. See Engine.Apply.
func Apply(img *RawImage, k *Kernel) (*RawImage, error) {
	return defaultEngine().Apply(img, k)
}
