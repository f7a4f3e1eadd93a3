// Package parallel provides the worker pool and work partitioning used by
// the convolution engine.
//
// The output image is treated as a stack of channel planes. Each plane is
// cut into horizontal bands of rows; one (channel, band) pair is a Chunk.
// Chunks never overlap and together cover every (channel, row, column)
// sample exactly once, so workers write their output slots without locks.
package parallel

// chunksPerWorker is how many chunks SplitPlanes aims to hand each worker
// when the band height is chosen automatically.
const chunksPerWorker = 4

// Chunk is one unit of convolution work: rows [RowStart, RowEnd) of one
// channel plane, all columns included.
type Chunk struct {
	// Channel is the interleaved channel index the chunk computes.
	Channel int

	// RowStart is the first output row (inclusive).
	RowStart int

	// RowEnd is one past the last output row.
	RowEnd int
}

// Rows returns the number of rows covered by the chunk.
func (c Chunk) Rows() int {
	return c.RowEnd - c.RowStart
}

// RowsPerChunk picks a band height giving each of the given workers about
// chunksPerWorker chunks across all channel planes. The result is at least 1.
func RowsPerChunk(height, channels, workers int) int {
	if height <= 0 || channels <= 0 {
		return 1
	}
	if workers <= 0 {
		workers = 1
	}

	target := workers * chunksPerWorker
	bandsPerPlane := max((target+channels-1)/channels, 1)

	return max((height+bandsPerPlane-1)/bandsPerPlane, 1)
}

// SplitPlanes partitions a channels x height plane stack into chunks of at
// most rowsPerChunk rows, channel-major. rowsPerChunk <= 0 means one chunk
// per plane.
func SplitPlanes(channels, height, rowsPerChunk int) []Chunk {
	if channels <= 0 || height <= 0 {
		return nil
	}
	if rowsPerChunk <= 0 || rowsPerChunk > height {
		rowsPerChunk = height
	}

	bands := (height + rowsPerChunk - 1) / rowsPerChunk
	chunks := make([]Chunk, 0, channels*bands)

	for c := range channels {
		for start := 0; start < height; start += rowsPerChunk {
			chunks = append(chunks, Chunk{
				Channel:  c,
				RowStart: start,
				RowEnd:   min(start+rowsPerChunk, height),
			})
		}
	}

	return chunks
}
