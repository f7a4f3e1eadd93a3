package image

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatGray8 is 8-bit grayscale (1 byte per pixel).
	FormatGray8 Format = iota

	// FormatRGB8 is 24-bit RGB (3 bytes per pixel, no alpha).
	// Color files load into this format by default.
	FormatRGB8

	// FormatRGBA8 is 32-bit non-premultiplied RGBA (4 bytes per pixel).
	FormatRGBA8

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// Channels is the number of interleaved 8-bit samples per pixel.
	Channels int

	// HasAlpha indicates if the last channel is alpha.
	HasAlpha bool

	// Name is the display name.
	Name string
}

// formatInfoTable contains metadata for each format.
var formatInfoTable = [formatCount]FormatInfo{
	FormatGray8: {Channels: 1, HasAlpha: false, Name: "Gray8"},
	FormatRGB8:  {Channels: 3, HasAlpha: false, Name: "RGB8"},
	FormatRGBA8: {Channels: 4, HasAlpha: true, Name: "RGBA8"},
}

// FormatForChannels returns the format storing the given number of
// interleaved channels. ok is false for counts other than 1, 3 and 4.
func FormatForChannels(channels int) (f Format, ok bool) {
	switch channels {
	case 1:
		return FormatGray8, true
	case 3:
		return FormatRGB8, true
	case 4:
		return FormatRGBA8, true
	default:
		return 0, false
	}
}

// Info returns the metadata for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// Channels returns the number of samples per pixel.
// With 8-bit samples this is also the number of bytes per pixel.
func (f Format) Channels() int {
	return f.Info().Channels
}

// HasAlpha returns true if the format has an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// String returns a human-readable name for the format.
func (f Format) String() string {
	if !f.IsValid() {
		return "Unknown"
	}
	return f.Info().Name
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes returns the number of bytes per row for the given width.
func (f Format) RowBytes(width int) int {
	return width * f.Channels()
}

// ImageBytes returns the total bytes for an image with the given dimensions.
func (f Format) ImageBytes(width, height int) int {
	return f.RowBytes(width) * height
}
