package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the file format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// DefaultJPEGQuality is the quality used when saving JPEG files.
const DefaultJPEGQuality = 95

// Container identifies an image file format.
type Container uint8

const (
	// ContainerUnknown means the format could not be determined.
	ContainerUnknown Container = iota
	ContainerPNG
	ContainerJPEG
	ContainerGIF
	ContainerBMP
	ContainerTIFF
	ContainerWebP
)

var containerNames = map[Container]string{
	ContainerPNG:  "png",
	ContainerJPEG: "jpeg",
	ContainerGIF:  "gif",
	ContainerBMP:  "bmp",
	ContainerTIFF: "tiff",
	ContainerWebP: "webp",
}

// String returns the lowercase format name.
func (c Container) String() string {
	if name, ok := containerNames[c]; ok {
		return name
	}
	return "unknown"
}

// CanEncode reports whether files of this format can be written.
// GIF and WebP are read-only.
func (c Container) CanEncode() bool {
	switch c {
	case ContainerPNG, ContainerJPEG, ContainerBMP, ContainerTIFF:
		return true
	default:
		return false
	}
}

// ContainerFromPath determines the format from a file extension.
func ContainerFromPath(path string) Container {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return ContainerPNG
	case ".jpg", ".jpeg":
		return ContainerJPEG
	case ".gif":
		return ContainerGIF
	case ".bmp":
		return ContainerBMP
	case ".tif", ".tiff":
		return ContainerTIFF
	case ".webp":
		return ContainerWebP
	default:
		return ContainerUnknown
	}
}

// Load reads the image file at path into a buffer of the given format.
// The container is chosen from the extension; unknown extensions are
// detected from content.
func Load(path string, format Format) (*ImageBuf, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	container := ContainerFromPath(path)
	if container == ContainerUnknown {
		return Decode(f, format)
	}
	return DecodeContainer(f, container, format)
}

// LoadFromBytes decodes in-memory image data, auto-detecting the container.
func LoadFromBytes(data []byte, format Format) (*ImageBuf, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data), format)
}

// Decode decodes an image from r, auto-detecting the container from its
// magic bytes, and converts it to the given format.
func Decode(r io.Reader, format Format) (*ImageBuf, error) {
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}

	return FromStdImage(img, format)
}

// DecodeContainer decodes an image of a known container format.
func DecodeContainer(r io.Reader, container Container, format Format) (*ImageBuf, error) {
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	var (
		img image.Image
		err error
	)

	switch container {
	case ContainerPNG:
		img, err = png.Decode(r)
	case ContainerJPEG:
		img, err = jpeg.Decode(r)
	case ContainerGIF:
		img, err = gif.Decode(r)
	case ContainerBMP:
		img, err = bmp.Decode(r)
	case ContainerTIFF:
		img, err = tiff.Decode(r)
	case ContainerWebP:
		img, err = webp.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, container)
	}
	if err != nil {
		return nil, fmt.Errorf("image: decode %s: %w", container, err)
	}

	return FromStdImage(img, format)
}

// Save writes the buffer to path, choosing the container from the extension.
func (b *ImageBuf) Save(path string) error {
	container := ContainerFromPath(path)
	if !container.CanEncode() {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := b.Encode(f, container); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// Encode writes the buffer to w in the given container format.
func (b *ImageBuf) Encode(w io.Writer, container Container) error {
	img := b.ToStdImage()

	var err error
	switch container {
	case ContainerPNG:
		err = png.Encode(w, img)
	case ContainerJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: DefaultJPEGQuality})
	case ContainerBMP:
		err = bmp.Encode(w, img)
	case ContainerTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, container)
	}
	if err != nil {
		return fmt.Errorf("image: encode %s: %w", container, err)
	}
	return nil
}

// FromStdImage converts a standard library image into a buffer of the given
// format. Alpha is dropped for Gray8 and RGB8; gray conversion uses the
// standard library luma model.
func FromStdImage(img image.Image, format Format) (*ImageBuf, error) {
	bounds := img.Bounds()
	buf, err := NewImageBuf(bounds.Dx(), bounds.Dy(), format)
	if err != nil {
		return nil, err
	}

	if format == FormatGray8 {
		gray, ok := img.(*image.Gray)
		if !ok {
			gray = image.NewGray(image.Rect(0, 0, buf.width, buf.height))
			draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)
		}
		for y := range buf.height {
			start := gray.PixOffset(gray.Rect.Min.X, gray.Rect.Min.Y+y)
			copy(buf.RowBytes(y), gray.Pix[start:start+buf.width])
		}
		return buf, nil
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, buf.width, buf.height))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	if format == FormatRGBA8 {
		for y := range buf.height {
			start := nrgba.PixOffset(nrgba.Rect.Min.X, nrgba.Rect.Min.Y+y)
			copy(buf.RowBytes(y), nrgba.Pix[start:start+buf.width*4])
		}
		return buf, nil
	}

	for y := range buf.height {
		row := buf.RowBytes(y)
		src := nrgba.Pix[nrgba.PixOffset(nrgba.Rect.Min.X, nrgba.Rect.Min.Y+y):]
		for x := range buf.width {
			copy(row[x*3:x*3+3], src[x*4:x*4+3])
		}
	}
	return buf, nil
}

// ToStdImage converts the buffer to a standard library image.
// Gray8 becomes *image.Gray; RGB8 and RGBA8 become *image.NRGBA, RGB8 opaque.
func (b *ImageBuf) ToStdImage() image.Image {
	rect := image.Rect(0, 0, b.width, b.height)

	switch {
	case b.format == FormatGray8:
		gray := image.NewGray(rect)
		for y := range b.height {
			copy(gray.Pix[y*gray.Stride:], b.RowBytes(y))
		}
		return gray

	case b.format.HasAlpha():
		nrgba := image.NewNRGBA(rect)
		for y := range b.height {
			copy(nrgba.Pix[y*nrgba.Stride:], b.RowBytes(y))
		}
		return nrgba

	default:
		nrgba := image.NewNRGBA(rect)
		for y := range b.height {
			row := b.RowBytes(y)
			dst := nrgba.Pix[y*nrgba.Stride:]
			for x := range b.width {
				dst[x*4] = row[x*3]
				dst[x*4+1] = row[x*3+1]
				dst[x*4+2] = row[x*3+2]
				dst[x*4+3] = 255
			}
		}
		return nrgba
	}
}
