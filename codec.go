package convolve

import (
	"fmt"
	"io"

	img "github.com/gogpu/convolve/internal/image"
)

// Container names an image file format for Encode.
type Container = img.Container

// Supported containers. GIF and WebP can only be decoded.
const (
	PNG  = img.ContainerPNG
	JPEG = img.ContainerJPEG
	GIF  = img.ContainerGIF
	BMP  = img.ContainerBMP
	TIFF = img.ContainerTIFF
	WebP = img.ContainerWebP
)

// Load reads a color image file as a 3-channel RGB RawImage.
// The format is taken from the extension, or sniffed from the content when
// the extension is unknown. Failures wrap ErrIO.
func Load(path string) (*RawImage, error) {
	return LoadWithChannels(path, 3)
}

// LoadWithChannels reads an image file as 1 (gray), 3 (RGB) or 4 (RGBA)
// channels.
func LoadWithChannels(path string, channels int) (*RawImage, error) {
	format, ok := img.FormatForChannels(channels)
	if !ok {
		return nil, fmt.Errorf("%w: cannot load %d channels", ErrInvalidArgument, channels)
	}

	buf, err := img.Load(path, format)
	if err != nil {
		return nil, fmt.Errorf("%w: load %s: %w", ErrIO, path, err)
	}
	return fromImageBuf(buf), nil
}

// Decode reads an image of any supported format from r as RGB.
// The whole stream is buffered before decoding; empty input is an error.
func Decode(r io.Reader) (*RawImage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read: %w", ErrIO, err)
	}
	buf, err := img.LoadFromBytes(data, img.FormatRGB8)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return fromImageBuf(buf), nil
}

// Save writes image to path in the format named by the extension
// (.png, .jpg/.jpeg, .bmp, .tif/.tiff). Images must have 1, 3 or 4 channels.
func Save(path string, image *RawImage) error {
	buf, err := toImageBuf(image)
	if err != nil {
		return err
	}
	if err := buf.Save(path); err != nil {
		return fmt.Errorf("%w: save %s: %w", ErrIO, path, err)
	}
	return nil
}

// Encode writes image to w in the given container format.
func Encode(w io.Writer, image *RawImage, container Container) error {
	buf, err := toImageBuf(image)
	if err != nil {
		return err
	}
	if err := buf.Encode(w, container); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// fromImageBuf adopts the decoded buffer; ImageBuf rows are unpadded, so
// the layouts match.
func fromImageBuf(buf *img.ImageBuf) *RawImage {
	return &RawImage{
		height:   buf.Height(),
		width:    buf.Width(),
		channels: buf.Format().Channels(),
		pix:      buf.Data(),
	}
}

func toImageBuf(image *RawImage) (*img.ImageBuf, error) {
	if err := image.validate(); err != nil {
		return nil, err
	}
	format, ok := img.FormatForChannels(image.channels)
	if !ok {
		return nil, fmt.Errorf("%w: cannot encode %d channels", ErrInvalidArgument, image.channels)
	}

	// Encoding only reads the buffer, so it can alias the image.
	buf, err := img.FromRaw(image.pix, image.width, image.height, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return buf, nil
}
