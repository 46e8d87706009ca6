package loader

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// Decoding errors.
var (
	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("loader: empty data")

	// ErrUnsupportedFormat is returned when no decoder accepts the data.
	ErrUnsupportedFormat = errors.New("loader: unsupported format")
)

// Format names reported by Decode.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatGIF  = "gif"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
	FormatWebP = "webp"
	FormatTGA  = "tga"
)

// Sniff returns the format of data by its magic bytes. TGA has no magic,
// so anything unrecognised is reported as TGA.
func Sniff(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return FormatPNG
	case bytes.HasPrefix(data, []byte("\xff\xd8")):
		return FormatJPEG
	case bytes.HasPrefix(data, []byte("GIF8")):
		return FormatGIF
	case bytes.HasPrefix(data, []byte("BM")):
		return FormatBMP
	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return FormatTIFF
	case len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return FormatWebP
	default:
		return FormatTGA
	}
}

// Decode decodes an image, picking the decoder from the magic bytes.
// Decoders are called directly rather than through image.Decode so that
// the magic-less TGA decoder cannot shadow the others.
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyData
	}

	format := Sniff(data)
	r := bytes.NewReader(data)

	var (
		img image.Image
		err error
	)
	switch format {
	case FormatPNG:
		img, err = png.Decode(r)
	case FormatJPEG:
		img, err = jpeg.Decode(r)
	case FormatGIF:
		img, err = gif.Decode(r)
	case FormatBMP:
		img, err = bmp.Decode(r)
	case FormatTIFF:
		img, err = tiff.Decode(r)
	case FormatWebP:
		img, err = webp.Decode(r)
	default:
		img, err = tga.Decode(r)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
	}
	if err != nil {
		return nil, format, fmt.Errorf("loader: decode %s: %w", format, err)
	}
	return img, format, nil
}
