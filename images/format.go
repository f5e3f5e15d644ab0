package images

import (
	"bufio"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
)

// ImageFormat represents supported image formats.
type ImageFormat string

// ImageFormat constants.
const (
	// FormatJPEG is the JPEG image format.
	FormatJPEG ImageFormat = "jpeg"
	// FormatPNG is the PNG image format.
	FormatPNG ImageFormat = "png"
	// FormatGIF is the GIF image format. Only the first frame is decoded.
	FormatGIF ImageFormat = "gif"
	// FormatBMP is the BMP image format.
	FormatBMP ImageFormat = "bmp"
	// FormatWebP is the WebP image format.
	FormatWebP ImageFormat = "webp"
	// FormatUnknown is returned for extensions no decoder is registered for.
	FormatUnknown ImageFormat = ""
)

// ErrUnsupportedFormat is returned when encoding to a format with no encoder.
var ErrUnsupportedFormat = errors.New("unsupported image format")

var extensionFormats = map[string]ImageFormat{
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".png":  FormatPNG,
	".gif":  FormatGIF,
	".bmp":  FormatBMP,
	".webp": FormatWebP,
}

// DefaultLoadExtensions are the extensions picked up by folder loads.
var DefaultLoadExtensions = []string{".jpg", ".jpeg", ".png"}

// GridExtensions are the extensions picked up when a grid is built from a folder.
var GridExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif"}

// FormatFromPath returns the format implied by the file extension, ignoring case.
//
// Arguments:
//   - path: The file path or name.
//
// Returns:
//   - ImageFormat: The format, or FormatUnknown.
func FormatFromPath(path string) ImageFormat {
	return extensionFormats[strings.ToLower(filepath.Ext(path))]
}

// Extension returns the canonical file extension for the format, including the dot.
func (f ImageFormat) Extension() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatUnknown:
		return ""
	default:
		return "." + string(f)
	}
}

// ParseFormat parses a format name such as "png" or "JPG".
func ParseFormat(name string) (ImageFormat, error) {
	name = strings.ToLower(strings.TrimPrefix(name, "."))
	if f, ok := extensionFormats["."+name]; ok {
		return f, nil
	}
	return FormatUnknown, errors.Wrapf(ErrUnsupportedFormat, "%q", name)
}

// Encode writes img to w in the given format.
//
// Arguments:
//   - w: The destination writer.
//   - img: The image to encode.
//   - format: The output format.
//
// Returns:
//   - error: An error if the format is unsupported or encoding fails.
func Encode(w io.Writer, img image.Image, format ImageFormat) error {
	var err error
	switch format {
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatGIF:
		err = gif.Encode(w, img, nil)
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatWebP:
		err = webp.Encode(w, img, &webp.Options{Quality: 90})
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "%q", string(format))
	}
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", format)
	}
	return nil
}

// decode sniffs the stream and decodes it. WebP is detected from its RIFF
// header and routed to the webp decoder; everything else goes through the
// registered image decoders.
func decode(r io.Reader) (image.Image, string, error) {
	br := bufio.NewReader(r)
	header, _ := br.Peek(12)
	if isWebP(header) {
		img, err := webp.Decode(br)
		return img, string(FormatWebP), err
	}
	return image.Decode(br)
}

func isWebP(header []byte) bool {
	return len(header) >= 12 && string(header[0:4]) == "RIFF" && string(header[8:12]) == "WEBP"
}
