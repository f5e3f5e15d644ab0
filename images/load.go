// Package images loads image files into decoded images and pixel arrays,
// and provides the format, resampling and OpenCV helpers the grid renderer
// builds on.
package images

import (
	"image"
	"os"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

var (
	// ErrNotFound is returned when a file or folder does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDecode is returned when a file exists but cannot be opened or decoded.
	ErrDecode = errors.New("failed to load image")
)

// notFoundError keeps both ErrNotFound and the underlying fs error reachable
// through errors.Is.
type notFoundError struct {
	path  string
	cause error
}

func (e *notFoundError) Error() string {
	return "file not found: " + e.path
}

func (e *notFoundError) Unwrap() []error {
	return []error{ErrNotFound, e.cause}
}

// decodeError wraps a decoder failure so that errors.Is matches ErrDecode
// while the message keeps the decoder's cause.
type decodeError struct {
	path  string
	cause error
}

func (e *decodeError) Error() string {
	return "failed to load image " + e.path + ": " + e.cause.Error()
}

func (e *decodeError) Unwrap() []error {
	return []error{ErrDecode, e.cause}
}

// LoadImage opens and decodes a single image file.
//
// Arguments:
//   - path: The path to the image file.
//
// Returns:
//   - image.Image: The decoded image.
//   - error: ErrNotFound if the file does not exist, ErrDecode for any other failure.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &notFoundError{path: path, cause: err}
		}
		return nil, &decodeError{path: path, cause: err}
	}
	defer f.Close()

	img, _, err := decode(f)
	if err != nil {
		return nil, &decodeError{path: path, cause: err}
	}

	return img, nil
}

// LoadArray opens and decodes a single image file into a pixel array.
//
// Arguments:
//   - path: The path to the image file.
//
// Returns:
//   - *tensor.Dense: The uint8 pixel array, see ToArray for its shape.
//   - error: ErrNotFound if the file does not exist, ErrDecode for any other failure.
func LoadArray(path string) (*tensor.Dense, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return ToArray(img), nil
}
