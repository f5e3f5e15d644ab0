package images

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// ErrEmptyMat is returned when an OpenCV Mat holds no pixels.
var ErrEmptyMat = errors.New("mat is empty")

// ToMat converts a decoded image into a BGR gocv.Mat. The caller owns the
// returned Mat and must Close it.
//
// Arguments:
//   - img: The decoded image.
//
// Returns:
//   - gocv.Mat: The converted Mat.
//   - error: An error if the image is nil or the conversion fails.
func ToMat(img image.Image) (gocv.Mat, error) {
	if img == nil {
		return gocv.NewMat(), errors.New("image is nil")
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.NewMat(), errors.Wrap(err, "failed to convert image to mat")
	}

	return mat, nil
}

// FromMat converts a gocv.Mat into a decoded image. The Mat is not closed.
//
// Arguments:
//   - mat: The source Mat.
//
// Returns:
//   - image.Image: The converted image.
//   - error: ErrEmptyMat for an empty Mat, or the conversion error.
func FromMat(mat gocv.Mat) (image.Image, error) {
	if mat.Empty() {
		return nil, ErrEmptyMat
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert mat to image")
	}

	return img, nil
}
