package images

import (
	"image"
	"strings"

	"github.com/chewxy/math32"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// ResampleFilter names the interpolation used when an image is scaled into
// a grid cell.
type ResampleFilter string

const (
	// NearestNeighborFilter uses nearest-neighbor interpolation (fastest, lowest quality).
	NearestNeighborFilter ResampleFilter = "nearest"
	// BilinearFilter uses bilinear interpolation (fast, good quality).
	BilinearFilter ResampleFilter = "bilinear"
	// BicubicFilter uses bicubic interpolation (slower, better quality).
	BicubicFilter ResampleFilter = "bicubic"
	// MitchellNetravaliFilter uses the Mitchell-Netravali cubic filter (balanced).
	MitchellNetravaliFilter ResampleFilter = "mitchell"
	// LanczosFilter uses Lanczos resampling with a=3 (slowest, best quality).
	LanczosFilter ResampleFilter = "lanczos"
)

// ErrUnknownFilter is returned by ParseFilter for unrecognised names.
var ErrUnknownFilter = errors.New("unknown resample filter")

var interpolations = map[ResampleFilter]resize.InterpolationFunction{
	NearestNeighborFilter:   resize.NearestNeighbor,
	BilinearFilter:          resize.Bilinear,
	BicubicFilter:           resize.Bicubic,
	MitchellNetravaliFilter: resize.MitchellNetravali,
	LanczosFilter:           resize.Lanczos3,
}

// ParseFilter parses a filter name, ignoring case.
func ParseFilter(name string) (ResampleFilter, error) {
	f := ResampleFilter(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := interpolations[f]; !ok {
		return "", errors.Wrapf(ErrUnknownFilter, "%q", name)
	}
	return f, nil
}

// FitSize returns the largest size with the source aspect ratio that fits
// inside maxWidth x maxHeight. Sources are scaled up as well as down, and
// neither side drops below one pixel.
//
// Arguments:
//   - width, height: The source dimensions.
//   - maxWidth, maxHeight: The bounding box.
//
// Returns:
//   - int, int: The fitted width and height, or 0, 0 for empty inputs.
func FitSize(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= 0 || height <= 0 || maxWidth <= 0 || maxHeight <= 0 {
		return 0, 0
	}

	scale := math32.Min(float32(maxWidth)/float32(width), float32(maxHeight)/float32(height))
	w := int(math32.Round(float32(width) * scale))
	h := int(math32.Round(float32(height) * scale))

	return clamp(w, 1, maxWidth), clamp(h, 1, maxHeight)
}

// Fit scales img to FitSize(maxWidth, maxHeight) with the given filter.
//
// Arguments:
//   - img: The source image.
//   - maxWidth, maxHeight: The bounding box.
//   - filter: The resampling filter. Unknown filters fall back to bilinear.
//
// Returns:
//   - image.Image: The scaled image, or nil when either side would be empty.
func Fit(img image.Image, maxWidth, maxHeight int, filter ResampleFilter) image.Image {
	bounds := img.Bounds()
	w, h := FitSize(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)
	if w == 0 || h == 0 {
		return nil
	}

	interp, ok := interpolations[filter]
	if !ok {
		interp = resize.Bilinear
	}

	return resize.Resize(uint(w), uint(h), img, interp)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
