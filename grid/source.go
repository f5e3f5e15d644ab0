package grid

import (
	"image"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gocv.io/x/gocv"
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-gallery/images"
	"github.com/nvr-ai/go-gallery/util"
)

var (
	// ErrInvalidImage is returned when the single image is neither a decoded
	// image, a non-empty Mat, a valid pixel array, nor a path to an existing file.
	ErrInvalidImage = errors.New("image must be a decoded image, a mat, a pixel array or a path to an existing file")
	// ErrInvalidItem is returned when an element of the image list is invalid.
	ErrInvalidItem = errors.New("one or more items in images are invalid")
	// ErrInvalidFolder is returned when the folder does not exist or is not a directory.
	ErrInvalidFolder = errors.New("folder is invalid or does not exist")
	// ErrEmptyFolder is returned when the folder contains no image files.
	ErrEmptyFolder = errors.New("no images found in folder")
	// ErrNothingToDisplay is returned when no image was collected at all.
	ErrNothingToDisplay = errors.New("no images to display")
)

// Item is one image to place in the grid. Exactly one field is expected to
// be set; precedence is Image, Mat, Array, then Path.
type Item struct {
	// Image is an already decoded image.
	Image image.Image
	// Mat is an OpenCV pixel array. It is read, never closed.
	Mat *gocv.Mat
	// Array is a uint8 pixel array as returned by images.LoadArray.
	Array *tensor.Dense
	// Path is an image file on disk.
	Path string
}

// FromImage wraps a decoded image.
func FromImage(img image.Image) Item {
	return Item{Image: img}
}

// FromMat wraps an OpenCV Mat.
func FromMat(mat *gocv.Mat) Item {
	return Item{Mat: mat}
}

// FromArray wraps a pixel array of shape (H, W), (H, W, 3) or (H, W, 4).
func FromArray(arr *tensor.Dense) Item {
	return Item{Array: arr}
}

// FromPath wraps an image file path.
func FromPath(path string) Item {
	return Item{Path: path}
}

// FromPaths wraps each path in an Item.
func FromPaths(paths ...string) []Item {
	items := make([]Item, len(paths))
	for i, p := range paths {
		items[i] = FromPath(p)
	}
	return items
}

// Input is the set of images a grid is built from. Any combination of
// fields may be set; images are collected in field order.
type Input struct {
	// Image is a single image.
	Image *Item
	// Images is a list of images.
	Images []Item
	// Folder is a directory of image files.
	Folder string
}

// valid reports whether the item can be resolved without touching a decoder.
func (it Item) valid() bool {
	switch {
	case it.Image != nil:
		return true
	case it.Mat != nil:
		return !it.Mat.Empty()
	case it.Array != nil:
		return images.CheckArray(it.Array) == nil
	case it.Path != "":
		info, err := os.Stat(it.Path)
		return err == nil && info.Mode().IsRegular()
	}
	return false
}

func (it Item) resolve() (image.Image, error) {
	switch {
	case it.Image != nil:
		return it.Image, nil
	case it.Mat != nil:
		return images.FromMat(*it.Mat)
	case it.Array != nil:
		return images.FromArray(it.Array)
	default:
		return images.LoadImage(it.Path)
	}
}

// Collect validates input and resolves it into decoded images: the single
// image first, then the list in order, then the folder in filename order.
//
// Arguments:
//   - input: The images to collect.
//   - opts: Folder extensions and logger; layout fields are ignored.
//
// Returns:
//   - []image.Image: The decoded images.
//   - error: One of the package sentinels, or images.ErrDecode for a path that cannot be decoded.
func Collect(input Input, opts Options) ([]image.Image, error) {
	opts = opts.withDefaults()

	var all []image.Image

	if input.Image != nil {
		if !input.Image.valid() {
			return nil, ErrInvalidImage
		}
		img, err := input.Image.resolve()
		if err != nil {
			return nil, errors.Wrap(err, "image")
		}
		all = append(all, img)
	}

	for i, item := range input.Images {
		if !item.valid() {
			return nil, errors.Wrapf(ErrInvalidItem, "index %d", i)
		}
		img, err := item.resolve()
		if err != nil {
			return nil, errors.Wrapf(err, "images[%d]", i)
		}
		all = append(all, img)
	}

	if input.Folder != "" {
		loaded, err := collectFolder(input.Folder, opts)
		if err != nil {
			return nil, err
		}
		for _, l := range loaded {
			all = append(all, l.Image)
		}
	}

	if len(all) == 0 {
		return nil, ErrNothingToDisplay
	}

	return all, nil
}

func collectFolder(dir string, opts Options) ([]images.Loaded, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, errors.Wrapf(ErrInvalidFolder, "%s", dir)
	}

	files, err := util.ListImageFiles(dir, opts.Extensions)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list folder %s", dir)
	}
	if len(files) == 0 {
		return nil, errors.Wrapf(ErrEmptyFolder, "%s", dir)
	}

	loaded := images.LoadFiles(files, opts.Logger)
	if len(loaded) == 0 {
		opts.Logger.Warn("no readable images in folder", zap.String("folder", dir))
	}
	return loaded, nil
}
