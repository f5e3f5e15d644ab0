package images

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-gallery/util"
)

// ErrNoImages is returned when a folder yields no loadable image.
var ErrNoImages = errors.New("no valid images in folder")

// FolderOptions configures a folder load.
type FolderOptions struct {
	// Extensions are the accepted file extensions. Defaults to DefaultLoadExtensions.
	Extensions []string
	// Logger receives a warning for every file that fails to load. Defaults to a no-op logger.
	Logger *zap.Logger
}

func (o FolderOptions) withDefaults() FolderOptions {
	if len(o.Extensions) == 0 {
		o.Extensions = DefaultLoadExtensions
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// LoadFolder loads every image in dir whose extension matches, in filename
// order. Files that fail to load are logged and skipped.
//
// Arguments:
//   - dir: The folder to read.
//   - opts: Extension filter and logger.
//
// Returns:
//   - []Loaded: The decoded images.
//   - error: ErrNotFound if dir is missing or not a directory, the wrapped
//     stat error for other failures, ErrNoImages if nothing loaded.
func LoadFolder(dir string, opts FolderOptions) ([]Loaded, error) {
	opts = opts.withDefaults()

	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, errors.Wrapf(ErrNotFound, "folder does not exist: %s", dir)
	case err != nil:
		return nil, errors.Wrapf(err, "failed to stat folder %s", dir)
	case !info.IsDir():
		return nil, errors.Wrapf(ErrNotFound, "not a folder: %s", dir)
	}

	files, err := util.ListImageFiles(dir, opts.Extensions)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list folder %s", dir)
	}

	loaded := LoadFiles(files, opts.Logger)
	if len(loaded) == 0 {
		return nil, errors.Wrapf(ErrNoImages, "%s", dir)
	}

	opts.Logger.Debug("loaded folder",
		zap.String("folder", dir),
		zap.Int("images", len(loaded)),
		zap.Int("skipped", len(files)-len(loaded)),
	)

	return loaded, nil
}

// LoadFiles loads already listed files in the given order. Files that fail
// to load are logged at warn level and left out of the result.
func LoadFiles(files []util.ImageFile, logger *zap.Logger) []Loaded {
	if logger == nil {
		logger = zap.NewNop()
	}

	loaded := make([]Loaded, 0, len(files))
	for _, file := range files {
		img, err := LoadImage(file.Path)
		if err != nil {
			logger.Warn("skipping unreadable image",
				zap.String("file", file.Name),
				zap.Error(err),
			)
			continue
		}
		loaded = append(loaded, Loaded{Path: file.Path, Image: img})
	}
	return loaded
}

// LoadFolderArrays is LoadFolder returning pixel arrays, see ToArray.
func LoadFolderArrays(dir string, opts FolderOptions) ([]*tensor.Dense, error) {
	loaded, err := LoadFolder(dir, opts)
	if err != nil {
		return nil, err
	}

	arrays := make([]*tensor.Dense, len(loaded))
	for i, l := range loaded {
		arrays[i] = ToArray(l.Image)
	}
	return arrays, nil
}
