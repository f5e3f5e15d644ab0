package grid

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/nvr-ai/go-gallery/images"
)

// Displayer shows rendered figures one at a time.
type Displayer interface {
	// Show presents the figure at index and returns once it has been shown.
	Show(ctx context.Context, index int, figure image.Image) error
	// Close releases any resources held by the displayer.
	Close() error
}

// FileDisplayer writes each figure to an image file in a directory.
type FileDisplayer struct {
	dir    string
	format images.ImageFormat
	prefix string

	mu    sync.Mutex
	paths []string
}

// NewFileDisplayer creates dir if needed and returns a displayer writing
// figures named "<prefix>-NNN.<ext>" into it.
//
// Arguments:
//   - dir: The output directory.
//   - format: The file format; FormatUnknown selects PNG.
//   - prefix: The file name prefix; empty selects "figure".
//
// Returns:
//   - *FileDisplayer: The displayer.
//   - error: An error if the directory cannot be created or the format is unsupported.
func NewFileDisplayer(dir string, format images.ImageFormat, prefix string) (*FileDisplayer, error) {
	if format == images.FormatUnknown {
		format = images.FormatPNG
	}
	if _, err := images.ParseFormat(string(format)); err != nil {
		return nil, err
	}
	if prefix == "" {
		prefix = "figure"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory %s", dir)
	}

	return &FileDisplayer{dir: dir, format: format, prefix: prefix}, nil
}

// Show encodes the figure to its file.
func (d *FileDisplayer) Show(ctx context.Context, index int, figure image.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(d.dir, fmt.Sprintf("%s-%03d%s", d.prefix, index+1, d.format.Extension()))
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}

	if err := images.Encode(f, figure, d.format); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %s", path)
	}

	d.mu.Lock()
	d.paths = append(d.paths, path)
	d.mu.Unlock()

	return nil
}

// Paths returns the files written so far, in order.
func (d *FileDisplayer) Paths() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.paths...)
}

// Close is a no-op; files are closed as they are written.
func (d *FileDisplayer) Close() error {
	return nil
}

// windowPollMillis is how long WaitKey blocks before the context is rechecked.
const windowPollMillis = 100

// WindowDisplayer shows each figure in an OpenCV window and blocks until a
// key is pressed, the window is closed or the context is done.
type WindowDisplayer struct {
	window *gocv.Window
}

// NewWindowDisplayer opens a window with the given title.
func NewWindowDisplayer(title string) *WindowDisplayer {
	return &WindowDisplayer{window: gocv.NewWindow(title)}
}

// Show draws the figure and waits for the viewer to move on.
func (d *WindowDisplayer) Show(ctx context.Context, index int, figure image.Image) error {
	mat, err := images.ToMat(figure)
	if err != nil {
		return errors.Wrapf(err, "figure %d", index+1)
	}
	defer mat.Close()

	d.window.IMShow(mat)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if key := d.window.WaitKey(windowPollMillis); key >= 0 {
			return nil
		}
		if !d.window.IsOpen() {
			return nil
		}
	}
}

// Close closes the window.
func (d *WindowDisplayer) Close() error {
	return d.window.Close()
}
