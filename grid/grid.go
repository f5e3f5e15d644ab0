// Package grid collects images from decoded values, files and folders and
// shows them as figures of Columns cells each.
package grid

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nvr-ai/go-gallery/images"
)

// Options configures collection and rendering.
type Options struct {
	// Layout is the figure geometry. The zero value selects DefaultLayout.
	Layout Layout
	// Filter is the resampling filter. Defaults to images.BilinearFilter.
	Filter images.ResampleFilter
	// Extensions are accepted when collecting a folder. Defaults to images.GridExtensions.
	Extensions []string
	// Logger receives progress and skipped-file warnings. Defaults to a no-op logger.
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Layout == (Layout{}) {
		o.Layout = DefaultLayout()
	}
	if o.Filter == "" {
		o.Filter = images.BilinearFilter
	}
	if len(o.Extensions) == 0 {
		o.Extensions = images.GridExtensions
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Display collects the input, renders it row by row and hands every figure
// to d in order. The displayer is not closed.
//
// Arguments:
//   - ctx: Cancelling stops the display before the next figure.
//   - input: The images to show.
//   - d: Where figures are shown.
//   - opts: Layout, filter, folder extensions and logger.
//
// Returns:
//   - int: The number of figures shown.
//   - error: A collection error, ErrInvalidLayout, a displayer error or ctx.Err().
func Display(ctx context.Context, input Input, d Displayer, opts Options) (int, error) {
	opts = opts.withDefaults()
	if err := opts.Layout.Validate(); err != nil {
		return 0, err
	}

	imgs, err := Collect(input, opts)
	if err != nil {
		return 0, err
	}

	rows := Rows(len(imgs))
	opts.Logger.Info("displaying images",
		zap.Int("images", len(imgs)),
		zap.Int("figures", rows),
		zap.String("filter", string(opts.Filter)),
	)

	for i := 0; i < rows; i++ {
		if err := ctx.Err(); err != nil {
			return i, err
		}

		start := i * Columns
		fig := RenderFigure(imgs[start:min(start+Columns, len(imgs))], opts.Layout, opts.Filter)
		if err := d.Show(ctx, i, fig); err != nil {
			return i, errors.Wrapf(err, "failed to show figure %d", i+1)
		}
		opts.Logger.Debug("figure shown", zap.Int("figure", i+1), zap.Int("of", rows))
	}

	return rows, nil
}
