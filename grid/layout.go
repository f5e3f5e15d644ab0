package grid

import (
	"image"

	"github.com/pkg/errors"
)

// Columns is the fixed number of cells per figure row.
const Columns = 4

// Default figure geometry: 15x4 inches at 100 dpi with tight padding.
const (
	DefaultFigureWidth  = 1500
	DefaultFigureHeight = 400
	DefaultPadding      = 10
)

// ErrInvalidLayout is returned when a layout leaves no room for a cell.
var ErrInvalidLayout = errors.New("invalid layout")

// Layout is the geometry of one figure: a single row of Columns cells.
type Layout struct {
	// Width is the figure width in pixels.
	Width int `json:"width" yaml:"width"`
	// Height is the figure height in pixels.
	Height int `json:"height" yaml:"height"`
	// Padding is the gap around and between cells in pixels.
	Padding int `json:"padding" yaml:"padding"`
}

// DefaultLayout returns the default figure geometry.
func DefaultLayout() Layout {
	return Layout{
		Width:   DefaultFigureWidth,
		Height:  DefaultFigureHeight,
		Padding: DefaultPadding,
	}
}

// Validate checks that every cell is at least one pixel in each direction.
func (l Layout) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return errors.Wrapf(ErrInvalidLayout, "figure size %dx%d", l.Width, l.Height)
	}
	if l.Padding < 0 {
		return errors.Wrapf(ErrInvalidLayout, "negative padding %d", l.Padding)
	}
	if w, h := l.CellSize(); w <= 0 || h <= 0 {
		return errors.Wrapf(ErrInvalidLayout, "padding %d leaves no room in a %dx%d figure", l.Padding, l.Width, l.Height)
	}
	return nil
}

// CellSize returns the width and height available to each image.
func (l Layout) CellSize() (int, int) {
	return (l.Width - l.Padding*(Columns+1)) / Columns, l.Height - 2*l.Padding
}

// Cell returns the rectangle of the cell at column col.
func (l Layout) Cell(col int) image.Rectangle {
	w, h := l.CellSize()
	x := l.Padding + col*(w+l.Padding)
	return image.Rect(x, l.Padding, x+w, l.Padding+h)
}

// Rows returns the number of figures needed for n images.
func Rows(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + Columns - 1) / Columns
}
