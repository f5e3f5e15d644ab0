package grid

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/nvr-ai/go-gallery/images"
)

// Background is the figure colour behind and between cells.
var Background color.Color = color.White

// RenderFigure draws up to Columns images side by side on one figure.
// Each image is scaled to fit its cell, keeping its aspect ratio, and
// centred. Cells without an image are left blank.
//
// Arguments:
//   - row: The images for this row; extras beyond Columns are ignored.
//   - layout: The figure geometry.
//   - filter: The resampling filter.
//
// Returns:
//   - *image.RGBA: The figure.
func RenderFigure(row []image.Image, layout Layout, filter images.ResampleFilter) *image.RGBA {
	fig := image.NewRGBA(image.Rect(0, 0, layout.Width, layout.Height))
	draw.Draw(fig, fig.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	for col := 0; col < Columns && col < len(row); col++ {
		cell := layout.Cell(col)
		fitted := images.Fit(row[col], cell.Dx(), cell.Dy(), filter)
		if fitted == nil {
			continue
		}

		size := fitted.Bounds().Size()
		origin := cell.Min.Add(image.Pt((cell.Dx()-size.X)/2, (cell.Dy()-size.Y)/2))
		draw.Draw(fig, image.Rectangle{Min: origin, Max: origin.Add(size)}, fitted, fitted.Bounds().Min, draw.Over)
	}

	return fig
}

// RenderFigures splits imgs into rows of Columns and renders each row.
func RenderFigures(imgs []image.Image, layout Layout, filter images.ResampleFilter) []*image.RGBA {
	figures := make([]*image.RGBA, 0, Rows(len(imgs)))
	for start := 0; start < len(imgs); start += Columns {
		figures = append(figures, RenderFigure(imgs[start:min(start+Columns, len(imgs))], layout, filter))
	}
	return figures
}
