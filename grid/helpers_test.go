package grid

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-gallery/images"
)

func solid(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func writeImage(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, images.Encode(f, img, images.FormatFromPath(name)))
	return path
}

// recorder is a Displayer that keeps every figure it is shown.
type recorder struct {
	figures []image.Image
	failAt  int
	err     error
	closed  bool
}

func (r *recorder) Show(_ context.Context, index int, figure image.Image) error {
	if r.err != nil && index == r.failAt {
		return r.err
	}
	r.figures = append(r.figures, figure)
	return nil
}

func (r *recorder) Close() error {
	r.closed = true
	return nil
}

var (
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}
