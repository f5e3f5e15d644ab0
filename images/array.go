package images

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// ErrInvalidArray is returned for pixel arrays FromArray cannot convert.
var ErrInvalidArray = errors.New("invalid pixel array")

// Channels reports how many channels ToArray produces for img. It follows
// the decoded pixel type, not the pixel values: 1 for grayscale, 4 for
// types with an alpha channel (and palettes with a translucent entry), 3
// otherwise.
func Channels(img image.Image) int {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.NRGBA, *image.NRGBA64, *image.RGBA64:
		return 4
	case *image.Paletted:
		return paletteChannels(m.Palette)
	case *image.RGBA, *image.YCbCr, *image.CMYK:
		return 3
	}

	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return 1
	case color.NRGBAModel, color.NRGBA64Model, color.RGBA64Model, color.AlphaModel, color.Alpha16Model:
		return 4
	}
	return 3
}

// paletteChannels is 4 when any palette entry is translucent.
func paletteChannels(p color.Palette) int {
	for _, c := range p {
		if _, _, _, a := c.RGBA(); a != 0xffff {
			return 4
		}
	}
	return 3
}

// ToArray converts a decoded image into a uint8 pixel array.
//
// The array is (H, W), (H, W, 3) or (H, W, 4) as chosen by Channels.
// Values are 8-bit and, for 4-channel arrays, not premultiplied.
//
// Arguments:
//   - img: The decoded image.
//
// Returns:
//   - *tensor.Dense: The pixel array.
func ToArray(img image.Image) *tensor.Dense {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	channels := Channels(img)

	data := make([]uint8, width*height*channels)
	idx := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			switch channels {
			case 1:
				data[idx] = color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
			case 3:
				r, g, b, _ := img.At(x, y).RGBA()
				data[idx], data[idx+1], data[idx+2] = uint8(r>>8), uint8(g>>8), uint8(b>>8)
			default:
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				data[idx], data[idx+1], data[idx+2], data[idx+3] = c.R, c.G, c.B, c.A
			}
			idx += channels
		}
	}

	if channels == 1 {
		return tensor.New(tensor.WithShape(height, width), tensor.WithBacking(data))
	}
	return tensor.New(tensor.WithShape(height, width, channels), tensor.WithBacking(data))
}

// CheckArray reports whether arr is a uint8 array of shape (H, W), (H, W, 3)
// or (H, W, 4) with non-zero height and width.
func CheckArray(arr *tensor.Dense) error {
	if arr == nil {
		return errors.Wrap(ErrInvalidArray, "array is nil")
	}
	if arr.Dtype() != tensor.Uint8 {
		return errors.Wrapf(ErrInvalidArray, "dtype %v, want uint8", arr.Dtype())
	}

	shape := arr.Shape()
	switch {
	case shape.Dims() == 2:
	case shape.Dims() == 3 && (shape[2] == 3 || shape[2] == 4):
	default:
		return errors.Wrapf(ErrInvalidArray, "shape %v", shape)
	}
	if shape[0] <= 0 || shape[1] <= 0 {
		return errors.Wrapf(ErrInvalidArray, "shape %v", shape)
	}
	return nil
}

// FromArray converts a pixel array back into a decoded image: (H, W) to
// *image.Gray, (H, W, 3) to *image.RGBA and (H, W, 4) to *image.NRGBA.
//
// Arguments:
//   - arr: The uint8 pixel array.
//
// Returns:
//   - image.Image: The image.
//   - error: ErrInvalidArray for other dtypes or shapes.
func FromArray(arr *tensor.Dense) (image.Image, error) {
	if err := CheckArray(arr); err != nil {
		return nil, err
	}
	if arr.IsMaterializable() {
		arr = arr.Materialize().(*tensor.Dense)
	}

	data, ok := arr.Data().([]uint8)
	if !ok {
		return nil, errors.Wrap(ErrInvalidArray, "backing data is not []uint8")
	}

	shape := arr.Shape()
	height, width := shape[0], shape[1]
	rect := image.Rect(0, 0, width, height)

	if shape.Dims() == 2 {
		img := image.NewGray(rect)
		copy(img.Pix, data)
		return img, nil
	}

	if shape[2] == 4 {
		img := image.NewNRGBA(rect)
		copy(img.Pix, data)
		return img, nil
	}

	img := image.NewRGBA(rect)
	for i, j := 0, 0; i < len(data); i, j = i+3, j+4 {
		img.Pix[j], img.Pix[j+1], img.Pix[j+2], img.Pix[j+3] = data[i], data[i+1], data[i+2], 0xff
	}
	return img, nil
}
