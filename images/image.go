package images

import "image"

// Loaded is an image decoded from a file on disk.
type Loaded struct {
	// Path is the file the image was decoded from.
	Path string
	// Image is the decoded image.
	Image image.Image
}

// Width returns the width of the decoded image.
func (l Loaded) Width() int {
	return l.Image.Bounds().Dx()
}

// Height returns the height of the decoded image.
func (l Loaded) Height() int {
	return l.Image.Bounds().Dy()
}
