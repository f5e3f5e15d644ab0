package images

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// getTestImage returns a width x height image filled with c.
func getTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// writeImage encodes img into dir/name in the format implied by the name.
func writeImage(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, FormatFromPath(name)))

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// writeRGBAPNG writes an 8-bit PNG with colour type 6 (RGBA) holding pix,
// which is width*height*4 bytes. png.Encode drops the alpha channel of
// opaque images, so this builds the file by hand.
func writeRGBAPNG(t *testing.T, dir, name string, width, height int, pix []byte) string {
	t.Helper()
	require.Len(t, pix, width*height*4)

	var raw bytes.Buffer
	for y := 0; y < height; y++ {
		raw.WriteByte(0)
		raw.Write(pix[y*width*4 : (y+1)*width*4])
	}
	var idat bytes.Buffer
	zw := zlib.NewWriter(&idat)
	_, err := zw.Write(raw.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:], uint32(height))
	ihdr[8], ihdr[9] = 8, 6

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	for _, chunk := range []struct {
		kind string
		data []byte
	}{{"IHDR", ihdr}, {"IDAT", idat.Bytes()}, {"IEND", nil}} {
		var n [4]byte
		binary.BigEndian.PutUint32(n[:], uint32(len(chunk.data)))
		buf.Write(n[:])
		body := append([]byte(chunk.kind), chunk.data...)
		buf.Write(body)
		binary.BigEndian.PutUint32(n[:], crc32.ChecksumIEEE(body))
		buf.Write(n[:])
	}

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

var red = color.RGBA{R: 255, A: 255}
