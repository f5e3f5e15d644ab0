package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nvr-ai/go-gallery/images"
)

func writeImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{G: 200, A: 255})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, images.Encode(f, img, images.FormatFromPath(name)))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd(&app{logger: zap.NewNop()})
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestShowFolder(t *testing.T) {
	src := t.TempDir()
	for _, name := range []string{"a.png", "b.png", "c.jpg", "d.bmp", "e.gif"} {
		writeImage(t, src, name, 16, 9)
	}
	out := filepath.Join(t.TempDir(), "figures")

	stdout, err := run(t, "show", "--folder", src, "--out", out, "--format", "webp")
	require.NoError(t, err)

	want := []string{filepath.Join(out, "figure-001.webp"), filepath.Join(out, "figure-002.webp")}
	assert.Equal(t, want, strings.Fields(stdout))

	img, err := images.LoadImage(want[0])
	require.NoError(t, err)
	assert.Equal(t, image.Pt(1500, 400), img.Bounds().Size())
}

func TestShowImageAndList(t *testing.T) {
	src := t.TempDir()
	one := writeImage(t, src, "one.png", 4, 4)
	two := writeImage(t, src, "two.jpg", 4, 4)
	out := t.TempDir()

	stdout, err := run(t, "show", "--image", one, "--images", two+","+one, "--out", out)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(out, "figure-001.png")}, strings.Fields(stdout))
}

func TestShowWithConfig(t *testing.T) {
	src := t.TempDir()
	writeImage(t, src, "a.png", 4, 4)
	out := t.TempDir()

	cfgPath := filepath.Join(t.TempDir(), "gallery.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
figure: {width: 200, height: 60, padding: 5}
filter: nearest
output: {mode: file, dir: `+out+`, format: jpeg, prefix: row}
`), 0o644))

	stdout, err := run(t, "--config", cfgPath, "show", "--folder", src)
	require.NoError(t, err)

	path := filepath.Join(out, "row-001.jpg")
	assert.Equal(t, []string{path}, strings.Fields(stdout))

	img, err := images.LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(200, 60), img.Bounds().Size())
}

func TestShowErrors(t *testing.T) {
	out := t.TempDir()

	_, err := run(t, "show", "--out", out)
	assert.ErrorContains(t, err, "no images to display")

	_, err = run(t, "show", "--folder", filepath.Join(out, "missing"), "--out", out)
	assert.ErrorContains(t, err, "folder is invalid")

	_, err = run(t, "show", "--image", filepath.Join(out, "missing.png"), "--out", out)
	assert.Error(t, err)

	_, err = run(t, "show", "--folder", out, "--out", out, "--filter", "box")
	assert.ErrorContains(t, err, "unknown resample filter")

	_, err = run(t, "--config", filepath.Join(out, "missing.yaml"), "show")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	src := t.TempDir()
	writeImage(t, src, "b.png", 3, 2)
	writeImage(t, src, "a.jpg", 5, 4)
	writeImage(t, src, "c.gif", 1, 1)
	require.NoError(t, os.WriteFile(filepath.Join(src, "z.png"), []byte("garbage"), 0o644))

	stdout, err := run(t, "load", src)
	require.NoError(t, err)
	assert.Equal(t, "a.jpg 5x4 3\nb.png 3x2 3\nloaded 2 images\n", stdout)

	stdout, err = run(t, "load", src, "--ext", ".gif")
	require.NoError(t, err)
	assert.Equal(t, "c.gif 1x1 3\nloaded 1 images\n", stdout)
}

func TestLoadErrors(t *testing.T) {
	_, err := run(t, "load")
	assert.Error(t, err)

	_, err = run(t, "load", t.TempDir())
	assert.ErrorContains(t, err, "no valid images in folder")
}

// syncCounter is a no-op core that counts Sync calls.
type syncCounter struct {
	zapcore.Core
	syncs int
}

func (c *syncCounter) Sync() error {
	c.syncs++
	return nil
}

func TestExecuteSyncsLogger(t *testing.T) {
	out := t.TempDir()

	core := &syncCounter{Core: zapcore.NewNopCore()}
	code := execute(context.Background(), &app{logger: zap.New(core)}, []string{"show", "--out", out})
	assert.Equal(t, 1, code)
	assert.Equal(t, 1, core.syncs)

	src := t.TempDir()
	writeImage(t, src, "a.png", 2, 2)

	core = &syncCounter{Core: zapcore.NewNopCore()}
	code = execute(context.Background(), &app{logger: zap.New(core)}, []string{"load", src})
	assert.Equal(t, 0, code)
	assert.Equal(t, 1, core.syncs)
}
