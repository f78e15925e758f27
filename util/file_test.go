package util

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 60), G: uint8(y * 60), B: 128, A: 255})
		}
	}
	return img
}

func TestSavePNGAndOpenImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")

	require.NoError(t, SavePNG(testImage(), path))

	got, err := OpenImage(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), got.Bounds())
}

func TestSavePNGLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, SavePNG(testImage(), filepath.Join(dir, "out.png")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.png", entries[0].Name())
}

func TestSavePNGOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")

	require.NoError(t, SavePNG(testImage(), path))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, SavePNG(testImage(), path))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestOpenImageMissing(t *testing.T) {
	_, err := OpenImage(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}
