package util

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/segmentio/ksuid"

	// Decoders for every input format the batch allow-list accepts.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// OpenImage opens and decodes a local image.
func OpenImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	img, _, err := image.Decode(file)
	return img, err
}

// SavePNG writes img to path as PNG through a uniquely named temp file in
// the same directory, then renames it into place. Readers never observe a
// partial file.
func SavePNG(img image.Image, path string) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+ksuid.New().String()+".tmp")

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("png encode: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
