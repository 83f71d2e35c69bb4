package texture

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// WritePNG encodes img as PNG at path. The data is written to a temporary
// file in the same directory, synced, and renamed over path, so readers
// never observe a partially written file.
func WritePNG(path string, img image.Image) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating texture dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = png.Encode(tmp, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing PNG: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing PNG: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming PNG: %w", err)
	}
	return nil
}

// VerifyPNG fully decodes the PNG at path and returns its size.
func VerifyPNG(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}
