package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFromBGRA(t *testing.T) {
	bgra := []byte{
		10, 20, 30, 255,
		40, 50, 60, 128,
	}
	img, err := FromBGRA(2, 1, bgra)
	if err != nil {
		t.Fatalf("FromBGRA: %v", err)
	}
	want := []byte{30, 20, 10, 255, 60, 50, 40, 128}
	if !bytes.Equal(img.Pix, want) {
		t.Errorf("pixels: got %v, want %v", img.Pix, want)
	}
	if bgra[0] != 10 {
		t.Error("FromBGRA modified its input")
	}
}

func TestFromBGRAShort(t *testing.T) {
	if _, err := FromBGRA(2, 2, make([]byte, 8)); err == nil {
		t.Error("expected error for short data")
	}
	if _, err := FromBGRA(0, 2, nil); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestSwizzleRoundTrip(t *testing.T) {
	pix := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	SwizzleRB(pix)
	SwizzleRB(pix)
	if !bytes.Equal(pix, []byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("double swizzle: got %v", pix)
	}
}

func TestFlipVertical(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 3))
	img.SetRGBA(0, 0, color.RGBA{R: 1, A: 255})
	img.SetRGBA(0, 2, color.RGBA{R: 3, A: 255})
	FlipVertical(img)
	if img.RGBAAt(0, 0).R != 3 || img.RGBAAt(0, 2).R != 1 {
		t.Errorf("flip: got top %v bottom %v", img.RGBAAt(0, 0), img.RGBAAt(0, 2))
	}
}

func TestWritePNGAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache", "hmd3.png")
	img := Solid(4, 2, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	if err := WritePNG(path, img); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "hmd3.png" {
		t.Errorf("cache dir entries: got %v, want only hmd3.png", entries)
	}

	w, h, err := VerifyPNG(path)
	if err != nil {
		t.Fatalf("VerifyPNG: %v", err)
	}
	if w != 4 || h != 2 {
		t.Errorf("size: got %dx%d, want 4x2", w, h)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := loaded.RGBAAt(3, 1); got != (color.RGBA{R: 200, G: 100, B: 50, A: 255}) {
		t.Errorf("pixel: got %v", got)
	}
}

func TestVerifyPNGTruncated(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Solid(16, 16, color.RGBA{A: 255})); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(path, buf.Bytes()[:buf.Len()/2], 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := VerifyPNG(path); err == nil {
		t.Error("expected error for truncated PNG")
	}
}

func TestToRGBAOffsetBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	src.Set(5, 5, color.NRGBA{R: 255, A: 255})
	dst := ToRGBA(src)
	if dst.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Fatalf("bounds: got %v", dst.Bounds())
	}
	if dst.RGBAAt(0, 0).R != 255 {
		t.Errorf("pixel: got %v", dst.RGBAAt(0, 0))
	}
}

func TestThumbnail(t *testing.T) {
	img := Solid(200, 100, color.RGBA{G: 255, A: 255})
	th := Thumbnail(img, 50)
	if th.Bounds().Dx() != 50 || th.Bounds().Dy() != 25 {
		t.Errorf("thumbnail size: got %v", th.Bounds())
	}
	small := Solid(10, 10, color.RGBA{A: 255})
	if Thumbnail(small, 50) != small {
		t.Error("small image should be returned unchanged")
	}
}
