package debug

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/image/webp"

	"github.com/Faultbox/midgard-vr/internal/engine/picking"
	"github.com/Faultbox/midgard-vr/pkg/math"
)

// bottomUp returns a 2x2 image's pixels as GL reads them: the red row is
// the bottom of the picture.
func bottomUp() []byte {
	return []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
}

func fixedCapture(dir string, format Format) *Capture {
	c := NewCapture(dir, "preview", format)
	c.now = func() time.Time { return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC) }
	return c
}

func TestCaptureFromPixelsPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	c := fixedCapture(dir, FormatPNG)

	path, err := c.CaptureFromPixels(bottomUp(), 2, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels: %v", err)
	}
	if want := filepath.Join(dir, "preview_2024-03-01_12-30-00.000.png"); path != want {
		t.Errorf("path: got %s, want %s", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r, _, b, _ := img.At(0, 0).RGBA(); r != 0 || b != 0xffff {
		t.Errorf("top row should be blue after the flip, got r=%x b=%x", r, b)
	}
	if r, _, _, _ := img.At(0, 1).RGBA(); r != 0xffff {
		t.Errorf("bottom row should be red, got r=%x", r)
	}
}

func TestCaptureWebP(t *testing.T) {
	c := fixedCapture(t.TempDir(), FormatWebP)

	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	path, err := c.CaptureFromImage(img)
	if err != nil {
		t.Fatalf("CaptureFromImage: %v", err)
	}
	if filepath.Ext(path) != ".webp" {
		t.Errorf("extension: got %s, want .webp", filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	cfg, err := webp.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if cfg.Width != 4 || cfg.Height != 3 {
		t.Errorf("size: got %dx%d, want 4x3", cfg.Width, cfg.Height)
	}
}

func TestCaptureSizeMismatch(t *testing.T) {
	c := fixedCapture(t.TempDir(), FormatPNG)
	if _, err := c.CaptureFromPixels(make([]byte, 10), 2, 2); err == nil {
		t.Error("expected an error for short pixel data")
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"png", "webp"} {
		if f, err := ParseFormat(s); err != nil || string(f) != s {
			t.Errorf("ParseFormat(%q): got %v, %v", s, f, err)
		}
	}
	if _, err := ParseFormat("gif"); err == nil {
		t.Error("ParseFormat should reject gif")
	}
}

func TestPlayAreaWireframe(t *testing.T) {
	rect := picking.AABB{
		Min: math.Vec3{X: -1, Y: -0.75, Z: 0},
		Max: math.Vec3{X: 1, Y: 0.75, Z: 0},
	}
	v := PlayAreaWireframe(rect)
	if len(v) != BBoxWireframeVertexCount*3 {
		t.Fatalf("vertex floats: got %d, want %d", len(v), BBoxWireframeVertexCount*3)
	}
	var top float32
	for i := 2; i < len(v); i += 3 {
		if v[i] > top {
			top = v[i]
		}
	}
	if top != PlayAreaHeight {
		t.Errorf("box top: got %v, want %v", top, PlayAreaHeight)
	}
}
