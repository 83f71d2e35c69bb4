// Package debug provides debug visualization and capture utilities.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"github.com/Faultbox/midgard-vr/internal/engine/texture"
)

// Format selects the encoder a Capture writes with.
type Format string

const (
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

// ParseFormat accepts "png" and "webp".
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPNG, FormatWebP:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown capture format %q", s)
}

// Capture writes timestamped images of the VR preview texture.
type Capture struct {
	outputDir string
	prefix    string
	format    Format
	now       func() time.Time
}

// NewCapture creates a capture handler writing prefix_<timestamp>.<format>
// files into outputDir.
func NewCapture(outputDir, prefix string, format Format) *Capture {
	return &Capture{
		outputDir: outputDir,
		prefix:    prefix,
		format:    format,
		now:       time.Now,
	}
}

// SetOutputDir sets the output directory for captures.
func (c *Capture) SetOutputDir(dir string) {
	c.outputDir = dir
}

// Format returns the encoder in use.
func (c *Capture) Format() Format { return c.format }

// CaptureFromPixels saves raw RGBA pixel data read back from the GPU.
// pixels must hold width*height*4 bytes, bottom row first.
func (c *Capture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)
	texture.FlipVertical(img)
	return c.CaptureFromImage(img)
}

// CaptureFromImage saves img.
func (c *Capture) CaptureFromImage(img image.Image) (string, error) {
	if c.outputDir != "" {
		if err := os.MkdirAll(c.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := c.GenerateFilename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := c.encode(file, img); err != nil {
		os.Remove(filename)
		return "", err
	}
	return filename, nil
}

func (c *Capture) encode(w io.Writer, img image.Image) error {
	switch c.format {
	case FormatWebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("encoding WebP: %w", err)
		}
	default:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
	}
	return nil
}

// GenerateFilename returns the path the next capture would be written to.
func (c *Capture) GenerateFilename() string {
	ext := c.format
	if ext == "" {
		ext = FormatPNG
	}
	timestamp := c.now().Format("2006-01-02_15-04-05.000")
	filename := fmt.Sprintf("%s_%s.%s", c.prefix, timestamp, ext)
	if c.outputDir != "" {
		filename = filepath.Join(c.outputDir, filename)
	}
	return filename
}
