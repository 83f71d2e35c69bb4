package gldevice

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-vr/internal/gpu"
)

// Texture is a GL texture object.
type Texture struct {
	name          uint32
	width, height int
	format        gpu.Format
}

func (t *Texture) Size() (int, int) { return t.width, t.height }
func (t *Texture) Format() gpu.Format { return t.format }
func (t *Texture) Native() gpu.NativeHandle { return gpu.OpenGLHandle(t.name) }

// Name returns the GL texture name, 0 once released.
func (t *Texture) Name() uint32 { return t.name }

func (t *Texture) Release() {
	if t.name != 0 {
		gl.DeleteTextures(1, &t.name)
		t.name = 0
	}
}
