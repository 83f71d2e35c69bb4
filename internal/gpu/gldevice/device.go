// Package gldevice implements gpu.Device on OpenGL 4.1 core.
//
// All methods must be called on the thread owning the GL context.
package gldevice

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-vr/internal/engine/signal"
	"github.com/Faultbox/midgard-vr/internal/engine/texture"
	"github.com/Faultbox/midgard-vr/internal/gpu"
)

// Device is an OpenGL gpu.Device.
type Device struct {
	deviceEvents  signal.Signal[gpu.DeviceEvent]
	textureEvents signal.Signal[gpu.TextureEvent]

	// resolveFBO is the draw framebuffer used when blitting into a texture.
	resolveFBO uint32
}

var _ gpu.Device = (*Device)(nil)

// New returns a device bound to the current GL context. gl.Init must have
// been called.
func New() *Device {
	return &Device{}
}

func (d *Device) AdapterType() gpu.AdapterType { return gpu.AdapterOpenGL }

func (d *Device) DeviceEvents() *signal.Signal[gpu.DeviceEvent] { return &d.deviceEvents }

func (d *Device) TextureEvents() *signal.Signal[gpu.TextureEvent] { return &d.textureEvents }

// BeginFrame broadcasts DeviceStartOfFrame.
func (d *Device) BeginFrame() { d.deviceEvents.Emit(gpu.DeviceStartOfFrame) }

// EndFrame broadcasts DeviceEndOfFrame.
func (d *Device) EndFrame() { d.deviceEvents.Emit(gpu.DeviceEndOfFrame) }

// EyeRendered broadcasts the eye-rendered event for eye 0 (left) or 1 (right).
func (d *Device) EyeRendered(eye int) {
	if eye == 0 {
		d.deviceEvents.Emit(gpu.DeviceLeftEyeRendered)
		return
	}
	d.deviceEvents.Emit(gpu.DeviceRightEyeRendered)
}

// Zombify tells texture owners that device resources are about to be lost.
func (d *Device) Zombify() { d.textureEvents.Emit(gpu.TextureZombify) }

// Resurrect tells texture owners that resources may be recreated.
func (d *Device) Resurrect() { d.textureEvents.Emit(gpu.TextureResurrect) }

// Destroy broadcasts DeviceDestroy and releases device-owned objects.
func (d *Device) Destroy() {
	d.deviceEvents.Emit(gpu.DeviceDestroy)
	if d.resolveFBO != 0 {
		gl.DeleteFramebuffers(1, &d.resolveFBO)
		d.resolveFBO = 0
	}
}

// NewTexture allocates an uninitialised texture.
func (d *Device) NewTexture(width, height int, format gpu.Format) (gpu.Texture, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("creating texture: invalid size %dx%d", width, height)
	}
	t := &Texture{width: width, height: height, format: format}
	gl.GenTextures(1, &t.name)
	gl.BindTexture(gl.TEXTURE_2D, t.name)
	internal, pixFormat, pixType := glFormat(format)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(width), int32(height), 0, pixFormat, pixType, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if e := gl.GetError(); e != gl.NO_ERROR {
		t.Release()
		return nil, fmt.Errorf("creating %s texture: gl error 0x%x", format, e)
	}
	return t, nil
}

// LoadTexture decodes an image file and uploads it.
func (d *Device) LoadTexture(path string, srgb bool) (gpu.Texture, error) {
	img, err := texture.Load(path)
	if err != nil {
		return nil, err
	}
	return d.Upload(img, srgb)
}

// Upload creates a colour texture from img.
func (d *Device) Upload(img *image.RGBA, srgb bool) (gpu.Texture, error) {
	format := gpu.FormatRGBA8
	if srgb {
		format = gpu.FormatRGBA8SRGB
	}
	b := img.Bounds()
	tex, err := d.NewTexture(b.Dx(), b.Dy(), format)
	if err != nil {
		return nil, err
	}
	t := tex.(*Texture)
	gl.BindTexture(gl.TEXTURE_2D, t.name)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(b.Dx()), int32(b.Dy()), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

// ReadPixels reads a colour texture back as RGBA8, top row first.
func (d *Device) ReadPixels(tex gpu.Texture) (*image.RGBA, error) {
	t, ok := tex.(*Texture)
	if !ok || t.name == 0 {
		return nil, fmt.Errorf("reading pixels: not a live GL texture")
	}
	if t.format.IsDepth() {
		return nil, fmt.Errorf("reading pixels: %s is a depth format", t.format)
	}
	img := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	gl.BindTexture(gl.TEXTURE_2D, t.name)
	gl.GetTexImage(gl.TEXTURE_2D, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	texture.FlipVertical(img)
	return img, nil
}

// NewRenderTarget attaches color (and depth, if non-nil) to a framebuffer.
func (d *Device) NewRenderTarget(color, depth gpu.Texture) (gpu.RenderTarget, error) {
	c, ok := color.(*Texture)
	if !ok {
		return nil, fmt.Errorf("creating render target: colour is not a GL texture")
	}
	rt := &RenderTarget{device: d, color: c}
	if depth != nil {
		dt, ok := depth.(*Texture)
		if !ok {
			return nil, fmt.Errorf("creating render target: depth is not a GL texture")
		}
		if dt.width != c.width || dt.height != c.height {
			return nil, fmt.Errorf("creating render target: depth %dx%d does not match colour %dx%d",
				dt.width, dt.height, c.width, c.height)
		}
		rt.depth = dt
	}
	if err := rt.create(); err != nil {
		return nil, fmt.Errorf("creating render target: %w", err)
	}
	return rt, nil
}

func (d *Device) resolveFramebuffer() uint32 {
	if d.resolveFBO == 0 {
		gl.GenFramebuffers(1, &d.resolveFBO)
	}
	return d.resolveFBO
}

func glFormat(f gpu.Format) (internal int32, format, xtype uint32) {
	switch f {
	case gpu.FormatRGBA8SRGB:
		return gl.SRGB8_ALPHA8, gl.RGBA, gl.UNSIGNED_BYTE
	case gpu.FormatD24S8:
		return gl.DEPTH24_STENCIL8, gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8
	default:
		return gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE
	}
}

// Present blits a colour texture into the default framebuffer, scaled to
// width x height.
func (d *Device) Present(tex gpu.Texture, width, height int) error {
	t, ok := tex.(*Texture)
	if !ok || t.name == 0 {
		return fmt.Errorf("presenting: not a live GL texture")
	}
	read := d.resolveFramebuffer()
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, read)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.name, 0)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, int32(t.width), int32(t.height), 0, 0, int32(width), int32(height), gl.COLOR_BUFFER_BIT, gl.LINEAR)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("presenting: gl error 0x%x", e)
	}
	return nil
}
