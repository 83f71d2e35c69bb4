package gldevice

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-vr/internal/gpu"
)

// RenderTarget is a framebuffer object with a colour and optional
// depth/stencil texture attachment. It does not own its textures.
type RenderTarget struct {
	device *Device
	fbo    uint32
	color  *Texture
	depth  *Texture
}

func (rt *RenderTarget) create() error {
	gl.GenFramebuffers(1, &rt.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, rt.color.name, 0)
	if rt.depth != nil {
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.TEXTURE_2D, rt.depth.name, 0)
	}

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		rt.Release()
		return fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return nil
}

func (rt *RenderTarget) Size() (int, int) { return rt.color.width, rt.color.height }

func (rt *RenderTarget) Color() gpu.Texture { return rt.color }

func (rt *RenderTarget) Depth() gpu.Texture {
	if rt.depth == nil {
		return nil
	}
	return rt.depth
}

// FBO returns the framebuffer object name.
func (rt *RenderTarget) FBO() uint32 { return rt.fbo }

// Bind makes this target current and returns a function restoring the
// previous framebuffer and viewport.
func (rt *RenderTarget) Bind() func() {
	var prevFBO int32
	var prevViewport [4]int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	gl.GetIntegerv(gl.VIEWPORT, &prevViewport[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.fbo)
	gl.Viewport(0, 0, int32(rt.color.width), int32(rt.color.height))

	return func() {
		gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))
		gl.Viewport(prevViewport[0], prevViewport[1], prevViewport[2], prevViewport[3])
	}
}

// Resolve blits the colour attachment into dst.
func (rt *RenderTarget) Resolve(dst gpu.Texture) error {
	d, ok := dst.(*Texture)
	if !ok || d.name == 0 {
		return fmt.Errorf("resolving: destination is not a live GL texture")
	}
	if d.width != rt.color.width || d.height != rt.color.height {
		return fmt.Errorf("resolving: destination %dx%d does not match %dx%d",
			d.width, d.height, rt.color.width, rt.color.height)
	}

	var prevRead, prevDraw int32
	gl.GetIntegerv(gl.READ_FRAMEBUFFER_BINDING, &prevRead)
	gl.GetIntegerv(gl.DRAW_FRAMEBUFFER_BINDING, &prevDraw)

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, rt.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, rt.device.resolveFramebuffer())
	gl.FramebufferTexture2D(gl.DRAW_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, d.name, 0)

	w, h := int32(d.width), int32(d.height)
	gl.BlitFramebuffer(0, 0, w, h, 0, 0, w, h, gl.COLOR_BUFFER_BIT, gl.NEAREST)

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, uint32(prevRead))
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, uint32(prevDraw))

	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("resolving: gl error 0x%x", e)
	}
	return nil
}

// Release deletes the framebuffer object. Attached textures are left to
// their owner.
func (rt *RenderTarget) Release() {
	if rt.fbo != 0 {
		gl.DeleteFramebuffers(1, &rt.fbo)
		rt.fbo = 0
	}
}
