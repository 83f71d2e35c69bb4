// Package gpu defines the narrow GPU device contract the VR core renders
// through: textures, render targets, native handles for compositor
// submission, and device lifecycle signals.
package gpu

import (
	"fmt"

	"github.com/Faultbox/midgard-vr/internal/engine/signal"
)

// AdapterType identifies the graphics API family behind a Device.
type AdapterType int

const (
	AdapterOpenGL AdapterType = iota
	AdapterDirect3D11
)

func (a AdapterType) String() string {
	switch a {
	case AdapterOpenGL:
		return "OpenGL"
	case AdapterDirect3D11:
		return "Direct3D11"
	}
	return fmt.Sprintf("AdapterType(%d)", int(a))
}

// Format is a texture storage format.
type Format int

const (
	FormatRGBA8 Format = iota
	FormatRGBA8SRGB
	FormatD24S8
)

func (f Format) String() string {
	switch f {
	case FormatRGBA8:
		return "RGBA8"
	case FormatRGBA8SRGB:
		return "RGBA8_SRGB"
	case FormatD24S8:
		return "D24S8"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// IsDepth reports whether f is a depth/stencil format.
func (f Format) IsDepth() bool { return f == FormatD24S8 }

// HandleKind tags the variant held by a NativeHandle.
type HandleKind int

const (
	HandleNone HandleKind = iota
	HandleD3D11Texture2D
	HandleOpenGLName
)

// NativeHandle is the backend object behind a Texture: an ID3D11Texture2D
// pointer or an OpenGL texture name.
type NativeHandle struct {
	Kind HandleKind
	Ptr  uintptr
	Name uint32
}

// D3D11Handle wraps an ID3D11Texture2D pointer.
func D3D11Handle(ptr uintptr) NativeHandle {
	return NativeHandle{Kind: HandleD3D11Texture2D, Ptr: ptr}
}

// OpenGLHandle wraps an OpenGL texture name.
func OpenGLHandle(name uint32) NativeHandle {
	return NativeHandle{Kind: HandleOpenGLName, Name: name}
}

// IsValid reports whether the handle refers to a live backend object.
func (h NativeHandle) IsValid() bool {
	switch h.Kind {
	case HandleD3D11Texture2D:
		return h.Ptr != 0
	case HandleOpenGLName:
		return h.Name != 0
	}
	return false
}

// Texture is a device texture.
type Texture interface {
	Size() (width, height int)
	Format() Format
	Native() NativeHandle
	Release()
}

// RenderTarget binds a colour and an optional depth texture for drawing.
type RenderTarget interface {
	Size() (width, height int)
	Color() Texture
	Depth() Texture
	// Resolve copies the colour attachment into dst, which must have the
	// same size.
	Resolve(dst Texture) error
	Release()
}

// DeviceEvent is broadcast by a Device around frame rendering.
type DeviceEvent int

const (
	DeviceStartOfFrame DeviceEvent = iota
	DeviceEndOfFrame
	DeviceLeftEyeRendered
	DeviceRightEyeRendered
	DeviceDestroy
)

func (e DeviceEvent) String() string {
	switch e {
	case DeviceStartOfFrame:
		return "StartOfFrame"
	case DeviceEndOfFrame:
		return "EndOfFrame"
	case DeviceLeftEyeRendered:
		return "LeftEyeRendered"
	case DeviceRightEyeRendered:
		return "RightEyeRendered"
	case DeviceDestroy:
		return "Destroy"
	}
	return fmt.Sprintf("DeviceEvent(%d)", int(e))
}

// TextureEvent is broadcast when device textures are lost or restored.
type TextureEvent int

const (
	TextureZombify TextureEvent = iota
	TextureResurrect
)

// Device allocates GPU resources and reports lifecycle events.
type Device interface {
	AdapterType() AdapterType
	NewTexture(width, height int, format Format) (Texture, error)
	NewRenderTarget(color, depth Texture) (RenderTarget, error)
	// LoadTexture decodes an image file into a colour texture.
	LoadTexture(path string, srgb bool) (Texture, error)
	DeviceEvents() *signal.Signal[DeviceEvent]
	TextureEvents() *signal.Signal[TextureEvent]
}
