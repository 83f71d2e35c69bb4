// Package gputest provides an in-memory gpu.Device for tests and headless
// runs.
package gputest

import (
	"fmt"

	"github.com/Faultbox/midgard-vr/internal/engine/signal"
	"github.com/Faultbox/midgard-vr/internal/gpu"
)

// Texture is a fake texture with a unique native handle.
type Texture struct {
	W, H     int
	F        gpu.Format
	Handle   gpu.NativeHandle
	Released bool
	// Path is set for textures created by LoadTexture.
	Path string
}

func (t *Texture) Size() (int, int) { return t.W, t.H }
func (t *Texture) Format() gpu.Format { return t.F }
func (t *Texture) Native() gpu.NativeHandle { return t.Handle }
func (t *Texture) Release() { t.Released = true }

// Resolve records one RenderTarget.Resolve call.
type Resolve struct {
	Target *RenderTarget
	Dst    *Texture
}

// RenderTarget is a fake render target.
type RenderTarget struct {
	device   *Device
	color    *Texture
	depth    *Texture
	Released bool
}

func (rt *RenderTarget) Size() (int, int) { return rt.color.W, rt.color.H }
func (rt *RenderTarget) Color() gpu.Texture { return rt.color }
func (rt *RenderTarget) Release() { rt.Released = true }

func (rt *RenderTarget) Depth() gpu.Texture {
	if rt.depth == nil {
		return nil
	}
	return rt.depth
}

func (rt *RenderTarget) Resolve(dst gpu.Texture) error {
	d, ok := dst.(*Texture)
	if !ok {
		return fmt.Errorf("resolving: foreign texture %T", dst)
	}
	if rt.device.ResolveErr != nil {
		return rt.device.ResolveErr
	}
	rt.device.Resolves = append(rt.device.Resolves, Resolve{Target: rt, Dst: d})
	return nil
}

// Device is a scriptable gpu.Device. Handles are assigned sequentially and
// take the form matching Adapter.
type Device struct {
	Adapter gpu.AdapterType

	// TextureErr, when set, fails every NewTexture call.
	TextureErr error
	// LoadErrs fails LoadTexture for the listed paths.
	LoadErrs   map[string]error
	ResolveErr error

	Textures []*Texture
	Targets  []*RenderTarget
	Resolves []Resolve
	Loads    []string

	next          uint32
	deviceEvents  signal.Signal[gpu.DeviceEvent]
	textureEvents signal.Signal[gpu.TextureEvent]
}

var _ gpu.Device = (*Device)(nil)

// New returns a fake device of the given adapter type.
func New(adapter gpu.AdapterType) *Device {
	return &Device{Adapter: adapter, LoadErrs: map[string]error{}}
}

func (d *Device) AdapterType() gpu.AdapterType { return d.Adapter }

func (d *Device) DeviceEvents() *signal.Signal[gpu.DeviceEvent] { return &d.deviceEvents }

func (d *Device) TextureEvents() *signal.Signal[gpu.TextureEvent] { return &d.textureEvents }

func (d *Device) NewTexture(width, height int, format gpu.Format) (gpu.Texture, error) {
	if d.TextureErr != nil {
		return nil, d.TextureErr
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("creating texture: invalid size %dx%d", width, height)
	}
	return d.newTexture(width, height, format), nil
}

func (d *Device) newTexture(width, height int, format gpu.Format) *Texture {
	d.next++
	t := &Texture{W: width, H: height, F: format}
	if d.Adapter == gpu.AdapterDirect3D11 {
		t.Handle = gpu.D3D11Handle(uintptr(0x10000 + d.next*0x100))
	} else {
		t.Handle = gpu.OpenGLHandle(d.next)
	}
	d.Textures = append(d.Textures, t)
	return t
}

func (d *Device) NewRenderTarget(color, depth gpu.Texture) (gpu.RenderTarget, error) {
	c, ok := color.(*Texture)
	if !ok {
		return nil, fmt.Errorf("creating render target: foreign texture %T", color)
	}
	rt := &RenderTarget{device: d, color: c}
	if depth != nil {
		dt, ok := depth.(*Texture)
		if !ok {
			return nil, fmt.Errorf("creating render target: foreign texture %T", depth)
		}
		rt.depth = dt
	}
	d.Targets = append(d.Targets, rt)
	return rt, nil
}

// LoadTexture returns a 64x64 texture without touching the filesystem.
func (d *Device) LoadTexture(path string, srgb bool) (gpu.Texture, error) {
	d.Loads = append(d.Loads, path)
	if err := d.LoadErrs[path]; err != nil {
		return nil, err
	}
	format := gpu.FormatRGBA8
	if srgb {
		format = gpu.FormatRGBA8SRGB
	}
	t := d.newTexture(64, 64, format)
	t.Path = path
	return t, nil
}

// Live returns the textures not yet released.
func (d *Device) Live() []*Texture {
	var live []*Texture
	for _, t := range d.Textures {
		if !t.Released {
			live = append(live, t)
		}
	}
	return live
}
