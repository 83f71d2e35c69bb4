// Package canvas provides off-screen GUI canvases: surfaces rendered into a
// texture instead of a window, whose frames and input are routed elsewhere
// (for example onto a VR overlay).
package canvas

import (
	"fmt"

	"github.com/Faultbox/midgard-vr/internal/engine/input"
	"github.com/Faultbox/midgard-vr/internal/engine/signal"
	"github.com/Faultbox/midgard-vr/internal/gpu"
)

// DrawFunc renders one canvas frame into target.
type DrawFunc func(target gpu.RenderTarget)

// Offscreen is a canvas that renders into its own colour target.
type Offscreen struct {
	name          string
	width, height int

	device gpu.Device
	color  gpu.Texture
	target gpu.RenderTarget

	renderCount int
	active      bool
	deleted     bool

	rendered signal.Signal[*Offscreen]
	deleting signal.Signal[*Offscreen]

	events []input.InputEvent
	cursor [2]float32
}

// NewOffscreen allocates a width x height sRGB canvas on device.
func NewOffscreen(device gpu.Device, name string, width, height int) (*Offscreen, error) {
	c := &Offscreen{name: name, width: width, height: height, device: device}
	if err := c.setupTarget(); err != nil {
		return nil, fmt.Errorf("creating canvas %s: %w", name, err)
	}
	return c, nil
}

func (c *Offscreen) setupTarget() error {
	color, err := c.device.NewTexture(c.width, c.height, gpu.FormatRGBA8SRGB)
	if err != nil {
		return err
	}
	target, err := c.device.NewRenderTarget(color, nil)
	if err != nil {
		color.Release()
		return err
	}
	c.color, c.target = color, target
	return nil
}

func (c *Offscreen) teardownTarget() {
	if c.target != nil {
		c.target.Release()
		c.target = nil
	}
	if c.color != nil {
		c.color.Release()
		c.color = nil
	}
}

// Name returns the canvas name.
func (c *Offscreen) Name() string { return c.name }

// Extent returns the canvas size in pixels.
func (c *Offscreen) Extent() (width, height int) { return c.width, c.height }

// RenderCount returns how many frames have been rendered.
func (c *Offscreen) RenderCount() int { return c.renderCount }

// Target returns the render target, nil after Delete.
func (c *Offscreen) Target() gpu.RenderTarget { return c.target }

// Rendered is emitted after every frame.
func (c *Offscreen) Rendered() *signal.Signal[*Offscreen] { return &c.rendered }

// Deleting is emitted once, before the canvas releases its resources.
func (c *Offscreen) Deleting() *signal.Signal[*Offscreen] { return &c.deleting }

// IsActive reports whether this canvas currently receives pointer input.
func (c *Offscreen) IsActive() bool { return c.active }

// SetActive marks the canvas as the pointer input target.
func (c *Offscreen) SetActive(active bool) { c.active = active }

// Resize reallocates the target when the size changes.
func (c *Offscreen) Resize(width, height int) error {
	if width == c.width && height == c.height {
		return nil
	}
	c.teardownTarget()
	c.width, c.height = width, height
	if err := c.setupTarget(); err != nil {
		return fmt.Errorf("resizing canvas %s: %w", c.name, err)
	}
	return nil
}

// Render draws a frame and notifies subscribers.
func (c *Offscreen) Render(draw DrawFunc) {
	if c.deleted || c.target == nil {
		return
	}
	if draw != nil {
		draw(c.target)
	}
	c.renderCount++
	c.rendered.Emit(c)
}

// ProcessInputEvent queues an input event for the GUI. Axis events also
// move the canvas cursor.
func (c *Offscreen) ProcessInputEvent(ev input.InputEvent) bool {
	if c.deleted {
		return false
	}
	if ev.Type == input.ObjectAxis {
		switch ev.Object {
		case input.XAxis:
			c.cursor[0] = ev.Value
		case input.YAxis:
			c.cursor[1] = ev.Value
		}
	}
	c.events = append(c.events, ev)
	return true
}

// Cursor returns the last pointer position in canvas pixels.
func (c *Offscreen) Cursor() (x, y float32) { return c.cursor[0], c.cursor[1] }

// DrainEvents returns and clears the queued input events.
func (c *Offscreen) DrainEvents() []input.InputEvent {
	evs := c.events
	c.events = nil
	return evs
}

// Delete notifies subscribers and releases the target. Further calls are
// no-ops.
func (c *Offscreen) Delete() {
	if c.deleted {
		return
	}
	c.deleted = true
	c.deleting.Emit(c)
	c.teardownTarget()
}

// HandleTextureEvent drops the target on zombify and rebuilds it on
// resurrect.
func (c *Offscreen) HandleTextureEvent(ev gpu.TextureEvent) {
	if c.deleted {
		return
	}
	switch ev {
	case gpu.TextureZombify:
		c.teardownTarget()
	case gpu.TextureResurrect:
		if c.target == nil {
			c.setupTarget()
		}
	}
}
