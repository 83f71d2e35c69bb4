package overlay

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-vr/internal/engine/canvas"
	"github.com/Faultbox/midgard-vr/internal/engine/input"
	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/internal/vr/coords"
)

// PumpEvents drains the event queue of every live overlay.
func (m *Manager) PumpEvents() {
	if m.ovl == nil {
		return
	}
	for _, o := range m.All() {
		o.pumpEvents()
	}
}

func (o *Overlay) pumpEvents() {
	if !o.live() {
		return
	}
	var ev openvr.Event
	for o.m.ovl.PollNextOverlayEvent(o.handle, &ev) {
		o.handleEvent(ev)
		// The handler may have removed or reset this overlay.
		if !o.live() {
			return
		}
	}
	if o.thumb != openvr.InvalidOverlayHandle {
		for o.m.ovl.PollNextOverlayEvent(o.thumb, &ev) {
		}
	}
}

func (o *Overlay) handleEvent(ev openvr.Event) {
	switch ev.Type {
	case openvr.EventMouseMove:
		c := o.activeCanvas()
		if c == nil {
			return
		}
		w, h := c.Extent()
		x, y := canvasPoint(w, h, ev.Mouse.X, ev.Mouse.Y)
		c.ProcessInputEvent(input.AxisEvent(input.DeviceOverlay, input.XAxis, x))
		c.ProcessInputEvent(input.AxisEvent(input.DeviceOverlay, input.YAxis, y))

	case openvr.EventMouseButtonDown, openvr.EventMouseButtonUp:
		c := o.activeCanvas()
		if c == nil {
			return
		}
		btn, ok := coords.MouseButtonToEngine(ev.Mouse.Button)
		if !ok {
			return
		}
		c.ProcessInputEvent(input.ButtonEvent(input.DeviceOverlay, btn, ev.Type == openvr.EventMouseButtonDown))

	case openvr.EventOverlayShown:
		o.dirty = true

	case openvr.EventQuit:
		o.m.fatal("VR runtime requested quit", zap.String("overlay", o.key))

	case openvr.EventKeyboardClosed:
		o.m.sink.KeyboardClosed(o.id, ev.Keyboard.UserValue)

	case openvr.EventKeyboardCharInput:
		o.m.sink.KeyboardInput(o.id, ev.Keyboard.Text(), ev.Keyboard.UserValue)

	case openvr.EventKeyboardDone:
		if text := ev.Keyboard.Text(); text != "" {
			log().Warn("VR keyboard done carried input", zap.String("overlay", o.key), zap.String("text", text))
		}
		o.m.sink.KeyboardDone(o.id, ev.Keyboard.UserValue)

	default:
		log().Warn("VR unhandled overlay event",
			zap.String("overlay", o.key),
			zap.Stringer("event", ev.Type))
	}
}

// HandleKeyboardEvent forwards a keyboard event from the system queue. The
// overlay the keyboard belongs to, if any, is looked up by handle. It
// reports whether ev was a keyboard event.
func (m *Manager) HandleKeyboardEvent(ev openvr.Event) bool {
	id := m.byHandle(ev.Keyboard.Overlay)
	switch ev.Type {
	case openvr.EventKeyboardClosed:
		m.sink.KeyboardClosed(id, ev.Keyboard.UserValue)
	case openvr.EventKeyboardCharInput:
		m.sink.KeyboardInput(id, ev.Keyboard.Text(), ev.Keyboard.UserValue)
	case openvr.EventKeyboardDone:
		m.sink.KeyboardDone(id, ev.Keyboard.UserValue)
	default:
		return false
	}
	return true
}

// activeCanvas returns the canvas if it currently has input focus.
func (o *Overlay) activeCanvas() *canvas.Offscreen {
	if o.canvas == nil || !o.canvas.IsActive() {
		return nil
	}
	return o.canvas
}

// canvasPoint maps overlay mouse coordinates, 0..1 with the origin at the
// bottom left, to canvas pixels. A non-square canvas is letterboxed into the
// square mouse area along its shorter side.
func canvasPoint(width, height int, u, v float32) (x, y float32) {
	w, h := float32(width), float32(height)

	x = w * u
	if w < h {
		x = w * ((u - (h-w)/(2*h)) * (h / w))
	}
	y = h * (1 - v)
	if h < w {
		y = h * (1 - (v-(w-h)/(2*w))*(w/h))
	}
	return x, y
}
