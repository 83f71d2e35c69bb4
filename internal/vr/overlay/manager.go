package overlay

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/Faultbox/midgard-vr/internal/gpu"
	"github.com/Faultbox/midgard-vr/internal/logger"
	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/internal/vr/coords"
	"github.com/Faultbox/midgard-vr/internal/vr/events"
	"github.com/Faultbox/midgard-vr/pkg/math"
)

// Manager owns every overlay and the runtime overlay interface they share.
// Overlays are addressed by integer ids starting at 1; zero means none.
type Manager struct {
	ovl      openvr.Overlay
	device   gpu.Device
	universe *coords.TrackingUniverse
	sink     events.Sink
	fatal    func(string, ...zap.Field)

	overlays map[int]*Overlay
	nextID   int
}

// NewManager returns a manager with no runtime attached. Textures are loaded
// on device; absolute transforms use universe's origin.
func NewManager(device gpu.Device, universe *coords.TrackingUniverse, sink events.Sink) *Manager {
	if sink == nil {
		sink = events.Nop{}
	}
	return &Manager{
		device:   device,
		universe: universe,
		sink:     sink,
		fatal:    logger.Fatal,
		overlays: map[int]*Overlay{},
	}
}

// SetRuntime attaches or detaches (nil) the runtime overlay interface.
// Detaching drops every runtime handle; overlays are recreated on their next
// Update.
func (m *Manager) SetRuntime(ovl openvr.Overlay) {
	if ovl == m.ovl {
		return
	}
	m.Reset()
	m.ovl = ovl
}

// Runtime returns the attached overlay interface, or nil.
func (m *Manager) Runtime() openvr.Overlay { return m.ovl }

// SetSink replaces the event sink.
func (m *Manager) SetSink(sink events.Sink) {
	if sink == nil {
		sink = events.Nop{}
	}
	m.sink = sink
}

// SetFatal replaces the handler for a runtime quit request.
func (m *Manager) SetFatal(fatal func(string, ...zap.Field)) {
	m.fatal = fatal
}

func (m *Manager) origin() openvr.TrackingUniverseOrigin {
	if m.universe == nil {
		return openvr.TrackingUniverseStanding
	}
	return m.universe.Origin
}

// Add creates an overlay with the given display name and unique key. The
// runtime overlay is created on the first Update.
func (m *Manager) Add(name, key string) (*Overlay, error) {
	if key == "" {
		return nil, fmt.Errorf("adding overlay %q: empty key", name)
	}
	for _, o := range m.overlays {
		if o.key == key {
			return nil, fmt.Errorf("adding overlay %q: key %q in use", name, key)
		}
	}
	m.nextID++
	o := newOverlay(m, m.nextID, key, name)
	m.overlays[o.id] = o
	return o, nil
}

// Remove destroys an overlay and everything it holds.
func (m *Manager) Remove(id int) bool {
	o, ok := m.overlays[id]
	if !ok {
		return false
	}
	o.release()
	delete(m.overlays, id)

	for _, other := range m.overlays {
		if other.cursor == id {
			other.cursor = 0
		}
		if other.mountTo == id {
			other.mountTo = 0
		}
	}
	return true
}

// Get returns the overlay with the given id.
func (m *Manager) Get(id int) (*Overlay, bool) {
	o, ok := m.overlays[id]
	return o, ok
}

// All returns the overlays ordered by id.
func (m *Manager) All() []*Overlay {
	out := make([]*Overlay, 0, len(m.overlays))
	for _, o := range m.overlays {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Len returns the number of overlays.
func (m *Manager) Len() int { return len(m.overlays) }

// Reset destroys every runtime overlay but keeps the local overlays, which
// are recreated on their next Update.
func (m *Manager) Reset() {
	for _, o := range m.overlays {
		o.destroyHandles()
		o.releaseFileTextures()
		o.textureLoaded = false
		o.thumbnailLoaded = false
		o.typeDirty = true
		o.dirty = true
	}
}

// UpdateAll pushes pending changes of every overlay.
func (m *Manager) UpdateAll() {
	for _, o := range m.All() {
		o.Update()
	}
}

func (m *Manager) byHandle(h openvr.OverlayHandle) int {
	if h == openvr.InvalidOverlayHandle {
		return 0
	}
	for id, o := range m.overlays {
		if o.handle == h || o.thumb == h {
			return id
		}
	}
	return 0
}

// ShowKeyboard opens the virtual keyboard unattached to any overlay.
func (m *Manager) ShowKeyboard(req openvr.KeyboardRequest) bool {
	if m.ovl == nil {
		return false
	}
	if err := m.ovl.ShowKeyboard(req); err != nil {
		log().Error("VR keyboard failed", zap.Error(err))
		return false
	}
	return true
}

// HideKeyboard closes the virtual keyboard.
func (m *Manager) HideKeyboard() {
	if m.ovl != nil {
		m.ovl.HideKeyboard()
	}
}

// KeyboardText returns the keyboard's current text in NFC.
func (m *Manager) KeyboardText() string {
	if m.ovl == nil {
		return ""
	}
	return norm.NFC.String(m.ovl.KeyboardText())
}

// SetKeyboardTransformAbsolute places the keyboard in the tracking universe.
func (m *Manager) SetKeyboardTransformAbsolute(transform math.Mat4) {
	if m.ovl != nil {
		m.ovl.SetKeyboardTransformAbsolute(m.origin(), coords.AffineToRuntime(transform))
	}
}

// ShowMessageOverlay shows a modal message with up to four buttons and
// blocks until one is chosen.
func (m *Manager) ShowMessageOverlay(text, caption, button0, button1, button2, button3 string) openvr.MessageOverlayResponse {
	if m.ovl == nil {
		return openvr.MessageOverlayCouldntFindSystemOverlay
	}
	return m.ovl.ShowMessageOverlay(text, caption, button0, button1, button2, button3)
}

// CloseMessageOverlay dismisses the message overlay.
func (m *Manager) CloseMessageOverlay() {
	if m.ovl != nil {
		m.ovl.CloseMessageOverlay()
	}
}

// PrimaryDashboardDevice returns the device driving the dashboard, or -1.
func (m *Manager) PrimaryDashboardDevice() int {
	if m.ovl == nil {
		return -1
	}
	d := m.ovl.PrimaryDashboardDevice()
	if d == openvr.TrackedDeviceIndexInvalid {
		return -1
	}
	return int(d)
}
