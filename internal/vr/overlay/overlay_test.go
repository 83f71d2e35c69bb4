package overlay

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-vr/internal/engine/canvas"
	"github.com/Faultbox/midgard-vr/internal/engine/input"
	"github.com/Faultbox/midgard-vr/internal/gpu"
	"github.com/Faultbox/midgard-vr/internal/gpu/gputest"
	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/internal/openvr/openvrtest"
	"github.com/Faultbox/midgard-vr/internal/vr/coords"
	"github.com/Faultbox/midgard-vr/internal/vr/events"
	"github.com/Faultbox/midgard-vr/pkg/math"
)

type fixture struct {
	m   *Manager
	ovl *openvrtest.Overlay
	dev *gputest.Device
	rec *events.Recorder

	fatals []string
}

func newFixture(t *testing.T, adapter gpu.AdapterType) *fixture {
	t.Helper()
	f := &fixture{
		ovl: openvrtest.NewOverlay(),
		dev: gputest.New(adapter),
		rec: &events.Recorder{},
	}
	universe := coords.NewTrackingUniverse()
	f.m = NewManager(f.dev, &universe, f.rec)
	f.m.SetRuntime(f.ovl)
	f.m.SetFatal(func(msg string, _ ...zap.Field) { f.fatals = append(f.fatals, msg) })
	return f
}

func (f *fixture) add(t *testing.T, key string) *Overlay {
	t.Helper()
	o, err := f.m.Add("Overlay "+key, key)
	if err != nil {
		t.Fatalf("Add(%s): %v", key, err)
	}
	return o
}

func (f *fixture) state(t *testing.T, o *Overlay) *openvrtest.OverlayState {
	t.Helper()
	st := f.ovl.Overlays[o.Handle()]
	if st == nil {
		t.Fatalf("overlay %s has no runtime state", o.Key())
	}
	return st
}

func countCalls(calls []string, name string) int {
	n := 0
	for _, c := range calls {
		if c == name {
			n++
		}
	}
	return n
}

func TestAddAssignsIDs(t *testing.T) {
	f := newFixture(t, gpu.AdapterDirect3D11)

	a := f.add(t, "a")
	b := f.add(t, "b")
	if a.ID() != 1 || b.ID() != 2 {
		t.Errorf("ids: got %d %d, want 1 2", a.ID(), b.ID())
	}
	if _, err := f.m.Add("again", "a"); err == nil {
		t.Error("duplicate key accepted")
	}
	if _, err := f.m.Add("empty", ""); err == nil {
		t.Error("empty key accepted")
	}
	if !a.Dirty() || !a.TypeDirty() {
		t.Error("new overlay should be dirty and type-dirty")
	}
	if a.Handle() != openvr.InvalidOverlayHandle {
		t.Error("runtime overlay created before Update")
	}

	all := f.m.All()
	if len(all) != 2 || all[0] != a || all[1] != b {
		t.Errorf("All: got %d overlays", len(all))
	}
}

func TestFirstUpdatePushesDefaults(t *testing.T) {
	f := newFixture(t, gpu.AdapterDirect3D11)
	o := f.add(t, "hud")

	o.Update()
	if o.Dirty() || o.TypeDirty() {
		t.Error("overlay still dirty after Update")
	}
	st := f.state(t, o)

	if st.MouseScale != (openvr.Vector2{1, 1}) {
		t.Errorf("mouse scale: got %v", st.MouseScale)
	}
	if st.Color != [3]float32{1, 1, 1} || st.Alpha != 1 {
		t.Errorf("colour: got %v alpha %v", st.Color, st.Alpha)
	}
	if st.Width != 1.5 {
		t.Errorf("width: got %v, want 1.5", st.Width)
	}
	if st.TexelAspect != 1 || st.SortOrder != 0 || st.Curvature != 0 {
		t.Errorf("aspect/sort/curvature: got %v %v %v", st.TexelAspect, st.SortOrder, st.Curvature)
	}
	if st.InputMethod != openvr.OverlayInputMethodNone {
		t.Errorf("input method: got %v", st.InputMethod)
	}
	if want := (openvr.TextureBounds{UMin: 0, VMin: 0, UMax: 1, VMax: 1}); st.Bounds != want {
		t.Errorf("bounds: got %+v, want %+v", st.Bounds, want)
	}
	if st.TransformKind != openvrtest.TransformAbsolute || st.Origin != openvr.TrackingUniverseStanding {
		t.Errorf("transform: got %s origin %v", st.TransformKind, st.Origin)
	}
	if st.Transform != coords.AffineToRuntime(math.Identity()) {
		t.Errorf("transform matrix: got %v", st.Transform)
	}

	// Nothing changed, so a second Update pushes nothing.
	before := len(f.ovl.Calls)
	o.Update()
	if len(f.ovl.Calls) != before {
		t.Errorf("clean Update made %d calls", len(f.ovl.Calls)-before)
	}
}

func TestBoundsFlipOnOpenGL(t *testing.T) {
	for _, tc := range []struct {
		adapter gpu.AdapterType
		want    openvr.TextureBounds
	}{
		{gpu.AdapterDirect3D11, openvr.TextureBounds{UMin: 0.25, VMin: 0.125, UMax: 0.75, VMax: 0.875}},
		{gpu.AdapterOpenGL, openvr.TextureBounds{UMin: 0.25, VMin: 0.875, UMax: 0.75, VMax: 0.125}},
	} {
		t.Run(tc.adapter.String(), func(t *testing.T) {
			f := newFixture(t, tc.adapter)
			o := f.add(t, "hud")
			o.SetUVBounds(math.Vec2{X: 0.25, Y: 0.125}, math.Vec2{X: 0.75, Y: 0.875})
			o.Update()
			if got := f.state(t, o).Bounds; got != tc.want {
				t.Errorf("bounds: got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestFlagsPushedOneAtATime(t *testing.T) {
	f := newFixture(t, gpu.AdapterDirect3D11)
	o := f.add(t, "hud")

	o.SetFlags(openvr.OverlayFlagsSideBySideParallel | openvr.OverlayFlagsTransferOwnershipToInternalProcess)
	if o.Flags() != openvr.OverlayFlagsSideBySideParallel {
		t.Errorf("unsupported flag kept: got %b", o.Flags())
	}

	o.Update()
	if got := countCalls(f.ovl.Calls, "SetOverlayFlag"); got != 16 {
		t.Errorf("SetOverlayFlag calls: got %d, want 16", got)
	}
	if got := f.state(t, o).Flags; got != openvr.OverlayFlagsSideBySideParallel {
		t.Errorf("runtime flags: got %b", got)
	}

	o.SetFlag(openvr.OverlayFlagsSideBySideParallel, false)
	o.SetFlag(openvr.OverlayFlagsPanorama, true)
	o.Update()
	if got := f.state(t, o).Flags; got != openvr.OverlayFlagsPanorama {
		t.Errorf("runtime flags after toggle: got %b", got)
	}
}

func TestKindChangeRecreates(t *testing.T) {
	f := newFixture(t, gpu.AdapterDirect3D11)
	o := f.add(t, "menu")
	o.Update()
	first := o.Handle()

	o.SetKind(KindDashboard)
	if !o.TypeDirty() {
		t.Fatal("SetKind did not mark type-dirty")
	}
	o.Update()
	if _, ok := f.ovl.Overlays[first]; ok {
		t.Error("old overlay not destroyed")
	}
	if o.Handle() == openvr.InvalidOverlayHandle || o.ThumbnailHandle() == openvr.InvalidOverlayHandle {
		t.Fatal("dashboard handles not created")
	}
	if f.ovl.Count() != 2 {
		t.Errorf("runtime overlays: got %d, want 2", f.ovl.Count())
	}

	o.Show()
	if len(f.ovl.DashboardsShown) != 1 || f.ovl.DashboardsShown[0] != "menu" {
		t.Errorf("dashboards shown: got %v", f.ovl.DashboardsShown)
	}
	if f.state(t, o).Visible {
		t.Error("dashboard shown as in-world overlay")
	}
	o.Hide()
	if countCalls(f.ovl.Calls, "HideOverlay") != 0 {
		t.Error("Hide touched a dashboard overlay")
	}

	o.SetKind(KindOverlay)
	o.Show()
	if f.ovl.Count() != 1 || !o.IsVisible() {
		t.Errorf("back to overlay: count %d visible %v", f.ovl.Count(), o.IsVisible())
	}
	o.Hide()
	if o.IsVisible() {
		t.Error("overlay still visible after Hide")
	}
}

func TestTransformKinds(t *testing.T) {
	f := newFixture(t, gpu.AdapterDirect3D11)
	parent := f.add(t, "parent")
	o := f.add(t, "child")

	o.SetTransformKind(TransformDeviceRelative)
	o.SetTransformDevice(2)
	o.Update()
	st := f.state(t, o)
	if st.TransformKind != openvrtest.TransformDeviceRelative || st.Device != 2 {
		t.Errorf("device relative: got %s device %d", st.TransformKind, st.Device)
	}

	o.SetTransformKind(TransformComponent)
	o.SetTransformComponent("tip")
	o.Update()
	if st.TransformKind != openvrtest.TransformDeviceComponent || st.Component != "tip" {
		t.Errorf("component: got %s %q", st.TransformKind, st.Component)
	}

	m := math.Identity()
	m.SetPosition(math.Vec3{X: 0.25, Y: 0.5})
	o.SetTransform(m)
	o.SetTransformKind(TransformCursor)
	o.Update()
	if st.TransformKind != openvrtest.TransformCursor || st.Hotspot != (openvr.Vector2{0.25, 0.5}) {
		t.Errorf("cursor: got %s hotspot %v", st.TransformKind, st.Hotspot)
	}

	// The parent is not live yet, so nothing is pushed.
	o.SetTransformKind(TransformMountable)
	o.SetMountToOverlay(parent.ID())
	o.Update()
	if st.TransformKind != openvrtest.TransformCursor {
		t.Errorf("mount to dead parent pushed %s", st.TransformKind)
	}

	parent.Update()
	o.MarkDirty()
	o.Update()
	if st.TransformKind != openvrtest.TransformOverlayRelative || st.Parent != parent.Handle() {
		t.Errorf("mountable: got %s parent %d", st.TransformKind, st.Parent)
	}

	f.m.Remove(parent.ID())
	if o.MountToOverlay() != 0 {
		t.Error("removed parent still referenced")
	}
}

func TestParseTransformKind(t *testing.T) {
	for k := TransformAbsolute; k <= TransformMountable; k++ {
		got, err := ParseTransformKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseTransformKind(%q): got %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseTransformKind("sideways"); err == nil {
		t.Error("unknown transform parsed")
	}
}

func TestTextureFile(t *testing.T) {
	f := newFixture(t, gpu.AdapterDirect3D11)
	o := f.add(t, "hud")

	path := filepath.Join(t.TempDir(), "panel.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	o.SetTextureFile(path)
	if o.TextureLoaded() || len(f.dev.Loads) != 0 {
		t.Error("texture loaded before the overlay was live")
	}

	o.Update()
	if !o.TextureLoaded() {
		t.Fatal("texture not loaded on Update")
	}
	tex := f.state(t, o).Texture
	if tex == nil || tex.Type != openvr.TextureTypeDirectX || tex.ColorSpace != openvr.ColorSpaceAuto {
		t.Fatalf("runtime texture: got %+v", tex)
	}
	loaded := f.dev.Textures[len(f.dev.Textures)-1]
	if loaded.F != gpu.FormatRGBA8SRGB {
		t.Errorf("texture format: got %v, want sRGB", loaded.F)
	}

	o.SetTextureFile(path)
	if len(f.dev.Loads) != 1 {
		t.Errorf("same file reloaded: %d loads", len(f.dev.Loads))
	}

	o.SetTextureFile(filepath.Join(t.TempDir(), "missing.png"))
	if o.TextureLoaded() || len(f.dev.Loads) != 1 {
		t.Error("missing file should not load")
	}
	if loaded.Released {
		t.Error("texture released before being replaced")
	}

	f.m.Remove(o.ID())
	if !loaded.Released {
		t.Error("texture not released with its overlay")
	}
	if f.ovl.Count() != 0 {
		t.Errorf("runtime overlays after Remove: got %d", f.ovl.Count())
	}
}

func TestTextureLoadFailure(t *testing.T) {
	f := newFixture(t, gpu.AdapterOpenGL)
	o := f.add(t, "hud")
	o.Update()

	path := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	f.dev.LoadErrs[path] = errors.New("corrupt")
	o.SetTextureFile(path)
	if o.TextureLoaded() {
		t.Error("failed load reported as loaded")
	}
	if f.state(t, o).Texture != nil {
		t.Error("runtime received a texture")
	}
}

func TestCanvasFrames(t *testing.T) {
	f := newFixture(t, gpu.AdapterOpenGL)
	o := f.add(t, "gui")

	c, err := canvas.NewOffscreen(f.dev, "gui", 200, 100)
	if err != nil {
		t.Fatal(err)
	}
	o.SetCanvas(c)
	c.Render(nil)
	if o.Handle() != openvr.InvalidOverlayHandle {
		t.Error("canvas frame created the runtime overlay")
	}

	o.Update()
	c.Render(nil)
	tex := f.state(t, o).Texture
	if tex == nil {
		t.Fatal("canvas frame not submitted")
	}
	want := coords.RuntimeTexture(c.Target().Color().Native(), openvr.ColorSpaceAuto)
	if *tex != want {
		t.Errorf("submitted texture: got %+v, want %+v", *tex, want)
	}

	// A dirty overlay is updated before the frame goes out.
	o.SetWidth(3)
	c.Render(nil)
	if got := f.state(t, o).Width; got != 3 || o.Dirty() {
		t.Errorf("width after frame: got %v dirty %v", got, o.Dirty())
	}

	c.Delete()
	if o.Canvas() != nil {
		t.Error("deleted canvas still attached")
	}
	if c.Rendered().Len() != 0 || c.Deleting().Len() != 0 {
		t.Error("subscriptions left on deleted canvas")
	}
}

func TestSetCanvasSubmitsRenderedFrame(t *testing.T) {
	f := newFixture(t, gpu.AdapterDirect3D11)
	o := f.add(t, "gui")
	o.Update()

	c, err := canvas.NewOffscreen(f.dev, "gui", 64, 64)
	if err != nil {
		t.Fatal(err)
	}
	c.Render(nil)
	o.SetCanvas(c)
	if f.state(t, o).Texture == nil {
		t.Error("already rendered canvas not submitted on attach")
	}

	o.SetCanvas(nil)
	if c.Rendered().Len() != 0 {
		t.Error("detached canvas still subscribed")
	}
}

func TestCanvasPoint(t *testing.T) {
	for _, tc := range []struct {
		w, h   int
		u, v   float32
		wx, wy float32
	}{
		{100, 100, 0.25, 0.75, 25, 25},
		{200, 100, 0.5, 0.5, 100, 50},
		{100, 200, 0.5, 0.5, 50, 100},
		{200, 100, 0, 0.75, 0, 0},
	} {
		x, y := canvasPoint(tc.w, tc.h, tc.u, tc.v)
		if x != tc.wx || y != tc.wy {
			t.Errorf("canvasPoint(%d, %d, %v, %v): got (%v, %v), want (%v, %v)",
				tc.w, tc.h, tc.u, tc.v, x, y, tc.wx, tc.wy)
		}
	}
}

func TestPumpMouseEvents(t *testing.T) {
	f := newFixture(t, gpu.AdapterDirect3D11)
	o := f.add(t, "gui")
	c, err := canvas.NewOffscreen(f.dev, "gui", 200, 100)
	if err != nil {
		t.Fatal(err)
	}
	o.SetCanvas(c)
	o.Update()

	move := openvr.Event{Type: openvr.EventMouseMove, Mouse: openvr.MouseEvent{X: 0.5, Y: 0.5}}
	down := openvr.Event{Type: openvr.EventMouseButtonDown, Mouse: openvr.MouseEvent{Button: openvr.MouseButtonLeft}}

	// An inactive canvas gets nothing.
	f.ovl.Push(o.Handle(), move)
	f.ovl.Push(o.Handle(), down)
	f.m.PumpEvents()
	if evs := c.DrainEvents(); len(evs) != 0 {
		t.Errorf("inactive canvas got %d events", len(evs))
	}

	c.SetActive(true)
	f.ovl.Push(o.Handle(), move)
	f.ovl.Push(o.Handle(), down)
	f.ovl.Push(o.Handle(), openvr.Event{Type: openvr.EventMouseButtonUp, Mouse: openvr.MouseEvent{Button: openvr.MouseButtonLeft}})
	f.m.PumpEvents()

	want := []input.InputEvent{
		input.AxisEvent(input.DeviceOverlay, input.XAxis, 100),
		input.AxisEvent(input.DeviceOverlay, input.YAxis, 50),
		input.ButtonEvent(input.DeviceOverlay, input.Button0, true),
		input.ButtonEvent(input.DeviceOverlay, input.Button0, false),
	}
	got := c.DrainEvents()
	if len(got) != len(want) {
		t.Fatalf("events: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
	if x, y := c.Cursor(); x != 100 || y != 50 {
		t.Errorf("cursor: got (%v, %v), want (100, 50)", x, y)
	}
}

func TestPumpKeyboardAndLifecycleEvents(t *testing.T) {
	f := newFixture(t, gpu.AdapterDirect3D11)
	o := f.add(t, "kb")
	o.SetKind(KindDashboard)
	o.Update()

	char := openvr.Event{Type: openvr.EventKeyboardCharInput}
	copy(char.Keyboard.NewInput[:], "ab")
	char.Keyboard.UserValue = 9

	f.ovl.Push(o.Handle(), char)
	f.ovl.Push(o.Handle(), openvr.Event{Type: openvr.EventKeyboardClosed, Keyboard: openvr.KeyboardEvent{UserValue: 9}})
	f.ovl.Push(o.Handle(), openvr.Event{Type: openvr.EventKeyboardDone, Keyboard: openvr.KeyboardEvent{UserValue: 9}})
	f.ovl.Push(o.Handle(), openvr.Event{Type: openvr.EventOverlayShown})
	f.ovl.Push(o.Handle(), openvr.Event{Type: openvr.EventQuit})
	f.ovl.Push(o.ThumbnailHandle(), openvr.Event{Type: openvr.EventMouseMove})
	f.m.PumpEvents()

	want := []events.Kind{events.KindKeyboardInput, events.KindKeyboardClosed, events.KindKeyboardDone}
	got := f.rec.Kinds()
	if len(got) != len(want) {
		t.Fatalf("records: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d: got %v, want %v", i, got[i], want[i])
		}
	}
	in := f.rec.Of(events.KindKeyboardInput)[0]
	if in.Overlay != o.ID() || in.Text != "ab" || in.Cookie != 9 {
		t.Errorf("keyboard input: got %+v", in)
	}

	if !o.Dirty() {
		t.Error("overlay shown did not mark dirty")
	}
	if len(f.fatals) != 1 {
		t.Errorf("quit: got %d fatal calls, want 1", len(f.fatals))
	}
	if n := len(f.ovl.Overlays[o.ThumbnailHandle()].Events); n != 0 {
		t.Errorf("thumbnail queue: %d events left", n)
	}
}

func TestHandleKeyboardEvent(t *testing.T) {
	f := newFixture(t, gpu.AdapterDirect3D11)
	o := f.add(t, "kb")
	o.Update()

	ev := openvr.Event{Type: openvr.EventKeyboardDone, Keyboard: openvr.KeyboardEvent{Overlay: o.Handle(), UserValue: 4}}
	if !f.m.HandleKeyboardEvent(ev) {
		t.Fatal("keyboard event not handled")
	}
	done := f.rec.Of(events.KindKeyboardDone)
	if len(done) != 1 || done[0].Overlay != o.ID() || done[0].Cookie != 4 {
		t.Errorf("done: got %+v", done)
	}

	ev = openvr.Event{Type: openvr.EventKeyboardClosed}
	f.m.HandleKeyboardEvent(ev)
	if closed := f.rec.Of(events.KindKeyboardClosed); len(closed) != 1 || closed[0].Overlay != 0 {
		t.Errorf("global keyboard closed: got %+v", closed)
	}
	if f.m.HandleKeyboardEvent(openvr.Event{Type: openvr.EventQuit}) {
		t.Error("quit treated as a keyboard event")
	}
}

func TestKeyboard(t *testing.T) {
	f := newFixture(t, gpu.AdapterDirect3D11)
	o := f.add(t, "kb")
	o.Update()

	f.ovl.KeyboardTextValue = "cafe\u0301"
	if got := f.m.KeyboardText(); got != "caf\u00e9" {
		t.Errorf("KeyboardText: got %q, want NFC", got)
	}

	if !o.ShowKeyboardForOverlay(openvr.KeyboardRequest{Description: "Name", MaxChars: 16}) {
		t.Fatal("ShowKeyboardForOverlay failed")
	}
	if f.ovl.KeyboardOverlay != o.Handle() || f.ovl.KeyboardRequest.MaxChars != 16 {
		t.Errorf("keyboard request: overlay %d %+v", f.ovl.KeyboardOverlay, f.ovl.KeyboardRequest)
	}
	if f.m.ShowKeyboard(openvr.KeyboardRequest{}) {
		t.Error("second keyboard opened")
	}
	f.m.HideKeyboard()
	if f.ovl.KeyboardVisible {
		t.Error("keyboard still visible")
	}

	o.SetKeyboardPositionForOverlay(coords.Rect{X: 10, Y: 20, W: 30, H: 40})
	want := openvr.Rect2{TopLeft: openvr.Vector2{10, 20}, BottomRight: openvr.Vector2{40, 60}}
	if f.ovl.KeyboardAvoid != want {
		t.Errorf("avoid rect: got %+v, want %+v", f.ovl.KeyboardAvoid, want)
	}

	f.m.SetKeyboardTransformAbsolute(math.Identity())
	if f.ovl.KeyboardOrigin != openvr.TrackingUniverseStanding {
		t.Errorf("keyboard origin: got %v", f.ovl.KeyboardOrigin)
	}
}

func TestNoRuntime(t *testing.T) {
	universe := coords.NewTrackingUniverse()
	m := NewManager(gputest.New(gpu.AdapterOpenGL), &universe, nil)
	o, err := m.Add("hud", "hud")
	if err != nil {
		t.Fatal(err)
	}

	o.Show()
	o.Update()
	if o.IsVisible() || o.IsHoverTarget() || o.IsActiveDashboard() {
		t.Error("overlay without runtime reported state")
	}
	if got := m.ShowMessageOverlay("text", "caption", "ok", "", "", ""); got != openvr.MessageOverlayCouldntFindSystemOverlay {
		t.Errorf("message: got %v", got)
	}
	if m.PrimaryDashboardDevice() != -1 {
		t.Error("dashboard device without runtime")
	}
	if m.KeyboardText() != "" {
		t.Error("keyboard text without runtime")
	}
	if got := o.TransformForOverlayCoordinates(math.Vec2{X: 1, Y: 1}); got != math.Identity() {
		t.Errorf("coordinate transform: got %v", got)
	}
}

func TestMessageAndDashboardDevice(t *testing.T) {
	f := newFixture(t, gpu.AdapterDirect3D11)
	f.ovl.MessageResponse = openvr.MessageOverlayButtonPress1

	if got := f.m.ShowMessageOverlay("Quit?", "Game", "No", "Yes", "", ""); got != openvr.MessageOverlayButtonPress1 {
		t.Errorf("response: got %v", got)
	}
	if len(f.ovl.Messages) != 1 || f.ovl.Messages[0][3] != "Yes" {
		t.Errorf("messages: got %v", f.ovl.Messages)
	}
	f.m.CloseMessageOverlay()
	if f.ovl.MessageClosed != 1 {
		t.Error("message not closed")
	}

	if f.m.PrimaryDashboardDevice() != -1 {
		t.Error("invalid dashboard device not mapped to -1")
	}
	f.ovl.PrimaryDevice = 3
	if got := f.m.PrimaryDashboardDevice(); got != 3 {
		t.Errorf("dashboard device: got %d, want 3", got)
	}
}

func TestCastRay(t *testing.T) {
	f := newFixture(t, gpu.AdapterDirect3D11)
	o := f.add(t, "hud")
	o.Update()

	if _, hit := o.CastRay(math.Vec3{}, math.Vec3{Y: 1}); hit {
		t.Error("hit without intersection")
	}

	f.state(t, o).Intersection = &openvr.IntersectionResults{
		Point:    openvr.Vector3{1, 2, 3},
		Normal:   openvr.Vector3{0, 0, 1},
		UVs:      openvr.Vector2{0.25, 0.75},
		Distance: 2,
	}
	ri, hit := o.CastRay(math.Vec3{}, math.Vec3{Y: 1})
	if !hit {
		t.Fatal("no hit")
	}
	if ri.T != 2 || ri.UV != (math.Vec2{X: 0.25, Y: 0.75}) {
		t.Errorf("hit: T %v UV %v", ri.T, ri.UV)
	}
	if want := (math.Vec3{X: -1, Y: 3, Z: -2}); ri.Point != want {
		t.Errorf("point: got %v, want %v", ri.Point, want)
	}
	if ri.UserData != o {
		t.Error("hit does not carry the overlay")
	}
}

func TestCursorAndHaptics(t *testing.T) {
	f := newFixture(t, gpu.AdapterDirect3D11)
	cursor := f.add(t, "cursor")
	o := f.add(t, "hud")
	cursor.Update()
	o.Update()

	o.SetCursorOverlay(cursor.ID())
	if got := f.state(t, o).Cursor; got != cursor.Handle() {
		t.Errorf("cursor handle: got %d, want %d", got, cursor.Handle())
	}

	if !o.SetCursorPositionOverride(math.Vec2{X: 0.5, Y: 0.5}) || f.state(t, o).CursorOverride == nil {
		t.Error("cursor override not set")
	}
	if !o.ClearCursorPositionOverride() || f.state(t, o).CursorOverride != nil {
		t.Error("cursor override not cleared")
	}
	if !o.TriggerHapticVibration(0.1, 200, 0.5) || f.state(t, o).Haptics != 1 {
		t.Error("haptic not triggered")
	}

	o.SetName("Renamed")
	if f.state(t, o).Name != "Renamed" {
		t.Error("rename not pushed")
	}

	f.state(t, o).TextureSize = [2]uint32{512, 256}
	if w, h := o.TextureSize(); w != 512 || h != 256 {
		t.Errorf("texture size: got %dx%d", w, h)
	}
}

func TestResetRecreatesOnUpdate(t *testing.T) {
	f := newFixture(t, gpu.AdapterDirect3D11)
	o := f.add(t, "hud")
	o.SetWidth(2)
	o.Update()

	f.m.Reset()
	if f.ovl.Count() != 0 || o.Handle() != openvr.InvalidOverlayHandle {
		t.Fatal("Reset left runtime overlays")
	}
	if f.m.Len() != 1 {
		t.Errorf("Reset dropped local overlays: %d left", f.m.Len())
	}

	f.m.UpdateAll()
	if f.ovl.Count() != 1 || f.state(t, o).Width != 2 {
		t.Error("overlay not recreated with its parameters")
	}
}
