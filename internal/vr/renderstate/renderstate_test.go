package renderstate

import (
	"errors"
	"testing"

	"github.com/Faultbox/midgard-vr/internal/gpu"
	"github.com/Faultbox/midgard-vr/internal/gpu/gputest"
	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/internal/openvr/openvrtest"
	"github.com/Faultbox/midgard-vr/internal/vr/coords"
)

func newState(t *testing.T, depth int) (*State, *gputest.Device, *openvrtest.System) {
	t.Helper()
	dev := gputest.New(gpu.AdapterOpenGL)
	sys := openvrtest.NewSystem()
	sys.Width, sys.Height = 100, 80
	s := New(dev, depth)
	s.Reset(sys)
	return s, dev, sys
}

func TestSetupWithoutHMD(t *testing.T) {
	s := New(gputest.New(gpu.AdapterOpenGL), 3)
	if err := s.SetupRenderTargets(ModeStereoSeparate); !errors.Is(err, ErrNoHMD) {
		t.Errorf("SetupRenderTargets: got %v, want ErrNoHMD", err)
	}
}

func TestStereoSeparate(t *testing.T) {
	s, dev, _ := newState(t, 3)
	if err := s.SetupRenderTargets(ModeStereoSeparate); err != nil {
		t.Fatalf("SetupRenderTargets: %v", err)
	}

	if s.Mode() != ModeStereoSeparate {
		t.Errorf("mode: got %v, want separate", s.Mode())
	}
	vp := s.Viewports()
	want := coords.Rect{W: 100, H: 80}
	if vp[0] != want || vp[1] != want {
		t.Errorf("viewports: got %v, want both %v", vp, want)
	}
	if w, h := s.Target().Size(); w != 100 || h != 80 {
		t.Errorf("target size: got %dx%d, want 100x80", w, h)
	}
	if s.PreviewTexture().Format() != gpu.FormatRGBA8SRGB {
		t.Errorf("colour format: got %v", s.PreviewTexture().Format())
	}
	if s.Target().Depth().Format() != gpu.FormatD24S8 {
		t.Errorf("depth format: got %v", s.Target().Depth().Format())
	}
	// colour + depth + three ring slots
	if got := len(dev.Live()); got != 5 {
		t.Errorf("live textures: got %d, want 5", got)
	}

	b := s.EyeBounds(1)
	if b != (openvr.TextureBounds{UMin: 0, VMin: 0, UMax: 1, VMax: 1}) {
		t.Errorf("right eye bounds: got %+v", b)
	}
}

func TestSideBySide(t *testing.T) {
	s, _, _ := newState(t, 2)
	if err := s.SetupRenderTargets(ModeSideBySide); err != nil {
		t.Fatalf("SetupRenderTargets: %v", err)
	}

	vp := s.Viewports()
	if vp[0] != (coords.Rect{W: 100, H: 80}) || vp[1] != (coords.Rect{X: 100, W: 100, H: 80}) {
		t.Errorf("viewports: got %v", vp)
	}
	if w, _ := s.Target().Size(); w != 200 {
		t.Errorf("target width: got %d, want 200", w)
	}

	left, right := s.EyeBounds(0), s.EyeBounds(1)
	if left.UMax != 0.5 || right.UMin != 0.5 || right.UMax != 1 {
		t.Errorf("bounds: got left %+v right %+v", left, right)
	}
}

func TestSameModeIsNoop(t *testing.T) {
	s, dev, _ := newState(t, 3)
	_ = s.SetupRenderTargets(ModeStereoSeparate)
	before := len(dev.Textures)

	if err := s.SetupRenderTargets(ModeStereoSeparate); err != nil {
		t.Fatalf("second setup: %v", err)
	}
	if len(dev.Textures) != before {
		t.Errorf("textures allocated: got %d, want %d", len(dev.Textures), before)
	}
}

func TestStandardReleases(t *testing.T) {
	s, dev, _ := newState(t, 3)
	_ = s.SetupRenderTargets(ModeSideBySide)

	if err := s.SetupRenderTargets(ModeStandard); err != nil {
		t.Fatalf("standard: %v", err)
	}
	if s.Target() != nil || s.PreviewTexture() != nil || s.CurrentEyeTexture() != nil {
		t.Error("standard mode kept stereo resources")
	}
	if got := len(dev.Live()); got != 0 {
		t.Errorf("live textures: got %d, want 0", got)
	}
	if !dev.Targets[0].Released {
		t.Error("render target not released")
	}
}

func TestAllocationFailure(t *testing.T) {
	s, dev, _ := newState(t, 3)
	dev.TextureErr = errors.New("out of memory")

	if err := s.SetupRenderTargets(ModeStereoSeparate); err == nil {
		t.Fatal("expected allocation error")
	}
	if s.Mode() != ModeStandard || s.Target() != nil {
		t.Errorf("after failure: mode %v target %v", s.Mode(), s.Target())
	}

	dev.TextureErr = nil
	if err := s.SetupRenderTargets(ModeStereoSeparate); err != nil {
		t.Errorf("retry: %v", err)
	}
}

func TestRingDepth(t *testing.T) {
	s, _, _ := newState(t, 1)
	if s.RingDepth() != MinRingDepth {
		t.Errorf("ring depth: got %d, want %d", s.RingDepth(), MinRingDepth)
	}
	_ = s.SetupRenderTargets(ModeStereoSeparate)

	first := s.CurrentEyeTexture()
	tex, err := s.ResolveEye()
	if err != nil {
		t.Fatalf("ResolveEye: %v", err)
	}
	if tex != first {
		t.Error("ResolveEye did not return the current slot")
	}
	if s.CurrentEyeTexture() == first {
		t.Error("ring did not advance")
	}
	_, _ = s.ResolveEye()
	if s.CurrentEyeTexture() != first {
		t.Error("two-slot ring did not wrap")
	}
}

func TestResolveWithoutTarget(t *testing.T) {
	s, _, _ := newState(t, 3)
	if _, err := s.ResolveEye(); err == nil {
		t.Error("expected error resolving in standard mode")
	}
}

func TestProjection(t *testing.T) {
	s, _, sys := newState(t, 3)
	sys.Projection[0] = [4]float32{-1, 1, -0.8, 0.8}
	s.UpdateHMDProjection()

	got := s.FovPorts()[0]
	want := FovPort{Left: 1, Right: 1, Up: 0.8, Down: 0.8}
	if got != want {
		t.Errorf("fov port: got %+v, want %+v", got, want)
	}

	offsets := s.EyeOffsets()
	if offsets[0].X != -0.032 || offsets[1].X != 0.032 {
		t.Errorf("eye offsets: got %v", offsets)
	}
}

func TestZombifyResurrect(t *testing.T) {
	s, dev, _ := newState(t, 3)
	_ = s.SetupRenderTargets(ModeSideBySide)

	dev.TextureEvents().Emit(gpu.TextureZombify)
	if s.Mode() != ModeStandard || s.Target() != nil {
		t.Fatalf("after zombify: mode %v", s.Mode())
	}
	if len(dev.Live()) != 0 {
		t.Errorf("live textures after zombify: got %d", len(dev.Live()))
	}

	dev.TextureEvents().Emit(gpu.TextureResurrect)
	if s.Mode() != ModeSideBySide || s.Target() == nil {
		t.Errorf("after resurrect: mode %v", s.Mode())
	}

	s.Close()
	if dev.TextureEvents().Len() != 0 {
		t.Errorf("subscribers after Close: got %d", dev.TextureEvents().Len())
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeStandard, ModeStereoSeparate, ModeSideBySide} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q): got %v %v, want %v", m.String(), got, err, m)
		}
	}
	if _, err := ParseMode("anaglyph"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
