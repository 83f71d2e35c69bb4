package native

import (
	"errors"
	"slices"
	"testing"

	"github.com/Faultbox/midgard-vr/internal/openvr"
)

func TestRegistered(t *testing.T) {
	if !slices.Contains(openvr.Runtimes(), RuntimeName) {
		t.Fatalf("Runtimes() = %v, missing %q", openvr.Runtimes(), RuntimeName)
	}
	rt, err := openvr.Open(RuntimeName)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := rt.(*Runtime); !ok {
		t.Errorf("Open returned %T, want *Runtime", rt)
	}
}

func TestNoSession(t *testing.T) {
	r := &Runtime{}
	if r.IsHmdPresent() {
		t.Error("IsHmdPresent without a session = true")
	}
	if r.Compositor() != nil {
		t.Error("Compositor without a session should be nil")
	}
	if r.Input() != nil || r.Overlay() != nil || r.Chaperone() != nil {
		t.Error("input, overlay and chaperone should be unavailable")
	}
}

func TestRenderModelsUnsupported(t *testing.T) {
	models, err := (&Runtime{}).RenderModels()
	if err != nil {
		t.Fatalf("RenderModels: %v", err)
	}
	_, err = models.LoadRenderModelAsync("controller")
	if !errors.Is(err, openvr.RenderModelErrorNotSupported) {
		t.Errorf("LoadRenderModelAsync err = %v, want %v", err, openvr.RenderModelErrorNotSupported)
	}
	_, err = models.LoadTextureAsync(1)
	if !errors.Is(err, openvr.RenderModelErrorNotSupported) {
		t.Errorf("LoadTextureAsync err = %v, want %v", err, openvr.RenderModelErrorNotSupported)
	}
}

func TestSubmitRejectsBeforeCalling(t *testing.T) {
	c := &Compositor{}
	tex := &openvr.Texture{Handle: 3, Type: openvr.TextureTypeOpenGL}

	if err := c.Submit(openvr.EyeLeft, nil, nil, 0); err != openvr.CompositorErrorInvalidTexture {
		t.Errorf("nil texture err = %v", err)
	}
	dx := &openvr.Texture{Handle: 3, Type: openvr.TextureTypeOpenGL + 1}
	if err := c.Submit(openvr.EyeLeft, dx, nil, 0); err != openvr.CompositorErrorInvalidTexture {
		t.Errorf("non-GL texture err = %v", err)
	}
	half := &openvr.TextureBounds{UMin: 0, VMin: 0, UMax: 0.5, VMax: 1}
	if err := c.Submit(openvr.EyeLeft, tex, half, 0); err != openvr.CompositorErrorInvalidBounds {
		t.Errorf("half bounds err = %v", err)
	}
}

func TestWholeTexture(t *testing.T) {
	tests := []struct {
		b    openvr.TextureBounds
		want bool
	}{
		{openvr.TextureBounds{UMin: 0, VMin: 0, UMax: 1, VMax: 1}, true},
		{openvr.TextureBounds{UMin: 0, VMin: 1, UMax: 1, VMax: 0}, true},
		{openvr.TextureBounds{UMin: 0.5, VMin: 0, UMax: 1, VMax: 1}, false},
		{openvr.TextureBounds{UMin: 0, VMin: 0, UMax: 1, VMax: 0.5}, false},
	}
	for _, tt := range tests {
		if got := wholeTexture(tt.b); got != tt.want {
			t.Errorf("wholeTexture(%+v) = %v, want %v", tt.b, got, tt.want)
		}
	}
}

func TestLocalCompositorState(t *testing.T) {
	c := &Compositor{space: openvr.TrackingUniverseStanding, gridAlpha: 1}

	c.SetTrackingSpace(openvr.TrackingUniverseSeated)
	if got := c.TrackingSpace(); got != openvr.TrackingUniverseSeated {
		t.Errorf("TrackingSpace = %v, want seated", got)
	}

	red := openvr.Color{R: 1, A: 1}
	c.FadeToColor(0.5, red, false)
	if got := c.CurrentFadeColor(false); got != red {
		t.Errorf("CurrentFadeColor(false) = %+v, want %+v", got, red)
	}
	if got := c.CurrentFadeColor(true); got != (openvr.Color{}) {
		t.Errorf("CurrentFadeColor(true) = %+v, want zero", got)
	}

	c.FadeGrid(1, false)
	if got := c.CurrentGridAlpha(); got != 0 {
		t.Errorf("CurrentGridAlpha after fade out = %v, want 0", got)
	}
	c.FadeGrid(1, true)
	if got := c.CurrentGridAlpha(); got != 1 {
		t.Errorf("CurrentGridAlpha after fade in = %v, want 1", got)
	}

	if err := c.SetSkyboxOverride(nil); !errors.Is(err, ErrUnsupported) {
		t.Errorf("SetSkyboxOverride err = %v, want ErrUnsupported", err)
	}
	if err := c.SetStageOverrideAsync("stage", openvr.IdentityMatrix34(), openvr.StageRenderSettings{}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("SetStageOverrideAsync err = %v, want ErrUnsupported", err)
	}
}
