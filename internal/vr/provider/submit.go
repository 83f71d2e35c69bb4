package provider

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-vr/internal/gpu"
	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/internal/vr/coords"
	"github.com/Faultbox/midgard-vr/internal/vr/renderstate"
	"github.com/Faultbox/midgard-vr/pkg/math"
)

// ErrNoSession is returned by compositor calls made without a session.
var ErrNoSession = errors.New("provider: no VR session")

// HandleDeviceEvent reacts to the device's frame events. Eye events submit
// the eye just rendered.
func (p *Provider) HandleDeviceEvent(ev gpu.DeviceEvent) {
	switch ev {
	case gpu.DeviceStartOfFrame, gpu.DeviceEndOfFrame:
		p.leftSeen = false
	case gpu.DeviceLeftEyeRendered:
		p.OnEyeRendered(0)
	case gpu.DeviceRightEyeRendered:
		p.OnEyeRendered(1)
	case gpu.DeviceDestroy:
		p.render.Reset(p.render.HMD())
	}
}

// OnEyeRendered hands the stereo target to the compositor once an eye is
// drawn. Separate mode submits each eye as it comes. Side-by-side submits
// both halves from one resolve when the right eye follows a left eye in
// the same frame.
func (p *Provider) OnEyeRendered(eye int) {
	if p.compositor == nil || eye < 0 || eye > 1 {
		return
	}

	switch p.render.Mode() {
	case renderstate.ModeStereoSeparate:
		tex, err := p.render.ResolveEye()
		if err != nil {
			log().Warn("VR eye resolve failed", zap.Int("eye", eye), zap.Error(err))
			return
		}
		p.submit(openvr.Eye(eye), tex)

	case renderstate.ModeSideBySide:
		if eye == 0 {
			p.leftSeen = true
			return
		}
		if !p.leftSeen {
			return
		}
		p.leftSeen = false
		tex, err := p.render.ResolveEye()
		if err != nil {
			log().Warn("VR eye resolve failed", zap.Error(err))
			return
		}
		p.submit(openvr.EyeLeft, tex)
		p.submit(openvr.EyeRight, tex)
	}
}

func (p *Provider) submit(eye openvr.Eye, tex gpu.Texture) {
	rt := coords.RuntimeTexture(tex.Native(), openvr.ColorSpaceGamma)
	bounds := coords.BoundsFor(p.device.AdapterType(), p.render.EyeBounds(int(eye)))
	if err := p.compositor.Submit(eye, &rt, &bounds, openvr.SubmitDefault); err != nil {
		log().Warn("VR submit failed", zap.Int("eye", int(eye)), zap.Error(err))
	}
}

// SetDrawMode switches the stereo render mode.
func (p *Provider) SetDrawMode(mode renderstate.Mode) error {
	p.leftSeen = false
	return p.render.SetupRenderTargets(mode)
}

// EyeOffsets returns both eyes' offsets from the head.
func (p *Provider) EyeOffsets() [2]math.Vec3 { return p.render.EyeOffsets() }

// FovPorts returns both eyes' tangent ports.
func (p *Provider) FovPorts() [2]renderstate.FovPort { return p.render.FovPorts() }

// StereoViewports returns the per-eye viewports inside the stereo target.
func (p *Provider) StereoViewports() [2]coords.Rect { return p.render.Viewports() }

// StereoTarget returns the stereo render target, or nil.
func (p *Provider) StereoTarget() gpu.RenderTarget { return p.render.Target() }

// PreviewTexture returns the texture holding both eyes, or nil.
func (p *Provider) PreviewTexture() gpu.Texture { return p.render.PreviewTexture() }

// StageModel describes a compositor stage override. The model must be a
// loose OBJ file since the compositor reads it directly.
type StageModel struct {
	ObjModelFile string
	Settings     openvr.StageRenderSettings
}

// SetSkyboxOverride replaces the compositor's background with one texture,
// two stereo textures or six cube faces.
func (p *Provider) SetSkyboxOverride(textures []gpu.Texture) error {
	if p.compositor == nil {
		return ErrNoSession
	}
	switch len(textures) {
	case 1, 2, 6:
	default:
		return fmt.Errorf("setting skybox: %d textures, want 1, 2 or 6", len(textures))
	}
	rts := make([]openvr.Texture, len(textures))
	for i, t := range textures {
		rts[i] = coords.RuntimeTexture(t.Native(), openvr.ColorSpaceAuto)
		if rts[i].Type == openvr.TextureTypeInvalid {
			return fmt.Errorf("setting skybox: texture %d has no native handle", i)
		}
	}
	if err := p.compositor.SetSkyboxOverride(rts); err != nil {
		return fmt.Errorf("setting skybox: %w", err)
	}
	return nil
}

// ClearSkyboxOverride restores the compositor's own background.
func (p *Provider) ClearSkyboxOverride() {
	if p.compositor != nil {
		p.compositor.ClearSkyboxOverride()
	}
}

// SetStageOverride shows a model as the compositor stage, placed with an
// engine transform.
func (p *Provider) SetStageOverride(stage StageModel, transform math.Mat4) error {
	if p.compositor == nil {
		return ErrNoSession
	}
	if _, err := os.Stat(stage.ObjModelFile); err != nil {
		return fmt.Errorf("setting stage: %w", err)
	}
	err := p.compositor.SetStageOverrideAsync(stage.ObjModelFile, coords.AffineToRuntime(transform), stage.Settings)
	if err != nil {
		return fmt.Errorf("setting stage %s: %w", stage.ObjModelFile, err)
	}
	return nil
}

// ClearStageOverride removes the stage model.
func (p *Provider) ClearStageOverride() {
	if p.compositor != nil {
		p.compositor.ClearStageOverride()
	}
}

// FadeGrid fades the compositor grid in or out over seconds.
func (p *Provider) FadeGrid(seconds float32, fadeIn bool) {
	if p.compositor != nil {
		p.compositor.FadeGrid(seconds, fadeIn)
	}
}

// CurrentGridAlpha returns the grid's opacity, or 0 without a session.
func (p *Provider) CurrentGridAlpha() float32 {
	if p.compositor == nil {
		return 0
	}
	return p.compositor.CurrentGridAlpha()
}

// FadeToColor fades the view, or the background behind the scene, to a
// colour over seconds.
func (p *Provider) FadeToColor(seconds float32, color openvr.Color, background bool) {
	if p.compositor != nil {
		p.compositor.FadeToColor(seconds, color, background)
	}
}

// CurrentFadeColor returns the colour the view is faded to.
func (p *Provider) CurrentFadeColor(background bool) openvr.Color {
	if p.compositor == nil {
		return openvr.Color{}
	}
	return p.compositor.CurrentFadeColor(background)
}
