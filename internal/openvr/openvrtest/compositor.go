package openvrtest

import (
	"github.com/Faultbox/midgard-vr/internal/openvr"
)

// Submission records one Submit call.
type Submission struct {
	Eye     openvr.Eye
	Texture openvr.Texture
	Bounds  openvr.TextureBounds
}

// StageOverride records the last SetStageOverrideAsync call.
type StageOverride struct {
	Path      string
	Transform openvr.Matrix34
	Settings  openvr.StageRenderSettings
}

// Compositor is a scriptable openvr.Compositor.
type Compositor struct {
	Space         openvr.TrackingUniverseOrigin
	SetSpaceCalls int

	// Poses are copied into the render slice by WaitGetPoses.
	Poses     []openvr.TrackedDevicePose
	WaitErr   error
	WaitCalls int

	Submits   []Submission
	SubmitErr error

	FadeColor [2]openvr.Color
	GridAlpha float32
	Skybox    []openvr.Texture
	SkyboxErr error
	Stage     *StageOverride
	StageErr  error
}

// NewCompositor returns a compositor in the standing universe with a valid
// identity HMD pose.
func NewCompositor() *Compositor {
	return &Compositor{
		Space: openvr.TrackingUniverseStanding,
		Poses: []openvr.TrackedDevicePose{{
			DeviceToAbsoluteTracking: openvr.IdentityMatrix34(),
			TrackingResult:           openvr.TrackingResultRunningOK,
			PoseIsValid:              true,
			DeviceIsConnected:        true,
		}},
		GridAlpha: 1,
	}
}

func (c *Compositor) TrackingSpace() openvr.TrackingUniverseOrigin { return c.Space }

func (c *Compositor) SetTrackingSpace(origin openvr.TrackingUniverseOrigin) {
	c.SetSpaceCalls++
	c.Space = origin
}

func (c *Compositor) WaitGetPoses(render, game []openvr.TrackedDevicePose) error {
	c.WaitCalls++
	if c.WaitErr != nil {
		return c.WaitErr
	}
	copy(render, c.Poses)
	copy(game, c.Poses)
	return nil
}

func (c *Compositor) Submit(eye openvr.Eye, tex *openvr.Texture, bounds *openvr.TextureBounds, _ openvr.SubmitFlags) error {
	if c.SubmitErr != nil {
		return c.SubmitErr
	}
	s := Submission{Eye: eye, Texture: *tex}
	if bounds != nil {
		s.Bounds = *bounds
	}
	c.Submits = append(c.Submits, s)
	return nil
}

func (c *Compositor) FadeToColor(_ float32, color openvr.Color, background bool) {
	if background {
		c.FadeColor[1] = color
		return
	}
	c.FadeColor[0] = color
}

func (c *Compositor) CurrentFadeColor(background bool) openvr.Color {
	if background {
		return c.FadeColor[1]
	}
	return c.FadeColor[0]
}

func (c *Compositor) FadeGrid(_ float32, fadeIn bool) {
	if fadeIn {
		c.GridAlpha = 1
	} else {
		c.GridAlpha = 0
	}
}

func (c *Compositor) CurrentGridAlpha() float32 { return c.GridAlpha }

func (c *Compositor) SetSkyboxOverride(textures []openvr.Texture) error {
	if c.SkyboxErr != nil {
		return c.SkyboxErr
	}
	c.Skybox = append([]openvr.Texture(nil), textures...)
	return nil
}

func (c *Compositor) ClearSkyboxOverride() { c.Skybox = nil }

func (c *Compositor) SetStageOverrideAsync(path string, transform openvr.Matrix34, settings openvr.StageRenderSettings) error {
	if c.StageErr != nil {
		return c.StageErr
	}
	c.Stage = &StageOverride{Path: path, Transform: transform, Settings: settings}
	return nil
}

func (c *Compositor) ClearStageOverride() { c.Stage = nil }
