package native

import (
	"errors"

	vr "github.com/tbogdala/openvr-go"

	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/internal/vr/coords"
)

// ErrUnsupported is returned for compositor features the binding lacks.
var ErrUnsupported = errors.New("native: not supported by the openvr-go binding")

// Compositor wraps the binding's IVRCompositor. Fades and the tracking
// space are kept locally; the binding submits whole OpenGL textures only.
type Compositor struct {
	sys  *System
	comp *vr.Compositor

	space     openvr.TrackingUniverseOrigin
	fade      [2]openvr.Color
	gridAlpha float32
}

var _ openvr.Compositor = (*Compositor)(nil)

func (c *Compositor) TrackingSpace() openvr.TrackingUniverseOrigin { return c.space }

func (c *Compositor) SetTrackingSpace(origin openvr.TrackingUniverseOrigin) { c.space = origin }

// WaitGetPoses blocks until the next frame and copies the render poses.
// The binding predicts nothing, so game receives the same poses.
func (c *Compositor) WaitGetPoses(render, game []openvr.TrackedDevicePose) error {
	c.comp.WaitGetPoses(false)

	n := int(vr.MaxTrackedDeviceCount)
	for i := 0; i < n && i < len(render); i++ {
		render[i] = c.pose(i)
	}
	copy(game, render)
	return nil
}

func (c *Compositor) pose(n int) openvr.TrackedDevicePose {
	idx := argOf(c.comp.IsPoseValid, n)
	pose := openvr.TrackedDevicePose{
		DeviceToAbsoluteTracking: openvr.IdentityMatrix34(),
		DeviceIsConnected:        c.sys.IsTrackedDeviceConnected(openvr.TrackedDeviceIndex(n)),
	}
	if !c.comp.IsPoseValid(idx) {
		return pose
	}
	rp := c.comp.GetRenderPose(idx)
	pose.DeviceToAbsoluteTracking = coords.Matrix34FromColumns([12]float32(rp.DeviceToAbsoluteTracking))
	pose.TrackingResult = openvr.TrackingResultRunningOK
	pose.PoseIsValid = true
	return pose
}

// Submit hands an OpenGL eye texture to the compositor. Sub-rectangles
// cannot be passed through, so bounds must cover the whole texture.
func (c *Compositor) Submit(eye openvr.Eye, tex *openvr.Texture, bounds *openvr.TextureBounds, flags openvr.SubmitFlags) error {
	if tex == nil || tex.Type != openvr.TextureTypeOpenGL {
		return openvr.CompositorErrorInvalidTexture
	}
	if bounds != nil && !wholeTexture(*bounds) {
		return openvr.CompositorErrorInvalidBounds
	}
	switch eye {
	case openvr.EyeLeft:
		c.comp.Submit(vr.EyeLeft, uint32(tex.Handle))
	case openvr.EyeRight:
		c.comp.Submit(vr.EyeRight, uint32(tex.Handle))
	default:
		return openvr.CompositorErrorIndexOutOfRange
	}
	return nil
}

// wholeTexture accepts full bounds in either V direction.
func wholeTexture(b openvr.TextureBounds) bool {
	if b.UMin != 0 || b.UMax != 1 {
		return false
	}
	return (b.VMin == 0 && b.VMax == 1) || (b.VMin == 1 && b.VMax == 0)
}

func (c *Compositor) FadeToColor(seconds float32, color openvr.Color, background bool) {
	c.fade[fadeSlot(background)] = color
}

func (c *Compositor) CurrentFadeColor(background bool) openvr.Color {
	return c.fade[fadeSlot(background)]
}

func fadeSlot(background bool) int {
	if background {
		return 1
	}
	return 0
}

func (c *Compositor) FadeGrid(seconds float32, fadeIn bool) {
	c.gridAlpha = 0
	if fadeIn {
		c.gridAlpha = 1
	}
}

func (c *Compositor) CurrentGridAlpha() float32 { return c.gridAlpha }

func (c *Compositor) SetSkyboxOverride([]openvr.Texture) error { return ErrUnsupported }

func (c *Compositor) ClearSkyboxOverride() {}

func (c *Compositor) SetStageOverrideAsync(string, openvr.Matrix34, openvr.StageRenderSettings) error {
	return ErrUnsupported
}

func (c *Compositor) ClearStageOverride() {}
