package openvrtest

import (
	"github.com/Faultbox/midgard-vr/internal/openvr"
)

// Chaperone is a scriptable openvr.Chaperone.
type Chaperone struct {
	State          openvr.CalibrationState
	SizeX, SizeZ   float32
	Rect           openvr.Quad
	Valid          bool
	Reloads        int
	SceneColor     openvr.Color
	BoundsVisible  bool
	Forced         bool
	ZeroPoseResets []openvr.TrackingUniverseOrigin
}

// NewChaperone returns a calibrated 2 x 1.5 m play area.
func NewChaperone() *Chaperone {
	return &Chaperone{
		State: openvr.CalibrationOK,
		SizeX: 2,
		SizeZ: 1.5,
		Rect: openvr.Quad{
			{-1, 0, 0.75},
			{1, 0, 0.75},
			{1, 0, -0.75},
			{-1, 0, -0.75},
		},
		Valid: true,
	}
}

func (c *Chaperone) CalibrationState() openvr.CalibrationState { return c.State }

func (c *Chaperone) PlayAreaSize() (float32, float32, bool) {
	return c.SizeX, c.SizeZ, c.Valid
}

func (c *Chaperone) PlayAreaRect() (openvr.Quad, bool) { return c.Rect, c.Valid }

func (c *Chaperone) ReloadInfo() { c.Reloads++ }

func (c *Chaperone) SetSceneColor(color openvr.Color) { c.SceneColor = color }

func (c *Chaperone) AreBoundsVisible() bool { return c.BoundsVisible || c.Forced }

func (c *Chaperone) ForceBoundsVisible(force bool) { c.Forced = force }

func (c *Chaperone) ResetZeroPose(origin openvr.TrackingUniverseOrigin) {
	c.ZeroPoseResets = append(c.ZeroPoseResets, origin)
}
