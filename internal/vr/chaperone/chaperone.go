// Package chaperone reads and controls the play-area bounds the runtime
// draws around the user.
package chaperone

import (
	"github.com/Faultbox/midgard-vr/internal/engine/picking"
	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/internal/vr/coords"
	"github.com/Faultbox/midgard-vr/pkg/math"
)

// Chaperone wraps the runtime chaperone interface. Every query has a safe
// answer while no interface is attached.
type Chaperone struct {
	c openvr.Chaperone
}

// New returns a chaperone reading from c, which may be nil.
func New(c openvr.Chaperone) *Chaperone {
	return &Chaperone{c: c}
}

// SetRuntime attaches or detaches (nil) the runtime interface.
func (ch *Chaperone) SetRuntime(c openvr.Chaperone) { ch.c = c }

// CalibrationState returns the runtime's calibration state, or
// CalibrationError without a runtime.
func (ch *Chaperone) CalibrationState() openvr.CalibrationState {
	if ch.c == nil {
		return openvr.CalibrationError
	}
	return ch.c.CalibrationState()
}

// PlayAreaSize returns the play area's width and depth in meters.
func (ch *Chaperone) PlayAreaSize() (math.Vec2, bool) {
	if ch.c == nil {
		return math.Vec2{}, false
	}
	x, z, ok := ch.c.PlayAreaSize()
	if !ok {
		return math.Vec2{}, false
	}
	return math.Vec2{X: x, Y: z}, true
}

// PlayAreaRect returns the engine-space box around the play area's corners.
func (ch *Chaperone) PlayAreaRect() (picking.AABB, bool) {
	if ch.c == nil {
		return picking.AABB{}, false
	}
	quad, ok := ch.c.PlayAreaRect()
	if !ok {
		return picking.AABB{}, false
	}
	box := picking.EmptyAABB()
	for _, corner := range quad {
		box = box.Extend(coords.PointFromRuntime(corner))
	}
	return box, true
}

// ReloadInfo makes the runtime reread its chaperone data.
func (ch *Chaperone) ReloadInfo() {
	if ch.c != nil {
		ch.c.ReloadInfo()
	}
}

// SetSceneColor tints the bounds drawn in the scene.
func (ch *Chaperone) SetSceneColor(r, g, b, a float32) {
	if ch.c != nil {
		ch.c.SetSceneColor(openvr.Color{R: r, G: g, B: b, A: a})
	}
}

func (ch *Chaperone) AreBoundsVisible() bool {
	return ch.c != nil && ch.c.AreBoundsVisible()
}

func (ch *Chaperone) ForceBoundsVisible(force bool) {
	if ch.c != nil {
		ch.c.ForceBoundsVisible(force)
	}
}

// ResetZeroPose recentres the given tracking space on the current HMD pose.
func (ch *Chaperone) ResetZeroPose(origin openvr.TrackingUniverseOrigin) {
	if ch.c != nil {
		ch.c.ResetZeroPose(origin)
	}
}
