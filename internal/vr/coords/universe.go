package coords

import (
	stdmath "math"

	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/pkg/math"
)

// DefaultStandingHeight is the HMD height removed from standing poses until
// something calibrates it.
const DefaultStandingHeight float32 = 1.571

// TrackingUniverse aligns the runtime's tracking space with the engine world.
// The yaw and its rotation matrix only change together.
type TrackingUniverse struct {
	yaw      float32
	rotation math.Mat4

	Origin         openvr.TrackingUniverseOrigin
	StandingHeight float32
}

// NewTrackingUniverse returns a standing universe with no yaw.
func NewTrackingUniverse() TrackingUniverse {
	return TrackingUniverse{
		rotation:       math.Identity(),
		Origin:         openvr.TrackingUniverseStanding,
		StandingHeight: DefaultStandingHeight,
	}
}

// Yaw returns the yaw offset in radians, in (-pi, pi].
func (u *TrackingUniverse) Yaw() float32 {
	return u.yaw
}

// Rotation returns the rotation applied to runtime poses.
func (u *TrackingUniverse) Rotation() math.Mat4 {
	return u.rotation
}

// SetYaw wraps yaw into (-pi, pi] and rebuilds the rotation.
func (u *TrackingUniverse) SetYaw(yaw float32) {
	u.yaw = WrapYaw(yaw)
	u.rotation = yawRotation(u.yaw)
}

// AddYaw rotates the universe by delta. A zero delta leaves it untouched.
func (u *TrackingUniverse) AddYaw(delta float32) {
	if delta == 0 {
		return
	}
	u.SetYaw(u.yaw + delta)
}

// Orient sets the yaw from an engine transform's forward direction.
func (u *TrackingUniverse) Orient(m math.Mat4) {
	u.SetYaw(YawFromTransform(m))
}

// Standing reports whether poses are relative to the standing origin.
func (u *TrackingUniverse) Standing() bool {
	return u.Origin == openvr.TrackingUniverseStanding
}

// PoseToEngine converts a runtime device pose into an engine transform: yaw
// first, then the standing height comes off the runtime up axis, then the
// axis permutation.
func (u *TrackingUniverse) PoseToEngine(m openvr.Matrix34) math.Mat4 {
	lifted := MatrixFromRuntime34(m)
	if u.yaw != 0 {
		lifted = u.rotation.Mul(lifted)
	}
	if u.Standing() {
		lifted.Set(1, 3, lifted.At(1, 3)-u.StandingHeight)
	}
	return TransformFromRuntime(lifted)
}

// WrapYaw folds an angle into (-pi, pi].
func WrapYaw(yaw float32) float32 {
	y := float64(yaw)
	for y > stdmath.Pi {
		y -= 2 * stdmath.Pi
	}
	for y <= -stdmath.Pi {
		y += 2 * stdmath.Pi
	}
	return float32(y)
}

// yawRotation rotates about the runtime's up axis.
func yawRotation(yaw float32) math.Mat4 {
	c := float32(stdmath.Cos(float64(yaw)))
	s := float32(stdmath.Sin(float64(yaw)))

	m := math.Identity()
	m.Set(0, 0, c)
	m.Set(0, 2, -s)
	m.Set(2, 0, s)
	m.Set(2, 2, c)
	return m
}

// YawFromTransform returns the yaw of an engine transform's forward (+Y)
// column, measured from +Y towards +X. A vertical forward vector yields zero.
func YawFromTransform(m math.Mat4) float32 {
	fwd := m.Column(1)
	fwd.Z = 0
	if fwd.Length() < 1e-6 {
		return 0
	}
	fwd = fwd.Normalize()

	yaw := stdmath.Atan2(float64(fwd.X), float64(fwd.Y))
	if yaw < 0 {
		yaw += 2 * stdmath.Pi
	}
	return WrapYaw(float32(yaw))
}
