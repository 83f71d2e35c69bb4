package coords

import (
	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/pkg/math"
)

// Pose is a tracked device pose in engine space.
type Pose struct {
	Position        math.Vec3
	Orientation     math.Quat
	Velocity        math.Vec3
	AngularVelocity math.Vec3
	State           openvr.TrackingResult
	Valid           bool
	Connected       bool
}

// IdentityPose is an invalid, disconnected pose at the origin.
func IdentityPose() Pose {
	return Pose{
		Orientation: math.QuatIdentity(),
		State:       openvr.TrackingResultUninitialized,
	}
}

// Transform returns the pose as an engine transform.
func (p Pose) Transform() math.Mat4 {
	return math.Mat4FromPose(p.Orientation, p.Position)
}

// ConvertPose moves a runtime pose into engine space through the universe.
// Invalid poses keep the identity transform but report their state.
func (u *TrackingUniverse) ConvertPose(rp openvr.TrackedDevicePose) Pose {
	pose := IdentityPose()
	pose.State = rp.TrackingResult
	pose.Connected = rp.DeviceIsConnected
	if !rp.PoseIsValid {
		return pose
	}

	m := u.PoseToEngine(rp.DeviceToAbsoluteTracking)
	pose.Position = m.Position()
	pose.Orientation = math.QuatFromMat4(m)
	pose.Velocity = PointFromRuntime(rp.Velocity)
	pose.AngularVelocity = PointFromRuntime(rp.AngularVelocity)
	pose.Valid = true
	return pose
}

// ActionVelocity remaps a pose action's runtime velocity the way action
// callbacks report it.
func ActionVelocity(v openvr.Vector3) math.Vec3 {
	return math.Vec3{X: v[0], Y: -v[2], Z: v[1]}
}
