package provider

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/internal/vr/coords"
	"github.com/Faultbox/midgard-vr/pkg/math"
)

// Process runs one frame of the session: universe yaw, runtime events,
// overlay events, the HMD pose wait and the input poll, in that order.
// It blocks in the compositor's pose wait.
func (p *Provider) Process() {
	if p.sys == nil || p.compositor == nil {
		return
	}

	if p.rotateWithMove {
		p.frameYaw += p.move.FrameYaw()
	}
	p.universe.AddYaw(p.frameYaw)
	p.frameYaw = 0

	var ev openvr.Event
	for p.sys.PollNextEvent(&ev) {
		p.handleEvent(ev)
		// A quit handler may have ended the session.
		if p.sys == nil {
			return
		}
	}

	p.overlays.PumpEvents()
	p.updateHMDPose()

	if p.input != nil {
		p.input.ProcessInput()
	}
}

func (p *Provider) handleEvent(ev openvr.Event) {
	switch ev.Type {
	case openvr.EventInputFocusCaptured,
		openvr.EventTrackedDeviceDeactivated,
		openvr.EventTrackedDeviceUpdated:

	case openvr.EventTrackedDeviceActivated:
		p.sink.DeviceActivated(ev.TrackedDeviceIndex)

	case openvr.EventIpdChanged:
		p.render.UpdateHMDProjection()

	case openvr.EventTrackedDeviceRoleChanged:
		p.sink.DeviceRoleChanged()

	case openvr.EventQuit:
		p.fatal("VR runtime requested quit")

	default:
		if !p.overlays.HandleKeyboardEvent(ev) {
			log().Debug("VR event", zap.Stringer("event", ev.Type))
		}
	}
}

func (p *Provider) updateHMDPose() {
	if p.compositor.TrackingSpace() != p.universe.Origin {
		p.compositor.SetTrackingSpace(p.universe.Origin)
	}

	if err := p.compositor.WaitGetPoses(p.poses[:], nil); err != nil {
		log().Debug("VR pose wait failed", zap.Error(err))
		return
	}

	pose := p.universe.ConvertPose(p.poses[openvr.TrackedDeviceIndexHmd])
	if !pose.Valid {
		p.hmdPose.Valid = false
		p.hmdPose.State = pose.State
		p.hmdPose.Connected = pose.Connected
		return
	}

	p.hmdPose = pose
	p.hmdTransform = pose.Transform()
	p.sink.HMDPose(pose)
}

// TrackedDevicePose returns the last pose of a tracked device. Only the HMD
// is tracked here; other devices come through pose actions.
func (p *Provider) TrackedDevicePose(idx int) coords.Pose {
	if idx != int(openvr.TrackedDeviceIndexHmd) {
		return coords.IdentityPose()
	}
	return p.hmdPose
}

// FrameEyePose returns the head pose for eye -1, otherwise the pose of
// that eye this frame. Velocities are zero.
func (p *Provider) FrameEyePose(eye int) coords.Pose {
	m := p.hmdTransform
	if eye == 0 || eye == 1 {
		m = m.Mul(p.render.EyePose(eye))
	}
	return coords.Pose{
		Position:    m.Position(),
		Orientation: math.QuatFromMat4(m),
		State:       p.hmdPose.State,
		Valid:       p.hmdPose.Valid,
		Connected:   p.hmdPose.Connected,
	}
}

// RotateUniverse sets the universe yaw, in radians.
func (p *Provider) RotateUniverse(yaw float32) {
	p.universe.SetYaw(yaw)
}

// OrientUniverse takes the universe yaw from a transform's heading.
func (p *Provider) OrientUniverse(m math.Mat4) {
	p.universe.Orient(m)
}

// UniverseYaw returns the universe yaw, in radians.
func (p *Provider) UniverseYaw() float32 { return p.universe.Yaw() }

// SetRotateYawWithMoveActions makes the move turn speeds rotate the
// universe every frame.
func (p *Provider) SetRotateYawWithMoveActions(on bool) { p.rotateWithMove = on }

// RotateYawWithMoveActions reports whether move turn speeds rotate the
// universe.
func (p *Provider) RotateYawWithMoveActions() bool { return p.rotateWithMove }

// AddFrameYaw queues a yaw applied to the universe on the next Process.
func (p *Provider) AddFrameYaw(delta float32) { p.frameYaw += delta }

// FrameYaw returns the yaw queued for the next Process.
func (p *Provider) FrameYaw() float32 { return p.frameYaw }

// SetFrameYaw replaces the yaw queued for the next Process.
func (p *Provider) SetFrameYaw(yaw float32) { p.frameYaw = yaw }

// SetRoomTracking selects the standing or seated universe.
func (p *Provider) SetRoomTracking(standing bool) {
	p.universe.Origin = openvr.TrackingUniverseSeated
	if standing {
		p.universe.Origin = openvr.TrackingUniverseStanding
	}
	if p.compositor != nil {
		p.compositor.SetTrackingSpace(p.universe.Origin)
	}
}

// SetHMDTrackingHeight changes the height removed from standing poses.
func (p *Provider) SetHMDTrackingHeight(height float32) {
	p.universe.StandingHeight = height
}

// HMDTrackingHeight returns the height removed from standing poses.
func (p *Provider) HMDTrackingHeight() float32 { return p.universe.StandingHeight }
