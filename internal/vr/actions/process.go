package actions

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/internal/vr/coords"
	"github.com/Faultbox/midgard-vr/pkg/math"
)

// ProcessInput polls every action of the sets on the stack. It does nothing
// before a manifest is accepted or while the stack is empty.
func (m *Manager) ProcessInput() {
	if !m.initialized || m.depth == 0 {
		return
	}

	if err := m.input.UpdateActionState(m.activeSets[:m.depth]); err != nil {
		log().Debug("VR action state update failed", zap.Error(err))
		return
	}

	m.processDigital()
	m.processAnalog()
	m.processPoses()
	m.processSkeletal()
}

func (m *Manager) processDigital() {
	for i := range m.digital {
		a := &m.digital[i]
		if !a.active {
			continue
		}
		data, err := m.input.DigitalActionData(a.handle, openvr.InvalidInputValueHandle)
		if err != nil || !data.Active || !data.Changed {
			continue
		}
		m.sink.DigitalAction(a.callback, data.ActiveOrigin, data.State)
	}
}

func (m *Manager) processAnalog() {
	for i := range m.analog {
		a := &m.analog[i]
		if !a.active {
			continue
		}
		data, err := m.input.AnalogActionData(a.handle, openvr.InvalidInputValueHandle)
		if err != nil || !data.Active {
			continue
		}
		if data.DeltaX == 0 && data.DeltaY == 0 && data.DeltaZ == 0 {
			continue
		}
		m.sink.AnalogAction(a.callback, data.ActiveOrigin, data.X, data.Y, data.Z)
	}
}

func (m *Manager) processPoses() {
	for i := range m.poses {
		a := &m.poses[i]
		if !a.active {
			continue
		}
		data, err := m.input.PoseActionDataRelativeToNow(a.handle, m.universe.Origin, 0, openvr.InvalidInputValueHandle)
		if err != nil || !data.Active || !data.Pose.PoseIsValid || !data.Pose.DeviceIsConnected {
			continue
		}

		mat := m.universe.PoseToEngine(data.Pose.DeviceToAbsoluteTracking)
		pos := mat.Position()
		rot := math.QuatFromMat4(mat)
		a.lastPosition = pos
		a.lastRotation = rot
		a.valid = true

		if m.move != nil {
			m.move.SetPose(a.moveIndex, pos, rot)
		}
		if a.poseCallback != "" {
			m.sink.PoseAction(a.poseCallback, data.ActiveOrigin, pos, rot)
		}
		if a.velocityCallback != "" {
			m.sink.PoseVelocity(a.velocityCallback, data.ActiveOrigin,
				coords.ActionVelocity(data.Pose.Velocity),
				coords.ActionVelocity(data.Pose.AngularVelocity))
		}
	}
}

func (m *Manager) processSkeletal() {
	if m.move == nil {
		return
	}
	for i := range m.skeletal {
		a := &m.skeletal[i]
		if !a.active {
			continue
		}
		data, err := m.input.SkeletalActionData(a.handle)
		if err != nil || !data.Active {
			continue
		}
		n, err := m.input.SkeletalBoneDataCompressed(a.handle, a.motionRange(), m.move.BlobBuffer(a.moveIndex))
		if err != nil {
			log().Warn("VR skeleton does not fit the move blob",
				zap.String("action", a.name),
				zap.Int("slot", a.moveIndex),
				zap.Error(err))
			continue
		}
		m.move.SetBlobSize(a.moveIndex, n)
	}
}
