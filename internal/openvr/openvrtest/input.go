package openvrtest

import (
	"github.com/Faultbox/midgard-vr/internal/openvr"
)

// PoseRequest records one PoseActionDataRelativeToNow call.
type PoseRequest struct {
	Action   openvr.ActionHandle
	Origin   openvr.TrackingUniverseOrigin
	Seconds  float32
	Restrict openvr.InputValueHandle
}

// HapticCall records one TriggerHapticVibrationAction call.
type HapticCall struct {
	Action                           openvr.ActionHandle
	Start, Duration, Freq, Amplitude float32
	Restrict                         openvr.InputValueHandle
}

// OriginsCall records one ShowActionOrigins call.
type OriginsCall struct {
	Set    openvr.ActionSetHandle
	Action openvr.ActionHandle
}

// Input is a scriptable openvr.Input. Names are resolved to fresh handles on
// first lookup unless listed in Unknown.
type Input struct {
	ManifestPath  string
	ManifestErr   error
	ManifestCalls int

	Unknown    map[string]bool
	SetHandles map[string]openvr.ActionSetHandle
	Handles    map[string]openvr.ActionHandle
	next       uint64

	Updates   [][]openvr.ActiveActionSet
	UpdateErr error

	Digital  map[openvr.ActionHandle]openvr.DigitalActionData
	Analog   map[openvr.ActionHandle]openvr.AnalogActionData
	Pose     map[openvr.ActionHandle]openvr.PoseActionData
	Skeletal map[openvr.ActionHandle]openvr.SkeletalActionData
	Bones    map[openvr.ActionHandle][]openvr.BoneTransform
	// Compressed is the blob SkeletalBoneDataCompressed returns per action.
	Compressed map[openvr.ActionHandle][]byte

	PoseRequests  []PoseRequest
	Haptics       []HapticCall
	ShownOrigins  []OriginsCall
	ShownBindings [][]openvr.ActiveActionSet
}

// NewInput returns an empty input fake.
func NewInput() *Input {
	return &Input{
		Unknown:    map[string]bool{},
		SetHandles: map[string]openvr.ActionSetHandle{},
		Handles:    map[string]openvr.ActionHandle{},
		Digital:    map[openvr.ActionHandle]openvr.DigitalActionData{},
		Analog:     map[openvr.ActionHandle]openvr.AnalogActionData{},
		Pose:       map[openvr.ActionHandle]openvr.PoseActionData{},
		Skeletal:   map[openvr.ActionHandle]openvr.SkeletalActionData{},
		Bones:      map[openvr.ActionHandle][]openvr.BoneTransform{},
		Compressed: map[openvr.ActionHandle][]byte{},
	}
}

func (in *Input) SetActionManifestPath(path string) error {
	in.ManifestCalls++
	in.ManifestPath = path
	return in.ManifestErr
}

func (in *Input) ActionSetHandle(name string) (openvr.ActionSetHandle, error) {
	if in.Unknown[name] {
		return openvr.InvalidActionSetHandle, openvr.InputErrorNameNotFound
	}
	if h, ok := in.SetHandles[name]; ok {
		return h, nil
	}
	in.next++
	h := openvr.ActionSetHandle(in.next)
	in.SetHandles[name] = h
	return h, nil
}

func (in *Input) ActionHandle(name string) (openvr.ActionHandle, error) {
	if in.Unknown[name] {
		return openvr.InvalidActionHandle, openvr.InputErrorNameNotFound
	}
	if h, ok := in.Handles[name]; ok {
		return h, nil
	}
	in.next++
	h := openvr.ActionHandle(in.next)
	in.Handles[name] = h
	return h, nil
}

// LastUpdate returns the sets passed to the most recent UpdateActionState.
func (in *Input) LastUpdate() []openvr.ActiveActionSet {
	if len(in.Updates) == 0 {
		return nil
	}
	return in.Updates[len(in.Updates)-1]
}

func (in *Input) UpdateActionState(sets []openvr.ActiveActionSet) error {
	in.Updates = append(in.Updates, append([]openvr.ActiveActionSet(nil), sets...))
	return in.UpdateErr
}

func (in *Input) DigitalActionData(action openvr.ActionHandle, _ openvr.InputValueHandle) (openvr.DigitalActionData, error) {
	d, ok := in.Digital[action]
	if !ok {
		return d, openvr.InputErrorNoData
	}
	return d, nil
}

func (in *Input) AnalogActionData(action openvr.ActionHandle, _ openvr.InputValueHandle) (openvr.AnalogActionData, error) {
	d, ok := in.Analog[action]
	if !ok {
		return d, openvr.InputErrorNoData
	}
	return d, nil
}

func (in *Input) PoseActionDataRelativeToNow(action openvr.ActionHandle, origin openvr.TrackingUniverseOrigin, seconds float32, restrict openvr.InputValueHandle) (openvr.PoseActionData, error) {
	in.PoseRequests = append(in.PoseRequests, PoseRequest{action, origin, seconds, restrict})
	d, ok := in.Pose[action]
	if !ok {
		return d, openvr.InputErrorNoData
	}
	return d, nil
}

func (in *Input) SkeletalActionData(action openvr.ActionHandle) (openvr.SkeletalActionData, error) {
	d, ok := in.Skeletal[action]
	if !ok {
		return d, openvr.InputErrorNoData
	}
	return d, nil
}

func (in *Input) SkeletalBoneData(action openvr.ActionHandle, _ openvr.SkeletalTransformSpace, _ openvr.SkeletalMotionRange, out []openvr.BoneTransform) error {
	bones, ok := in.Bones[action]
	if !ok {
		return openvr.InputErrorNoData
	}
	if len(out) < len(bones) {
		return openvr.InputErrorBufferTooSmall
	}
	copy(out, bones)
	return nil
}

func (in *Input) SkeletalBoneDataCompressed(action openvr.ActionHandle, _ openvr.SkeletalMotionRange, buf []byte) (int, error) {
	data, ok := in.Compressed[action]
	if !ok {
		return 0, openvr.InputErrorNoData
	}
	if len(buf) < len(data) {
		return 0, openvr.InputErrorBufferTooSmall
	}
	return copy(buf, data), nil
}

func (in *Input) TriggerHapticVibrationAction(action openvr.ActionHandle, start, duration, freq, amp float32, restrict openvr.InputValueHandle) error {
	in.Haptics = append(in.Haptics, HapticCall{action, start, duration, freq, amp, restrict})
	return nil
}

func (in *Input) ShowActionOrigins(set openvr.ActionSetHandle, action openvr.ActionHandle) error {
	in.ShownOrigins = append(in.ShownOrigins, OriginsCall{set, action})
	return nil
}

func (in *Input) ShowBindingsForActionSet(sets []openvr.ActiveActionSet, _ openvr.InputValueHandle) error {
	in.ShownBindings = append(in.ShownBindings, append([]openvr.ActiveActionSet(nil), sets...))
	return nil
}
