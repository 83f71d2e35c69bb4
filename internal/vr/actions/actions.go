// Package actions drives the runtime's action-based input: it resolves action
// sets and actions to handles, polls them once per frame, forwards changes to
// an event sink and copies tracked poses and hand skeletons into the extended
// move channels.
//
// Action sets are layered on a small stack. Every action belongs to one set
// and is polled only while that set is on the stack.
package actions

import (
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-vr/internal/engine/move"
	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/internal/vr/coords"
	"github.com/Faultbox/midgard-vr/internal/vr/events"
	"github.com/Faultbox/midgard-vr/pkg/math"
)

// MaxActiveSets is the depth of the action set stack.
const MaxActiveSets = 5

// Kind is the type of an action.
type Kind int

const (
	KindDigital Kind = iota
	KindAnalog
	KindPose
	KindSkeletal
)

func (k Kind) String() string {
	switch k {
	case KindDigital:
		return "digital"
	case KindAnalog:
		return "analog"
	case KindPose:
		return "pose"
	case KindSkeletal:
		return "skeletal"
	}
	return "unknown"
}

type actionSet struct {
	name   string
	handle openvr.ActionSetHandle
}

// action is the part every kind shares.
type action struct {
	set    int
	name   string
	handle openvr.ActionHandle
	active bool
}

type digitalAction struct {
	action
	callback string
}

type analogAction struct {
	action
	callback string
}

type poseAction struct {
	action
	poseCallback     string
	velocityCallback string
	moveIndex        int

	lastPosition math.Vec3
	lastRotation math.Quat
	valid        bool
}

type skeletalAction struct {
	action
	moveIndex      int
	withController bool
}

// Manager owns every registered action set, action and haptic output.
type Manager struct {
	input    openvr.Input
	universe *coords.TrackingUniverse
	move     *move.Extended
	sink     events.Sink
	appRoot  string

	initialized bool

	sets     []actionSet
	digital  []digitalAction
	analog   []analogAction
	poses    []poseAction
	skeletal []skeletalAction
	haptics  []openvr.ActionHandle

	stack      [MaxActiveSets]int
	depth      int
	activeSets [MaxActiveSets]openvr.ActiveActionSet
}

// New returns a manager reading from input. Poses are converted through
// universe and written into mv; manifest paths resolve against appRoot.
func New(input openvr.Input, universe *coords.TrackingUniverse, mv *move.Extended, sink events.Sink, appRoot string) *Manager {
	if sink == nil {
		sink = events.Nop{}
	}
	return &Manager{
		input:    input,
		universe: universe,
		move:     mv,
		sink:     sink,
		appRoot:  appRoot,
	}
}

// SetSink replaces the event sink.
func (m *Manager) SetSink(sink events.Sink) {
	if sink == nil {
		sink = events.Nop{}
	}
	m.sink = sink
}

// Initialized reports whether a manifest has been accepted.
func (m *Manager) Initialized() bool { return m.initialized }

// SetActionManifestPath hands the action manifest to the runtime. It only
// takes effect once; later calls return nil. A manifest the runtime reports
// as mismatched still initialises input, and its error is returned.
func (m *Manager) SetActionManifestPath(path string) error {
	if m.initialized {
		return nil
	}

	full := path
	if !filepath.IsAbs(path) {
		full = filepath.Join(m.appRoot, path)
	}
	// The runtime can override the manifest location, so a missing file
	// is only worth a warning.
	if _, err := os.Stat(full); err != nil {
		log().Warn("VR action manifest not found", zap.String("path", full))
	}

	err := m.input.SetActionManifestPath(full)
	if err != nil && !errors.Is(err, openvr.InputErrorMismatchedActionManifest) {
		log().Error("VR input initialization failed", zap.String("path", full), zap.Error(err))
		return err
	}

	m.initialized = true
	m.sink.InputReady()
	return err
}

// AddActionSet resolves a set and returns its index, or -1.
func (m *Manager) AddActionSet(name string) int {
	if name == "" {
		return -1
	}
	h, err := m.input.ActionSetHandle(name)
	if err != nil {
		log().Warn("VR add action set failed", zap.String("set", name), zap.Error(err))
		return -1
	}
	m.sets = append(m.sets, actionSet{name: name, handle: h})
	return len(m.sets) - 1
}

func (m *Manager) resolve(kind Kind, set int, name string) (action, bool) {
	if name == "" || set < 0 || set >= len(m.sets) {
		return action{}, false
	}
	h, err := m.input.ActionHandle(name)
	if err != nil {
		log().Warn("VR add action failed",
			zap.Stringer("kind", kind),
			zap.String("action", name),
			zap.Error(err))
		return action{}, false
	}
	return action{set: set, name: name, handle: h, active: m.stackIndex(set) >= 0}, true
}

// AddDigitalAction registers a boolean action whose changes are reported
// under callback. It returns the action's index, or -1.
func (m *Manager) AddDigitalAction(set int, name, callback string) int {
	if callback == "" {
		return -1
	}
	a, ok := m.resolve(KindDigital, set, name)
	if !ok {
		return -1
	}
	m.digital = append(m.digital, digitalAction{action: a, callback: callback})
	return len(m.digital) - 1
}

// AddAnalogAction registers an analog action whose movement is reported
// under callback. It returns the action's index, or -1.
func (m *Manager) AddAnalogAction(set int, name, callback string) int {
	if callback == "" {
		return -1
	}
	a, ok := m.resolve(KindAnalog, set, name)
	if !ok {
		return -1
	}
	m.analog = append(m.analog, analogAction{action: a, callback: callback})
	return len(m.analog) - 1
}

// AddPoseAction registers a pose action. Either callback may be empty.
// A moveIndex outside the move slots means the pose is not written to
// extended move.
func (m *Manager) AddPoseAction(set int, name, poseCallback, velocityCallback string, moveIndex int) int {
	a, ok := m.resolve(KindPose, set, name)
	if !ok {
		return -1
	}
	m.poses = append(m.poses, poseAction{
		action:           a,
		poseCallback:     poseCallback,
		velocityCallback: velocityCallback,
		moveIndex:        moveIndex,
		lastRotation:     math.QuatIdentity(),
	})
	return len(m.poses) - 1
}

// AddSkeletalAction registers a hand skeleton written into move slot
// moveIndex, which must be valid.
func (m *Manager) AddSkeletalAction(set int, name string, moveIndex int) int {
	if !move.ValidSlot(moveIndex) {
		return -1
	}
	a, ok := m.resolve(KindSkeletal, set, name)
	if !ok {
		return -1
	}
	m.skeletal = append(m.skeletal, skeletalAction{action: a, moveIndex: moveIndex})
	return len(m.skeletal) - 1
}

// AddHapticOutput resolves a vibration output and returns its index, or -1.
func (m *Manager) AddHapticOutput(name string) int {
	if name == "" {
		return -1
	}
	h, err := m.input.ActionHandle(name)
	if err != nil {
		log().Warn("VR add haptic output failed", zap.String("output", name), zap.Error(err))
		return -1
	}
	m.haptics = append(m.haptics, h)
	return len(m.haptics) - 1
}

// PoseIndex returns the index of the pose action called name, or -1.
func (m *Manager) PoseIndex(name string) int {
	for i := range m.poses {
		if m.poses[i].name == name {
			return i
		}
	}
	return -1
}

// CurrentPose returns the last engine-space pose read for a pose action and
// whether it was valid.
func (m *Manager) CurrentPose(idx int) (math.Vec3, math.Quat, bool) {
	if idx < 0 || idx >= len(m.poses) {
		return math.Vec3{}, math.QuatIdentity(), false
	}
	p := &m.poses[idx]
	return p.lastPosition, p.lastRotation, p.valid
}

// SetPoseCallbacks replaces the callback names of a pose action.
func (m *Manager) SetPoseCallbacks(idx int, poseCallback, velocityCallback string) bool {
	if idx < 0 || idx >= len(m.poses) {
		return false
	}
	m.poses[idx].poseCallback = poseCallback
	m.poses[idx].velocityCallback = velocityCallback
	return true
}

// SkeletonIndex returns the index of the skeletal action called name, or -1.
func (m *Manager) SkeletonIndex(name string) int {
	for i := range m.skeletal {
		if m.skeletal[i].name == name {
			return i
		}
	}
	return -1
}

// SkeletonNodes reads the full hand skeleton of a skeletal action in model
// space. It fails while the action is inactive.
func (m *Manager) SkeletonNodes(idx int) ([]openvr.BoneTransform, bool) {
	if idx < 0 || idx >= len(m.skeletal) {
		return nil, false
	}
	s := &m.skeletal[idx]
	data, err := m.input.SkeletalActionData(s.handle)
	if err != nil || !data.Active {
		return nil, false
	}
	bones := make([]openvr.BoneTransform, openvr.BoneCount)
	if err := m.input.SkeletalBoneData(s.handle, openvr.SkeletalTransformSpaceModel, s.motionRange(), bones); err != nil {
		return nil, false
	}
	return bones, true
}

// SetSkeletonMode selects whether a skeleton is posed around the controller.
func (m *Manager) SetSkeletonMode(idx int, withController bool) bool {
	if idx < 0 || idx >= len(m.skeletal) {
		return false
	}
	m.skeletal[idx].withController = withController
	return true
}

func (s *skeletalAction) motionRange() openvr.SkeletalMotionRange {
	if s.withController {
		return openvr.SkeletalMotionRangeWithController
	}
	return openvr.SkeletalMotionRangeWithoutController
}

// TriggerHapticEvent fires a vibration on a haptic output.
func (m *Manager) TriggerHapticEvent(idx int, start, duration, frequency, amplitude float32) bool {
	if idx < 0 || idx >= len(m.haptics) {
		return false
	}
	err := m.input.TriggerHapticVibrationAction(m.haptics[idx], start, duration, frequency, amplitude, openvr.InvalidInputValueHandle)
	return err == nil
}

// ShowActionOrigins asks the runtime to highlight where an action is bound.
func (m *Manager) ShowActionOrigins(set int, kind Kind, idx int) {
	if set < 0 || set >= len(m.sets) {
		return
	}

	h := openvr.InvalidActionHandle
	switch kind {
	case KindDigital:
		if idx >= 0 && idx < len(m.digital) {
			h = m.digital[idx].handle
		}
	case KindAnalog:
		if idx >= 0 && idx < len(m.analog) {
			h = m.analog[idx].handle
		}
	case KindPose:
		if idx >= 0 && idx < len(m.poses) {
			h = m.poses[idx].handle
		}
	default:
		return
	}
	if h == openvr.InvalidActionHandle {
		return
	}
	if err := m.input.ShowActionOrigins(m.sets[set].handle, h); err != nil {
		log().Warn("VR show action origins failed", zap.Error(err))
	}
}

// ShowActionSetBinds opens the runtime's binding view for one set.
func (m *Manager) ShowActionSetBinds(set int) {
	if set < 0 || set >= len(m.sets) {
		return
	}
	active := []openvr.ActiveActionSet{{
		ActionSet:          m.sets[set].handle,
		RestrictedToDevice: openvr.InvalidInputValueHandle,
		SecondaryActionSet: openvr.InvalidActionSetHandle,
		Priority:           1,
	}}
	if err := m.input.ShowBindingsForActionSet(active, openvr.InvalidInputValueHandle); err != nil {
		log().Warn("VR show action set bindings failed", zap.Error(err))
	}
}

// Counts returns how many sets, digital, analog, pose, skeletal actions and
// haptic outputs are registered.
func (m *Manager) Counts() (sets, digital, analog, poses, skeletal, haptics int) {
	return len(m.sets), len(m.digital), len(m.analog), len(m.poses), len(m.skeletal), len(m.haptics)
}

// Reset forgets every registration and the stack, and expects a new
// manifest for the next session.
func (m *Manager) Reset() {
	m.initialized = false
	m.sets = nil
	m.digital = nil
	m.analog = nil
	m.poses = nil
	m.skeletal = nil
	m.haptics = nil
	m.depth = 0
}
