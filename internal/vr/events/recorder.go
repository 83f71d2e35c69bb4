package events

import (
	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/internal/vr/coords"
	"github.com/Faultbox/midgard-vr/pkg/math"
)

// Kind identifies a Sink method.
type Kind int

const (
	KindHMDPose Kind = iota
	KindDeviceActivated
	KindDeviceRoleChanged
	KindInputReady
	KindDigitalAction
	KindAnalogAction
	KindPoseAction
	KindPoseVelocity
	KindKeyboardClosed
	KindKeyboardInput
	KindKeyboardDone
)

var kindNames = [...]string{
	"HMDPose",
	"DeviceActivated",
	"DeviceRoleChanged",
	"InputReady",
	"DigitalAction",
	"AnalogAction",
	"PoseAction",
	"PoseVelocity",
	"KeyboardClosed",
	"KeyboardInput",
	"KeyboardDone",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Record is one captured notification. Only the fields of its Kind are set.
type Record struct {
	Kind     Kind
	Callback string
	Origin   openvr.InputValueHandle
	Device   openvr.TrackedDeviceIndex
	Overlay  int
	Cookie   uint64
	Text     string
	State    bool
	Analog   [3]float32
	Pose     coords.Pose
	Position math.Vec3
	Rotation math.Quat
	Velocity math.Vec3
	Angular  math.Vec3
}

// Recorder keeps every notification in arrival order.
type Recorder struct {
	Records []Record
}

// Of returns the records of one kind.
func (r *Recorder) Of(kind Kind) []Record {
	var out []Record
	for _, rec := range r.Records {
		if rec.Kind == kind {
			out = append(out, rec)
		}
	}
	return out
}

// Count returns how many records of a kind arrived.
func (r *Recorder) Count(kind Kind) int {
	return len(r.Of(kind))
}

// Kinds returns the kind of every record in order.
func (r *Recorder) Kinds() []Kind {
	out := make([]Kind, len(r.Records))
	for i, rec := range r.Records {
		out[i] = rec.Kind
	}
	return out
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.Records = r.Records[:0]
}

func (r *Recorder) add(rec Record) {
	r.Records = append(r.Records, rec)
}

func (r *Recorder) HMDPose(pose coords.Pose) {
	r.add(Record{Kind: KindHMDPose, Pose: pose})
}

func (r *Recorder) DeviceActivated(index openvr.TrackedDeviceIndex) {
	r.add(Record{Kind: KindDeviceActivated, Device: index})
}

func (r *Recorder) DeviceRoleChanged() {
	r.add(Record{Kind: KindDeviceRoleChanged})
}

func (r *Recorder) InputReady() {
	r.add(Record{Kind: KindInputReady})
}

func (r *Recorder) DigitalAction(callback string, origin openvr.InputValueHandle, state bool) {
	r.add(Record{Kind: KindDigitalAction, Callback: callback, Origin: origin, State: state})
}

func (r *Recorder) AnalogAction(callback string, origin openvr.InputValueHandle, x, y, z float32) {
	r.add(Record{Kind: KindAnalogAction, Callback: callback, Origin: origin, Analog: [3]float32{x, y, z}})
}

func (r *Recorder) PoseAction(callback string, origin openvr.InputValueHandle, pos math.Vec3, rot math.Quat) {
	r.add(Record{Kind: KindPoseAction, Callback: callback, Origin: origin, Position: pos, Rotation: rot})
}

func (r *Recorder) PoseVelocity(callback string, origin openvr.InputValueHandle, vel, angVel math.Vec3) {
	r.add(Record{Kind: KindPoseVelocity, Callback: callback, Origin: origin, Velocity: vel, Angular: angVel})
}

func (r *Recorder) KeyboardClosed(overlay int, cookie uint64) {
	r.add(Record{Kind: KindKeyboardClosed, Overlay: overlay, Cookie: cookie})
}

func (r *Recorder) KeyboardInput(overlay int, text string, cookie uint64) {
	r.add(Record{Kind: KindKeyboardInput, Overlay: overlay, Text: text, Cookie: cookie})
}

func (r *Recorder) KeyboardDone(overlay int, cookie uint64) {
	r.add(Record{Kind: KindKeyboardDone, Overlay: overlay, Cookie: cookie})
}
