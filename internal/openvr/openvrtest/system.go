package openvrtest

import (
	"github.com/Faultbox/midgard-vr/internal/openvr"
)

// PropKey addresses one device property.
type PropKey struct {
	Index openvr.TrackedDeviceIndex
	Prop  openvr.TrackedDeviceProperty
}

// System is a scriptable openvr.System.
type System struct {
	Width, Height uint32
	// Projection holds left, right, top, bottom tangents per eye.
	Projection [2][4]float32
	EyeToHead  [2]openvr.Matrix34

	Events []openvr.Event

	Classes   map[openvr.TrackedDeviceIndex]openvr.TrackedDeviceClass
	Connected map[openvr.TrackedDeviceIndex]bool

	Strings map[PropKey]string
	Bools   map[PropKey]bool
	Ints    map[PropKey]int32
	Uints   map[PropKey]uint64
	Floats  map[PropKey]float32
}

// NewSystem returns a system with an HMD at index 0.
func NewSystem() *System {
	s := &System{
		Width:  1512,
		Height: 1680,
		Projection: [2][4]float32{
			{-1.39, 1.24, -1.47, 1.46},
			{-1.24, 1.39, -1.47, 1.46},
		},
		Classes:   map[openvr.TrackedDeviceIndex]openvr.TrackedDeviceClass{},
		Connected: map[openvr.TrackedDeviceIndex]bool{},
		Strings:   map[PropKey]string{},
		Bools:     map[PropKey]bool{},
		Ints:      map[PropKey]int32{},
		Uints:     map[PropKey]uint64{},
		Floats:    map[PropKey]float32{},
	}
	s.EyeToHead[openvr.EyeLeft] = openvr.IdentityMatrix34()
	s.EyeToHead[openvr.EyeLeft][0][3] = -0.032
	s.EyeToHead[openvr.EyeRight] = openvr.IdentityMatrix34()
	s.EyeToHead[openvr.EyeRight][0][3] = 0.032

	s.AddDevice(openvr.TrackedDeviceIndexHmd, openvr.TrackedDeviceClassHMD)
	s.Strings[PropKey{0, openvr.PropTrackingSystemNameString}] = "lighthouse"
	s.Strings[PropKey{0, openvr.PropSerialNumberString}] = "SIM-HMD-0001"
	s.Strings[PropKey{0, openvr.PropRenderModelNameString}] = "generic_hmd"
	return s
}

// AddDevice registers a connected device.
func (s *System) AddDevice(index openvr.TrackedDeviceIndex, class openvr.TrackedDeviceClass) {
	s.Classes[index] = class
	s.Connected[index] = true
}

// Push queues an event for PollNextEvent.
func (s *System) Push(ev openvr.Event) {
	s.Events = append(s.Events, ev)
}

func (s *System) RecommendedRenderTargetSize() (uint32, uint32) {
	return s.Width, s.Height
}

func (s *System) ProjectionRaw(eye openvr.Eye) (float32, float32, float32, float32) {
	p := s.Projection[eye]
	return p[0], p[1], p[2], p[3]
}

func (s *System) EyeToHeadTransform(eye openvr.Eye) openvr.Matrix34 {
	return s.EyeToHead[eye]
}

func (s *System) PollNextEvent(ev *openvr.Event) bool {
	if len(s.Events) == 0 {
		return false
	}
	*ev = s.Events[0]
	s.Events = s.Events[1:]
	return true
}

func (s *System) TrackedDeviceClass(index openvr.TrackedDeviceIndex) openvr.TrackedDeviceClass {
	return s.Classes[index]
}

func (s *System) IsTrackedDeviceConnected(index openvr.TrackedDeviceIndex) bool {
	return s.Connected[index]
}

func (s *System) SortedTrackedDeviceIndicesOfClass(class openvr.TrackedDeviceClass, out []openvr.TrackedDeviceIndex, _ openvr.TrackedDeviceIndex) uint32 {
	var n uint32
	for i := openvr.TrackedDeviceIndex(0); i < openvr.MaxTrackedDeviceCount; i++ {
		if c, ok := s.Classes[i]; !ok || c != class {
			continue
		}
		if int(n) < len(out) {
			out[n] = i
		}
		n++
	}
	return n
}

func (s *System) lookup(index openvr.TrackedDeviceIndex, present bool) openvr.TrackedPropertyError {
	if _, ok := s.Classes[index]; !ok {
		return openvr.TrackedPropInvalidDevice
	}
	if !present {
		return openvr.TrackedPropUnknownProperty
	}
	return openvr.TrackedPropSuccess
}

func (s *System) StringTrackedDeviceProperty(index openvr.TrackedDeviceIndex, prop openvr.TrackedDeviceProperty) (string, openvr.TrackedPropertyError) {
	v, ok := s.Strings[PropKey{index, prop}]
	return v, s.lookup(index, ok)
}

func (s *System) BoolTrackedDeviceProperty(index openvr.TrackedDeviceIndex, prop openvr.TrackedDeviceProperty) (bool, openvr.TrackedPropertyError) {
	v, ok := s.Bools[PropKey{index, prop}]
	return v, s.lookup(index, ok)
}

func (s *System) Int32TrackedDeviceProperty(index openvr.TrackedDeviceIndex, prop openvr.TrackedDeviceProperty) (int32, openvr.TrackedPropertyError) {
	v, ok := s.Ints[PropKey{index, prop}]
	return v, s.lookup(index, ok)
}

func (s *System) Uint64TrackedDeviceProperty(index openvr.TrackedDeviceIndex, prop openvr.TrackedDeviceProperty) (uint64, openvr.TrackedPropertyError) {
	v, ok := s.Uints[PropKey{index, prop}]
	return v, s.lookup(index, ok)
}

func (s *System) FloatTrackedDeviceProperty(index openvr.TrackedDeviceIndex, prop openvr.TrackedDeviceProperty) (float32, openvr.TrackedPropertyError) {
	v, ok := s.Floats[PropKey{index, prop}]
	return v, s.lookup(index, ok)
}
