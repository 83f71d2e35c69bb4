package openvr

// ActiveActionSet is one layer handed to UpdateActionState.
type ActiveActionSet struct {
	ActionSet          ActionSetHandle
	RestrictedToDevice InputValueHandle
	SecondaryActionSet ActionSetHandle
	Priority           int32
}

// DigitalActionData is the state of a boolean action.
type DigitalActionData struct {
	Active       bool
	ActiveOrigin InputValueHandle
	State        bool
	Changed      bool
	UpdateTime   float32
}

// AnalogActionData is the state of an analog action.
type AnalogActionData struct {
	Active                 bool
	ActiveOrigin           InputValueHandle
	X, Y, Z                float32
	DeltaX, DeltaY, DeltaZ float32
	UpdateTime             float32
}

// PoseActionData is the state of a pose action.
type PoseActionData struct {
	Active       bool
	ActiveOrigin InputValueHandle
	Pose         TrackedDevicePose
}

// SkeletalActionData is the state of a skeletal action.
type SkeletalActionData struct {
	Active       bool
	ActiveOrigin InputValueHandle
}

// SkeletalTransformSpace selects the space bone transforms are reported in.
type SkeletalTransformSpace int

const (
	SkeletalTransformSpaceModel SkeletalTransformSpace = iota
	SkeletalTransformSpaceParent
)

// SkeletalMotionRange selects whether the hand pose wraps the controller.
type SkeletalMotionRange int

const (
	SkeletalMotionRangeWithController SkeletalMotionRange = iota
	SkeletalMotionRangeWithoutController
)

// BoneCount is the number of bones in the runtime hand skeleton.
const BoneCount = 31

// BoneTransform is one bone of a hand skeleton.
type BoneTransform struct {
	Position    Vector4
	Orientation Quaternion
}
