package openvr

// TrackedDeviceProperty names a device property.
type TrackedDeviceProperty int32

const (
	PropInvalid                        TrackedDeviceProperty = 0
	PropTrackingSystemNameString       TrackedDeviceProperty = 1000
	PropModelNumberString              TrackedDeviceProperty = 1001
	PropSerialNumberString             TrackedDeviceProperty = 1002
	PropRenderModelNameString          TrackedDeviceProperty = 1003
	PropWillDriftInYawBool             TrackedDeviceProperty = 1004
	PropManufacturerNameString         TrackedDeviceProperty = 1005
	PropTrackingFirmwareVersionString  TrackedDeviceProperty = 1006
	PropHardwareRevisionString         TrackedDeviceProperty = 1007
	PropDeviceIsWirelessBool           TrackedDeviceProperty = 1010
	PropDeviceIsChargingBool           TrackedDeviceProperty = 1011
	PropDeviceBatteryPercentageFloat   TrackedDeviceProperty = 1012
	PropHardwareRevisionUint64         TrackedDeviceProperty = 1017
	PropFirmwareVersionUint64          TrackedDeviceProperty = 1020
	PropDeviceClassInt32               TrackedDeviceProperty = 1029
	PropSecondsFromVsyncToPhotonsFloat TrackedDeviceProperty = 2001
	PropDisplayFrequencyFloat          TrackedDeviceProperty = 2002
	PropUserIpdMetersFloat             TrackedDeviceProperty = 2003
	PropAttachedDeviceIdString         TrackedDeviceProperty = 3000
	PropSupportedButtonsUint64         TrackedDeviceProperty = 3001
	PropAxis0TypeInt32                 TrackedDeviceProperty = 3002
	PropAxis1TypeInt32                 TrackedDeviceProperty = 3003
	PropAxis2TypeInt32                 TrackedDeviceProperty = 3004
	PropAxis3TypeInt32                 TrackedDeviceProperty = 3005
	PropAxis4TypeInt32                 TrackedDeviceProperty = 3006
	PropControllerRoleHintInt32        TrackedDeviceProperty = 3007
)

// MaxControllerAxes is the number of Axis*Type properties a device exposes.
const MaxControllerAxes = 5
