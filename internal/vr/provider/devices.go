package provider

import (
	"strconv"
	"strings"

	"github.com/Faultbox/midgard-vr/internal/engine/model"
	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/internal/vr/modelcache"
)

// validDevice reports whether idx addresses a device slot of a session.
func (p *Provider) validDevice(idx int) bool {
	return p.sys != nil && idx >= 0 && idx < openvr.MaxTrackedDeviceCount
}

func (p *Provider) deviceString(idx openvr.TrackedDeviceIndex, prop openvr.TrackedDeviceProperty) string {
	v, perr := p.sys.StringTrackedDeviceProperty(idx, prop)
	if perr != openvr.TrackedPropSuccess {
		return ""
	}
	return v
}

// DeviceClass returns the class of a device slot.
func (p *Provider) DeviceClass(idx int) openvr.TrackedDeviceClass {
	if !p.validDevice(idx) {
		return openvr.TrackedDeviceClassInvalid
	}
	return p.sys.TrackedDeviceClass(openvr.TrackedDeviceIndex(idx))
}

// DeviceConnected reports whether a device slot holds a connected device.
func (p *Provider) DeviceConnected(idx int) bool {
	if !p.validDevice(idx) {
		return false
	}
	return p.sys.IsTrackedDeviceConnected(openvr.TrackedDeviceIndex(idx))
}

// DevicePropertyString returns a string property, or "" when unavailable.
func (p *Provider) DevicePropertyString(idx int, prop openvr.TrackedDeviceProperty) string {
	if !p.validDevice(idx) {
		return ""
	}
	return p.deviceString(openvr.TrackedDeviceIndex(idx), prop)
}

// DevicePropertyBool returns a bool property, or false when unavailable.
func (p *Provider) DevicePropertyBool(idx int, prop openvr.TrackedDeviceProperty) bool {
	if !p.validDevice(idx) {
		return false
	}
	v, perr := p.sys.BoolTrackedDeviceProperty(openvr.TrackedDeviceIndex(idx), prop)
	return perr == openvr.TrackedPropSuccess && v
}

// DevicePropertyInt returns an int32 property, or 0 when unavailable.
func (p *Provider) DevicePropertyInt(idx int, prop openvr.TrackedDeviceProperty) int32 {
	if !p.validDevice(idx) {
		return 0
	}
	v, perr := p.sys.Int32TrackedDeviceProperty(openvr.TrackedDeviceIndex(idx), prop)
	if perr != openvr.TrackedPropSuccess {
		return 0
	}
	return v
}

// DevicePropertyUInt returns a uint64 property in hex, or "" when
// unavailable.
func (p *Provider) DevicePropertyUInt(idx int, prop openvr.TrackedDeviceProperty) string {
	if !p.validDevice(idx) {
		return ""
	}
	v, perr := p.sys.Uint64TrackedDeviceProperty(openvr.TrackedDeviceIndex(idx), prop)
	if perr != openvr.TrackedPropSuccess {
		return ""
	}
	return strconv.FormatUint(v, 16)
}

// DevicePropertyFloat returns a float property, or 0 when unavailable.
func (p *Provider) DevicePropertyFloat(idx int, prop openvr.TrackedDeviceProperty) float32 {
	if !p.validDevice(idx) {
		return 0
	}
	v, perr := p.sys.FloatTrackedDeviceProperty(openvr.TrackedDeviceIndex(idx), prop)
	if perr != openvr.TrackedPropSuccess {
		return 0
	}
	return v
}

// ControllerAxisType returns what drives one of a controller's axes.
func (p *Provider) ControllerAxisType(idx, axis int) openvr.ControllerAxisType {
	if axis < 0 || axis >= openvr.MaxControllerAxes {
		return openvr.ControllerAxisNone
	}
	return openvr.ControllerAxisType(p.DevicePropertyInt(idx, openvr.PropAxis0TypeInt32+openvr.TrackedDeviceProperty(axis)))
}

// ControllerModel returns a device's render model name. It needs the
// render model interface.
func (p *Provider) ControllerModel(idx int) string {
	if p.models == nil {
		return ""
	}
	return p.DevicePropertyString(idx, openvr.PropRenderModelNameString)
}

// TrackedDeviceIndices lists the devices of a class, space separated. A
// result that does not fit the device table yields "".
func (p *Provider) TrackedDeviceIndices(class openvr.TrackedDeviceClass) string {
	if p.sys == nil {
		return ""
	}
	var out [openvr.MaxTrackedDeviceCount]openvr.TrackedDeviceIndex
	n := p.sys.SortedTrackedDeviceIndicesOfClass(class, out[:], openvr.TrackedDeviceIndexInvalid)
	if n >= openvr.MaxTrackedDeviceCount {
		return ""
	}
	parts := make([]string, n)
	for i := range parts {
		parts[i] = strconv.Itoa(int(out[i]))
	}
	return strings.Join(parts, " ")
}

// PreloadRenderModel reserves a model slot, or returns -1 without a session.
func (p *Provider) PreloadRenderModel(device, name string) int {
	if p.cache == nil {
		return -1
	}
	return p.cache.PreloadRenderModel(device, name)
}

// PreloadRenderModelTexture reserves a texture slot, or returns -1 without
// a session.
func (p *Provider) PreloadRenderModelTexture(device string, id openvr.TextureID) int {
	if p.cache == nil {
		return -1
	}
	return p.cache.PreloadRenderModelTexture(device, id)
}

// RenderModel polls a model slot.
func (p *Provider) RenderModel(idx int) (*model.RenderModel, modelcache.LoadState) {
	if p.cache == nil {
		return nil, modelcache.Failed
	}
	return p.cache.RenderModel(idx)
}

// RenderModelTextureName returns the material texture name of a texture
// slot.
func (p *Provider) RenderModelTextureName(idx int) (string, bool) {
	if p.cache == nil {
		return "", false
	}
	return p.cache.RenderModelTextureName(idx)
}

// ResetRenderModels drops every cached model and texture.
func (p *Provider) ResetRenderModels() {
	if p.cache != nil {
		p.cache.Reset()
	}
}

// ModelCache returns the render model cache, or nil without a session.
func (p *Provider) ModelCache() *modelcache.Cache { return p.cache }
