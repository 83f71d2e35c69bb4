package actions

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-vr/internal/openvr"
)

// ActivateActionSet makes set the only layer on the stack.
func (m *Manager) ActivateActionSet(set int) bool {
	if set < 0 || set >= len(m.sets) {
		return false
	}
	m.stack[0] = set
	m.depth = 1
	m.resetActiveSets()
	return true
}

// PushActionSetLayer puts set on top of the stack. A set already on the
// stack is moved to the top. Pushing onto a full stack fails and leaves it
// unchanged.
func (m *Manager) PushActionSetLayer(set int) bool {
	if set < 0 || set >= len(m.sets) {
		return false
	}

	if at := m.stackIndex(set); at >= 0 {
		if at == m.depth-1 {
			return true
		}
		m.remove(at)
	}
	if m.depth >= MaxActiveSets {
		log().Error("VR action set stack full",
			zap.Int("set", set),
			zap.Int("depth", m.depth))
		return false
	}

	m.stack[m.depth] = set
	m.depth++
	m.resetActiveSets()
	return true
}

// PopActionSetLayer removes set from wherever it is on the stack. The last
// remaining layer cannot be popped.
func (m *Manager) PopActionSetLayer(set int) bool {
	if set < 0 || set >= len(m.sets) {
		return false
	}
	if m.depth < 2 {
		log().Error("VR cannot pop the last action set layer", zap.Int("set", set))
		return false
	}

	at := m.stackIndex(set)
	if at < 0 {
		return false
	}
	m.remove(at)
	m.resetActiveSets()
	return true
}

func (m *Manager) stackIndex(set int) int {
	for i := 0; i < m.depth; i++ {
		if m.stack[i] == set {
			return i
		}
	}
	return -1
}

// remove closes the gap left by the layer at depth at.
func (m *Manager) remove(at int) {
	copy(m.stack[at:m.depth], m.stack[at+1:m.depth])
	m.depth--
}

// resetActiveSets rebuilds the layer descriptors handed to the runtime and
// each action's active flag. Layers closer to the top get higher priority.
func (m *Manager) resetActiveSets() {
	onStack := make([]bool, len(m.sets))
	for i := 0; i < m.depth; i++ {
		set := m.stack[i]
		onStack[set] = true
		m.activeSets[i] = openvr.ActiveActionSet{
			ActionSet:          m.sets[set].handle,
			RestrictedToDevice: openvr.InvalidInputValueHandle,
			SecondaryActionSet: openvr.InvalidActionSetHandle,
			Priority:           int32(i + 1),
		}
	}

	for i := range m.digital {
		m.digital[i].active = onStack[m.digital[i].set]
	}
	for i := range m.analog {
		m.analog[i].active = onStack[m.analog[i].set]
	}
	for i := range m.poses {
		m.poses[i].active = onStack[m.poses[i].set]
	}
	for i := range m.skeletal {
		m.skeletal[i].active = onStack[m.skeletal[i].set]
	}
}

// ActiveSets returns the set indices on the stack, base first.
func (m *Manager) ActiveSets() []int {
	return append([]int(nil), m.stack[:m.depth]...)
}

// ActiveLayers returns the descriptors the next poll hands to the runtime.
func (m *Manager) ActiveLayers() []openvr.ActiveActionSet {
	return append([]openvr.ActiveActionSet(nil), m.activeSets[:m.depth]...)
}

// ActionActive reports whether an action of the given kind is polled.
func (m *Manager) ActionActive(kind Kind, idx int) bool {
	switch kind {
	case KindDigital:
		return idx >= 0 && idx < len(m.digital) && m.digital[idx].active
	case KindAnalog:
		return idx >= 0 && idx < len(m.analog) && m.analog[idx].active
	case KindPose:
		return idx >= 0 && idx < len(m.poses) && m.poses[idx].active
	case KindSkeletal:
		return idx >= 0 && idx < len(m.skeletal) && m.skeletal[idx].active
	}
	return false
}
