// Package script hosts the Lua VM game scripts run in. The VR provider is
// bound into it as the openvr module and reports back through global
// callback functions.
package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/Faultbox/midgard-vr/pkg/math"
)

// VM is a single Lua state. It is not safe for concurrent use.
type VM struct {
	L *lua.LState
}

// New returns a VM with the standard libraries open.
func New() *VM {
	return &VM{L: lua.NewState()}
}

// Close releases the Lua state.
func (vm *VM) Close() {
	vm.L.Close()
}

// DoFile runs a script file.
func (vm *VM) DoFile(path string) error {
	if err := vm.L.DoFile(path); err != nil {
		return fmt.Errorf("running script %s: %w", path, err)
	}
	return nil
}

// DoString runs a chunk of Lua source.
func (vm *VM) DoString(src string) error {
	if err := vm.L.DoString(src); err != nil {
		return fmt.Errorf("running script: %w", err)
	}
	return nil
}

// HasFunction reports whether a global function called name exists.
func (vm *VM) HasFunction(name string) bool {
	return vm.L.GetGlobal(name).Type() == lua.LTFunction
}

// Call invokes a global function in protected mode. Calling a function
// that is not defined does nothing.
func (vm *VM) Call(name string, args ...lua.LValue) error {
	fn := vm.L.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return nil
	}
	if err := vm.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...); err != nil {
		return fmt.Errorf("calling %s: %w", name, err)
	}
	return nil
}

// Vec3 converts a vector to a table with x, y and z fields.
func (vm *VM) Vec3(v math.Vec3) *lua.LTable {
	t := vm.L.CreateTable(0, 3)
	t.RawSetString("x", lua.LNumber(v.X))
	t.RawSetString("y", lua.LNumber(v.Y))
	t.RawSetString("z", lua.LNumber(v.Z))
	return t
}

// Quat converts a quaternion to a table with x, y, z and w fields.
func (vm *VM) Quat(q math.Quat) *lua.LTable {
	t := vm.L.CreateTable(0, 4)
	t.RawSetString("x", lua.LNumber(q.X))
	t.RawSetString("y", lua.LNumber(q.Y))
	t.RawSetString("z", lua.LNumber(q.Z))
	t.RawSetString("w", lua.LNumber(q.W))
	return t
}

// Mat4 converts a matrix to an array of 16 numbers in row-major order.
func (vm *VM) Mat4(m math.Mat4) *lua.LTable {
	t := vm.L.CreateTable(16, 0)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			t.Append(lua.LNumber(m.At(row, col)))
		}
	}
	return t
}

func field(t *lua.LTable, name string) float32 {
	if n, ok := t.RawGetString(name).(lua.LNumber); ok {
		return float32(n)
	}
	return 0
}

func checkVec2(L *lua.LState, n int) math.Vec2 {
	t := L.CheckTable(n)
	return math.Vec2{X: field(t, "x"), Y: field(t, "y")}
}

func checkVec3(L *lua.LState, n int) math.Vec3 {
	t := L.CheckTable(n)
	return math.Vec3{X: field(t, "x"), Y: field(t, "y"), Z: field(t, "z")}
}

// checkMat4 reads an array of 16 numbers in row-major order. A missing
// entry keeps the identity's value.
func checkMat4(L *lua.LState, n int) math.Mat4 {
	t := L.CheckTable(n)
	m := math.Identity()
	for i := 0; i < 16; i++ {
		if v, ok := t.RawGetInt(i + 1).(lua.LNumber); ok {
			m.Set(i/4, i%4, float32(v))
		}
	}
	return m
}
