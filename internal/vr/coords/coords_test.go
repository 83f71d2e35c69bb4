package coords

import (
	stdmath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-vr/internal/engine/input"
	"github.com/Faultbox/midgard-vr/internal/gpu"
	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/pkg/math"
)

const epsilon = 1e-5

func approx(a, b float32) bool {
	return stdmath.Abs(float64(a-b)) < epsilon
}

func approxMat(a, b math.Mat4) bool {
	for i := range a {
		if !approx(a[i], b[i]) {
			return false
		}
	}
	return true
}

// samplePose is a rotation about an oblique axis plus a translation, written
// as a runtime matrix.
func samplePose() openvr.Matrix34 {
	r := math.QuatFromAxisAngle(math.Vec3{X: 1, Y: 2, Z: 3}.Normalize(), 0.7).ToMat4()
	m := MatrixToRuntime34(r)
	m[0][3], m[1][3], m[2][3] = 0.25, 1.5, -2
	return m
}

func TestPointConversion(t *testing.T) {
	got := PointFromRuntime(openvr.Vector3{1, 2, 3})
	want := math.Vec3{X: -1, Y: 3, Z: -2}
	if got != want {
		t.Errorf("PointFromRuntime: got %v, want %v", got, want)
	}

	back := PointToRuntime(got)
	if back != (openvr.Vector3{1, 2, 3}) {
		t.Errorf("round trip: got %v, want [1 2 3]", back)
	}

	p := math.Vec3{X: 0.5, Y: -4, Z: 9}
	if rt := PointFromRuntime(PointToRuntime(p)); rt != p {
		t.Errorf("engine round trip: got %v, want %v", rt, p)
	}
}

func TestMatrixLiftRoundTrip(t *testing.T) {
	m := samplePose()
	lifted := MatrixFromRuntime34(m)

	if lifted.At(1, 3) != m[1][3] {
		t.Errorf("position lift: got %v, want %v", lifted.At(1, 3), m[1][3])
	}
	if lifted.At(3, 3) != 1 || lifted.At(3, 0) != 0 {
		t.Errorf("last row: got %v %v, want 0 1", lifted.At(3, 0), lifted.At(3, 3))
	}
	if got := MatrixToRuntime34(lifted); got != m {
		t.Errorf("MatrixToRuntime34: got %v, want %v", got, m)
	}
}

func TestAffineRows(t *testing.T) {
	m := samplePose()
	e := AffineFromRuntime(m)

	col := func(j int) [3]float32 { return [3]float32{m[0][j], m[1][j], m[2][j]} }
	c0, c1, c2, c3 := col(0), col(1), col(2), col(3)

	want := [4][4]float32{
		{c0[0], -c2[0], c1[0], c3[0]},
		{-c0[2], c2[2], -c1[2], -c3[2]},
		{c0[1], -c2[1], c1[1], c3[1]},
		{0, 0, 0, 1},
	}
	for row := 0; row < 4; row++ {
		for c := 0; c < 4; c++ {
			if !approx(e.At(row, c), want[row][c]) {
				t.Errorf("element (%d,%d): got %v, want %v", row, c, e.At(row, c), want[row][c])
			}
		}
	}
}

func TestAffineRoundTrip(t *testing.T) {
	m := samplePose()
	back := AffineToRuntime(AffineFromRuntime(m))
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			if !approx(back[row][col], m[row][col]) {
				t.Errorf("runtime (%d,%d): got %v, want %v", row, col, back[row][col], m[row][col])
			}
		}
	}

	e := math.Mat4FromPose(math.QuatFromAxisAngle(math.Vec3{Z: 1}, 1.1), math.Vec3{X: 3, Y: 4, Z: 5})
	if got := AffineFromRuntime(AffineToRuntime(e)); !approxMat(got, e) {
		t.Errorf("engine round trip: got %v, want %v", got, e)
	}
}

func TestMatrix34FromColumns(t *testing.T) {
	// Columns: x axis, y axis, z axis, translation.
	cols := mgl32.Mat3x4{
		1, 0, 0,
		0, 0, -1,
		0, 1, 0,
		0.5, 1.7, -2,
	}
	m := Matrix34FromColumns(cols)
	want := openvr.Matrix34{
		{1, 0, 0, 0.5},
		{0, 0, 1, 1.7},
		{0, -1, 0, -2},
	}
	if m != want {
		t.Errorf("got %v, want %v", m, want)
	}
}

func TestRawFromProjection(t *testing.T) {
	proj := math.Frustum(1, 1.2, 0.9, 1.1, 0.1, 100)
	l, r, top, bottom := RawFromProjection(proj)
	want := [4]float32{-1, 1.2, -1.1, 0.9}
	for i, got := range [4]float32{l, r, top, bottom} {
		if !approx(got, want[i]) {
			t.Errorf("tangent %d: got %v, want %v", i, got, want[i])
		}
	}

	if l, r, top, bottom := RawFromProjection(math.Mat4{}); l != 0 || r != 0 || top != 0 || bottom != 0 {
		t.Errorf("degenerate matrix: got %v %v %v %v, want zeros", l, r, top, bottom)
	}
}

func TestIdentityStaysIdentity(t *testing.T) {
	if got := AffineFromRuntime(openvr.IdentityMatrix34()); !approxMat(got, math.Identity()) {
		t.Errorf("AffineFromRuntime(identity): got %v", got)
	}
}

func TestMouseButtons(t *testing.T) {
	tests := []struct {
		runtime openvr.MouseButton
		engine  input.Object
	}{
		{openvr.MouseButtonLeft, input.Button0},
		{openvr.MouseButtonRight, input.Button1},
		{openvr.MouseButtonMiddle, input.Button2},
	}
	for _, tt := range tests {
		got, ok := MouseButtonToEngine(tt.runtime)
		if !ok || got != tt.engine {
			t.Errorf("MouseButtonToEngine(%v): got %v %v, want %v", tt.runtime, got, ok, tt.engine)
		}
		back, ok := MouseButtonToRuntime(tt.engine)
		if !ok || back != tt.runtime {
			t.Errorf("MouseButtonToRuntime(%v): got %v %v, want %v", tt.engine, back, ok, tt.runtime)
		}
	}

	if _, ok := MouseButtonToEngine(0x80); ok {
		t.Error("unknown runtime button mapped")
	}
	if _, ok := MouseButtonToRuntime(input.XAxis); ok {
		t.Error("axis mapped to a runtime button")
	}
}

func TestBounds(t *testing.T) {
	b := BoundsFromRect(Rect{X: 100, Y: 0, W: 100, H: 50}, 200, 50)
	want := openvr.TextureBounds{UMin: 0.5, VMin: 0, UMax: 1, VMax: 1}
	if b != want {
		t.Errorf("BoundsFromRect: got %+v, want %+v", b, want)
	}

	full := openvr.TextureBounds{UMin: 0, VMin: 0, UMax: 1, VMax: 1}
	gl := BoundsFor(gpu.AdapterOpenGL, full)
	if gl.VMin != 1 || gl.VMax != 0 {
		t.Errorf("OpenGL bounds: got vMin=%v vMax=%v, want 1 0", gl.VMin, gl.VMax)
	}
	d3d := BoundsFor(gpu.AdapterDirect3D11, full)
	if d3d != full {
		t.Errorf("D3D11 bounds: got %+v, want %+v", d3d, full)
	}

	if got := BoundsFromRect(Rect{W: 1, H: 1}, 0, 10); got != (openvr.TextureBounds{}) {
		t.Errorf("zero target: got %+v, want zero bounds", got)
	}
}

func TestRuntimeTexture(t *testing.T) {
	d3d := RuntimeTexture(gpu.D3D11Handle(0xbeef), openvr.ColorSpaceGamma)
	if d3d.Type != openvr.TextureTypeDirectX || d3d.Handle != 0xbeef || d3d.ColorSpace != openvr.ColorSpaceGamma {
		t.Errorf("D3D11 texture: got %+v", d3d)
	}

	gl := RuntimeTexture(gpu.OpenGLHandle(7), openvr.ColorSpaceAuto)
	if gl.Type != openvr.TextureTypeOpenGL || gl.Handle != 7 {
		t.Errorf("OpenGL texture: got %+v", gl)
	}

	if none := RuntimeTexture(gpu.NativeHandle{}, openvr.ColorSpaceAuto); none.Type != openvr.TextureTypeInvalid {
		t.Errorf("empty handle: got type %v, want invalid", none.Type)
	}
}

func TestUniverseYawWrap(t *testing.T) {
	u := NewTrackingUniverse()
	u.SetYaw(3.0)
	u.AddYaw(0.5)

	want := float32(3.5 - 2*stdmath.Pi)
	if !approx(u.Yaw(), want) {
		t.Errorf("wrapped yaw: got %v, want %v", u.Yaw(), want)
	}

	for _, yaw := range []float32{-10, -stdmath.Pi, 0, stdmath.Pi, 7, 100} {
		got := WrapYaw(yaw)
		if got <= -stdmath.Pi || got > stdmath.Pi+epsilon {
			t.Errorf("WrapYaw(%v) = %v, outside (-pi, pi]", yaw, got)
		}
	}
	if got := WrapYaw(-stdmath.Pi); !approx(got, stdmath.Pi) {
		t.Errorf("WrapYaw(-pi): got %v, want pi", got)
	}
}

func TestStandingHeightRemoved(t *testing.T) {
	u := NewTrackingUniverse()
	u.StandingHeight = 1.7

	m := openvr.IdentityMatrix34()
	m[1][3] = 1.7

	got := u.PoseToEngine(m).Position()
	if !approx(got.X, 0) || !approx(got.Y, 0) || !approx(got.Z, 0) {
		t.Errorf("standing position: got %v, want origin", got)
	}

	u.Origin = openvr.TrackingUniverseSeated
	seated := u.PoseToEngine(m).Position()
	if !approx(seated.Z, 1.7) {
		t.Errorf("seated height: got %v, want 1.7", seated.Z)
	}
}

func TestUniverseRotationMatchesYaw(t *testing.T) {
	u := NewTrackingUniverse()
	u.Origin = openvr.TrackingUniverseSeated
	u.SetYaw(stdmath.Pi / 2)

	m := u.PoseToEngine(openvr.IdentityMatrix34())
	if got := YawFromTransform(m); !approx(got, stdmath.Pi/2) {
		t.Errorf("yaw of rotated identity: got %v, want pi/2", got)
	}

}

func TestTinyYawStillRotates(t *testing.T) {
	u := NewTrackingUniverse()
	u.Origin = openvr.TrackingUniverseSeated
	u.SetYaw(1e-5)
	if u.Rotation() == math.Identity() {
		t.Fatal("rotation for a 1e-5 yaw should not be identity")
	}
	if got := u.PoseToEngine(openvr.IdentityMatrix34()); got != u.Rotation() {
		t.Errorf("tiny yaw: got %v, want %v", got, u.Rotation())
	}

	u.SetYaw(0)
	if got := u.PoseToEngine(openvr.IdentityMatrix34()); got != math.Identity() {
		t.Errorf("zero yaw: got %v, want identity", got)
	}
}

func TestYawFromTransform(t *testing.T) {
	if got := YawFromTransform(math.RotateZ(-0.5)); !approx(got, 0.5) {
		t.Errorf("RotateZ(-0.5): got %v, want 0.5", got)
	}
	if got := YawFromTransform(math.RotateZ(0.5)); !approx(got, -0.5) {
		t.Errorf("RotateZ(0.5): got %v, want -0.5", got)
	}

	// Forward pointing straight up has no yaw.
	var up math.Mat4
	up.SetColumn(1, math.Vec3{Z: 1})
	if got := YawFromTransform(up); got != 0 {
		t.Errorf("vertical forward: got %v, want 0", got)
	}

	u := NewTrackingUniverse()
	u.Orient(math.RotateZ(-1))
	if !approx(u.Yaw(), 1) {
		t.Errorf("Orient: got %v, want 1", u.Yaw())
	}
}

func TestConvertPose(t *testing.T) {
	u := NewTrackingUniverse()
	u.Origin = openvr.TrackingUniverseSeated

	rp := openvr.TrackedDevicePose{
		DeviceToAbsoluteTracking: samplePose(),
		Velocity:                 openvr.Vector3{1, 2, 3},
		AngularVelocity:          openvr.Vector3{4, 5, 6},
		TrackingResult:           openvr.TrackingResultRunningOK,
		PoseIsValid:              true,
		DeviceIsConnected:        true,
	}
	pose := u.ConvertPose(rp)
	if !pose.Valid || !pose.Connected || pose.State != openvr.TrackingResultRunningOK {
		t.Fatalf("flags: got %+v", pose)
	}
	if pose.Velocity != (math.Vec3{X: -1, Y: 3, Z: -2}) {
		t.Errorf("velocity: got %v, want (-1, 3, -2)", pose.Velocity)
	}

	m := AffineFromRuntime(rp.DeviceToAbsoluteTracking)
	oracle := mgl32.Mat4ToQuat(mgl32.Mat4(m))
	q := pose.Orientation
	dot := q.X*oracle.V[0] + q.Y*oracle.V[1] + q.Z*oracle.V[2] + q.W*oracle.W
	if !approx(float32(stdmath.Abs(float64(dot))), 1) {
		t.Errorf("orientation: got %+v, oracle %+v", q, oracle)
	}
	if p := pose.Transform().Position(); !approx(p.X, m.At(0, 3)) || !approx(p.Z, m.At(2, 3)) {
		t.Errorf("position: got %v, want column 3 of %v", p, m)
	}

	rp.PoseIsValid = false
	invalid := u.ConvertPose(rp)
	if invalid.Valid || !invalid.Connected || invalid.Orientation != math.QuatIdentity() {
		t.Errorf("invalid pose: got %+v", invalid)
	}
}

func TestActionVelocity(t *testing.T) {
	got := ActionVelocity(openvr.Vector3{1, 2, 3})
	if got != (math.Vec3{X: 1, Y: -3, Z: 2}) {
		t.Errorf("ActionVelocity: got %v, want (1, -3, 2)", got)
	}
}
