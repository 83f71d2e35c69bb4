package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q != (Quat{0, 0, 0, 1}) {
		t.Errorf("Identity quaternion should be (0,0,0,1), got %v", q)
	}
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()
	if !approx(n.Dot(n), 1) {
		t.Errorf("Normalized quaternion length should be 1, got %v", n.Dot(n))
	}
}

func TestQuatRotate(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 0, 1}, float32(math.Pi/2))
	got := q.Rotate(Vec3{1, 0, 0})
	if !approx(got.X, 0) || !approx(got.Y, 1) || !approx(got.Z, 0) {
		t.Errorf("Rotate X by 90 about Z: got %v, want (0, 1, 0)", got)
	}
}

func TestQuatFromMat4RoundTrip(t *testing.T) {
	axes := []Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, Vec3{1, 1, 1}.Normalize(), Vec3{-2, 0.5, 1}.Normalize()}
	angles := []float32{0, 0.3, 1.7, 3.1, -2.4}

	for _, axis := range axes {
		for _, angle := range angles {
			q := QuatFromAxisAngle(axis, angle)
			got := QuatFromMat4(q.ToMat4())
			// q and -q describe the same rotation
			if got.Dot(q) < 0 {
				got = Quat{-got.X, -got.Y, -got.Z, -got.W}
			}
			if !approx(got.X, q.X) || !approx(got.Y, q.Y) || !approx(got.Z, q.Z) || !approx(got.W, q.W) {
				t.Errorf("axis %v angle %v: got %v, want %v", axis, angle, got, q)
			}
		}
	}
}

func TestQuatFromMat4MatchesMathgl(t *testing.T) {
	m := RotateZ(2.2).Mul(QuatFromAxisAngle(Vec3{1, 0, 0}, 0.8).ToMat4())
	got := QuatFromMat4(m)
	want := mgl32.Mat4ToQuat(mgl32.Mat4(m))
	sign := float32(1)
	if got.W*want.W < 0 {
		sign = -1
	}
	if !approx(got.W, sign*want.W) || !approx(got.X, sign*want.V[0]) ||
		!approx(got.Y, sign*want.V[1]) || !approx(got.Z, sign*want.V[2]) {
		t.Errorf("QuatFromMat4: got %v, want %v", got, want)
	}
}

func TestMat4FromPose(t *testing.T) {
	m := Mat4FromPose(QuatIdentity(), Vec3{1, 2, 3})
	if m != Translate(1, 2, 3) {
		t.Errorf("Mat4FromPose: got %v, want translation", m)
	}
}
