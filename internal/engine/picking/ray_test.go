package picking

import (
	"testing"

	"github.com/Faultbox/midgard-vr/pkg/math"
)

func TestIntersectAABB(t *testing.T) {
	box := NewAABB(math.Vec3{X: 1, Y: 1, Z: 1}, math.Vec3{X: -1, Y: -1, Z: -1})

	tests := []struct {
		name   string
		ray    Ray
		wantT  float32
		wantOK bool
	}{
		{"front hit", NewRay(math.Vec3{Y: -5}, math.Vec3{Y: 1}), 4, true},
		{"inside", NewRay(math.Vec3{}, math.Vec3{Z: 1}), 1, true},
		{"behind", NewRay(math.Vec3{Y: 5}, math.Vec3{Y: 1}), 0, false},
		{"parallel miss", NewRay(math.Vec3{X: 3, Y: -5}, math.Vec3{Y: 1}), 0, false},
	}
	for _, tt := range tests {
		got, ok := tt.ray.IntersectAABB(box)
		if ok != tt.wantOK || got != tt.wantT {
			t.Errorf("%s: got (%v, %v), want (%v, %v)", tt.name, got, ok, tt.wantT, tt.wantOK)
		}
	}
}

func TestAABBExtend(t *testing.T) {
	b := EmptyAABB()
	if !b.IsEmpty() {
		t.Fatal("EmptyAABB not empty")
	}
	b = b.Extend(math.Vec3{X: 1, Y: 2, Z: 3}).Extend(math.Vec3{X: -1, Y: 0, Z: 5})
	if b.Min != (math.Vec3{X: -1, Y: 0, Z: 3}) || b.Max != (math.Vec3{X: 1, Y: 2, Z: 5}) {
		t.Errorf("extend: got %+v", b)
	}
	if c := b.Center(); c != (math.Vec3{X: 0, Y: 1, Z: 4}) {
		t.Errorf("center: got %+v", c)
	}
	if !b.Contains(math.Vec3{Y: 1, Z: 4}) {
		t.Error("center not contained")
	}
}

func TestRayAt(t *testing.T) {
	r := NewRay(math.Vec3{X: 1}, math.Vec3{Z: 10})
	if p := r.At(2); p != (math.Vec3{X: 1, Z: 2}) {
		t.Errorf("At: got %+v", p)
	}
}
