package material

import (
	"errors"
	"testing"
)

func TestRegisterAndMap(t *testing.T) {
	r := NewRegistry()
	m := &Material{Name: "hmd3_Mat", MapTo: "hmd3", DiffuseMap: "cache/hmd3.png", Emissive: true, CastShadows: true}
	if err := r.Register(m); err != nil {
		t.Fatal(err)
	}
	if got := r.MapEntry("hmd3"); got != "hmd3_Mat" {
		t.Errorf("MapEntry: got %q, want hmd3_Mat", got)
	}
	if got, ok := r.Lookup("hmd3_Mat"); !ok || got != m {
		t.Errorf("Lookup: got %v, %v", got, ok)
	}
	if r.MapEntry("other") != "" {
		t.Error("unmapped texture returned a material")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	r.Register(&Material{Name: "a"})
	if err := r.Register(&Material{Name: "a"}); !errors.Is(err, ErrExists) {
		t.Errorf("duplicate: got %v, want ErrExists", err)
	}
	if err := r.Register(&Material{}); err == nil {
		t.Error("empty name accepted")
	}
}

func TestRemove(t *testing.T) {
	r := NewRegistry()
	r.Register(&Material{Name: "b_Mat", MapTo: "b"})
	r.Register(&Material{Name: "a_Mat"})
	if names := r.Names(); len(names) != 2 || names[0] != "a_Mat" {
		t.Errorf("Names: got %v", names)
	}
	r.Remove("b_Mat")
	if r.MapEntry("b") != "" {
		t.Error("mapping survived Remove")
	}
	r.Remove("missing")
}
