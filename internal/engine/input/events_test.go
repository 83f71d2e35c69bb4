package input

import "testing"

func TestButtonEvent(t *testing.T) {
	down := ButtonEvent(DeviceOverlay, Button1, true)
	if down.Action != ActionMake || down.Value != 1 || down.Type != ObjectButton {
		t.Errorf("press: got %+v", down)
	}
	up := ButtonEvent(DeviceOverlay, Button1, false)
	if up.Action != ActionBreak || up.Value != 0 {
		t.Errorf("release: got %+v", up)
	}
}

func TestMouseButtonObject(t *testing.T) {
	tests := []struct {
		button uint8
		want   Object
		ok     bool
	}{
		{1, Button0, true},
		{3, Button1, true},
		{2, Button2, true},
		{9, ObjectInvalid, false},
	}
	for _, tt := range tests {
		got, ok := MouseButtonObject(tt.button)
		if got != tt.want || ok != tt.ok {
			t.Errorf("button %d: got %v %v, want %v %v", tt.button, got, ok, tt.want, tt.ok)
		}
	}
}

func TestObjectString(t *testing.T) {
	if got := ZAxis.String(); got != "ZAxis" {
		t.Errorf("ZAxis: got %q", got)
	}
	if got := Object(42).String(); got != "Object(42)" {
		t.Errorf("unknown: got %q", got)
	}
}
