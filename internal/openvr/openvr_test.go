package openvr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCodesMatchWithErrorsIs(t *testing.T) {
	err := fmt.Errorf("setting manifest: %w", InputErrorMismatchedActionManifest)
	if !errors.Is(err, InputErrorMismatchedActionManifest) {
		t.Errorf("errors.Is should find the wrapped input error")
	}
	if errors.Is(err, InputErrorNameNotFound) {
		t.Errorf("errors.Is matched the wrong code")
	}

	var ovErr OverlayError
	if !errors.As(fmt.Errorf("wrap: %w", OverlayErrorKeyInUse), &ovErr) || ovErr != OverlayErrorKeyInUse {
		t.Errorf("errors.As: got %v, want %v", ovErr, OverlayErrorKeyInUse)
	}
}

func TestErrorStrings(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{InitErrorHmdNotFound, "vr init: hmd not found"},
		{InitError(9999), "vr init: error 9999"},
		{InputErrorNoData, "vr input: no data"},
		{OverlayErrorUnableToLoadFile, "vr overlay: unable to load file"},
		{RenderModelErrorLoading, "vr render model: loading"},
		{RenderModelErrorInvalidTexture, "vr render model: error 400"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error(): got %q, want %q", got, tt.want)
		}
	}
}

func TestEventTypeString(t *testing.T) {
	if got := EventKeyboardDone.String(); got != "VREvent_KeyboardDone" {
		t.Errorf("String: got %q", got)
	}
	if got := EventType(4242).String(); got != "VREvent_4242" {
		t.Errorf("String of unknown event: got %q", got)
	}
}

func TestKeyboardEventText(t *testing.T) {
	var k KeyboardEvent
	copy(k.NewInput[:], "hé")
	if got := k.Text(); got != "hé" {
		t.Errorf("Text: got %q, want %q", got, "hé")
	}

	copy(k.NewInput[:], "abcdefgh")
	if got := k.Text(); got != "abcdefgh" {
		t.Errorf("Text of a full buffer: got %q", got)
	}
}

func TestOverlayFlagNamesAreDistinctBits(t *testing.T) {
	seen := OverlayFlags(0)
	for name, flag := range OverlayFlagNames {
		if flag == 0 || flag&(flag-1) != 0 {
			t.Errorf("%s is not a single bit: %#x", name, flag)
		}
		if seen&flag != 0 {
			t.Errorf("%s reuses bit %#x", name, flag)
		}
		seen |= flag
	}
}

func TestDeviceClassNames(t *testing.T) {
	if got := TrackedDeviceClassDisplayRedirect.String(); got != "Other" {
		t.Errorf("String: got %q, want %q", got, "Other")
	}
	if got := TrackedDeviceClass(42).String(); got != "Invalid" {
		t.Errorf("String of unknown class: got %q", got)
	}
	c, ok := ParseTrackedDeviceClass("controller")
	if !ok || c != TrackedDeviceClassController {
		t.Errorf("ParseTrackedDeviceClass: got %v, %v", c, ok)
	}
	if _, ok := ParseTrackedDeviceClass("toaster"); ok {
		t.Errorf("ParseTrackedDeviceClass accepted an unknown name")
	}
}

func TestAxisTypeNames(t *testing.T) {
	if got := ControllerAxisJoystick.String(); got != "Joystick" {
		t.Errorf("String: got %q, want %q", got, "Joystick")
	}
	a, ok := ParseControllerAxisType("TRIGGER")
	if !ok || a != ControllerAxisTrigger {
		t.Errorf("ParseControllerAxisType: got %v, %v", a, ok)
	}
}

func TestRuntimeRegistry(t *testing.T) {
	called := 0
	RegisterRuntime("registry-test", func() (Runtime, error) {
		called++
		return nil, nil
	})

	if _, err := Open("registry-test"); err != nil || called != 1 {
		t.Errorf("Open: got err %v after %d calls, want nil after 1", err, called)
	}
	if _, err := Open("missing"); !errors.Is(err, ErrNoRuntime) {
		t.Errorf("Open(missing): got %v, want ErrNoRuntime", err)
	}

	found := false
	for _, name := range Runtimes() {
		found = found || name == "registry-test"
	}
	if !found {
		t.Errorf("Runtimes: %v does not list registry-test", Runtimes())
	}

	defer func() {
		if recover() == nil {
			t.Errorf("registering a name twice should panic")
		}
	}()
	RegisterRuntime("registry-test", func() (Runtime, error) { return nil, nil })
}
