// Package sdlinput pumps the SDL2 event queue of the desktop window and
// turns mouse events into canvas input events.
package sdlinput

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/midgard-vr/internal/engine/input"
)

// EventType classifies a desktop window event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event is one desktop window event from the last Update.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Repeat bool // key auto-repeat
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
	WheelY int
}

// Input polls the SDL queue once per frame and remembers which keys are
// held between frames.
type Input struct {
	events []Event
	held   map[sdl.Scancode]bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		held:   make(map[sdl.Scancode]bool),
	}
}

// Update polls SDL events and converts them to window events.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if i.translate(event) {
			return true
		}
	}
	return false
}

func (i *Input) translate(event sdl.Event) (quit bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.events = append(i.events, Event{Type: EventQuit})
		return true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_RESIZED:
			i.events = append(i.events, Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)})
		case sdl.WINDOWEVENT_FOCUS_LOST:
			// Key-up events are not delivered while unfocused.
			clear(i.held)
		}

	case *sdl.KeyboardEvent:
		i.key(e.Keysym.Scancode, e.Type == sdl.KEYDOWN, e.Repeat != 0)

	case *sdl.MouseMotionEvent:
		i.events = append(i.events, Event{Type: EventMouseMove, MouseX: int(e.X), MouseY: int(e.Y)})

	case *sdl.MouseButtonEvent:
		t := EventMouseUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			t = EventMouseDown
		}
		i.events = append(i.events, Event{Type: t, MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button})

	case *sdl.MouseWheelEvent:
		i.events = append(i.events, Event{Type: EventMouseWheel, WheelY: int(e.Y)})
	}
	return false
}

func (i *Input) key(code sdl.Scancode, down, repeat bool) {
	if down {
		i.held[code] = true
		i.events = append(i.events, Event{Type: EventKeyDown, Key: code, Repeat: repeat})
		return
	}
	delete(i.held, code)
	i.events = append(i.events, Event{Type: EventKeyUp, Key: code})
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Dispatch sends the mouse events from the last Update to r.
func (i *Input) Dispatch(r input.Receiver) {
	for _, e := range i.events {
		for _, ev := range Translate(e) {
			r.ProcessInputEvent(ev)
		}
	}
}

// IsKeyPressed reports whether scancode went down this frame. Auto-repeat
// does not count.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode && !e.Repeat {
			return true
		}
	}
	return false
}

// IsKeyDown reports whether scancode is currently held.
func (i *Input) IsKeyDown(scancode sdl.Scancode) bool {
	return i.held[scancode]
}

// Translate converts desktop mouse events to input events for a canvas.
// The wheel maps to the Z axis. Other event types produce nothing.
func Translate(ev Event) []input.InputEvent {
	switch ev.Type {
	case EventMouseMove:
		return []input.InputEvent{
			input.AxisEvent(input.DeviceMouse, input.XAxis, float32(ev.MouseX)),
			input.AxisEvent(input.DeviceMouse, input.YAxis, float32(ev.MouseY)),
		}
	case EventMouseDown, EventMouseUp:
		obj, ok := input.MouseButtonObject(ev.Button)
		if !ok {
			return nil
		}
		return []input.InputEvent{input.ButtonEvent(input.DeviceMouse, obj, ev.Type == EventMouseDown)}
	case EventMouseWheel:
		return []input.InputEvent{input.AxisEvent(input.DeviceMouse, input.ZAxis, float32(ev.WheelY))}
	}
	return nil
}
