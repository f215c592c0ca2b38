// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies processed input events.
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

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
	Shift  bool
	WheelY float32
}

// Action is a viewer command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionReplay
	ActionReverse
	ActionPause
	ActionNextEffect
	ActionPrevEffect
	ActionNextEvent
	ActionToggleDamage
	ActionResetView
	ActionCapture
	ActionOpenSurface
	ActionToggleSound
)

var keyActions = map[sdl.Scancode]Action{
	sdl.SCANCODE_ESCAPE: ActionQuit,
	sdl.SCANCODE_Q:      ActionQuit,
	sdl.SCANCODE_SPACE:  ActionReplay,
	sdl.SCANCODE_R:      ActionReverse,
	sdl.SCANCODE_P:      ActionPause,
	sdl.SCANCODE_RIGHT:  ActionNextEffect,
	sdl.SCANCODE_N:      ActionNextEffect,
	sdl.SCANCODE_LEFT:   ActionPrevEffect,
	sdl.SCANCODE_E:      ActionNextEvent,
	sdl.SCANCODE_D:      ActionToggleDamage,
	sdl.SCANCODE_0:      ActionResetView,
	sdl.SCANCODE_F12:    ActionCapture,
	sdl.SCANCODE_O:      ActionOpenSurface,
	sdl.SCANCODE_S:      ActionToggleSound,
}

// ActionFor returns the action bound to a key.
func ActionFor(key sdl.Scancode) Action {
	return keyActions[key]
}

// Input handles all input processing.
type Input struct {
	events []Event

	dragging     bool
	lastX, lastY int
	dragX, dragY int
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.dragX, i.dragY = 0, 0

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN {
				i.events = append(i.events, Event{
					Type:  EventKeyDown,
					Key:   e.Keysym.Scancode,
					Shift: sdl.GetModState()&sdl.KMOD_SHIFT != 0,
				})
			} else if e.Type == sdl.KEYUP {
				i.events = append(i.events, Event{
					Type: EventKeyUp,
					Key:  e.Keysym.Scancode,
				})
			}

		case *sdl.MouseMotionEvent:
			if i.dragging {
				i.dragX += int(e.X) - i.lastX
				i.dragY += int(e.Y) - i.lastY
			}
			i.lastX, i.lastY = int(e.X), int(e.Y)
			i.events = append(i.events, Event{
				Type:   EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
			})

		case *sdl.MouseButtonEvent:
			if e.Button == sdl.BUTTON_LEFT {
				i.dragging = e.Type == sdl.MOUSEBUTTONDOWN
				i.lastX, i.lastY = int(e.X), int(e.Y)
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				i.events = append(i.events, Event{
					Type:   EventMouseDown,
					MouseX: int(e.X),
					MouseY: int(e.Y),
					Button: e.Button,
				})
			} else if e.Type == sdl.MOUSEBUTTONUP {
				i.events = append(i.events, Event{
					Type:   EventMouseUp,
					MouseX: int(e.X),
					MouseY: int(e.Y),
					Button: e.Button,
				})
			}

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, Event{
				Type:   EventMouseWheel,
				WheelY: float32(e.Y),
			})
		}
	}

	return false
}

// Drag returns how far the mouse moved with the left button held during
// the last Update.
func (i *Input) Drag() (dx, dy int) {
	return i.dragX, i.dragY
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Actions returns the actions of the keys pressed during the last Update.
func (i *Input) Actions() []Action {
	var actions []Action
	for _, e := range i.events {
		if e.Type != EventKeyDown {
			continue
		}
		if a := ActionFor(e.Key); a != ActionNone {
			actions = append(actions, a)
		}
	}
	return actions
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}
