package polygon

import "fmt"

// Event is the window event an animation plays for.
type Event int

const (
	EventOpen Event = iota
	EventClose
	EventMinimize
	EventUnminimize
	EventShade
	EventUnshade
	EventFocus
)

var eventNames = [...]string{
	EventOpen:       "open",
	EventClose:      "close",
	EventMinimize:   "minimize",
	EventUnminimize: "unminimize",
	EventShade:      "shade",
	EventUnshade:    "unshade",
	EventFocus:      "focus",
}

func (e Event) String() string {
	if e >= 0 && int(e) < len(eventNames) {
		return eventNames[e]
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

// ParseEvent resolves an event name.
func ParseEvent(name string) (Event, error) {
	for i, n := range eventNames {
		if n == name {
			return Event(i), nil
		}
	}
	return 0, fmt.Errorf("unknown window event %q", name)
}

// Reversed reports whether the event plays effects backwards, so that an
// appearing window runs the disappearing motion in reverse.
func (e Event) Reversed() bool {
	switch e {
	case EventOpen, EventUnminimize, EventUnshade, EventFocus:
		return true
	}
	return false
}

// Opposite returns the event that undoes e. Focus is its own opposite.
func (e Event) Opposite() Event {
	switch e {
	case EventOpen:
		return EventClose
	case EventClose:
		return EventOpen
	case EventMinimize:
		return EventUnminimize
	case EventUnminimize:
		return EventMinimize
	case EventShade:
		return EventUnshade
	case EventUnshade:
		return EventShade
	}
	return e
}
