package hsm

import (
	"fmt"
	"math"
)

// EventID tags an event delivered to a Machine. User events start at EventUser;
// the top of the range is reserved for the lifecycle pseudo-events.
type EventID uint32

const (
	// EventNull is returned by a handler that consumed the event.
	EventNull EventID = 0
	// EventUser is the first tag available to applications.
	EventUser EventID = 1

	EventInit  EventID = math.MaxUint32 - 2
	EventEntry EventID = math.MaxUint32 - 1
	EventExit  EventID = math.MaxUint32
)

// Reserved reports whether e is one of the engine's pseudo-events.
func (e EventID) Reserved() bool {
	return e == EventNull || e >= EventInit
}

// String returns the reserved name or the hex value of a user event.
func (e EventID) String() string {
	switch e {
	case EventNull:
		return "NULL"
	case EventInit:
		return "INIT"
	case EventEntry:
		return "ENTRY"
	case EventExit:
		return "EXIT"
	}
	return fmt.Sprintf("%#x", uint32(e))
}

// EventNamer maps user events to human readable names for diagnostics.
// Returning "" falls back to the numeric form.
type EventNamer func(EventID) string

// EventNames builds an EventNamer from a static table.
func EventNames(names map[EventID]string) EventNamer {
	return func(e EventID) string {
		return names[e]
	}
}
