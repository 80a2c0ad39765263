// Package input produces timestamped movement, click and hotkey events.
package input

import (
	"errors"
	"time"
)

// ErrUnsupportedPlatform is returned when global input capture is not available.
var ErrUnsupportedPlatform = errors.New("global input capture is only supported on windows")

// Kind identifies an event type.
type Kind int

const (
	// None marks the absence of an event.
	None Kind = iota
	Press
	Release
	Click
	ToggleVisibility
	Grow
	Shrink
	Quit
)

func (k Kind) String() string {
	switch k {
	case Press:
		return "press"
	case Release:
		return "release"
	case Click:
		return "click"
	case ToggleVisibility:
		return "toggle"
	case Grow:
		return "grow"
	case Shrink:
		return "shrink"
	case Quit:
		return "quit"
	default:
		return "none"
	}
}

// Control reports whether the kind drives the overlay rather than the classifier.
func (k Kind) Control() bool {
	return k >= ToggleVisibility
}

// Event is a single input occurrence. At is in milliseconds; Key is set for Press
// and Release.
type Event struct {
	Kind Kind
	Key  string
	At   float64
}

// MonotonicClock returns a millisecond clock starting at zero.
func MonotonicClock() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000.0
	}
}
