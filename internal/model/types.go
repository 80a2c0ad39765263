// Package model defines shared data structures.
package model

// KeyBindings holds one key per movement direction.
type KeyBindings struct {
	Forward  string
	Backward string
	Left     string
	Right    string
}

// Vertical returns the forward/backward pair.
func (b KeyBindings) Vertical() [2]string {
	return [2]string{b.Forward, b.Backward}
}

// Horizontal returns the left/right pair.
func (b KeyBindings) Horizontal() [2]string {
	return [2]string{b.Left, b.Right}
}

// All returns the four movement keys.
func (b KeyBindings) All() []string {
	return []string{b.Forward, b.Backward, b.Left, b.Right}
}

// Config defines runtime settings.
type Config struct {
	Keys                KeyBindings
	MaxShotDelayMs      float64
	MaxCSTimeAndDelayMs float64
	OverlaySize         int
}
