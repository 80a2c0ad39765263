// Package classifier turns movement-key and click events into shot classifications.
package classifier

import (
	"fmt"
	"strings"
)

// Label is the outcome of a classified shot.
type Label int

const (
	// Bad means no qualifying movement pattern, or timing out of bounds.
	Bad Label = iota
	// CounterStrafe means a key was released and its opposite pressed before the shot.
	CounterStrafe
	// Overlap means both keys of an axis were held together.
	Overlap
)

// String returns the display name of the label.
func (l Label) String() string {
	switch l {
	case CounterStrafe:
		return "Counter-strafe"
	case Overlap:
		return "Overlap"
	case Bad:
		return "Bad"
	default:
		return fmt.Sprintf("Label(%d)", int(l))
	}
}

// severity ranks labels when the two axes disagree.
func (l Label) severity() int {
	switch l {
	case Overlap:
		return 2
	case CounterStrafe:
		return 1
	default:
		return 0
	}
}

// ShotClassification is the result for a single shot. Values are milliseconds; a nil
// field is absent. Treat it as immutable.
type ShotClassification struct {
	Label       Label
	CSTime      *float64
	ShotDelay   *float64
	OverlapTime *float64
}

// Ms returns a pointer to v for building classifications.
func Ms(v float64) *float64 {
	return &v
}

// Lines returns the display lines for the classification.
func (c ShotClassification) Lines() []string {
	lines := []string{fmt.Sprintf("Classification: %s", c.Label)}
	switch {
	case (c.Label == CounterStrafe || c.Label == Bad) && c.CSTime != nil && c.ShotDelay != nil:
		lines = append(lines,
			fmt.Sprintf("CS time: %.0f ms", *c.CSTime),
			fmt.Sprintf("Shot delay: %.0f ms", *c.ShotDelay),
		)
	case c.Label == Overlap && c.OverlapTime != nil:
		lines = append(lines, fmt.Sprintf("Overlap: %.0f ms", *c.OverlapTime))
	}
	return lines
}

// DisplayString joins Lines with newlines.
func (c ShotClassification) DisplayString() string {
	return strings.Join(c.Lines(), "\n")
}

func copyMs(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return Ms(*v)
}
