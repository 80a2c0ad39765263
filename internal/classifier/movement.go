package classifier

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKeys is returned when an axis is not configured with two distinct keys.
var ErrInvalidKeys = errors.New("invalid key configuration")

var (
	// DefaultVertical is the forward/backward pair.
	DefaultVertical = [2]string{"W", "S"}
	// DefaultHorizontal is the left/right pair.
	DefaultHorizontal = [2]string{"A", "D"}
)

// Tracker is the contract of a single movement axis.
type Tracker interface {
	OnPress(key string, ts float64)
	OnRelease(key string, ts float64)
	ClassifyShot(shotTime float64) AxisResult
}

// Classifier turns key events into a raw shot classification.
type Classifier interface {
	OnPress(key string, ts float64)
	OnRelease(key string, ts float64)
	ClassifyShot(shotTime float64) ShotClassification
}

// MovementClassifier combines a vertical and a horizontal axis. It is not safe for
// concurrent use; callers serialize access.
type MovementClassifier struct {
	vertical   *AxisState
	horizontal *AxisState
}

// New builds a classifier for the given key pairs. Keys are case-insensitive.
func New(vertical, horizontal [2]string) (*MovementClassifier, error) {
	v, err := normalizePair("vertical", vertical)
	if err != nil {
		return nil, err
	}
	h, err := normalizePair("horizontal", horizontal)
	if err != nil {
		return nil, err
	}
	return &MovementClassifier{
		vertical:   NewAxisState(v),
		horizontal: NewAxisState(h),
	}, nil
}

// NewDefault builds a classifier for WASD.
func NewDefault() *MovementClassifier {
	c, err := New(DefaultVertical, DefaultHorizontal)
	if err != nil {
		panic(err)
	}
	return c
}

// NormalizeKey returns the canonical form of a key identifier.
func NormalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

func normalizePair(axis string, keys [2]string) ([2]string, error) {
	out := [2]string{NormalizeKey(keys[0]), NormalizeKey(keys[1])}
	if out[0] == "" || out[1] == "" || out[0] == out[1] {
		return out, fmt.Errorf("%w: %s keys must be two distinct keys, got %q", ErrInvalidKeys, axis, keys)
	}
	return out, nil
}

// Vertical returns the forward/backward axis.
func (c *MovementClassifier) Vertical() *AxisState {
	return c.vertical
}

// Horizontal returns the left/right axis.
func (c *MovementClassifier) Horizontal() *AxisState {
	return c.horizontal
}

func (c *MovementClassifier) route(key string) *AxisState {
	switch {
	case c.vertical.Has(key):
		return c.vertical
	case c.horizontal.Has(key):
		return c.horizontal
	default:
		return nil
	}
}

// OnPress routes a press to its axis. Keys outside both axes are ignored.
func (c *MovementClassifier) OnPress(key string, ts float64) {
	key = NormalizeKey(key)
	if axis := c.route(key); axis != nil {
		axis.OnPress(key, ts)
	}
}

// OnRelease routes a release to its axis. Keys outside both axes are ignored.
func (c *MovementClassifier) OnRelease(key string, ts float64) {
	key = NormalizeKey(key)
	if axis := c.route(key); axis != nil {
		axis.OnRelease(key, ts)
	}
}

// ClassifyShot queries both axes and keeps the more severe result. On equal severity
// the larger primary value wins, with vertical taking ties.
func (c *MovementClassifier) ClassifyShot(shotTime float64) ShotClassification {
	v := c.vertical.ClassifyShot(shotTime)
	h := c.horizontal.ClassifyShot(shotTime)
	return packResult(pickAxis(v, h))
}

func pickAxis(v, h AxisResult) AxisResult {
	vs, hs := v.Label.severity(), h.Label.severity()
	switch {
	case vs > hs:
		return v
	case hs > vs:
		return h
	}
	switch {
	case v.Primary != nil && h.Primary != nil:
		// Equal values keep vertical.
		if *v.Primary >= *h.Primary {
			return v
		}
		return h
	case v.Primary != nil:
		return v
	default:
		return h
	}
}

func packResult(r AxisResult) ShotClassification {
	switch r.Label {
	case CounterStrafe:
		return ShotClassification{Label: CounterStrafe, CSTime: r.Primary, ShotDelay: r.Secondary}
	case Overlap:
		return ShotClassification{Label: Overlap, OverlapTime: r.Primary}
	default:
		return ShotClassification{Label: Bad}
	}
}
