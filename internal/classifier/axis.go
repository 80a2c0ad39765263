package classifier

// microThresholdMs is the hold duration below which a release is noted as a micro tap.
const microThresholdMs = 80.0

type mark struct {
	key string
	at  float64
	set bool
}

// AxisResult is the per-axis outcome of ClassifyShot. Primary is the cs time for a
// counter-strafe and the overlap time for an overlap; Secondary is the shot delay.
type AxisResult struct {
	Label     Label
	Primary   *float64
	Secondary *float64
}

// AxisState tracks one pair of opposing movement keys.
type AxisState struct {
	keys       [2]string
	held       map[string]struct{}
	pressTimes map[string]float64

	csRelease    mark
	csPress      mark
	overlapStart mark
	micro        mark
}

// NewAxisState returns a tracker for the two keys. Keys are used as given.
func NewAxisState(keys [2]string) *AxisState {
	return &AxisState{
		keys:       keys,
		held:       map[string]struct{}{},
		pressTimes: map[string]float64{},
	}
}

// Keys returns the axis key pair.
func (a *AxisState) Keys() [2]string {
	return a.keys
}

// Has reports whether key belongs to this axis.
func (a *AxisState) Has(key string) bool {
	return key == a.keys[0] || key == a.keys[1]
}

// HeldKeys returns the currently held keys in axis order.
func (a *AxisState) HeldKeys() []string {
	out := make([]string, 0, 2)
	for _, k := range a.keys {
		if _, ok := a.held[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// OverlapStart returns when both keys first became held since the last reset.
func (a *AxisState) OverlapStart() (float64, bool) {
	return a.overlapStart.at, a.overlapStart.set
}

// MicroCandidate returns the last sub-80ms hold duration, if one is noted.
// It does not take part in classification.
func (a *AxisState) MicroCandidate() (float64, bool) {
	return a.micro.at, a.micro.set
}

func (a *AxisState) other(key string) string {
	if key == a.keys[1] {
		return a.keys[0]
	}
	return a.keys[1]
}

// OnPress records a press of key at ts.
func (a *AxisState) OnPress(key string, ts float64) {
	if !a.Has(key) {
		return
	}
	other := a.other(key)
	a.held[key] = struct{}{}
	a.pressTimes[key] = ts
	if _, ok := a.held[other]; ok && !a.overlapStart.set {
		a.overlapStart = mark{key: key, at: ts, set: true}
	}
	if a.csRelease.set && a.csRelease.key == other && !a.csPress.set {
		a.csPress = mark{key: key, at: ts, set: true}
	}
	a.micro = mark{}
}

// OnRelease records a release of key at ts. Every release restarts the
// counter-strafe candidate.
func (a *AxisState) OnRelease(key string, ts float64) {
	if !a.Has(key) {
		return
	}
	if pressed, ok := a.pressTimes[key]; ok {
		if d := ts - pressed; d < microThresholdMs {
			a.micro = mark{key: key, at: d, set: true}
		}
	}
	delete(a.held, key)
	a.csRelease = mark{key: key, at: ts, set: true}
	a.csPress = mark{}
}

// ClassifyShot classifies a shot at shotTime and resets the transient state.
func (a *AxisState) ClassifyShot(shotTime float64) AxisResult {
	defer a.reset()

	validCS := a.csPress.set && a.csRelease.set && a.csPress.at > a.csRelease.at
	if a.overlapStart.set && !(validCS && a.csRelease.at > a.overlapStart.at) {
		return AxisResult{Label: Overlap, Primary: Ms(shotTime - a.overlapStart.at)}
	}
	if validCS {
		return AxisResult{
			Label:     CounterStrafe,
			Primary:   Ms(a.csPress.at - a.csRelease.at),
			Secondary: Ms(shotTime - a.csPress.at),
		}
	}
	return AxisResult{Label: Bad}
}

func (a *AxisState) reset() {
	a.csRelease = mark{}
	a.csPress = mark{}
	a.overlapStart = mark{}
	a.micro = mark{}
}
