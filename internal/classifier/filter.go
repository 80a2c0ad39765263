package classifier

const (
	// DefaultMaxShotDelayMs rejects counter-strafes fired later than this after the press.
	DefaultMaxShotDelayMs = 230.0
	// DefaultMaxCSTimeAndDelayMs rejects counter-strafes where both cs time and shot
	// delay exceed it.
	DefaultMaxCSTimeAndDelayMs = 215.0
)

// Filter applies post-classification policy.
type Filter interface {
	Apply(raw ShotClassification) ShotClassification
}

// ShotFilter demotes slow counter-strafes to Bad.
type ShotFilter struct {
	MaxShotDelayMs      float64
	MaxCSTimeAndDelayMs float64
}

// DefaultShotFilter returns a filter with the default thresholds.
func DefaultShotFilter() ShotFilter {
	return ShotFilter{
		MaxShotDelayMs:      DefaultMaxShotDelayMs,
		MaxCSTimeAndDelayMs: DefaultMaxCSTimeAndDelayMs,
	}
}

// Apply returns the final classification for raw. Thresholds are exclusive.
func (f ShotFilter) Apply(raw ShotClassification) ShotClassification {
	switch raw.Label {
	case Overlap:
		return ShotClassification{Label: Overlap, OverlapTime: copyMs(raw.OverlapTime)}
	case CounterStrafe:
		if raw.CSTime == nil || raw.ShotDelay == nil {
			return ShotClassification{Label: Bad}
		}
		cs, delay := *raw.CSTime, *raw.ShotDelay
		label := CounterStrafe
		if delay > f.MaxShotDelayMs || (cs > f.MaxCSTimeAndDelayMs && delay > f.MaxCSTimeAndDelayMs) {
			label = Bad
		}
		return ShotClassification{Label: label, CSTime: Ms(cs), ShotDelay: Ms(delay)}
	default:
		return ShotClassification{Label: Bad}
	}
}
