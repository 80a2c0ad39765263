package input

import (
	"context"
	"math"
	"time"

	"github.com/verte-zerg/cstrafe/internal/model"
)

// DefaultPollInterval is the key-state sampling period.
const DefaultPollInterval = time.Millisecond

// StateFunc reports whether the key with the given virtual-key code is down.
type StateFunc func(code int) bool

// Watch maps a virtual-key code to the events emitted on its edges.
type Watch struct {
	Code int
	Key  string
	Down Kind
	Up   Kind
}

// Hotkey binds a virtual-key code to a control event.
type Hotkey struct {
	Code int
	Kind Kind
}

// KeyCode returns the virtual-key code of a validated A-Z or 0-9 binding.
func KeyCode(key string) int {
	if len(key) != 1 {
		return 0
	}
	return int(key[0])
}

// Watches builds the watch list for the movement keys, the fire button and hotkeys.
func Watches(b model.KeyBindings, fire int, hotkeys []Hotkey) []Watch {
	out := make([]Watch, 0, 5+len(hotkeys))
	for _, key := range b.All() {
		out = append(out, Watch{Code: KeyCode(key), Key: key, Down: Press, Up: Release})
	}
	out = append(out, Watch{Code: fire, Down: Click})
	for _, hk := range hotkeys {
		out = append(out, Watch{Code: hk.Code, Down: hk.Kind})
	}
	return out
}

// Poller turns sampled key state into edge events.
type Poller struct {
	state    StateFunc
	watches  []Watch
	down     map[int]bool
	clock    func() float64
	interval time.Duration
}

// NewPoller returns a poller sampling state for the given watches.
func NewPoller(state StateFunc, watches []Watch) *Poller {
	return &Poller{
		state:    state,
		watches:  watches,
		down:     map[int]bool{},
		clock:    MonotonicClock(),
		interval: DefaultPollInterval,
	}
}

// SetClock replaces the millisecond clock.
func (p *Poller) SetClock(clock func() float64) {
	p.clock = clock
}

// SetInterval replaces the sampling period.
func (p *Poller) SetInterval(d time.Duration) {
	if d > 0 {
		p.interval = d
	}
}

// Poll samples every watched key once. Up edges are emitted before down edges and
// carry an earlier timestamp, so a release and the opposite press caught in the same
// sweep keep their real order.
func (p *Poller) Poll() []Event {
	var events []Event
	ups := p.clock()
	pressed := make([]Watch, 0, len(p.watches))
	for _, w := range p.watches {
		cur := p.state(w.Code)
		prev := p.down[w.Code]
		p.down[w.Code] = cur
		switch {
		case cur && !prev && w.Down != None:
			pressed = append(pressed, w)
		case !cur && prev && w.Up != None:
			events = append(events, Event{Kind: w.Up, Key: w.Key, At: ups})
		}
	}
	if len(pressed) == 0 {
		return events
	}
	downs := ups
	if len(events) > 0 {
		downs = p.clock()
		if downs <= ups {
			downs = math.Nextafter(ups, math.Inf(1))
		}
	}
	for _, w := range pressed {
		events = append(events, Event{Kind: w.Down, Key: w.Key, At: downs})
	}
	return events
}

// Run polls until ctx is done, sending events to out.
func (p *Poller) Run(ctx context.Context, out chan<- Event) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		for _, ev := range p.Poll() {
			select {
			case out <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
