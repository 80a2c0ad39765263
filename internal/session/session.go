// Package session serializes input events into a classifier and reports results.
package session

import (
	"context"
	"sync"

	"github.com/verte-zerg/cstrafe/internal/classifier"
	"github.com/verte-zerg/cstrafe/internal/input"
)

// Renderer receives the final classification of each shot. It may be called from the
// event-handling goroutine.
type Renderer interface {
	Render(result classifier.ShotClassification)
}

// Controller receives overlay control events.
type Controller interface {
	Control(kind input.Kind)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(classifier.ShotClassification)

// Render implements Renderer.
func (f RendererFunc) Render(result classifier.ShotClassification) {
	f(result)
}

// Session owns one classifier. Every press, release and shot holds the same lock so
// that overlap and counter-strafe detection see a consistent axis state.
type Session struct {
	mu         sync.Mutex
	classifier classifier.Classifier
	filter     classifier.Filter
	renderer   Renderer
	controller Controller
}

// New returns a session. renderer may be nil.
func New(c classifier.Classifier, f classifier.Filter, renderer Renderer) *Session {
	return &Session{classifier: c, filter: f, renderer: renderer}
}

// SetController installs the receiver for control events.
func (s *Session) SetController(c Controller) {
	s.controller = c
}

// Press records a key press.
func (s *Session) Press(key string, at float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classifier.OnPress(key, at)
}

// Release records a key release.
func (s *Session) Release(key string, at float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classifier.OnRelease(key, at)
}

// Shot classifies a shot at the given time, renders the filtered result and returns it.
func (s *Session) Shot(at float64) classifier.ShotClassification {
	s.mu.Lock()
	raw := s.classifier.ClassifyShot(at)
	s.mu.Unlock()

	result := s.filter.Apply(raw)
	if s.renderer != nil {
		s.renderer.Render(result)
	}
	return result
}

// Handle dispatches one event. It reports whether the event was a shot, with its result.
func (s *Session) Handle(ev input.Event) (classifier.ShotClassification, bool) {
	switch ev.Kind {
	case input.Press:
		s.Press(ev.Key, ev.At)
	case input.Release:
		s.Release(ev.Key, ev.At)
	case input.Click:
		return s.Shot(ev.At), true
	default:
		if ev.Kind.Control() && s.controller != nil {
			s.controller.Control(ev.Kind)
		}
	}
	return classifier.ShotClassification{}, false
}

// Run handles events until events is closed or ctx is done. A Quit event also stops
// the loop after it has been forwarded.
func (s *Session) Run(ctx context.Context, events <-chan input.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.Handle(ev)
			if ev.Kind == input.Quit {
				return
			}
		}
	}
}
