package overlay

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/cstrafe/internal/classifier"
	"github.com/verte-zerg/cstrafe/internal/input"
)

// Sender is the part of *tea.Program the renderer needs.
type Sender interface {
	Send(msg tea.Msg)
}

// Renderer forwards session output into the overlay's event loop.
type Renderer struct {
	sender Sender
}

// NewRenderer returns a renderer sending to s.
func NewRenderer(s Sender) *Renderer {
	return &Renderer{sender: s}
}

// Render implements session.Renderer.
func (r *Renderer) Render(result classifier.ShotClassification) {
	r.sender.Send(ResultMsg{Result: result})
}

// Control implements session.Controller.
func (r *Renderer) Control(kind input.Kind) {
	r.sender.Send(ControlMsg{Kind: kind})
}
