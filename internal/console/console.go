// Package console renders classifications as plain text lines.
package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ttacon/chalk"
	"golang.org/x/term"

	"github.com/verte-zerg/cstrafe/internal/classifier"
)

// Renderer writes each classification to w, one block per shot.
type Renderer struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
	err   error
}

// New returns a renderer for w. Color is enabled when w is a terminal.
func New(w io.Writer) *Renderer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &Renderer{w: w, color: color}
}

// SetColor forces color output on or off.
func (r *Renderer) SetColor(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.color = on
}

// Render implements session.Renderer.
func (r *Renderer) Render(result classifier.ShotClassification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}
	lines := result.Lines()
	if r.color {
		lines[0] = labelColor(result.Label).Color(lines[0])
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(r.w, line); err != nil {
			r.err = err
			return
		}
	}
	if _, err := fmt.Fprintln(r.w); err != nil {
		r.err = err
	}
}

// Err returns the first write error.
func (r *Renderer) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func labelColor(label classifier.Label) chalk.Color {
	switch label {
	case classifier.CounterStrafe:
		return chalk.Green
	case classifier.Overlap:
		return chalk.Yellow
	default:
		return chalk.Red
	}
}
