package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/cstrafe/internal/classifier"
	"github.com/verte-zerg/cstrafe/internal/input"
	"github.com/verte-zerg/cstrafe/internal/session"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewModelClampsSize(t *testing.T) {
	m := NewModel(40)
	assert.Equal(t, DefaultSize, m.bodySize)
	assert.Equal(t, 12, m.headerSize)

	m = NewModel(8)
	assert.Equal(t, 8, m.bodySize)
	assert.Equal(t, 10, m.headerSize)
}

func TestGrowShrinkBounds(t *testing.T) {
	m := NewModel(DefaultSize)
	for i := 0; i < 20; i++ {
		m.Update(ControlMsg{Kind: input.Grow})
	}
	assert.Equal(t, MaxSize, m.bodySize)
	assert.Equal(t, 26, m.headerSize)

	for i := 0; i < 20; i++ {
		m.Update(ControlMsg{Kind: input.Shrink})
	}
	assert.Equal(t, MinSize, m.bodySize)
	assert.Equal(t, 10, m.headerSize)
}

func TestKeyBindings(t *testing.T) {
	m := NewModel(DefaultSize)
	m.Update(runeKey('='))
	assert.Equal(t, 12, m.bodySize, "= grows")
	m.Update(runeKey('-'))
	assert.Equal(t, 10, m.bodySize, "- shrinks")
	m.Update(tea.KeyMsg{Type: tea.KeyF6})
	assert.False(t, m.visible, "F6 hides")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyF8})
	assert.NotNil(t, cmd, "F8 quits")
}

func TestGlobalControlsActOnce(t *testing.T) {
	m := NewModel(DefaultSize)
	m.UseGlobalControls()

	// A global hotkey with the terminal focused arrives both ways.
	m.Update(ControlMsg{Kind: input.ToggleVisibility})
	m.Update(tea.KeyMsg{Type: tea.KeyF6})
	assert.False(t, m.visible)

	m.Update(ControlMsg{Kind: input.ToggleVisibility})
	m.Update(ControlMsg{Kind: input.Grow})
	m.Update(runeKey('='))
	assert.Equal(t, 12, m.bodySize)

	m.Update(ControlMsg{Kind: input.Shrink})
	m.Update(runeKey('-'))
	assert.Equal(t, 10, m.bodySize)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyF8})
	assert.Nil(t, cmd, "F8 only arrives as ControlMsg")
	_, cmd = m.Update(runeKey('q'))
	assert.NotNil(t, cmd, "q still quits from the terminal")
	assert.Contains(t, m.View(), "hide/show")
}

func TestToggleVisibility(t *testing.T) {
	m := NewModel(DefaultSize)
	m.Update(ControlMsg{Kind: input.ToggleVisibility})
	assert.Contains(t, m.View(), "hidden")
	m.Update(ControlMsg{Kind: input.ToggleVisibility})
	assert.Contains(t, m.View(), title)
}

func TestQuitControl(t *testing.T) {
	m := NewModel(DefaultSize)
	_, cmd := m.Update(ControlMsg{Kind: input.Quit})
	assert.NotNil(t, cmd)
}

func TestResultRendering(t *testing.T) {
	m := NewModel(DefaultSize)
	assert.Contains(t, m.View(), waitingText)

	m.Update(ResultMsg{Result: classifier.ShotClassification{Label: classifier.Overlap, OverlapTime: classifier.Ms(80)}})
	view := m.View()
	assert.Contains(t, view, "Classification: Overlap")
	assert.Contains(t, view, "Overlap: 80 ms")
	assert.Equal(t, colorOverlap, m.color)
}

func TestRepeatedResultKeepsView(t *testing.T) {
	m := NewModel(DefaultSize)
	res := classifier.ShotClassification{Label: classifier.Bad}
	_, cmd := m.Update(ResultMsg{Result: res})
	assert.Nil(t, cmd)
	first := m.View()
	_, cmd = m.Update(ResultMsg{Result: res})
	assert.Nil(t, cmd)
	assert.Equal(t, first, m.View())

	m.Update(ResultMsg{Result: classifier.ShotClassification{Label: classifier.CounterStrafe, CSTime: classifier.Ms(5), ShotDelay: classifier.Ms(6)}})
	assert.NotEqual(t, first, m.View())
	assert.Equal(t, colorCounterStrafe, m.color)
}

func TestLabelColor(t *testing.T) {
	tests := []struct {
		label classifier.Label
		want  string
	}{
		{classifier.CounterStrafe, "#228b22"},
		{classifier.Overlap, "#ff8c00"},
		{classifier.Bad, "#cc0000"},
		{classifier.Label(9), "#202020"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, string(labelColor(tt.label)), tt.label.String())
	}
}

type fakeSender struct {
	msgs []tea.Msg
}

func (f *fakeSender) Send(msg tea.Msg) {
	f.msgs = append(f.msgs, msg)
}

func TestRendererSends(t *testing.T) {
	s := &fakeSender{}
	r := NewRenderer(s)
	r.Render(classifier.ShotClassification{Label: classifier.Bad})
	r.Control(input.Grow)
	require.Len(t, s.msgs, 2)
	assert.IsType(t, ResultMsg{}, s.msgs[0])
	assert.Equal(t, ControlMsg{Kind: input.Grow}, s.msgs[1])
}

var (
	_ session.Renderer   = (*Renderer)(nil)
	_ session.Controller = (*Renderer)(nil)
)
