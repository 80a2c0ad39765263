// Package overlay provides the Bubble Tea classification overlay.
package overlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/cstrafe/internal/classifier"
	"github.com/verte-zerg/cstrafe/internal/input"
)

const (
	// DefaultSize is the initial body size.
	DefaultSize = 10
	// MinSize and MaxSize bound the body size.
	MinSize = 8
	MaxSize = 24

	sizeStep      = 2
	minHeaderSize = 10
	title         = "cStrafe UI"
	waitingText   = "Waiting for input..."
)

var (
	colorCounterStrafe = lipgloss.Color("#228b22")
	colorOverlap       = lipgloss.Color("#ff8c00")
	colorBad           = lipgloss.Color("#cc0000")
	colorIdle          = lipgloss.Color("#202020")

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#303030")).
			Bold(true).
			Align(lipgloss.Center)
	bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Align(lipgloss.Center)
	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// ResultMsg delivers a final classification to the overlay.
type ResultMsg struct {
	Result classifier.ShotClassification
}

// ControlMsg delivers a hotkey action from the global input source.
type ControlMsg struct {
	Kind input.Kind
}

type keyMap struct {
	Grow   key.Binding
	Shrink key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Grow, k.Shrink, k.Toggle, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Grow:   key.NewBinding(key.WithKeys("=", "+"), key.WithHelp("=", "bigger")),
		Shrink: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "smaller")),
		Toggle: key.NewBinding(key.WithKeys("f6"), key.WithHelp("F6", "hide/show")),
		Quit:   key.NewBinding(key.WithKeys("f8", "q", "ctrl+c"), key.WithHelp("F8", "quit")),
	}
}

// globalKeyMap leaves only the terminal-local quit keys; the rest arrive as ControlMsg.
func globalKeyMap() keyMap {
	km := defaultKeyMap()
	km.Grow.SetEnabled(false)
	km.Shrink.SetEnabled(false)
	km.Toggle.SetEnabled(false)
	km.Quit.SetKeys("q", "ctrl+c")
	return km
}

// Model implements the Bubble Tea overlay.
type Model struct {
	text       string
	color      lipgloss.Color
	bodySize   int
	headerSize int
	visible    bool

	width  int
	height int

	keys     keyMap
	helpKeys keyMap
	help     help.Model
}

// NewModel constructs an overlay with the given body size.
func NewModel(size int) *Model {
	if size < MinSize || size > MaxSize {
		size = DefaultSize
	}
	return &Model{
		text:       waitingText,
		color:      colorIdle,
		bodySize:   size,
		headerSize: maxInt(minHeaderSize, size+sizeStep),
		visible:    true,
		keys:       defaultKeyMap(),
		helpKeys:   defaultKeyMap(),
		help:       help.New(),
	}
}

// UseGlobalControls is called when a system-wide input source delivers the hotkeys as
// ControlMsg. The matching terminal bindings are turned off so one keypress acts once.
func (m *Model) UseGlobalControls() {
	m.keys = globalKeyMap()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case ResultMsg:
		m.setResult(msg.Result)
		return m, nil
	case ControlMsg:
		return m, m.control(msg.Kind)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Grow):
			return m, m.control(input.Grow)
		case key.Matches(msg, m.keys.Shrink):
			return m, m.control(input.Shrink)
		case key.Matches(msg, m.keys.Toggle):
			return m, m.control(input.ToggleVisibility)
		case key.Matches(msg, m.keys.Quit):
			return m, m.control(input.Quit)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.visible {
		return hintStyle.Render("hidden (F6 to show)")
	}
	content := lipgloss.JoinVertical(lipgloss.Center, m.renderBox(), m.help.View(m.helpKeys))
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) control(kind input.Kind) tea.Cmd {
	switch kind {
	case input.Grow:
		if m.bodySize < MaxSize {
			m.bodySize += sizeStep
			m.headerSize += sizeStep
		}
	case input.Shrink:
		if m.bodySize > MinSize {
			m.bodySize -= sizeStep
			m.headerSize = maxInt(minHeaderSize, m.headerSize-sizeStep)
		}
	case input.ToggleVisibility:
		m.visible = !m.visible
	case input.Quit:
		return tea.Quit
	}
	return nil
}

func (m *Model) setResult(result classifier.ShotClassification) {
	m.text = result.DisplayString()
	m.color = labelColor(result.Label)
}

func (m *Model) renderBox() string {
	padX, padY := padding(m.bodySize)
	width := textWidth(m.text) + 2*padX
	if hw := runewidth.StringWidth(title) + 2*(m.headerSize/2); hw > width {
		width = hw
	}
	header := headerStyle.Width(width).Padding(0, m.headerSize/2).Render(title)
	body := bodyStyle.Background(m.color).Width(width).Padding(padY, padX).Render(m.text)
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

// padding maps the body size to horizontal and vertical cell padding.
func padding(size int) (int, int) {
	return size / 2, (size - MinSize) / 4
}

func labelColor(label classifier.Label) lipgloss.Color {
	switch label {
	case classifier.CounterStrafe:
		return colorCounterStrafe
	case classifier.Overlap:
		return colorOverlap
	case classifier.Bad:
		return colorBad
	default:
		return colorIdle
	}
}

func textWidth(text string) int {
	width := 0
	for _, line := range strings.Split(text, "\n") {
		if w := runewidth.StringWidth(line); w > width {
			width = w
		}
	}
	return width
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
