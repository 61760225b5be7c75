package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

const (
	stateMenu = iota
	stateLive
)

// PresetEntry is one row of the preset menu.
type PresetEntry struct {
	Name string
	Info string
}

// picker lists presets and hands over to the live page once one is chosen.
type picker struct {
	state, cursor int
	entries       []PresetEntry
	build         func(name string) (Model, error)
	err           error
	width, height int
	live          Model
}

// NewPicker returns a menu over entries. build creates the page for the
// chosen preset.
func NewPicker(entries []PresetEntry, build func(name string) (Model, error)) tea.Model {
	return picker{
		state:   stateMenu,
		entries: entries,
		build:   build,
		width:   width,
		height:  height,
	}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateLive {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m.menuKey(msg)
	}
	return m, nil
}

func (m picker) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.entries) == 0 {
			return m, nil
		}
		live, err := m.build(m.entries[m.cursor].Name)
		if err != nil {
			m.err = err
			return m, nil
		}
		live.resize(m.width, m.height)
		m.live = live
		m.state = stateLive
		return m, live.Init()
	}
	return m, nil
}

func (m picker) View() string {
	if m.state == stateLive {
		return m.live.View()
	}

	var b strings.Builder
	b.WriteString("\n  " + GradientText("CHAOS LANDING", CurrentTheme.Primary, CurrentTheme.Secondary) + "\n")
	b.WriteString("  " + dim.Render("pick your poison") + "\n\n")
	for i, e := range m.entries {
		cursor, name := "  ", white.Render(fmt.Sprintf("%-10s", e.Name))
		if i == m.cursor {
			cursor, name = magenta.Render("▸ "), cyan.Render(fmt.Sprintf("%-10s", e.Name))
		}
		b.WriteString("  " + cursor + name + " " + dim.Render(e.Info) + "\n")
	}
	if m.err != nil {
		b.WriteString("\n  " + StatusRecording.UnsetBlink().Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n  " + KeyHint.Render("↑↓ select · enter launch · q quit") + "\n")
	return b.String()
}
