package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mugrush/internal/ui/theme"
)

// SeedSubmitMsg is emitted when the user confirms a seed. Seed 0 means a
// fresh random one.
type SeedSubmitMsg struct{ Seed int64 }

// SeedCancelMsg is emitted when the user presses esc.
type SeedCancelMsg struct{}

var (
	promptStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle  = lipgloss.NewStyle().Foreground(theme.Subtext0)
	errorStyle = lipgloss.NewStyle().Foreground(theme.Red)
)

// SeedPrompt is an overlay that asks for the seed of the next run, backed by
// bubbles/textinput.
type SeedPrompt struct {
	input   textinput.Model
	visible bool
	err     string
	width   int
}

func NewSeedPrompt() SeedPrompt {
	ti := textinput.New()
	ti.Placeholder = "empty for random"
	ti.CharLimit = 20
	ti.Validate = func(s string) error {
		if strings.TrimLeft(strings.TrimSpace(s), "-0123456789") != "" {
			return strconv.ErrSyntax
		}
		return nil
	}
	return SeedPrompt{input: ti}
}

func (p SeedPrompt) Visible() bool { return p.visible }

// Open shows the prompt, clears the input, and returns the focus command.
func (p *SeedPrompt) Open() tea.Cmd {
	p.visible = true
	p.err = ""
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *SeedPrompt) SetWidth(w int) { p.width = w }

func (p SeedPrompt) Update(msg tea.Msg) (SeedPrompt, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return SeedCancelMsg{} }
		case "enter":
			seed, err := ParseSeed(p.input.Value())
			if err != nil {
				p.err = "seed must be a whole number"
				return p, nil
			}
			p.close()
			return p, func() tea.Msg { return SeedSubmitMsg{Seed: seed} }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *SeedPrompt) close() {
	p.visible = false
	p.input.Blur()
}

func (p SeedPrompt) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("New run") + "\n")
	sb.WriteString("seed: " + p.input.View() + "\n")
	if p.err != "" {
		sb.WriteString(errorStyle.Render(p.err) + "\n")
	}
	sb.WriteString("\n" + hintStyle.Render("enter: start  esc: cancel"))

	w := p.width
	if w < 20 {
		w = 48
	}
	return promptStyle.Width(w - 2).Render(sb.String())
}

// ParseSeed reads a seed typed by the user. Blank input is 0.
func ParseSeed(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}
