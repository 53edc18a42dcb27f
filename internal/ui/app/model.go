package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mugrush/internal/modules/drinking/dto"
	"mugrush/internal/platform/clock"
	apperrors "mugrush/internal/platform/errors"
	"mugrush/internal/ui/components"
	"mugrush/internal/ui/theme"
	gameview "mugrush/internal/ui/views/game"
	historyview "mugrush/internal/ui/views/history"
)

// FrameInterval paces the game loop at 60 frames per second.
const FrameInterval = time.Second / 60

// ─── ports ───────────────────────────────────────────────────────────────────

type gamePort interface {
	Start(ctx context.Context, seed int64) (dto.StartOutput, error)
	Tick(ctx context.Context, deltaSeconds float64, keys []string) (dto.FrameOutput, error)
	Abandon(ctx context.Context) (dto.RunOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabPlay tabID = iota
	tabHistory
	tabCount
)

var tabLabels = [tabCount]string{"Play", "History"}

// ─── async messages ───────────────────────────────────────────────────────────

type frameTickMsg time.Time

type runStartedMsg struct {
	out dto.StartOutput
	err error
}

type runAbandonedMsg struct {
	run dto.RunOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Chug    key.Binding
	Left    key.Binding
	Right   key.Binding
	Restart key.Binding
	Seed    key.Binding
	Abandon key.Binding
	Tab     key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Chug:    key.NewBinding(key.WithKeys(" ", "space", "enter"), key.WithHelp("space", "chug")),
		Left:    key.NewBinding(key.WithKeys("a", "left"), key.WithHelp("a/←", "lean left")),
		Right:   key.NewBinding(key.WithKeys("d", "right"), key.WithHelp("d/→", "lean right")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new run")),
		Seed:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "new run with seed")),
		Abandon: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "abandon run")),
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Chug, k.Left, k.Right, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Chug, k.Left, k.Right},
		{k.Restart, k.Seed, k.Abandon, k.Tab},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns the frame loop, buffers key
// presses between frames and routes rendering to the game and history views.
type Model struct {
	game  gamePort
	clock clock.Clock
	seed  int64
	frame *clock.Frame

	gameView gameview.Model
	histView historyview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	prompt    components.SeedPrompt
	playing   bool
	starting  bool
	quitting  bool
	pending   []string
	runID     string
	status    string
	width     int
	height    int
}

// NewModel builds the UI. A non-zero seed is used for the first run only.
func NewModel(game gamePort, history historyview.Port, clk clock.Clock, seed int64) Model {
	return Model{
		game:     game,
		clock:    clk,
		seed:     seed,
		frame:    clock.NewFrame(clk),
		gameView: gameview.New(),
		histView: historyview.New(history),
		keys:     defaultKeys(),
		help:     help.New(),
		prompt:   components.NewSeedPrompt(),
		status:   "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.histView.Init(),
		m.startRunCmd(m.seed),
		tickFrame(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The seed prompt intercepts all input while open.
	if _, isKey := msg.(tea.KeyMsg); isKey && m.prompt.Visible() {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width
		m.prompt.SetWidth(min(m.width-4, 48))
		m.propagateSize()
		return m, nil

	case frameTickMsg:
		cmds = append(cmds, tickFrame())
		if m.playing {
			cmds = append(cmds, m.advance())
		}
		return m, tea.Batch(cmds...)

	case runStartedMsg:
		m.starting = false
		if msg.err != nil {
			m.status = "start failed: " + msg.err.Error()
			return m, nil
		}
		m.playing = true
		m.runID = msg.out.RunID
		m.pending = nil
		m.frame = clock.NewFrame(m.clock)
		m.frame.Delta()
		m.gameView.Reset()
		m.activeTab = tabPlay
		m.status = fmt.Sprintf("run %s  seed %d", shortID(msg.out.RunID), msg.out.Seed)
		return m, nil

	case runAbandonedMsg:
		m.playing = false
		m.pending = nil
		if msg.err != nil && !errors.Is(msg.err, apperrors.ErrNoActiveRun) {
			m.status = "abandon failed: " + msg.err.Error()
		} else if msg.err == nil {
			run := msg.run
			m.gameView.SetFrame(dto.FrameOutput{RunID: run.ID, Over: true, Run: &run})
			m.status = "run " + shortID(run.ID) + " abandoned"
		}
		if m.quitting {
			return m, tea.Quit
		}
		return m, m.histView.Reload()

	case components.SeedSubmitMsg:
		if m.playing || m.starting {
			return m, nil
		}
		m.starting = true
		return m, m.startRunCmd(msg.Seed)

	case components.SeedCancelMsg:
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.activeTab == tabHistory && m.histView.Filtering() {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.playing {
				m.quitting = true
				return m, m.abandon()
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			if m.playing {
				m.status = "finish or abandon the run first"
				return m, nil
			}
			m.activeTab = (m.activeTab + 1) % tabCount
			if m.activeTab == tabHistory {
				return m, m.histView.Reload()
			}
			return m, nil
		}

		if m.activeTab == tabPlay {
			switch {
			case key.Matches(msg, m.keys.Chug):
				m.press(dto.KeyAction)
			case key.Matches(msg, m.keys.Left):
				m.press(dto.KeyLeft)
			case key.Matches(msg, m.keys.Right):
				m.press(dto.KeyRight)
			case key.Matches(msg, m.keys.Abandon):
				if m.playing {
					return m, m.abandon()
				}
			case key.Matches(msg, m.keys.Restart):
				if !m.playing && !m.starting {
					m.starting = true
					return m, m.startRunCmd(0)
				}
			case key.Matches(msg, m.keys.Seed):
				if !m.playing && !m.starting {
					return m, m.prompt.Open()
				}
			}
			return m, nil
		}
	}

	if m.activeTab == tabHistory {
		var cmd tea.Cmd
		m.histView, cmd = m.histView.Update(msg)
		cmds = append(cmds, cmd)
	} else if _, ok := msg.(tea.KeyMsg); !ok {
		// list loads arrive while the play tab is shown
		var cmd tea.Cmd
		m.histView, cmd = m.histView.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// press queues a key for the next frame. A key pressed twice within one
// frame still counts once.
func (m *Model) press(k string) {
	if !m.playing {
		return
	}
	for _, p := range m.pending {
		if p == k {
			return
		}
	}
	m.pending = append(m.pending, k)
}

// abandon stops the frame loop before the abandon request is sent so no
// tick races the released run.
func (m *Model) abandon() tea.Cmd {
	m.playing = false
	m.pending = nil
	m.status = "abandoning run"
	return m.abandonCmd()
}

// advance runs one game frame with the buffered keys.
func (m *Model) advance() tea.Cmd {
	keys := m.pending
	m.pending = nil
	frame, err := m.game.Tick(context.Background(), m.frame.Delta(), keys)
	if frame.RunID != "" || frame.Run != nil {
		m.gameView.SetFrame(frame)
	}
	if frame.Run != nil {
		m.playing = false
		m.status = fmt.Sprintf("run %s %s", shortID(frame.Run.ID), frame.Run.Outcome)
		if err != nil {
			m.status += ": " + err.Error()
		}
		return m.histView.Reload()
	}
	if err != nil {
		m.playing = false
		m.status = "tick failed: " + err.Error()
	}
	return nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.prompt.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.prompt.View())
	case m.activeTab == tabHistory:
		content = m.histView.View()
	default:
		content = m.gameView.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "mugrush  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.playing {
		left = theme.Hot.Render("● playing") + "  " + left
	}
	right := theme.Muted.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	h := max(m.height-3, 1)
	m.gameView.SetSize(m.width, h)
	m.histView, _ = m.histView.Update(tea.WindowSizeMsg{Width: m.width, Height: h})
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ─── async commands ───────────────────────────────────────────────────────────

func tickFrame() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

func (m Model) startRunCmd(seed int64) tea.Cmd {
	return func() tea.Msg {
		out, err := m.game.Start(context.Background(), seed)
		return runStartedMsg{out: out, err: err}
	}
}

func (m Model) abandonCmd() tea.Cmd {
	return func() tea.Msg {
		run, err := m.game.Abandon(context.Background())
		return runAbandonedMsg{run: run, err: err}
	}
}
