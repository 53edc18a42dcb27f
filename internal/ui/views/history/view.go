package history

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"mugrush/internal/modules/drinking/dto"
	"mugrush/internal/ui/theme"
)

const listLimit = 50

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	History(ctx context.Context, limit int) ([]dto.RunOutput, error)
	Run(ctx context.Context, id string) (dto.RunDetailOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type RunsLoadedMsg struct {
	Runs []dto.RunOutput
	Err  error
}

type DetailLoadedMsg struct {
	Detail dto.RunDetailOutput
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type runItem struct {
	run dto.RunOutput
}

func (i runItem) Title() string {
	return fmt.Sprintf("%s  %s", i.run.StartedAt.Local().Format("2006-01-02 15:04"), i.run.Outcome)
}

func (i runItem) Description() string {
	return fmt.Sprintf("%d mugs  %d/%d chugs  %d staggers  %.1fs",
		i.run.Mugs, i.run.Chugs, i.run.Attempts, i.run.Staggers, i.run.GameSeconds)
}

func (i runItem) FilterValue() string { return i.run.Outcome + " " + i.run.ID }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	list     list.Model
	preview  viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	loading  bool
	width    int
	height   int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Runs"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)

	return Model{
		port:     port,
		list:     l,
		preview:  vp,
		spinner:  sp,
		renderer: r,
		loading:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches the run list again, typically after a run was recorded.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return RunsLoadedMsg{}
		}
		runs, err := m.port.History(context.Background(), listLimit)
		return RunsLoadedMsg{Runs: runs, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case RunsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Runs: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Runs"
		items := make([]list.Item, len(msg.Runs))
		for i, r := range msg.Runs {
			items[i] = runItem{run: r}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Runs) > 0 {
			cmds = append(cmds, m.loadDetailCmd(msg.Runs[m.selectedIndex(len(msg.Runs))].ID))
		} else {
			m.preview.SetContent(theme.Muted.Render("No runs yet. Play one first."))
		}

	case DetailLoadedMsg:
		if msg.Err != nil {
			m.preview.SetContent(theme.Closed.Render(msg.Err.Error()))
		} else {
			m.preview.SetContent(m.renderNote(msg.Detail))
			m.preview.GotoTop()
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if item, ok := m.list.SelectedItem().(runItem); ok {
				cmds = append(cmds, m.loadDetailCmd(item.run.ID))
			}
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading runs…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) selectedIndex(n int) int {
	idx := m.list.Index()
	if idx < 0 || idx >= n {
		return 0
	}
	return idx
}

func (m Model) renderNote(d dto.RunDetailOutput) string {
	if d.Note == "" {
		return theme.Muted.Render("run " + d.Run.ID + " has no journal note")
	}
	if m.renderer == nil {
		return d.Note
	}
	out, err := m.renderer.Render(d.Note)
	if err != nil {
		return d.Note
	}
	return out
}

func (m Model) loadDetailCmd(id string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.port.Run(context.Background(), id)
		return DetailLoadedMsg{Detail: detail, Err: err}
	}
}
