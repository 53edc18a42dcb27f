package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"mugrush/internal/modules/drinking/dto"
	"mugrush/internal/ui/theme"
)

const (
	barMinWidth    = 20
	barMaxWidth    = 60
	wobbleMaxWidth = 12
)

// Model renders the last frame of the active run. It holds no game state of
// its own; the app model feeds it every frame it receives.
type Model struct {
	closedBar progress.Model
	openBar   progress.Model
	frame     dto.FrameOutput
	started   bool
	flash     string
	width     int
	height    int
}

func New() Model {
	return Model{
		closedBar: progress.New(progress.WithSolidFill(string(theme.Red)), progress.WithoutPercentage()),
		openBar:   progress.New(progress.WithSolidFill(string(theme.Green)), progress.WithoutPercentage()),
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	w := min(max(width/2, barMinWidth), barMaxWidth)
	m.closedBar.Width = w
	m.openBar.Width = w
}

// Reset clears the previous run before a new one starts.
func (m *Model) Reset() {
	m.frame = dto.FrameOutput{}
	m.started = false
	m.flash = ""
}

func (m *Model) SetFrame(frame dto.FrameOutput) {
	m.frame = frame
	m.started = true
	switch {
	case slices.Contains(frame.Events, dto.EventGameOver):
		m.flash = "last mug down!"
	case slices.Contains(frame.Events, dto.EventMugComplete):
		m.flash = fmt.Sprintf("mug %d down!", frame.Mugs)
	case slices.Contains(frame.Events, dto.EventAborted):
		m.flash = "aborted"
	case frame.Phase == "racing":
		m.flash = ""
	}
}

func (m Model) Frame() dto.FrameOutput { return m.frame }

func (m Model) View() string {
	if !m.started {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("press r to start a run"))
	}
	f := m.frame
	if f.Run != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderBanner(*f.Run))
	}

	header := fmt.Sprintf("%s  %s",
		theme.Title.Render(fmt.Sprintf("MUG %d/%d", f.Mugs, f.MugTarget)),
		theme.Muted.Render(fmt.Sprintf("chug %d/%d", f.Chugs, f.ChugsPerMug)),
	)
	row := lipgloss.JoinHorizontal(lipgloss.Center,
		m.renderWobble("left"),
		"  ",
		m.renderChug(),
		"  ",
		m.renderWobble("right"),
	)
	body := lipgloss.JoinVertical(lipgloss.Center, header, "", row, "", m.renderStatus())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) renderChug() string {
	f := m.frame
	if !f.ChugVisible {
		return strings.Repeat(" ", m.closedBar.Width)
	}
	if f.ChugInWindow {
		return m.openBar.ViewAs(f.ChugScale)
	}
	return m.closedBar.ViewAs(f.ChugScale)
}

func (m Model) renderWobble(side string) string {
	label := "A ◀"
	if side == "right" {
		label = "▶ D"
	}
	f := m.frame
	if !f.WobbleVisible || f.WobbleSide != side {
		return lipgloss.NewStyle().Width(wobbleMaxWidth + 4).Render("")
	}
	w := int(float64(lipgloss.Width(label)+2) * f.WobbleScale)
	w = min(max(w, lipgloss.Width(label)), wobbleMaxWidth)
	return theme.Wobble.Width(w).Align(lipgloss.Center).Render(label)
}

func (m Model) renderStatus() string {
	f := m.frame
	switch {
	case m.flash != "":
		return theme.Hot.Render(m.flash)
	case f.Staggered:
		return theme.Warn.Render("staggered!")
	case f.Phase == "startup":
		return theme.Muted.Render("get ready…")
	case f.Phase == "recovery":
		return theme.Warn.Render(fmt.Sprintf("recovering %.1fs", f.DelayRemaining))
	case f.Phase == "mug_delay":
		return theme.Muted.Render(fmt.Sprintf("next mug in %.1fs", f.DelayRemaining))
	case f.ChugInWindow:
		return theme.Open.Render("CHUG!")
	default:
		return theme.Closed.Render(fmt.Sprintf("wait… window %.2fs", f.TimeLimit))
	}
}

func (m Model) renderBanner(run dto.RunOutput) string {
	var sb strings.Builder
	switch run.Outcome {
	case "completed":
		sb.WriteString(theme.Open.Render("ALL MUGS DOWN") + "\n\n")
	case "aborted":
		sb.WriteString(theme.Closed.Render("RUN ABORTED") + "\n\n")
	default:
		sb.WriteString(theme.Warn.Render("RUN ABANDONED") + "\n\n")
	}
	fmt.Fprintf(&sb, "%s%d\n", theme.Muted.Render("mugs:      "), run.Mugs)
	fmt.Fprintf(&sb, "%s%d / %d\n", theme.Muted.Render("chugs:     "), run.Chugs, run.Attempts)
	fmt.Fprintf(&sb, "%s%d\n", theme.Muted.Render("streak:    "), run.BestStreak)
	fmt.Fprintf(&sb, "%s%d\n", theme.Muted.Render("staggers:  "), run.Staggers)
	fmt.Fprintf(&sb, "%s%.3fs\n", theme.Muted.Render("fastest:   "), run.MinTimeLimit)
	fmt.Fprintf(&sb, "%s%.1fs", theme.Muted.Render("time:      "), run.GameSeconds)
	if run.Error != "" {
		sb.WriteString("\n\n" + theme.Closed.Render(run.Error))
	}
	sb.WriteString("\n\n" + theme.Muted.Render("r: play again  tab: history  q: quit"))
	return theme.Banner.Render(sb.String())
}
