package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/mediaseq/internal/interval"
	"github.com/kingrea/mediaseq/internal/sequencer"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")).MarginBottom(1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	idleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	header := headerStyle.Render(fmt.Sprintf("▶ MEDIASEQ · %s", a.mediaLabel))
	timeline := boxStyle.Width(max(20, width-2)).Render(a.renderTimeline(max(20, width-6)))

	half := max(20, width/2-2)
	left := boxStyle.Width(half).Render(a.sequences.View())
	right := boxStyle.Width(half).Render(a.renderFeed())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	sections := []string{header, timeline, body}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := mutedStyle.MarginTop(1).Render(a.statusMsg)
	if a.err != nil {
		footer = errorStyle.MarginTop(1).Render(a.statusMsg)
	}
	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}

func (a *App) renderTimeline(width int) string {
	now := a.seq.CurrentTime()
	duration := a.seq.Duration()
	percent := 0.0
	if duration > 0 {
		percent = now / duration
	}
	a.timeline.Width = width
	state := "playing"
	if a.seq.Paused() {
		state = "paused"
	}
	position := fmt.Sprintf("%6.2fs / %.2fs · %s", now, duration, state)
	session, ok := a.seq.Active()
	lines := []string{
		titleStyle.Render("Timeline"),
		a.timeline.ViewAs(percent),
		renderMarkers(a.seq.Sequences(), session, ok, duration, width),
		position,
		describeSession(session, ok),
		describeCoverage(a.seq.Sequences(), now),
	}
	return strings.Join(lines, "\n")
}

// describeCoverage lists the sequences containing t.
func describeCoverage(intervals []interval.Interval, t float64) string {
	var inside []string
	for _, iv := range intervals {
		if iv.Contains(t) {
			inside = append(inside, iv.String())
		}
	}
	if len(inside) == 0 {
		return mutedStyle.Render("Between sequences")
	}
	return "Inside " + strings.Join(inside, " ")
}

// renderMarkers draws one cell per timeline slot, highlighting the interval
// bound to the live session.
func renderMarkers(intervals []interval.Interval, session sequencer.Session, live bool, duration float64, width int) string {
	if duration <= 0 || width <= 0 {
		return ""
	}
	cells := make([]int, width)
	for _, iv := range intervals {
		from := int(iv.Start / duration * float64(width))
		to := int(iv.End / duration * float64(width))
		for i := max(0, from); i < min(width, max(to, from+1)); i++ {
			if cells[i] == 0 {
				cells[i] = 1
			}
			if live && session.Bound && session.Interval == iv {
				cells[i] = 2
			}
		}
	}
	var b strings.Builder
	for _, c := range cells {
		switch c {
		case 2:
			b.WriteString(activeStyle.Render("█"))
		case 1:
			b.WriteString(idleStyle.Render("▒"))
		default:
			b.WriteString(" ")
		}
	}
	return b.String()
}

func describeSession(session sequencer.Session, ok bool) string {
	if !ok {
		return mutedStyle.Render("No active session")
	}
	if session.Bound {
		return fmt.Sprintf("%s · %s · until %.2fs", session.Mode, session.Interval, session.Deadline)
	}
	return fmt.Sprintf("%s · until %.2fs", session.Mode, session.Deadline)
}

func (a *App) renderFeed() string {
	title := titleStyle.Render("Events")
	if len(a.feed) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, mutedStyle.Render("Nothing yet."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(a.feed, "\n"))
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines := a.logbook.Tail(6)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "journal"
	}
	head := titleStyle.Render(fmt.Sprintf("JOURNAL · %s", fileName))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return boxStyle.Render(fmt.Sprintf("%s\n%s", head, body))
}
