package tui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/routine/internal/routine"
)

type dashboardModel struct {
	state  *routine.State
	sel    *selection
	rng    *rand.Rand
	width  int
	height int

	stats      routine.Stats
	subjects   []routine.Subject
	motivation string

	bar progress.Model
}

func newDashboardModel(st *routine.State, sel *selection) dashboardModel {
	d := dashboardModel{
		state: st,
		sel:   sel,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
	}
	d.reload()
	return d
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.bar.Width = max(10, min(40, (w-16)/2))
}

// reload recomputes the numbers for the selected day.
func (d *dashboardModel) reload() {
	d.stats = d.state.Stats(d.sel.context(d.state))
	d.subjects = d.state.ActiveSubjects()
	d.motivation = routine.Motivation(d.stats.Streak, d.stats.Context.Mode, d.rng)
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case stateChangedMsg:
		d.reload()
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.PrevDay):
			d.sel.shift(-1)
		case key.Matches(msg, keys.NextDay):
			d.sel.shift(1)
		case key.Matches(msg, keys.Today):
			d.sel.setDate(d.state.Today())
		default:
			return d, nil
		}
		d.reload()
		return d, nil
	}
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderContextPanel(contentWidth),
		d.renderMetricsPanel(contentWidth),
		d.renderSubjectsPanel(contentWidth),
	)
}

func contextLines(ctx routine.DayContext) []string {
	date := titleStyle.Render(formatDate(ctx.Date))
	line := fmt.Sprintf("Week %d · %s · %s · %s",
		ctx.Week, routine.PhaseLabels[ctx.Phase], ctx.DayType.Label(), ctx.Mode.Label())
	lines := []string{date, highlightStyle.Render(line)}
	if ctx.FromLog {
		lines = append(lines, mutedStyle.Render("Showing the context recorded for this date"))
	}
	return lines
}

func (d dashboardModel) renderContextPanel(w int) string {
	rows := contextLines(d.stats.Context)
	rows = append(rows, "", accentStyle.Render(d.motivation))
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderMetricsPanel(w int) string {
	st := d.stats
	day := st.Day

	percent := 0.0
	if day.Checkable > 0 {
		percent = float64(day.Done) / float64(day.Checkable)
	}

	rows := []string{
		titleStyle.Render("Today"),
		fmt.Sprintf("  Streak      %s", highlightStyle.Render(fmt.Sprintf("%d days", st.Streak))),
		fmt.Sprintf("  Study       %s  (%d min)  grade %s",
			highlightStyle.Render(formatHours(day.Minutes)), day.Minutes, renderGrade(day.Grade)),
		fmt.Sprintf("  Blocks      %d/%d  %s", day.Done, day.Checkable, d.bar.ViewAs(percent)),
		fmt.Sprintf("  Possible    %d min", day.PossibleMinutes),
		"",
		titleStyle.Render("This week"),
		fmt.Sprintf("  %s – %s  %s  grade %s",
			st.Week.Start.Format("01/02"), st.Week.End.Format("01/02"),
			highlightStyle.Render(fmt.Sprintf("%.1fh", st.Week.Hours)), renderGrade(st.Week.Grade)),
		fmt.Sprintf("  7-day avg   %.1fh", st.RecentAverage),
	}

	if len(st.Badges) > 0 {
		labels := make([]string, len(st.Badges))
		for i, b := range st.Badges {
			labels[i] = tierStyle(b.Tier).Render(b.Label)
		}
		rows = append(rows, "", "  "+strings.Join(labels, "  "))
	}

	rows = append(rows, "",
		mutedStyle.Render("  "+routine.DailyGradeHint),
		mutedStyle.Render("  "+routine.WeeklyGradeHint),
	)
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderSubjectsPanel(w int) string {
	title := titleStyle.Render("Lecture progress")
	if len(d.subjects) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No active subjects. Press 3 to add one."),
		))
	}

	rows := []string{title}
	for _, s := range d.subjects {
		rows = append(rows, fmt.Sprintf("  %-12s %4d/%-4d %s",
			s.Name, s.CompletedLectures, s.TotalLectures, d.bar.ViewAs(float64(s.Percent())/100)))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func renderGrade(g string) string {
	switch g {
	case routine.GradeS:
		return gradeTopStyle.Render(g)
	case routine.GradeDMinus:
		return gradeLowStyle.Render(g)
	}
	return gradeStyle.Render(g)
}

func tierStyle(t routine.BadgeTier) lipgloss.Style {
	switch t {
	case routine.TierGold:
		return goldStyle
	case routine.TierSilver:
		return silverStyle
	}
	return bronzeStyle
}
