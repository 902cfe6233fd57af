package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/routine/internal/routine"
)

const heatmapWeeks = 12

type analysisModel struct {
	state  *routine.State
	width  int
	height int

	offset int // weeks back from the current week (0 = current)
	week   routine.WeekSummary
	days   []routine.DayTotal
	heat   [][]routine.HeatCell

	chart barchart.Model
}

func newAnalysisModel(st *routine.State) analysisModel {
	a := analysisModel{
		state: st,
		chart: barchart.New(60, 12),
	}
	a.reload()
	return a
}

func (a *analysisModel) setSize(w, h int) {
	a.width = w
	a.height = h
	a.buildChart()
}

func (a analysisModel) weekStart() time.Time {
	monday, _ := routine.WeekRange(a.state.Today())
	return monday.AddDate(0, 0, -7*a.offset)
}

func (a *analysisModel) reload() {
	start := a.weekStart()
	a.week = routine.SummarizeWeek(a.state.Log, start)

	totals := make(map[time.Time]int)
	for _, t := range routine.DailyTotals(a.state.Log) {
		totals[t.Date] = t.Minutes
	}
	a.days = make([]routine.DayTotal, 0, 7)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		a.days = append(a.days, routine.DayTotal{Date: d, Minutes: totals[d]})
	}

	a.heat = routine.Heatmap(a.state.Log, a.state.Today(), heatmapWeeks)
	a.buildChart()
}

func (a analysisModel) update(msg tea.Msg) (analysisModel, tea.Cmd) {
	switch msg := msg.(type) {
	case stateChangedMsg:
		a.reload()
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.PrevDay):
			a.offset++
		case key.Matches(msg, keys.NextDay):
			if a.offset == 0 {
				return a, nil
			}
			a.offset--
		case key.Matches(msg, keys.Today):
			a.offset = 0
		default:
			return a, nil
		}
		a.reload()
		return a, nil
	}
	return a, nil
}

func (a *analysisModel) buildChart() {
	chartWidth := a.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if a.height > 36 {
		chartHeight = 14
	}

	a.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, d := range a.days {
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if routine.DailyGrade(d.Hours()) == routine.GradeS {
			style = lipgloss.NewStyle().Foreground(colorSuccess)
		}
		bars = append(bars, barchart.BarData{
			Label: d.Date.Format("Mon 02"),
			Values: []barchart.BarValue{{
				Name:  "hours",
				Value: d.Hours(),
				Style: style,
			}},
		})
	}

	a.chart.PushAll(bars)
	a.chart.Draw()
}

func (a analysisModel) view() string {
	w := a.width - 4

	dateLabel := mutedStyle.Render(fmt.Sprintf("%s – %s",
		a.week.Start.Format("Jan 02"), a.week.End.Format("Jan 02, 2006")))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Weekly study hours"), "  ", dateLabel,
	)

	summary := fmt.Sprintf("  Total %s  grade %s", highlightStyle.Render(fmt.Sprintf("%.1fh", a.week.Hours)), renderGrade(a.week.Grade))
	if !a.week.Logged {
		summary = mutedStyle.Render("  No check-ins this week")
	}

	nav := mutedStyle.Render("  ←/→: week  t: this week")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", a.chart.View(), "", summary, "", a.renderDayTable(), "",
			titleStyle.Render("Attendance"), a.renderHeatmap(), "", nav,
		),
	)
}

func (a analysisModel) renderDayTable() string {
	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %10s %6s", "Date", "Study", "Grade")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", 30)))
	for _, d := range a.days {
		if d.Minutes == 0 {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %10s %6s", d.Date.Format("Mon 01/02"), "-", "")))
			continue
		}
		rows = append(rows, fmt.Sprintf("  %-12s %10s %6s",
			d.Date.Format("Mon 01/02"), formatMinutes(d.Minutes), renderGrade(routine.DailyGrade(d.Hours()))))
	}
	return strings.Join(rows, "\n")
}

// renderHeatmap draws one column per week and one row per weekday.
func (a analysisModel) renderHeatmap() string {
	labels := []string{"Mon", "   ", "Wed", "   ", "Fri", "   ", "Sun"}
	rows := make([]string, 7)
	for day := 0; day < 7; day++ {
		var b strings.Builder
		b.WriteString("  " + mutedStyle.Render(labels[day]) + " ")
		for _, col := range a.heat {
			cell := col[day]
			switch {
			case cell.Level == routine.HeatFuture:
				b.WriteString("  ")
			case cell.Level == routine.HeatNone:
				b.WriteString(heatStyles[0].Render("·") + " ")
			default:
				b.WriteString(heatStyles[min(cell.Level, len(heatStyles)-1)].Render("■") + " ")
			}
		}
		rows[day] = b.String()
	}

	legend := "  " + mutedStyle.Render("less ")
	for _, s := range heatStyles[1:] {
		legend += s.Render("■") + " "
	}
	legend += mutedStyle.Render("more")

	return strings.Join(append(rows, legend), "\n")
}
