// Package printers renders routine data as colored plain text for the
// non-interactive commands.
package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/sadopc/routine/internal/routine"
)

type PrettyPrint struct {
	Out io.Writer
}

// New returns a printer writing to color.Output.
func New() *PrettyPrint {
	return &PrettyPrint{Out: color.Output}
}

var (
	bold      = color.New(color.Bold)
	title     = color.New(color.Bold, color.Underline)
	faint     = color.New(color.Faint)
	doneColor = color.New(color.FgGreen)
	warn      = color.New(color.FgYellow)
)

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.Out)
}

func (pp *PrettyPrint) Title(s string) {
	_, _ = title.Fprintln(pp.Out, s)
}

func (pp *PrettyPrint) Faint(format string, args ...any) {
	_, _ = faint.Fprintf(pp.Out, format+"\n", args...)
}

// Context prints the header line for a resolved day.
func (pp *PrettyPrint) Context(ctx routine.DayContext) {
	pp.Title(fmt.Sprintf("%s (%s)", ctx.Date.Format(routine.DateLayout), ctx.Date.Weekday()))
	_, _ = fmt.Fprintf(pp.Out, "Week %d · %s · %s · %s\n",
		ctx.Week, routine.PhaseLabels[ctx.Phase], ctx.DayType.Label(), ctx.Mode.Label())
	if ctx.FromLog {
		pp.Faint("using the context recorded for this date")
	}
	pp.NewLine()
}

// Schedule prints the day's blocks, marking the ones recorded as done.
func (pp *PrettyPrint) Schedule(blocks []routine.Block, entries []routine.LogEntry) {
	done := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Done {
			done[e.Block] = true
		}
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	tbl.Wrap = true
	tbl.AddRow(bold.Sprint("Time"), "", bold.Sprint("Block"), bold.Sprint("Min"), bold.Sprint("Note"))
	for _, b := range blocks {
		mark := ""
		if b.Checkable() {
			mark = "[ ]"
			if done[b.CleanName()] {
				mark = doneColor.Sprint("[x]")
			}
		}
		minutes := ""
		if b.Minutes > 0 {
			minutes = fmt.Sprint(b.Minutes)
		}
		name := b.Name
		if !b.Checkable() {
			name = faint.Sprint(name)
		}
		tbl.AddRow(b.Time, mark, name, minutes, faint.Sprint(b.Note))
	}
	_, _ = fmt.Fprintln(pp.Out, tbl)
	pp.NewLine()
}

// Stats prints the dashboard numbers for one day.
func (pp *PrettyPrint) Stats(st routine.Stats, motivation string) {
	if motivation != "" {
		_, _ = bold.Fprintln(pp.Out, motivation)
		pp.NewLine()
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Streak"), fmt.Sprintf("%d days", st.Streak))
	tbl.AddRow(bold.Sprint("Day"), fmt.Sprintf("%.1fh (%d min) · grade %s · %d/%d blocks · %d%%",
		float64(st.Day.Minutes)/60, st.Day.Minutes, st.Day.Grade, st.Day.Done, st.Day.Checkable, st.Day.Progress))
	tbl.AddRow(bold.Sprint("Possible"), fmt.Sprintf("%d min", st.Day.PossibleMinutes))
	tbl.AddRow(bold.Sprint("Week"), fmt.Sprintf("%s – %s · %.1fh · grade %s",
		st.Week.Start.Format("01/02"), st.Week.End.Format("01/02"), st.Week.Hours, st.Week.Grade))
	tbl.AddRow(bold.Sprint("7-day avg"), fmt.Sprintf("%.1fh", st.RecentAverage))
	_, _ = fmt.Fprintln(pp.Out, tbl)
	pp.NewLine()

	if len(st.Badges) > 0 {
		labels := make([]string, len(st.Badges))
		for i, b := range st.Badges {
			labels[i] = tierColor(b.Tier).Sprint(b.Label)
		}
		_, _ = fmt.Fprintln(pp.Out, strings.Join(labels, "  "))
		pp.NewLine()
	}
	pp.Faint(routine.DailyGradeHint)
	pp.Faint(routine.WeeklyGradeHint)
}

func tierColor(t routine.BadgeTier) *color.Color {
	switch t {
	case routine.TierGold:
		return color.New(color.FgYellow, color.Bold)
	case routine.TierSilver:
		return color.New(color.FgWhite, color.Bold)
	}
	return color.New(color.FgRed)
}

// Subjects prints lecture progress per subject.
func (pp *PrettyPrint) Subjects(subjects []routine.Subject) {
	if len(subjects) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprint(pp.Out, " none\n\n")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Subject"), bold.Sprint("Lectures"), bold.Sprint("Progress"), bold.Sprint("Active"))
	for _, s := range subjects {
		active := "yes"
		if !s.Active {
			active = faint.Sprint("no")
		}
		tbl.AddRow(s.Name, fmt.Sprintf("%d/%d", s.CompletedLectures, s.TotalLectures), Bar(s.Percent(), 20), active)
	}
	_, _ = fmt.Fprintln(pp.Out, tbl)
	pp.NewLine()
}

// Bar renders a percent as a fixed-width text bar.
func Bar(percent, width int) string {
	percent = min(max(percent, 0), 100)
	filled := percent * width / 100
	return doneColor.Sprint(strings.Repeat("█", filled)) +
		faint.Sprint(strings.Repeat("░", width-filled)) +
		fmt.Sprintf(" %3d%%", percent)
}

// Warn prints a highlighted notice.
func (pp *PrettyPrint) Warn(format string, args ...any) {
	_, _ = warn.Fprintf(pp.Out, format+"\n", args...)
}
