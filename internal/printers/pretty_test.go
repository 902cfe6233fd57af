package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/sadopc/routine/internal/routine"
)

func newTestPrinter(t *testing.T) (*PrettyPrint, *bytes.Buffer) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
	var buf bytes.Buffer
	return &PrettyPrint{Out: &buf}, &buf
}

func TestSchedule(t *testing.T) {
	pp, buf := newTestPrinter(t)
	blocks := routine.Generate(3, routine.Weekday, routine.ModeNormal)
	entries := []routine.LogEntry{{Block: "📚 인강 1강", Done: true}}
	pp.Schedule(blocks, entries)

	out := buf.String()
	for _, want := range []string{"Time", "📚 인강 1강", "[x]", "[ ]", "💼 회사"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "[x]") != 1 {
		t.Fatalf("expected exactly one done mark:\n%s", out)
	}
}

func TestContext(t *testing.T) {
	pp, buf := newTestPrinter(t)
	pp.Context(routine.DayContext{
		Date: time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), Week: 3, Phase: 2,
		DayType: routine.Saturday, Mode: routine.ModeLow, FromLog: true,
	})
	out := buf.String()
	for _, want := range []string{"2026-10-17", "Week 3", "Phase 2", "Saturday", "Low-stimulus", "recorded"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStats(t *testing.T) {
	pp, buf := newTestPrinter(t)
	st := routine.Stats{
		Streak: 8,
		Day:    routine.DaySummary{Minutes: 65, Grade: "D-", Done: 2, Checkable: 10, Progress: 20},
		Week:   routine.WeekSummary{Hours: 18, Grade: "A"},
		Badges: []routine.Badge{{Label: "🥉 7-day streak", Tier: routine.TierBronze}},
	}
	pp.Stats(st, "keep going")
	out := buf.String()
	for _, want := range []string{"keep going", "8 days", "65 min", "grade D-", "18.0h", "grade A", "🥉 7-day streak", "Daily grade"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSubjects(t *testing.T) {
	pp, buf := newTestPrinter(t)
	pp.Subjects([]routine.Subject{
		{Name: "민법", TotalLectures: 220, CompletedLectures: 110, Active: true},
		{Name: "형법", TotalLectures: 100, CompletedLectures: 0, Active: false},
	})
	out := buf.String()
	for _, want := range []string{"민법", "110/220", " 50%", "형법", "no"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	pp.Subjects(nil)
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("empty output = %q", buf.String())
	}
}

func TestBar(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	tests := []struct {
		percent int
		filled  int
		label   string
	}{
		{0, 0, "  0%"},
		{50, 5, " 50%"},
		{100, 10, "100%"},
		{150, 10, "100%"},
		{-5, 0, "  0%"},
	}
	for _, tt := range tests {
		got := Bar(tt.percent, 10)
		if strings.Count(got, "█") != tt.filled || !strings.HasSuffix(got, tt.label) {
			t.Errorf("Bar(%d) = %q", tt.percent, got)
		}
	}
}
