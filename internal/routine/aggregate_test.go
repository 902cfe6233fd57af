package routine

import (
	"math"
	"testing"
	"time"
)

func entry(d string, block string, done bool, minutes int) LogEntry {
	return LogEntry{
		Date:             date(d),
		Phase:            3,
		DayType:          DayTypeOf(date(d)),
		Mode:             ModeNormal,
		Block:            block,
		Done:             done,
		EstimatedMinutes: minutes,
	}
}

// ============================================================
// Streak
// ============================================================

func TestStreakStopsAtGap(t *testing.T) {
	today := date("2026-10-17")
	log := []LogEntry{
		entry("2026-10-17", "📚 인강 1강", true, 45),
		entry("2026-10-16", "📚 인강 1강", true, 45),
		entry("2026-10-15", "🏋️ 운동 30분", true, 0),
		// 2026-10-14 missing
		entry("2026-10-13", "📚 인강 1강", true, 45),
		entry("2026-10-12", "📚 인강 1강", true, 45),
	}
	if got := Streak(log, today); got != 3 {
		t.Fatalf("Streak = %d, want 3", got)
	}
}

func TestStreakZeroWhenTodayNotDone(t *testing.T) {
	today := date("2026-10-17")
	log := []LogEntry{
		entry("2026-10-17", "📚 인강 1강", false, 0),
		entry("2026-10-16", "📚 인강 1강", true, 45),
	}
	if got := Streak(log, today); got != 0 {
		t.Fatalf("Streak = %d, want 0", got)
	}
	if got := Streak(nil, today); got != 0 {
		t.Fatalf("Streak(empty) = %d, want 0", got)
	}
}

func TestStreakIgnoresOffDays(t *testing.T) {
	today := date("2026-10-17")
	log := []LogEntry{
		entry("2026-10-17", "📚 인강 1강", true, 45),
		entry("2026-10-16", OffBlock, true, 0),
		entry("2026-10-15", "📚 인강 1강", true, 45),
	}
	if got := Streak(log, today); got != 1 {
		t.Fatalf("Streak = %d, want 1", got)
	}
}

func TestStreakIgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2026, 10, 17, 22, 30, 0, 0, time.UTC)
	log := []LogEntry{entry("2026-10-17", "📚 인강 1강", true, 45)}
	if got := Streak(log, today); got != 1 {
		t.Fatalf("Streak = %d, want 1", got)
	}
}

// ============================================================
// Grades
// ============================================================

func TestDailyGrade(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{0, GradeDMinus},
		{2.4, GradeDMinus},
		{2.5, GradeA},
		{3.0, GradeA},
		{3.1, GradeB},
		{3.9, GradeC},
		{4.59, GradeC},
		{4.6, GradeS},
		{5.0, GradeS},
	}
	for _, tt := range tests {
		if got := DailyGrade(tt.hours); got != tt.want {
			t.Errorf("DailyGrade(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestWeeklyGrade(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, GradeDMinus},
		{1079, GradeDMinus},
		{1080, GradeA},
		{1320, GradeB},
		{1620, GradeC},
		{1920, GradeS},
	}
	for _, tt := range tests {
		if got := WeeklyGrade(float64(tt.minutes) / 60); got != tt.want {
			t.Errorf("WeeklyGrade(%d min) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

// ============================================================
// Badges
// ============================================================

func TestBadgesStreakTiers(t *testing.T) {
	tests := []struct {
		streak int
		want   BadgeTier
	}{
		{7, TierBronze},
		{13, TierBronze},
		{14, TierSilver},
		{29, TierSilver},
		{30, TierGold},
		{100, TierGold},
	}
	for _, tt := range tests {
		badges := Badges(nil, tt.streak)
		if len(badges) != 1 {
			t.Fatalf("streak %d: %d badges, want exactly 1", tt.streak, len(badges))
		}
		if badges[0].Tier != tt.want {
			t.Errorf("streak %d: tier %q, want %q", tt.streak, badges[0].Tier, tt.want)
		}
	}
	if got := Badges(nil, 6); len(got) != 0 {
		t.Fatalf("streak 6: %d badges, want 0", len(got))
	}
}

func TestBadgesSubjects(t *testing.T) {
	subjects := []Subject{
		{Name: "민법", TotalLectures: 220, CompletedLectures: 220},
		{Name: "형법", TotalLectures: 100, CompletedLectures: 50},
		{Name: "헌법", TotalLectures: 100, CompletedLectures: 49},
		{Name: "행정법", TotalLectures: 101, CompletedLectures: 50},
	}
	badges := Badges(subjects, 0)
	if len(badges) != 2 {
		t.Fatalf("got %d badges, want 2: %+v", len(badges), badges)
	}
	if badges[0].Tier != TierGold || badges[0].Label != "📚 민법 completed!" {
		t.Errorf("badge 0 = %+v", badges[0])
	}
	if badges[1].Tier != TierSilver || badges[1].Label != "📖 형법 50%" {
		t.Errorf("badge 1 = %+v", badges[1])
	}
}

// ============================================================
// Subject progress
// ============================================================

func TestSubjectProgress(t *testing.T) {
	log := []LogEntry{
		{Date: date("2026-10-17"), Block: "📚 오전 인강 2강", Done: true, Subject: "민법"},
		{Date: date("2026-10-17"), Block: "📚 인강 1강", Done: true, Subject: "민법"},
		{Date: date("2026-10-17"), Block: "📚 인강 2강", Done: false, Subject: "민법"},
		{Date: date("2026-10-17"), Block: "✏️ 1차 문풀", Done: true, Subject: "형법"},
		{Date: date("2026-10-17"), Block: "📚 인강 3강", Done: true},
	}
	got := SubjectProgress(log)
	if got["민법"] != 3 {
		t.Errorf("민법 = %d, want 3", got["민법"])
	}
	if v, ok := got["형법"]; !ok || v != 0 {
		t.Errorf("형법 = %d (present %v), want 0 and present", v, ok)
	}
	if len(got) != 2 {
		t.Errorf("got %d subjects, want 2", len(got))
	}
}

// ============================================================
// Day / week summaries
// ============================================================

func TestSummarizeDay(t *testing.T) {
	ctx := DayContext{Date: date("2026-10-16"), Phase: 3, DayType: Weekday, Mode: ModeNormal}
	log := []LogEntry{
		entry("2026-10-16", "📚 인강 1강", true, 45),
		entry("2026-10-16", "✏️ 1차 문풀", true, 20),
		entry("2026-10-16", "🏋️ 운동 30분", false, 0),
		entry("2026-10-15", "📚 인강 1강", true, 45),
	}
	s := SummarizeDay(log, ctx)
	if s.Minutes != 65 || s.Done != 2 {
		t.Fatalf("minutes/done = %d/%d, want 65/2", s.Minutes, s.Done)
	}
	if s.Checkable != 10 || s.PossibleMinutes != 190 {
		t.Fatalf("checkable/possible = %d/%d, want 10/190", s.Checkable, s.PossibleMinutes)
	}
	if s.Progress != 20 {
		t.Fatalf("progress = %d, want 20", s.Progress)
	}
	if s.Grade != GradeDMinus {
		t.Fatalf("grade = %q, want D-", s.Grade)
	}
}

func TestSummarizeDayOff(t *testing.T) {
	ctx := DayContext{Date: date("2026-10-16"), Phase: 3, DayType: Weekday, Mode: ModeOff}
	s := SummarizeDay(nil, ctx)
	if s.Checkable != 0 || s.Progress != 0 {
		t.Fatalf("OFF summary = %+v", s)
	}
}

func TestSummarizeWeek(t *testing.T) {
	var log []LogEntry
	// 6 days x 180 minutes inside the week of 2026-10-12.
	for d := 12; d <= 17; d++ {
		day := time.Date(2026, 10, d, 0, 0, 0, 0, time.UTC).Format(DateLayout)
		log = append(log, entry(day, "📚 인강 1강", true, 180))
	}
	log = append(log, entry("2026-10-11", "📚 인강 1강", true, 600))
	log = append(log, entry("2026-10-19", "📚 인강 1강", true, 600))

	w := SummarizeWeek(log, date("2026-10-15"))
	if w.Minutes != 1080 || w.Hours != 18 || w.Grade != GradeA {
		t.Fatalf("week = %+v, want 1080 min / 18h / A", w)
	}
	if !w.Start.Equal(date("2026-10-12")) || !w.End.Equal(date("2026-10-18")) {
		t.Fatalf("range = %s..%s", w.Start.Format(DateLayout), w.End.Format(DateLayout))
	}
	if !w.Logged {
		t.Fatal("Logged should be true")
	}

	empty := SummarizeWeek(nil, date("2026-10-15"))
	if empty.Logged || empty.Grade != GradeDMinus {
		t.Fatalf("empty week = %+v", empty)
	}
}

func TestSummarizeWeekRoundsBeforeGrading(t *testing.T) {
	// 1078 minutes is 17.97h, shown and graded as 18.0h.
	log := []LogEntry{entry("2026-10-12", "📚 인강 1강", true, 1078)}
	w := SummarizeWeek(log, date("2026-10-12"))
	if w.Hours != 18 || w.Grade != GradeA {
		t.Fatalf("week = %+v, want 18h / A", w)
	}
}

func TestDailyTotalsSorted(t *testing.T) {
	log := []LogEntry{
		entry("2026-10-17", "a", true, 30),
		entry("2026-10-15", "a", true, 20),
		entry("2026-10-17", "b", true, 15),
	}
	totals := DailyTotals(log)
	if len(totals) != 2 {
		t.Fatalf("got %d totals, want 2", len(totals))
	}
	if !totals[0].Date.Equal(date("2026-10-15")) || totals[1].Minutes != 45 {
		t.Fatalf("totals = %+v", totals)
	}
}

func TestRecentAverage(t *testing.T) {
	today := date("2026-10-17")
	log := []LogEntry{
		entry("2026-10-17", "a", true, 120),
		entry("2026-10-15", "a", true, 60),
		entry("2026-10-01", "a", true, 600),
	}
	got := RecentAverage(log, today, 7)
	if math.Abs(got-1.5) > 1e-9 {
		t.Fatalf("RecentAverage = %v, want 1.5", got)
	}
	if RecentAverage(nil, today, 7) != 0 {
		t.Fatal("empty log should average 0")
	}
}

// ============================================================
// Heatmap
// ============================================================

func TestHeatmap(t *testing.T) {
	today := date("2026-10-14") // Wednesday
	log := []LogEntry{
		entry("2026-10-14", "a", true, 250),
		entry("2026-10-13", "a", false, 0),
		entry("2026-10-12", "a", true, 30),
		entry("2026-10-06", "a", true, 120),
	}
	cols := Heatmap(log, today, 12)
	if len(cols) != 13 {
		t.Fatalf("got %d columns, want 13", len(cols))
	}
	if !cols[0][0].Date.Equal(date("2026-07-20")) {
		t.Fatalf("first cell = %s, want 2026-07-20", cols[0][0].Date.Format(DateLayout))
	}

	last := cols[12]
	want := []int{2, 1, 4, HeatFuture, HeatFuture, HeatFuture, HeatFuture}
	for i, c := range last {
		if c.Level != want[i] {
			t.Errorf("%s level = %d, want %d", c.Date.Format(DateLayout), c.Level, want[i])
		}
	}
	if cols[11][1].Level != 3 {
		t.Errorf("2026-10-06 level = %d, want 3", cols[11][1].Level)
	}
	if cols[11][0].Level != HeatNone {
		t.Errorf("2026-10-05 level = %d, want none", cols[11][0].Level)
	}
}

func TestHeatLevel(t *testing.T) {
	tests := []struct{ minutes, want int }{
		{0, 1}, {29, 1}, {30, 2}, {119, 2}, {120, 3}, {239, 3}, {240, 4},
	}
	for _, tt := range tests {
		if got := HeatLevel(tt.minutes); got != tt.want {
			t.Errorf("HeatLevel(%d) = %d, want %d", tt.minutes, got, tt.want)
		}
	}
}

// ============================================================
// Aggregate
// ============================================================

func TestAggregate(t *testing.T) {
	today := date("2026-10-17")
	ctx := DayContext{Date: today, Phase: 4, DayType: Saturday, Mode: ModeNormal}
	log := []LogEntry{
		{Date: today, Block: "📚 오전 인강 2강", Done: true, EstimatedMinutes: 90, Subject: "민법"},
		{Date: today.AddDate(0, 0, -1), Block: "📚 인강 1강", Done: true, EstimatedMinutes: 45, Subject: "민법"},
	}
	subjects := []Subject{{Name: "민법", TotalLectures: 6, CompletedLectures: 3}}

	st := Aggregate(log, subjects, ctx, today)
	if st.Streak != 2 {
		t.Errorf("streak = %d, want 2", st.Streak)
	}
	if st.Day.Minutes != 90 {
		t.Errorf("day minutes = %d, want 90", st.Day.Minutes)
	}
	if st.Week.Minutes != 135 {
		t.Errorf("week minutes = %d, want 135", st.Week.Minutes)
	}
	if st.Progress["민법"] != 3 {
		t.Errorf("progress = %d, want 3", st.Progress["민법"])
	}
	if len(st.Badges) != 1 || st.Badges[0].Tier != TierSilver {
		t.Errorf("badges = %+v", st.Badges)
	}
}
