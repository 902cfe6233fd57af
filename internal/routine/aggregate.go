package routine

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Streak counts consecutive days, ending today and scanning backward, that
// have at least one done non-OFF entry. A day without entries breaks it, as
// does a logged day with nothing done.
func Streak(log []LogEntry, today time.Time) int {
	attended := make(map[time.Time]bool)
	for _, e := range log {
		if e.Done && e.Block != OffBlock {
			attended[Day(e.Date)] = true
		}
	}

	streak := 0
	for d := Day(today); attended[d]; d = d.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// SubjectProgress sums lecture credits of done entries per subject. Entries
// without a subject are skipped.
func SubjectProgress(log []LogEntry) map[string]int {
	progress := make(map[string]int)
	for _, e := range log {
		if e.Subject == "" {
			continue
		}
		if _, ok := progress[e.Subject]; !ok {
			progress[e.Subject] = 0
		}
		if e.Done {
			progress[e.Subject] += Credit(e.Block)
		}
	}
	return progress
}

// Grades use the product's own ladder: D- < A < B < C < S.
const (
	GradeDMinus = "D-"
	GradeA      = "A"
	GradeB      = "B"
	GradeC      = "C"
	GradeS      = "S"
)

func DailyGrade(hours float64) string {
	switch {
	case hours < 2.5:
		return GradeDMinus
	case hours < 3.1:
		return GradeA
	case hours < 3.9:
		return GradeB
	case hours < 4.6:
		return GradeC
	default:
		return GradeS
	}
}

func WeeklyGrade(hours float64) string {
	switch {
	case hours < 18:
		return GradeDMinus
	case hours < 22:
		return GradeA
	case hours < 27:
		return GradeB
	case hours < 32:
		return GradeC
	default:
		return GradeS
	}
}

const (
	DailyGradeHint  = "Daily grade: S ≥ 4.6h, C ≥ 3.9h, B ≥ 3.1h, A ≥ 2.5h, below that D-"
	WeeklyGradeHint = "Weekly grade: S ≥ 32h, C ≥ 27h, B ≥ 22h, A ≥ 18h, below that D-"
)

type BadgeTier string

const (
	TierGold   BadgeTier = "gold"
	TierSilver BadgeTier = "silver"
	TierBronze BadgeTier = "bronze"
)

type Badge struct {
	Label string
	Tier  BadgeTier
}

// Badges derives the streak badge (highest tier only) and per-subject
// completion badges.
func Badges(subjects []Subject, streak int) []Badge {
	var badges []Badge
	switch {
	case streak >= 30:
		badges = append(badges, Badge{"🏆 30-day streak", TierGold})
	case streak >= 14:
		badges = append(badges, Badge{"🥈 14-day streak", TierSilver})
	case streak >= 7:
		badges = append(badges, Badge{"🥉 7-day streak", TierBronze})
	}
	for _, s := range subjects {
		switch {
		case s.CompletedLectures >= s.TotalLectures:
			badges = append(badges, Badge{fmt.Sprintf("📚 %s completed!", s.Name), TierGold})
		case float64(s.CompletedLectures) >= float64(s.TotalLectures)*0.5:
			badges = append(badges, Badge{fmt.Sprintf("📖 %s 50%%", s.Name), TierSilver})
		}
	}
	return badges
}

// DaySummary is the dashboard view of one date.
type DaySummary struct {
	Date            time.Time
	Minutes         int
	Done            int
	Checkable       int
	PossibleMinutes int
	Progress        int
	Grade           string
}

// SummarizeDay totals the date's entries against the checkable blocks of ctx.
func SummarizeDay(log []LogEntry, ctx DayContext) DaySummary {
	blocks := CheckableBlocks(ctx.Phase, ctx.DayType, ctx.Mode)
	s := DaySummary{
		Date:            ctx.Date,
		Checkable:       len(blocks),
		PossibleMinutes: PossibleMinutes(blocks),
	}
	for _, e := range EntriesOn(log, ctx.Date) {
		s.Minutes += e.EstimatedMinutes
		if e.Done {
			s.Done++
		}
	}
	s.Progress = s.Done * 100 / max(s.Checkable, 1)
	s.Grade = DailyGrade(float64(s.Minutes) / 60)
	return s
}

// EntriesOn returns the entries recorded for date, in log order.
func EntriesOn(log []LogEntry, date time.Time) []LogEntry {
	date = Day(date)
	var out []LogEntry
	for _, e := range log {
		if e.Date.Equal(date) {
			out = append(out, e)
		}
	}
	return out
}

type WeekSummary struct {
	Start   time.Time
	End     time.Time
	Minutes int
	Hours   float64 // rounded to one decimal, as graded
	Grade   string
	Logged  bool
}

// SummarizeWeek totals the Monday–Sunday week containing ref.
func SummarizeWeek(log []LogEntry, ref time.Time) WeekSummary {
	start, end := WeekRange(ref)
	w := WeekSummary{Start: start, End: end}
	for _, e := range log {
		d := Day(e.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		w.Logged = true
		w.Minutes += e.EstimatedMinutes
	}
	w.Hours = math.Round(float64(w.Minutes)/60*10) / 10
	w.Grade = WeeklyGrade(w.Hours)
	return w
}

type DayTotal struct {
	Date    time.Time
	Minutes int
}

func (d DayTotal) Hours() float64 { return float64(d.Minutes) / 60 }

// DailyTotals returns per-date minute totals in ascending date order.
func DailyTotals(log []LogEntry) []DayTotal {
	byDate := make(map[time.Time]int)
	for _, e := range log {
		byDate[Day(e.Date)] += e.EstimatedMinutes
	}
	out := make([]DayTotal, 0, len(byDate))
	for d, m := range byDate {
		out = append(out, DayTotal{Date: d, Minutes: m})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// RecentAverage is the mean daily hours over logged days in the window of
// the given length ending today.
func RecentAverage(log []LogEntry, today time.Time, days int) float64 {
	from := Day(today).AddDate(0, 0, -(days - 1))
	to := Day(today)
	var sum float64
	n := 0
	for _, t := range DailyTotals(log) {
		if t.Date.Before(from) || t.Date.After(to) {
			continue
		}
		sum += t.Hours()
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Heat levels for the attendance heatmap.
const (
	HeatFuture = -1
	HeatNone   = 0
)

// HeatLevel buckets a logged day's minutes into levels 1..4.
func HeatLevel(minutes int) int {
	switch {
	case minutes >= 240:
		return 4
	case minutes >= 120:
		return 3
	case minutes >= 30:
		return 2
	default:
		return 1
	}
}

type HeatCell struct {
	Date  time.Time
	Level int
}

// Heatmap returns weeks+1 Monday-aligned columns of seven cells, the first
// starting `weeks` weeks before the Monday of today's week.
func Heatmap(log []LogEntry, today time.Time, weeks int) [][]HeatCell {
	today = Day(today)
	monday, _ := WeekRange(today)
	start := monday.AddDate(0, 0, -7*weeks)

	minutes := make(map[time.Time]int)
	logged := make(map[time.Time]bool)
	for _, e := range log {
		d := Day(e.Date)
		logged[d] = true
		minutes[d] += e.EstimatedMinutes
	}

	cols := make([][]HeatCell, 0, weeks+1)
	for w := 0; w <= weeks; w++ {
		col := make([]HeatCell, 7)
		for i := range col {
			d := start.AddDate(0, 0, 7*w+i)
			level := HeatNone
			switch {
			case d.After(today):
				level = HeatFuture
			case logged[d]:
				level = HeatLevel(minutes[d])
			}
			col[i] = HeatCell{Date: d, Level: level}
		}
		cols = append(cols, col)
	}
	return cols
}

// Stats bundles everything derived from the log for one selected day.
type Stats struct {
	Context       DayContext
	Streak        int
	Day           DaySummary
	Week          WeekSummary
	RecentAverage float64
	Progress      map[string]int
	Badges        []Badge
}

func Aggregate(log []LogEntry, subjects []Subject, ctx DayContext, today time.Time) Stats {
	streak := Streak(log, today)
	return Stats{
		Context:       ctx,
		Streak:        streak,
		Day:           SummarizeDay(log, ctx),
		Week:          SummarizeWeek(log, ctx.Date),
		RecentAverage: RecentAverage(log, today, 7),
		Progress:      SubjectProgress(log),
		Badges:        Badges(subjects, streak),
	}
}
