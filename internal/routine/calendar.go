package routine

import "time"

// WeekNumber returns the 1-based routine week of target counted from start.
// Dates before start still report week 1.
func WeekNumber(start, target time.Time) int {
	days := daysBetween(Day(start), Day(target))
	week := floorDiv(days, 7) + 1
	if week < 1 {
		return 1
	}
	return week
}

// PhaseForWeek maps a routine week onto phases 1..4 with breakpoints at weeks 1, 3 and 6.
func PhaseForWeek(week int) int {
	switch {
	case week <= 1:
		return 1
	case week <= 3:
		return 2
	case week <= 6:
		return 3
	default:
		return 4
	}
}

func DayTypeOf(d time.Time) DayType {
	switch d.Weekday() {
	case time.Saturday:
		return Saturday
	case time.Sunday:
		return Sunday
	}
	return Weekday
}

// WeekRange returns the Monday and Sunday bounding the week that contains d.
func WeekRange(d time.Time) (time.Time, time.Time) {
	d = Day(d)
	offset := (int(d.Weekday()) + 6) % 7
	monday := d.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}

// DayContext is the effective phase/day type/mode for one calendar date.
type DayContext struct {
	Date    time.Time
	Week    int
	Phase   int
	DayType DayType
	Mode    Mode

	// Logged is set when the date already has entries; FromLog when the
	// recorded context was actually applied.
	Logged  bool
	FromLog bool
}

// LoggedContext returns the context recorded by the first log entry for date.
func LoggedContext(log []LogEntry, date time.Time) (DayContext, bool) {
	date = Day(date)
	for _, e := range log {
		if e.Date.Equal(date) {
			return DayContext{Date: date, Phase: e.Phase, DayType: e.DayType, Mode: e.Mode, Logged: true}, true
		}
	}
	return DayContext{}, false
}

// ResolveContext picks the effective context for date. A recorded context wins
// when preferLogged is set; otherwise the phase comes from the week number when
// auto phase is on, or from the manual phase. Day type and mode default to the
// recorded values when present, else to the calendar day type and normal mode.
func ResolveContext(cfg Config, log []LogEntry, date time.Time, preferLogged bool) DayContext {
	date = Day(date)
	week := WeekNumber(cfg.StartDate, date)

	saved, logged := LoggedContext(log, date)
	if logged && preferLogged {
		saved.Week = week
		saved.FromLog = true
		return saved
	}

	ctx := DayContext{
		Date:    date,
		Week:    week,
		DayType: DayTypeOf(date),
		Mode:    ModeNormal,
		Logged:  logged,
	}
	if cfg.AutoPhase {
		ctx.Phase = PhaseForWeek(week)
	} else {
		ctx.Phase = cfg.ManualPhase
	}
	if logged {
		ctx.DayType = saved.DayType
		ctx.Mode = saved.Mode
	}
	return ctx
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
