package routine

import (
	"fmt"
	"strings"
	"time"
)

// Completion is the submitted state of one checkable block.
type Completion struct {
	Done    bool
	Minutes int
}

// CheckIn is one day's submission.
type CheckIn struct {
	Date        time.Time
	Phase       int     `validate:"min=1,max=4"`
	DayType     DayType `validate:"oneof=weekday sat sun"`
	Mode        Mode    `validate:"oneof=normal low off"`
	Completions map[string]Completion
	Energy      *int `validate:"omitempty,min=1,max=5"`
	Focus       *int `validate:"omitempty,min=1,max=5"`
	Note        string
	Subject     string
}

func (c CheckIn) Validate() error {
	if c.Date.IsZero() {
		return fmt.Errorf("check-in date is required")
	}
	return validate.Struct(c)
}

// CompletionsFor marks the named blocks of the (phase, dayType, mode) schedule
// as done with their template minutes. Unknown names are ignored.
func CompletionsFor(phase int, dayType DayType, mode Mode, done []string) map[string]Completion {
	want := make(map[string]bool, len(done))
	for _, n := range done {
		want[n] = true
	}
	out := make(map[string]Completion)
	for _, b := range CheckableBlocks(phase, dayType, mode) {
		out[b.Name] = Completion{Done: want[b.Name], Minutes: b.Minutes}
	}
	return out
}

// Reconcile replaces every entry for the check-in date with freshly built rows:
// the single OFF entry on an OFF day, otherwise one entry per checkable block.
// Entries for other dates keep their order; the new rows are appended.
// The subject name is stored trimmed.
func Reconcile(log []LogEntry, in CheckIn) []LogEntry {
	date := Day(in.Date)
	subject := strings.TrimSpace(in.Subject)

	out := make([]LogEntry, 0, len(log))
	for _, e := range log {
		if !Day(e.Date).Equal(date) {
			out = append(out, e)
		}
	}

	base := LogEntry{
		Date:    date,
		Phase:   in.Phase,
		DayType: in.DayType,
		Mode:    in.Mode,
		Energy:  in.Energy,
		Focus:   in.Focus,
		Note:    in.Note,
	}

	if in.Mode == ModeOff {
		e := base
		e.Block = OffBlock
		e.Done = true
		return append(out, e)
	}

	for _, b := range CheckableBlocks(in.Phase, in.DayType, in.Mode) {
		c := in.Completions[b.Name]
		e := base
		e.Block = b.Name
		e.Done = c.Done
		if c.Done {
			e.EstimatedMinutes = max(c.Minutes, 0)
		}
		if b.Category == CategoryStudy {
			e.Subject = subject
		}
		out = append(out, e)
	}
	return out
}
