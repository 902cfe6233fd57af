package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sadopc/routine/internal/routine"
)

// LogFilter narrows ListLog to an inclusive date range.
type LogFilter struct {
	From *time.Time
	To   *time.Time
}

// LoadLog reads every log row in stored order. Rows whose date cannot be
// read are skipped; other malformed cells are coerced to zero values.
func (s *Store) LoadLog() ([]routine.LogEntry, error) {
	rows, err := s.LoadTable(LogSchema)
	if err != nil {
		return nil, fmt.Errorf("list log: %w", err)
	}
	entries := make([]routine.LogEntry, 0, len(rows))
	for _, r := range rows {
		e, ok := entryFromRow(r)
		if !ok {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func entryFromRow(r Row) (routine.LogEntry, bool) {
	d, ok := ParseDate(r["date"])
	if !ok {
		return routine.LogEntry{}, false
	}
	return routine.LogEntry{
		Date:             d,
		Phase:            ParseInt(r["phase"], 0),
		DayType:          routine.DayType(strings.TrimSpace(r["day_type"])),
		Mode:             routine.Mode(strings.TrimSpace(r["mode"])),
		Block:            r["block"],
		Done:             ParseBool(r["done"], false),
		EstimatedMinutes: ParseInt(r["estimated_minutes"], 0),
		Energy:           ParseOptionalInt(r["energy"]),
		Focus:            ParseOptionalInt(r["focus"]),
		Note:             r["note"],
		Subject:          strings.TrimSpace(r["subject"]),
	}, true
}

// ListLog returns the log rows inside f's date range.
func (s *Store) ListLog(f LogFilter) ([]routine.LogEntry, error) {
	all, err := s.LoadLog()
	if err != nil {
		return nil, err
	}
	var entries []routine.LogEntry
	for _, e := range all {
		if f.From != nil && e.Date.Before(routine.Day(*f.From)) {
			continue
		}
		if f.To != nil && e.Date.After(routine.Day(*f.To)) {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// SaveLog rewrites the whole log table.
func (s *Store) SaveLog(entries []routine.LogEntry) error {
	rows := make([]Row, len(entries))
	for i, e := range entries {
		rows[i] = Row{
			"date":              formatDate(e.Date),
			"phase":             strconv.Itoa(e.Phase),
			"day_type":          string(e.DayType),
			"mode":              string(e.Mode),
			"block":             e.Block,
			"done":              formatBool(e.Done),
			"estimated_minutes": strconv.Itoa(e.EstimatedMinutes),
			"energy":            formatOptionalInt(e.Energy),
			"focus":             formatOptionalInt(e.Focus),
			"note":              e.Note,
			"subject":           e.Subject,
		}
	}
	if err := s.SaveTable(LogSchema, rows); err != nil {
		return fmt.Errorf("save log: %w", err)
	}
	return nil
}
