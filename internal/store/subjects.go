package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sadopc/routine/internal/routine"
)

// LoadSubjects reads the subjects table, seeding the default subject when it
// is empty. Malformed lecture counts read as 0; a malformed active flag
// reads as active.
func (s *Store) LoadSubjects() ([]routine.Subject, error) {
	rows, err := s.LoadTable(SubjectSchema)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	if len(rows) == 0 {
		subjects := routine.DefaultSubjects()
		if err := s.SaveSubjects(subjects); err != nil {
			return nil, fmt.Errorf("seed subjects: %w", err)
		}
		return subjects, nil
	}

	subjects := make([]routine.Subject, 0, len(rows))
	for _, r := range rows {
		subjects = append(subjects, routine.Subject{
			Name:              strings.TrimSpace(r["name"]),
			TotalLectures:     ParseInt(r["total_lectures"], 0),
			CompletedLectures: ParseInt(r["completed_lectures"], 0),
			Active:            ParseBool(r["active"], true),
		})
	}
	return subjects, nil
}

// SaveSubjects rewrites the whole subjects table.
func (s *Store) SaveSubjects(subjects []routine.Subject) error {
	rows := make([]Row, len(subjects))
	for i, sub := range subjects {
		rows[i] = Row{
			"name":               sub.Name,
			"total_lectures":     strconv.Itoa(sub.TotalLectures),
			"completed_lectures": strconv.Itoa(sub.CompletedLectures),
			"active":             formatBool(sub.Active),
		}
	}
	if err := s.SaveTable(SubjectSchema, rows); err != nil {
		return fmt.Errorf("save subjects: %w", err)
	}
	return nil
}
