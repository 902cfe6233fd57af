package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/routine/internal/routine"
)

type jsonExport struct {
	ExportedAt   string      `json:"exported_at"`
	Count        int         `json:"count"`
	TotalMinutes int         `json:"total_minutes"`
	Entries      []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	Date     string `json:"date"`
	Phase    int    `json:"phase"`
	DayType  string `json:"day_type"`
	Mode     string `json:"mode"`
	Block    string `json:"block"`
	Done     bool   `json:"done"`
	Minutes  int    `json:"estimated_minutes"`
	Duration string `json:"duration"`
	Energy   *int   `json:"energy,omitempty"`
	Focus    *int   `json:"focus,omitempty"`
	Note     string `json:"note,omitempty"`
	Subject  string `json:"subject,omitempty"`
}

func ToJSON(entries []routine.LogEntry, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(entries),
		Entries:    make([]jsonEntry, 0, len(entries)),
	}

	for _, e := range entries {
		export.TotalMinutes += e.EstimatedMinutes
		export.Entries = append(export.Entries, jsonEntry{
			Date:     e.Date.Format(routine.DateLayout),
			Phase:    e.Phase,
			DayType:  string(e.DayType),
			Mode:     string(e.Mode),
			Block:    e.Block,
			Done:     e.Done,
			Minutes:  e.EstimatedMinutes,
			Duration: formatDuration(e.EstimatedMinutes),
			Energy:   e.Energy,
			Focus:    e.Focus,
			Note:     e.Note,
			Subject:  e.Subject,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
