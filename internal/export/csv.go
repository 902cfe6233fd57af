package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sadopc/routine/internal/routine"
)

var csvHeader = []string{
	"Date", "Phase", "Day Type", "Mode", "Block", "Done",
	"Minutes", "Duration", "Energy", "Focus", "Note", "Subject",
}

func ToCSV(entries []routine.LogEntry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, e := range entries {
		row := []string{
			e.Date.Format(routine.DateLayout),
			strconv.Itoa(e.Phase),
			string(e.DayType),
			string(e.Mode),
			e.Block,
			strconv.FormatBool(e.Done),
			strconv.Itoa(e.EstimatedMinutes),
			formatDuration(e.EstimatedMinutes),
			optional(e.Energy),
			optional(e.Focus),
			e.Note,
			e.Subject,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// formatDuration renders minutes as H:MM.
func formatDuration(minutes int) string {
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

func optional(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
