package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/routine/internal/routine"
)

func intPtr(v int) *int { return &v }

func sampleData() []routine.LogEntry {
	d := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	return []routine.LogEntry{
		{
			Date: d, Phase: 3, DayType: routine.Weekday, Mode: routine.ModeNormal,
			Block: "📚 인강 1강", Done: true, EstimatedMinutes: 45,
			Energy: intPtr(4), Focus: intPtr(3), Note: "good", Subject: "민법",
		},
		{
			Date: d, Phase: 3, DayType: routine.Weekday, Mode: routine.ModeNormal,
			Block: "✏️ 1차 문풀", Done: true, EstimatedMinutes: 20, Subject: "민법",
		},
		{
			Date: d, Phase: 3, DayType: routine.Weekday, Mode: routine.ModeNormal,
			Block: "🏋️ 운동 30분",
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	return records
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(sampleData(), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	records := readCSV(t, path)
	if len(records) != 4 {
		t.Fatalf("expected 4 rows (1 header + 3 data), got %d", len(records))
	}

	for i, h := range csvHeader {
		if records[0][i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}

	row := records[1]
	want := []string{"2026-10-16", "3", "weekday", "normal", "📚 인강 1강", "true", "45", "0:45", "4", "3", "good", "민법"}
	for i := range want {
		if row[i] != want[i] {
			t.Fatalf("row[%d] = %q, want %q", i, row[i], want[i])
		}
	}

	// Undone block without energy/focus
	last := records[3]
	if last[5] != "false" || last[8] != "" || last[9] != "" || last[11] != "" {
		t.Fatalf("unexpected last row: %v", last)
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := ToCSV(nil, path); err != nil {
		t.Fatal(err)
	}
	if records := readCSV(t, path); len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(nil, "/nonexistent/dir/file.csv")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	entries := []routine.LogEntry{{
		Date:  time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
		Block: "📚 인강 1강",
		Note:  `notes with "quotes" and, commas`,
	}}
	path := filepath.Join(t.TempDir(), "special.csv")

	if err := ToCSV(entries, path); err != nil {
		t.Fatal(err)
	}
	records := readCSV(t, path)
	if records[1][10] != `notes with "quotes" and, commas` {
		t.Fatalf("notes mangled: %q", records[1][10])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(sampleData(), path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.Count != 3 || len(result.Entries) != 3 {
		t.Fatalf("count = %d, entries = %d, want 3", result.Count, len(result.Entries))
	}
	if result.TotalMinutes != 65 {
		t.Fatalf("total minutes = %d, want 65", result.TotalMinutes)
	}
	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}

	e := result.Entries[0]
	if e.Date != "2026-10-16" || e.Block != "📚 인강 1강" || !e.Done || e.Minutes != 45 {
		t.Fatalf("entry 0 = %+v", e)
	}
	if e.Duration != "0:45" || e.Energy == nil || *e.Energy != 4 || e.Subject != "민법" {
		t.Fatalf("entry 0 = %+v", e)
	}
	if result.Entries[2].Energy != nil {
		t.Fatal("missing energy should be omitted")
	}
	if strings.Count(string(data), `"energy"`) != 1 {
		t.Fatal("energy key should only appear for the entry that has it")
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	if err := ToJSON(nil, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	if result.Count != 0 {
		t.Fatalf("count = %d, want 0", result.Count)
	}
	if !strings.Contains(string(data), `"entries": []`) {
		t.Fatal("entries should be an empty array for empty export")
	}
}

func TestToJSONBadPath(t *testing.T) {
	err := ToJSON(nil, "/nonexistent/dir/file.json")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	ToJSON(nil, path)

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "\n") {
		t.Fatal("JSON should be pretty-printed with newlines")
	}
	if !strings.Contains(string(data), "  ") {
		t.Fatal("JSON should be indented with spaces")
	}
}

// ============================================================
// formatDuration (internal helper)
// ============================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{45, "0:45"},
		{60, "1:00"},
		{65, "1:05"},
		{570, "9:30"},
		{1920, "32:00"},
	}

	for _, tt := range tests {
		got := formatDuration(tt.minutes)
		if got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}
