package store

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sadopc/routine/internal/routine"
)

// Cells are untyped text. The parsers here never fail: a value that cannot
// be read falls back to the caller's default.

// ParseBool accepts true, 1, yes, y, t and false, 0, no, n, f or empty,
// case-insensitively. Anything else yields def.
func ParseBool(v string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "y", "t":
		return true
	case "false", "0", "no", "n", "f", "":
		return false
	}
	return def
}

// ParseInt reads an integer, tolerating float text such as "45.0", which is
// truncated toward zero. Empty, malformed or out-of-range cells yield def.
func ParseInt(v string, def int) int {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || f >= math.MaxInt || f < math.MinInt {
		return def
	}
	return int(f)
}

// ParseOptionalInt is ParseInt for nullable cells: empty or malformed is nil.
func ParseOptionalInt(v string) *int {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	const sentinel = math.MinInt
	n := ParseInt(v, sentinel)
	if n == sentinel {
		return nil
	}
	return &n
}

var dateLayouts = []string{
	routine.DateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
}

// ParseDate reads a calendar date, accepting a few timestamp spellings.
func ParseDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return routine.Day(t), true
		}
	}
	return time.Time{}, false
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func formatOptionalInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func formatDate(t time.Time) string {
	return t.Format(routine.DateLayout)
}
