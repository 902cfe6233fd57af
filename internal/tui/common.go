package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/routine/internal/routine"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewRoutine
	viewSubjects
	viewAnalysis
	viewSettings
)

var viewNames = []string{"Dashboard", "Routine", "Subjects", "Analysis", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// stateChangedMsg tells every view to reload after a mutation.
type stateChangedMsg struct{}

// --- Selection ---

// selection is the day the dashboard and routine views work on. Views share
// it through a pointer so it survives value copies.
type selection struct {
	date         time.Time
	preferLogged bool

	// override is the context picked in the context form for date, if any.
	override *routine.DayContext
}

func newSelection(today time.Time) *selection {
	return &selection{date: routine.Day(today), preferLogged: true}
}

func (s *selection) setDate(d time.Time) {
	s.date = routine.Day(d)
	s.override = nil
	s.preferLogged = true
}

func (s *selection) shift(days int) {
	s.setDate(s.date.AddDate(0, 0, days))
}

// context resolves the effective context for the selected date.
func (s *selection) context(st *routine.State) routine.DayContext {
	ctx := st.Context(s.date, s.preferLogged)
	if s.override != nil && s.override.Date.Equal(s.date) {
		ctx.Phase = s.override.Phase
		ctx.DayType = s.override.DayType
		ctx.Mode = s.override.Mode
		ctx.FromLog = false
	}
	return ctx
}

// --- Helpers ---

func formatMinutes(minutes int) string {
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

func formatHours(minutes int) string {
	return fmt.Sprintf("%.1fh", float64(minutes)/60)
}

func formatDate(d time.Time) string {
	return d.Format("2006-01-02 (Mon)")
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true} }
}
