package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/routine/internal/routine"
)

type settingsModel struct {
	state  *routine.State
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	startDate   *string
	autoPhase   *bool
	manualPhase *int
	targetExam  *string
}

func newSettingsModel(st *routine.State) settingsModel {
	sd, te := "", ""
	auto, phase := true, 1
	return settingsModel{
		state:       st,
		startDate:   &sd,
		autoPhase:   &auto,
		manualPhase: &phase,
		targetExam:  &te,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func validateDate(v string) error {
	if _, err := time.Parse(routine.DateLayout, strings.TrimSpace(v)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	cfg := s.state.Config
	*s.startDate = cfg.StartDate.Format(routine.DateLayout)
	*s.autoPhase = cfg.AutoPhase
	*s.manualPhase = cfg.ManualPhase
	*s.targetExam = cfg.TargetExam.Format(routine.DateLayout)

	phaseOptions := make([]huh.Option[int], 0, 4)
	for p := 1; p <= 4; p++ {
		phaseOptions = append(phaseOptions, huh.NewOption(routine.PhaseLabels[p], p))
	}
	autoPhase := s.autoPhase

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Start date").
				Description("Week 1 begins here").
				Value(s.startDate).Validate(validateDate),
			huh.NewConfirm().Title("Advance phase automatically by week").Value(s.autoPhase),
		).Title("Phase"),
		huh.NewGroup(
			huh.NewSelect[int]().Title("Manual phase").Options(phaseOptions...).Value(s.manualPhase),
		).WithHideFunc(func() bool { return *autoPhase }),
		huh.NewGroup(
			huh.NewInput().Title("Target exam date").Value(s.targetExam).Validate(validateDate),
		).Title("Exam"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		if err := s.saveConfig(); err != nil {
			return s, errorCmd(err)
		}
		return s, tea.Batch(
			func() tea.Msg { return stateChangedMsg{} },
			statusCmd("Settings saved"),
		)
	}

	return s, cmd
}

func (s settingsModel) saveConfig() error {
	start, err := time.Parse(routine.DateLayout, strings.TrimSpace(*s.startDate))
	if err != nil {
		return fmt.Errorf("start date: %w", err)
	}
	exam, err := time.Parse(routine.DateLayout, strings.TrimSpace(*s.targetExam))
	if err != nil {
		return fmt.Errorf("target exam: %w", err)
	}
	return s.state.SaveConfig(routine.Config{
		StartDate:   start,
		AutoPhase:   *s.autoPhase,
		ManualPhase: *s.manualPhase,
		TargetExam:  exam,
	})
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	cfg := s.state.Config
	today := s.state.Today()
	week := routine.WeekNumber(cfg.StartDate, today)

	phase := fmt.Sprintf("manual · %s", routine.PhaseLabels[cfg.ManualPhase])
	if cfg.AutoPhase {
		phase = fmt.Sprintf("automatic · %s", routine.PhaseLabels[routine.PhaseForWeek(week)])
	}

	rows := []string{titleStyle.Render("Settings"), ""}
	for _, kv := range [][2]string{
		{"Start date", cfg.StartDate.Format(routine.DateLayout)},
		{"Current week", fmt.Sprintf("week %d", week)},
		{"Phase", phase},
		{"Target exam", fmt.Sprintf("%s (%s)", cfg.TargetExam.Format(routine.DateLayout), dDay(today, cfg.TargetExam))},
	} {
		label := lipgloss.NewStyle().Width(24).Render(kv[0])
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(kv[1])))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("Press enter to edit settings"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// dDay renders the days left until target as D-n, D-day or D+n.
func dDay(today, target time.Time) string {
	days := int(routine.Day(target).Sub(routine.Day(today)).Hours() / 24)
	switch {
	case days > 0:
		return fmt.Sprintf("D-%d", days)
	case days == 0:
		return "D-day"
	}
	return fmt.Sprintf("D+%d", -days)
}
