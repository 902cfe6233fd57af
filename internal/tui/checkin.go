package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/routine/internal/routine"
)

// checkInValues hold the form fields; the model keeps a pointer so they
// survive value copies.
type checkInValues struct {
	done    []string
	subject string
	energy  int
	focus   int
	note    string
}

type contextValues struct {
	useRecorded bool
	phase       int
	dayType     routine.DayType
	mode        routine.Mode
}

type checkInModel struct {
	state  *routine.State
	sel    *selection
	width  int
	height int

	ctx     routine.DayContext
	blocks  []routine.Block
	entries []routine.LogEntry

	formActive bool
	form       *huh.Form
	formType   string // "checkin", "context"

	values  *checkInValues
	context *contextValues
}

func newCheckInModel(st *routine.State, sel *selection) checkInModel {
	c := checkInModel{
		state:   st,
		sel:     sel,
		values:  &checkInValues{},
		context: &contextValues{},
	}
	c.reload()
	return c
}

func (c *checkInModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

func (c *checkInModel) reload() {
	c.ctx = c.sel.context(c.state)
	c.blocks = routine.Generate(c.ctx.Phase, c.ctx.DayType, c.ctx.Mode)
	c.entries = c.state.Entries(c.sel.date)
}

func (c checkInModel) update(msg tea.Msg) (checkInModel, tea.Cmd) {
	if c.formActive && c.form != nil {
		return c.updateForm(msg)
	}

	switch msg := msg.(type) {
	case stateChangedMsg:
		c.reload()
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.PrevDay):
			c.sel.shift(-1)
		case key.Matches(msg, keys.NextDay):
			c.sel.shift(1)
		case key.Matches(msg, keys.Today):
			c.sel.setDate(c.state.Today())
		case key.Matches(msg, keys.CheckIn), key.Matches(msg, keys.Enter):
			return c.showCheckInForm()
		case key.Matches(msg, keys.Context):
			return c.showContextForm()
		default:
			return c, nil
		}
		c.reload()
		return c, nil
	}
	return c, nil
}

// doneBlocks is the set of blocks already recorded as done for the date.
func (c checkInModel) doneBlocks() map[string]bool {
	done := make(map[string]bool, len(c.entries))
	for _, e := range c.entries {
		if e.Done {
			done[e.Block] = true
		}
	}
	return done
}

// recordedSubject is the subject stored with the date's entries, if any.
func (c checkInModel) recordedSubject() string {
	for _, e := range c.entries {
		if e.Subject != "" {
			return e.Subject
		}
	}
	return ""
}

func (c checkInModel) showCheckInForm() (checkInModel, tea.Cmd) {
	v := c.values
	*v = checkInValues{}
	if len(c.entries) > 0 {
		first := c.entries[0]
		if first.Energy != nil {
			v.energy = *first.Energy
		}
		if first.Focus != nil {
			v.focus = *first.Focus
		}
		v.note = first.Note
	}

	c.formType = "checkin"

	if c.ctx.Mode == routine.ModeOff {
		c.form = huh.NewForm(
			huh.NewGroup(
				huh.NewNote().Title("OFF day").Description("Submitting records a full rest day."),
				huh.NewText().Title("Note").Value(&v.note),
			),
		).WithShowHelp(true).WithShowErrors(true)
		c.formActive = true
		return c, c.form.Init()
	}

	done := c.doneBlocks()
	var blockOptions []huh.Option[string]
	for _, b := range routine.CheckableBlocks(c.ctx.Phase, c.ctx.DayType, c.ctx.Mode) {
		label := b.Name
		if b.Minutes > 0 {
			label = fmt.Sprintf("%s (%d min)", b.Name, b.Minutes)
		}
		blockOptions = append(blockOptions, huh.NewOption(label, b.Name).Selected(done[b.Name]))
		if done[b.Name] {
			v.done = append(v.done, b.Name)
		}
	}

	v.subject = c.recordedSubject()
	var subjectOptions []huh.Option[string]
	for _, s := range c.state.ActiveSubjects() {
		subjectOptions = append(subjectOptions, huh.NewOption(s.Name, s.Name))
		if v.subject == "" {
			v.subject = s.Name
		}
	}

	fields := []huh.Field{
		huh.NewMultiSelect[string]().Title("Completed blocks").Options(blockOptions...).Value(&v.done),
	}
	if len(subjectOptions) > 0 {
		fields = append(fields,
			huh.NewSelect[string]().Title("Subject").Options(subjectOptions...).Value(&v.subject))
	}

	c.form = huh.NewForm(
		huh.NewGroup(fields...).Title("Blocks"),
		huh.NewGroup(
			huh.NewSelect[int]().Title("Energy").Options(levelOptions()...).Value(&v.energy),
			huh.NewSelect[int]().Title("Focus").Options(levelOptions()...).Value(&v.focus),
			huh.NewText().Title("Note").Value(&v.note),
		).Title("Condition"),
	).WithShowHelp(true).WithShowErrors(true)

	c.formActive = true
	return c, c.form.Init()
}

func levelOptions() []huh.Option[int] {
	opts := []huh.Option[int]{huh.NewOption("skip", 0)}
	for i := 1; i <= 5; i++ {
		opts = append(opts, huh.NewOption(strings.Repeat("●", i)+strings.Repeat("○", 5-i), i))
	}
	return opts
}

func (c checkInModel) showContextForm() (checkInModel, tea.Cmd) {
	cv := c.context
	*cv = contextValues{
		useRecorded: c.ctx.FromLog,
		phase:       c.ctx.Phase,
		dayType:     c.ctx.DayType,
		mode:        c.ctx.Mode,
	}
	c.formType = "context"

	phaseOptions := make([]huh.Option[int], 0, 4)
	for p := 1; p <= 4; p++ {
		phaseOptions = append(phaseOptions, huh.NewOption(routine.PhaseLabels[p], p))
	}
	dayOptions := make([]huh.Option[routine.DayType], len(routine.DayTypes))
	for i, d := range routine.DayTypes {
		dayOptions[i] = huh.NewOption(d.Label(), d)
	}
	modeOptions := make([]huh.Option[routine.Mode], len(routine.Modes))
	for i, m := range routine.Modes {
		modeOptions[i] = huh.NewOption(m.Label(), m)
	}

	groups := []*huh.Group{}
	if c.ctx.Logged {
		groups = append(groups, huh.NewGroup(
			huh.NewConfirm().
				Title("Use the context recorded for this date?").
				Value(&cv.useRecorded),
		))
	}
	groups = append(groups, huh.NewGroup(
		huh.NewSelect[int]().Title("Phase").Options(phaseOptions...).Value(&cv.phase),
		huh.NewSelect[routine.DayType]().Title("Day type").Options(dayOptions...).Value(&cv.dayType),
		huh.NewSelect[routine.Mode]().Title("Mode").Options(modeOptions...).Value(&cv.mode),
	).WithHideFunc(func() bool { return cv.useRecorded }))

	c.form = huh.NewForm(groups...).WithShowHelp(true).WithShowErrors(true)
	c.formActive = true
	return c, c.form.Init()
}

func (c checkInModel) updateForm(msg tea.Msg) (checkInModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			c.formActive = false
			c.form = nil
			return c, nil
		}
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		c.formActive = false
		c.form = nil
		switch c.formType {
		case "checkin":
			if err := c.submit(); err != nil {
				return c, errorCmd(err)
			}
			return c, tea.Batch(
				func() tea.Msg { return stateChangedMsg{} },
				statusCmd("Check-in saved for "+c.sel.date.Format(routine.DateLayout)),
			)
		case "context":
			c.applyContext()
			c.reload()
			return c, func() tea.Msg { return stateChangedMsg{} }
		}
	}

	return c, cmd
}

// submit turns the form values into a check-in and records it.
func (c *checkInModel) submit() error {
	v := c.values
	in := routine.CheckIn{
		Date:        c.sel.date,
		Phase:       c.ctx.Phase,
		DayType:     c.ctx.DayType,
		Mode:        c.ctx.Mode,
		Completions: routine.CompletionsFor(c.ctx.Phase, c.ctx.DayType, c.ctx.Mode, v.done),
		Note:        strings.TrimSpace(v.note),
		Subject:     v.subject,
	}
	if v.energy > 0 {
		energy := v.energy
		in.Energy = &energy
	}
	if v.focus > 0 {
		focus := v.focus
		in.Focus = &focus
	}
	if err := c.state.Submit(in); err != nil {
		return err
	}
	// The submitted context is now the recorded one.
	c.sel.override = nil
	c.sel.preferLogged = true
	c.reload()
	return nil
}

func (c *checkInModel) applyContext() {
	cv := c.context
	if cv.useRecorded {
		c.sel.override = nil
		c.sel.preferLogged = true
		return
	}
	c.sel.preferLogged = false
	c.sel.override = &routine.DayContext{
		Date:    c.sel.date,
		Phase:   cv.phase,
		DayType: cv.dayType,
		Mode:    cv.mode,
	}
}

func (c checkInModel) view() string {
	w := c.width - 4

	if c.formActive && c.form != nil {
		title := titleStyle.Render("Check-in · " + formatDate(c.sel.date))
		if c.formType == "context" {
			title = titleStyle.Render("Phase, day type and mode · " + formatDate(c.sel.date))
		}
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", c.form.View()))
	}

	rows := contextLines(c.ctx)
	rows = append(rows, "")
	rows = append(rows, c.renderSchedule()...)

	day := routine.SummarizeDay(c.state.Log, c.ctx)
	rows = append(rows, "",
		fmt.Sprintf("  %d/%d blocks · %s of %s possible · grade %s",
			day.Done, day.Checkable, formatMinutes(day.Minutes), formatMinutes(day.PossibleMinutes), renderGrade(day.Grade)),
	)
	if len(c.entries) == 0 {
		rows = append(rows, mutedStyle.Render("  Not checked in yet"))
	}
	rows = append(rows, "",
		mutedStyle.Render("  c: check in  m: phase/mode  ←/→: day  t: today"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (c checkInModel) renderSchedule() []string {
	done := c.doneBlocks()
	rows := []string{mutedStyle.Render(fmt.Sprintf("  %-12s %-4s %-34s %5s  %s", "Time", "", "Block", "Min", "Note"))}
	for _, b := range c.blocks {
		mark := "    "
		style := mutedStyle
		if b.Checkable() {
			style = normalItemStyle
			mark = "[ ] "
			if done[b.CleanName()] {
				mark = successStyle.Render("[x]") + " "
			}
		}
		minutes := ""
		if b.Minutes > 0 {
			minutes = fmt.Sprint(b.Minutes)
		}
		name := style.Render(b.Name)
		pad := max(0, 34-lipgloss.Width(b.Name))
		rows = append(rows, fmt.Sprintf("  %-12s %s%s%s %5s  %s",
			b.Time, mark, name, strings.Repeat(" ", pad), minutes, mutedStyle.Render(b.Note)))
	}
	return rows
}
