package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/routine/internal/routine"
)

type subjectsModel struct {
	state  *routine.State
	width  int
	height int

	subjects []routine.Subject
	cursor   int

	formActive bool
	form       *huh.Form
	formType   string // "new", "edit", "delete"

	// Form field pointers (survive value copies)
	formName      *string
	formTotal     *string
	formCompleted *string
	formActiveOn  *bool
	formConfirm   *bool

	editingName string
}

func newSubjectsModel(st *routine.State) subjectsModel {
	name, total, completed := "", "", ""
	active, confirm := true, false
	s := subjectsModel{
		state:         st,
		formName:      &name,
		formTotal:     &total,
		formCompleted: &completed,
		formActiveOn:  &active,
		formConfirm:   &confirm,
	}
	s.reload()
	return s
}

func (s *subjectsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s *subjectsModel) reload() {
	s.subjects = s.state.Subjects
	if s.cursor >= len(s.subjects) {
		s.cursor = max(0, len(s.subjects)-1)
	}
}

func (s subjectsModel) update(msg tea.Msg) (subjectsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case stateChangedMsg:
		s.reload()
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if s.cursor > 0 {
				s.cursor--
			}
		case key.Matches(msg, keys.Down):
			if s.cursor < len(s.subjects)-1 {
				s.cursor++
			}
		case key.Matches(msg, keys.New):
			return s.showNewForm()
		case key.Matches(msg, keys.Enter):
			if len(s.subjects) > 0 {
				return s.showEditForm()
			}
		case key.Matches(msg, keys.Delete):
			if len(s.subjects) > 0 {
				return s.showDeleteForm()
			}
		}
	}
	return s, nil
}

func validateName(v string) error {
	if strings.TrimSpace(v) == "" {
		return errors.New("name is required")
	}
	return nil
}

func validateCount(least int) func(string) error {
	return func(v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.New("enter a whole number")
		}
		if n < least {
			return fmt.Errorf("must be at least %d", least)
		}
		return nil
	}
}

func (s subjectsModel) showNewForm() (subjectsModel, tea.Cmd) {
	*s.formName = ""
	*s.formTotal = "100"
	s.formType = "new"

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Subject").Value(s.formName).Validate(validateName),
			huh.NewInput().Title("Total lectures").Value(s.formTotal).Validate(validateCount(1)),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s subjectsModel) showEditForm() (subjectsModel, tea.Cmd) {
	sub := s.subjects[s.cursor]
	*s.formName = sub.Name
	*s.formTotal = strconv.Itoa(sub.TotalLectures)
	*s.formCompleted = strconv.Itoa(sub.CompletedLectures)
	*s.formActiveOn = sub.Active
	s.formType = "edit"
	s.editingName = sub.Name

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Subject").Value(s.formName).Validate(validateName),
			huh.NewInput().Title("Total lectures").Value(s.formTotal).Validate(validateCount(1)),
			huh.NewInput().Title("Completed lectures").
				Description("Lowering this is kept until the log shows more completed lectures.").
				Value(s.formCompleted).Validate(validateCount(0)),
			huh.NewConfirm().Title("Active").Value(s.formActiveOn),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s subjectsModel) showDeleteForm() (subjectsModel, tea.Cmd) {
	sub := s.subjects[s.cursor]
	*s.formConfirm = false
	s.formType = "delete"
	s.editingName = sub.Name

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s?", sub.Name)).
				Description("Logged entries keep their subject name.").
				Value(s.formConfirm),
		),
	).WithShowHelp(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s subjectsModel) updateForm(msg tea.Msg) (subjectsModel, tea.Cmd) {
	// Check for escape to cancel form
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
		if err := s.save(); err != nil {
			return s, errorCmd(err)
		}
		s.reload()
		return s, func() tea.Msg { return stateChangedMsg{} }
	}

	return s, cmd
}

// save applies the completed form to the state.
func (s *subjectsModel) save() error {
	name := strings.TrimSpace(*s.formName)
	total, _ := strconv.Atoi(strings.TrimSpace(*s.formTotal))

	switch s.formType {
	case "new":
		return s.state.AddSubject(name, total)
	case "edit":
		completed, _ := strconv.Atoi(strings.TrimSpace(*s.formCompleted))
		return s.state.UpdateSubject(s.editingName, routine.Subject{
			Name:              name,
			TotalLectures:     total,
			CompletedLectures: completed,
			Active:            *s.formActiveOn,
		})
	case "delete":
		if *s.formConfirm {
			return s.state.DeleteSubject(s.editingName)
		}
	}
	return nil
}

func (s subjectsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("New Subject")
		switch s.formType {
		case "edit":
			title = titleStyle.Render("Edit Subject")
		case "delete":
			title = titleStyle.Render("Delete Subject")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Subjects")

	if len(s.subjects) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No subjects yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-20s %11s %8s  %s", "Name", "Lectures", "Progress", "Active"))
	rows = append(rows, header)

	for i, sub := range s.subjects {
		cursor := "  "
		style := normalItemStyle
		if i == s.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		active := successStyle.Render("●")
		if !sub.Active {
			active = mutedStyle.Render("○")
		}
		row := style.Render(fmt.Sprintf("%s%-20s %5d/%-5d %7d%%", cursor, sub.Name,
			sub.CompletedLectures, sub.TotalLectures, sub.Percent()))
		rows = append(rows, row+"  "+active)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  enter: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
