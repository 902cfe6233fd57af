package commands

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/routine/internal/printers"
	"github.com/sadopc/routine/internal/routine"
)

// CheckInOptions are the flags of a non-interactive check-in.
type CheckInOptions struct {
	Done    []string
	All     bool
	Energy  int
	Focus   int
	Note    string
	Subject string
}

func addCheckIn(topLevel *cobra.Command, ro *RootOptions) {
	oo := &OnOptions{}
	co := &ContextOptions{}
	ci := &CheckInOptions{}

	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Record a day's completed blocks",
		Long: `Record a day's check-in. The blocks named with --done are marked done,
every other checkable block of the day's schedule is recorded as not done.
Submitting again for the same date replaces the earlier check-in.`,
		Example: `
routine checkin --done "📚 인강 1강" --done "✏️ 1차 문풀" --subject 민법
routine checkin --on yesterday --all --energy 4 --focus 3
routine checkin --mode off
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(ro, true)
			if err != nil {
				return err
			}
			defer s.Close()

			date, err := oo.GetOn(s.state.Today())
			if err != nil {
				return err
			}
			ctx := co.Apply(s.state, date)
			in, unknown := ci.build(cmd, s.state, ctx)

			pp := printers.New()
			for _, name := range unknown {
				pp.Warn("no checkable block %q in this schedule, ignored", name)
			}
			if err := s.state.Submit(in); err != nil {
				return err
			}

			st := s.state.Stats(s.state.Context(date, true))
			pp.Context(st.Context)
			pp.Faint("recorded %d/%d blocks · %d min · grade %s",
				st.Day.Done, st.Day.Checkable, st.Day.Minutes, st.Day.Grade)
			return nil
		},
	}

	AddOnArgs(cmd, oo)
	AddContextArgs(cmd, co)
	AddCheckInArgs(cmd, ci)

	topLevel.AddCommand(cmd)
}

func AddCheckInArgs(cmd *cobra.Command, o *CheckInOptions) {
	cmd.Flags().StringArrayVarP(&o.Done, "done", "d", nil,
		"Name of a completed block. Repeatable.")
	cmd.Flags().BoolVar(&o.All, "all", false,
		"Mark every checkable block done.")
	cmd.Flags().IntVar(&o.Energy, "energy", 0,
		"Energy level (1-5).")
	cmd.Flags().IntVar(&o.Focus, "focus", 0,
		"Focus level (1-5).")
	cmd.Flags().StringVar(&o.Note, "note", "",
		"Free-text note for the day.")
	cmd.Flags().StringVar(&o.Subject, "subject", "",
		"Subject studied (default: the day's recorded subject or the first active one).")
}

// build turns the flags into a check-in for ctx. It returns the --done
// names that match no checkable block.
func (o *CheckInOptions) build(cmd *cobra.Command, st *routine.State, ctx routine.DayContext) (routine.CheckIn, []string) {
	blocks := routine.CheckableBlocks(ctx.Phase, ctx.DayType, ctx.Mode)
	known := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		known[b.Name] = true
	}

	var done, unknown []string
	if o.All {
		for _, b := range blocks {
			done = append(done, b.Name)
		}
	}
	for _, name := range o.Done {
		name = strings.TrimSpace(name)
		if !known[name] {
			unknown = append(unknown, name)
			continue
		}
		done = append(done, name)
	}

	in := routine.CheckIn{
		Date:        ctx.Date,
		Phase:       ctx.Phase,
		DayType:     ctx.DayType,
		Mode:        ctx.Mode,
		Completions: routine.CompletionsFor(ctx.Phase, ctx.DayType, ctx.Mode, done),
		Note:        o.Note,
		Subject:     strings.TrimSpace(o.Subject),
	}
	if cmd.Flags().Changed("energy") {
		in.Energy = &o.Energy
	}
	if cmd.Flags().Changed("focus") {
		in.Focus = &o.Focus
	}
	if in.Subject == "" {
		in.Subject = defaultSubject(st, ctx.Date)
	}
	return in, unknown
}

// defaultSubject is the subject already recorded for date, else the first
// active subject.
func defaultSubject(st *routine.State, date time.Time) string {
	for _, e := range st.Entries(date) {
		if e.Subject != "" {
			return e.Subject
		}
	}
	if active := st.ActiveSubjects(); len(active) > 0 {
		return active[0].Name
	}
	return ""
}
