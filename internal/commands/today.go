package commands

import (
	"github.com/spf13/cobra"

	"github.com/sadopc/routine/internal/printers"
	"github.com/sadopc/routine/internal/routine"
)

func addToday(topLevel *cobra.Command, ro *RootOptions) {
	oo := &OnOptions{}
	co := &ContextOptions{}

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the schedule for a day",
		Example: `
routine today
routine today --on 2026-10-17 --mode low
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

			pp := printers.New()
			pp.Context(ctx)
			pp.Schedule(routine.Generate(ctx.Phase, ctx.DayType, ctx.Mode), s.state.Entries(date))

			day := routine.SummarizeDay(s.state.Log, ctx)
			pp.Faint("%d/%d blocks done · %d of %d possible minutes · %d%%",
				day.Done, day.Checkable, day.Minutes, day.PossibleMinutes, day.Progress)
			return nil
		},
	}

	AddOnArgs(cmd, oo)
	AddContextArgs(cmd, co)

	topLevel.AddCommand(cmd)
}
