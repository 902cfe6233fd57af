package commands

import (
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/routine/internal/printers"
	"github.com/sadopc/routine/internal/routine"
)

func addStats(topLevel *cobra.Command, ro *RootOptions) {
	oo := &OnOptions{}
	co := &ContextOptions{}

	cmd := &cobra.Command{
		Use:     "stats",
		Aliases: []string{"dashboard"},
		Short:   "Show streak, grades, badges and lecture progress",
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
			st := s.state.Stats(ctx)

			r := rand.New(rand.NewSource(time.Now().UnixNano()))

			pp := printers.New()
			pp.Context(ctx)
			pp.Stats(st, routine.Motivation(st.Streak, ctx.Mode, r))
			pp.NewLine()
			pp.Subjects(s.state.ActiveSubjects())
			return nil
		},
	}

	AddOnArgs(cmd, oo)
	AddContextArgs(cmd, co)

	topLevel.AddCommand(cmd)
}
