package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/routine/internal/printers"
	"github.com/sadopc/routine/internal/routine"
)

func addSubjects(topLevel *cobra.Command, ro *RootOptions) {
	cmd := &cobra.Command{
		Use:     "subjects",
		Aliases: []string{"subject"},
		Short:   "List and edit subjects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(ro, true)
			if err != nil {
				return err
			}
			defer s.Close()

			printers.New().Subjects(s.state.Subjects)
			return nil
		},
	}

	addSubjectAdd(cmd, ro)
	addSubjectSet(cmd, ro)
	addSubjectRm(cmd, ro)

	topLevel.AddCommand(cmd)
}

func addSubjectAdd(parent *cobra.Command, ro *RootOptions) {
	var total int

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add an active subject",
		Example: `
routine subjects add 형법 --total 180
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(ro, true)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.state.AddSubject(args[0], total); err != nil {
				return err
			}
			printers.New().Subjects(s.state.Subjects)
			return nil
		},
	}
	cmd.Flags().IntVar(&total, "total", 100, "Total number of lectures.")

	parent.AddCommand(cmd)
}

// SubjectSetOptions are the fields a set command may change.
type SubjectSetOptions struct {
	Name      string
	Total     int
	Completed int
	Active    bool
}

func addSubjectSet(parent *cobra.Command, ro *RootOptions) {
	o := &SubjectSetOptions{}

	cmd := &cobra.Command{
		Use:   "set NAME",
		Short: "Edit a subject",
		Long: `Edit a subject. Only the given flags change. The completed count may be
lowered here; it is raised again automatically once the log shows more
completed lectures.`,
		Example: `
routine subjects set 민법 --completed 12
routine subjects set 민법 --active=false
routine subjects set 민법 --name "민법 총칙"
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(ro, true)
			if err != nil {
				return err
			}
			defer s.Close()

			name := args[0]
			sub, ok := s.state.Subject(name)
			if !ok {
				return fmt.Errorf("update subject %q: %w", name, routine.ErrSubjectNotFound)
			}
			flags := cmd.Flags()
			if flags.Changed("name") {
				sub.Name = o.Name
			}
			if flags.Changed("total") {
				sub.TotalLectures = o.Total
			}
			if flags.Changed("completed") {
				sub.CompletedLectures = o.Completed
			}
			if flags.Changed("active") {
				sub.Active = o.Active
			}
			if err := s.state.UpdateSubject(name, sub); err != nil {
				return err
			}
			printers.New().Subjects(s.state.Subjects)
			return nil
		},
	}
	cmd.Flags().StringVar(&o.Name, "name", "", "Rename the subject.")
	cmd.Flags().IntVar(&o.Total, "total", 0, "Total number of lectures.")
	cmd.Flags().IntVar(&o.Completed, "completed", 0, "Completed lectures.")
	cmd.Flags().BoolVar(&o.Active, "active", true, "Whether the subject is offered at check-in.")

	parent.AddCommand(cmd)
}

func addSubjectRm(parent *cobra.Command, ro *RootOptions) {
	cmd := &cobra.Command{
		Use:     "rm NAME",
		Aliases: []string{"delete"},
		Short:   "Delete a subject",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(ro, true)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.state.DeleteSubject(args[0]); err != nil {
				return err
			}
			printers.New().Subjects(s.state.Subjects)
			return nil
		},
	}

	parent.AddCommand(cmd)
}
