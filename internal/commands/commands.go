package commands

import (
	"github.com/spf13/cobra"
)

// New builds the routine command tree. The root command starts the
// interactive dashboard.
func New() *cobra.Command {
	ro := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "routine",
		Short: "Phase-based study routine tracker.",
		Long: `Renders the day's study schedule for the current phase, records
check-ins, and derives streaks, grades, badges and lecture progress.

Without a subcommand the interactive dashboard starts.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, ro)
		},
	}
	AddRootArgs(cmd, ro)

	AddCommands(cmd, ro)
	return cmd
}

func AddCommands(topLevel *cobra.Command, ro *RootOptions) {
	addToday(topLevel, ro)
	addCheckIn(topLevel, ro)
	addStats(topLevel, ro)
	addSubjects(topLevel, ro)
	addExport(topLevel, ro)
	addHashPassword(topLevel)
}
