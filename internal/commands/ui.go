package commands

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/routine/internal/tui"
)

func runUI(cmd *cobra.Command, ro *RootOptions) error {
	s, err := openSession(ro, true)
	if err != nil {
		return err
	}
	defer s.Close()

	app := tui.NewApp(s.state)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
