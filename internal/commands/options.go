package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/routine/internal/routine"
)

// RootOptions are the persistent flags shared by every command.
type RootOptions struct {
	DB       string
	Password string
	Verbose  bool
}

func AddRootArgs(cmd *cobra.Command, o *RootOptions) {
	cmd.PersistentFlags().StringVar(&o.DB, "db", "",
		"Path to the SQLite database (default $ROUTINE_DB or ~/.config/routine/routine.db).")
	cmd.PersistentFlags().StringVar(&o.Password, "password", "",
		"Password for the gate (default $ROUTINE_PASSWORD, else prompt).")
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log diagnostics to stderr.")
}

// OnOptions selects the day a command works on.
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on=2026-10-17, --on=yesterday. Defaults to today.`)
}

// GetOn resolves the --on value relative to today.
func (o *OnOptions) GetOn(today time.Time) (time.Time, error) {
	return parseDay(o.OnString, today)
}

func parseDay(s string, today time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return routine.Day(today), nil
	case "yesterday":
		return routine.Day(today).AddDate(0, 0, -1), nil
	case "tomorrow":
		return routine.Day(today).AddDate(0, 0, 1), nil
	}
	t, err := time.Parse(routine.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// ContextOptions override the resolved day context.
type ContextOptions struct {
	Phase     int
	DayType   string
	Mode      string
	IgnoreLog bool
}

func AddContextArgs(cmd *cobra.Command, o *ContextOptions) {
	cmd.Flags().IntVar(&o.Phase, "phase", 0,
		"Override the phase (1-4).")
	cmd.Flags().StringVar(&o.DayType, "day-type", "",
		"Override the day type (weekday, sat, sun).")
	cmd.Flags().StringVar(&o.Mode, "mode", "",
		"Override the mode (normal, low, off).")
	cmd.Flags().BoolVar(&o.IgnoreLog, "ignore-log", false,
		"Resolve the context from config even when the date is already logged.")
}

// Apply resolves the context for date and applies any overrides.
func (o *ContextOptions) Apply(st *routine.State, date time.Time) routine.DayContext {
	ctx := st.Context(date, !o.IgnoreLog)
	if o.Phase != 0 {
		ctx.Phase = o.Phase
	}
	if o.DayType != "" {
		ctx.DayType = routine.DayType(o.DayType)
	}
	if o.Mode != "" {
		ctx.Mode = routine.Mode(o.Mode)
	}
	return ctx
}
