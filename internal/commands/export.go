package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/routine/internal/export"
	"github.com/sadopc/routine/internal/printers"
	"github.com/sadopc/routine/internal/routine"
	"github.com/sadopc/routine/internal/store"
)

// ExportOptions select the format, destination and date range of an export.
type ExportOptions struct {
	Format string
	Out    string
	From   string
	To     string
}

func addExport(topLevel *cobra.Command, ro *RootOptions) {
	o := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the routine log as CSV or JSON",
		Example: `
routine export --format json --out log.json
routine export --from 2026-10-01 --to 2026-10-31
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(ro, true)
			if err != nil {
				return err
			}
			defer s.Close()

			f, err := o.filter(s.state.Today())
			if err != nil {
				return err
			}
			entries, err := s.store.ListLog(f)
			if err != nil {
				return err
			}

			format := strings.ToLower(o.Format)
			out := o.Out
			if out == "" {
				out = fmt.Sprintf("routine-%s.%s", s.state.Today().Format(routine.DateLayout), format)
			}
			switch format {
			case "csv":
				err = export.ToCSV(entries, out)
			case "json":
				err = export.ToJSON(entries, out)
			default:
				return fmt.Errorf("unknown format %q: want csv or json", o.Format)
			}
			if err != nil {
				return err
			}

			abs, _ := filepath.Abs(out)
			printers.New().Faint("exported %d entries to %s", len(entries), abs)
			return nil
		},
	}
	cmd.Flags().StringVarP(&o.Format, "format", "f", "csv", "Export format: csv or json.")
	cmd.Flags().StringVarP(&o.Out, "out", "o", "", "Output file (default routine-DATE.FORMAT).")
	cmd.Flags().StringVar(&o.From, "from", "", "First date to include.")
	cmd.Flags().StringVar(&o.To, "to", "", "Last date to include.")

	topLevel.AddCommand(cmd)
}

func (o *ExportOptions) filter(today time.Time) (store.LogFilter, error) {
	var f store.LogFilter
	if o.From != "" {
		d, err := parseDay(o.From, today)
		if err != nil {
			return f, err
		}
		f.From = &d
	}
	if o.To != "" {
		d, err := parseDay(o.To, today)
		if err != nil {
			return f, err
		}
		f.To = &d
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return f, fmt.Errorf("--to %s is before --from %s", o.To, o.From)
	}
	return f, nil
}
