package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/google/subcommands"
)

type closingCmd struct {
	app   *App
	month string
	date  string
}

func (*closingCmd) Name() string     { return "closing" }
func (*closingCmd) Synopsis() string { return "show or set card closing dates per month" }
func (*closingCmd) Usage() string {
	return `organizador closing
organizador closing -month YYYY-MM -date <label>

  Without flags the recorded closing dates are listed.
`
}

func (c *closingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Billing month to set.")
	f.StringVar(&c.date, "date", "", "Closing date label, e.g. 05/03.")
}

func (c *closingCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := c.app.Service()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.month != "" {
		if err := svc.SetClosingDate(ctx, c.month, c.date); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("%s: %s\n", c.month, c.date)
		return subcommands.ExitSuccess
	}

	settings, err := svc.Settings(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	months := make([]string, 0, len(settings.ClosingDates))
	for m := range settings.ClosingDates {
		months = append(months, m)
	}
	sort.Strings(months)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MES\tFECHAMENTO")
	for _, m := range months {
		fmt.Fprintf(w, "%s\t%s\n", m, settings.ClosingDates[m])
	}
	w.Flush()
	return subcommands.ExitSuccess
}
