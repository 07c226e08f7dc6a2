package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"organizador/internal/core"
	"organizador/internal/log"
)

type peopleCmd struct {
	app   *App
	month string
}

func (*peopleCmd) Name() string     { return "people" }
func (*peopleCmd) Synopsis() string { return "show per-person totals for a month" }
func (*peopleCmd) Usage() string {
	return `organizador people [-month YYYY-MM]

  For each person: card spending, extras and the combined total. Without
  -month the persisted people-view month is used; an empty month includes
  every month.
`
}

func (c *peopleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Billing month. Empty means all months.")
}

func (c *peopleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := c.app.Service()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	settings, err := svc.Settings(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	month := settings.PeopleMonth
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == "month" {
			month = c.month
		}
	})

	snap, err := svc.Snapshot(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	txs := core.Filter{Month: month}.Apply(snap.Transactions)

	extrasByPerson := make(map[string]decimal.Decimal)
	for _, e := range snap.Extras {
		if month != "" && e.Month != month {
			continue
		}
		extrasByPerson[e.Person] = extrasByPerson[e.Person].Add(e.Amount)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PESSOA\tCARTOES\tABERTO\tEXTRAS\tTOTAL")
	for _, person := range core.People(snap.Transactions) {
		var totals core.Totals
		if month != "" {
			totals = core.TotalsForPersonMonth(snap.Transactions, person, month)
		} else {
			totals = core.Summarize(core.Filter{Person: person}.Apply(txs))
		}
		extras := extrasByPerson[person]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			core.DisplayPerson(person),
			formatMoney(totals.Total),
			formatMoney(totals.Open),
			formatMoney(extras),
			formatMoney(totals.Total.Add(extras)))
	}
	w.Flush()

	if _, err := svc.PatchSettings(ctx, core.SettingsPatch{PeopleMonth: &month}); err != nil {
		c.app.Logger.WarnContext(ctx, "Failed to persist people-view month", log.FieldError, err)
	}
	return subcommands.ExitSuccess
}
