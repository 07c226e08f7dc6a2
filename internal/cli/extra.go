package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"organizador/internal/core"
)

type extraCmd struct {
	app *App

	remove string
	month  string
	person string
	date   string
	typ    string
	desc   string
	amount string
}

func (*extraCmd) Name() string     { return "extra" }
func (*extraCmd) Synopsis() string { return "list, add or remove extras (loans, reimbursements)" }
func (*extraCmd) Usage() string {
	return `organizador extra [-month YYYY-MM]
organizador extra -desc <text> -person <name> -date <date> -month YYYY-MM [-type <type>] [-amount <value>]
organizador extra -rm <extra-id>

  Without -desc and -rm the extras are listed.
`
}

func (c *extraCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.remove, "rm", "", "Remove the extra with this id.")
	f.StringVar(&c.month, "month", "", "Billing month.")
	f.StringVar(&c.person, "person", "", "Person the extra belongs to.")
	f.StringVar(&c.date, "date", "", "Date of the event.")
	f.StringVar(&c.typ, "type", "", "Type, e.g. Emprestimo. Defaults to Outros.")
	f.StringVar(&c.desc, "desc", "", "Description.")
	f.StringVar(&c.amount, "amount", "", "Amount, e.g. 45,90.")
}

func (c *extraCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := c.app.Service()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	switch {
	case c.remove != "":
		if err := svc.DeleteExtra(ctx, c.remove); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Println("removed", c.remove)

	case c.desc != "":
		date, _ := core.ParseDate(c.date)
		extra := core.Extra{
			Month:  c.month,
			Person: c.person,
			Date:   core.ToISODate(date),
			Type:   c.typ,
			Desc:   c.desc,
			Amount: core.ParseMoney(c.amount),
		}
		if err := svc.SaveExtra(ctx, extra); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Println("added extra for", core.DisplayPerson(core.NormalizePerson(c.person)))

	default:
		snap, err := svc.Snapshot(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tMES\tPESSOA\tDATA\tTIPO\tDESCRICAO\tVALOR")
		for _, e := range snap.Extras {
			if c.month != "" && e.Month != c.month {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				e.ID, e.Month, core.DisplayPerson(e.Person), e.Date, e.Type, e.Desc,
				formatMoney(e.Amount))
		}
		w.Flush()
	}
	return subcommands.ExitSuccess
}
