package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"organizador/internal/core"
)

type addCmd struct {
	app *App

	id          string
	month       string
	card        string
	person      string
	divided     string
	date        string
	desc        string
	installment string
	due         string
	amount      string
	notes       string
	paid        bool
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a transaction to the ledger" }
func (*addCmd) Usage() string {
	return `organizador add -desc <text> -amount <value> [flags]

  Adds one transaction. With -divided the amount is split in half and a
  mirrored transaction is created for the other person.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Edit the existing transaction with this id instead of adding.")
	f.StringVar(&c.month, "month", "", "Billing month YYYY-MM. Defaults to the current month.")
	f.StringVar(&c.card, "card", "", "Card identifier.")
	f.StringVar(&c.person, "person", "", "Person the expense belongs to. Defaults to Eu.")
	f.StringVar(&c.divided, "divided", "", "Person sharing the expense.")
	f.StringVar(&c.date, "date", "", "Purchase date.")
	f.StringVar(&c.desc, "desc", "", "Description.")
	f.StringVar(&c.installment, "installment", "", "Installment label, e.g. 2/10.")
	f.StringVar(&c.due, "due", "", "Due date.")
	f.StringVar(&c.amount, "amount", "", "Amount, e.g. 45,90 or R$ 1.234,56.")
	f.StringVar(&c.notes, "notes", "", "Free-form notes.")
	f.BoolVar(&c.paid, "paid", false, "Mark the transaction as already paid.")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	status := core.StatusOpen
	if c.paid {
		status = core.StatusPaid
	}

	date, _ := core.ParseDate(c.date)
	due, _ := core.ParseDate(c.due)

	draft := core.Transaction{
		ID:          c.id,
		Month:       c.month,
		Card:        c.card,
		Person:      c.person,
		DividedWith: c.divided,
		Date:        core.ToISODate(date),
		Desc:        c.desc,
		Installment: c.installment,
		Due:         core.ToISODate(due),
		Amount:      core.ParseMoney(c.amount),
		Status:      status,
		Notes:       c.notes,
	}

	svc, err := c.app.Service()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var added []core.Transaction
	if c.id != "" {
		updated, err := svc.UpdateTransaction(ctx, draft)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		added = []core.Transaction{updated}
	} else {
		added, err = svc.AddTransaction(ctx, draft)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}

	for _, t := range added {
		fmt.Printf("%s  %s  %s  %s\n",
			t.ID, t.Month, core.DisplayPerson(t.Person), formatMoney(t.Amount))
	}
	return subcommands.ExitSuccess
}
