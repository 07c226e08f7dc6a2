package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"organizador/internal/core"
	"organizador/internal/log"
)

type listCmd struct {
	app *App

	month  string
	person string
	card   string
	query  string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list transactions with filters and totals" }
func (*listCmd) Usage() string {
	return `organizador list [-month YYYY-MM] [-person <name>] [-card <card>] [-q <text>]

  Filters apply together. -q matches description, notes and installment.
  Omitted flags fall back to the persisted view settings; the filters used
  become the new persisted view.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Billing month to show.")
	f.StringVar(&c.person, "person", "", "Only this person. Use ALL for everyone.")
	f.StringVar(&c.card, "card", "", "Only this card. Use ALL for every card.")
	f.StringVar(&c.query, "q", "", "Substring search.")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	// flags override the persisted view, anything omitted keeps it
	month := settings.SelectedMonth
	person := settings.SelectedPerson
	card := settings.SelectedCard
	query := settings.Query
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "month":
			month = c.month
		case "person":
			person = c.person
		case "card":
			card = c.card
		case "q":
			query = c.query
		}
	})

	filter := core.Filter{
		Month:  month,
		Person: core.NormalizePersonNullable(person),
		Card:   card,
		Query:  query,
	}

	txs, err := svc.ListTransactions(ctx, filter)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMES\tCARTAO\tDATA\tCOMPRA\tPARCELA\tQUEM\tVALOR\tSTATUS")
	for _, t := range txs {
		status := "Aberto"
		if t.Status == core.StatusPaid {
			status = "Pago"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Month, t.Card, t.Date, t.Desc, t.Installment,
			core.DisplayPerson(t.Person), formatMoney(t.Amount), status)
	}
	w.Flush()

	totals := core.Summarize(txs)
	fmt.Printf("\n%d lancamentos  total %s  pago %s  aberto %s\n",
		totals.Count, formatMoney(totals.Total), formatMoney(totals.Paid), formatMoney(totals.Open))

	patch := core.SettingsPatch{
		SelectedMonth:  &month,
		SelectedPerson: &person,
		SelectedCard:   &card,
		Query:          &query,
	}
	if _, err := svc.PatchSettings(ctx, patch); err != nil {
		c.app.Logger.WarnContext(ctx, "Failed to persist view settings", log.FieldError, err)
	}
	return subcommands.ExitSuccess
}
