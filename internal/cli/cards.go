package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/subcommands"

	"organizador/internal/core"
	"organizador/internal/log"
	"organizador/internal/services"
)

type cardsCmd struct {
	app *App

	month     string
	card      string
	paid      string
	paidDate  string
	overdraft string
	notes     string
	remove    bool
}

func (*cardsCmd) Name() string     { return "cards" }
func (*cardsCmd) Synopsis() string { return "show per-card totals, set or remove invoice status" }
func (*cardsCmd) Usage() string {
	return `organizador cards [-month YYYY-MM]
organizador cards -month YYYY-MM -card <card> [-paid sim|nao] [-paid-date <date>] [-overdraft <value>] [-notes <text>]
organizador cards -month YYYY-MM -card <card> -rm

  Without -card the per-card totals are listed. With -card the invoice
  status for (month, card) is upserted; empty flags keep the stored values.
  The month defaults to the persisted selected month.
`
}

func (c *cardsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Billing month. Defaults to the selected month.")
	f.StringVar(&c.card, "card", "", "Card to set or remove the status for.")
	f.StringVar(&c.paid, "paid", "", "Invoice paid, e.g. sim or nao.")
	f.StringVar(&c.paidDate, "paid-date", "", "Date the invoice was paid.")
	f.StringVar(&c.overdraft, "overdraft", "", "Overdraft credit, e.g. 500,00.")
	f.StringVar(&c.notes, "notes", "", "Free-form notes.")
	f.BoolVar(&c.remove, "rm", false, "Remove the status entry for (month, card).")
}

func (c *cardsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	month := settings.SelectedMonth
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == "month" {
			month = c.month
		}
	})

	switch {
	case c.remove:
		if month == "" || c.card == "" {
			fmt.Fprintln(os.Stderr, "Error: -rm requires -month and -card.")
			return subcommands.ExitUsageError
		}
		if err := svc.DeleteCardMeta(ctx, month, c.card); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("removed status for %s / %s\n", month, c.card)

	case c.card != "":
		meta := core.CardMeta{
			Month:     month,
			Card:      c.card,
			Paid:      coercePaid(c.paid),
			PaidDate:  c.paidDate,
			Overdraft: core.ParseMoney(c.overdraft),
			Notes:     c.notes,
		}
		if err := svc.SaveCardMeta(ctx, meta); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("%s / %s saved\n", month, c.card)

	default:
		if status := c.render(ctx, svc, month); status != subcommands.ExitSuccess {
			return status
		}
	}

	if _, err := svc.PatchSettings(ctx, core.SettingsPatch{SelectedMonth: &month}); err != nil {
		c.app.Logger.WarnContext(ctx, "Failed to persist selected month", log.FieldError, err)
	}
	return subcommands.ExitSuccess
}

func (c *cardsCmd) render(ctx context.Context, svc *services.LedgerService, month string) subcommands.ExitStatus {
	snap, err := svc.Snapshot(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	txs := core.Filter{Month: month}.Apply(snap.Transactions)

	metaByCard := make(map[string]core.CardMeta)
	if month != "" {
		for _, m := range snap.CardMeta {
			if m.Month == month {
				metaByCard[m.Card] = m
			}
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CARTAO\tTOTAL\tFATURA\tPAGO EM")
	for _, bucket := range core.SumByCard(txs) {
		if bucket.Key == "" {
			continue
		}
		invoice, paidDate := "-", "-"
		if m, ok := metaByCard[bucket.Key]; ok {
			if m.Paid == core.PaidYes {
				invoice = "Paga"
			} else {
				invoice = "Em aberto"
			}
			if m.PaidDate != "" {
				paidDate = m.PaidDate
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			bucket.Key, formatMoney(bucket.Amount), invoice, paidDate)
	}
	w.Flush()
	return subcommands.ExitSuccess
}

// coercePaid maps free-form paid text onto YES/NO the same way imported
// card-status rows are read. Empty stays empty so an upsert keeps the
// stored value.
func coercePaid(v string) string {
	if v == "" {
		return ""
	}
	u := strings.ToUpper(v)
	if strings.Contains(u, "S") || strings.Contains(u, "YES") {
		return core.PaidYes
	}
	return core.PaidNo
}
