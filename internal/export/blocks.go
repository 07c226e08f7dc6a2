package export

import (
	"sort"

	"organizador/internal/core"
	"organizador/internal/storage"
)

// Block is one tabular view of the snapshot: a sheet name, a header row and
// data rows. The XLSX writer and the Google Sheets publisher render the same
// blocks.
type Block struct {
	Name   string
	Header []any
	Rows   [][]any
}

// Blocks renders the snapshot into the four canonical sheets.
func Blocks(snap storage.Snapshot) []Block {
	return []Block{
		transactionsBlock(snap.Transactions),
		closingsBlock(snap.Settings.ClosingDates),
		cardStatusBlock(snap.CardMeta),
		extrasBlock(snap.Extras),
	}
}

func transactionsBlock(txs []core.Transaction) Block {
	rows := make([][]any, 0, len(txs))
	for _, t := range txs {
		status := "Aberto"
		if t.Status == core.StatusPaid {
			status = "Pago"
		}
		rows = append(rows, []any{
			t.Month,
			t.Card,
			t.Date,
			t.Desc,
			t.Installment,
			t.Due,
			t.Amount.InexactFloat64(),
			core.DisplayPerson(t.Person),
			core.DisplayPerson(t.DividedWith),
			status,
			t.Notes,
		})
	}
	return Block{
		Name:   SheetTransactions,
		Header: []any{"month", "Cartao", "data", "compra", "parcelas", "due", "valor", "quem", "dividido", "status", "obs"},
		Rows:   rows,
	}
}

func closingsBlock(closingDates map[string]string) Block {
	months := make([]string, 0, len(closingDates))
	for m := range closingDates {
		months = append(months, m)
	}
	sort.Strings(months)

	rows := make([][]any, 0, len(months))
	for _, m := range months {
		rows = append(rows, []any{m, closingDates[m]})
	}
	return Block{
		Name:   SheetClosings,
		Header: []any{"month", "fechamento"},
		Rows:   rows,
	}
}

func cardStatusBlock(meta []core.CardMeta) Block {
	rows := make([][]any, 0, len(meta))
	for _, m := range meta {
		rows = append(rows, []any{
			m.Month,
			m.Card,
			m.Paid,
			m.PaidDate,
			m.Overdraft.InexactFloat64(),
			m.Notes,
		})
	}
	return Block{
		Name:   SheetCardStatus,
		Header: []any{"month", "card", "pago", "pagoData", "chequeEspecialCredito", "obs"},
		Rows:   rows,
	}
}

func extrasBlock(extras []core.Extra) Block {
	rows := make([][]any, 0, len(extras))
	for _, e := range extras {
		rows = append(rows, []any{
			e.Month,
			core.DisplayPerson(e.Person),
			e.Date,
			e.Type,
			e.Desc,
			e.Amount.InexactFloat64(),
		})
	}
	return Block{
		Name:   SheetExtras,
		Header: []any{"month", "pessoa", "data", "tipo", "descricao", "valor"},
		Rows:   rows,
	}
}
