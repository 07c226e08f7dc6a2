// Package importer turns heterogeneous spreadsheet/CSV rows into canonical
// ledger records. One flat row schema carries four distinct record shapes;
// the classifier routes each row, the builders produce typed records, and
// the result is handed to the ledger service for merging.
package importer

import (
	"time"

	"organizador/internal/core"
)

// Batch is everything one import run produced, still unmerged.
type Batch struct {
	Transactions []core.Transaction
	Extras       []core.Extra
	CardMeta     []core.CardMeta   // upsert candidates, in row order
	ClosingDates map[string]string // month -> closing-date label
	Rows         int               // rows examined
}

// MapRows runs the classify/build pipeline over a set of flat records.
// Malformed rows degrade to empty records and are skipped; nothing in here
// fails. now anchors the current-month fallback for rows without any
// resolvable month.
func MapRows(rows []Record, now time.Time) Batch {
	b := Batch{ClosingDates: make(map[string]string)}
	for _, r := range rows {
		b.Rows++
		switch Classify(r) {
		case KindClosing:
			b.ClosingDates[Resolve(r, FieldMonth)] = Resolve(r, FieldClosing)
		case KindCardStatus:
			b.CardMeta = append(b.CardMeta, buildCardMeta(r))
		case KindExtra:
			if e, ok := buildExtra(r); ok {
				b.Extras = append(b.Extras, e)
			}
		default:
			b.Transactions = append(b.Transactions, buildTransactions(r, now)...)
		}
	}
	return b
}
