package services

import (
	"strings"

	"github.com/google/uuid"

	"organizador/internal/core"
	"organizador/internal/importer"
	"organizador/internal/storage"
)

// MergeBatch folds an import batch into an existing snapshot. Transactions
// and extras are appended as-is; re-importing the same file duplicates them,
// which matches how the ledger has always behaved. Card statuses upsert by
// (month, card) and closing dates upsert by month.
func MergeBatch(snap storage.Snapshot, batch importer.Batch) storage.Snapshot {
	snap.Transactions = append(snap.Transactions, batch.Transactions...)
	snap.Extras = append(snap.Extras, batch.Extras...)

	for _, meta := range batch.CardMeta {
		snap.CardMeta = upsertCardMeta(snap.CardMeta, meta)
	}
	for month, label := range batch.ClosingDates {
		if strings.TrimSpace(month) == "" {
			continue
		}
		snap.Settings.SetClosingDate(month, label)
	}
	return snap
}

// upsertCardMeta replaces the entry matching (month, card) or appends a new
// one. On replace, empty incoming fields keep the existing value and the
// existing id survives, so references stay stable across re-imports.
func upsertCardMeta(all []core.CardMeta, incoming core.CardMeta) []core.CardMeta {
	for i := range all {
		if all[i].Month != incoming.Month || all[i].Card != incoming.Card {
			continue
		}
		merged := all[i]
		if incoming.Paid != "" {
			merged.Paid = incoming.Paid
		}
		if incoming.PaidDate != "" {
			merged.PaidDate = incoming.PaidDate
		}
		if !incoming.Overdraft.IsZero() {
			merged.Overdraft = incoming.Overdraft
		}
		if incoming.Notes != "" {
			merged.Notes = incoming.Notes
		}
		all[i] = merged
		return all
	}
	if incoming.ID == "" {
		incoming.ID = uuid.NewString()
	}
	return append(all, incoming)
}
