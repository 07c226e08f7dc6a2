package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"organizador/internal/core"
	"organizador/internal/importer"
	"organizador/internal/storage"
)

func TestMergeBatchAppendsTransactionsAndExtras(t *testing.T) {
	snap := storage.Snapshot{
		Transactions: []core.Transaction{{ID: "old", Month: "2024-02", Desc: "a", Amount: decimal.NewFromInt(1)}},
		Extras:       []core.Extra{{ID: "e-old", Month: "2024-02", Person: "Pai", Date: "2024-02-01", Desc: "x", Amount: decimal.NewFromInt(5)}},
	}
	batch := importer.Batch{
		Transactions: []core.Transaction{{ID: "new", Month: "2024-03", Desc: "b", Amount: decimal.NewFromInt(2)}},
		Extras:       []core.Extra{{ID: "e-new", Month: "2024-03", Person: "Eu", Date: "2024-03-01", Desc: "y", Amount: decimal.NewFromInt(6)}},
	}

	merged := MergeBatch(snap, batch)
	if len(merged.Transactions) != 2 || len(merged.Extras) != 2 {
		t.Fatalf("append sizes: %d transactions, %d extras", len(merged.Transactions), len(merged.Extras))
	}
}

func TestMergeBatchDuplicatesOnReimport(t *testing.T) {
	batch := importer.Batch{
		Transactions: []core.Transaction{{ID: "t1", Month: "2024-03", Desc: "a", Amount: decimal.NewFromInt(1)}},
	}
	snap := MergeBatch(storage.Snapshot{}, batch)
	snap = MergeBatch(snap, batch)
	if len(snap.Transactions) != 2 {
		t.Errorf("re-import should append, not dedupe: got %d", len(snap.Transactions))
	}
}

func TestMergeBatchUpsertsCardMeta(t *testing.T) {
	snap := storage.Snapshot{
		CardMeta: []core.CardMeta{{
			ID:       "m1",
			Month:    "2024-03",
			Card:     "8458",
			Paid:     core.PaidNo,
			PaidDate: "2024-03-10",
			Notes:    "old note",
		}},
	}
	batch := importer.Batch{
		CardMeta: []core.CardMeta{
			{Month: "2024-03", Card: "8458", Paid: core.PaidYes},
			{Month: "2024-03", Card: "1111", Paid: core.PaidNo},
		},
	}

	merged := MergeBatch(snap, batch)
	if len(merged.CardMeta) != 2 {
		t.Fatalf("want 2 card meta entries, got %d", len(merged.CardMeta))
	}

	updated := merged.CardMeta[0]
	if updated.ID != "m1" {
		t.Errorf("upsert must preserve the existing id, got %q", updated.ID)
	}
	if updated.Paid != core.PaidYes {
		t.Errorf("non-empty incoming field must win, got %q", updated.Paid)
	}
	if updated.PaidDate != "2024-03-10" || updated.Notes != "old note" {
		t.Errorf("empty incoming fields must keep old values: %+v", updated)
	}

	added := merged.CardMeta[1]
	if added.Card != "1111" || added.ID == "" {
		t.Errorf("new entry must be appended with an id: %+v", added)
	}
}

func TestMergeBatchUpsertsClosingDates(t *testing.T) {
	snap := storage.Snapshot{}
	snap.Settings.SetClosingDate("2024-02", "05/02")

	merged := MergeBatch(snap, importer.Batch{ClosingDates: map[string]string{
		"2024-02": "06/02",
		"2024-03": "05/03",
		"":        "ignored",
	}})

	if got := merged.Settings.ClosingDates["2024-02"]; got != "06/02" {
		t.Errorf("closing date not replaced: %q", got)
	}
	if got := merged.Settings.ClosingDates["2024-03"]; got != "05/03" {
		t.Errorf("closing date not added: %q", got)
	}
	if _, ok := merged.Settings.ClosingDates[""]; ok {
		t.Error("empty month must not be stored")
	}
}
