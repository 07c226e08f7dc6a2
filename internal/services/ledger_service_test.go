package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"organizador/internal/core"
	"organizador/internal/importer"
	"organizador/internal/storage"
)

func newTestService(t *testing.T) *LedgerService {
	t.Helper()
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "organizador.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	svc := NewLedgerService(store)
	svc.now = func() time.Time { return time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestAddTransaction(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	added, err := svc.AddTransaction(ctx, core.Transaction{
		Person: "pai",
		Desc:   "Mercado",
		Amount: decimal.RequireFromString("45.00"),
	})
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("want 1 transaction, got %d", len(added))
	}
	if added[0].Month != "2024-03" {
		t.Errorf("month should fall back to the current month, got %q", added[0].Month)
	}
	if added[0].Person != "Pai" {
		t.Errorf("person should be normalized, got %q", added[0].Person)
	}
	if added[0].ID == "" {
		t.Error("id should be assigned")
	}

	txs, err := svc.ListTransactions(ctx, core.Filter{})
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 1 {
		t.Errorf("persisted count: %d", len(txs))
	}
}

func TestAddTransactionRequiresDescAndAmount(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddTransaction(ctx, core.Transaction{Desc: "only desc"})
	if !errors.Is(err, core.ErrMissingDescAmount) {
		t.Errorf("missing amount: got %v", err)
	}
	_, err = svc.AddTransaction(ctx, core.Transaction{Amount: decimal.NewFromInt(10)})
	if !errors.Is(err, core.ErrMissingDescAmount) {
		t.Errorf("missing desc: got %v", err)
	}
}

func TestAddTransactionSplitsSharedExpense(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	added, err := svc.AddTransaction(ctx, core.Transaction{
		Month:       "2024-03",
		Person:      "Pai",
		DividedWith: "mãe",
		Desc:        "Jantar",
		Amount:      decimal.RequireFromString("99.99"),
	})
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if len(added) != 2 {
		t.Fatalf("want 2 transactions, got %d", len(added))
	}

	sum := added[0].Amount.Add(added[1].Amount)
	if !sum.Equal(decimal.RequireFromString("99.99")) {
		t.Errorf("split must conserve the amount, got %s", sum)
	}
	if added[0].Person != "Pai" || added[1].Person != "Mae" {
		t.Errorf("participants: %q / %q", added[0].Person, added[1].Person)
	}
	if added[1].DividedWith != "Pai" {
		t.Errorf("mirror must point back, got %q", added[1].DividedWith)
	}
	if !strings.Contains(added[0].Notes, "Dividido com Mãe (1/2)") {
		t.Errorf("note on first half: %q", added[0].Notes)
	}
	if !strings.Contains(added[1].Notes, "Dividido com Pai (1/2)") {
		t.Errorf("note on second half: %q", added[1].Notes)
	}
}

func TestAddTransactionSamePersonDoesNotSplit(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	added, err := svc.AddTransaction(ctx, core.Transaction{
		Month:       "2024-03",
		Person:      "Pai",
		DividedWith: "pai",
		Desc:        "Assinatura",
		Amount:      decimal.NewFromInt(30),
	})
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("sharing with yourself must not split, got %d", len(added))
	}
	if !added[0].Amount.Equal(decimal.NewFromInt(30)) {
		t.Errorf("amount must stay whole, got %s", added[0].Amount)
	}
}

func TestUpdateTransaction(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	added, err := svc.AddTransaction(ctx, core.Transaction{
		Month: "2024-03", Desc: "Mercado", Amount: decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	edit := added[0]
	edit.Desc = "Mercado (corrigido)"
	edit.Amount = decimal.NewFromInt(110)
	updated, err := svc.UpdateTransaction(ctx, edit)
	if err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}
	if updated.Desc != "Mercado (corrigido)" || !updated.Amount.Equal(decimal.NewFromInt(110)) {
		t.Errorf("update result: %+v", updated)
	}

	txs, err := svc.ListTransactions(ctx, core.Filter{})
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("edit must replace, not append: %d", len(txs))
	}

	edit.ID = "missing"
	if _, err := svc.UpdateTransaction(ctx, edit); !errors.Is(err, core.ErrTransactionNotFnd) {
		t.Errorf("unknown id: got %v", err)
	}
}

func TestRemoveTransaction(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	added, err := svc.AddTransaction(ctx, core.Transaction{
		Month: "2024-03", Desc: "a", Amount: decimal.NewFromInt(1),
	})
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	if err := svc.RemoveTransaction(ctx, added[0].ID); err != nil {
		t.Fatalf("RemoveTransaction: %v", err)
	}
	if err := svc.RemoveTransaction(ctx, added[0].ID); !errors.Is(err, core.ErrTransactionNotFnd) {
		t.Errorf("second removal: got %v", err)
	}
}

func TestTogglePaid(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	added, err := svc.AddTransaction(ctx, core.Transaction{
		Month: "2024-03", Desc: "a", Amount: decimal.NewFromInt(1),
	})
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	status, err := svc.TogglePaid(ctx, added[0].ID)
	if err != nil {
		t.Fatalf("TogglePaid: %v", err)
	}
	if status != core.StatusPaid {
		t.Errorf("first toggle: %q", status)
	}
	status, err = svc.TogglePaid(ctx, added[0].ID)
	if err != nil {
		t.Fatalf("TogglePaid: %v", err)
	}
	if status != core.StatusOpen {
		t.Errorf("second toggle: %q", status)
	}

	if _, err := svc.TogglePaid(ctx, "missing"); !errors.Is(err, core.ErrTransactionNotFnd) {
		t.Errorf("unknown id: got %v", err)
	}
}

func TestSaveCardMetaValidatesAndUpserts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.SaveCardMeta(ctx, core.CardMeta{Month: "2024-03"}); !errors.Is(err, core.ErrMissingMonthCard) {
		t.Errorf("missing card: got %v", err)
	}

	if err := svc.SaveCardMeta(ctx, core.CardMeta{Month: "2024-03", Card: "8458", Paid: core.PaidNo}); err != nil {
		t.Fatalf("SaveCardMeta: %v", err)
	}
	if err := svc.SaveCardMeta(ctx, core.CardMeta{Month: "2024-03", Card: "8458", Paid: core.PaidYes}); err != nil {
		t.Fatalf("SaveCardMeta: %v", err)
	}

	snap, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.CardMeta) != 1 {
		t.Fatalf("upsert should not duplicate, got %d", len(snap.CardMeta))
	}
	if snap.CardMeta[0].Paid != core.PaidYes {
		t.Errorf("paid not updated: %q", snap.CardMeta[0].Paid)
	}
}

func TestSaveExtraAndDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.SaveExtra(ctx, core.Extra{Month: "2024-03"}); !errors.Is(err, core.ErrMissingExtraFields) {
		t.Errorf("invalid extra: got %v", err)
	}

	err := svc.SaveExtra(ctx, core.Extra{
		Month: "2024-03", Person: "mãe", Date: "2024-03-01", Desc: "Emprestimo",
		Amount: decimal.NewFromInt(200),
	})
	if err != nil {
		t.Fatalf("SaveExtra: %v", err)
	}

	snap, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Extras) != 1 {
		t.Fatalf("want 1 extra, got %d", len(snap.Extras))
	}
	saved := snap.Extras[0]
	if saved.Person != "Mae" || saved.Type != "Outros" || saved.ID == "" {
		t.Errorf("extra not normalized: %+v", saved)
	}

	if err := svc.DeleteExtra(ctx, saved.ID); err != nil {
		t.Fatalf("DeleteExtra: %v", err)
	}
	snap, _ = svc.Snapshot(ctx)
	if len(snap.Extras) != 0 {
		t.Errorf("extra not deleted")
	}
}

func TestSetClosingDateAndPatchSettings(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.SetClosingDate(ctx, "  ", "05/03"); !errors.Is(err, core.ErrMissingMonth) {
		t.Errorf("blank month: got %v", err)
	}
	if err := svc.SetClosingDate(ctx, "2024-03", "05/03"); err != nil {
		t.Fatalf("SetClosingDate: %v", err)
	}

	month := "2024-03"
	settings, err := svc.PatchSettings(ctx, core.SettingsPatch{SelectedMonth: &month})
	if err != nil {
		t.Fatalf("PatchSettings: %v", err)
	}
	if settings.SelectedMonth != "2024-03" {
		t.Errorf("patch not applied: %+v", settings)
	}
	if settings.ClosingDates["2024-03"] != "05/03" {
		t.Errorf("closing date lost by patch: %+v", settings.ClosingDates)
	}
}

func TestImportBatchPersistsMerge(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	batch := importer.Batch{
		Transactions: []core.Transaction{{ID: "t1", Month: "2024-03", Desc: "a", Amount: decimal.NewFromInt(1)}},
		CardMeta:     []core.CardMeta{{Month: "2024-03", Card: "8458", Paid: core.PaidYes}},
		ClosingDates: map[string]string{"2024-03": "05/03"},
		Rows:         2,
	}
	if _, err := svc.ImportBatch(ctx, batch); err != nil {
		t.Fatalf("ImportBatch: %v", err)
	}

	snap, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Transactions) != 1 || len(snap.CardMeta) != 1 {
		t.Errorf("merge not persisted: %d/%d", len(snap.Transactions), len(snap.CardMeta))
	}
	if snap.Settings.ClosingDates["2024-03"] != "05/03" {
		t.Errorf("closing dates not persisted: %+v", snap.Settings.ClosingDates)
	}
}
