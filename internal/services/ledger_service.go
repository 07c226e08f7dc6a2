// Package services orchestrates ledger operations over the storage layer.
// All mutations follow the same shape: load the affected collection, change
// it in memory, write the whole collection back.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"organizador/internal/core"
	"organizador/internal/importer"
	"organizador/internal/log"
	"organizador/internal/storage"
)

// LedgerService is the single entry point for every ledger mutation and
// query the commands perform.
type LedgerService struct {
	store *storage.Store
	now   func() time.Time
}

func NewLedgerService(store *storage.Store) *LedgerService {
	return &LedgerService{
		store: store,
		now:   time.Now,
	}
}

func (s *LedgerService) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// AddTransaction validates and appends a transaction. When DividedWith names
// a different person the amount is split in two and a mirrored transaction is
// appended for the other participant.
func (s *LedgerService) AddTransaction(ctx context.Context, draft core.Transaction) ([]core.Transaction, error) {
	draft = core.ComputeDerived(draft)
	if draft.Desc == "" || draft.Amount.IsZero() {
		return nil, core.ErrMissingDescAmount
	}
	if draft.Month == "" {
		draft.Month = core.MonthKey(s.now())
	}
	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}

	added := []core.Transaction{draft}
	if draft.DividedWith != "" && draft.DividedWith != draft.Person {
		half, other := core.SplitAmountTwo(draft.Amount)

		mirror := draft
		mirror.ID = uuid.NewString()
		mirror.Person = draft.DividedWith
		mirror.DividedWith = draft.Person
		mirror.Amount = other
		mirror.Notes = appendNote(draft.Notes,
			fmt.Sprintf("Dividido com %s (1/2)", core.DisplayPerson(draft.Person)))

		added[0].Amount = half
		added[0].Notes = appendNote(draft.Notes,
			fmt.Sprintf("Dividido com %s (1/2)", core.DisplayPerson(draft.DividedWith)))
		added = append(added, mirror)
	}

	txs, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return nil, err
	}
	txs = append(txs, added...)
	if err := s.store.SaveTransactions(ctx, txs); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Transaction added",
		"id", draft.ID, log.FieldMonth, draft.Month, "split", len(added) == 2)
	return added, nil
}

// UpdateTransaction replaces the transaction with the same id. Editing never
// re-splits a shared expense; the amount is stored as given.
func (s *LedgerService) UpdateTransaction(ctx context.Context, draft core.Transaction) (core.Transaction, error) {
	draft = core.ComputeDerived(draft)
	if draft.Desc == "" || draft.Amount.IsZero() {
		return core.Transaction{}, core.ErrMissingDescAmount
	}

	txs, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return core.Transaction{}, err
	}
	found := false
	for i := range txs {
		if txs[i].ID == draft.ID {
			txs[i] = draft
			found = true
			break
		}
	}
	if !found {
		return core.Transaction{}, core.ErrTransactionNotFnd
	}
	if err := s.store.SaveTransactions(ctx, txs); err != nil {
		return core.Transaction{}, err
	}
	return draft, nil
}

// RemoveTransaction deletes a transaction by id.
func (s *LedgerService) RemoveTransaction(ctx context.Context, id string) error {
	txs, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return err
	}
	kept := txs[:0]
	found := false
	for _, t := range txs {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return core.ErrTransactionNotFnd
	}
	return s.store.SaveTransactions(ctx, kept)
}

// TogglePaid flips a transaction between OPEN and PAID and returns the new
// status.
func (s *LedgerService) TogglePaid(ctx context.Context, id string) (core.Status, error) {
	txs, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return "", err
	}
	var status core.Status
	found := false
	for i := range txs {
		if txs[i].ID != id {
			continue
		}
		found = true
		if txs[i].Status == core.StatusPaid {
			txs[i].Status = core.StatusOpen
		} else {
			txs[i].Status = core.StatusPaid
		}
		status = txs[i].Status
		break
	}
	if !found {
		return "", core.ErrTransactionNotFnd
	}
	if err := s.store.SaveTransactions(ctx, txs); err != nil {
		return "", err
	}
	return status, nil
}

// ListTransactions loads the ledger and applies the filter.
func (s *LedgerService) ListTransactions(ctx context.Context, f core.Filter) ([]core.Transaction, error) {
	txs, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(txs), nil
}

// SaveCardMeta validates and upserts a per-month card status by (month, card).
func (s *LedgerService) SaveCardMeta(ctx context.Context, meta core.CardMeta) error {
	if err := meta.Validate(); err != nil {
		return err
	}
	all, err := s.store.LoadCardMeta(ctx)
	if err != nil {
		return err
	}
	all = upsertCardMeta(all, meta)
	return s.store.SaveCardMeta(ctx, all)
}

// DeleteCardMeta removes the status entry for (month, card) if present.
func (s *LedgerService) DeleteCardMeta(ctx context.Context, month, card string) error {
	all, err := s.store.LoadCardMeta(ctx)
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, m := range all {
		if m.Month == month && m.Card == card {
			continue
		}
		kept = append(kept, m)
	}
	return s.store.SaveCardMeta(ctx, kept)
}

// SaveExtra validates and appends an extra, assigning an id when missing.
func (s *LedgerService) SaveExtra(ctx context.Context, extra core.Extra) error {
	extra.Person = core.NormalizePerson(extra.Person)
	if extra.Type == "" {
		extra.Type = "Outros"
	}
	if err := extra.Validate(); err != nil {
		return err
	}
	if extra.ID == "" {
		extra.ID = uuid.NewString()
	}
	all, err := s.store.LoadExtras(ctx)
	if err != nil {
		return err
	}
	all = append(all, extra)
	return s.store.SaveExtras(ctx, all)
}

// DeleteExtra removes an extra by id.
func (s *LedgerService) DeleteExtra(ctx context.Context, id string) error {
	all, err := s.store.LoadExtras(ctx)
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, e := range all {
		if e.ID == id {
			continue
		}
		kept = append(kept, e)
	}
	return s.store.SaveExtras(ctx, kept)
}

// SetClosingDate records the closing-date label for a month in settings.
func (s *LedgerService) SetClosingDate(ctx context.Context, month, label string) error {
	if strings.TrimSpace(month) == "" {
		return core.ErrMissingMonth
	}
	settings, err := s.store.LoadSettings(ctx)
	if err != nil {
		return err
	}
	settings.SetClosingDate(strings.TrimSpace(month), strings.TrimSpace(label))
	return s.store.SaveSettings(ctx, settings)
}

// PatchSettings applies a shallow settings patch and persists the result.
func (s *LedgerService) PatchSettings(ctx context.Context, patch core.SettingsPatch) (core.Settings, error) {
	settings, err := s.store.LoadSettings(ctx)
	if err != nil {
		return core.Settings{}, err
	}
	settings = settings.Apply(patch)
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return core.Settings{}, err
	}
	return settings, nil
}

// Settings returns the persisted settings.
func (s *LedgerService) Settings(ctx context.Context) (core.Settings, error) {
	return s.store.LoadSettings(ctx)
}

// Snapshot returns the whole persisted state, for exports and publishing.
func (s *LedgerService) Snapshot(ctx context.Context) (storage.Snapshot, error) {
	return s.store.LoadSnapshot(ctx)
}

// ImportBatch merges an import batch into the ledger and persists everything
// in one database transaction. Returns the merged snapshot.
func (s *LedgerService) ImportBatch(ctx context.Context, batch importer.Batch) (storage.Snapshot, error) {
	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return storage.Snapshot{}, err
	}
	snap = MergeBatch(snap, batch)
	if err := s.store.SaveSnapshot(ctx, snap); err != nil {
		return storage.Snapshot{}, err
	}
	slog.InfoContext(ctx, "Import merged",
		log.FieldRows, batch.Rows,
		"transactions", len(batch.Transactions),
		"extras", len(batch.Extras),
		"cardMeta", len(batch.CardMeta),
		"closingDates", len(batch.ClosingDates))
	return snap, nil
}

func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + " • " + note
}
