// Package storage persists the ledger collections in a local SQLite file.
//
// The original contract is a key/value store holding four independent JSON
// documents, each rewritten whole on every mutation. That contract is kept:
// the collections table has one row per document, and every save serializes
// the entire collection. There is deliberately no per-record persistence.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"organizador/internal/core"

	_ "modernc.org/sqlite"
)

const (
	keyTransactions = "transactions"
	keyCardMeta     = "card_meta"
	keyExtras       = "extras"
	keySettings     = "settings"
)

type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	var txs []core.Transaction
	if err := s.loadDocument(ctx, keyTransactions, &txs); err != nil {
		return nil, err
	}
	return core.DeriveAll(txs), nil
}

func (s *Store) SaveTransactions(ctx context.Context, txs []core.Transaction) error {
	return s.save(ctx, keyTransactions, core.DeriveAll(txs))
}

func (s *Store) LoadCardMeta(ctx context.Context) ([]core.CardMeta, error) {
	var meta []core.CardMeta
	if err := s.loadDocument(ctx, keyCardMeta, &meta); err != nil {
		return nil, err
	}
	return meta, nil
}

func (s *Store) SaveCardMeta(ctx context.Context, meta []core.CardMeta) error {
	return s.save(ctx, keyCardMeta, meta)
}

func (s *Store) LoadExtras(ctx context.Context) ([]core.Extra, error) {
	var extras []core.Extra
	if err := s.loadDocument(ctx, keyExtras, &extras); err != nil {
		return nil, err
	}
	return extras, nil
}

func (s *Store) SaveExtras(ctx context.Context, extras []core.Extra) error {
	return s.save(ctx, keyExtras, extras)
}

func (s *Store) LoadSettings(ctx context.Context) (core.Settings, error) {
	var settings core.Settings
	if err := s.loadDocument(ctx, keySettings, &settings); err != nil {
		return core.Settings{}, err
	}
	return settings, nil
}

func (s *Store) SaveSettings(ctx context.Context, settings core.Settings) error {
	return s.save(ctx, keySettings, settings)
}

// Snapshot is the whole persisted state at once. Import batches load it,
// merge in memory and write it back inside one database transaction.
type Snapshot struct {
	Transactions []core.Transaction
	CardMeta     []core.CardMeta
	Extras       []core.Extra
	Settings     core.Settings
}

func (s *Store) LoadSnapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	var err error
	if snap.Transactions, err = s.LoadTransactions(ctx); err != nil {
		return snap, err
	}
	if snap.CardMeta, err = s.LoadCardMeta(ctx); err != nil {
		return snap, err
	}
	if snap.Extras, err = s.LoadExtras(ctx); err != nil {
		return snap, err
	}
	if snap.Settings, err = s.LoadSettings(ctx); err != nil {
		return snap, err
	}
	return snap, nil
}

// SaveSnapshot writes all four documents atomically.
func (s *Store) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	writes := []struct {
		key   string
		value any
	}{
		{keyTransactions, core.DeriveAll(snap.Transactions)},
		{keyCardMeta, snap.CardMeta},
		{keyExtras, snap.Extras},
		{keySettings, snap.Settings},
	}
	for _, w := range writes {
		if err := upsert(ctx, tx, w.key, w.value); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// loadDocument fills dest from the stored JSON document. A missing row or a
// corrupt payload leaves dest empty; only real database failures surface as
// errors. Corruption must never be fatal on load.
func (s *Store) loadDocument(ctx context.Context, key string, dest any) error {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM collections WHERE key = ?`, key).Scan(&payload)
	switch {
	case err == sql.ErrNoRows:
		return nil
	case err != nil:
		return fmt.Errorf("load collection %s: %w", key, err)
	}

	// decode into a scratch value so a corrupt payload cannot leave dest
	// half-filled
	raw := json.RawMessage(payload)
	if !json.Valid(raw) {
		slog.WarnContext(ctx, "Corrupt collection payload, treating as empty", "key", key)
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		slog.WarnContext(ctx, "Collection payload has unexpected shape, treating as empty",
			"key", key, "error", err)
		resetDocument(dest)
	}
	return nil
}

func resetDocument(dest any) {
	switch d := dest.(type) {
	case *[]core.Transaction:
		*d = nil
	case *[]core.CardMeta:
		*d = nil
	case *[]core.Extra:
		*d = nil
	case *core.Settings:
		*d = core.Settings{}
	}
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	if err := upsert(ctx, s.db, key, v); err != nil {
		return err
	}
	slog.DebugContext(ctx, "Collection saved", "key", key)
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsert(ctx context.Context, db execer, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", key, err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO collections (key, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			payload    = excluded.payload,
			updated_at = CURRENT_TIMESTAMP`,
		key, string(payload))
	if err != nil {
		return fmt.Errorf("write collection %s: %w", key, err)
	}
	return nil
}
