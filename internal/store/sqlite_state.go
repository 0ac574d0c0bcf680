package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "modernc.org/sqlite"
)

// stateKey is the single fixed key the whole State blob lives under.
const stateKey = "taskState"

// Load reads the persisted blob and unmarshals it. A missing file, missing
// row, or malformed document all fall back to the empty state; startup must
// never fail because of a bad blob.
func (s Store) Load(ctx context.Context) (State, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return EmptyState(), err
	}
	defer db.Close()

	var raw string
	err = db.QueryRowContext(ctx, `SELECT v FROM state_kv WHERE k = ?`, stateKey).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return EmptyState(), nil
		}
		return EmptyState(), err
	}

	var st State
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		// Parse failure is swallowed: a corrupt blob must not take the
		// app down. The next save overwrites it.
		return EmptyState(), nil
	}
	return st.Normalize(), nil
}

// Save serializes the full state and overwrites the previous blob. There is
// no partial write: one key, one document, replaced in a transaction.
func (s Store) Save(ctx context.Context, st State) error {
	raw, err := json.Marshal(st.Normalize())
	if err != nil {
		return err
	}

	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	nowMs := time.Now().UTC().UnixMilli()
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO state_kv(k, v, updated_at_unixms) VALUES(?, ?, ?)`,
		stateKey, string(raw), nowMs,
	); err != nil {
		return err
	}
	return tx.Commit()
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout helps avoid
	// "database is locked" flakiness when a second process peeks at the file.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS state_kv (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL,
		updated_at_unixms INTEGER NOT NULL
	);`)
	return err
}
