package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load retrieves the snapshot for a key.
// PRE: key is non-empty
// POST: Returns the stored blob, or ErrNotFound if no row exists
func (s *SQLiteStore) Load(ctx context.Context, key string) ([]byte, error) {
	query := "SELECT value FROM snapshot WHERE key = ?"
	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("snapshot %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

// Save persists the snapshot for a key, replacing any previous value.
// PRE: key is non-empty
// POST: The blob is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, key string, value []byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := "INSERT INTO snapshot (key, value, updated_at) VALUES (?, ?, ?) " +
		"ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at"

	_, err = tx.ExecContext(ctx, query,
		key,
		string(value),
		time.Now().Format("2006-01-02T15:04:05.999999999Z07:00"),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes the snapshot for a key.
// PRE: key is non-empty
// POST: No snapshot exists for the key; missing key is not an error
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM snapshot WHERE key = ?", key)
	return err
}
