package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const sqliteKVSchema = `
CREATE TABLE IF NOT EXISTS kv_entries (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at INTEGER NOT NULL
);
`

type SQLiteKVRepository struct {
	db *sql.DB
}

// NewSQLiteKVRepository ensures the kv_entries table exists before returning.
func NewSQLiteKVRepository(ctx context.Context, db *sql.DB) (*SQLiteKVRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("sql db is required")
	}
	if _, err := db.ExecContext(ctx, sqliteKVSchema); err != nil {
		return nil, fmt.Errorf("ensure kv_entries table: %w", err)
	}
	return &SQLiteKVRepository{db: db}, nil
}

func (r *SQLiteKVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (r *SQLiteKVRepository) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, ?, strftime('%s', 'now'))
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value)
	return err
}

func (r *SQLiteKVRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key)
	return err
}
