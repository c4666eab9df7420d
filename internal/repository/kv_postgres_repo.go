package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

type PostgresKVRepository struct {
	db DBTX
}

func NewPostgresKVRepository(db DBTX) *PostgresKVRepository {
	return &PostgresKVRepository{db: db}
}

func (r *PostgresKVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM kv_entries WHERE key = $1`
	var value []byte
	if err := r.db.QueryRow(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (r *PostgresKVRepository) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
			updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, key, value)
	return err
}

func (r *PostgresKVRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM kv_entries WHERE key = $1`
	_, err := r.db.Exec(ctx, query, key)
	return err
}
