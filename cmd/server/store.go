package main

import (
	"context"
	"fmt"

	"github.com/saeid-a/FitJourney/internal/config"
	"github.com/saeid-a/FitJourney/internal/database"
	"github.com/saeid-a/FitJourney/internal/repository"
)

// openStore picks the key-value backend named by STORAGE_DRIVER. The
// returned func releases the underlying connection.
func openStore(ctx context.Context, cfg *config.Config) (repository.KVStore, func(), error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.DBUrl)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPostgresKVRepository(pool), pool.Close, nil
	case config.StorageSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		store, err := repository.NewSQLiteKVRepository(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return store, func() { _ = db.Close() }, nil
	case config.StorageMemory:
		return repository.NewMemoryKVRepository(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
