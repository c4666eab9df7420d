// Package persistence flushes controller state to a key-value store. Storage
// failures are logged and swallowed: the in-memory state stays authoritative
// for the session and the next successful write catches the store up.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/saeid-a/FitJourney/internal/repository"
	"go.uber.org/zap"
)

type Gateway struct {
	store   repository.KVStore
	timeout time.Duration
	logger  *zap.Logger
}

func NewGateway(store repository.KVStore, timeout time.Duration, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{store: store, timeout: timeout, logger: logger}
}

func (g *Gateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

// Load returns the stored bytes, or ok=false when the key is absent or the
// store failed.
func (g *Gateway) Load(ctx context.Context, key string) ([]byte, bool) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	data, err := g.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			g.logger.Error("load from storage failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

func (g *Gateway) Save(ctx context.Context, key string, data []byte) bool {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	if err := g.store.Put(ctx, key, data); err != nil {
		g.logger.Error("save to storage failed", zap.String("key", key), zap.Int("bytes", len(data)), zap.Error(err))
		return false
	}
	return true
}

func (g *Gateway) Remove(ctx context.Context, key string) bool {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	if err := g.store.Delete(ctx, key); err != nil {
		g.logger.Error("remove from storage failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}
