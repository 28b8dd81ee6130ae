package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-classroom/pkg/cache"
	"github.com/noah-isme/sma-classroom/pkg/config"
	"github.com/noah-isme/sma-classroom/pkg/database"
)

// OpenStore builds the backend selected by cfg.Storage.Backend. The returned
// close function releases any connection the backend holds.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (KeyValueStore, func() error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	noop := func() error { return nil }

	var (
		store   KeyValueStore
		closeFn = noop
	)
	switch cfg.Storage.Backend {
	case config.StorageMemory:
		store = NewMemoryStore()
	case config.StorageFile, "":
		fs, err := NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return nil, noop, err
		}
		store = fs
	case config.StorageRedis:
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, fmt.Errorf("connect redis: %w", err)
		}
		rs := NewRedisStore(client, logger)
		store, closeFn = rs, rs.Close
	case config.StoragePostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, noop, fmt.Errorf("connect postgres: %w", err)
		}
		ps := NewPostgresStore(db)
		if err := ps.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		store, closeFn = ps, db.Close
	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	logger.Info("storage backend ready", zap.String("backend", cfg.Storage.Backend))
	return WithPrefix(store, cfg.Storage.KeyPrefix), closeFn, nil
}
