package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/venue-simulator/internal/config"
	"github.com/iliyamo/venue-simulator/internal/database"
)

// ErrStoreUnavailable is returned when the configured backend cannot be reached.
var ErrStoreUnavailable = errors.New("snapshot store unavailable")

// Open builds the store selected by cfg.Store.Kind. The returned close
// function releases the backend connection and is never nil.
func Open(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Store.Kind {
	case config.StoreRedis:
		client := config.NewRedisClient(cfg.Redis)
		if client == nil {
			return nil, noop, fmt.Errorf("%w: redis at %s", ErrStoreUnavailable, cfg.Redis.Addr)
		}
		return NewRedisStore(client, cfg.Redis.KeyPrefix), client.Close, nil
	case config.StoreMySQL:
		db, err := database.Open(ctx, cfg.DB)
		if err != nil {
			return nil, noop, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		s := NewMySQLStore(db)
		if err := s.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return s, db.Close, nil
	case config.StoreFile, "":
		return NewFileStore(cfg.Store.Dir), noop, nil
	}
	return nil, noop, fmt.Errorf("unknown store %q", cfg.Store.Kind)
}
