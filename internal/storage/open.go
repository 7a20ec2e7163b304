package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/daily-problems/internal/config"
	"github.com/Veraticus/daily-problems/internal/service"
)

var (
	_ service.Storage = (*SQLiteStorage)(nil)
	_ service.Storage = (*PostgresStorage)(nil)
)

// Open connects to the store selected by cfg.Driver. The caller owns the
// returned storage and must Close it.
func Open(ctx context.Context, cfg config.DatabaseConfig) (service.Storage, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		store, err := NewSQLiteStorage(config.ExpandPath(cfg.Path))
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverPostgres:
		store, err := NewPostgresStorage(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
