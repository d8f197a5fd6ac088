package repository

import (
	"context"
	"fmt"

	"github.com/termspage/termspage/internal/config"
	"github.com/termspage/termspage/internal/database"
)

// Open connects the backend selected by cfg.Store and returns a ready
// repository. Connection or authentication failures are returned as-is so
// startup paths can treat them as fatal.
func Open(ctx context.Context, cfg *config.Config) (Repository, error) {
	driver, err := cfg.Store.ResolveDriver()
	if err != nil {
		return nil, err
	}
	pool := database.Pool{
		MaxOpen:     cfg.Store.PoolMax,
		MaxIdle:     cfg.Store.PoolMax,
		IdleTimeout: cfg.Store.IdleTimeout,
	}

	switch driver {
	case config.DriverMemory:
		return NewMemoryRepo(), nil

	case config.DriverMongo:
		client, err := database.ConnectMongo(ctx, cfg.Store.URL, cfg.Store.ConnectTimeout, uint64(cfg.Store.PoolMax))
		if err != nil {
			return nil, err
		}
		col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
		repo, err := NewMongoRepo(ctx, client, col)
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return repo, nil

	case config.DriverPostgres, config.DriverSQLite:
		driverName, dsn, dialect := "pgx", cfg.Store.URL, DialectPostgres
		if driver == config.DriverSQLite {
			driverName, dsn, dialect = "sqlite", cfg.Store.SQLiteDSN(), DialectSQLite
		}
		db, err := database.OpenSQL(ctx, driverName, dsn, pool, cfg.Store.ConnectTimeout)
		if err != nil {
			return nil, err
		}
		repo, err := NewSQLRepo(ctx, db, dialect)
		if err != nil {
			db.Close()
			return nil, err
		}
		return repo, nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", driver)
}
