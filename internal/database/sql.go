package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Pool sizes a database/sql connection pool.
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	IdleTimeout time.Duration
}

// OpenSQL opens driverName ("pgx" or "sqlite"), applies pool limits and pings
// within timeout. Caller should call db.Close().
func OpenSQL(ctx context.Context, driverName, dsn string, pool Pool, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driverName, err)
	}
	if pool.MaxOpen > 0 {
		db.SetMaxOpenConns(pool.MaxOpen)
	}
	db.SetMaxIdleConns(pool.MaxIdle)
	if pool.IdleTimeout > 0 {
		db.SetConnMaxIdleTime(pool.IdleTimeout)
	}

	pingCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s ping: %w", driverName, err)
	}
	return db, nil
}
