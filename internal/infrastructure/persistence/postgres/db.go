package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielPopoola/shelter-api/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolation = "23505"
	pingTimeout     = 5 * time.Second
)

// Executor is the query surface shared by *pgxpool.Pool and pgx.Tx.
type Executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB wraps the shared pool. Repositories query Pool directly and go through
// inTx when a write touches more than one table.
type DB struct {
	Pool   *pgxpool.Pool
	logger *slog.Logger
}

// Connect opens the pool and fails fast when the server is unreachable.
func Connect(ctx context.Context, cfg *config.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	logger = logger.With("component", "postgres", "database", cfg.Name)

	poolCfg, err := cfg.PoolConfig()
	if err != nil {
		return nil, err
	}

	logger.Info("opening connection pool", "host", cfg.Host, "port", cfg.Port)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	db := &DB{Pool: pool, logger: logger}
	if err := db.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("database unreachable", "error", err)
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("database ready", "max_conns", poolCfg.MaxConns, "min_conns", poolCfg.MinConns)
	return db, nil
}

// Ping backs the health endpoint. It never waits longer than pingTimeout.
func (db *DB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return db.Pool.Ping(ctx)
}

func (db *DB) Close() {
	stat := db.Pool.Stat()
	db.logger.Info("closing connection pool",
		"acquired", stat.AcquiredConns(),
		"total", stat.TotalConns(),
	)
	db.Pool.Close()
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolation
}
