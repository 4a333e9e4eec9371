package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/merchant-guide/internal/config"
)

// Schema creates the transcripts table if it does not exist.
const Schema = `
CREATE TABLE IF NOT EXISTS transcripts (
	session_id   UUID        NOT NULL,
	seq          BIGINT      NOT NULL,
	line         TEXT        NOT NULL,
	kind         TEXT        NOT NULL,
	answer       TEXT        NOT NULL,
	error        TEXT        NOT NULL DEFAULT '',
	processed_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (session_id, seq)
)`

// Connect creates a single connection pool.
func Connect(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	connStr := BuildConnString(cfg)

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	poolCfg.MinConns = int32(cfg.MinConns)
	poolCfg.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// EnsureSchema creates the tables the transcript writer needs.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("create transcripts table: %w", err)
	}
	return nil
}
