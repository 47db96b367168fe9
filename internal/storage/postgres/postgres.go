package postgres

import (
	"context"
	"errors"
	"time"
	"yamdb/proj/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Storage struct {
	Conn *pgxpool.Pool
}

const (
	ErrConflictCode   = "23505"
	ErrForeignKeyCode = "23503"
)

func New(ctx context.Context, storagePath string, maxConns int, maxConnIdleTime time.Duration) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(storagePath)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = int32(maxConns)
	cfg.MaxConnIdleTime = maxConnIdleTime
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Storage{Conn: pool}, nil
}

func (s *Storage) Close() {
	s.Conn.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.Conn.Ping(ctx)
}

// TranslateErr maps driver errors onto the storage sentinels.
func TranslateErr(err error) error {
	if err == nil {
		return nil
	}
	var pgxErr *pgconn.PgError
	switch {
	case errors.As(err, &pgxErr) && pgxErr.Code == ErrConflictCode:
		return &storage.ConflictError{Constraint: pgxErr.ConstraintName}
	case errors.As(err, &pgxErr) && pgxErr.Code == ErrForeignKeyCode:
		return storage.ErrNotFound
	case errors.Is(err, pgx.ErrNoRows):
		return storage.ErrNotFound
	}
	return err
}

// WithTx runs fn inside a transaction, committing only when fn succeeds.
func WithTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
