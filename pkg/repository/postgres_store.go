package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/clickgrow/growcore/pkg/db"
)

// PostgresStore persists snapshots in the shared snapshots table.
// One row per player key; saves are last-writer-wins upserts.
type PostgresStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewPostgresStore wraps an already migrated connection.
func NewPostgresStore(conn *sqlx.DB, logger *slog.Logger) *PostgresStore {
	return &PostgresStore{db: conn, logger: logger}
}

// OpenPostgresStore connects using dsn, or the DB_* environment when dsn is empty,
// and applies migrations.
func OpenPostgresStore(ctx context.Context, dsn string, logger *slog.Logger) (*PostgresStore, error) {
	cfg := db.NewConfigFromEnv()

	var (
		conn *sqlx.DB
		err  error
	)
	if dsn == "" {
		conn, err = db.Connect(cfg)
	} else {
		conn, err = db.ConnectDSN(dsn, cfg)
	}
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(ctx, conn.DB, db.DialectPostgres, logger); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return NewPostgresStore(conn, logger), nil
}

func (s *PostgresStore) Save(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO snapshots (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		s.logError("save", key, err)
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.GetContext(ctx, &value, `SELECT value FROM snapshots WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.logError("load", key, err)
		return nil, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return value, nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = $1`, key); err != nil {
		s.logError("delete", key, err)
		return fmt.Errorf("delete snapshot %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) logError(op, key string, err error) {
	if s.logger == nil {
		return
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		s.logger.Error("Snapshot query failed",
			"op", op,
			"key", key,
			"pg_code", string(pqErr.Code),
			"pg_error", pqErr.Code.Name(),
		)
		return
	}
	s.logger.Error("Snapshot query failed", "op", op, "key", key, "error", err)
}
