package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/clickgrow/growcore/pkg/config"
)

// OpenStore builds the Store selected by settings.Store.
func OpenStore(ctx context.Context, settings *config.Settings, logger *slog.Logger) (Store, error) {
	var (
		store Store
		err   error
	)
	switch settings.Store {
	case config.StoreMemory:
		return NewMemoryStore(), nil
	case config.StoreSQLite:
		var s *SQLiteStore
		s, err = OpenSQLiteStore(ctx, settings.StorePath, logger)
		store = s
	case config.StoreBolt:
		var s *BoltStore
		s, err = OpenBoltStore(settings.StorePath)
		store = s
	case config.StorePostgres:
		var s *PostgresStore
		s, err = OpenPostgresStore(ctx, settings.PostgresDSN, logger)
		store = s
	default:
		return nil, fmt.Errorf("unknown store backend %q", settings.Store)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Snapshot store opened", "backend", settings.Store)
	return store, nil
}
