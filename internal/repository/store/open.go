// Package store selects and opens the film store backend named by STORE_DRIVER.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"filmshelf/internal/config"
	"filmshelf/internal/database"
	"filmshelf/internal/database/migration"
	"filmshelf/internal/repository"
	"filmshelf/internal/repository/memory"
	"filmshelf/internal/repository/objectstore"
	"filmshelf/internal/repository/sqlstore"
	"filmshelf/internal/storage"
)

// Open builds the film store for cfg.StoreDriver. SQL backends are migrated before use.
// The returned close func is never nil.
func Open(ctx context.Context, cfg *config.AppConfig) (repository.FilmRepository, func() error, error) {
	nop := func() error { return nil }

	switch cfg.StoreDriver {
	case config.DriverMemory, "":
		return memory.NewFilmMemory(), nop, nil

	case config.DriverPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		return openSQL(ctx, db, database.Postgres, cfg, cfg.Database.Host)

	case config.DriverSQLite:
		db, err := database.NewSQLite(cfg.SQLite)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		return openSQL(ctx, db, database.SQLite, cfg, cfg.SQLite.Path)

	case config.DriverMinIO:
		objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return nil, nil, fmt.Errorf("open minio: %w", err)
		}
		return objectstore.NewFilmObject(objStore), nop, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func openSQL(ctx context.Context, db *sql.DB, d database.Dialect, cfg *config.AppConfig, host string) (repository.FilmRepository, func() error, error) {
	if err := migration.EnsureMigrated(ctx, db, d.Name, cfg.Location(), host); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return sqlstore.NewFilmSQL(db, d), db.Close, nil
}
