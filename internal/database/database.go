package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/maze-server/internal/config"
)

//go:embed migrations/*.sql
var Migrations embed.FS

func Connect(ctx context.Context) (*pgxpool.Pool, error) {
	config, err := config.NewPgxpoolConfig()
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	return pool, nil
}

// Migrate applies every pending migration found under migrations/ in fsys and
// reports the resulting schema version. The migrator is closed before
// returning.
func Migrate(url string, fsys fs.FS) (version uint, err error) {
	source, err := iofs.New(fsys, "migrations")
	if err != nil {
		return 0, fmt.Errorf("unable to create migrations iofs: %w", err)
	}
	migrator, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		source.Close()
		return 0, fmt.Errorf("unable to create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := migrator.Close()
		if closeErr := errors.Join(srcErr, dbErr); closeErr != nil && err == nil {
			err = fmt.Errorf("unable to close migrator: %w", closeErr)
		}
	}()

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("failed to migrate database: %w", err)
	}
	version, _, err = migrator.Version()
	if err != nil {
		return 0, fmt.Errorf("failed to check migration version: %w", err)
	}
	return version, nil
}

// ConnectAndMigrate brings the schema up to date, then opens a pool.
func ConnectAndMigrate(ctx context.Context, fsys fs.FS) (*pgxpool.Pool, uint, error) {
	url, err := config.DbURL()
	if err != nil {
		return nil, 0, err
	}
	version, err := Migrate(url, fsys)
	if err != nil {
		return nil, 0, err
	}
	pool, err := Connect(ctx)
	if err != nil {
		return nil, version, err
	}
	return pool, version, nil
}
