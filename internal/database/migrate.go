package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate applies all pending migrations for driver. It uses its own
// connection because closing the migrator closes the underlying database.
func Migrate(driver, dsn string) error {
	name, err := sqlDriverName(driver)
	if err != nil {
		return err
	}

	if err := ensureDir(driver, dsn); err != nil {
		return err
	}

	migrateDB, err := sql.Open(name, dsn)
	if err != nil {
		return fmt.Errorf("opening migration database: %w", err)
	}
	defer migrateDB.Close()

	var target migratedb.Driver

	switch driver {
	case DriverPostgres:
		target, err = migratepgx.WithInstance(migrateDB, &migratepgx.Config{})
	case DriverSQLite:
		target, err = migratesqlite.WithInstance(migrateDB, &migratesqlite.Config{})
	}

	if err != nil {
		return fmt.Errorf("creating %s migration driver: %w", driver, err)
	}

	src, err := iofs.New(migrationsFS, path.Join("migrations", driver))
	if err != nil {
		return fmt.Errorf("creating iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, target)
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}
