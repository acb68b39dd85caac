package db

import (
	"embed"
	"fmt"

	"github.com/nzwalks/backend/pkg/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

//go:embed migrations
var migrations embed.FS

// NewMigrate builds a migrator over the embedded migrations for driver that
// runs on the already opened dbConn. The returned instance must not be
// closed by callers that keep using dbConn: closing it closes the pool too.
func NewMigrate(dbConn *sqlx.DB, driver string) (*migrate.Migrate, error) {
	var (
		instance database.Driver
		err      error
	)

	switch driver {
	case DriverMySQL:
		instance, err = migratemysql.WithInstance(dbConn.DB, &migratemysql.Config{})
	case DriverPostgres:
		instance, err = migratepostgres.WithInstance(dbConn.DB, &migratepostgres.Config{})
	case DriverSQLite:
		instance, err = migratesqlite.WithInstance(dbConn.DB, &migratesqlite.Config{})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
	if err != nil {
		return nil, errors.Wrap(err, "migrate database instance")
	}

	source, err := iofs.New(migrations, "migrations/"+driver)
	if err != nil {
		return nil, errors.Wrap(err, "migrate embedded source")
	}

	m, err := migrate.NewWithInstance("iofs", source, driver, instance)
	if err != nil {
		return nil, errors.Wrap(err, "migrate init")
	}
	m.Log = migrateLogger{}

	return m, nil
}

// Migrate applies all pending migrations.
func Migrate(dbConn *sqlx.DB, driver string) error {
	m, err := NewMigrate(dbConn, driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "migrate up")
	}

	return nil
}

type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...any) {
	logger.Info(fmt.Sprintf(format, v...))
}

func (migrateLogger) Verbose() bool { return false }
