package db

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nzwalks/backend/internal/config"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

const DuplicateEntry = 1062

const PostgresUniqueViolation = "23505"

var ErrUnsupportedDriver = errors.New("unsupported database driver")

func New(cfg config.Database) (*sqlx.DB, error) {
	var (
		dbConn *sqlx.DB
		err    error
	)

	switch cfg.Driver {
	case DriverMySQL:
		dbConn, err = newMySQL(cfg)
	case DriverPostgres:
		dbConn, err = sqlx.Connect(DriverPostgres, cfg.DSN)
	case DriverSQLite:
		dbConn, err = sqlx.Connect(DriverSQLite, cfg.DSN)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("db connection failed: %w", err)
	}

	if cfg.Driver == DriverSQLite && isInMemory(cfg.DSN) {
		// every pooled connection to an in-memory database is a separate database
		dbConn.SetMaxOpenConns(1)
	} else {
		dbConn.SetMaxIdleConns(cfg.MaxIdleConnections)
		dbConn.SetMaxOpenConns(cfg.MaxOpenConnections)
	}

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	return dbConn, nil
}

func isInMemory(dsn string) bool {
	return dsn == ":memory:" || strings.HasPrefix(dsn, "file::memory:") || strings.Contains(dsn, "mode=memory")
}

func newMySQL(cfg config.Database) (*sqlx.DB, error) {
	location, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("time load location failed: %w", err)
	}
	conf := mysql.NewConfig()
	conf.Net = cfg.Net
	conf.Addr = cfg.Server
	conf.User = cfg.User
	conf.Passwd = cfg.Password
	conf.DBName = cfg.DBName
	conf.Timeout = cfg.Timeout
	conf.Loc = location
	conf.ParseTime = true
	// RowsAffected counts matched rows, not changed ones
	conf.ClientFoundRows = true

	return sqlx.Connect(DriverMySQL, conf.FormatDSN())
}

// IsDuplicateEntry reports whether err is a unique or primary key violation
// raised by any of the supported drivers.
func IsDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == DuplicateEntry
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == PostgresUniqueViolation
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	return false
}
