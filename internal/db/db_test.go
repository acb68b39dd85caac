package db_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/nzwalks/backend/internal/config"
	"github.com/nzwalks/backend/internal/db"

	"github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := db.New(config.Database{Driver: "oracle"})
	assert.ErrorIs(t, err, db.ErrUnsupportedDriver)
}

func TestMigrate_SQLite(t *testing.T) {
	dbConn, err := db.New(config.Database{Driver: db.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbConn.Close() })

	require.NoError(t, db.Migrate(dbConn, db.DriverSQLite))
	// already applied
	require.NoError(t, db.Migrate(dbConn, db.DriverSQLite))

	var count int
	require.NoError(t, dbConn.GetContext(context.Background(), &count, `SELECT COUNT(*) FROM regions`))
	assert.Zero(t, count)

	m, err := db.NewMigrate(dbConn, db.DriverSQLite)
	require.NoError(t, err)
	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.EqualValues(t, 1, version)
	assert.False(t, dirty)

	require.NoError(t, m.Down())
	_, _, err = m.Version()
	assert.ErrorIs(t, err, migrate.ErrNilVersion)
}

func TestIsDuplicateEntry(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"mysql duplicate", &mysql.MySQLError{Number: db.DuplicateEntry}, true},
		{"mysql other", &mysql.MySQLError{Number: 1045}, false},
		{"postgres unique violation", &pq.Error{Code: db.PostgresUniqueViolation}, true},
		{"postgres other", &pq.Error{Code: "42P01"}, false},
		{"wrapped", fmt.Errorf("insert: %w", &mysql.MySQLError{Number: db.DuplicateEntry}), true},
		{"plain", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, db.IsDuplicateEntry(tt.err))
		})
	}
}

func TestNew_SQLitePoolSize(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want int
	}{
		{name: "memory", dsn: ":memory:", want: 1},
		{name: "shared memory", dsn: "file:regions?mode=memory&cache=shared", want: 1},
		{name: "file", dsn: filepath.Join(t.TempDir(), "regions.db"), want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbConn, err := db.New(config.Database{
				Driver:             db.DriverSQLite,
				DSN:                tt.dsn,
				MaxIdleConnections: 5,
				MaxOpenConnections: 5,
			})
			require.NoError(t, err)
			t.Cleanup(func() { _ = dbConn.Close() })

			assert.Equal(t, tt.want, dbConn.Stats().MaxOpenConnections)
		})
	}
}
