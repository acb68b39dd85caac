package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nzwalks/backend/internal/config"
	"github.com/nzwalks/backend/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRun_UnsupportedDriver(t *testing.T) {
	cfg := &config.Config{Env: "test", Database: config.Database{Driver: "oracle"}}

	err := run(cfg, zap.NewNop(), make(chan os.Signal))
	assert.ErrorIs(t, err, db.ErrUnsupportedDriver)
}

func TestRun_MigrationFailure(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "regions.db")

	// a half-applied migration leaves the schema dirty and blocks further ups
	seed, err := sqlx.Connect(db.DriverSQLite, dsn)
	require.NoError(t, err)
	seed.MustExec(`CREATE TABLE schema_migrations (version uint64, dirty bool)`)
	seed.MustExec(`INSERT INTO schema_migrations (version, dirty) VALUES (1, 1)`)
	require.NoError(t, seed.Close())

	cfg := &config.Config{
		Env: "test",
		Database: config.Database{
			Driver:             db.DriverSQLite,
			DSN:                dsn,
			MaxIdleConnections: 1,
			MaxOpenConnections: 1,
			AutoMigrate:        true,
		},
	}

	err = run(cfg, zap.NewNop(), make(chan os.Signal))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database migration failed")
}
