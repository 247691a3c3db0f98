package migration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/database"
	"github.com/vfg2006/gads-play-optimizer/internal/config"
)

func TestMigrate_SQLMock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS recommendation_sets").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_recommendation_sets_generated_at").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err = Migrate(context.Background(), &database.Connection{DB: db, Driver: database.DriverPostgres})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_SQLite(t *testing.T) {
	ctx := context.Background()
	conn, err := database.NewConnection(ctx, config.Database{
		Driver: database.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "gads.db"),
	})
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, Migrate(ctx, conn))
	// Idempotente
	require.NoError(t, Migrate(ctx, conn))

	var name string
	err = conn.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'recommendation_sets'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "recommendation_sets", name)
}
