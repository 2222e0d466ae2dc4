package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/procat-orm/internal/models"
	"github.com/light-bringer/procat-orm/internal/pkg/clock"
	"github.com/light-bringer/procat-orm/internal/store/gormstore"
)

// Environment variables enabling the PostgreSQL and MySQL integration tests.
const (
	PostgresDSNEnv = "PG_DSN"
	MySQLDSNEnv    = "MYSQL_DSN"
)

// PostgresStore opens a migrated, empty PostgreSQL store. The test is
// skipped when PG_DSN is unset.
func PostgresStore(t *testing.T, clk clock.Clock) *gormstore.Store {
	t.Helper()

	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", PostgresDSNEnv)
	}

	store, err := gormstore.OpenPostgres(context.Background(), dsn, storeOptions(clk))
	require.NoError(t, err, "failed to open postgres")
	prepare(t, store)
	return store
}

// MySQLStore opens a migrated, empty MySQL store. The test is skipped when
// MYSQL_DSN is unset.
func MySQLStore(t *testing.T, clk clock.Clock) *gormstore.Store {
	t.Helper()

	dsn := os.Getenv(MySQLDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", MySQLDSNEnv)
	}
	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err, "invalid %s", MySQLDSNEnv)

	store, err := gormstore.OpenMySQL(context.Background(), cfg, storeOptions(clk))
	require.NoError(t, err, "failed to open mysql")
	prepare(t, store)
	return store
}

// SQLiteStore opens a migrated store on a private in-memory SQLite database.
// It needs no server, so the gorm engine is covered by every test run.
func SQLiteStore(t *testing.T, clk clock.Clock) *gormstore.Store {
	t.Helper()

	store, err := gormstore.Open(sqlite.Open(":memory:"), storeOptions(clk))
	require.NoError(t, err, "failed to open sqlite")

	// Every connection to :memory: sees its own database.
	sqlDB, err := store.SQL()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	prepare(t, store)
	return store
}

func storeOptions(clk clock.Clock) gormstore.Options {
	return gormstore.Options{
		Clock: clk,
		Log:   zerolog.Nop(),
	}
}

func prepare(t *testing.T, store *gormstore.Store) {
	t.Helper()

	require.NoError(t, store.AutoMigrate(context.Background(), models.GormModels()...))
	CleanTables(t, store)
	t.Cleanup(func() {
		CleanTables(t, store)
		store.Close()
	})
}

// CleanTables deletes every row for test isolation.
func CleanTables(t *testing.T, store *gormstore.Store) {
	t.Helper()

	for _, table := range models.TableNames() {
		err := store.DB().Exec("DELETE FROM " + table).Error
		require.NoError(t, err, "failed to clean %s", table)
	}
}
