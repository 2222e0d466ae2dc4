package testutil

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/procat-orm/internal/models"
	"github.com/light-bringer/procat-orm/internal/pkg/query"
	"github.com/light-bringer/procat-orm/internal/store/spannerstore"
)

// SpannerEmulatorEnv enables the Spanner integration tests.
const SpannerEmulatorEnv = "SPANNER_EMULATOR_HOST"

// GetTestSpannerDB returns the test Spanner database name. SPANNER_DATABASE
// overrides the default.
func GetTestSpannerDB() string {
	if db := os.Getenv("SPANNER_DATABASE"); db != "" {
		return db
	}
	return "projects/test-project/instances/test-instance/databases/catalog-test"
}

// SpannerClient returns a client on an emulator database with an empty
// schema applied. The test is skipped when no emulator is configured.
func SpannerClient(t *testing.T) *spanner.Client {
	t.Helper()

	if os.Getenv(SpannerEmulatorEnv) == "" {
		t.Skipf("%s not set", SpannerEmulatorEnv)
	}

	ctx := context.Background()
	db := GetTestSpannerDB()
	require.NoError(t, spannerstore.EnsureSchema(ctx, db, models.SpannerDDL()), "failed to prepare schema")

	client, err := spanner.NewClient(ctx, db)
	require.NoError(t, err, "failed to create Spanner client")

	CleanDatabase(t, client)
	t.Cleanup(func() {
		CleanDatabase(t, client)
		client.Close()
	})
	return client
}

// CleanDatabase truncates all tables for test isolation.
func CleanDatabase(t *testing.T, client *spanner.Client) {
	t.Helper()

	var mutations []*spanner.Mutation
	for _, table := range models.SpannerTableNames() {
		mutations = append(mutations, spanner.Delete(table, spanner.AllKeys()))
	}

	_, err := client.Apply(context.Background(), mutations)
	require.NoError(t, err, "failed to clean database")
}

// AssertRowCount asserts the number of rows in a table.
func AssertRowCount(t *testing.T, client *spanner.Client, table string, expectedCount int) {
	t.Helper()

	iter := client.Single().Query(context.Background(), query.From(table).Count().Build())
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "failed to query row count")

	var count int64
	require.NoError(t, row.Columns(&count), "failed to parse count")
	require.Equal(t, int64(expectedCount), count, "unexpected row count in table %s", table)
}
