package connector

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/David-Botos/transit-ingress/pkg/config"
)

func newCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "koi.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE cumulative (
		kepid INTEGER, koi_period REAL, koi_duration REAL, koi_depth REAL, koi_kepmag REAL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO cumulative VALUES
		(10797460, 9.488, 0.1226, 615.8, 15.347),
		(10811496, 19.899, NULL, 874.8, 15.436)`)
	require.NoError(t, err)
	return path
}

func openCatalog(t *testing.T, path string) *SQLiteConnector {
	t.Helper()
	cfg := &config.SQLiteConfig{Path: path, Pragmas: []string{"query_only(1)"}, MaxOpenConns: 1, QueryTimeout: time.Minute}
	conn, err := NewSQLiteConnector(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestQueryDataset_SQLite(t *testing.T) {
	conn := openCatalog(t, newCatalog(t))
	require.NoError(t, conn.Validate(context.Background()))

	query, err := TableQuery("cumulative", 0)
	require.NoError(t, err)

	ds, err := QueryDataset(context.Background(), conn, query, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"kepid", "koi_period", "koi_duration", "koi_depth", "koi_kepmag"}, ds.Headers)
	require.Equal(t, 2, ds.Len())
	assert.EqualValues(t, 10797460, ds.Rows[0]["kepid"])
	assert.InDelta(t, 9.488, ds.Rows[0]["koi_period"], 1e-9)
	assert.Nil(t, ds.Rows[1]["koi_duration"])
}

func TestQueryDataset_ReadOnly(t *testing.T) {
	conn := openCatalog(t, newCatalog(t))

	_, err := QueryDataset(context.Background(), conn, "DELETE FROM cumulative RETURNING kepid", time.Second)
	assert.Error(t, err)
}

func TestQueryDataset_BadQuery(t *testing.T) {
	conn := openCatalog(t, newCatalog(t))

	_, err := QueryDataset(context.Background(), conn, "SELECT * FROM missing", time.Second)
	assert.ErrorContains(t, err, "failed to run catalog query")
}

func TestTableQuery(t *testing.T) {
	q, err := TableQuery("catalogs.toi", 10)
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "catalogs"."toi" LIMIT 10`, q)

	q, err = TableQuery(`odd"name`, 0)
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "odd""name"`, q)

	_, err = TableQuery("schema.", 0)
	assert.Error(t, err)
}

func TestParseDriver(t *testing.T) {
	d, err := ParseDriver("PostgreSQL")
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, d)

	_, err = ParseDriver("oracle")
	assert.Error(t, err)
}

func TestFactory_SQLiteFromEnv(t *testing.T) {
	t.Setenv("SQLITE_PATH", newCatalog(t))
	t.Setenv("SQLITE_PRAGMAS", "")

	conn, err := NewFactory(zap.NewNop()).Create(context.Background(), DriverSQLite)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, "sqlite", conn.DriverName())
}

func TestFactory_MissingConfig(t *testing.T) {
	t.Setenv("SQLITE_PATH", "")

	_, err := NewFactory(zap.NewNop()).Create(context.Background(), DriverSQLite)
	assert.ErrorContains(t, err, "SQLITE_PATH")
}
