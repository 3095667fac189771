package migrate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	require.NoError(t, ValidateEmbedded())
}

func TestUpCreatesKVTableOnSQLite(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	ctx := context.Background()
	require.NoError(t, Up(ctx, sqlDB, "sqlite3"))

	_, err = sqlDB.ExecContext(ctx, `INSERT INTO kv_entries (key, value) VALUES (?, ?)`, "k", []byte("v"))
	require.NoError(t, err)

	var value []byte
	require.NoError(t, sqlDB.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, "k").Scan(&value))
	require.Equal(t, "v", string(value))

	// idempotent
	require.NoError(t, Up(ctx, sqlDB, "sqlite3"))
}

func TestRunRequiresDBAndDialect(t *testing.T) {
	require.Error(t, Run(context.Background(), nil, "sqlite3", "up"))
	require.Error(t, MigrateToVersion(context.Background(), nil, "sqlite3", ""))
}

func TestCreateSQLMigrationWritesEveryDialect(t *testing.T) {
	dir := t.TempDir()

	paths, err := CreateSQLMigration(dir, "Add Cart Owner!")
	require.NoError(t, err)
	require.Len(t, paths, len(Dialects))

	for i, dialect := range Dialects {
		require.Equal(t, filepath.Join(dir, dialect), filepath.Dir(paths[i]))
		body, err := os.ReadFile(paths[i])
		require.NoError(t, err)
		require.Contains(t, string(body), "-- add_cart_owner")
	}

	require.NoError(t, ValidateDir(dir))
}

func TestValidateDirDetectsDialectDrift(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "postgres"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sqlite3"), 0o755))
	body := []byte("-- +goose Up\n-- +goose Down\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "postgres", "20250101000000_only_pg.sql"), body, 0o644))

	require.Error(t, ValidateDir(dir))
}

func TestValidateDirRejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	for _, dialect := range Dialects {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, dialect), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, dialect, "bad-name.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))
	}
	require.Error(t, ValidateDir(dir))
}
