package migrations

import (
	"context"
	"database/sql"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// moduleRoot is the repository root holding data/sql/migrations.
func moduleRoot() fs.FS {
	return os.DirFS("..")
}

func TestFilesystems_ReturnsPostgresAndSQLite(t *testing.T) {
	filesystems, err := Filesystems(moduleRoot())
	if err != nil {
		t.Fatalf("filesystems: %v", err)
	}
	if len(filesystems) != 2 {
		t.Fatalf("expected 2 filesystems, got %d", len(filesystems))
	}
	seen := map[string]bool{}
	for _, entry := range filesystems {
		matches, globErr := fs.Glob(entry.FS, "*.up.sql")
		if globErr != nil {
			t.Fatalf("glob %s: %v", entry.Dialect, globErr)
		}
		if len(matches) == 0 {
			t.Fatalf("expected %s migration files, got none", entry.Dialect)
		}
		seen[entry.Dialect] = true
	}
	if !seen[DialectPostgres] || !seen[DialectSQLite] {
		t.Fatalf("expected postgres and sqlite filesystems, got %v", seen)
	}
}

func TestFilesystems_RequiresSource(t *testing.T) {
	if _, err := Filesystems(nil); err == nil {
		t.Fatalf("expected error without source filesystem")
	}
}

func TestRegister_UsesValidationTargets(t *testing.T) {
	var calls []string
	reg, err := Register(context.Background(), moduleRoot(), func(_ context.Context, dialect string, label string, _ fs.FS) error {
		calls = append(calls, dialect+":"+label)
		return nil
	}, WithValidationTargets(" SQLite "))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(calls) != 1 || calls[0] != "sqlite:go-hook-notify" {
		t.Fatalf("unexpected registration calls %v", calls)
	}
	if reg.SourceLabel != "go-hook-notify" {
		t.Fatalf("unexpected source label %q", reg.SourceLabel)
	}
}

func TestRegister_RequiresFunction(t *testing.T) {
	if _, err := Register(context.Background(), moduleRoot(), nil); err == nil {
		t.Fatalf("expected error without register function")
	}
}

func TestDialectForDriver(t *testing.T) {
	cases := map[string]string{"sqlite3": DialectSQLite, "postgres": DialectPostgres, "pgx": DialectPostgres}
	for driver, want := range cases {
		got, err := DialectForDriver(driver)
		if err != nil || got != want {
			t.Fatalf("driver %s: expected %s, got %s (%v)", driver, want, got, err)
		}
	}
	if _, err := DialectForDriver("mysql"); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestWebhooksMigrationPair_ExistsForBothDialects(t *testing.T) {
	root := moduleRoot()
	paths := []string{
		"data/sql/migrations/00001_hook_notify_webhooks.up.sql",
		"data/sql/migrations/00001_hook_notify_webhooks.down.sql",
		"data/sql/migrations/sqlite/00001_hook_notify_webhooks.up.sql",
		"data/sql/migrations/sqlite/00001_hook_notify_webhooks.down.sql",
	}
	for _, migrationPath := range paths {
		content, err := fs.ReadFile(root, migrationPath)
		if err != nil {
			t.Fatalf("read migration %s: %v", migrationPath, err)
		}
		if len(content) == 0 {
			t.Fatalf("expected migration %s to have content", migrationPath)
		}
	}
}

func TestSQLiteWebhooksMigration_ApplyAndRollback(t *testing.T) {
	db, err := sql.Open("sqlite3", "file:migrations-webhooks?mode=memory&cache=shared&_foreign_keys=on")
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	defer func() { _ = db.Close() }()

	sqliteMigrations, err := fs.Sub(moduleRoot(), "data/sql/migrations/sqlite")
	if err != nil {
		t.Fatalf("resolve sqlite migrations: %v", err)
	}
	ctx := context.Background()
	if err := execSQLMigration(ctx, db, sqliteMigrations, "00001_hook_notify_webhooks.up.sql"); err != nil {
		t.Fatalf("apply up: %v", err)
	}

	insert := `INSERT INTO webhooks (id, service_key, bot, room) VALUES (?, ?, ?, ?)`
	if _, err := db.ExecContext(ctx, insert, "a", "svc", "{}", `{"room_id":"1","members":[]}`); err != nil {
		t.Fatalf("insert first webhook: %v", err)
	}
	if _, err := db.ExecContext(ctx, insert, "b", "svc", "{}", nil); err == nil {
		t.Fatalf("expected unique service_key violation")
	}

	if err := execSQLMigration(ctx, db, sqliteMigrations, "00001_hook_notify_webhooks.down.sql"); err != nil {
		t.Fatalf("apply down: %v", err)
	}
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='webhooks'`).Scan(&count); err != nil {
		t.Fatalf("query sqlite master: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected webhooks table to be dropped")
	}
}

func execSQLMigration(ctx context.Context, db *sql.DB, fsys fs.FS, filename string) error {
	content, err := fs.ReadFile(fsys, filepath.Clean(filename))
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, string(content))
	return err
}
