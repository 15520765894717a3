package bindings

import (
	"context"
	"database/sql"
	"io/fs"
	"path/filepath"
	"testing"

	dbfs "github.com/anirecbot/anirec/db"
	"github.com/anirecbot/anirec/internal/config"
	"github.com/anirecbot/anirec/internal/db"
	"github.com/anirecbot/anirec/internal/logger"
)

func testService(t *testing.T) (*Service, *sql.DB) {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Open(ctx, config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "bindings.db")})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	migrations, err := fs.Sub(dbfs.MigrationsFS, "migrations")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	if err := db.RunMigrate(logger.Init("error", "text"), conn, migrations, "up", nil); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewService(nil, conn), conn
}

func TestSetGetRoundTrip(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	if err := svc.Set(ctx, 42, "alice"); err != nil {
		t.Fatalf("set: %v", err)
	}
	username, ok, err := svc.Get(ctx, 42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || username != "alice" {
		t.Fatalf("expected (alice, true), got (%s, %v)", username, ok)
	}
}

func TestGetAbsent(t *testing.T) {
	svc, _ := testService(t)

	username, ok, err := svc.Get(context.Background(), 999)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || username != "" {
		t.Fatalf("expected absence, got (%s, %v)", username, ok)
	}
}

func TestSetUpsertsInPlace(t *testing.T) {
	svc, conn := testService(t)
	ctx := context.Background()

	if err := svc.Set(ctx, 7, "alice"); err != nil {
		t.Fatalf("first set: %v", err)
	}
	if err := svc.Set(ctx, 7, "bob"); err != nil {
		t.Fatalf("second set: %v", err)
	}

	username, ok, err := svc.Get(ctx, 7)
	if err != nil || !ok {
		t.Fatalf("get: %v ok=%v", err, ok)
	}
	if username != "bob" {
		t.Fatalf("expected latest value bob, got %s", username)
	}

	var count int
	if err := conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM bindings WHERE user_id = 7").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one row, got %d", count)
	}
}

func TestSetRejectsEmptyUsername(t *testing.T) {
	svc, _ := testService(t)

	if err := svc.Set(context.Background(), 1, ""); err == nil {
		t.Fatal("expected error for empty username")
	}
}
