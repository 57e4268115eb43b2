package repository

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/Godsaptarshifrtw/subscription-device-api/internal/database"
)

// Integration tests are opt-in and require SESSION_TEST_DSN pointing at a
// disposable MySQL database, e.g.
//
//	SESSION_TEST_DSN="root@tcp(localhost:3306)/sessions_test?parseTime=true&loc=UTC"
func openSessionTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("SESSION_TEST_DSN")
	if dsn == "" {
		t.Skip("SESSION_TEST_DSN not set; skipping session store integration tests")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := database.EnsureSessionSchema(context.Background(), db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	t.Cleanup(func() {
		_, _ = db.Exec("DELETE FROM sessions")
		_ = db.Close()
	})
	return db
}

func TestSessionCreateGetRoundTrip(t *testing.T) {
	db := openSessionTestDB(t)
	repo := NewSessionRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, 42, "10.0.0.5", "TestAgent/1.0", 12*time.Hour)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Token == "" || created.ID == 0 {
		t.Fatalf("incomplete record: %+v", created)
	}
	if got := created.ExpiresAt.Sub(created.CreatedAt); got != 12*time.Hour {
		t.Fatalf("expires_at - created_at = %s, want 12h", got)
	}

	got, err := repo.GetByToken(ctx, created.Token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UserID != 42 || got.IPAddress != "10.0.0.5" || got.DeviceInfo != "TestAgent/1.0" {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
	if !got.ExpiresAt.Equal(got.CreatedAt.Add(12 * time.Hour)) {
		t.Fatalf("stored expiry drifted: created=%s expires=%s", got.CreatedAt, got.ExpiresAt)
	}
}

func TestSessionGetUnknownToken(t *testing.T) {
	db := openSessionTestDB(t)
	repo := NewSessionRepo(db)

	if _, err := repo.GetByToken(context.Background(), "no-such-token"); err != ErrNotFound {
		t.Fatalf("get = %v, want ErrNotFound", err)
	}
}

func TestSessionDeleteIsIdempotent(t *testing.T) {
	db := openSessionTestDB(t)
	repo := NewSessionRepo(db)
	ctx := context.Background()

	s, err := repo.Create(ctx, 7, "192.0.2.1", "cli", time.Hour)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	removed, err := repo.DeleteByToken(ctx, s.Token)
	if err != nil || !removed {
		t.Fatalf("first delete = (%v, %v), want (true, nil)", removed, err)
	}
	removed, err = repo.DeleteByToken(ctx, s.Token)
	if err != nil || removed {
		t.Fatalf("second delete = (%v, %v), want (false, nil)", removed, err)
	}
}

func TestListActiveExcludesExpired(t *testing.T) {
	db := openSessionTestDB(t)
	repo := NewSessionRepo(db)
	ctx := context.Background()

	// One session already expired, one still live, for the same user.
	expired, err := repo.Create(ctx, 42, "10.0.0.5", "TestAgent/1.0", -time.Hour)
	if err != nil {
		t.Fatalf("create expired: %v", err)
	}
	live, err := repo.Create(ctx, 42, "10.0.0.6", "TestAgent/2.0", time.Hour)
	if err != nil {
		t.Fatalf("create live: %v", err)
	}

	active, err := repo.ListActiveForUser(ctx, 42)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	// Order is unspecified; compare as a set of tokens.
	tokens := make(map[string]bool, len(active))
	for _, s := range active {
		tokens[s.Token] = true
	}
	if tokens[expired.Token] {
		t.Fatal("expired session listed as active")
	}
	if !tokens[live.Token] {
		t.Fatal("live session missing from active list")
	}

	// The store-level point read stays unguarded: the expired row is still
	// there until someone deletes it, but the predicate marks it inactive.
	got, err := repo.GetByToken(ctx, expired.Token)
	if err != nil {
		t.Fatalf("get expired: %v", err)
	}
	if got.Active(time.Now().UTC()) {
		t.Fatal("expired session reported active")
	}
}
