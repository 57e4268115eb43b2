package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"

	"github.com/Godsaptarshifrtw/subscription-device-api/internal/config"
	"github.com/Godsaptarshifrtw/subscription-device-api/internal/database"
	"github.com/Godsaptarshifrtw/subscription-device-api/internal/repository"
	"github.com/Godsaptarshifrtw/subscription-device-api/internal/utils"
)

// Integration tests are opt-in and require TEST_DB_DSN pointing at a
// disposable MySQL database for the primary store.
func openPrimaryTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set; skipping primary store integration tests")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := database.EnsurePrimarySchema(context.Background(), db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	t.Cleanup(func() {
		_, _ = db.Exec("DELETE FROM users")
		_ = db.Close()
	})
	return db
}

func testConfig() config.Config {
	return config.Config{
		JWTSecret:    "integration-test-secret",
		AccessTTLMin: 30,
		BcryptCost:   4,
	}
}

func postLogin(t *testing.T, h *AuthHandler, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("login handler: %v", err)
	}
	return rec
}

func TestLoginWrongPasswordIsGenericAndUnthrottled(t *testing.T) {
	db := openPrimaryTestDB(t)
	users := repository.NewUserRepo(db)
	cfg := testConfig()
	h := NewAuthHandler(cfg, users)

	_, err := users.Create(context.Background(), "Test User", "login@example.com", "", "", "right-password", cfg.BcryptCost)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	// Five wrong passwords in a row: every response must be an identical
	// generic 401 — no lockout, no drift in the message.
	var first string
	for i := 0; i < 5; i++ {
		rec := postLogin(t, h, "login@example.com", fmt.Sprintf("wrong-%d", i))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: status = %d, want 401", i, rec.Code)
		}
		if i == 0 {
			first = rec.Body.String()
			if !strings.Contains(first, "incorrect email or password") {
				t.Fatalf("unexpected body: %s", first)
			}
		} else if rec.Body.String() != first {
			t.Fatalf("attempt %d body diverged: %s vs %s", i, rec.Body.String(), first)
		}
	}

	// An unknown email must be indistinguishable from a wrong password.
	rec := postLogin(t, h, "nobody@example.com", "whatever")
	if rec.Code != http.StatusUnauthorized || rec.Body.String() != first {
		t.Fatalf("unknown email leaked: status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestLoginIssuesBearerToken(t *testing.T) {
	db := openPrimaryTestDB(t)
	users := repository.NewUserRepo(db)
	cfg := testConfig()
	h := NewAuthHandler(cfg, users)

	if _, err := users.Create(context.Background(), "Test User", "bearer@example.com", "", "", "right-password", cfg.BcryptCost); err != nil {
		t.Fatalf("create user: %v", err)
	}

	rec := postLogin(t, h, "bearer@example.com", "right-password")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TokenType != "bearer" {
		t.Fatalf("token_type = %q, want bearer", resp.TokenType)
	}
	sub, err := utils.ParseAccessToken(cfg.JWTSecret, resp.AccessToken)
	if err != nil || sub != "bearer@example.com" {
		t.Fatalf("token subject = (%q, %v)", sub, err)
	}
}
