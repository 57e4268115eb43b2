package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Godsaptarshifrtw/subscription-device-api/internal/repository"
	"github.com/Godsaptarshifrtw/subscription-device-api/internal/utils"
)

const testSecret = "unit-test-secret"

// run sends a request with the given Authorization header through the
// Authenticate middleware and reports the status code plus whether the
// inner handler observed an Identity.
func run(t *testing.T, authorization string) (int, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	sawIdentity := false
	next := func(c echo.Context) error {
		_, sawIdentity = IdentityFrom(c)
		return c.NoContent(http.StatusOK)
	}
	mw := Authenticate(testSecret, &repository.UserRepo{}, &repository.SessionRepo{})
	if err := mw(next)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec.Code, sawIdentity
}

func TestAuthenticateMissingHeader(t *testing.T) {
	code, saw := run(t, "")
	if code != http.StatusUnauthorized || saw {
		t.Fatalf("got (%d, %v), want (401, false)", code, saw)
	}
}

func TestAuthenticateRejectsGarbageBearer(t *testing.T) {
	code, saw := run(t, "Bearer definitely.not.valid")
	if code != http.StatusUnauthorized || saw {
		t.Fatalf("got (%d, %v), want (401, false)", code, saw)
	}
}

func TestAuthenticateRejectsExpiredBearer(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, "gone@example.com", 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	code, saw := run(t, "Bearer "+tok.Token)
	if code != http.StatusUnauthorized || saw {
		t.Fatalf("got (%d, %v), want (401, false)", code, saw)
	}
}

func TestAuthenticateRejectsWrongKeyBearer(t *testing.T) {
	tok, err := utils.NewAccessToken("some-other-secret", "user@example.com", 30)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	code, saw := run(t, "Bearer "+tok.Token)
	if code != http.StatusUnauthorized || saw {
		t.Fatalf("got (%d, %v), want (401, false)", code, saw)
	}
}

func TestAuthenticateAcceptsValidBearer(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, "user@example.com", 30)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	code, saw := run(t, "Bearer "+tok.Token)
	if code != http.StatusOK || !saw {
		t.Fatalf("got (%d, %v), want (200, true)", code, saw)
	}
}

func TestBearerIdentityResolves(t *testing.T) {
	ident := BearerIdentity{
		Email: "user@example.com",
		Resolve: func(_ context.Context, email string) (uint64, error) {
			if email != "user@example.com" {
				t.Fatalf("resolver got %q", email)
			}
			return 17, nil
		},
	}
	uid, err := ident.UserID(context.Background())
	if err != nil || uid != 17 {
		t.Fatalf("UserID = (%d, %v), want (17, nil)", uid, err)
	}
}

func TestSessionIdentityResolves(t *testing.T) {
	ident := SessionIdentity{Session: repository.Session{
		UserID:    42,
		ExpiresAt: time.Now().Add(time.Hour),
	}}
	uid, err := ident.UserID(context.Background())
	if err != nil || uid != 42 {
		t.Fatalf("UserID = (%d, %v), want (42, nil)", uid, err)
	}
}
