package utils

import (
	"strings"
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("test-secret", "user@example.com", 30)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("empty token string")
	}
	if got := time.Until(tok.Exp); got < 29*time.Minute {
		t.Fatalf("expiry too close: %s", got)
	}
	sub, err := ParseAccessToken("test-secret", tok.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if sub != "user@example.com" {
		t.Fatalf("subject = %q, want user@example.com", sub)
	}
}

func TestZeroTTLTokenIsRejected(t *testing.T) {
	// Expiry is exclusive of the issue instant: a zero-TTL token must be
	// invalid immediately, not one tick later.
	tok, err := NewAccessToken("test-secret", "user@example.com", 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := ParseAccessToken("test-secret", tok.Token); err != ErrInvalidToken {
		t.Fatalf("validate = %v, want ErrInvalidToken", err)
	}
}

func TestParseFailsClosed(t *testing.T) {
	tok, err := NewAccessToken("test-secret", "user@example.com", 30)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	cases := map[string]string{
		"wrong key": mustToken(t, "other-secret", "user@example.com"),
		"malformed": "not.a.jwt",
		"empty":     "",
		"tampered":  tamper(tok.Token),
	}
	for name, raw := range cases {
		if sub, err := ParseAccessToken("test-secret", raw); err != ErrInvalidToken || sub != "" {
			t.Errorf("%s: got (%q, %v), want (\"\", ErrInvalidToken)", name, sub, err)
		}
	}
}

func mustToken(t *testing.T, secret, email string) string {
	t.Helper()
	tok, err := NewAccessToken(secret, email, 30)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return tok.Token
}

// tamper flips one character in the signature segment.
func tamper(raw string) string {
	i := strings.LastIndex(raw, ".") + 1
	b := []byte(raw)
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}
	return string(b)
}

func TestSessionTokenShape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 64; i++ {
		tok, err := NewSessionToken()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(tok) != 64 {
			t.Fatalf("token length = %d, want 64 hex chars", len(tok))
		}
		for _, r := range tok {
			if !strings.ContainsRune("0123456789abcdef", r) {
				t.Fatalf("non-hex rune %q in token", r)
			}
		}
		if seen[tok] {
			t.Fatal("duplicate session token generated")
		}
		seen[tok] = true
	}
}
