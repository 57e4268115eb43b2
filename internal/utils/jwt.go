package utils // package utils provides helper functions for token creation and hashing

import (
    "crypto/rand"  // secure random number generation
    "encoding/hex" // hex encoding for opaque session tokens
    "errors"       // sentinel error for failed token validation
    "time"         // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidToken is returned for every bearer token that fails validation.
// A forged signature, an unexpected signing method, a malformed string and
// a past-expiry token are deliberately indistinguishable to callers.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken represents a signed JWT bearer token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp as a time.Time.  Bearer tokens are short‑lived, carried in the
// Authorization header and verified purely by signature and expiry — no
// store lookup and no revocation before natural expiry.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret, the user's email (the subject claim) and a TTL in
// minutes.  The JWT carries standard claims: subject (sub), expiration
// (exp) and issued at (iat).
func NewAccessToken(secret, email string, ttlMin int) (AccessToken, error) {
    now := time.Now().UTC()
    exp := now.Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub": email,
        "exp": exp.Unix(),
        "iat": now.Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies a bearer token against the signing secret and
// returns the subject claim (the user's email).  Validation fails closed:
// any parse failure, signature mismatch, wrong signing method or expired
// token yields ErrInvalidToken and never partial claims.  Expiry is
// exclusive of the issue instant, so a token minted with a zero TTL is
// already invalid.
func ParseAccessToken(secret, raw string) (string, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        // Reject any signing method other than HMAC before touching claims.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return "", ErrInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return "", ErrInvalidToken
    }
    sub, ok := claims["sub"].(string)
    if !ok || sub == "" {
        return "", ErrInvalidToken
    }
    return sub, nil
}

// NewSessionToken returns the opaque credential for a server-side session:
// 32 bytes of cryptographically secure randomness, hex-encoded to 64
// characters.  The token doubles as the lookup key, so it must stay
// unguessable; callers treat it as a secret and never log it.
func NewSessionToken() (string, error) {
    return randomHex(32)
}

// randomHex returns a hex‑encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
    buf := make([]byte, n)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}
