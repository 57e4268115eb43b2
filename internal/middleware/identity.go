package middleware

// identity.go defines the identity-proof abstraction shared by the two
// authentication mechanisms the API supports.  A request may prove who it
// is with a signed bearer token (stateless, verified by signature) or with
// an opaque session token (stateful, verified against the session store).
// Handlers never care which variant authenticated the request: they depend
// only on the Identity interface placed in the request context.

import (
    "context"

    "github.com/labstack/echo/v4"

    "github.com/Godsaptarshifrtw/subscription-device-api/internal/repository"
)

// identityKey is the echo context key under which the middleware stores
// the resolved Identity.
const identityKey = "identity"

// Identity is the single capability consumers depend on, regardless of
// which credential variant authenticated the request.
type Identity interface {
    // UserID resolves the authenticated user's id.  For session proofs
    // this is a field read; for bearer proofs it may cost a store lookup.
    UserID(ctx context.Context) (uint64, error)
}

// BearerIdentity is the stateless variant: the bearer token carries the
// user's email as its subject claim, so resolving the numeric id requires
// a lookup against the primary store.
type BearerIdentity struct {
    Email   string
    Resolve func(ctx context.Context, email string) (uint64, error)
}

func (b BearerIdentity) UserID(ctx context.Context) (uint64, error) {
    return b.Resolve(ctx, b.Email)
}

// SessionIdentity is the stateful variant: the session row already names
// its owner.
type SessionIdentity struct {
    Session repository.Session
}

func (s SessionIdentity) UserID(context.Context) (uint64, error) {
    return s.Session.UserID, nil
}

// IdentityFrom returns the Identity stored by the Authenticate middleware,
// or false when the request was not authenticated.
func IdentityFrom(c echo.Context) (Identity, bool) {
    id, ok := c.Get(identityKey).(Identity)
    return id, ok
}
