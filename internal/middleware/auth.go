package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "context"  // context carries deadlines into store lookups
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming
    "time"     // expiry checks and lookup timeouts

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/Godsaptarshifrtw/subscription-device-api/internal/repository"
    "github.com/Godsaptarshifrtw/subscription-device-api/internal/utils"
)

// Authenticate returns an Echo middleware that accepts either of the two
// identity proofs and stores the resulting Identity in the request context:
//
//	Authorization: Bearer <jwt>      – validated by signature and expiry
//	Authorization: Session <token>   – looked up in the session store
//
// Both failure modes collapse to a 401 with a generic message.  An expired
// bearer token is indistinguishable from a forged one, and an expired
// session is indistinguishable from an unknown token.
func Authenticate(secret string, users *repository.UserRepo, sessions *repository.SessionRepo) echo.MiddlewareFunc {
    // Bearer subjects are emails; resolving the numeric id costs one
    // primary-store lookup, paid only when a handler asks for it.
    resolve := func(ctx context.Context, email string) (uint64, error) {
        u, err := users.GetByEmail(ctx, email)
        if err != nil {
            return 0, err
        }
        return u.ID, nil
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            switch {
            case strings.HasPrefix(auth, "Bearer "):
                raw := strings.TrimPrefix(auth, "Bearer ")
                // Signature, signing method and expiry are all checked in
                // one place; any failure yields the same error.
                email, err := utils.ParseAccessToken(secret, raw)
                if err != nil {
                    return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
                }
                c.Set(identityKey, Identity(BearerIdentity{Email: email, Resolve: resolve}))
                c.Set("email", email)
                return next(c)

            case strings.HasPrefix(auth, "Session "):
                token := strings.TrimPrefix(auth, "Session ")
                ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
                defer cancel()
                sess, err := sessions.GetByToken(ctx, token)
                if err != nil || !sess.Active(time.Now().UTC()) {
                    return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
                }
                c.Set(identityKey, Identity(SessionIdentity{Session: sess}))
                return next(c)

            default:
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing credentials"})
            }
        }
    }
}
