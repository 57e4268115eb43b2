package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Godsaptarshifrtw/subscription-device-api/internal/config"
	"github.com/Godsaptarshifrtw/subscription-device-api/internal/repository"
)

// SessionHandler implements the store-backed login mechanism.  Sessions
// live in their own database, so validating the owning user (primary
// store) and writing the session row (session store) are two separate
// steps, not one transaction.  A user deleted between the two steps can
// still end up with a session row; the window is accepted.
type SessionHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Sessions *repository.SessionRepo
}

func NewSessionHandler(cfg config.Config, u *repository.UserRepo, s *repository.SessionRepo) *SessionHandler {
	return &SessionHandler{Cfg: cfg, Users: u, Sessions: s}
}

type sessionLoginReq struct {
	UserID uint64 `json:"user_id"`
}

// Login creates a server-side session for a user.  The origin IP and the
// device descriptor come from the request itself — the remote address and
// the User-Agent header — never from client-supplied body fields.  The
// response carries the full session record including the opaque token;
// this is the only time the token leaves the server.
func (h *SessionHandler) Login(c echo.Context) error {
	var req sessionLoginReq
	if err := c.Bind(&req); err != nil || req.UserID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Primary-store read first, session-store write second.
	if _, err := h.Users.GetByID(ctx, req.UserID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	ttl := time.Duration(h.Cfg.SessionTTLHours) * time.Hour
	sess, err := h.Sessions.Create(ctx, req.UserID, c.RealIP(), c.Request().UserAgent(), ttl)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create session failed"})
	}
	return c.JSON(http.StatusCreated, sess)
}

// Me returns the session for a presented token.  A token that matches no
// row and a token whose session has expired both yield 404: expiry is
// checked through the one Active predicate, the same way the active-list
// query filters.
func (h *SessionHandler) Me(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sess, err := h.Sessions.GetByToken(ctx, token)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !sess.Active(time.Now().UTC()) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	}
	return c.JSON(http.StatusOK, sess)
}

// Logout deletes a session by token.  The operation is idempotent: the
// second delete of the same token reports 404 rather than erroring.
func (h *SessionHandler) Logout(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	removed, err := h.Sessions.DeleteByToken(ctx, token)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete session failed"})
	}
	if !removed {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListForUser returns the user's currently-active sessions.  Order is not
// part of the contract.
func (h *SessionHandler) ListForUser(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user_id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sessions, err := h.Sessions.ListActiveForUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if sessions == nil {
		sessions = []repository.Session{}
	}
	return c.JSON(http.StatusOK, sessions)
}
