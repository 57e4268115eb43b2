package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Godsaptarshifrtw/subscription-device-api/internal/utils"
)

// Session mirrors the 'sessions' table in the dedicated session store.
// A session is an immutable server-side identity proof: it is created at
// login, read on every request that presents its token, and removed by an
// explicit logout.  There is no update path.
type Session struct {
	ID         uint64    `json:"session_id"`
	UserID     uint64    `json:"user_id"`
	Token      string    `json:"token"`
	IPAddress  string    `json:"ip_address"`
	DeviceInfo string    `json:"device_info"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// Active reports whether the session is still valid at the given instant.
// Expiry is lazy: rows are never flagged, they simply stop satisfying this
// predicate.  Every read path must go through Active rather than comparing
// timestamps inline.
func (s Session) Active(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// SessionRepo persists sessions in the session store, a database separate
// from the primary store.  It never touches user rows; callers that need
// the owning user validated perform that read against the primary store
// first, as a logically separate (non-atomic) step.
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

const sessionCols = "id,user_id,token,ip_address,device_info,expires_at,created_at"

// Create generates an opaque random token, persists the session with
// expires_at = created_at + ttl, and returns the full record including the
// plaintext token.  The token is the credential; it travels to the client
// exactly once and is never written to a log.
func (r *SessionRepo) Create(ctx context.Context, userID uint64, ip, deviceInfo string, ttl time.Duration) (Session, error) {
	token, err := utils.NewSessionToken()
	if err != nil {
		return Session{}, err
	}
	// Truncate to DATETIME resolution so the stored pair keeps the exact
	// created_at + ttl relationship after a round trip.
	createdAt := time.Now().UTC().Truncate(time.Second)
	s := Session{
		UserID:     userID,
		Token:      token,
		IPAddress:  ip,
		DeviceInfo: deviceInfo,
		ExpiresAt:  createdAt.Add(ttl),
		CreatedAt:  createdAt,
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO sessions (user_id, token, ip_address, device_info, expires_at, created_at) VALUES (?,?,?,?,?,?)",
		s.UserID, s.Token, s.IPAddress, s.DeviceInfo, s.ExpiresAt, s.CreatedAt)
	if err != nil {
		return Session{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Session{}, err
	}
	s.ID = uint64(id)
	return s, nil
}

// GetByToken fetches a session by exact token match.  It deliberately does
// not filter by expiry; callers that need "active" semantics check
// Session.Active themselves.  Returns ErrNotFound when no row matches.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (Session, error) {
	var s Session
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+sessionCols+" FROM sessions WHERE token=? LIMIT 1",
		token).
		Scan(&s.ID, &s.UserID, &s.Token, &s.IPAddress, &s.DeviceInfo, &s.ExpiresAt, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return Session{}, ErrNotFound
	}
	return s, err
}

// ListActiveForUser returns the user's sessions whose expiry lies in the
// future.  Row order is whatever the database yields; callers must not
// rely on it.
func (r *SessionRepo) ListActiveForUser(ctx context.Context, userID uint64) ([]Session, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+sessionCols+" FROM sessions WHERE user_id=? AND expires_at > ?",
		userID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.Token, &s.IPAddress, &s.DeviceInfo, &s.ExpiresAt, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteByToken removes the session row if present and reports whether a
// row was removed.  Deleting an already-deleted token is safe and simply
// reports false.
func (r *SessionRepo) DeleteByToken(ctx context.Context, token string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM sessions WHERE token=?", token)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteExpired purges sessions whose expiry is at or before now.  Only the
// optional background sweeper calls this; read paths never depend on it and
// keep treating expiry as a computed predicate.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at <= ?", now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
