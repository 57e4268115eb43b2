package repository

import (
	"context"
	"database/sql"
	"time"
)

// Subscription ties a user to a plan for a date range.  PaymentID is
// nullable because a subscription row may be created before its first
// payment is recorded.
type Subscription struct {
	ID          uint64
	UserID      uint64
	PlanID      uint64
	StartDate   time.Time
	EndDate     time.Time
	Status      string
	RenewalType string
	PaymentID   sql.NullInt64
	CreatedAt   time.Time
}

type SubscriptionRepo struct{ DB *sql.DB }

func NewSubscriptionRepo(db *sql.DB) *SubscriptionRepo { return &SubscriptionRepo{DB: db} }

// Create inserts a subscription and fills in its generated fields.
func (r *SubscriptionRepo) Create(ctx context.Context, s *Subscription) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO subscriptions (user_id, plan_id, start_date, end_date, status, renewal_type, payment_id) VALUES (?,?,?,?,?,?,?)",
		s.UserID, s.PlanID, s.StartDate, s.EndDate, s.Status, s.RenewalType, s.PaymentID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at FROM subscriptions WHERE id=?", s.ID).Scan(&s.CreatedAt)
}

// GetByID fetches a subscription.  Returns ErrNotFound when no row matches.
func (r *SubscriptionRepo) GetByID(ctx context.Context, id uint64) (Subscription, error) {
	var s Subscription
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,plan_id,start_date,end_date,status,renewal_type,payment_id,created_at FROM subscriptions WHERE id=? LIMIT 1",
		id).
		Scan(&s.ID, &s.UserID, &s.PlanID, &s.StartDate, &s.EndDate, &s.Status, &s.RenewalType, &s.PaymentID, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return Subscription{}, ErrNotFound
	}
	return s, err
}
