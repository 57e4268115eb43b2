package repository

import (
	"context"
	"database/sql"
	"time"
)

// Payment records a single settled or attempted charge against a user's
// subscription.
type Payment struct {
	ID             uint64
	UserID         uint64
	SubscriptionID uint64
	Amount         float64
	PaymentMethod  string
	Status         string
	TransactionID  string
	PaymentDate    time.Time
}

type PaymentRepo struct{ DB *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

// Create inserts a payment and fills in its generated fields.
func (r *PaymentRepo) Create(ctx context.Context, p *Payment) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO payments (user_id, subscription_id, amount, payment_method, status, transaction_id) VALUES (?,?,?,?,?,?)",
		p.UserID, p.SubscriptionID, p.Amount, p.PaymentMethod, p.Status, p.TransactionID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT payment_date FROM payments WHERE id=?", p.ID).Scan(&p.PaymentDate)
}

// GetByID fetches a payment.  Returns ErrNotFound when no row matches.
func (r *PaymentRepo) GetByID(ctx context.Context, id uint64) (Payment, error) {
	var p Payment
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,subscription_id,amount,payment_method,status,transaction_id,payment_date FROM payments WHERE id=? LIMIT 1",
		id).
		Scan(&p.ID, &p.UserID, &p.SubscriptionID, &p.Amount, &p.PaymentMethod, &p.Status, &p.TransactionID, &p.PaymentDate)
	if err == sql.ErrNoRows {
		return Payment{}, ErrNotFound
	}
	return p, err
}
