// Package queue defines message payloads exchanged over the message broker.
package queue

// PaymentRecordedEvent is published after a payment row is committed.
// It carries enough information for downstream consumers to log, notify,
// or reconcile without querying the primary database.
type PaymentRecordedEvent struct {
	PaymentID      uint64  `json:"payment_id"`
	UserID         uint64  `json:"user_id"`
	SubscriptionID uint64  `json:"subscription_id"`
	Amount         float64 `json:"amount"`
	PaymentMethod  string  `json:"payment_method"`
	Status         string  `json:"status"`
	TransactionID  string  `json:"transaction_id"`
	RecordedAt     string  `json:"recorded_at"`
}
