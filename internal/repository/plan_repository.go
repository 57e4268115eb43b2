package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

// Plan represents a purchasable subscription plan.  Features is a free-form
// JSON document describing what the plan includes.
type Plan struct {
	ID           uint64
	ProductID    uint64
	Name         string
	Price        float64
	DurationDays int
	Features     json.RawMessage
	IsActive     bool
	CreatedAt    time.Time
}

type PlanRepo struct{ DB *sql.DB }

func NewPlanRepo(db *sql.DB) *PlanRepo { return &PlanRepo{DB: db} }

// Create inserts a plan and fills in its generated fields.
func (r *PlanRepo) Create(ctx context.Context, p *Plan) error {
	features := p.Features
	if len(features) == 0 {
		features = json.RawMessage("null")
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO plans (product_id, name, price, duration_days, features, is_active) VALUES (?,?,?,?,?,?)",
		p.ProductID, p.Name, p.Price, p.DurationDays, []byte(features), p.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at FROM plans WHERE id=?", p.ID).Scan(&p.CreatedAt)
}

// GetByID fetches a plan.  Returns ErrNotFound when no row matches.
func (r *PlanRepo) GetByID(ctx context.Context, id uint64) (Plan, error) {
	var (
		p        Plan
		features []byte
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,product_id,name,price,duration_days,features,is_active,created_at FROM plans WHERE id=? LIMIT 1",
		id).
		Scan(&p.ID, &p.ProductID, &p.Name, &p.Price, &p.DurationDays, &features, &p.IsActive, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return Plan{}, ErrNotFound
	}
	p.Features = json.RawMessage(features)
	return p, err
}
