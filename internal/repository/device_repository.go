package repository

import (
	"context"
	"database/sql"
	"time"
)

// Device represents a tracked device bound to a user and a subscription.
type Device struct {
	ID             uint64
	UserID         uint64
	SubscriptionID uint64
	IMEINumber     string
	DeviceType     string
	Model          string
	Status         string
	AddedOn        time.Time
}

type DeviceRepo struct{ DB *sql.DB }

func NewDeviceRepo(db *sql.DB) *DeviceRepo { return &DeviceRepo{DB: db} }

const deviceCols = "id,user_id,subscription_id,imei_number,device_type,model,status,added_on"

// Create inserts a device and fills in its generated fields.
func (r *DeviceRepo) Create(ctx context.Context, d *Device) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO devices (user_id, subscription_id, imei_number, device_type, model, status) VALUES (?,?,?,?,?,?)",
		d.UserID, d.SubscriptionID, d.IMEINumber, d.DeviceType, d.Model, d.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT added_on FROM devices WHERE id=?", d.ID).Scan(&d.AddedOn)
}

// GetByID fetches a device.  Returns ErrNotFound when no row matches.
func (r *DeviceRepo) GetByID(ctx context.Context, id uint64) (Device, error) {
	var d Device
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+deviceCols+" FROM devices WHERE id=? LIMIT 1",
		id).
		Scan(&d.ID, &d.UserID, &d.SubscriptionID, &d.IMEINumber, &d.DeviceType, &d.Model, &d.Status, &d.AddedOn)
	if err == sql.ErrNoRows {
		return Device{}, ErrNotFound
	}
	return d, err
}

// ListByUser returns all devices registered by a user.
func (r *DeviceRepo) ListByUser(ctx context.Context, userID uint64) ([]Device, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+deviceCols+" FROM devices WHERE user_id=?",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Device
	for rows.Next() {
		var d Device
		if err := rows.Scan(&d.ID, &d.UserID, &d.SubscriptionID, &d.IMEINumber, &d.DeviceType, &d.Model, &d.Status, &d.AddedOn); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
