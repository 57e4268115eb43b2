package database

import (
	"context"
	"database/sql"
	"time"
)

// primarySchema lists the tables of the primary store.  Statements are
// idempotent so the server can run them on every boot.
var primarySchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(120) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(32) NOT NULL DEFAULT '',
		address VARCHAR(255) NOT NULL DEFAULT '',
		password_hash VARCHAR(200) NOT NULL DEFAULT '',
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS plans (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		product_id BIGINT UNSIGNED NOT NULL,
		name VARCHAR(120) NOT NULL,
		price DOUBLE NOT NULL,
		duration_days INT NOT NULL,
		features JSON NULL,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS subscriptions (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id BIGINT UNSIGNED NOT NULL,
		plan_id BIGINT UNSIGNED NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		status VARCHAR(32) NOT NULL,
		renewal_type VARCHAR(32) NOT NULL,
		payment_id BIGINT UNSIGNED NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_subscriptions_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS devices (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id BIGINT UNSIGNED NOT NULL,
		subscription_id BIGINT UNSIGNED NOT NULL,
		imei_number VARCHAR(32) NOT NULL,
		device_type VARCHAR(64) NOT NULL DEFAULT '',
		model VARCHAR(120) NOT NULL DEFAULT '',
		status VARCHAR(32) NOT NULL DEFAULT '',
		added_on DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_devices_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS payments (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id BIGINT UNSIGNED NOT NULL,
		subscription_id BIGINT UNSIGNED NOT NULL,
		amount DOUBLE NOT NULL,
		payment_method VARCHAR(32) NOT NULL,
		status VARCHAR(32) NOT NULL,
		transaction_id VARCHAR(64) NOT NULL,
		payment_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_payments_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// sessionSchema holds the single table of the session store.
var sessionSchema = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id BIGINT UNSIGNED NOT NULL,
		token VARCHAR(128) NOT NULL,
		ip_address VARCHAR(64) NOT NULL,
		device_info VARCHAR(255) NOT NULL,
		expires_at DATETIME NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_sessions_token (token),
		KEY idx_sessions_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsurePrimarySchema creates the primary store tables if they are missing
// and backfills the password_hash column on installations that predate it.
func EnsurePrimarySchema(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	for _, stmt := range primarySchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return ensurePasswordHashColumn(ctx, db)
}

// EnsureSessionSchema creates the sessions table on the session store.
func EnsureSessionSchema(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	for _, stmt := range sessionSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// ensurePasswordHashColumn adds users.password_hash when absent.  Older
// deployments created the users table before credentials moved in-house.
func ensurePasswordHashColumn(ctx context.Context, db *sql.DB) error {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM information_schema.columns
		 WHERE table_schema = DATABASE() AND table_name = 'users' AND column_name = 'password_hash'`).
		Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err = db.ExecContext(ctx,
		`ALTER TABLE users ADD COLUMN password_hash VARCHAR(200) NOT NULL DEFAULT ''`)
	return err
}
