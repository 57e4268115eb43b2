package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Godsaptarshifrtw/subscription-device-api/internal/utils"
)

// User mirrors the 'users' table.
type User struct {
	ID           uint64
	Name         string
	Email        string
	Phone        string
	Address      string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = "id,name,email,phone,address,password_hash,is_active,created_at,updated_at"

// Create inserts a user with a freshly hashed password and returns its ID.
// Email uniqueness is enforced by the database; a duplicate key surfaces
// as ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, name, email, phone, address, password string, cost int) (uint64, error) {
	email = strings.TrimSpace(email)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, phone, address, password_hash) VALUES (?,?,?,?,?)",
		name, email, phone, address, hash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by exact email match.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE email=? LIMIT 1",
		strings.TrimSpace(email)).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Address, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (User, error) {
	var u User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id=? LIMIT 1",
		id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Address, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// List returns users ordered by id with offset/limit paging.
func (r *UserRepo) List(ctx context.Context, skip, limit int) ([]User, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userCols+" FROM users ORDER BY id LIMIT ? OFFSET ?",
		limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Address, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Update overwrites the mutable profile fields of a user.  It returns
// ErrNotFound when the id does not exist and ErrEmailExists when the new
// email collides with another account.
func (r *UserRepo) Update(ctx context.Context, id uint64, name, email, phone, address string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, email=?, phone=?, address=? WHERE id=?",
		name, strings.TrimSpace(email), phone, address, id)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEmailExists
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// RowsAffected is also zero when the values did not change, so
		// confirm existence before reporting a missing row.
		var exists int
		if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id=? LIMIT 1", id).Scan(&exists); err != nil {
			if err == sql.ErrNoRows {
				return ErrNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a user row.  Returns whether a row was removed.
func (r *UserRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
