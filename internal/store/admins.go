package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/timberpunk/timberpunk/internal/model"
)

// CreateAdmin creates a new admin account.
func CreateAdmin(ctx context.Context, db *sql.DB, email, passwordHash string) (*model.Admin, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO admins (email, password_hash) VALUES (?, ?)`,
		email, passwordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("creating admin: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting admin id: %w", err)
	}

	return GetAdmin(ctx, db, id)
}

// GetAdmin returns an admin by ID.
func GetAdmin(ctx context.Context, db *sql.DB, id int64) (*model.Admin, error) {
	a := &model.Admin{}
	err := db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM admins WHERE id = ?`, id,
	).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting admin: %w", err)
	}
	return a, nil
}

// GetAdminByEmail returns an admin by exact email match.
func GetAdminByEmail(ctx context.Context, db *sql.DB, email string) (*model.Admin, error) {
	a := &model.Admin{}
	err := db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM admins WHERE email = ?`, email,
	).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting admin by email: %w", err)
	}
	return a, nil
}

// EnsureAdmin looks up the bootstrap admin by email and creates it when
// missing. Returns the admin and whether it was created. Runs once at
// single-process startup, so check-then-create is acceptable.
func EnsureAdmin(ctx context.Context, db *sql.DB, email, passwordHash string) (*model.Admin, bool, error) {
	admin, err := GetAdminByEmail(ctx, db, email)
	if err != nil {
		return nil, false, err
	}
	if admin != nil {
		return admin, false, nil
	}

	admin, err = CreateAdmin(ctx, db, email, passwordHash)
	if err != nil {
		return nil, false, err
	}
	return admin, true, nil
}
