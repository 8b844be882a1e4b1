package auth

import (
	"context"
	"database/sql"

	"github.com/timberpunk/timberpunk/internal/model"
	"github.com/timberpunk/timberpunk/internal/store"
)

// Authenticate verifies an admin's credentials. It returns nil for both an
// unknown email and a wrong password, so callers cannot enumerate accounts.
func Authenticate(ctx context.Context, db *sql.DB, email, password string) (*model.Admin, error) {
	admin, err := store.GetAdminByEmail(ctx, db, email)
	if err != nil {
		return nil, err
	}
	if admin == nil || !VerifyPassword(password, admin.PasswordHash) {
		return nil, nil
	}
	return admin, nil
}
