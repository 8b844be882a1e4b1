package model

import "time"

// Admin represents an administrator account. Email is unique and is the
// identity embedded in issued tokens.
type Admin struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
