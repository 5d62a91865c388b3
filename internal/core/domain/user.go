package domain

import "time"

// User models an account of the identity service.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the authenticated caller resolved once per request from its
// session token. It is read-only for everything downstream of the auth middleware.
type Identity struct {
	UserID    string
	Email     string
	IsAdmin   bool
	SessionID string
	ExpiresAt time.Time
}
