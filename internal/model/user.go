package model

import "time"

// User represents an application user record as stored in the
// `users` table.  Role is either ADMIN (may manage trains, stations,
// routes, crew and journeys) or CUSTOMER (may browse journeys and
// book tickets).
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email (unique)
	PasswordHash string    // users.password_hash (bcrypt)
	Role         string    // users.role: ADMIN | CUSTOMER
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only
// the SHA-256 hash of the token is stored; the raw value goes back
// to the client once and is never persisted.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
