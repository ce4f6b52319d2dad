package model

import "time"

// User represents a principal as stored in the `users` table.  Username is
// the stable identity and the subject of issued access tokens.
// PasswordHash is the bcrypt digest and is never serialized.
type User struct {
	Username     string     `json:"id_username"`  // users.username
	PasswordHash string     `json:"-"`            // users.password_hash
	Email        string     `json:"email"`        // users.email (unique)
	Role         string     `json:"role"`         // users.role (free-text label)
	IsActive     bool       `json:"status"`       // users.is_active
	CreatedAt    time.Time  `json:"time_created"` // users.created_at
	UpdatedAt    *time.Time `json:"time_updated"` // users.updated_at (nullable)
}
