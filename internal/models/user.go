package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user record in the database
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`                 // Primary key
	Username  string    `json:"username" db:"username"`     // Unique username
	Password  string    `json:"-" db:"password"`            // Bcrypt password hash, never serialized
	Nickname  string    `json:"nickname" db:"nickname"`     // Display name
	AvatarURL string    `json:"avatar_url" db:"avatar_url"` // Avatar image URL
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}
