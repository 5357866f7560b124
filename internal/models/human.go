package models

import "github.com/google/uuid"

// Human represents a human record in the database
type Human struct {
	ID   uuid.UUID `json:"id" db:"id"`     // Primary key
	Name string    `json:"name" db:"name"` // Human name
}
