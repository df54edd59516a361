package models

import "github.com/google/uuid"

// Participant identifies a group member or a direct-expense counterpart.
// Guests are full participants for splitting purposes but cannot log in.
type Participant struct {
	UserID  uuid.UUID `json:"user_id"`
	Name    string    `json:"name"`
	IsGuest bool      `json:"is_guest,omitempty"`
}
