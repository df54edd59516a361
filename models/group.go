package models

import "github.com/google/uuid"

// GroupRef is the slice of group metadata the computation layer needs:
// identity, display name and the group's single currency. Full group records
// (members, roles, timestamps) live upstream.
type GroupRef struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Currency string    `json:"currency"`
}
