package models

import "time"

// UserSettings holds per-user preferences. One row per user, lazily
// created with a USD default on first read.
type UserSettings struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpdateUserSettingsRequest struct {
	Currency string `json:"currency" binding:"required,min=3,max=10"`
}
