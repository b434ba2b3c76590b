package models

import "time"

type Favorite struct {
	UserID  string    `json:"user_id"`
	Pokemon string    `json:"pokemon"` // canonical key
	Note    string    `json:"note,omitempty"`
	AddedAt time.Time `json:"added_at"`
}
