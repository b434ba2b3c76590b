package sync

import "time"

const (
	EventFavoriteAdd    = "favorite.add"
	EventFavoriteRemove = "favorite.remove"
)

type FavoriteEvent struct {
	Type    string    `json:"type"` // EventFavoriteAdd or EventFavoriteRemove
	UserID  string    `json:"user_id"`
	Pokemon string    `json:"pokemon"`
	Note    string    `json:"note,omitempty"`
	At      time.Time `json:"at"`
}
