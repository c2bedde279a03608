package models

import "time"

type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	PhotoID   string    `json:"photo_id,omitempty"`
	ProfileID string    `json:"profile_id"`
	Visible   bool      `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// PostDetail is the admin filter projection joining the owning profile.
type PostDetail struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	PhotoID         string    `json:"photo_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	ProfileID       string    `json:"profile_id"`
	ProfileName     string    `json:"profile_name"`
	ProfileUsername string    `json:"profile_username"`
}
