package models

import "time"

// Attach is a stored blob reference (profile photos, post images).
type Attach struct {
	ID         string    `json:"id"`
	Key        string    `json:"-"`
	Path       string    `json:"path,omitempty"`
	Extension  string    `json:"extension,omitempty"`
	OriginName string    `json:"origin_name,omitempty"`
	Size       int64     `json:"size"`
	Visible    bool      `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
