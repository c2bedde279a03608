package models

import "time"

type GeneralStatus string

const (
	StatusInRegistration GeneralStatus = "IN_REGISTRATION"
	StatusActive         GeneralStatus = "ACTIVE"
	StatusBlocked        GeneralStatus = "BLOCKED"
)

type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// Profile is the identity record. Username is the login handle (email-shaped),
// TempUsername stages an unconfirmed username change, Visible is the
// soft-delete flag: invisible profiles are excluded from every lookup.
type Profile struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Username     string        `json:"username"`
	Password     string        `json:"-"`
	Status       GeneralStatus `json:"status"`
	TempUsername string        `json:"-"`
	PhotoID      string        `json:"photo_id,omitempty"`
	Visible      bool          `json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
}

// ProfileDetail is the admin search projection: a profile row plus its post
// count and aggregated role set.
type ProfileDetail struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Username  string        `json:"username"`
	PhotoID   string        `json:"photo_id,omitempty"`
	Status    GeneralStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	PostCount int64         `json:"post_count"`
	Roles     []Role        `json:"roles"`
}
