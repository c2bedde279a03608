package services

import "github.com/MuzaffarOrtiqov/vybe-api/internal/models"

// Actor identifies the authenticated caller of a service operation.
type Actor struct {
	ProfileID string
	Username  string
	Roles     []models.Role
}

func (a *Actor) IsAdmin() bool {
	for _, r := range a.Roles {
		if r == models.RoleAdmin {
			return true
		}
	}
	return false
}
