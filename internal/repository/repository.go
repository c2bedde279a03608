// Package repository holds the PostgreSQL persistence layer. Every lookup
// honours the visibility flag: soft-deleted rows never come back.
package repository

import (
	"context"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/models"
)

type ProfileRepository interface {
	Create(ctx context.Context, p *models.Profile) error
	FindByID(ctx context.Context, id string) (*models.Profile, error)
	FindByUsername(ctx context.Context, username string) (*models.Profile, error)
	UpdateStatus(ctx context.Context, id string, status models.GeneralStatus) error
	// UpdatePassword writes the new hash only while the profile is still
	// ACTIVE and visible; returns false when the conditional update matched
	// no row.
	UpdatePassword(ctx context.Context, id, hash string) (bool, error)
	UpdateName(ctx context.Context, id, name string) error
	UpdateTempUsername(ctx context.Context, id, username string) error
	// CommitUsername promotes temp_username to username in one conditional
	// statement; returns false if the staged value no longer matches.
	CommitUsername(ctx context.Context, id, tempUsername string) (bool, error)
	UpdatePhoto(ctx context.Context, id, photoID string) error
	SoftDelete(ctx context.Context, id string) error
	// Purge removes a stuck IN_REGISTRATION profile and its roles in one
	// transaction so a fresh registration can proceed.
	Purge(ctx context.Context, id string) error
	Filter(ctx context.Context, query string, offset, limit int) ([]models.ProfileDetail, int64, error)
}

type RoleRepository interface {
	Create(ctx context.Context, profileID string, role models.Role) error
	Roles(ctx context.Context, profileID string) ([]models.Role, error)
	DeleteAll(ctx context.Context, profileID string) error
}

type ConfirmationRepository interface {
	// Insert stores a fresh code for the address, superseding any prior
	// unused codes in the same transaction.
	Insert(ctx context.Context, address, code string) error
	// Latest returns the newest unused code for the address.
	Latest(ctx context.Context, address string) (*models.ConfirmationCode, error)
	// Consume marks a code used; returns false when it was already consumed.
	Consume(ctx context.Context, id string) (bool, error)
}

type PostRepository interface {
	Create(ctx context.Context, p *models.Post) error
	FindByID(ctx context.Context, id string) (*models.Post, error)
	FindByProfile(ctx context.Context, profileID string, offset, limit int) ([]models.Post, int64, error)
	OwnerID(ctx context.Context, postID string) (string, error)
	Update(ctx context.Context, p *models.Post) error
	SoftDelete(ctx context.Context, id string) error
	Filter(ctx context.Context, query, exceptID string, offset, limit int) ([]models.Post, int64, error)
	AdminFilter(ctx context.Context, profileQuery, postQuery string, offset, limit int) ([]models.PostDetail, int64, error)
	Similar(ctx context.Context, exceptID string, limit int) ([]models.Post, error)
}

type VideoRepository interface {
	Create(ctx context.Context, v *models.Video) error
	FindByID(ctx context.Context, id string) (*models.Video, error)
	// UpdateMeta rewrites the descriptive fields; keys and counters are
	// untouched.
	UpdateMeta(ctx context.Context, v *models.Video) error
	All(ctx context.Context) ([]models.Video, error)
	ByStatus(ctx context.Context, status models.VideoStatus) ([]models.Video, error)
	IncrementViews(ctx context.Context, id string) error
	AddLike(ctx context.Context, id string, delta int64) (*models.Video, error)
	Delete(ctx context.Context, id string) error
}

type CommentRepository interface {
	Create(ctx context.Context, c *models.Comment) error
	FindByID(ctx context.Context, id string) (*models.Comment, error)
	ByVideo(ctx context.Context, videoID string) ([]models.Comment, error)
	Count(ctx context.Context, videoID string) (int64, error)
	AddLike(ctx context.Context, id string, delta int) (*models.Comment, error)
	Delete(ctx context.Context, id string) error
	DeleteByVideo(ctx context.Context, videoID string) error
}

type AttachRepository interface {
	Create(ctx context.Context, a *models.Attach) error
	FindByID(ctx context.Context, id string) (*models.Attach, error)
	SoftDelete(ctx context.Context, id string) error
}
