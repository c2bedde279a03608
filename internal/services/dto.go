// Package services implements the application use cases over the repository
// layer. Services return apperr errors carrying already-localized messages;
// the HTTP layer only maps them to status codes.
package services

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/apperr"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/i18n"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/models"
)

var validate = validator.New()

// validateReq runs struct validation and converts failures into apperr
// validation errors. Identity fields carry the "email" tag, so a malformed
// username reports the same message the registration flow always used.
func validateReq(req any, msg *i18n.Service, lang i18n.Lang) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			if fe.Tag() == "email" {
				return apperr.New(apperr.ErrValidation, msg.Message("email.phone.invalid", lang))
			}
		}
		return apperr.New(apperr.ErrValidation, ve.Error())
	}
	return apperr.New(apperr.ErrValidation, err.Error())
}

// Ack is the plain confirmation payload most mutations return.
type Ack struct {
	Message string `json:"message"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Username string `json:"username" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AttachPayload is the blob reference returned inside responses: the stored
// id plus a time-bound read URL.
type AttachPayload struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type LoginResult struct {
	Name     string         `json:"name"`
	Username string         `json:"username"`
	Roles    []models.Role  `json:"roles"`
	Token    string         `json:"token"`
	Photo    *AttachPayload `json:"photo,omitempty"`
}

type ResetPasswordRequest struct {
	Username string `json:"username" validate:"required,email"`
}

type ResetPasswordConfirmRequest struct {
	Username string `json:"username" validate:"required,email"`
	Code     string `json:"code" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateDetailRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

type UpdateUsernameRequest struct {
	Username string `json:"username" validate:"required,email"`
}

type CodeConfirmRequest struct {
	Code string `json:"code" validate:"required"`
}

// UsernameChangeResult carries the re-minted session token: the old token
// still names the previous login, so the client must switch to this one.
type UsernameChangeResult struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

type ProfileFilterRequest struct {
	Query string `json:"query"`
}

type ProfileStatusRequest struct {
	Status models.GeneralStatus `json:"status" validate:"required,oneof=ACTIVE BLOCKED"`
}

type PostCreateRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content"`
	PhotoID string `json:"photo_id"`
}

type PostUpdateRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content"`
	PhotoID string `json:"photo_id"`
}

// PostPayload mirrors the list projection: content is only filled on the
// single-post detail endpoint.
type PostPayload struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Content   string         `json:"content,omitempty"`
	Photo     *AttachPayload `json:"photo,omitempty"`
	CreatedAt string         `json:"created_at"`
}

type PostFilterRequest struct {
	Query    string `json:"query"`
	ExceptID string `json:"except_id"`
}

type PostAdminFilterRequest struct {
	ProfileQuery string `json:"profile_query"`
	PostQuery    string `json:"post_query"`
}

type SimilarPostRequest struct {
	ExceptID string `json:"except_id" validate:"required"`
}

// PageResult is the offset-paged envelope shared by filter endpoints.
type PageResult[T any] struct {
	Content    []T   `json:"content"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalCount int64 `json:"total_count"`
}

type VideoUploadRequest struct {
	Title    string             `json:"title" validate:"required,max=255"`
	Caption  string             `json:"caption"`
	Location string             `json:"location"`
	Category string             `json:"category" validate:"required"`
	Tags     string             `json:"tags"`
	Status   models.VideoStatus `json:"status" validate:"required,oneof=PUBLISHED DRAFT"`
}

type CommentCreateRequest struct {
	VideoID string `json:"video_id" validate:"required"`
	Content string `json:"content" validate:"required,max=2000"`
}
