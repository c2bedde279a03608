package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/apperr"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/auth"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/email"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/i18n"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/models"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/repository"
)

// ProfileService covers the signed-in profile operations plus the admin
// surface (search, status change, delete).
type ProfileService struct {
	profiles      repository.ProfileRepository
	roles         repository.RoleRepository
	confirmations *ConfirmationService
	attaches      *AttachService
	jwt           *auth.Manager
	sender        *email.Sender
	msg           *i18n.Service
	passwordMin   int
	logger        *zap.SugaredLogger
}

func NewProfileService(
	profiles repository.ProfileRepository,
	roles repository.RoleRepository,
	confirmations *ConfirmationService,
	attaches *AttachService,
	jwt *auth.Manager,
	sender *email.Sender,
	msg *i18n.Service,
	passwordMin int,
	logger *zap.SugaredLogger,
) *ProfileService {
	return &ProfileService{
		profiles:      profiles,
		roles:         roles,
		confirmations: confirmations,
		attaches:      attaches,
		jwt:           jwt,
		sender:        sender,
		msg:           msg,
		passwordMin:   passwordMin,
		logger:        logger,
	}
}

func (s *ProfileService) UpdateDetail(ctx context.Context, profileID string, req UpdateDetailRequest, lang i18n.Lang) (*Ack, error) {
	if err := validateReq(req, s.msg, lang); err != nil {
		return nil, err
	}
	if err := s.profiles.UpdateName(ctx, profileID, req.Name); err != nil {
		return nil, err
	}
	return &Ack{Message: s.msg.Message("profile.name.updated", lang)}, nil
}

// UpdatePassword verifies the current password, then writes the new hash with
// a conditional update so a concurrent block or delete wins.
func (s *ProfileService) UpdatePassword(ctx context.Context, profileID string, req UpdatePasswordRequest, lang i18n.Lang) (*Ack, error) {
	if err := validateReq(req, s.msg, lang); err != nil {
		return nil, err
	}
	if len(req.NewPassword) < s.passwordMin {
		return nil, apperr.New(apperr.ErrValidation, s.msg.Message("password.too.short", lang, s.passwordMin))
	}
	profile, err := s.findProfile(ctx, profileID, lang)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(req.CurrentPassword)) != nil {
		s.logger.Warnw("password mismatch", "profileID", profileID)
		return nil, apperr.New(apperr.ErrCredential, s.msg.Message("password.not.match", lang))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	ok, err := s.profiles.UpdatePassword(ctx, profileID, string(hash))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.New(apperr.ErrStatus, s.msg.Message("wrong.status", lang))
	}
	return &Ack{Message: s.msg.Message("password.update.success", lang)}, nil
}

// UpdateUsername stages the new login and emails a confirmation code to it.
// The current login stays valid until the code is confirmed.
func (s *ProfileService) UpdateUsername(ctx context.Context, profileID string, req UpdateUsernameRequest, lang i18n.Lang) (*Ack, error) {
	if err := validateReq(req, s.msg, lang); err != nil {
		return nil, err
	}
	_, err := s.profiles.FindByUsername(ctx, req.Username)
	if err == nil {
		s.logger.Infow("username already in use", "username", req.Username)
		return nil, apperr.New(apperr.ErrConflict, s.msg.Message("email.phone.exists", lang))
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	err = s.confirmations.Issue(ctx, req.Username, lang, func(code string) error {
		return s.sender.SendUsernameChangeCode(ctx, req.Username, code, lang)
	})
	if err != nil {
		return nil, err
	}
	if err := s.profiles.UpdateTempUsername(ctx, profileID, req.Username); err != nil {
		return nil, err
	}
	return &Ack{Message: s.msg.Message("confirm.code.sent", lang, req.Username)}, nil
}

// UpdateUsernameConfirm consumes the code, promotes the staged login and
// re-mints the session token under the new username.
func (s *ProfileService) UpdateUsernameConfirm(ctx context.Context, profileID string, req CodeConfirmRequest, lang i18n.Lang) (*UsernameChangeResult, error) {
	if err := validateReq(req, s.msg, lang); err != nil {
		return nil, err
	}
	profile, err := s.findProfile(ctx, profileID, lang)
	if err != nil {
		return nil, err
	}
	if profile.TempUsername == "" {
		return nil, apperr.New(apperr.ErrCodeInvalid, s.msg.Message("confirm.code.invalid", lang))
	}
	if err := s.confirmations.Check(ctx, profile.TempUsername, req.Code, lang); err != nil {
		return nil, err
	}
	ok, err := s.profiles.CommitUsername(ctx, profileID, profile.TempUsername)
	if err != nil {
		return nil, err
	}
	if !ok {
		// another request restaged the username since this code was issued
		return nil, apperr.New(apperr.ErrCodeInvalid, s.msg.Message("confirm.code.invalid", lang))
	}

	roles, err := s.roles.Roles(ctx, profileID)
	if err != nil {
		return nil, err
	}
	token, err := s.jwt.IssueSession(profileID, profile.TempUsername, roles)
	if err != nil {
		return nil, err
	}
	return &UsernameChangeResult{
		Token:   token,
		Message: s.msg.Message("username.update.success", lang),
	}, nil
}

// UpdatePhoto swaps the profile photo and removes the replaced attach.
func (s *ProfileService) UpdatePhoto(ctx context.Context, profileID, photoID string, lang i18n.Lang) (*Ack, error) {
	profile, err := s.findProfile(ctx, profileID, lang)
	if err != nil {
		return nil, err
	}
	if profile.PhotoID != "" && profile.PhotoID != photoID {
		if err := s.attaches.Delete(ctx, profile.PhotoID); err != nil {
			s.logger.Warnw("failed to delete old profile photo", "photoID", profile.PhotoID, "error", err)
		}
	}
	if err := s.profiles.UpdatePhoto(ctx, profileID, photoID); err != nil {
		return nil, err
	}
	return &Ack{Message: s.msg.Message("profile.photo.updated", lang)}, nil
}

// Filter is the admin profile search: name or username substring match, paged.
func (s *ProfileService) Filter(ctx context.Context, req ProfileFilterRequest, page, size int) (*PageResult[models.ProfileDetail], error) {
	page, size = normalizePage(page, size)
	details, total, err := s.profiles.Filter(ctx, req.Query, page*size, size)
	if err != nil {
		return nil, err
	}
	return &PageResult[models.ProfileDetail]{
		Content:    details,
		Page:       page,
		Size:       size,
		TotalCount: total,
	}, nil
}

func (s *ProfileService) ChangeStatus(ctx context.Context, targetID string, req ProfileStatusRequest, lang i18n.Lang) (*Ack, error) {
	if err := validateReq(req, s.msg, lang); err != nil {
		return nil, err
	}
	if _, err := s.findProfile(ctx, targetID, lang); err != nil {
		return nil, err
	}
	if err := s.profiles.UpdateStatus(ctx, targetID, req.Status); err != nil {
		return nil, err
	}
	return &Ack{Message: s.msg.Message("profile.update.success", lang)}, nil
}

// Delete soft-deletes the profile; its posts stay but stop resolving through
// visible-only lookups once the owner is gone.
func (s *ProfileService) Delete(ctx context.Context, targetID string, lang i18n.Lang) (*Ack, error) {
	if _, err := s.findProfile(ctx, targetID, lang); err != nil {
		return nil, err
	}
	if err := s.profiles.SoftDelete(ctx, targetID); err != nil {
		return nil, err
	}
	return &Ack{Message: s.msg.Message("profile.delete.success", lang)}, nil
}

func (s *ProfileService) findProfile(ctx context.Context, id string, lang i18n.Lang) (*models.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		s.logger.Infow("profile not found", "profileID", id)
		return nil, apperr.New(apperr.ErrNotFound, s.msg.Message("profile.not.found", lang))
	}
	return profile, nil
}

func normalizePage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return page, size
}
