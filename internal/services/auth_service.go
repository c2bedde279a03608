package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/apperr"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/auth"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/email"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/events"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/i18n"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/models"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/repository"
)

// AuthService owns the account lifecycle: registration, email verification,
// login and password reset.
type AuthService struct {
	profiles      repository.ProfileRepository
	roles         repository.RoleRepository
	confirmations *ConfirmationService
	attaches      *AttachService
	jwt           *auth.Manager
	sender        *email.Sender
	publisher     *events.Publisher
	msg           *i18n.Service
	baseURL       string
	passwordMin   int
	logger        *zap.SugaredLogger
}

func NewAuthService(
	profiles repository.ProfileRepository,
	roles repository.RoleRepository,
	confirmations *ConfirmationService,
	attaches *AttachService,
	jwt *auth.Manager,
	sender *email.Sender,
	publisher *events.Publisher,
	msg *i18n.Service,
	baseURL string,
	passwordMin int,
	logger *zap.SugaredLogger,
) *AuthService {
	return &AuthService{
		profiles:      profiles,
		roles:         roles,
		confirmations: confirmations,
		attaches:      attaches,
		jwt:           jwt,
		sender:        sender,
		publisher:     publisher,
		msg:           msg,
		baseURL:       baseURL,
		passwordMin:   passwordMin,
		logger:        logger,
	}
}

// Register creates a profile in IN_REGISTRATION and emails the verification
// link. A previous registration stuck in IN_REGISTRATION under the same
// username is purged so the address can start over; any other existing
// profile is a conflict.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest, lang i18n.Lang) (*Ack, error) {
	if err := validateReq(req, s.msg, lang); err != nil {
		return nil, err
	}
	if len(req.Password) < s.passwordMin {
		return nil, apperr.New(apperr.ErrValidation, s.msg.Message("password.too.short", lang, s.passwordMin))
	}

	existing, err := s.profiles.FindByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.Status != models.StatusInRegistration {
			s.logger.Warnw("profile already exists", "profileID", existing.ID)
			return nil, apperr.New(apperr.ErrConflict, s.msg.Message("email.phone.exists", lang))
		}
		if err := s.profiles.Purge(ctx, existing.ID); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	profile := &models.Profile{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Username: req.Username,
		Password: string(hash),
		Status:   models.StatusInRegistration,
		Visible:  true,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	if err := s.roles.Create(ctx, profile.ID, models.RoleUser); err != nil {
		return nil, err
	}

	token, err := s.jwt.IssueRegistrationVerification(profile.ID)
	if err != nil {
		return nil, err
	}
	link := fmt.Sprintf("%s/api/v1/auth/registration/email-verification/%s", s.baseURL, token)
	if err := s.sender.SendRegistrationLink(ctx, req.Username, link, lang); err != nil {
		return nil, apperr.New(apperr.ErrInternal, s.msg.Message("internal.error", lang))
	}

	s.publisher.Publish(ctx, events.TypeProfileRegistered, profile.ID, profile.ID)
	return &Ack{Message: s.msg.Message("email.confirm.sent", lang)}, nil
}

// VerifyRegistration consumes the emailed token and activates the profile,
// returning a ready-to-use session.
func (s *AuthService) VerifyRegistration(ctx context.Context, token string, lang i18n.Lang) (*LoginResult, error) {
	profileID, err := s.jwt.VerifyRegistration(token)
	if err != nil {
		return nil, apperr.New(apperr.ErrToken, s.msg.Message("token.invalid.expired", lang))
	}
	profile, err := s.findProfile(ctx, profileID, lang)
	if err != nil {
		return nil, err
	}
	if profile.Status != models.StatusInRegistration {
		s.logger.Infow("email verification failed", "profileID", profileID)
		return nil, apperr.New(apperr.ErrValidation, s.msg.Message("verification.failed", lang))
	}
	if err := s.profiles.UpdateStatus(ctx, profileID, models.StatusActive); err != nil {
		return nil, err
	}
	return s.loginResult(ctx, profile)
}

// Login checks the password before the status so a blocked caller cannot
// probe whether credentials are right.
func (s *AuthService) Login(ctx context.Context, req LoginRequest, lang i18n.Lang) (*LoginResult, error) {
	if err := validateReq(req, s.msg, lang); err != nil {
		return nil, err
	}
	profile, err := s.profiles.FindByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Infow("login failed", "username", req.Username)
		return nil, apperr.New(apperr.ErrCredential, s.msg.Message("wrong.password.username", lang))
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(req.Password)) != nil {
		s.logger.Infow("login failed", "username", req.Username)
		return nil, apperr.New(apperr.ErrCredential, s.msg.Message("wrong.password.username", lang))
	}
	if profile.Status != models.StatusActive {
		s.logger.Warnw("login with wrong status", "username", req.Username, "status", profile.Status)
		return nil, apperr.New(apperr.ErrStatus, s.msg.Message("wrong.status", lang))
	}
	return s.loginResult(ctx, profile)
}

// ResetPassword emails a confirmation code to an active profile.
func (s *AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest, lang i18n.Lang) (*Ack, error) {
	if err := validateReq(req, s.msg, lang); err != nil {
		return nil, err
	}
	profile, err := s.activeProfileByUsername(ctx, req.Username, lang)
	if err != nil {
		return nil, err
	}
	err = s.confirmations.Issue(ctx, profile.Username, lang, func(code string) error {
		return s.sender.SendPasswordResetCode(ctx, profile.Username, code, lang)
	})
	if err != nil {
		return nil, err
	}
	return &Ack{Message: s.msg.Message("reset.password.username.sent", lang)}, nil
}

// ResetPasswordConfirm consumes the code and writes the new password hash.
func (s *AuthService) ResetPasswordConfirm(ctx context.Context, req ResetPasswordConfirmRequest, lang i18n.Lang) (*Ack, error) {
	if err := validateReq(req, s.msg, lang); err != nil {
		return nil, err
	}
	if len(req.Password) < s.passwordMin {
		return nil, apperr.New(apperr.ErrValidation, s.msg.Message("password.too.short", lang, s.passwordMin))
	}
	profile, err := s.activeProfileByUsername(ctx, req.Username, lang)
	if err != nil {
		return nil, err
	}
	if err := s.confirmations.Check(ctx, profile.Username, req.Code, lang); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	ok, err := s.profiles.UpdatePassword(ctx, profile.ID, string(hash))
	if err != nil {
		return nil, err
	}
	if !ok {
		// profile was blocked or deleted between the code check and the write
		return nil, apperr.New(apperr.ErrStatus, s.msg.Message("wrong.status", lang))
	}
	return &Ack{Message: s.msg.Message("reset.password.success", lang)}, nil
}

func (s *AuthService) activeProfileByUsername(ctx context.Context, username string, lang i18n.Lang) (*models.Profile, error) {
	profile, err := s.profiles.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Infow("profile not found", "username", username)
		return nil, apperr.New(apperr.ErrNotFound, s.msg.Message("profile.not.found", lang))
	}
	if profile.Status != models.StatusActive {
		s.logger.Infow("wrong status", "username", username, "status", profile.Status)
		return nil, apperr.New(apperr.ErrStatus, s.msg.Message("wrong.status", lang))
	}
	return profile, nil
}

func (s *AuthService) findProfile(ctx context.Context, id string, lang i18n.Lang) (*models.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		s.logger.Infow("profile not found", "profileID", id)
		return nil, apperr.New(apperr.ErrNotFound, s.msg.Message("profile.not.found", lang))
	}
	return profile, nil
}

func (s *AuthService) loginResult(ctx context.Context, profile *models.Profile) (*LoginResult, error) {
	roles, err := s.roles.Roles(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	token, err := s.jwt.IssueSession(profile.ID, profile.Username, roles)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Name:     profile.Name,
		Username: profile.Username,
		Roles:    roles,
		Token:    token,
		Photo:    s.attaches.Payload(ctx, profile.PhotoID),
	}, nil
}
