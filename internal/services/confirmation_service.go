package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/apperr"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/i18n"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/repository"
)

const codeRateLimitPrefix = "confirm_limit:"

// ConfirmationService issues and checks the emailed confirmation codes.
// Issued codes are recorded in the relational ledger; Redis only throttles
// how often an address may request one.
type ConfirmationService struct {
	codes        repository.ConfirmationRepository
	redisClient  *redis.Client
	msg          *i18n.Service
	codeTTL      time.Duration
	limitPerHour int
	logger       *zap.SugaredLogger
}

func NewConfirmationService(
	codes repository.ConfirmationRepository,
	redisClient *redis.Client,
	msg *i18n.Service,
	codeTTL time.Duration,
	limitPerHour int,
	logger *zap.SugaredLogger,
) *ConfirmationService {
	return &ConfirmationService{
		codes:        codes,
		redisClient:  redisClient,
		msg:          msg,
		codeTTL:      codeTTL,
		limitPerHour: limitPerHour,
		logger:       logger,
	}
}

// Issue generates a fresh 6-digit code for the address, records it in the
// ledger and hands it to dispatch for delivery. Issuing supersedes any prior
// unused code for the same address.
func (s *ConfirmationService) Issue(ctx context.Context, address string, lang i18n.Lang, dispatch func(code string) error) error {
	if err := s.checkRateLimit(ctx, address, lang); err != nil {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate confirmation code: %w", err)
	}
	if err := s.codes.Insert(ctx, address, code); err != nil {
		return err
	}
	if err := dispatch(code); err != nil {
		s.logger.Errorw("failed to dispatch confirmation code", "address", address, "error", err)
		return apperr.New(apperr.ErrInternal, s.msg.Message("internal.error", lang))
	}
	return nil
}

// Check validates the submitted code against the newest unused one and
// consumes it. A consumed or superseded code never passes twice.
func (s *ConfirmationService) Check(ctx context.Context, address, code string, lang i18n.Lang) error {
	latest, err := s.codes.Latest(ctx, address)
	if err != nil {
		return apperr.New(apperr.ErrCodeInvalid, s.msg.Message("confirm.code.invalid", lang))
	}
	if latest.Code != code {
		s.logger.Infow("confirmation code mismatch", "address", address)
		return apperr.New(apperr.ErrCodeInvalid, s.msg.Message("confirm.code.invalid", lang))
	}
	if time.Since(latest.CreatedAt) > s.codeTTL {
		return apperr.New(apperr.ErrCodeExpired, s.msg.Message("confirm.code.expired", lang))
	}
	ok, err := s.codes.Consume(ctx, latest.ID)
	if err != nil {
		return err
	}
	if !ok {
		// lost the race against a concurrent check
		return apperr.New(apperr.ErrCodeInvalid, s.msg.Message("confirm.code.invalid", lang))
	}
	return nil
}

func (s *ConfirmationService) checkRateLimit(ctx context.Context, address string, lang i18n.Lang) error {
	if s.redisClient == nil {
		return nil
	}
	key := codeRateLimitPrefix + address
	count, err := s.redisClient.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to increment code rate limit: %w", err)
	}
	if count == 1 {
		if _, err := s.redisClient.Expire(ctx, key, time.Hour).Result(); err != nil {
			return fmt.Errorf("failed to set expiry for code rate limit: %w", err)
		}
	} else if count > int64(s.limitPerHour) {
		s.redisClient.Decr(ctx, key)
		return apperr.New(apperr.ErrValidation, s.msg.Message("confirm.code.limit", lang))
	}
	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
