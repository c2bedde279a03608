package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/apperr"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/i18n"
)

func newConfirmationService(codes *fakeConfirmationRepo, ttl time.Duration) *ConfirmationService {
	return NewConfirmationService(codes, nil, i18n.NewService(), ttl, 5, zap.NewNop().Sugar())
}

func TestConfirmationIssueAndCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("issued code passes exactly once", func(t *testing.T) {
		codes := newFakeConfirmationRepo()
		svc := newConfirmationService(codes, 5*time.Minute)

		var delivered string
		err := svc.Issue(ctx, "ali@example.com", i18n.LangEN, func(code string) error {
			delivered = code
			return nil
		})
		require.NoError(t, err)
		require.Len(t, delivered, 6)

		require.NoError(t, svc.Check(ctx, "ali@example.com", delivered, i18n.LangEN))
		err = svc.Check(ctx, "ali@example.com", delivered, i18n.LangEN)
		require.ErrorIs(t, err, apperr.ErrCodeInvalid)
	})

	t.Run("wrong code is rejected", func(t *testing.T) {
		codes := newFakeConfirmationRepo()
		svc := newConfirmationService(codes, 5*time.Minute)

		require.NoError(t, svc.Issue(ctx, "ali@example.com", i18n.LangEN, func(string) error { return nil }))
		err := svc.Check(ctx, "ali@example.com", "not-it", i18n.LangEN)
		require.ErrorIs(t, err, apperr.ErrCodeInvalid)
	})

	t.Run("no code on record", func(t *testing.T) {
		svc := newConfirmationService(newFakeConfirmationRepo(), 5*time.Minute)
		err := svc.Check(ctx, "ghost@example.com", "123456", i18n.LangEN)
		require.ErrorIs(t, err, apperr.ErrCodeInvalid)
	})

	t.Run("expired code is rejected", func(t *testing.T) {
		codes := newFakeConfirmationRepo()
		svc := newConfirmationService(codes, -time.Second)

		var delivered string
		require.NoError(t, svc.Issue(ctx, "ali@example.com", i18n.LangEN, func(code string) error {
			delivered = code
			return nil
		}))
		err := svc.Check(ctx, "ali@example.com", delivered, i18n.LangEN)
		require.ErrorIs(t, err, apperr.ErrCodeExpired)
	})

	t.Run("reissue supersedes the previous code", func(t *testing.T) {
		codes := newFakeConfirmationRepo()
		svc := newConfirmationService(codes, 5*time.Minute)

		var first, second string
		require.NoError(t, svc.Issue(ctx, "ali@example.com", i18n.LangEN, func(code string) error {
			first = code
			return nil
		}))
		require.NoError(t, svc.Issue(ctx, "ali@example.com", i18n.LangEN, func(code string) error {
			second = code
			return nil
		}))

		if first != second {
			err := svc.Check(ctx, "ali@example.com", first, i18n.LangEN)
			require.ErrorIs(t, err, apperr.ErrCodeInvalid)
		}
		require.NoError(t, svc.Check(ctx, "ali@example.com", second, i18n.LangEN))
	})

	t.Run("dispatch failure surfaces as internal", func(t *testing.T) {
		codes := newFakeConfirmationRepo()
		svc := newConfirmationService(codes, 5*time.Minute)

		err := svc.Issue(ctx, "ali@example.com", i18n.LangEN, func(string) error {
			return assert.AnError
		})
		require.ErrorIs(t, err, apperr.ErrInternal)
	})
}
