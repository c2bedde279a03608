package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/auth"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/email"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/events"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/i18n"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/models"
)

// testEnv wires every service against in-memory fakes. Email delivery,
// Kafka and Redis all run in their disabled modes, so flows that would
// normally leave the process stay fully local.
type testEnv struct {
	profiles *fakeProfileRepo
	roles    *fakeRoleRepo
	codes    *fakeConfirmationRepo
	posts    *fakePostRepo
	videos   *fakeVideoRepo
	comments *fakeCommentRepo
	attaches *fakeAttachRepo

	jwt     *auth.Manager
	auth    *AuthService
	profile *ProfileService
	post    *PostService
	video   *VideoService
	comment *CommentService
	confirm *ConfirmationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zap.NewNop().Sugar()
	msg := i18n.NewService()
	jwtMgr := auth.NewManager("test-secret", time.Hour, 10*time.Minute)
	sender := email.NewSender(email.NewBrevoClient("", "", ""), logger)
	publisher := events.NewPublisher(nil, "", logger)

	e := &testEnv{
		profiles: newFakeProfileRepo(),
		roles:    newFakeRoleRepo(),
		codes:    newFakeConfirmationRepo(),
		posts:    newFakePostRepo(),
		videos:   newFakeVideoRepo(),
		comments: newFakeCommentRepo(),
		attaches: newFakeAttachRepo(),
		jwt:      jwtMgr,
	}
	attachSvc := NewAttachService(e.attaches, nil, msg, time.Hour, logger)
	e.confirm = NewConfirmationService(e.codes, nil, msg, 5*time.Minute, 5, logger)
	e.auth = NewAuthService(e.profiles, e.roles, e.confirm, attachSvc, jwtMgr, sender, publisher,
		msg, "http://localhost:8080", 8, logger)
	e.profile = NewProfileService(e.profiles, e.roles, e.confirm, attachSvc, jwtMgr, sender,
		msg, 8, logger)
	e.post = NewPostService(e.posts, attachSvc, publisher, msg, logger)
	e.video = NewVideoService(e.videos, e.comments, nil, publisher, msg, time.Hour, logger)
	e.comment = NewCommentService(e.comments, e.videos, publisher, msg, logger)
	return e
}

// registerActive drives a profile through registration and verification.
func (e *testEnv) registerActive(t *testing.T, name, username, password string) *models.Profile {
	t.Helper()
	ctx := context.Background()

	_, err := e.auth.Register(ctx, RegisterRequest{Name: name, Username: username, Password: password}, i18n.LangEN)
	require.NoError(t, err)

	profile, err := e.profiles.FindByUsername(ctx, username)
	require.NoError(t, err)

	token, err := e.jwt.IssueRegistrationVerification(profile.ID)
	require.NoError(t, err)
	_, err = e.auth.VerifyRegistration(ctx, token, i18n.LangEN)
	require.NoError(t, err)

	profile, err = e.profiles.FindByUsername(ctx, username)
	require.NoError(t, err)
	return profile
}
