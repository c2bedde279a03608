package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/apperr"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/i18n"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/models"
)

func seedVideo(t *testing.T, e *testEnv, id, profileID string) {
	t.Helper()
	err := e.videos.Create(context.Background(), &models.Video{
		ID: id, Title: "Clip", Category: "music", VideoKey: "videos/x/" + id + ".mp4",
		Status: models.VideoPublished, ProfileID: profileID, UploadedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
}

func TestCommentAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("adds to an existing video", func(t *testing.T) {
		e := newTestEnv(t)
		seedVideo(t, e, "vid-1", "owner-1")

		comment, err := e.comment.Add(ctx, userActor("watcher-1"), CommentCreateRequest{
			VideoID: "vid-1", Content: "nice one",
		}, i18n.LangEN)
		require.NoError(t, err)
		assert.Equal(t, "watcher-1", comment.ProfileID)
		assert.Equal(t, 0, comment.Likes)

		count, err := e.comment.Count(ctx, "vid-1")
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("rejects an unknown video", func(t *testing.T) {
		e := newTestEnv(t)
		_, err := e.comment.Add(ctx, userActor("watcher-1"), CommentCreateRequest{
			VideoID: "ghost", Content: "hello?",
		}, i18n.LangEN)
		require.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Equal(t, "video not found", apperr.Message(err, ""))
	})
}

func TestCommentLikes(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	seedVideo(t, e, "vid-1", "owner-1")

	comment, err := e.comment.Add(ctx, userActor("watcher-1"), CommentCreateRequest{
		VideoID: "vid-1", Content: "nice one",
	}, i18n.LangEN)
	require.NoError(t, err)

	liked, err := e.comment.Like(ctx, comment.ID, i18n.LangEN)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)

	unliked, err := e.comment.Unlike(ctx, comment.ID, i18n.LangEN)
	require.NoError(t, err)
	assert.Equal(t, 0, unliked.Likes)

	// likes never go below zero
	unliked, err = e.comment.Unlike(ctx, comment.ID, i18n.LangEN)
	require.NoError(t, err)
	assert.Equal(t, 0, unliked.Likes)
}

func TestCommentDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("author can delete", func(t *testing.T) {
		e := newTestEnv(t)
		seedVideo(t, e, "vid-1", "owner-1")
		comment, err := e.comment.Add(ctx, userActor("watcher-1"), CommentCreateRequest{
			VideoID: "vid-1", Content: "oops",
		}, i18n.LangEN)
		require.NoError(t, err)

		require.NoError(t, e.comment.Delete(ctx, comment.ID, userActor("watcher-1"), i18n.LangEN))
		count, err := e.comment.Count(ctx, "vid-1")
		require.NoError(t, err)
		assert.EqualValues(t, 0, count)
	})

	t.Run("stranger sees not-found", func(t *testing.T) {
		e := newTestEnv(t)
		seedVideo(t, e, "vid-1", "owner-1")
		comment, err := e.comment.Add(ctx, userActor("watcher-1"), CommentCreateRequest{
			VideoID: "vid-1", Content: "mine",
		}, i18n.LangEN)
		require.NoError(t, err)

		err = e.comment.Delete(ctx, comment.ID, userActor("watcher-2"), i18n.LangEN)
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("admin can delete any comment", func(t *testing.T) {
		e := newTestEnv(t)
		seedVideo(t, e, "vid-1", "owner-1")
		comment, err := e.comment.Add(ctx, userActor("watcher-1"), CommentCreateRequest{
			VideoID: "vid-1", Content: "spam",
		}, i18n.LangEN)
		require.NoError(t, err)

		require.NoError(t, e.comment.Delete(ctx, comment.ID, adminActor(), i18n.LangEN))
	})
}

func TestVideoMetaAndCounters(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	seedVideo(t, e, "vid-1", "owner-1")

	t.Run("owner updates metadata", func(t *testing.T) {
		updated, err := e.video.UpdateMeta(ctx, "vid-1", userActor("owner-1"), VideoUploadRequest{
			Title: "Renamed", Category: "travel", Status: models.VideoDraft,
		}, i18n.LangEN)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, models.VideoDraft, updated.Status)
	})

	t.Run("stranger cannot update metadata", func(t *testing.T) {
		_, err := e.video.UpdateMeta(ctx, "vid-1", userActor("owner-2"), VideoUploadRequest{
			Title: "Hijack", Category: "spam", Status: models.VideoPublished,
		}, i18n.LangEN)
		require.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("views and likes", func(t *testing.T) {
		require.NoError(t, e.video.IncrementViews(ctx, "vid-1", i18n.LangEN))
		v, err := e.video.Get(ctx, "vid-1", i18n.LangEN)
		require.NoError(t, err)
		assert.EqualValues(t, 1, v.Views)

		v, err = e.video.Like(ctx, "vid-1", i18n.LangEN)
		require.NoError(t, err)
		assert.EqualValues(t, 1, v.Likes)

		v, err = e.video.Unlike(ctx, "vid-1", i18n.LangEN)
		require.NoError(t, err)
		assert.EqualValues(t, 0, v.Likes)

		v, err = e.video.Unlike(ctx, "vid-1", i18n.LangEN)
		require.NoError(t, err)
		assert.EqualValues(t, 0, v.Likes)
	})

	t.Run("status listing", func(t *testing.T) {
		drafts, err := e.video.ByStatus(ctx, models.VideoDraft)
		require.NoError(t, err)
		assert.Len(t, drafts, 1)
	})
}
