package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/apperr"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/i18n"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/models"
)

func userActor(profileID string) *Actor {
	return &Actor{ProfileID: profileID, Username: profileID + "@example.com", Roles: []models.Role{models.RoleUser}}
}

func adminActor() *Actor {
	return &Actor{ProfileID: "admin-1", Username: "admin@example.com", Roles: []models.Role{models.RoleUser, models.RoleAdmin}}
}

func TestPostCreateAndRead(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	created, err := e.post.Create(ctx, "owner-1", PostCreateRequest{
		Title: "First post", Content: "hello world",
	}, i18n.LangEN)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Empty(t, created.Content)

	// content only ships on the detail read
	detail, err := e.post.FullDetails(ctx, created.ID, i18n.LangEN)
	require.NoError(t, err)
	assert.Equal(t, "hello world", detail.Content)

	_, err = e.post.FullDetails(ctx, "missing", i18n.LangEN)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, "post not found", apperr.Message(err, ""))
}

func TestPostUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("owner can update", func(t *testing.T) {
		e := newTestEnv(t)
		created, err := e.post.Create(ctx, "owner-1", PostCreateRequest{Title: "Old title"}, i18n.LangEN)
		require.NoError(t, err)

		updated, err := e.post.Update(ctx, created.ID, userActor("owner-1"), PostUpdateRequest{Title: "New title"}, i18n.LangEN)
		require.NoError(t, err)
		assert.Equal(t, "New title", updated.Title)
	})

	t.Run("stranger cannot update", func(t *testing.T) {
		e := newTestEnv(t)
		created, err := e.post.Create(ctx, "owner-1", PostCreateRequest{Title: "Old title"}, i18n.LangEN)
		require.NoError(t, err)

		_, err = e.post.Update(ctx, created.ID, userActor("owner-2"), PostUpdateRequest{Title: "Hijack"}, i18n.LangEN)
		require.ErrorIs(t, err, apperr.ErrForbidden)
		assert.Equal(t, "you are not allowed to update this post", apperr.Message(err, ""))
	})

	t.Run("admin can update anything", func(t *testing.T) {
		e := newTestEnv(t)
		created, err := e.post.Create(ctx, "owner-1", PostCreateRequest{Title: "Old title"}, i18n.LangEN)
		require.NoError(t, err)

		updated, err := e.post.Update(ctx, created.ID, adminActor(), PostUpdateRequest{Title: "Moderated"}, i18n.LangEN)
		require.NoError(t, err)
		assert.Equal(t, "Moderated", updated.Title)
	})
}

func TestPostDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner delete hides the post", func(t *testing.T) {
		e := newTestEnv(t)
		created, err := e.post.Create(ctx, "owner-1", PostCreateRequest{Title: "Bye"}, i18n.LangEN)
		require.NoError(t, err)

		ack, err := e.post.Delete(ctx, created.ID, userActor("owner-1"), i18n.LangEN)
		require.NoError(t, err)
		assert.Equal(t, "post was deleted successfully", ack.Message)

		_, err = e.post.FullDetails(ctx, created.ID, i18n.LangEN)
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		e := newTestEnv(t)
		created, err := e.post.Create(ctx, "owner-1", PostCreateRequest{Title: "Keep"}, i18n.LangEN)
		require.NoError(t, err)

		_, err = e.post.Delete(ctx, created.ID, userActor("owner-2"), i18n.LangEN)
		require.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("admin can delete anything", func(t *testing.T) {
		e := newTestEnv(t)
		created, err := e.post.Create(ctx, "owner-1", PostCreateRequest{Title: "Gone"}, i18n.LangEN)
		require.NoError(t, err)

		_, err = e.post.Delete(ctx, created.ID, adminActor(), i18n.LangEN)
		require.NoError(t, err)
	})
}

func TestPostListsAndFilter(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	a, err := e.post.Create(ctx, "owner-1", PostCreateRequest{Title: "Go tips"}, i18n.LangEN)
	require.NoError(t, err)
	_, err = e.post.Create(ctx, "owner-1", PostCreateRequest{Title: "Travel notes"}, i18n.LangEN)
	require.NoError(t, err)
	_, err = e.post.Create(ctx, "owner-2", PostCreateRequest{Title: "More go tips"}, i18n.LangEN)
	require.NoError(t, err)

	mine, err := e.post.ProfilePosts(ctx, "owner-1", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, mine.TotalCount)

	found, err := e.post.Filter(ctx, PostFilterRequest{Query: "go tips"}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, found.TotalCount)

	// the excluded post never shows up in its own similar list
	found, err = e.post.Filter(ctx, PostFilterRequest{Query: "go tips", ExceptID: a.ID}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, found.TotalCount)

	similar, err := e.post.Similar(ctx, SimilarPostRequest{ExceptID: a.ID}, i18n.LangEN)
	require.NoError(t, err)
	for _, p := range similar {
		assert.NotEqual(t, a.ID, p.ID)
	}
}
