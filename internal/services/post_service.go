package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/apperr"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/events"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/i18n"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/models"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/repository"
)

const similarPostLimit = 5

type PostService struct {
	posts     repository.PostRepository
	attaches  *AttachService
	publisher *events.Publisher
	msg       *i18n.Service
	logger    *zap.SugaredLogger
}

func NewPostService(
	posts repository.PostRepository,
	attaches *AttachService,
	publisher *events.Publisher,
	msg *i18n.Service,
	logger *zap.SugaredLogger,
) *PostService {
	return &PostService{
		posts:     posts,
		attaches:  attaches,
		publisher: publisher,
		msg:       msg,
		logger:    logger,
	}
}

func (s *PostService) Create(ctx context.Context, profileID string, req PostCreateRequest, lang i18n.Lang) (*PostPayload, error) {
	if err := validateReq(req, s.msg, lang); err != nil {
		return nil, err
	}
	post := &models.Post{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Content:   req.Content,
		PhotoID:   req.PhotoID,
		ProfileID: profileID,
		Visible:   true,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	s.publisher.Publish(ctx, events.TypePostCreated, profileID, post.ID)
	return s.toPayload(ctx, post, false), nil
}

// ProfilePosts lists the caller's own posts, newest first.
func (s *PostService) ProfilePosts(ctx context.Context, profileID string, page, size int) (*PageResult[PostPayload], error) {
	page, size = normalizePage(page, size)
	posts, total, err := s.posts.FindByProfile(ctx, profileID, page*size, size)
	if err != nil {
		return nil, err
	}
	return s.pageOf(ctx, posts, page, size, total), nil
}

// FullDetails is the only read that includes the post body.
func (s *PostService) FullDetails(ctx context.Context, postID string, lang i18n.Lang) (*PostPayload, error) {
	post, err := s.findPost(ctx, postID, lang)
	if err != nil {
		return nil, err
	}
	return s.toPayload(ctx, post, true), nil
}

// Update lets the owner or an admin rewrite a post. A replaced photo attach
// is removed once the new one is saved.
func (s *PostService) Update(ctx context.Context, postID string, actor *Actor, req PostUpdateRequest, lang i18n.Lang) (*PostPayload, error) {
	if err := validateReq(req, s.msg, lang); err != nil {
		return nil, err
	}
	post, err := s.findPost(ctx, postID, lang)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && post.ProfileID != actor.ProfileID {
		s.logger.Warnw("post update denied", "profileID", actor.ProfileID, "postID", postID)
		return nil, apperr.New(apperr.ErrForbidden, s.msg.Message("no.post.update", lang))
	}

	replacedPhoto := ""
	if post.PhotoID != "" && post.PhotoID != req.PhotoID {
		replacedPhoto = post.PhotoID
	}
	post.Title = req.Title
	post.Content = req.Content
	post.PhotoID = req.PhotoID
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	if replacedPhoto != "" {
		if err := s.attaches.Delete(ctx, replacedPhoto); err != nil {
			s.logger.Warnw("failed to delete replaced post photo", "photoID", replacedPhoto, "error", err)
		}
	}
	return s.toPayload(ctx, post, false), nil
}

func (s *PostService) Delete(ctx context.Context, postID string, actor *Actor, lang i18n.Lang) (*Ack, error) {
	ownerID, err := s.posts.OwnerID(ctx, postID)
	if err != nil {
		return nil, apperr.New(apperr.ErrNotFound, s.msg.Message("post.not.found", lang))
	}
	if !actor.IsAdmin() && ownerID != actor.ProfileID {
		s.logger.Warnw("post delete denied", "profileID", actor.ProfileID, "postID", postID)
		return nil, apperr.New(apperr.ErrForbidden, s.msg.Message("no.post.delete", lang))
	}
	if err := s.posts.SoftDelete(ctx, postID); err != nil {
		return nil, err
	}
	return &Ack{Message: s.msg.Message("post.delete.success", lang)}, nil
}

// Filter is the public post search: title substring match with an optional
// excluded post.
func (s *PostService) Filter(ctx context.Context, req PostFilterRequest, page, size int) (*PageResult[PostPayload], error) {
	page, size = normalizePage(page, size)
	posts, total, err := s.posts.Filter(ctx, req.Query, req.ExceptID, page*size, size)
	if err != nil {
		return nil, err
	}
	return s.pageOf(ctx, posts, page, size, total), nil
}

// AdminFilter searches posts joined with their owners.
func (s *PostService) AdminFilter(ctx context.Context, req PostAdminFilterRequest, page, size int) (*PageResult[models.PostDetail], error) {
	page, size = normalizePage(page, size)
	details, total, err := s.posts.AdminFilter(ctx, req.ProfileQuery, req.PostQuery, page*size, size)
	if err != nil {
		return nil, err
	}
	return &PageResult[models.PostDetail]{
		Content:    details,
		Page:       page,
		Size:       size,
		TotalCount: total,
	}, nil
}

func (s *PostService) Similar(ctx context.Context, req SimilarPostRequest, lang i18n.Lang) ([]PostPayload, error) {
	if err := validateReq(req, s.msg, lang); err != nil {
		return nil, err
	}
	posts, err := s.posts.Similar(ctx, req.ExceptID, similarPostLimit)
	if err != nil {
		return nil, err
	}
	payloads := make([]PostPayload, 0, len(posts))
	for i := range posts {
		payloads = append(payloads, *s.toPayload(ctx, &posts[i], false))
	}
	return payloads, nil
}

func (s *PostService) findPost(ctx context.Context, id string, lang i18n.Lang) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		s.logger.Infow("post not found", "postID", id)
		return nil, apperr.New(apperr.ErrNotFound, s.msg.Message("post.not.found", lang))
	}
	return post, nil
}

func (s *PostService) toPayload(ctx context.Context, post *models.Post, withContent bool) *PostPayload {
	p := &PostPayload{
		ID:        post.ID,
		Title:     post.Title,
		Photo:     s.attaches.Payload(ctx, post.PhotoID),
		CreatedAt: post.CreatedAt.UTC().Format(time.RFC3339),
	}
	if withContent {
		p.Content = post.Content
	}
	return p
}

func (s *PostService) pageOf(ctx context.Context, posts []models.Post, page, size int, total int64) *PageResult[PostPayload] {
	payloads := make([]PostPayload, 0, len(posts))
	for i := range posts {
		payloads = append(payloads, *s.toPayload(ctx, &posts[i], false))
	}
	return &PageResult[PostPayload]{
		Content:    payloads,
		Page:       page,
		Size:       size,
		TotalCount: total,
	}
}
