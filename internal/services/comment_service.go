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

type CommentService struct {
	comments  repository.CommentRepository
	videos    repository.VideoRepository
	publisher *events.Publisher
	msg       *i18n.Service
	logger    *zap.SugaredLogger
}

func NewCommentService(
	comments repository.CommentRepository,
	videos repository.VideoRepository,
	publisher *events.Publisher,
	msg *i18n.Service,
	logger *zap.SugaredLogger,
) *CommentService {
	return &CommentService{
		comments:  comments,
		videos:    videos,
		publisher: publisher,
		msg:       msg,
		logger:    logger,
	}
}

// Add attaches a comment to an existing video.
func (s *CommentService) Add(ctx context.Context, actor *Actor, req CommentCreateRequest, lang i18n.Lang) (*models.Comment, error) {
	if err := validateReq(req, s.msg, lang); err != nil {
		return nil, err
	}
	if _, err := s.videos.FindByID(ctx, req.VideoID); err != nil {
		return nil, apperr.New(apperr.ErrNotFound, s.msg.Message("video.not.found", lang))
	}
	comment := &models.Comment{
		ID:        uuid.NewString(),
		VideoID:   req.VideoID,
		ProfileID: actor.ProfileID,
		Username:  actor.Username,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.publisher.Publish(ctx, events.TypeCommentAdded, actor.ProfileID, comment.ID)
	return comment, nil
}

// ByVideo lists a video's comments, newest first.
func (s *CommentService) ByVideo(ctx context.Context, videoID string, lang i18n.Lang) ([]models.Comment, error) {
	if _, err := s.videos.FindByID(ctx, videoID); err != nil {
		return nil, apperr.New(apperr.ErrNotFound, s.msg.Message("video.not.found", lang))
	}
	return s.comments.ByVideo(ctx, videoID)
}

func (s *CommentService) Count(ctx context.Context, videoID string) (int64, error) {
	return s.comments.Count(ctx, videoID)
}

func (s *CommentService) Like(ctx context.Context, id string, lang i18n.Lang) (*models.Comment, error) {
	return s.addLike(ctx, id, 1, lang)
}

func (s *CommentService) Unlike(ctx context.Context, id string, lang i18n.Lang) (*models.Comment, error) {
	return s.addLike(ctx, id, -1, lang)
}

// Delete allows the author or an admin to remove a comment.
func (s *CommentService) Delete(ctx context.Context, id string, actor *Actor, lang i18n.Lang) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return apperr.New(apperr.ErrNotFound, s.msg.Message("comment.not.found", lang))
	}
	if !actor.IsAdmin() && comment.ProfileID != actor.ProfileID {
		// ownership is not revealed, the caller just sees not-found
		s.logger.Warnw("comment delete denied", "profileID", actor.ProfileID, "commentID", id)
		return apperr.New(apperr.ErrNotFound, s.msg.Message("comment.not.found", lang))
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return apperr.New(apperr.ErrNotFound, s.msg.Message("comment.not.found", lang))
	}
	return nil
}

func (s *CommentService) addLike(ctx context.Context, id string, delta int, lang i18n.Lang) (*models.Comment, error) {
	comment, err := s.comments.AddLike(ctx, id, delta)
	if err != nil {
		return nil, apperr.New(apperr.ErrNotFound, s.msg.Message("comment.not.found", lang))
	}
	return comment, nil
}
