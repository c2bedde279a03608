package services

import (
	"context"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/apperr"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/events"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/i18n"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/models"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/repository"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/storage"
)

// VideoService stores uploaded videos in the blob store and keeps their
// metadata in the videos table. Playback goes through presigned stream URLs,
// never raw bucket paths.
type VideoService struct {
	videos     repository.VideoRepository
	comments   repository.CommentRepository
	store      *storage.S3Store
	publisher  *events.Publisher
	msg        *i18n.Service
	presignTTL time.Duration
	logger     *zap.SugaredLogger
}

func NewVideoService(
	videos repository.VideoRepository,
	comments repository.CommentRepository,
	store *storage.S3Store,
	publisher *events.Publisher,
	msg *i18n.Service,
	presignTTL time.Duration,
	logger *zap.SugaredLogger,
) *VideoService {
	return &VideoService{
		videos:     videos,
		comments:   comments,
		store:      store,
		publisher:  publisher,
		msg:        msg,
		presignTTL: presignTTL,
		logger:     logger,
	}
}

// Upload stores the file and records its metadata in one pass. The blob is
// written first so a failed insert leaves no dangling row.
func (s *VideoService) Upload(ctx context.Context, profileID, originalFilename string, data []byte, req VideoUploadRequest, lang i18n.Lang) (*models.Video, error) {
	if err := validateReq(req, s.msg, lang); err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(originalFilename))
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	id := uuid.NewString()
	key := datedKey("videos", id, ext)
	if err := s.store.Upload(ctx, key, contentType, data); err != nil {
		return nil, err
	}

	video := &models.Video{
		ID:               id,
		Title:            req.Title,
		Caption:          req.Caption,
		Location:         req.Location,
		Category:         req.Category,
		Tags:             req.Tags,
		VideoKey:         key,
		Status:           req.Status,
		FileSize:         int64(len(data)),
		OriginalFilename: originalFilename,
		ProfileID:        profileID,
		UploadedAt:       time.Now().UTC(),
	}
	if err := s.videos.Create(ctx, video); err != nil {
		return nil, err
	}
	s.publisher.Publish(ctx, events.TypeVideoUploaded, profileID, id)
	return video, nil
}

func (s *VideoService) Get(ctx context.Context, id string, lang i18n.Lang) (*models.Video, error) {
	return s.findVideo(ctx, id, lang)
}

func (s *VideoService) All(ctx context.Context) ([]models.Video, error) {
	return s.videos.All(ctx)
}

func (s *VideoService) ByStatus(ctx context.Context, status models.VideoStatus) ([]models.Video, error) {
	return s.videos.ByStatus(ctx, status)
}

// UpdateMeta rewrites the descriptive fields; the stored file never changes.
func (s *VideoService) UpdateMeta(ctx context.Context, id string, actor *Actor, req VideoUploadRequest, lang i18n.Lang) (*models.Video, error) {
	if err := validateReq(req, s.msg, lang); err != nil {
		return nil, err
	}
	video, err := s.findVideo(ctx, id, lang)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && video.ProfileID != actor.ProfileID {
		return nil, apperr.New(apperr.ErrForbidden, s.msg.Message("no.video.update", lang))
	}
	video.Title = req.Title
	video.Caption = req.Caption
	video.Location = req.Location
	video.Category = req.Category
	video.Tags = req.Tags
	video.Status = req.Status
	if err := s.videos.UpdateMeta(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// Delete removes the row, its comments and finally the blob.
func (s *VideoService) Delete(ctx context.Context, id string, actor *Actor, lang i18n.Lang) error {
	video, err := s.findVideo(ctx, id, lang)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && video.ProfileID != actor.ProfileID {
		return apperr.New(apperr.ErrForbidden, s.msg.Message("no.video.delete", lang))
	}
	if err := s.comments.DeleteByVideo(ctx, id); err != nil {
		return err
	}
	if err := s.videos.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, video.VideoKey); err != nil {
		s.logger.Warnw("failed to delete video blob", "key", video.VideoKey, "error", err)
	}
	return nil
}

func (s *VideoService) IncrementViews(ctx context.Context, id string, lang i18n.Lang) error {
	if _, err := s.findVideo(ctx, id, lang); err != nil {
		return err
	}
	return s.videos.IncrementViews(ctx, id)
}

func (s *VideoService) Like(ctx context.Context, id string, lang i18n.Lang) (*models.Video, error) {
	return s.addLike(ctx, id, 1, lang)
}

func (s *VideoService) Unlike(ctx context.Context, id string, lang i18n.Lang) (*models.Video, error) {
	return s.addLike(ctx, id, -1, lang)
}

// StreamURL returns a presigned playback URL for the stored file.
func (s *VideoService) StreamURL(ctx context.Context, id string, lang i18n.Lang) (string, error) {
	video, err := s.findVideo(ctx, id, lang)
	if err != nil {
		return "", err
	}
	return s.store.PresignURL(ctx, video.VideoKey, s.presignTTL)
}

func (s *VideoService) addLike(ctx context.Context, id string, delta int64, lang i18n.Lang) (*models.Video, error) {
	video, err := s.videos.AddLike(ctx, id, delta)
	if err != nil {
		return nil, apperr.New(apperr.ErrNotFound, s.msg.Message("video.not.found", lang))
	}
	return video, nil
}

func (s *VideoService) findVideo(ctx context.Context, id string, lang i18n.Lang) (*models.Video, error) {
	video, err := s.videos.FindByID(ctx, id)
	if err != nil {
		s.logger.Infow("video not found", "videoID", id)
		return nil, apperr.New(apperr.ErrNotFound, s.msg.Message("video.not.found", lang))
	}
	return video, nil
}
