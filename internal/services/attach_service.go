package services

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/apperr"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/i18n"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/models"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/repository"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/storage"
)

const thumbnailWidth = 320

// AttachService stores uploaded files in the blob store and records each one
// in the attaches table. Images additionally get a resized thumbnail next to
// the original.
type AttachService struct {
	attaches   repository.AttachRepository
	store      *storage.S3Store
	msg        *i18n.Service
	presignTTL time.Duration
	logger     *zap.SugaredLogger
}

func NewAttachService(
	attaches repository.AttachRepository,
	store *storage.S3Store,
	msg *i18n.Service,
	presignTTL time.Duration,
	logger *zap.SugaredLogger,
) *AttachService {
	return &AttachService{
		attaches:   attaches,
		store:      store,
		msg:        msg,
		presignTTL: presignTTL,
		logger:     logger,
	}
}

// Upload stores the file under a dated key and returns the created record.
func (s *AttachService) Upload(ctx context.Context, originName, contentType string, data []byte) (*models.Attach, error) {
	ext := strings.ToLower(filepath.Ext(originName))
	id := uuid.NewString()
	key := datedKey("attaches", id, ext)

	if err := s.store.Upload(ctx, key, contentType, data); err != nil {
		return nil, err
	}
	if isImageExt(ext) {
		if err := s.uploadThumbnail(ctx, key, data); err != nil {
			// the original is already stored, a missing thumbnail is not fatal
			s.logger.Warnw("failed to build thumbnail", "key", key, "error", err)
		}
	}

	attach := &models.Attach{
		ID:         id,
		Key:        key,
		Path:       filepath.Dir(key),
		Extension:  ext,
		OriginName: originName,
		Size:       int64(len(data)),
		Visible:    true,
	}
	if err := s.attaches.Create(ctx, attach); err != nil {
		return nil, err
	}
	return attach, nil
}

// Open returns the record plus a presigned read URL.
func (s *AttachService) Open(ctx context.Context, id string, lang i18n.Lang) (*models.Attach, string, error) {
	attach, err := s.attaches.FindByID(ctx, id)
	if err != nil {
		return nil, "", apperr.New(apperr.ErrNotFound, s.msg.Message("attach.not.found", lang))
	}
	url, err := s.store.PresignURL(ctx, attach.Key, s.presignTTL)
	if err != nil {
		return nil, "", err
	}
	return attach, url, nil
}

// Delete hides the record and removes the blob. Blob removal is best effort:
// the row is the source of truth and orphaned objects age out separately.
func (s *AttachService) Delete(ctx context.Context, id string) error {
	attach, err := s.attaches.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.attaches.SoftDelete(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, attach.Key); err != nil {
		s.logger.Warnw("failed to delete blob", "key", attach.Key, "error", err)
	}
	return nil
}

// Payload resolves a stored photo id into the response reference, or nil when
// no photo is set. Presign failures degrade to an id-only payload.
func (s *AttachService) Payload(ctx context.Context, photoID string) *AttachPayload {
	if photoID == "" {
		return nil
	}
	attach, err := s.attaches.FindByID(ctx, photoID)
	if err != nil {
		return nil
	}
	url, err := s.store.PresignURL(ctx, attach.Key, s.presignTTL)
	if err != nil {
		s.logger.Warnw("failed to presign attach", "id", photoID, "error", err)
		return &AttachPayload{ID: photoID}
	}
	return &AttachPayload{ID: photoID, URL: url}
}

func (s *AttachService) uploadThumbnail(ctx context.Context, key string, data []byte) error {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
		return err
	}
	return s.store.Upload(ctx, thumbKey(key), "image/jpeg", buf.Bytes())
}

func datedKey(prefix, id, ext string) string {
	return fmt.Sprintf("%s/%s/%s%s", prefix, time.Now().UTC().Format("2006-01-02"), id, ext)
}

func thumbKey(key string) string {
	ext := filepath.Ext(key)
	return strings.TrimSuffix(key, ext) + "_thumb.jpg"
}

func isImageExt(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff":
		return true
	}
	return false
}
