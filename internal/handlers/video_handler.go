package handlers

import (
	"encoding/json"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/i18n"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/metrics"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/models"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/services"
)

const maxVideoBytes = 512 << 20

type VideoHandler struct {
	videos *services.VideoService
	msg    *i18n.Service
}

func NewVideoHandler(videos *services.VideoService, msg *i18n.Service) *VideoHandler {
	return &VideoHandler{videos: videos, msg: msg}
}

// POST /api/videos — multipart with a "video" file part and a "data" JSON part
// holding the metadata.
func (h *VideoHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("video")
	if err != nil {
		return JSONError(c, fiber.StatusBadRequest, "video file missing")
	}
	if fileHeader.Size > maxVideoBytes {
		return JSONError(c, fiber.StatusRequestEntityTooLarge, "video too large")
	}
	var req services.VideoUploadRequest
	if err := json.Unmarshal([]byte(c.FormValue("data")), &req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "invalid metadata")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return JSONError(c, fiber.StatusInternalServerError, "cannot open file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return JSONError(c, fiber.StatusInternalServerError, "cannot read file")
	}

	video, err := h.videos.Upload(c.UserContext(), actor(c).ProfileID, fileHeader.Filename, data, req, lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	metrics.VideoUploads.Inc()
	// a read URL is handed out right away so the client can preview the upload
	url, _ := h.videos.StreamURL(c.UserContext(), video.ID, lang(c))
	return JSONSuccess(c, fiber.StatusCreated, fiber.Map{"video": video, "url": url})
}

// GET /api/videos?status=
func (h *VideoHandler) List(c *fiber.Ctx) error {
	if status := c.Query("status"); status != "" {
		videos, err := h.videos.ByStatus(c.UserContext(), models.VideoStatus(status))
		if err != nil {
			return fail(c, h.msg, lang(c), err)
		}
		return JSONSuccess(c, fiber.StatusOK, videos)
	}
	videos, err := h.videos.All(c.UserContext())
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, videos)
}

// GET /api/videos/:id
func (h *VideoHandler) Get(c *fiber.Ctx) error {
	video, err := h.videos.Get(c.UserContext(), c.Params("id"), lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, video)
}

// GET /api/videos/:id/stream
func (h *VideoHandler) Stream(c *fiber.Ctx) error {
	url, err := h.videos.StreamURL(c.UserContext(), c.Params("id"), lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, fiber.Map{"url": url})
}

// PUT /api/videos/:id
func (h *VideoHandler) Update(c *fiber.Ctx) error {
	var req services.VideoUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	video, err := h.videos.UpdateMeta(c.UserContext(), c.Params("id"), actor(c), req, lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, video)
}

// DELETE /api/videos/:id
func (h *VideoHandler) Delete(c *fiber.Ctx) error {
	if err := h.videos.Delete(c.UserContext(), c.Params("id"), actor(c), lang(c)); err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

// POST /api/videos/:id/view
func (h *VideoHandler) View(c *fiber.Ctx) error {
	if err := h.videos.IncrementViews(c.UserContext(), c.Params("id"), lang(c)); err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, fiber.Map{"viewed": true})
}

// POST /api/videos/:id/like
func (h *VideoHandler) Like(c *fiber.Ctx) error {
	video, err := h.videos.Like(c.UserContext(), c.Params("id"), lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, video)
}

// POST /api/videos/:id/unlike
func (h *VideoHandler) Unlike(c *fiber.Ctx) error {
	video, err := h.videos.Unlike(c.UserContext(), c.Params("id"), lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, video)
}

// GET /api/videos/stats
func (h *VideoHandler) Stats(c *fiber.Ctx) error {
	videos, err := h.videos.All(c.UserContext())
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	var views, likes int64
	for _, v := range videos {
		views += v.Views
		likes += v.Likes
	}
	return JSONSuccess(c, fiber.StatusOK, fiber.Map{
		"total_videos": len(videos),
		"total_views":  views,
		"total_likes":  likes,
	})
}
