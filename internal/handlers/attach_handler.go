package handlers

import (
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/i18n"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/services"
)

const maxAttachBytes = 32 << 20

type AttachHandler struct {
	attaches *services.AttachService
	msg      *i18n.Service
}

func NewAttachHandler(attaches *services.AttachService, msg *i18n.Service) *AttachHandler {
	return &AttachHandler{attaches: attaches, msg: msg}
}

// POST /api/v1/attach/upload — multipart "file" part
func (h *AttachHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return JSONError(c, fiber.StatusBadRequest, "file missing")
	}
	if fileHeader.Size > maxAttachBytes {
		return JSONError(c, fiber.StatusRequestEntityTooLarge, "file too large")
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

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	attach, err := h.attaches.Upload(c.UserContext(), fileHeader.Filename, contentType, data)
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusCreated, attach)
}

// GET /api/v1/attach/open/:id — resolves to a presigned URL
func (h *AttachHandler) Open(c *fiber.Ctx) error {
	attach, url, err := h.attaches.Open(c.UserContext(), c.Params("id"), lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, fiber.Map{
		"id":          attach.ID,
		"origin_name": attach.OriginName,
		"size":        attach.Size,
		"url":         url,
	})
}

// DELETE /api/v1/attach/:id (admin)
func (h *AttachHandler) Delete(c *fiber.Ctx) error {
	if err := h.attaches.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, fiber.Map{"deleted": true})
}
