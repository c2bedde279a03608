package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/i18n"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/services"
)

type CommentHandler struct {
	comments *services.CommentService
	msg      *i18n.Service
}

func NewCommentHandler(comments *services.CommentService, msg *i18n.Service) *CommentHandler {
	return &CommentHandler{comments: comments, msg: msg}
}

// POST /api/comments
func (h *CommentHandler) Add(c *fiber.Ctx) error {
	var req services.CommentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	comment, err := h.comments.Add(c.UserContext(), actor(c), req, lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusCreated, comment)
}

// GET /api/comments/video/:videoId
func (h *CommentHandler) ByVideo(c *fiber.Ctx) error {
	comments, err := h.comments.ByVideo(c.UserContext(), c.Params("videoId"), lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, comments)
}

// GET /api/comments/video/:videoId/count
func (h *CommentHandler) Count(c *fiber.Ctx) error {
	count, err := h.comments.Count(c.UserContext(), c.Params("videoId"))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, fiber.Map{"count": count})
}

// DELETE /api/comments/:commentId
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	if err := h.comments.Delete(c.UserContext(), c.Params("commentId"), actor(c), lang(c)); err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

// POST /api/comments/:commentId/like
func (h *CommentHandler) Like(c *fiber.Ctx) error {
	comment, err := h.comments.Like(c.UserContext(), c.Params("commentId"), lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, comment)
}

// POST /api/comments/:commentId/unlike
func (h *CommentHandler) Unlike(c *fiber.Ctx) error {
	comment, err := h.comments.Unlike(c.UserContext(), c.Params("commentId"), lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, comment)
}
