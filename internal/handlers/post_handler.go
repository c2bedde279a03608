package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/i18n"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/services"
)

type PostHandler struct {
	posts *services.PostService
	msg   *i18n.Service
}

func NewPostHandler(posts *services.PostService, msg *i18n.Service) *PostHandler {
	return &PostHandler{posts: posts, msg: msg}
}

// POST /api/v1/post
func (h *PostHandler) Create(c *fiber.Ctx) error {
	var req services.PostCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	payload, err := h.posts.Create(c.UserContext(), actor(c).ProfileID, req, lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusCreated, payload)
}

// GET /api/v1/post?page=&size=
func (h *PostHandler) ProfilePosts(c *fiber.Ctx) error {
	page, size := pageParams(c)
	result, err := h.posts.ProfilePosts(c.UserContext(), actor(c).ProfileID, page, size)
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, result)
}

// GET /api/v1/post/:id
func (h *PostHandler) FullDetails(c *fiber.Ctx) error {
	payload, err := h.posts.FullDetails(c.UserContext(), c.Params("id"), lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, payload)
}

// PUT /api/v1/post/:id
func (h *PostHandler) Update(c *fiber.Ctx) error {
	var req services.PostUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	payload, err := h.posts.Update(c.UserContext(), c.Params("id"), actor(c), req, lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, payload)
}

// DELETE /api/v1/post/:id
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	ack, err := h.posts.Delete(c.UserContext(), c.Params("id"), actor(c), lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, ack)
}

// POST /api/v1/post/filter (public)
func (h *PostHandler) Filter(c *fiber.Ctx) error {
	var req services.PostFilterRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	page, size := pageParams(c)
	result, err := h.posts.Filter(c.UserContext(), req, page, size)
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, result)
}

// POST /api/v1/post/admin-filter (admin)
func (h *PostHandler) AdminFilter(c *fiber.Ctx) error {
	var req services.PostAdminFilterRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	page, size := pageParams(c)
	result, err := h.posts.AdminFilter(c.UserContext(), req, page, size)
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, result)
}

// POST /api/v1/post/similar (public)
func (h *PostHandler) Similar(c *fiber.Ctx) error {
	var req services.SimilarPostRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	result, err := h.posts.Similar(c.UserContext(), req, lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, result)
}
