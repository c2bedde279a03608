package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/i18n"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/services"
)

type ProfileHandler struct {
	profiles *services.ProfileService
	msg      *i18n.Service
}

func NewProfileHandler(profiles *services.ProfileService, msg *i18n.Service) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, msg: msg}
}

// PUT /api/v1/profile/detail
func (h *ProfileHandler) UpdateDetail(c *fiber.Ctx) error {
	var req services.UpdateDetailRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	ack, err := h.profiles.UpdateDetail(c.UserContext(), actor(c).ProfileID, req, lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, ack)
}

// PUT /api/v1/profile/password
func (h *ProfileHandler) UpdatePassword(c *fiber.Ctx) error {
	var req services.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	ack, err := h.profiles.UpdatePassword(c.UserContext(), actor(c).ProfileID, req, lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, ack)
}

// PUT /api/v1/profile/username
func (h *ProfileHandler) UpdateUsername(c *fiber.Ctx) error {
	var req services.UpdateUsernameRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	ack, err := h.profiles.UpdateUsername(c.UserContext(), actor(c).ProfileID, req, lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, ack)
}

// PUT /api/v1/profile/username-confirmation
func (h *ProfileHandler) UpdateUsernameConfirm(c *fiber.Ctx) error {
	var req services.CodeConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	result, err := h.profiles.UpdateUsernameConfirm(c.UserContext(), actor(c).ProfileID, req, lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, result)
}

// PUT /api/v1/profile/photo
func (h *ProfileHandler) UpdatePhoto(c *fiber.Ctx) error {
	var req struct {
		PhotoID string `json:"photo_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.PhotoID == "" {
		return JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	ack, err := h.profiles.UpdatePhoto(c.UserContext(), actor(c).ProfileID, req.PhotoID, lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, ack)
}

// POST /api/v1/profile/filter (admin)
func (h *ProfileHandler) Filter(c *fiber.Ctx) error {
	var req services.ProfileFilterRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	page, size := pageParams(c)
	result, err := h.profiles.Filter(c.UserContext(), req, page, size)
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, result)
}

// PUT /api/v1/profile/status/:userId (admin)
func (h *ProfileHandler) ChangeStatus(c *fiber.Ctx) error {
	var req services.ProfileStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	ack, err := h.profiles.ChangeStatus(c.UserContext(), c.Params("userId"), req, lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, ack)
}

// DELETE /api/v1/profile/delete/:userId (admin)
func (h *ProfileHandler) Delete(c *fiber.Ctx) error {
	ack, err := h.profiles.Delete(c.UserContext(), c.Params("userId"), lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, ack)
}
