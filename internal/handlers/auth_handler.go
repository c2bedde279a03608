package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/i18n"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/services"
)

type AuthHandler struct {
	auth *services.AuthService
	msg  *i18n.Service
}

func NewAuthHandler(auth *services.AuthService, msg *i18n.Service) *AuthHandler {
	return &AuthHandler{auth: auth, msg: msg}
}

// POST /api/v1/auth/registration
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	ack, err := h.auth.Register(c.UserContext(), req, lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusCreated, ack)
}

// GET /api/v1/auth/registration/email-verification/:token
func (h *AuthHandler) VerifyRegistration(c *fiber.Ctx) error {
	result, err := h.auth.VerifyRegistration(c.UserContext(), c.Params("token"), lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, result)
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	result, err := h.auth.Login(c.UserContext(), req, lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, result)
}

// POST /api/v1/auth/password-reset
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req services.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	ack, err := h.auth.ResetPassword(c.UserContext(), req, lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, ack)
}

// POST /api/v1/auth/password-reset-confirm
func (h *AuthHandler) ResetPasswordConfirm(c *fiber.Ctx) error {
	var req services.ResetPasswordConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	ack, err := h.auth.ResetPasswordConfirm(c.UserContext(), req, lang(c))
	if err != nil {
		return fail(c, h.msg, lang(c), err)
	}
	return JSONSuccess(c, fiber.StatusOK, ack)
}
