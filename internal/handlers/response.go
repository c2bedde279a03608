// Package handlers is the Fiber boundary: it parses requests, resolves the
// caller's language and identity, and translates service errors to HTTP.
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/apperr"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/i18n"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/middleware"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/services"
)

func JSONSuccess(c *fiber.Ctx, status int, payload interface{}) error {
	return c.Status(status).JSON(fiber.Map{"status": "ok", "data": payload})
}

func JSONError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"status": "error", "message": msg})
}

// fail maps a service error to its status and localized message. Messages of
// unclassified errors are never exposed.
func fail(c *fiber.Ctx, msg *i18n.Service, lang i18n.Lang, err error) error {
	status := apperr.StatusOf(err)
	if status == fiber.StatusInternalServerError {
		return JSONError(c, status, msg.Message("internal.error", lang))
	}
	return JSONError(c, status, apperr.Message(err, msg.Message("internal.error", lang)))
}

func lang(c *fiber.Ctx) i18n.Lang {
	return i18n.Parse(c.Get("Accept-Language"))
}

// actor builds the service-layer caller identity from the session claims.
func actor(c *fiber.Ctx) *services.Actor {
	claims := middleware.Claims(c)
	if claims == nil {
		return nil
	}
	return &services.Actor{
		ProfileID: claims.ProfileID,
		Username:  claims.Username,
		Roles:     claims.Roles,
	}
}

func pageParams(c *fiber.Ctx) (int, int) {
	return c.QueryInt("page", 0), c.QueryInt("size", 20)
}
