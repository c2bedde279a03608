// Package routes wires the handler methods onto the URL space.
package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/auth"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/handlers"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/metrics"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/middleware"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/models"
)

type Deps struct {
	JWT         *auth.Manager
	AuthLimiter *middleware.RateLimiter

	Auth    *handlers.AuthHandler
	Profile *handlers.ProfileHandler
	Post    *handlers.PostHandler
	Video   *handlers.VideoHandler
	Comment *handlers.CommentHandler
	Attach  *handlers.AttachHandler
}

func Register(app *fiber.App, d Deps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	authRequired := middleware.JWTAuth(d.JWT)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	// account lifecycle, throttled per client IP
	authGroup := app.Group("/api/v1/auth", d.AuthLimiter.ByIP())
	authGroup.Post("/registration", d.Auth.Register)
	authGroup.Get("/registration/email-verification/:token", d.Auth.VerifyRegistration)
	authGroup.Post("/login", d.Auth.Login)
	authGroup.Post("/password-reset", d.Auth.ResetPassword)
	authGroup.Post("/password-reset-confirm", d.Auth.ResetPasswordConfirm)

	profile := app.Group("/api/v1/profile", authRequired)
	profile.Put("/detail", d.Profile.UpdateDetail)
	profile.Put("/password", d.Profile.UpdatePassword)
	profile.Put("/username", d.Profile.UpdateUsername)
	profile.Put("/username-confirmation", d.Profile.UpdateUsernameConfirm)
	profile.Put("/photo", d.Profile.UpdatePhoto)
	profile.Post("/filter", adminOnly, d.Profile.Filter)
	profile.Put("/status/:userId", adminOnly, d.Profile.ChangeStatus)
	profile.Delete("/delete/:userId", adminOnly, d.Profile.Delete)

	post := app.Group("/api/v1/post")
	post.Post("/filter", d.Post.Filter)
	post.Post("/similar", d.Post.Similar)
	post.Post("/admin-filter", authRequired, adminOnly, d.Post.AdminFilter)
	post.Post("/", authRequired, d.Post.Create)
	post.Get("/", authRequired, d.Post.ProfilePosts)
	post.Get("/:id", d.Post.FullDetails)
	post.Put("/:id", authRequired, d.Post.Update)
	post.Delete("/:id", authRequired, d.Post.Delete)

	videos := app.Group("/api/videos")
	videos.Get("/stats", d.Video.Stats)
	videos.Get("/", d.Video.List)
	videos.Post("/", authRequired, d.Video.Upload)
	videos.Get("/:id/stream", d.Video.Stream)
	videos.Get("/:id", d.Video.Get)
	videos.Put("/:id", authRequired, d.Video.Update)
	videos.Delete("/:id", authRequired, d.Video.Delete)
	videos.Post("/:id/view", d.Video.View)
	videos.Post("/:id/like", authRequired, d.Video.Like)
	videos.Post("/:id/unlike", authRequired, d.Video.Unlike)

	comments := app.Group("/api/comments")
	comments.Post("/", authRequired, d.Comment.Add)
	comments.Get("/video/:videoId/count", d.Comment.Count)
	comments.Get("/video/:videoId", d.Comment.ByVideo)
	comments.Delete("/:commentId", authRequired, d.Comment.Delete)
	comments.Post("/:commentId/like", authRequired, d.Comment.Like)
	comments.Post("/:commentId/unlike", authRequired, d.Comment.Unlike)

	attach := app.Group("/api/v1/attach")
	attach.Post("/upload", authRequired, d.Attach.Upload)
	attach.Get("/open/:id", d.Attach.Open)
	attach.Delete("/:id", authRequired, adminOnly, d.Attach.Delete)
}
