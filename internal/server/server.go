// Package server builds the Fiber application with its global middleware.
package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/config"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/metrics"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/middleware"
)

func New(cfg *config.Config, logger *zap.SugaredLogger) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		BodyLimit:    512 << 20,
	})

	app.Use(recover.New())

	corsCfg := cors.Config{}
	if len(cfg.Security.CORSAllowedOrigins) > 0 {
		corsCfg.AllowOrigins = strings.Join(cfg.Security.CORSAllowedOrigins, ",")
	}
	app.Use(cors.New(corsCfg))

	app.Use(middleware.RequestLogger(logger))
	app.Use(metrics.Middleware())

	return app
}
