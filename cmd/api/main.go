package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/auth"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/config"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/database"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/email"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/events"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/handlers"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/i18n"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/logger"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/metrics"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/middleware"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/repository"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/routes"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/server"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/services"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/storage"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(logger.Config{Development: cfg.App.Env != "production"})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	db, err := database.ConnectPostgres(ctx, cfg.Postgres.DSN, zlog)
	if err != nil {
		zlog.Fatalf("postgres: %v", err)
	}
	defer db.Close()

	rdb, err := database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, zlog)
	if err != nil {
		zlog.Warnf("redis unavailable, rate limiting disabled: %v", err)
		rdb = nil
	} else {
		defer rdb.Close()
	}

	store, err := storage.NewS3Store(ctx, cfg.S3.Region, cfg.S3.Bucket, cfg.S3.Endpoint)
	if err != nil {
		zlog.Fatalf("s3: %v", err)
	}

	brevo := email.NewBrevoClient(cfg.Brevo.APIKey, cfg.Brevo.FromEmail, cfg.Brevo.FromName)
	if !brevo.IsConfigured() {
		zlog.Warn("Brevo is not configured, outgoing mail will be skipped")
	}
	sender := email.NewSender(brevo, zlog)

	publisher := events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, zlog)
	defer publisher.Close()

	metrics.Init()

	profileRepo := repository.NewPostgresProfileRepository(db)
	roleRepo := repository.NewPostgresRoleRepository(db)
	confirmationRepo := repository.NewPostgresConfirmationRepository(db)
	attachRepo := repository.NewPostgresAttachRepository(db)
	postRepo := repository.NewPostgresPostRepository(db)
	videoRepo := repository.NewPostgresVideoRepository(db)
	commentRepo := repository.NewPostgresCommentRepository(db)

	msg := i18n.NewService()
	jwtManager := auth.NewManager(cfg.JWT.Secret, cfg.SessionTTL, cfg.RegVerifyTTL)

	confirmationSvc := services.NewConfirmationService(
		confirmationRepo, rdb, msg, cfg.ConfirmCodeTTL, cfg.Security.CodeRateLimitPerHour, zlog)
	attachSvc := services.NewAttachService(attachRepo, store, msg, cfg.PresignTTL, zlog)
	authSvc := services.NewAuthService(
		profileRepo, roleRepo, confirmationSvc, attachSvc, jwtManager, sender, publisher,
		msg, cfg.App.BaseURL, cfg.Security.PasswordMinLength, zlog)
	profileSvc := services.NewProfileService(
		profileRepo, roleRepo, confirmationSvc, attachSvc, jwtManager, sender,
		msg, cfg.Security.PasswordMinLength, zlog)
	postSvc := services.NewPostService(postRepo, attachSvc, publisher, msg, zlog)
	videoSvc := services.NewVideoService(videoRepo, commentRepo, store, publisher, msg, cfg.PresignTTL, zlog)
	commentSvc := services.NewCommentService(commentRepo, videoRepo, publisher, msg, zlog)

	app := server.New(cfg, zlog)
	routes.Register(app, routes.Deps{
		JWT:         jwtManager,
		AuthLimiter: middleware.NewRateLimiter(rdb, "auth_rl", cfg.Security.AuthRateLimitPerMinute, time.Minute),
		Auth:        handlers.NewAuthHandler(authSvc, msg),
		Profile:     handlers.NewProfileHandler(profileSvc, msg),
		Post:        handlers.NewPostHandler(postSvc, msg),
		Video:       handlers.NewVideoHandler(videoSvc, msg),
		Comment:     handlers.NewCommentHandler(commentSvc, msg),
		Attach:      handlers.NewAttachHandler(attachSvc, msg),
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	go func() {
		zlog.Infof("API listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			zlog.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down...")
	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutCtx); err != nil {
		zlog.Errorf("shutdown error: %v", err)
	}
	zlog.Info("server stopped")
}
