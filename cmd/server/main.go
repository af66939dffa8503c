package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"jamqueuepro/config"
	authadapter "jamqueuepro/internal/adapters/auth"
	emailadapter "jamqueuepro/internal/adapters/email"
	"jamqueuepro/internal/adapters/mq"
	delivery "jamqueuepro/internal/delivery/http"
	"jamqueuepro/internal/delivery/http/controllers"
	"jamqueuepro/internal/delivery/http/middleware"
	"jamqueuepro/internal/domain"
	"jamqueuepro/internal/metrics"
	"jamqueuepro/internal/repository/postgres"
	"jamqueuepro/internal/services"
)

const bcryptCost = 12

// @title Jam Queue Pro API
// @version 1.0
// @description Event sign-up queue service for jam sessions: venues, events, song libraries, and a transactional performance queue with capacity and deadline enforcement.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.PingContext(ctx); err != nil {
		cancel()
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}
	cancel()

	metrics.Register()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	venueRepo := postgres.NewVenueRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	signupRepo := postgres.NewSignupRepository(db)
	songRepo := postgres.NewSongRepository(db)
	activityRepo := postgres.NewActivityRepository(db)

	// Adapters
	hasher := authadapter.NewBcryptHasher(bcryptCost)
	codec := authadapter.NewJWTCodec(cfg.JWTSecret)
	mailer := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: emailadapter.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	}, logger)

	var publisher domain.ActivityPublisher
	if cfg.AMQPUrl != "" {
		amqpPublisher, err := mq.NewActivityPublisher(cfg.AMQPUrl, cfg.ActivityQueueName)
		if err != nil {
			logger.Warn("activity publisher unavailable, audit entries stay local", "err", err)
		} else {
			defer amqpPublisher.Close()
			publisher = amqpPublisher
		}
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()
	}

	// Services
	activity := services.NewActivityRecorder(activityRepo, publisher, logger)
	emailService := services.NewEmailService(mailer)
	authService := services.NewAuthService(userRepo, roleRepo, hasher, codec, cfg.TokenExpiry, emailService, activity, logger)
	userService := services.NewUserService(userRepo)
	venueService := services.NewVenueService(venueRepo)
	eventService := services.NewEventService(eventRepo, venueRepo, activity)
	signupService := services.NewSignupQueueService(eventRepo, signupRepo, activity)
	songService := services.NewSongService(songRepo)
	adminService := services.NewAdminService(userRepo, roleRepo, activityRepo)

	mux := delivery.NewRouter(logger, codec, db, delivery.Controllers{
		Auth:   controllers.NewAuthController(logger, authService),
		User:   controllers.NewUserController(logger, userService),
		Song:   controllers.NewSongController(logger, songService),
		Venue:  controllers.NewVenueController(logger, venueService),
		Event:  controllers.NewEventController(logger, eventService),
		Signup: controllers.NewSignupController(logger, signupService),
		Admin:  controllers.NewAdminController(logger, adminService),
	})

	var handler http.Handler = mux
	handler = middleware.RateLimit(middleware.RateLimitConfig{
		Enabled:        cfg.RateLimitEnabled,
		Capacity:       cfg.RateLimitCapacity,
		RefillTokens:   cfg.RateLimitRefillTokens,
		RefillInterval: cfg.RateLimitRefillInterval,
		TTL:            time.Hour,
		Prefix:         "jamqueue:ratelimit",
	}, rdb, logger, handler)
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
