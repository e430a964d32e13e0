package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"video-hub/internal/config"
	"video-hub/internal/database"
	"video-hub/internal/handlers"
	"video-hub/internal/identity"
	"video-hub/internal/logging"
	"video-hub/internal/metrics"
	customMiddleware "video-hub/internal/middleware"
	"video-hub/internal/notify"
	"video-hub/internal/ratelimit"
	"video-hub/internal/repository"
	"video-hub/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const (
	loginAttempts = 5
	loginWindow   = 10 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger := logging.New("error", "production")
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := logging.New(cfg.Server.LogLevel, cfg.Server.Env)
	metrics.Register()

	// Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.DBName, logger)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.Disconnect(ctx, db); err != nil {
			logger.Warn().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	// Initialize repositories
	videoRepo := repository.NewVideoRepo(db)
	accountRepo := repository.NewAccountRepo(db)

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	if err := videoRepo.EnsureIndexes(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to create video indexes")
	}
	if err := accountRepo.EnsureIndexes(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to create account indexes")
	}
	cancel()

	// Identity
	tokens, err := identity.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize token service")
	}
	provider := identity.NewMongoProvider(accountRepo, tokens)
	bootstrapAccount(provider, cfg.Bootstrap, logger)

	// Outbound notifications
	notifier := notify.NewLogNotifier(logger)
	mailer := notify.NewResendMailer(cfg.Mail.ResendAPIKey, cfg.Mail.FromEmail, logger)

	var limiter ratelimit.Limiter
	if cfg.Redis.Addr != "" {
		client := ratelimit.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer client.Close()
		limiter = ratelimit.NewRedisLimiter(client, "login", loginAttempts, loginWindow)
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("login rate limiting enabled")
	} else {
		logger.Warn().Msg("REDIS_ADDR not set, login rate limiting disabled")
	}

	// Services and handlers
	videoService := service.NewVideoService(videoRepo, notifier, logger)
	userService := service.NewUserService(provider, mailer, logger)

	videoHandler := handlers.NewVideoHandler(videoService, logger)
	userHandler := handlers.NewUserHandler(userService, logger)
	authHandler := handlers.NewAuthHandler(provider, limiter, logger)

	// Setup chi router
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(customMiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"video-hub"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Public routes
	r.Post("/auth/login", authHandler.Login)

	// Protected routes (bearer token required)
	r.Route("/api", func(r chi.Router) {
		r.Use(customMiddleware.BearerAuth(provider, logger))

		r.Get("/user", userHandler.GetUserInfo)
		r.Post("/register", userHandler.Register)

		r.Post("/video", videoHandler.SetVideo)
		r.Get("/video", videoHandler.GetVideoList)
		r.Post("/video/{videoId}", videoHandler.AddRating)
		r.Get("/by-week/{year}/{week}", videoHandler.GetVideosForWeek)
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Server.Port).Str("env", cfg.Server.Env).Msg("video-hub starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("shutting down")
	ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// bootstrapAccount creates the configured first account, if any, so a fresh
// deployment has someone who can call /api/register.
func bootstrapAccount(provider *identity.MongoProvider, cfg config.BootstrapConfig, logger zerolog.Logger) {
	if cfg.Email == "" || cfg.Password == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	record, created, err := provider.EnsureUser(ctx, identity.CreateRequest{
		Email:         cfg.Email,
		Password:      cfg.Password,
		EmailVerified: true,
	})
	if err != nil {
		logger.Error().Err(err).Str("email", cfg.Email).Msg("failed to bootstrap account")
		return
	}
	if created {
		logger.Info().Str("user_id", record.UID).Str("email", record.Email).Msg("bootstrap account created")
	}
}
