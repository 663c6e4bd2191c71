package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/app"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/config"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/database"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/application"
	apphttp "github.com/amadokevin66-sudo/back-trabajatec/internal/http"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/http/handlers"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/http/metrics"
	httpmw "github.com/amadokevin66-sudo/back-trabajatec/internal/http/middleware"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/http/response"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/mail"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/observability"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/repository/postgres"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/security"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()
	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := postgres.NewUserRepository(db)
	refreshRepo := postgres.NewRefreshTokenRepository(db)
	technicianRepo := postgres.NewTechnicianProfileRepository(db)
	companyRepo := postgres.NewCompanyProfileRepository(db)
	projectRepo := postgres.NewProjectRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)
	hasher := security.NewBcryptHasher()
	mailer := mail.NewMailer(mail.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	}, logger)
	store, err := storage.NewLocalStore(cfg.UploadRoot)
	if err != nil {
		log.Fatal(err)
	}

	authService := app.NewAuthService(userRepo, refreshRepo, jwtProvider, hasher, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, logger)
	profileService := app.NewProfileService(technicianRepo, companyRepo)
	projectService := app.NewProjectService(projectRepo)
	applicationService := app.NewApplicationService(
		applicationRepo,
		projectRepo,
		technicianRepo,
		companyRepo,
		userRepo,
		notificationRepo,
		mailer,
		store,
		application.TransitionPolicy{AllowDecisionRevision: cfg.AllowDecisionRevision},
		cfg.OpsEmail,
		logger,
	)
	notificationService := app.NewNotificationService(notificationRepo)
	messageService := app.NewMessageService(messageRepo, applicationRepo, projectRepo)
	reviewService := app.NewReviewService(reviewRepo, projectRepo, applicationRepo)

	var rateLimiter httpmw.Limiter
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		rateLimiter = httpmw.NewRedisLimiter(redis.NewClient(opts))
	} else {
		rateLimiter = httpmw.NewRateLimiter()
	}

	authMiddleware := httpmw.NewAuthMiddleware(jwtProvider)
	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:         handlers.NewAuthHandler(authService, rateLimiter),
		ProfileHandler:      handlers.NewProfileHandler(profileService),
		ProjectHandler:      handlers.NewProjectHandler(projectService),
		ApplicationHandler:  handlers.NewApplicationHandler(applicationService, rateLimiter),
		MessageHandler:      handlers.NewMessageHandler(messageService),
		ReviewHandler:       handlers.NewReviewHandler(reviewService),
		NotificationHandler: handlers.NewNotificationHandler(notificationService),
		UploadHandler:       handlers.NewUploadHandler(store, profileService),
		MetricsHandler:      handlers.NewMetricsHandler(collector),
		HealthHandler:       handlers.NewHealthHandler(db),
		AuthMiddleware:      authMiddleware,
		Metrics:             collector,
		Logger:              logger,
		RequestTimeout:      cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.HTTPPort).Msg("API started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
	logger.Info().Msg("API stopped")
}
