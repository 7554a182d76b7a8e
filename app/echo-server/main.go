package main

import (
	"context"
	"fmt"
	"log"
	"myWellnessCentre/app/echo-server/metrics"
	"myWellnessCentre/app/echo-server/router"
	"myWellnessCentre/business/pagination"
	"myWellnessCentre/business/payments"
	"myWellnessCentre/business/session"
	userService "myWellnessCentre/business/user"
	"myWellnessCentre/domain"
	"myWellnessCentre/internal/identity"
	"myWellnessCentre/internal/middleware"
	"myWellnessCentre/internal/repository/notification"
	psqlRepo "myWellnessCentre/internal/repository/postgres"
	redisRepo "myWellnessCentre/internal/repository/redis"
	"myWellnessCentre/internal/rest"
	"myWellnessCentre/pkg/config"
	"myWellnessCentre/pkg/database"
	redisClient "myWellnessCentre/pkg/database/redis"
	"myWellnessCentre/pkg/logger"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting Wellness Centre API", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	rdb, err := redisClient.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	credentialRepo := psqlRepo.NewCredentialRepository(db)
	paymentsRepo := psqlRepo.NewPaymentsRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(rdb)
	previewRepo := redisRepo.NewPreviewRepository(rdb)
	cursorRepo := redisRepo.NewCursorRepository(rdb, cfg.Pagination.CursorTTL)

	paymentPages := pagination.NewPaginator[domain.Payment](psqlRepo.NewPaymentCollectionRepository(db), cursorRepo)
	userPages := pagination.NewPaginator[domain.User](psqlRepo.NewUserCollectionRepository(db), cursorRepo)

	provider := identity.NewProvider(credentialRepo, tokenRepo, cfg.JWT.SecretKey, cfg.JWT.TTL)

	// Init service
	sessionService := session.NewSessionService(provider, userRepo, mailjetEmail, userPages, validate, cfg.App.AppDeploymentUrl)
	defer sessionService.Close()
	userService := userService.NewUserService(userRepo, userPages, validate, cfg.App.AppDeploymentUrl)
	paymentsService := payments.NewPaymentsService(userRepo, paymentsRepo, previewRepo, mailjetEmail, paymentPages, validate, cfg.Payments.PreviewTTL)

	// Init handler
	authHandler := rest.NewAuthHandler(sessionService)
	userHandler := rest.NewUserHandler(userService)
	paymentsHandler := rest.NewPaymentsHandler(paymentsService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	metrics.Init()
	e.Use(echomiddleware.Recover())
	e.Use(metrics.Middleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.App.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := middleware.AuthMiddleware(sessionService)

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupAuthRoutes(api, authHandler, authRequired)
	router.SetupServiceRoutes(api)
	router.SetupMeRoutes(api, userHandler, paymentsHandler, authRequired)
	router.SetupAdminRoutes(api, authHandler, userHandler, paymentsHandler, authRequired)
	router.SetupMetricsRoute(e)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if err := redisClient.CloseRedisClient(rdb); err != nil {
		logger.Error("Redis close error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Info("Server stopped")
}
