package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/Ryanj055/sistemadeeventosculturais/config"
	_ "github.com/Ryanj055/sistemadeeventosculturais/docs"
	"github.com/Ryanj055/sistemadeeventosculturais/internal/adapters/auth"
	"github.com/Ryanj055/sistemadeeventosculturais/internal/adapters/codes"
	"github.com/Ryanj055/sistemadeeventosculturais/internal/adapters/email"
	delivery "github.com/Ryanj055/sistemadeeventosculturais/internal/delivery/http"
	"github.com/Ryanj055/sistemadeeventosculturais/internal/delivery/http/controllers"
	"github.com/Ryanj055/sistemadeeventosculturais/internal/delivery/http/middleware"
	"github.com/Ryanj055/sistemadeeventosculturais/internal/repository/postgres"
	"github.com/Ryanj055/sistemadeeventosculturais/internal/services"
)

const tokenExpiry = 24 * time.Hour

// @title Sistema de Eventos Culturais API
// @version 1.0
// @description Cultural events registration: enrollment, waitlist, check-in, and ratings.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	enrollmentRepo := postgres.NewEnrollmentRepository(db)
	waitlistRepo := postgres.NewWaitlistRepository(db)
	ratingRepo := postgres.NewRatingRepository(db)
	reportRepo := postgres.NewReportRepository(db)
	ledger := postgres.NewCapacityLedger(db)

	hasher := auth.NewBcryptHasher(10)
	tokenIssuer, tokenVerifier := auth.NewJWTManager(cfg.JWTSecret)
	codeGenerator := codes.NewGenerator()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretKey,
		},
	})
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}

	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	userService := services.NewUserService(userRepo, hasher, tokenIssuer, tokenExpiry)
	eventService := services.NewEventService(eventRepo, userRepo, ledger)
	enrollmentService := services.NewEnrollmentService(enrollmentRepo, waitlistRepo, eventRepo, userRepo, ledger, codeGenerator, emailService, logger)
	waitlistService := services.NewWaitlistService(waitlistRepo, enrollmentRepo, eventRepo)
	checkInService := services.NewCheckInService(enrollmentRepo)
	ratingService := services.NewRatingService(ratingRepo, enrollmentRepo, eventRepo)
	reportService := services.NewReportService(reportRepo, ratingRepo, eventRepo, userRepo)

	mux := delivery.NewRouter(delivery.Controllers{
		Auth:       controllers.NewAuthController(logger, userService),
		User:       controllers.NewUserController(logger, userService),
		Event:      controllers.NewEventController(logger, eventService),
		Enrollment: controllers.NewEnrollmentController(logger, enrollmentService),
		Waitlist:   controllers.NewWaitlistController(logger, waitlistService),
		CheckIn:    controllers.NewCheckInController(logger, checkInService),
		Rating:     controllers.NewRatingController(logger, ratingService),
		Report:     controllers.NewReportController(logger, reportService),
	}, tokenVerifier, logger)

	handler := middleware.CORS(cfg.CORSAllowedOrigins,
		middleware.RequestID(
			middleware.LoggingMiddleware(logger, mux)))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
