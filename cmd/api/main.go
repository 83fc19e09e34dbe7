package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/config"
	appHTTP "github.com/avopro-hr/hr-backend-go/internal/handler/http"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/cron"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/database"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/email"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/jwt"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/pdf"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/ratelimit"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/sse"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/storage"
	"github.com/avopro-hr/hr-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/avopro-hr/hr-backend-go/internal/service/auth"
	dashboardService "github.com/avopro-hr/hr-backend-go/internal/service/dashboard"
	documentService "github.com/avopro-hr/hr-backend-go/internal/service/document"
	notificationService "github.com/avopro-hr/hr-backend-go/internal/service/notification"
	userService "github.com/avopro-hr/hr-backend-go/internal/service/user"
	verificationService "github.com/avopro-hr/hr-backend-go/internal/service/verification"
	"github.com/avopro-hr/hr-backend-go/internal/service/workflow"
	"github.com/go-chi/httplog/v3"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "avopro-hr"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := postgresql.EnsureSchema(ctx, db); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	accessExpiration, err := time.ParseDuration(cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("parse access expiration: %w", err)
	}

	transactor := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	overtimeRequestRepo := postgresql.NewOvertimeRequestRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath)
		if err != nil {
			return fmt.Errorf("initialize local storage: %w", err)
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}

	emailService, err := email.NewEmailService(cfg.SMTP, cfg.Organization.Name)
	if err != nil {
		return fmt.Errorf("initialize email service: %w", err)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, accessExpiration)
	hub := sse.NewHub()
	notificationSvc := notificationService.NewNotificationService(notificationRepo, userRepo, hub)
	documentSvc := documentService.NewDocumentService(pdf.NewRenderer(cfg.Organization), fileStorage, emailService, cfg.App.FrontendURL)
	authSvc := serviceAuth.NewAuthService(userRepo, JWTService, emailService, notificationSvc, serviceAuth.Config{
		FrontendURL:   cfg.App.FrontendURL,
		ResetTokenTTL: cfg.PasswordReset.TokenTTL,
	})
	leaveSvc := workflow.NewLeaveService(transactor, userRepo, leaveRequestRepo, notificationSvc, documentSvc)
	overtimeSvc := workflow.NewOvertimeService(userRepo, overtimeRequestRepo, notificationSvc)
	feedSvc := workflow.NewFeedService(leaveRequestRepo, overtimeRequestRepo)
	userSvc := userService.NewUserService(userRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, userRepo)
	verificationSvc := verificationService.NewVerificationService(leaveRequestRepo)

	publicLimiter := ratelimit.NewKeyedLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)

	scheduler := cron.NewScheduler()
	cron.NewMaintenanceJobs(authSvc, JWTService, publicLimiter, cfg.Jobs.ResetTokenPurgeInterval).RegisterJobs(scheduler)
	scheduler.Start()

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Logger:         logger,
		AllowedOrigins: []string{cfg.App.FrontendURL},
		PublicLimiter:  publicLimiter,
	}, JWTService, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Overtime:     appHTTP.NewOvertimeHandler(overtimeSvc),
		Requests:     appHTTP.NewRequestHandler(feedSvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc, JWTService),
		User:         appHTTP.NewUserHandler(userSvc),
		Dashboard:    appHTTP.NewDashboardHandler(dashboardSvc),
		Verification: appHTTP.NewVerificationHandler(verificationSvc),
	})

	// No WriteTimeout: notification streams stay open.
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	server.RegisterOnShutdown(hub.Close)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("HTTP server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		scheduler.Stop()
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	}
	scheduler.Stop()
	documentSvc.Wait()

	slog.Info("Server exited gracefully")
	return nil
}
