package http

import (
	"log/slog"
	"net/http"

	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"github.com/avopro-hr/hr-backend-go/internal/handler/http/middleware"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/jwt"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/ratelimit"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups every handler mounted by NewRouter.
type Handlers struct {
	Auth         AuthHandler
	Leave        LeaveHandler
	Overtime     OvertimeHandler
	Requests     RequestHandler
	Notification NotificationHandler
	User         UserHandler
	Dashboard    DashboardHandler
	Verification VerificationHandler
}

type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	// PublicLimiter throttles the unauthenticated routes per client IP.
	PublicLimiter *ratelimit.KeyedLimiter
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	if cfg.Logger != nil {
		r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	public := func(next http.Handler) http.Handler { return next }
	if cfg.PublicLimiter != nil {
		public = middleware.RateLimit(cfg.PublicLimiter)
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(public)
				r.Post("/register", h.Auth.Register)
				r.Post("/login", h.Auth.Login)
				r.Post("/forgot-password", h.Auth.ForgotPassword)
				r.Post("/reset-password", h.Auth.ResetPassword)
			})
			r.Post("/logout", h.Auth.Logout)
		})

		r.With(public).Get("/verify/{leaveID}", h.Verification.Verify)

		authenticated := chi.Chain(
			jwtauth.Verifier(JWTService.JWTAuth()),
			middleware.AuthRequired(JWTService),
		)

		r.Route("/notifications", func(r chi.Router) {
			// Authenticated by a short-lived query token instead of the header
			r.Get("/stream", h.Notification.Stream)

			r.Group(func(r chi.Router) {
				r.Use(authenticated...)
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Patch("/mark-read", h.Notification.MarkAllAsRead)
				r.Post("/stream-token", h.Notification.GetStreamToken)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(authenticated...)

			r.Route("/leave", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionRequestCreate)).Post("/", h.Leave.CreateRequest)
				r.Get("/my", h.Leave.GetMyRequests)
				r.Get("/{id}", h.Leave.GetRequest)
				r.Get("/{id}/document", h.Leave.GetDocument)
				r.With(middleware.RequirePermission(user.PermissionRequestDecide)).Patch("/{id}/status", h.Leave.DecideRequest)
			})

			r.Route("/overtime", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionRequestCreate)).Post("/", h.Overtime.CreateRequest)
				r.Get("/my", h.Overtime.GetMyRequests)
				r.With(middleware.RequirePermission(user.PermissionRequestDecide)).Patch("/{id}/status", h.Overtime.DecideRequest)
			})

			r.With(middleware.RequirePermission(user.PermissionRequestViewAll)).Get("/requests", h.Requests.ListAll)

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionUserManage))
				r.Get("/", h.User.List)
				r.Patch("/{id}", h.User.Update)
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", h.User.GetProfile)
				r.Patch("/", h.User.UpdateProfile)
			})

			r.Get("/dashboard/summary", h.Dashboard.GetSummary)
		})
	})
	return r
}
