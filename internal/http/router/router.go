package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pragyanai/demotrack/internal/auth"
	"github.com/pragyanai/demotrack/internal/config"
	"github.com/pragyanai/demotrack/internal/domain"
	"github.com/pragyanai/demotrack/internal/http/handler"
	"github.com/pragyanai/demotrack/internal/http/middleware"
	"github.com/pragyanai/demotrack/internal/sheets"
	"go.uber.org/zap"
)

type Router struct {
	cfg               *config.Config
	logger            *zap.Logger
	sheetsClient      *sheets.Client
	authMiddleware    *auth.Middleware
	rateLimiter       *middleware.RateLimiter
	authHandler       *handler.AuthHandler
	eventHandler      *handler.EventHandler
	enrollmentHandler *handler.EnrollmentHandler
	evaluationHandler *handler.EvaluationHandler
	projectHandler    *handler.ProjectHandler
	qaHandler         *handler.QAHandler
	adminHandler      *handler.AdminHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	sheetsClient *sheets.Client,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	eventHandler *handler.EventHandler,
	enrollmentHandler *handler.EnrollmentHandler,
	evaluationHandler *handler.EvaluationHandler,
	projectHandler *handler.ProjectHandler,
	qaHandler *handler.QAHandler,
	adminHandler *handler.AdminHandler,
) *Router {
	return &Router{
		cfg:               cfg,
		logger:            logger,
		sheetsClient:      sheetsClient,
		authMiddleware:    authMiddleware,
		rateLimiter:       rateLimiter,
		authHandler:       authHandler,
		eventHandler:      eventHandler,
		enrollmentHandler: enrollmentHandler,
		evaluationHandler: evaluationHandler,
		projectHandler:    projectHandler,
		qaHandler:         qaHandler,
		adminHandler:      adminHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Sheets health check (readiness probe against the users workbook)
	r.Get("/health/sheets", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := rt.sheetsClient.Ping(r.Context(), rt.cfg.Sheets.UsersSpreadsheetID); err != nil {
			rt.logger.Error("Sheets health check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "sheets",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "sheets",
		})
	})

	// Combined readiness check (checks all dependencies)
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := rt.sheetsClient.Ping(r.Context(), rt.cfg.Sheets.UsersSpreadsheetID); err != nil {
			rt.logger.Error("Sheets health check failed", zap.Error(err))
			checks["sheets"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["sheets"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": map[bool]string{true: "healthy", false: "unhealthy"}[allHealthy],
			"checks": checks,
		})
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no auth required)
		r.Post("/auth/signup", rt.authHandler.Signup)
		r.Post("/auth/login", rt.authHandler.Login)
		r.Post("/auth/admin/login", rt.authHandler.AdminLogin)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)
			r.Use(rt.rateLimiter.Limit)

			// Auth
			r.Get("/auth/me", rt.authHandler.Me)

			// Events
			r.Route("/events", func(r chi.Router) {
				r.Get("/", rt.eventHandler.List)
				r.Get("/active", rt.eventHandler.ListActive)
				r.Get("/{name}", rt.eventHandler.Get)

				// Enrollments
				r.Get("/{name}/submissions", rt.enrollmentHandler.List)
				r.Get("/{name}/submissions/me", rt.enrollmentHandler.Mine)
				r.Post("/{name}/submissions", rt.enrollmentHandler.Enroll)

				// Evaluations: peer scoring is open to every authenticated
				// role, students included
				r.Get("/{name}/evaluations", rt.evaluationHandler.List)
				r.Post("/{name}/evaluations", rt.evaluationHandler.Evaluate)

				// Lead-only event lifecycle
				r.Group(func(r chi.Router) {
					r.Use(rt.authMiddleware.RequireRole(domain.RoleLead, domain.RoleAdmin))
					r.Post("/", rt.eventHandler.Create)
					r.Put("/{name}", rt.eventHandler.Update)
				})

				// Admin-only event finalization
				r.Group(func(r chi.Router) {
					r.Use(rt.authMiddleware.RequireRole(domain.RoleAdmin))
					r.Post("/{name}/sheet", rt.eventHandler.CreateSheet)
					r.Post("/{name}/approve", rt.eventHandler.Approve)
				})
			})

			// Projects
			r.Route("/projects", func(r chi.Router) {
				r.Get("/", rt.projectHandler.List)
				r.Get("/me", rt.projectHandler.Mine)
				r.Get("/{title}", rt.projectHandler.Get)
			})

			// Report question answering
			r.Post("/qa", rt.qaHandler.Ask)

			// Admin
			r.Route("/admin", func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireRole(domain.RoleAdmin))
				r.Get("/stats", rt.adminHandler.Stats)
				r.Get("/users", rt.adminHandler.ApprovedUsers)
				r.Get("/users/pending", rt.adminHandler.PendingUsers)
				r.Get("/users/leads", rt.adminHandler.Leads)
				r.Post("/users/approve", rt.adminHandler.ApproveUsers)
				r.Post("/users/{userName}/promote", rt.adminHandler.PromoteUser)
				r.Get("/logs", rt.adminHandler.Logs)
			})
		})
	})

	return r
}
