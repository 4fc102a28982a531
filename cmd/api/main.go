package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pragyanai/demotrack/internal/auth"
	"github.com/pragyanai/demotrack/internal/config"
	"github.com/pragyanai/demotrack/internal/http/handler"
	"github.com/pragyanai/demotrack/internal/http/middleware"
	"github.com/pragyanai/demotrack/internal/http/router"
	"github.com/pragyanai/demotrack/internal/jobs"
	"github.com/pragyanai/demotrack/internal/logger"
	"github.com/pragyanai/demotrack/internal/rag"
	"github.com/pragyanai/demotrack/internal/repository"
	"github.com/pragyanai/demotrack/internal/service"
	"github.com/pragyanai/demotrack/internal/sheets"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	// Connect to Google Sheets
	sheetsClient, err := sheets.NewClient(ctx, &cfg.Sheets, log)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(sheetsClient, cfg.Sheets.UsersSpreadsheetID, log)
	adminRepo := repository.NewAdminRepository(sheetsClient, cfg.Sheets.UsersSpreadsheetID, log)
	eventRepo := repository.NewEventRepository(sheetsClient, cfg.Sheets.EventsSpreadsheetID, log)
	submissionRepo := repository.NewSubmissionRepository(sheetsClient, log)
	evaluationRepo := repository.NewEvaluationRepository(sheetsClient, log)

	// Initialize the report QA pipeline (optional - the portal runs
	// without it if no Gemini API key is configured)
	var pipeline *rag.Pipeline
	if cfg.RAG.GeminiAPIKey != "" {
		gemini, err := rag.NewGeminiClient(ctx, cfg.RAG.GeminiAPIKey, cfg.RAG.EmbeddingModel, cfg.RAG.ChatModel)
		if err != nil {
			log.Warn("Gemini client setup failed, continuing without report QA", zap.Error(err))
		} else {
			loader := rag.NewHTTPLoader(&http.Client{Timeout: cfg.RAG.FetchTimeoutDuration()}, log)
			pipeline = rag.NewPipeline(loader, gemini, gemini, rag.Options{
				ChunkSize:    cfg.RAG.ChunkSize,
				ChunkOverlap: cfg.RAG.ChunkOverlap,
				TopK:         cfg.RAG.TopK,
				CacheTTL:     cfg.RAG.DocumentCacheTTLDuration(),
			}, log)
			log.Info("Report QA pipeline initialized",
				zap.String("embedding_model", cfg.RAG.EmbeddingModel),
				zap.String("chat_model", cfg.RAG.ChatModel),
			)
		}
	} else {
		log.Info("Gemini API key not configured, report QA disabled")
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, adminRepo, log)
	userService := service.NewUserService(userRepo, log)
	eventService := service.NewEventService(eventRepo, sheetsClient, cfg.Sheets.TemplateSpreadsheetID, log)
	enrollmentService := service.NewEnrollmentService(eventService, submissionRepo, log)
	evaluationService := service.NewEvaluationService(eventService, submissionRepo, evaluationRepo, log)
	projectService := service.NewProjectService(eventRepo, submissionRepo, cfg.Sheets.AggregationConcurrency, cfg.Sheets.ProjectCacheTTLDuration(), log)
	dashboardService := service.NewDashboardService(userRepo, eventRepo, submissionRepo, cfg.Sheets.AggregationConcurrency, log)
	qaService := service.NewQAService(projectService, pipelineOrNil(pipeline), log)

	// Initialize middleware
	issuer := auth.NewTokenIssuer(&cfg.Auth)
	authMiddleware := auth.NewMiddleware(issuer, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, issuer, log)
	eventHandler := handler.NewEventHandler(eventService, log)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService, log)
	evaluationHandler := handler.NewEvaluationHandler(evaluationService, log)
	projectHandler := handler.NewProjectHandler(projectService, log)
	qaHandler := handler.NewQAHandler(qaService, log)
	adminHandler := handler.NewAdminHandler(userService, dashboardService, cfg.Logging.FilePath, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		sheetsClient,
		authMiddleware,
		rateLimiter,
		authHandler,
		eventHandler,
		enrollmentHandler,
		evaluationHandler,
		projectHandler,
		qaHandler,
		adminHandler,
	)

	// Start the background project cache refresh
	scheduler := jobs.NewScheduler(log)
	refreshJob := jobs.NewProjectRefreshJob(projectService, log, cfg.Server.RequestTimeoutDuration())
	if err := scheduler.AddJob(jobs.ProjectRefreshJobName, cfg.Sheets.ProjectRefreshCron, refreshJob.Run); err != nil {
		log.Error("Failed to register project refresh job", zap.Error(err))
	} else {
		scheduler.Start()
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		stopCtx := scheduler.Stop()
		<-stopCtx.Done()
		log.Info("Scheduler stopped")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		log.Info("Server stopped")
	}

	return nil
}

// pipelineOrNil keeps the QA service's ReportAnswerer nil when report QA
// is disabled. A typed nil *rag.Pipeline would slip past the service's
// nil check otherwise.
func pipelineOrNil(p *rag.Pipeline) service.ReportAnswerer {
	if p == nil {
		return nil
	}
	return p
}
