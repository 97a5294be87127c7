package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
	"github.com/vcscsvcscs/wellness-companion/internal/analysis"
	"github.com/vcscsvcscs/wellness-companion/internal/audit"
	"github.com/vcscsvcscs/wellness-companion/internal/config"
	"github.com/vcscsvcscs/wellness-companion/internal/handler"
	"github.com/vcscsvcscs/wellness-companion/internal/notify"
	"github.com/vcscsvcscs/wellness-companion/internal/pdf"
	"github.com/vcscsvcscs/wellness-companion/internal/profile"
	"github.com/vcscsvcscs/wellness-companion/internal/repository"
	"github.com/vcscsvcscs/wellness-companion/internal/scheduler"
	"github.com/vcscsvcscs/wellness-companion/internal/service"
	"github.com/vcscsvcscs/wellness-companion/pkg/api"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("storage_driver", cfg.Storage.Driver),
	)

	ctx := context.Background()

	// Open the backing store
	backend, err := repository.Open(ctx, cfg.StoreOptions(), logger)
	if err != nil {
		logger.Fatal("Failed to open backing store", zap.Error(err))
	}
	defer backend.Close(context.Background())

	// Audit trail goes to the database when one is attached
	auditLogger := audit.NewLogger(backend.Pool, logger)
	if err := auditLogger.EnsureSchema(ctx); err != nil {
		logger.Fatal("Failed to create audit schema", zap.Error(err))
	}

	// Initialize services
	wellnessService := service.NewWellnessService(
		backend.Store,
		analysis.NewEngine(),
		auditLogger,
		logger,
		service.Options{AnalysisDelay: cfg.Analysis.Delay},
	)
	wellnessService.Load(ctx)

	profiles := profile.NewStaticProvider(cfg.Profile.Name, cfg.Profile.PregnancyStage)
	mailer := newMailer(cfg, logger)

	insightsService := service.NewInsightsService(wellnessService, profiles, mailer, logger)
	summaryService := service.NewSummaryService(wellnessService, profiles, pdf.NewPDFGenerator(logger), logger)
	privacyService := service.NewPrivacyService(wellnessService, profiles, auditLogger, logger)

	// Initialize handlers
	var pinger handler.Pinger
	if backend.Ping != nil {
		pinger = handler.PingFunc(backend.Ping)
	}
	handlers := handler.Handlers{
		Health:   handler.NewHealthHandler(pinger, profiles, logger),
		Wellness: handler.NewWellnessHandler(wellnessService, logger),
		Insights: handler.NewInsightsHandler(insightsService, summaryService, logger),
		GDPR:     handler.NewGDPRHandler(privacyService, auditLogger, logger),
	}

	var doc *openapi3.T
	if cfg.Server.ValidateRequests {
		doc, err = api.LoadSpec(ctx)
		if err != nil {
			logger.Fatal("Failed to load OpenAPI document", zap.Error(err))
		}
	}

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := handler.NewRouter(handlers, handler.RouterOptions{
		AllowedOrigins:       cfg.Server.AllowedOrigins,
		Spec:                 doc,
		SlowRequestThreshold: cfg.Server.SlowRequestThreshold,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to build router", zap.Error(err))
	}

	// Background jobs
	var jobs *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		loc, err := cfg.Scheduler.Location()
		if err != nil {
			logger.Fatal("Invalid scheduler timezone", zap.Error(err))
		}

		jobs, err = scheduler.NewScheduler(wellnessService, insightsService, scheduler.Config{
			TrimSpec:      cfg.Scheduler.TrimSpec,
			DigestSpec:    cfg.Scheduler.DigestSpec,
			RemindersSpec: cfg.Scheduler.RemindersSpec,
			WindowDays:    cfg.Metrics.WindowDays,
			JobTimeout:    cfg.Scheduler.JobTimeout,
			Location:      loc,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to create scheduler", zap.Error(err))
		}
		jobs.Start()
	}

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if jobs != nil {
		jobs.Stop(shutdownCtx)
	}

	logger.Info("Server exited")
}

// newLogger builds the zap logger from the logging section
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Server.Environment == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = level
	zc.Encoding = cfg.Logging.Format

	return zc.Build()
}

// newMailer returns the SendGrid mailer when an API key is configured and
// a logging mailer otherwise
func newMailer(cfg *config.Config, logger *zap.Logger) notify.Mailer {
	if cfg.Notify.SendGridAPIKey == "" {
		logger.Info("SendGrid not configured, emails will only be logged")
		return notify.NewLogMailer(logger)
	}

	mailer, err := notify.NewSendGridMailer(cfg.Notify.SendGridAPIKey, cfg.Notify.FromName, cfg.Notify.FromEmail, logger)
	if err != nil {
		logger.Fatal("Failed to initialize SendGrid mailer", zap.Error(err))
	}
	return mailer
}
