package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/sulik0/woking-time-record/api/swagger"
	"github.com/sulik0/woking-time-record/internal/handler"
	"github.com/sulik0/woking-time-record/internal/middleware"
	"github.com/sulik0/woking-time-record/internal/models"
	"github.com/sulik0/woking-time-record/internal/repository"
	"github.com/sulik0/woking-time-record/internal/service"
	"github.com/sulik0/woking-time-record/pkg/cache"
	"github.com/sulik0/woking-time-record/pkg/config"
	"github.com/sulik0/woking-time-record/pkg/database"
	"github.com/sulik0/woking-time-record/pkg/logger"
	corsmiddleware "github.com/sulik0/woking-time-record/pkg/middleware/cors"
	reqidmiddleware "github.com/sulik0/woking-time-record/pkg/middleware/requestid"
	"github.com/sulik0/woking-time-record/pkg/ocrclient"
)

// @title Working Time Record API
// @version 1.0.0
// @description Attendance screenshot recognition and overtime accounting
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		if cfg.Store.Backend == config.StoreBackendRedis {
			logr.Sugar().Fatalw("redis unavailable and selected as record store", "error", err)
		}
		logr.Sugar().Warnw("redis unavailable, summary caching disabled", "error", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck
	}

	var store interface {
		List(ctx context.Context) ([]models.TimeRecord, error)
		ReplaceAll(ctx context.Context, records []models.TimeRecord) error
	}
	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect postgres", "error", err)
		}
		defer db.Close()
		store = repository.NewPostgresRecordRepository(db, cfg.Store.RecordKey)
	default:
		store = repository.NewRecordRepository(redisClient, cfg.Store.RecordKey, logr)
	}

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Store.SummaryCacheTTL, logr, redisClient != nil)

	authSvc := service.NewAuthService(validate, logr, service.AuthConfig{
		Username:     cfg.Auth.AdminUsername,
		PasswordHash: cfg.Auth.AdminPasswordHash,
		Secret:       cfg.Auth.JWTSecret,
		TokenExpiry:  cfg.Auth.TokenExpiry,
	})

	recordSvc := service.NewRecordService(store, cacheSvc, metricsSvc, validate, logr)
	exportSvc := service.NewExportService(recordSvc, logr)
	calendarSvc := service.NewCalendarService()

	recognitionSvc := service.NewRecognitionService(
		ocrclient.New(cfg.OCR.EngineURL),
		metricsSvc,
		logr,
		service.RecognitionConfig{
			Timeout: cfg.OCR.Timeout,
			Workers: cfg.OCR.Workers,
			Retries: cfg.OCR.Retries,
		},
	)

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recognitionSvc.Start(rootCtx)
	defer recognitionSvc.Stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	metricsHandler := handler.NewMetricsHandler(metricsSvc)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authHandler := handler.NewAuthHandler(authSvc)
	recognitionHandler := handler.NewRecognitionHandler(recognitionSvc)
	recordHandler := handler.NewRecordHandler(recordSvc, exportSvc)
	calendarHandler := handler.NewCalendarHandler(calendarSvc)

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))
	{
		protected.POST("/recognition/punch", recognitionHandler.ParsePunch)
		protected.POST("/recognition/stats", recognitionHandler.ParseStats)
		protected.POST("/recognition/punch/image", recognitionHandler.RecognizePunch)
		protected.POST("/recognition/punch/jobs", recognitionHandler.EnqueuePunch)
		protected.GET("/recognition/punch/jobs/:id", recognitionHandler.Job)

		protected.GET("/records", recordHandler.List)
		protected.POST("/records", recordHandler.Create)
		protected.DELETE("/records/:id", recordHandler.Delete)
		protected.GET("/records/summary", recordHandler.Summary)
		protected.GET("/records/export", recordHandler.Export)

		protected.GET("/calendar/day/:date", calendarHandler.Day)
		protected.GET("/calendar/month/:year/:month", calendarHandler.Month)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "store", cfg.Store.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-rootCtx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Warnw("graceful shutdown failed", "error", err)
	}
}
