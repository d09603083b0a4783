// Package main runs the policy-awareness survey HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/policy-pulse/backend/config"
	"github.com/policy-pulse/backend/internal/auth"
	"github.com/policy-pulse/backend/internal/departments"
	"github.com/policy-pulse/backend/internal/middleware"
	"github.com/policy-pulse/backend/internal/ratelimit"
	"github.com/policy-pulse/backend/internal/responses"
	"github.com/policy-pulse/backend/internal/survey"
	"github.com/policy-pulse/backend/internal/surveyconfig"
	"github.com/policy-pulse/backend/pkg/database"
	"github.com/policy-pulse/backend/pkg/queue"
	"github.com/policy-pulse/backend/pkg/redis"
	"github.com/policy-pulse/backend/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	// Redis backs the shared rate-limit counters and the recovery queue.
	// It is optional: without it the limiter stays per-process and deferred
	// submissions are only logged.
	var recoveryQueue survey.RecoveryQueue
	var counterStore ratelimit.CounterStore = ratelimit.NewMemoryStore()
	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Warn("redis unavailable, using in-process rate limiting only", zap.Error(err))
	} else {
		defer rdb.Close()
		recoveryQueue = queue.NewQueue(rdb.Client, logger)
		if cfg.Survey.SharedRateLimit {
			counterStore = ratelimit.NewRedisStore(rdb.Client)
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	// Auth
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, logger)
	if err := auth.EnsureAdmin(ctx, authRepo, cfg.Admin.Username, cfg.Admin.Password, logger); err != nil {
		logger.Fatal("seed admin", zap.Error(err))
	}

	// Survey config
	configRepo := surveyconfig.NewRepository(pool)
	responseRepo := responses.NewRepository(pool)
	configHandler := surveyconfig.NewHandler(configRepo, responseRepo, logger)

	// Submission lifecycle
	limiter := ratelimit.NewLimiter(counterStore, cfg.Survey.RateLimit,
		time.Duration(cfg.Survey.RateWindowSec)*time.Second, logger)
	surveyRepo := survey.NewRepository(pool)
	persister := survey.NewPersister(surveyRepo, recoveryQueue, logger)
	validator := survey.NewValidator(cfg.Survey.StrictOthers)
	surveyHandler := survey.NewHandler(validator, configRepo, limiter, persister, logger)

	// Admin browsing
	departmentRepo := departments.NewRepository(pool)
	departmentHandler := departments.NewHandler(departmentRepo, logger)
	responseHandler := responses.NewHandler(responseRepo, departmentRepo, configRepo, logger)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Public: submission and current window
	router.POST("/submit", surveyHandler.Submit)
	router.GET("/survey-config", configHandler.Get)

	// Auth (public)
	router.POST("/auth/login", authHandler.Login)

	// Admin API (JWT required)
	admin := router.Group("")
	admin.Use(middleware.JWT(jwtService), middleware.RequireRole("admin"))
	{
		admin.PUT("/survey-config", configHandler.Update)
		admin.POST("/survey-config", configHandler.Update)
		admin.DELETE("/survey-config", configHandler.Reset)

		admin.GET("/responses", responseHandler.List)
		admin.GET("/responses/stats", responseHandler.Stats)
		admin.GET("/export", responseHandler.Export)
		admin.POST("/reset-responses", responseHandler.ResetResponses)

		admin.GET("/department-counts", departmentHandler.List)
		admin.PUT("/department-counts", departmentHandler.Replace)

		admin.POST("/auth/admins", authHandler.CreateAdmin)
		admin.DELETE("/auth/admins/:id", authHandler.DeactivateAdmin)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
