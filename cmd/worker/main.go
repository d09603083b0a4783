// Package main runs the recovery worker that replays deferred submissions
// from the Redis queue into PostgreSQL.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/policy-pulse/backend/config"
	"github.com/policy-pulse/backend/internal/survey"
	"github.com/policy-pulse/backend/internal/worker"
	"github.com/policy-pulse/backend/pkg/database"
	"github.com/policy-pulse/backend/pkg/queue"
	"github.com/policy-pulse/backend/pkg/redis"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	surveyRepo := survey.NewRepository(pool)
	recoveryQueue := queue.NewQueue(rdb.Client, logger)
	processor := worker.NewRecoveryProcessor(surveyRepo, recoveryQueue, logger)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		cancel()
	}()

	logger.Info("recovery worker started")
	processor.Run(ctx)
	logger.Info("recovery worker stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
