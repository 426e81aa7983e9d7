package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-dashboard-api/internal/auth"
	"github.com/yukikurage/project-dashboard-api/internal/config"
	"github.com/yukikurage/project-dashboard-api/internal/database"
	"github.com/yukikurage/project-dashboard-api/internal/handlers"
	"github.com/yukikurage/project-dashboard-api/internal/notifications"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.MigrateDatabase(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Notification pipeline
	queue, err := notifications.NewQueue(notifications.QueueConfig{
		Backend: cfg.NotifyQueue,
		Redis: notifications.RedisQueueConfig{
			Address:  cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Queue:    cfg.RedisQueue,
		},
		RabbitMQ: notifications.RabbitMQConfig{
			URL:     cfg.RabbitMQURL,
			Queue:   cfg.RabbitMQQueue,
			Durable: true,
		},
	})
	if err != nil {
		logger.Fatal("failed to open notification queue", zap.Error(err), zap.String("backend", cfg.NotifyQueue))
	}
	dispatcher := notifications.NewDispatcher(queue, logger)

	var mailer notifications.Mailer
	if cfg.SMTPHost != "" {
		mailer = notifications.NewSMTPMailer(notifications.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
	} else {
		mailer = notifications.NewLogMailer(logger)
	}

	workerCtx, stopWorker := context.WithCancel(context.Background())
	worker := notifications.NewWorker(queue, mailer, cfg.NotifyWorkers, logger)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		if err := worker.Run(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("notification worker stopped", zap.Error(err))
		}
	}()

	tokens := auth.NewJWTService(cfg.JWTSecret, time.Duration(cfg.AccessTokenExpireMinutes)*time.Minute)

	r, err := handlers.NewRouter(handlers.RouterConfig{
		DB:          db,
		Tokens:      tokens,
		Notifier:    dispatcher,
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatal("failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("server shutdown", zap.Error(err))
	}

	// Closing the queue lets the worker finish what is buffered; cancel it
	// only if that outlasts the shutdown deadline.
	dispatcher.Wait()
	if err := queue.Close(); err != nil {
		logger.Warn("failed to close notification queue", zap.Error(err))
	}
	select {
	case <-workerDone:
	case <-ctx.Done():
		logger.Warn("notification worker did not drain before shutdown deadline")
	}
	stopWorker()
	<-workerDone

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("failed to close database connection", zap.Error(err))
		}
	}
}

// newLogger builds the production or development zap logger at the level
// named by cfg.LogLevel.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	}
	if cfg.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
		}
		zcfg.Level = level
	}
	return zcfg.Build()
}
