package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"capacityhub/backend/config"
	"capacityhub/backend/internal/api/handler"
	"capacityhub/backend/internal/api/router"
	"capacityhub/backend/internal/repository"
	"capacityhub/backend/internal/service"
	"capacityhub/backend/pkg/database"
	"capacityhub/backend/pkg/jwt"
	applogger "capacityhub/backend/pkg/logger"
	"capacityhub/backend/pkg/redis"
)

func main() {
	// 1. load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}

	// 2. initialize logging
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting up...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. connect to the database
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	logger.Info("database connected")

	// 3.1 run database migrations
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("acquire underlying sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	// 4. connect to Redis (optional: degrade instead of aborting startup;
	// token blacklist and event publishing become unavailable)
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis connection failed, token blacklist and events disabled", zap.Error(err))
		rdb = nil
	}

	// 5. initialize the JWT manager
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. dependency injection: Repository → Service → Handler
	var notifier service.EventNotifier
	if rdb != nil {
		notifier = rdb
	}
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, notifier, logger)
	h := handler.NewHandler(svc)

	// 7. set up routes
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. start the HTTP server (graceful shutdown)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	// 9. wait for termination signals, then shut down gracefully
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received, draining...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	// close database connections
	closeDB, _ := db.DB()
	if closeDB != nil {
		closeDB.Close()
	}

	// close Redis
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
