package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devso-backend/config"
	"devso-backend/internal/batch"
	v1 "devso-backend/internal/delivery/http/v1"
	"devso-backend/internal/repository/postgres"
	"devso-backend/internal/usecase"
	"devso-backend/pkg/database"
	"devso-backend/pkg/logger"
	"devso-backend/pkg/redis"
	"devso-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init()
	logger.Log.Info("Starting devso backend", "port", cfg.Port)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		logger.Log.Error("Failed to build zap logger", "error", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (rate limiting; in-memory fallback when unavailable)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	followRepo := postgres.NewFollowRepository(dbPool)
	recruitRepo := postgres.NewRecruitRepository(dbPool)
	cleanupRepo := postgres.NewCleanupRepository(dbPool)

	// 6. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	userUC := usecase.NewUserUsecase(userRepo, followRepo, validate)
	followUC := usecase.NewFollowUsecase(followRepo, userRepo)
	recruitUC := usecase.NewRecruitUsecase(recruitRepo, validate)

	// 7. Setup Cleanup Batch
	runner := batch.NewTaskletRunner(zapLogger)
	runner.Register(batch.CleanupJobName, batch.NewSoftDeleteCleanupTasklet(cleanupRepo, zapLogger))

	scheduler, err := batch.NewCleanupScheduler(runner, batch.SchedulerConfig{
		Expression:    cfg.CleanupCron,
		Timezone:      cfg.CleanupTimezone,
		ExecutionDate: cfg.CleanupExecutionDate,
	}, zapLogger)
	if err != nil {
		logger.Log.Error("Failed to build cleanup scheduler", "error", err)
		os.Exit(1)
	}
	if err := scheduler.Start(); err != nil {
		logger.Log.Error("Failed to start cleanup scheduler", "error", err)
		os.Exit(1)
	}

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		UserUC:    userUC,
		FollowUC:  followUC,
		RecruitUC: recruitUC,
		Config:    cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
