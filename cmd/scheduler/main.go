package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"homequest/internal/config"
	"homequest/internal/logging"
	"homequest/internal/repository"
	"homequest/internal/scheduler"
	"homequest/internal/service"
)

func main() {
	// Temporary logger until config decides the real handler.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)
	slog.Info("Analytics scheduler starting...")

	db, err := repository.NewDB(cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	eventRepo := repository.NewGormEventRepository()
	userRepo := repository.NewGormUserRepository()
	scoreRepo := repository.NewGormScoreRepository()
	learningRepo := repository.NewGormLearningRepository()
	rewardsRepo := repository.NewGormRewardsRepository()
	supportRepo := repository.NewGormSupportRepository()

	extractor, err := service.NewSignalExtractor(db, eventRepo, userRepo, learningRepo, rewardsRepo, supportRepo)
	if err != nil {
		slog.Error("Error building signal extractor", slog.Any("error", err))
		os.Exit(1)
	}
	scoring := service.NewScoringService(extractor)
	schedulerSvc := service.NewSchedulerService(db, userRepo, scoreRepo, eventRepo, scoring, cfg)

	var backend scheduler.Backend
	switch cfg.Scheduler.Backend {
	case config.BackendTemporal:
		backend = scheduler.NewTemporalBackend(schedulerSvc, cfg, logger)
	case config.BackendTicker:
		backend = scheduler.NewTickerBackend(schedulerSvc, cfg, logger)
	default:
		slog.Error("Unknown scheduler backend", slog.String("backend", cfg.Scheduler.Backend))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := backend.Start(ctx); err != nil {
		slog.Error("Error starting scheduler backend", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("Scheduler running", slog.String("backend", cfg.Scheduler.Backend))

	<-ctx.Done()
	slog.Info("Shutdown signal received, stopping...")
	backend.Stop()
	slog.Info("Scheduler exiting.")
}
