package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hostal-booking/cmd"
	"hostal-booking/internal/data/memstore"
	"hostal-booking/internal/data/repository"
	"hostal-booking/internal/events"
	"hostal-booking/internal/notify"
	"hostal-booking/internal/scheduler"
	"hostal-booking/internal/wire"
	"hostal-booking/pkg/database"
	"hostal-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("driver", config.Database.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repos *repository.Repository
	switch config.Database.Driver {
	case utils.DriverMemory:
		logger.Warn("Using in-memory storage, data is lost on restart")
		repos = memstore.New().Repository()

	default:
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		logger.Info("Database connected successfully")

		if config.Database.AutoMigrate {
			if err := database.Migrate(ctx, db); err != nil {
				logger.Fatal("Failed to migrate database", zap.Error(err))
			}
			logger.Info("Database schema is up to date")
		}

		repos = repository.NewRepository(db, logger)
	}

	notifier := notify.New(config.Email, logger)

	publisher, err := events.New(config.Kafka, logger)
	if err != nil {
		logger.Fatal("Failed to connect to Kafka", zap.Error(err))
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("Failed to close event publisher", zap.Error(err))
		}
	}()

	// Wire all dependencies
	app := wire.Wiring(repos, config, notifier, publisher, logger)

	if err := app.Service.Auth.EnsureAdmin(ctx, config.Admin.Email, config.Admin.Password); err != nil {
		logger.Fatal("Failed to bootstrap admin account", zap.Error(err))
	}

	completion := scheduler.NewCompletionScheduler(app.Service.Reservation, repos.Session, config.Scheduler.CompletionInterval, logger)
	go completion.Run(ctx)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}
