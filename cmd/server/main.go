package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/acadflow/ethics-review/internal/application/service"
	"github.com/acadflow/ethics-review/internal/config"
	"github.com/acadflow/ethics-review/internal/infrastructure/persistence/repository"
	"github.com/acadflow/ethics-review/internal/infrastructure/persistence/sqlite"
	httpserver "github.com/acadflow/ethics-review/internal/interfaces/http"
	"github.com/acadflow/ethics-review/pkg/auth"
	"github.com/acadflow/ethics-review/pkg/database"
	"github.com/acadflow/ethics-review/pkg/utils"
)

func main() {
	// Load .env if present; real environments configure via the process env
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Ethics Review Workflow System",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
		logger.Fatal("Failed to create database directory", zap.Error(err))
	}

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	txManager := sqlite.NewDB(db.DB, logger)

	// Repositories
	applicationRepo := repository.NewApplicationRepository(db.DB, logger)
	processRepo := repository.NewProcessRepository(db.DB, logger)
	workflowRepo := repository.NewWorkflowRepository(db.DB, logger)
	reviewRepo := repository.NewReviewRepository(db.DB, logger)
	notificationRepo := repository.NewNotificationRepository(db.DB, logger)
	userRepo := repository.NewUserRepository(db.DB, logger)
	documentRepo := repository.NewDocumentRepository(db.DB, logger)

	// Services
	sugar := sugaredLogger{logger.Sugar()}
	tokens := auth.NewManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	transitionService := service.NewTransitionService(
		processRepo, applicationRepo, workflowRepo, reviewRepo,
		notificationRepo, userRepo, txManager, sugar,
	)
	workflowService := service.NewWorkflowService(workflowRepo, txManager, sugar)
	applicationService := service.NewApplicationService(
		applicationRepo, processRepo, workflowRepo, reviewRepo,
		documentRepo, txManager, sugar,
	)
	notificationService := service.NewNotificationService(notificationRepo, sugar)
	authService := service.NewAuthService(userRepo, tokens, sugar)
	reportService := service.NewReportService(applicationRepo, sugar)

	// First boot on an empty database seeds the super admin from config
	if cfg.Auth.BootstrapEmail != "" {
		if err := authService.Bootstrap(context.Background(),
			cfg.Auth.BootstrapName, cfg.Auth.BootstrapEmail, cfg.Auth.BootstrapPassword); err != nil {
			logger.Fatal("Failed to bootstrap administrator account", zap.Error(err))
		}
	}

	if cfg.Reminder.Enabled {
		reminderService := service.NewReminderService(
			applicationRepo, userRepo, notificationRepo,
			cfg.Reminder.PendingAfter, cfg.Reminder.Schedule, sugar,
		)
		if err := reminderService.Start(); err != nil {
			logger.Fatal("Failed to start reminder scheduler", zap.Error(err))
		}
		defer reminderService.Stop()
	}

	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		httpserver.Services{
			Transition:   transitionService,
			Workflow:     workflowService,
			Application:  applicationService,
			Notification: notificationService,
			Auth:         authService,
			Report:       reportService,
		},
		tokens,
		sugar,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}

// sugaredLogger adapts *zap.SugaredLogger to the key/value Logger
// interfaces expected by the services and HTTP server.
type sugaredLogger struct{ s *zap.SugaredLogger }

func (l sugaredLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Infow(msg, keysAndValues...)
}

func (l sugaredLogger) Error(msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, keysAndValues...)
}
