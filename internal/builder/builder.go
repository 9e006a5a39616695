package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/custdev-bot/internal/api"
	"github.com/futig/custdev-bot/internal/config"
	"github.com/futig/custdev-bot/internal/pkg/logger"
	"github.com/futig/custdev-bot/internal/repository"
	"github.com/futig/custdev-bot/internal/sheets"
	"github.com/futig/custdev-bot/internal/survey"
	"github.com/futig/custdev-bot/internal/telegram"
	"github.com/futig/custdev-bot/internal/telegram/state"
	surveyuc "github.com/futig/custdev-bot/internal/usecase/survey"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Build wires the whole application: config, logger, survey catalog,
// session store, sheets client, usecase, telegram bot and ops server.
func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	log.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("storage_driver", cfg.StorageCfg.Driver),
	)

	// Validate the survey definition before touching any I/O.
	catalog, err := survey.NewCatalog(cfg.Survey)
	if err != nil {
		return nil, fmt.Errorf("build survey catalog: %w", err)
	}
	log.Info("Survey catalog validated",
		zap.Int("questions", catalog.Len()),
	)

	// Setup session storage
	var storage state.Storage
	var db *pgxpool.Pool
	switch cfg.StorageCfg.Driver {
	case "postgres":
		db, err = setupDatabase(ctx, cfg.StorageCfg, log)
		if err != nil {
			return nil, fmt.Errorf("setup database: %w", err)
		}

		log.Info("Running database migrations")
		if err := repository.RunMigrations(cfg.StorageCfg.DatabaseURL); err != nil {
			db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		log.Info("Database migrations completed successfully")

		storage = repository.NewSessionPostgres(db)
	default:
		storage = repository.NewSessionCache(cfg.StorageCfg.SessionTTL)
	}
	log.Info("Session storage initialized")

	stateManager := state.NewManager(storage)

	// Initialize Google Sheets client
	sheetsClient, err := sheets.NewClient(ctx, cfg.SheetsCfg, log)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, fmt.Errorf("initialize sheets client: %w", err)
	}

	// Initialize use case
	surveyUC := surveyuc.NewUsecase(catalog, stateManager, sheetsClient, log)
	log.Info("Survey usecase initialized")

	// Initialize Telegram bot
	bot, err := telegram.NewBot(&cfg.TelegramCfg, surveyUC, log)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	// Ops server: health, readiness, metrics
	router := api.SetupRouter(storage, log)
	server := &http.Server{
		Addr:         cfg.OpsAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		bot:    bot,
		server: server,
		db:     db,
		logger: log,
	}, nil
}
