package app

import (
	"context"

	"github.com/matheusmoreno/quichesaver/internal/config"
	"github.com/matheusmoreno/quichesaver/internal/delivery/telegram"
	"github.com/matheusmoreno/quichesaver/internal/infra/db"
	"github.com/matheusmoreno/quichesaver/internal/infra/fetch"
	"github.com/matheusmoreno/quichesaver/internal/infra/log"
	"github.com/matheusmoreno/quichesaver/internal/parser"
	"github.com/matheusmoreno/quichesaver/internal/usecase"
	"go.uber.org/zap"
)

type App struct {
	bot       *telegram.Bot
	monitor   *usecase.Monitor
	logger    *zap.Logger
	cleanupFn func() error
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := log.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	dbConn, err := db.Open(cfg, logger)
	if err != nil {
		return nil, err
	}

	userRepo := db.NewUserRepository(dbConn)
	itemRepo := db.NewItemRepository(dbConn)
	registry := parser.NewRegistry()
	fetcher := fetch.NewClient(cfg.FetchTimeout, cfg.FetchUserAgent, logger)

	userUC := usecase.NewUserUsecase(userRepo)
	subUC := usecase.NewSubscriptionUsecase(userRepo, itemRepo, registry, fetcher, logger)

	api, err := telegram.NewAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, err
	}

	notifier := telegram.NewNotifier(api, logger)
	monitor := usecase.NewMonitor(itemRepo, registry, fetcher, notifier, usecase.MonitorConfig{
		MonitorInterval:  cfg.MonitorInterval,
		ItemInterval:     cfg.ItemInterval,
		MaxFetchFailures: cfg.FetchMaxFailures,
		RemoveOnMatch:    cfg.RemoveOnMatch,
	}, logger)
	handlers := telegram.NewHandlers(userUC, subUC, registry.Sites(), logger)
	bot := telegram.NewBot(api, handlers, cfg.TelegramPollTimeout)

	cleanup := func() error {
		sqlDB, err := dbConn.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return &App{bot: bot, monitor: monitor, logger: logger, cleanupFn: cleanup}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("quichesaver service starting")

	monitorDone := make(chan struct{})
	go func() {
		defer close(monitorDone)
		_ = a.monitor.Run(ctx)
	}()

	a.logger.Info("quichesaver service started")
	err := a.bot.Start(ctx)
	<-monitorDone
	return err
}

func (a *App) Shutdown() {
	a.logger.Info("quichesaver service shutting down")
	if a.cleanupFn != nil {
		if err := a.cleanupFn(); err != nil {
			a.logger.Warn("failed to close database", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
