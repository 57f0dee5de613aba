package app

import (
	"context"
	"time"

	"github.com/Chahit/FinTrack-sub001/internal/config"
	httpapi "github.com/Chahit/FinTrack-sub001/internal/delivery/http"
	"github.com/Chahit/FinTrack-sub001/internal/domain"
	"github.com/Chahit/FinTrack-sub001/internal/infra/db"
	"github.com/Chahit/FinTrack-sub001/internal/infra/log"
	"github.com/Chahit/FinTrack-sub001/internal/infra/marketdata"
	"github.com/Chahit/FinTrack-sub001/internal/infra/notify"
	"github.com/Chahit/FinTrack-sub001/internal/usecase"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type App struct {
	server    *httpapi.Server
	scheduler *usecase.Scheduler
	hub       *httpapi.Hub
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

	assetRepo := db.NewAssetRepository(dbConn)
	alertRepo := db.NewAlertRepository(dbConn)
	notificationRepo := db.NewNotificationRepository(dbConn)
	subscriptionRepo := db.NewPushSubscriptionRepository(dbConn)

	finnhub := marketdata.NewFinnhubClient(cfg.FinnhubBaseURL, cfg.FinnhubAPIKey, cfg.PriceFetchTimeout, logger)
	coingecko := marketdata.NewCoinGeckoClient(cfg.CoinGeckoBaseURL, cfg.PriceFetchTimeout, logger)
	limiter := rate.NewLimiter(rate.Limit(cfg.PriceRatePerSec), cfg.PriceRateBurst)

	var prices domain.PriceSource = marketdata.NewRouter(finnhub, coingecko, limiter, cfg.PriceFetchTimeout, logger)

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		prices = marketdata.NewCachedSource(prices, redisClient, cfg.QuoteCacheTTL, logger)
	}

	hub := httpapi.NewHub(logger)

	channels := []notify.Channel{hub}
	if cfg.PushEnabled() {
		channels = append(channels, notify.NewWebPushSender(
			subscriptionRepo, cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.PushContact, logger,
		))
	}
	if cfg.TelegramEnabled() {
		mirror, err := notify.NewTelegramMirror(cfg.TelegramBotToken, cfg.TelegramChatID, logger)
		if err != nil {
			logger.Warn("telegram mirror disabled", zap.Error(err))
		} else {
			channels = append(channels, mirror)
		}
	}
	notifier := notify.NewMulti(channels...)

	dispatcher := usecase.NewDispatcher(alertRepo, notificationRepo, notifier, logger)
	evaluator := usecase.NewEvaluator(alertRepo, prices, dispatcher, logger)
	scheduler := usecase.NewScheduler(evaluator, cfg.EvalInterval, logger)

	assetUC := usecase.NewAssetUsecase(assetRepo)
	alertUC := usecase.NewAlertUsecase(assetRepo, alertRepo)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo, subscriptionRepo)

	handlers := httpapi.NewHandlers(assetUC, alertUC, notificationUC, logger)
	server := httpapi.NewServer(cfg.HTTPAddr, handlers, hub, cfg.AuthSecret, cfg.CORSOrigins, logger)

	cleanup := func() error {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		sqlDB, err := dbConn.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return &App{
		server:    server,
		scheduler: scheduler,
		hub:       hub,
		logger:    logger,
		cleanupFn: cleanup,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("alert service starting")
	a.scheduler.Start(ctx)

	errCh := make(chan error, 1)
	go func() { errCh <- a.server.Start() }()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

func (a *App) Shutdown() {
	a.logger.Info("alert service shutting down")
	a.scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Warn("failed to shut down http server", zap.Error(err))
	}
	a.hub.Close()

	if a.cleanupFn != nil {
		if err := a.cleanupFn(); err != nil {
			a.logger.Warn("failed to close database", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
