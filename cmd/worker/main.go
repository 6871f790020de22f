package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/svaldeco/atelierq-backend/internal/boards"
	"github.com/svaldeco/atelierq-backend/internal/delivery"
	"github.com/svaldeco/atelierq-backend/internal/items"
	"github.com/svaldeco/atelierq-backend/internal/notifications"
	"github.com/svaldeco/atelierq-backend/internal/rfq"
	"github.com/svaldeco/atelierq-backend/pkg/config"
	"github.com/svaldeco/atelierq-backend/pkg/db"
	"github.com/svaldeco/atelierq-backend/pkg/logger"
	"github.com/svaldeco/atelierq-backend/pkg/migrate"
	"github.com/svaldeco/atelierq-backend/pkg/outbox/idempotency"
	"github.com/svaldeco/atelierq-backend/pkg/pubsub"
	"github.com/svaldeco/atelierq-backend/pkg/redis"
)

const processedEventTTL = 7 * 24 * time.Hour

func main() {
	logg := logger.New(logger.Options{ServiceName: "worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "worker"

	logg = logger.New(logger.Options{
		ServiceName: "worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap pubsub", err)
		os.Exit(1)
	}
	defer func() {
		if err := pubsubClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing pubsub client", err)
		}
	}()

	idempotencyManager, err := idempotency.NewManager(redisClient, processedEventTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create idempotency manager", err)
		os.Exit(1)
	}

	itemsRepo := items.NewRepository(dbClient.DB())
	boardsRepo := boards.NewRepository(dbClient.DB())
	rfqRepo := rfq.NewRepository(dbClient.DB())

	notificationConsumer, err := notifications.NewConsumer(
		notifications.NewRepository(dbClient.DB()),
		rfqRepo,
		itemsRepo,
		pubsubClient.NotificationSubscription(),
		idempotencyManager,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create notification consumer", err)
		os.Exit(1)
	}

	deliveryConsumer, err := delivery.NewConsumer(
		delivery.NewRepository(dbClient.DB()),
		delivery.NewEstimator(),
		itemsRepo,
		boardsRepo,
		pubsubClient.DeliverySubscription(),
		idempotencyManager,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create delivery consumer", err)
		os.Exit(1)
	}

	service, err := NewService(ServiceParams{
		Config:               cfg,
		Logger:               logg,
		DB:                   dbClient,
		Redis:                redisClient,
		PubSub:               pubsubClient,
		NotificationConsumer: notificationConsumer,
		DeliveryConsumer:     deliveryConsumer,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create worker service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": "worker",
	})
	logg.Info(ctx, "starting worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "worker shutting down gracefully")
}
