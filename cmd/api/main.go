package main

import (
	"context"
	"net/http"
	"os"

	"github.com/svaldeco/atelierq-backend/api/routes"
	"github.com/svaldeco/atelierq-backend/internal/auth"
	"github.com/svaldeco/atelierq-backend/internal/boards"
	"github.com/svaldeco/atelierq-backend/internal/items"
	"github.com/svaldeco/atelierq-backend/internal/notifications"
	"github.com/svaldeco/atelierq-backend/internal/rfq"
	"github.com/svaldeco/atelierq-backend/internal/users"
	"github.com/svaldeco/atelierq-backend/pkg/auth/session"
	"github.com/svaldeco/atelierq-backend/pkg/config"
	"github.com/svaldeco/atelierq-backend/pkg/db"
	"github.com/svaldeco/atelierq-backend/pkg/logger"
	"github.com/svaldeco/atelierq-backend/pkg/metrics"
	"github.com/svaldeco/atelierq-backend/pkg/migrate"
	"github.com/svaldeco/atelierq-backend/pkg/outbox"
	"github.com/svaldeco/atelierq-backend/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	boardsRepo := boards.NewRepository(dbClient.DB())
	boardsService, err := boards.NewService(boardsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create boards service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notifications.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	itemsRepo := items.NewRepository(dbClient.DB())
	rfqRepo := rfq.NewRepository(dbClient.DB())
	outboxService := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)

	itemsService, err := items.NewService(
		itemsRepo,
		dbClient,
		items.NewValidator(items.DefaultWhitelist()),
		items.NewNormalizer(cfg.Items.MaxDimensionCM),
		boardsRepo,
		rfqRepo,
		notificationsService,
		outboxService,
		logg,
		metrics.NewUpdatePipelineMetrics(prometheus.DefaultRegisterer),
		cfg.Notify.SupplierTimeout,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create items service", err)
		os.Exit(1)
	}

	rfqService, err := rfq.NewService(rfqRepo, itemsRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create rfq service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			authService,
			registerService,
			boardsService,
			itemsService,
			rfqService,
			notificationsService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
