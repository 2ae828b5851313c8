package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gitlab.com/foodshare/backend/internal/config"
	"gitlab.com/foodshare/backend/internal/db"
	"gitlab.com/foodshare/backend/internal/identity"
	"gitlab.com/foodshare/backend/internal/kafka"
	"gitlab.com/foodshare/backend/internal/lifecycle"
	"gitlab.com/foodshare/backend/internal/logger"
	"gitlab.com/foodshare/backend/internal/market"
	"gitlab.com/foodshare/backend/internal/notifier"
	"gitlab.com/foodshare/backend/internal/repository/postgresql"
	"gitlab.com/foodshare/backend/internal/server"
	"gitlab.com/foodshare/backend/internal/storage"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, envFile, err := config.Load()
	log := logger.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	if envFile != "" {
		log.Info("loaded env file", zap.String("path", envFile))
	}

	database, err := db.NewDb(ctx, cfg.DSN())
	if err != nil {
		log.Fatal("database init error", zap.Error(err))
	}
	defer database.Close()

	donationRepo := postgresql.NewDonationRepo(database)
	historyRepo := postgresql.NewHistoryRepo(database)
	accountRepo := postgresql.NewAccountRepo(database)
	outboxRepo := postgresql.NewOutboxTaskRepo()

	store := storage.NewPostgresStore(database, donationRepo, historyRepo, accountRepo, outboxRepo, cfg.KafkaTopic)

	hub := notifier.NewHub(log.Named("notifier"))
	service := lifecycle.NewService(store, hub, log.Named("lifecycle"))
	sweeper := lifecycle.NewSweeper(service, cfg.ExpirySweepInterval, log.Named("sweeper"))

	var producer kafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = kafka.NewKafkaProducer(cfg.KafkaBrokers, log.Named("kafka"))
	} else {
		log.Warn("KAFKA_BROKERS not set, outbox events go to the log")
		producer = kafka.NewConsoleProducer(log.Named("kafka"))
	}
	publisher := kafka.NewPublisher(database, outboxRepo, producer, kafka.PublisherConfig{
		PollInterval: cfg.OutboxPollInterval,
		BatchSize:    cfg.OutboxBatchSize,
		MaxAttempts:  cfg.OutboxMaxAttempts,
	}, log.Named("outbox"))

	prices := market.NewCachedSource(
		market.NewDataGovSource(cfg.MarketAPIURL, cfg.MarketAPIKey, log.Named("market")),
		cfg.MarketCacheTTL,
		log.Named("market"),
	)

	srv := server.New(server.Deps{
		Donations: service,
		Accounts:  store,
		Tokens:    identity.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
		Prices:    prices,
		Events:    http.HandlerFunc(hub.ServeWS),
	}, log.Named("http"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx, cfg.HTTPPort) })
	g.Go(func() error { return sweeper.Run(gctx) })
	g.Go(func() error { return publisher.Run(gctx) })

	if err := g.Wait(); err != nil {
		log.Error("service stopped with error", zap.Error(err))
		return
	}
	log.Info("service gracefully stopped")
}
