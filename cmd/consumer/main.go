package main

import (
	"context"
	"encoding/json"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"gitlab.com/foodshare/backend/internal/config"
	"gitlab.com/foodshare/backend/internal/event"
	"gitlab.com/foodshare/backend/internal/logger"
)

const groupID = "donation-events-consumer-group"

// consumer tails the donation event topic and logs every frame. It is a
// debugging aid for the outbox pipeline.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, err := config.Load()
	log := logger.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	if len(cfg.KafkaBrokers) == 0 {
		log.Fatal("KAFKA_BROKERS is required")
	}

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.KafkaBrokers,
		GroupID:        groupID,
		Topic:          cfg.KafkaTopic,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
	})
	defer func() {
		log.Info("closing kafka reader")
		if err := r.Close(); err != nil {
			log.Error("error closing kafka reader", zap.Error(err))
		}
	}()

	log.Info("consumer connected", zap.String("topic", cfg.KafkaTopic), zap.Strings("brokers", cfg.KafkaBrokers))

	for {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("shutdown signal received, stopping consumer")
				return
			}
			log.Error("error reading message", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
			continue
		}

		var ev struct {
			Name string          `json:"event"`
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			log.Warn("undecodable event", zap.ByteString("value", m.Value), zap.Error(err))
			continue
		}

		log.Info("donation event",
			zap.String("event", ev.Name),
			zap.String("key", string(m.Key)),
			zap.Int("partition", m.Partition),
			zap.Int64("offset", m.Offset),
			zap.Time("timestamp", m.Time),
			zap.ByteString("data", ev.Data),
			zap.Bool("known", event.Known(ev.Name)),
		)
	}
}
