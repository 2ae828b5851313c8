package kafka

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gitlab.com/foodshare/backend/internal/db"
	"gitlab.com/foodshare/backend/internal/metrics"
	"gitlab.com/foodshare/backend/internal/repository"
	"gitlab.com/foodshare/backend/internal/storage"
)

type PublisherConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
}

// Publisher drains the outbox table into a Producer. Tasks are claimed in one
// transaction (FOR UPDATE SKIP LOCKED, then PROCESSING) so several publishers
// never send the same task concurrently.
type Publisher struct {
	db       db.DB
	repo     storage.OutboxTaskRepository
	producer Producer
	config   PublisherConfig
	logger   *zap.Logger
	timeNow  func() time.Time
}

func NewPublisher(database db.DB, repo storage.OutboxTaskRepository, producer Producer, config PublisherConfig, logger *zap.Logger) *Publisher {
	return &Publisher{
		db:       database,
		repo:     repo,
		producer: producer,
		config:   config,
		logger:   logger,
		timeNow:  time.Now,
	}
}

// Run polls until ctx is cancelled, then closes the producer.
func (p *Publisher) Run(ctx context.Context) error {
	p.logger.Info("starting outbox publisher",
		zap.Duration("poll_interval", p.config.PollInterval),
		zap.Int("batch_size", p.config.BatchSize),
	)
	defer func() {
		if err := p.producer.Close(); err != nil {
			p.logger.Error("failed to close producer", zap.Error(err))
		}
	}()

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := p.ProcessBatch(ctx); err != nil {
				p.logger.Error("outbox publisher failed to process batch", zap.Error(err))
			}
		case <-ctx.Done():
			p.logger.Info("outbox publisher stopping")
			return nil
		}
	}
}

// ProcessBatch sends one batch of processable tasks and reports how many it
// claimed.
func (p *Publisher) ProcessBatch(ctx context.Context) (int, error) {
	var tasks []*repository.OutboxTask

	err := db.InTx(ctx, p.db, func(tx db.Tx) error {
		var err error
		tasks, err = p.repo.GetProcessableTasksTx(ctx, tx, p.config.BatchSize, p.config.MaxAttempts)
		if err != nil {
			return err
		}
		for _, task := range tasks {
			if err := p.repo.UpdateTaskStatusTx(ctx, tx, task.ID, repository.TaskStatusProcessing, task.Attempts, nil, nil); err != nil {
				return fmt.Errorf("failed to mark task %s as PROCESSING: %w", task.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if len(tasks) > 0 {
		p.logger.Debug("outbox publisher fetched tasks", zap.Int("count", len(tasks)))
	}

	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("context cancelled during batch processing", zap.Stringer("task_id", task.ID))
			return len(tasks), err
		}
		if err := p.processTask(ctx, task); err != nil {
			p.logger.Error("failed to process task", zap.Stringer("task_id", task.ID), zap.Error(err))
		}
	}
	return len(tasks), nil
}

func (p *Publisher) processTask(ctx context.Context, task *repository.OutboxTask) error {
	logger := p.logger.With(zap.Stringer("task_id", task.ID), zap.Int("attempt", task.Attempts+1))

	key := []byte(task.Key)
	if len(key) == 0 {
		key = []byte(task.ID.String())
	}

	if err := p.producer.SendMessage(ctx, task.Topic, key, task.Payload); err != nil {
		metrics.OutboxTasksTotal.WithLabelValues("failed").Inc()
		attempts := task.Attempts + 1
		errMsg := err.Error()

		if attempts >= p.config.MaxAttempts {
			logger.Warn("task reached max attempts, giving up", zap.Int("max_attempts", p.config.MaxAttempts))
		}

		if updateErr := p.repo.UpdateTaskStatus(ctx, p.db, task.ID, repository.TaskStatusFailed, attempts, &errMsg, nil); updateErr != nil {
			logger.Error("failed to record send failure", zap.Error(updateErr), zap.NamedError("send_error", err))
			return fmt.Errorf("failed to update task status after send failure: %w", updateErr)
		}
		return err
	}

	metrics.OutboxTasksTotal.WithLabelValues("done").Inc()
	now := p.timeNow().UTC()
	if err := p.repo.UpdateTaskStatus(ctx, p.db, task.ID, repository.TaskStatusDone, task.Attempts+1, nil, &now); err != nil {
		return fmt.Errorf("failed to update task status after successful send: %w", err)
	}
	return nil
}
