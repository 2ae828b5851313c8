package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	mock_db "gitlab.com/foodshare/backend/internal/db/mocks"
	mock_kafka "gitlab.com/foodshare/backend/internal/kafka/mocks"
	"gitlab.com/foodshare/backend/internal/repository"
	mock_storage "gitlab.com/foodshare/backend/internal/storage/mocks"
)

func TestPublisher_ProcessBatch(t *testing.T) {
	ctx := context.Background()
	cfg := PublisherConfig{PollInterval: time.Second, BatchSize: 10, MaxAttempts: 3}

	t.Run("claims tasks inside the transaction and marks them done", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_db.NewMockDB(ctrl)
		mockTx := mock_db.NewMockTx(ctrl)
		repo := mock_storage.NewMockOutboxTaskRepository(ctrl)
		producer := mock_kafka.NewMockProducer(ctrl)
		p := NewPublisher(mockDB, repo, producer, cfg, zap.NewNop())

		task := &repository.OutboxTask{
			ID:      uuid.New(),
			Topic:   "donation_events",
			Key:     "d-1",
			Payload: []byte(`{"event":"donationClaimed"}`),
		}

		gomock.InOrder(
			mockDB.EXPECT().BeginTx(ctx).Return(mockTx, nil),
			repo.EXPECT().GetProcessableTasksTx(ctx, mockTx, 10, 3).Return([]*repository.OutboxTask{task}, nil),
			repo.EXPECT().UpdateTaskStatusTx(ctx, mockTx, task.ID, repository.TaskStatusProcessing, 0, nil, nil).Return(nil),
			mockTx.EXPECT().Commit(ctx).Return(nil),
			producer.EXPECT().SendMessage(ctx, "donation_events", []byte("d-1"), task.Payload).Return(nil),
			repo.EXPECT().UpdateTaskStatus(ctx, mockDB, task.ID, repository.TaskStatusDone, 1, nil, gomock.Not(gomock.Nil())).Return(nil),
		)

		n, err := p.ProcessBatch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("send failure records attempt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_db.NewMockDB(ctrl)
		mockTx := mock_db.NewMockTx(ctrl)
		repo := mock_storage.NewMockOutboxTaskRepository(ctrl)
		producer := mock_kafka.NewMockProducer(ctrl)
		p := NewPublisher(mockDB, repo, producer, cfg, zap.NewNop())

		task := &repository.OutboxTask{ID: uuid.New(), Topic: "donation_events", Attempts: 1}

		mockDB.EXPECT().BeginTx(ctx).Return(mockTx, nil)
		repo.EXPECT().GetProcessableTasksTx(ctx, mockTx, 10, 3).Return([]*repository.OutboxTask{task}, nil)
		repo.EXPECT().UpdateTaskStatusTx(ctx, mockTx, task.ID, repository.TaskStatusProcessing, 1, nil, nil).Return(nil)
		mockTx.EXPECT().Commit(ctx).Return(nil)
		producer.EXPECT().SendMessage(ctx, "donation_events", []byte(task.ID.String()), gomock.Any()).
			Return(errors.New("broker unavailable"))
		repo.EXPECT().UpdateTaskStatus(ctx, mockDB, task.ID, repository.TaskStatusFailed, 2, gomock.Any(), nil).
			DoAndReturn(func(_ context.Context, _ interface{}, _ uuid.UUID, _ repository.TaskStatus, _ int, lastError *string, _ *time.Time) error {
				require.NotNil(t, lastError)
				assert.Equal(t, "broker unavailable", *lastError)
				return nil
			})

		n, err := p.ProcessBatch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("fetch failure rolls back", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_db.NewMockDB(ctrl)
		mockTx := mock_db.NewMockTx(ctrl)
		repo := mock_storage.NewMockOutboxTaskRepository(ctrl)
		p := NewPublisher(mockDB, repo, mock_kafka.NewMockProducer(ctrl), cfg, zap.NewNop())

		mockDB.EXPECT().BeginTx(ctx).Return(mockTx, nil)
		repo.EXPECT().GetProcessableTasksTx(ctx, mockTx, 10, 3).Return(nil, errors.New("db down"))
		mockTx.EXPECT().Rollback(gomock.Any()).Return(nil)

		_, err := p.ProcessBatch(ctx)
		assert.ErrorContains(t, err, "db down")
	})
}

func TestPublisher_RunClosesProducer(t *testing.T) {
	ctrl := gomock.NewController(t)
	producer := mock_kafka.NewMockProducer(ctrl)
	producer.EXPECT().Close().Return(nil)

	p := NewPublisher(mock_db.NewMockDB(ctrl), mock_storage.NewMockOutboxTaskRepository(ctrl), producer,
		PublisherConfig{PollInterval: time.Hour, BatchSize: 1, MaxAttempts: 1}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, p.Run(ctx))
}
