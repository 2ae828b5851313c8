package postgresql

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_database "gitlab.com/foodshare/backend/internal/db/mocks"
	"gitlab.com/foodshare/backend/internal/repository"
)

func TestOutboxTaskRepo_CreateTx(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockTx := mock_database.NewMockTx(ctrl)
	repo := NewOutboxTaskRepo()

	task := &repository.OutboxTask{
		Payload: json.RawMessage(`{"event":"newDonation"}`),
		Topic:   "donation_events",
		Key:     "d-1",
	}

	mockTx.EXPECT().
		Exec(ctx, gomock.Any(), gomock.Any(), repository.TaskStatusCreated, task.Payload, "donation_events", "d-1",
			gomock.Any(), gomock.Any()).
		Return(pgconn.CommandTag("INSERT 0 1"), nil)

	require.NoError(t, repo.CreateTx(ctx, mockTx, task))
	assert.NotEqual(t, uuid.Nil, task.ID)
	assert.Equal(t, repository.TaskStatusCreated, task.Status)
}

func TestOutboxTaskRepo_GetProcessableTasksTx(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockTx := mock_database.NewMockTx(ctrl)
	repo := NewOutboxTaskRepo()

	mockTx.EXPECT().
		Select(ctx, gomock.Any(), gomock.Any(), repository.TaskStatusCreated, repository.TaskStatusFailed, 5, 10).
		DoAndReturn(func(_ context.Context, dest interface{}, query string, _ ...interface{}) error {
			assert.Contains(t, query, "FOR UPDATE SKIP LOCKED")
			*dest.(*[]*repository.OutboxTask) = []*repository.OutboxTask{{ID: uuid.New()}}
			return nil
		})

	tasks, err := repo.GetProcessableTasksTx(ctx, mockTx, 10, 5)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestOutboxTaskRepo_UpdateTaskStatus(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		repo := NewOutboxTaskRepo()

		mockDB.EXPECT().
			Exec(ctx, gomock.Any(), id, repository.TaskStatusDone, 1, gomock.Nil(), gomock.Any()).
			Return(pgconn.CommandTag("UPDATE 1"), nil)

		assert.NoError(t, repo.UpdateTaskStatus(ctx, mockDB, id, repository.TaskStatusDone, 1, nil, nil))
	})

	t.Run("Missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := NewOutboxTaskRepo()

		mockTx.EXPECT().
			Exec(ctx, gomock.Any(), id, repository.TaskStatusFailed, 2, gomock.Any(), gomock.Any()).
			Return(pgconn.CommandTag("UPDATE 0"), nil)

		msg := "broker down"
		err := repo.UpdateTaskStatusTx(ctx, mockTx, id, repository.TaskStatusFailed, 2, &msg, nil)
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})
}
