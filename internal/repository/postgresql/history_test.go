package postgresql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_database "gitlab.com/foodshare/backend/internal/db/mocks"
	"gitlab.com/foodshare/backend/internal/repository"
)

func TestHistoryRepo_CreateTx(t *testing.T) {
	ctx := context.Background()
	actor := "ngo-1"
	entry := &repository.HistoryEntry{
		DonationID: "d-1",
		Status:     "claimed",
		ActorID:    &actor,
		ChangedAt:  time.Now(),
	}

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := NewHistoryRepo(mockDB)

		mockTx.EXPECT().Exec(
			gomock.Any(),
			gomock.Any(),
			gomock.Eq(entry.DonationID),
			gomock.Eq(entry.Status),
			gomock.Eq(entry.ActorID),
			gomock.Eq(entry.ChangedAt),
		).Return(nil, nil)

		err := repo.CreateTx(ctx, mockTx, entry)
		assert.NoError(t, err)
	})

	t.Run("DB Error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := NewHistoryRepo(mockDB)

		expectedErr := errors.New("db error")
		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, expectedErr)

		err := repo.CreateTx(ctx, mockTx, entry)
		assert.Equal(t, expectedErr, err)
	})
}

func TestHistoryRepo_GetByDonationID(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockDB := mock_database.NewMockDB(ctrl)
	repo := NewHistoryRepo(mockDB)

	mockDB.EXPECT().
		Select(ctx, gomock.Any(), gomock.Any(), "d-1").
		DoAndReturn(func(_ context.Context, dest interface{}, query string, _ ...interface{}) error {
			assert.Contains(t, query, "ORDER BY changed_at ASC")
			*dest.(*[]*repository.HistoryEntry) = []*repository.HistoryEntry{
				{ID: 1, DonationID: "d-1", Status: "available"},
				{ID: 2, DonationID: "d-1", Status: "claimed"},
			}
			return nil
		})

	entries, err := repo.GetByDonationID(ctx, "d-1")
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "claimed", entries[1].Status)
}
