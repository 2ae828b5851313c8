package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"gitlab.com/foodshare/backend/internal/db"
	mock_database "gitlab.com/foodshare/backend/internal/db/mocks"
)

func TestInTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)

		mockDB.EXPECT().BeginTx(ctx).Return(mockTx, nil)
		mockTx.EXPECT().Commit(ctx).Return(nil)

		called := false
		err := db.InTx(ctx, mockDB, func(tx db.Tx) error {
			called = true
			assert.Equal(t, mockTx, tx)
			return nil
		})

		assert.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("rolls back and returns fn error unchanged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)

		sentinel := errors.New("not available")
		mockDB.EXPECT().BeginTx(ctx).Return(mockTx, nil)
		mockTx.EXPECT().Rollback(gomock.Any()).Return(nil)

		err := db.InTx(ctx, mockDB, func(db.Tx) error { return sentinel })

		assert.Same(t, sentinel, err)
	})

	t.Run("begin failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)

		mockDB.EXPECT().BeginTx(ctx).Return(nil, errors.New("pool closed"))

		err := db.InTx(ctx, mockDB, func(db.Tx) error {
			t.Fatal("fn must not run without a transaction")
			return nil
		})

		assert.ErrorContains(t, err, "pool closed")
	})

	t.Run("commit failure rolls back", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)

		mockDB.EXPECT().BeginTx(ctx).Return(mockTx, nil)
		mockTx.EXPECT().Commit(ctx).Return(errors.New("serialization failure"))
		mockTx.EXPECT().Rollback(gomock.Any()).Return(nil)

		err := db.InTx(ctx, mockDB, func(db.Tx) error { return nil })

		assert.ErrorContains(t, err, "commit transaction")
	})
}
