package postgresql

import (
	"context"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	mock_database "gitlab.com/foodshare/backend/internal/db/mocks"
	"gitlab.com/foodshare/backend/internal/repository"
)

func TestAccountRepo_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success hashes password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		repo := NewAccountRepo(mockDB)

		var stored string
		mockDB.EXPECT().
			Exec(ctx, gomock.Any(), gomock.Any(), "ngo", "Helping Hands", "hh@example.com", gomock.Any(),
				gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, args ...interface{}) (pgconn.CommandTag, error) {
				stored = args[4].(string)
				return pgconn.CommandTag("INSERT 0 1"), nil
			})

		account := &repository.Account{ID: "a-1", Role: "ngo", Name: "Helping Hands", Email: "hh@example.com"}
		require.NoError(t, repo.Create(ctx, account, "secret"))

		assert.NotEqual(t, "secret", stored)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("secret")))
		assert.Equal(t, []string{}, account.PrimaryCrops)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		repo := NewAccountRepo(mockDB)

		mockDB.EXPECT().
			Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
				gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, &pgconn.PgError{Code: "23505"})

		err := repo.Create(ctx, &repository.Account{ID: "a-1", Role: "ngo"}, "secret")
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})
}

func TestAccountRepo_Authenticate(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	fill := func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
		a := dest.(*repository.Account)
		a.ID = "a-1"
		a.Role = "donor"
		a.Password = string(hash)
		return nil
	}

	tests := []struct {
		name     string
		password string
		getErr   error
		wantErr  error
	}{
		{name: "Success", password: "secret"},
		{name: "Wrong password", password: "nope", wantErr: repository.ErrInvalidCredentials},
		{name: "Unknown email", password: "secret", getErr: pgx.ErrNoRows, wantErr: repository.ErrInvalidCredentials},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockDB := mock_database.NewMockDB(ctrl)
			repo := NewAccountRepo(mockDB)

			call := mockDB.EXPECT().Get(ctx, gomock.Any(), gomock.Any(), "d@example.com", "donor")
			if tc.getErr != nil {
				call.Return(tc.getErr)
			} else {
				call.DoAndReturn(fill)
			}

			account, err := repo.Authenticate(ctx, "d@example.com", "donor", tc.password)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "a-1", account.ID)
		})
	}
}
