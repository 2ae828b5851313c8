package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"golang.org/x/crypto/bcrypt"

	"gitlab.com/foodshare/backend/internal/db"
	"gitlab.com/foodshare/backend/internal/repository"
	"gitlab.com/foodshare/backend/internal/storage"
)

const uniqueViolation = "23505"

const selectAccount = `
        SELECT id, role, name, email, password, phone, city, farm_size, primary_crops, created_at, updated_at
        FROM accounts
`

type AccountRepo struct {
	db db.DB
}

func NewAccountRepo(database db.DB) storage.AccountRepository {
	return &AccountRepo{db: database}
}

// Create hashes password and stores it in account.Password on success.
func (r *AccountRepo) Create(ctx context.Context, account *repository.Account, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	crops := account.PrimaryCrops
	if crops == nil {
		crops = []string{}
	}

	_, err = r.db.Exec(ctx, `
        INSERT INTO accounts (id, role, name, email, password, phone, city, farm_size, primary_crops, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `, account.ID, account.Role, account.Name, account.Email, string(hashedPassword), account.Phone, account.City,
		account.FarmSize, crops, account.CreatedAt, account.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicate
		}
		return err
	}

	account.Password = string(hashedPassword)
	account.PrimaryCrops = crops
	return nil
}

func (r *AccountRepo) GetByID(ctx context.Context, id string) (*repository.Account, error) {
	var account repository.Account
	err := r.db.Get(ctx, &account, selectAccount+" WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &account, nil
}

// Authenticate never tells an unknown email apart from a wrong password.
func (r *AccountRepo) Authenticate(ctx context.Context, email, role, password string) (*repository.Account, error) {
	var account repository.Account
	err := r.db.Get(ctx, &account, selectAccount+" WHERE email = $1 AND role = $2", email, role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, repository.ErrInvalidCredentials
	}
	return &account, nil
}

func (r *AccountRepo) UpdateFarmProfile(ctx context.Context, id string, farmSize float64, crops []string) (*repository.Account, error) {
	if crops == nil {
		crops = []string{}
	}

	var account repository.Account
	err := r.db.Get(ctx, &account, `
        UPDATE accounts
        SET farm_size = $1, primary_crops = $2, updated_at = now()
        WHERE id = $3 AND role = 'farmer'
        RETURNING id, role, name, email, password, phone, city, farm_size, primary_crops, created_at, updated_at
    `, farmSize, crops, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &account, nil
}
