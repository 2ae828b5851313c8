//go:generate mockgen -source ./repositories.go -destination=./mocks/repositories.go -package=mock_storage
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gitlab.com/foodshare/backend/internal/db"
	"gitlab.com/foodshare/backend/internal/repository"
)

type DonationRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, donation *repository.Donation) error
	GetByID(ctx context.Context, id string) (*repository.Donation, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Donation, error)
	UpdateTx(ctx context.Context, tx db.Tx, donation *repository.Donation) error
	List(ctx context.Context, status string) ([]*repository.Donation, error)
	GetByDonorID(ctx context.Context, donorID string) ([]*repository.Donation, error)
	CountByClaimer(ctx context.Context, claimerID string) (int, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	ExpireOverdueTx(ctx context.Context, tx db.Tx, now time.Time) ([]*repository.Donation, error)
	DemandByFoodType(ctx context.Context) ([]*repository.DemandEntry, error)
	PlatformStats(ctx context.Context) (*repository.PlatformStats, error)
}

type HistoryRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, entry *repository.HistoryEntry) error
	GetByDonationID(ctx context.Context, donationID string) ([]*repository.HistoryEntry, error)
}

type AccountRepository interface {
	Create(ctx context.Context, account *repository.Account, password string) error
	GetByID(ctx context.Context, id string) (*repository.Account, error)
	Authenticate(ctx context.Context, email, role, password string) (*repository.Account, error)
	UpdateFarmProfile(ctx context.Context, id string, farmSize float64, crops []string) (*repository.Account, error)
}

type OutboxTaskRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, task *repository.OutboxTask) error
	GetProcessableTasksTx(ctx context.Context, tx db.Tx, limit, maxAttempts int) ([]*repository.OutboxTask, error)
	UpdateTaskStatusTx(ctx context.Context, tx db.Tx, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error
	UpdateTaskStatus(ctx context.Context, database db.DB, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error
}
