package postgresql

import (
	"context"

	"gitlab.com/foodshare/backend/internal/db"
	"gitlab.com/foodshare/backend/internal/repository"
	"gitlab.com/foodshare/backend/internal/storage"
)

type HistoryRepo struct {
	db db.DB
}

func NewHistoryRepo(db db.DB) storage.HistoryRepository {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) CreateTx(ctx context.Context, tx db.Tx, entry *repository.HistoryEntry) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO donation_history (
            donation_id, status, actor_id, changed_at
        ) VALUES ($1, $2, $3, $4)
    `, entry.DonationID, entry.Status, entry.ActorID, entry.ChangedAt)
	return err
}

func (r *HistoryRepo) GetByDonationID(ctx context.Context, donationID string) ([]*repository.HistoryEntry, error) {
	var entries []*repository.HistoryEntry
	err := r.db.Select(ctx, &entries, `
        SELECT id, donation_id, status, actor_id, changed_at
        FROM donation_history
        WHERE donation_id = $1
        ORDER BY changed_at ASC, id ASC
    `, donationID)
	return entries, err
}
