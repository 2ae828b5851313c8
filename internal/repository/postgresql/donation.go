package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"

	"gitlab.com/foodshare/backend/internal/db"
	"gitlab.com/foodshare/backend/internal/repository"
	"gitlab.com/foodshare/backend/internal/storage"
)

const selectDonation = `
        SELECT
            d.id, d.donor_id, d.donor_name, d.contact_person, d.phone, d.email,
            d.food_type, d.quantity, d.food_description, d.prepared_time, d.expiry_time,
            d.address, d.city, d.pincode, d.special_instructions,
            d.status, d.claimed_by, a.name AS claimed_by_name, d.created_at, d.updated_at
        FROM donations d
        LEFT JOIN accounts a ON a.id = d.claimed_by
`

const returningDonation = `
        RETURNING
            id, donor_id, donor_name, contact_person, phone, email,
            food_type, quantity, food_description, prepared_time, expiry_time,
            address, city, pincode, special_instructions,
            status, claimed_by, NULL::text AS claimed_by_name, created_at, updated_at
`

type DonationRepo struct {
	db db.DB
}

func NewDonationRepo(db db.DB) storage.DonationRepository {
	return &DonationRepo{db: db}
}

func (r *DonationRepo) CreateTx(ctx context.Context, tx db.Tx, donation *repository.Donation) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO donations (
            id, donor_id, donor_name, contact_person, phone, email,
            food_type, quantity, food_description, prepared_time, expiry_time,
            address, city, pincode, special_instructions,
            status, claimed_by, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
    `, donation.ID, donation.DonorID, donation.DonorName, donation.ContactPerson, donation.Phone, donation.Email,
		donation.FoodType, donation.Quantity, donation.FoodDescription, donation.PreparedTime, donation.ExpiryTime,
		donation.Address, donation.City, donation.Pincode, donation.SpecialInstructions,
		donation.Status, donation.ClaimedBy, donation.CreatedAt, donation.UpdatedAt)
	return err
}

func (r *DonationRepo) GetByID(ctx context.Context, id string) (*repository.Donation, error) {
	var donation repository.Donation
	err := r.db.Get(ctx, &donation, selectDonation+" WHERE d.id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &donation, nil
}

// GetByIDTx locks the donation row until the transaction ends, so concurrent
// writers on the same id queue up behind it.
func (r *DonationRepo) GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Donation, error) {
	var donation repository.Donation
	err := tx.Get(ctx, &donation, selectDonation+" WHERE d.id = $1 FOR UPDATE OF d", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &donation, nil
}

// UpdateTx only ever writes the lifecycle columns; donor and descriptive
// fields are fixed at insert time.
func (r *DonationRepo) UpdateTx(ctx context.Context, tx db.Tx, donation *repository.Donation) error {
	tag, err := tx.Exec(ctx, `
        UPDATE donations
        SET
            status = $1,
            claimed_by = $2,
            updated_at = $3
        WHERE id = $4
    `, donation.Status, donation.ClaimedBy, donation.UpdatedAt, donation.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *DonationRepo) List(ctx context.Context, status string) ([]*repository.Donation, error) {
	query := selectDonation
	var args []interface{}

	if status != "" {
		query += " WHERE d.status = $1"
		args = append(args, status)
	}

	query += " ORDER BY d.created_at DESC, d.id DESC"

	var donations []*repository.Donation
	err := r.db.Select(ctx, &donations, query, args...)
	return donations, err
}

func (r *DonationRepo) GetByDonorID(ctx context.Context, donorID string) ([]*repository.Donation, error) {
	var donations []*repository.Donation
	err := r.db.Select(ctx, &donations,
		selectDonation+" WHERE d.donor_id = $1 ORDER BY d.created_at DESC, d.id DESC", donorID)
	return donations, err
}

func (r *DonationRepo) CountByClaimer(ctx context.Context, claimerID string) (int, error) {
	var count int
	err := r.db.Get(ctx, &count, "SELECT COUNT(*) FROM donations WHERE claimed_by = $1", claimerID)
	return count, err
}

func (r *DonationRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.Get(ctx, &count, "SELECT COUNT(*) FROM donations WHERE status = $1", status)
	return count, err
}

// ExpireOverdueTx is a conditional bulk transition: rows that are no longer
// available when the statement runs are left untouched.
func (r *DonationRepo) ExpireOverdueTx(ctx context.Context, tx db.Tx, now time.Time) ([]*repository.Donation, error) {
	var donations []*repository.Donation
	err := tx.Select(ctx, &donations, `
        UPDATE donations
        SET status = 'expired', updated_at = $1
        WHERE status = 'available' AND expiry_time <= $1
    `+returningDonation, now)
	if err != nil {
		return nil, fmt.Errorf("failed to expire overdue donations: %w", err)
	}
	return donations, nil
}

func (r *DonationRepo) DemandByFoodType(ctx context.Context) ([]*repository.DemandEntry, error) {
	var entries []*repository.DemandEntry
	err := r.db.Select(ctx, &entries, `
        SELECT
            food_type,
            COALESCE(SUM(COALESCE(substring(quantity FROM '\d{1,18}'), '0')::bigint), 0)::bigint AS total_quantity
        FROM donations
        GROUP BY food_type
        ORDER BY total_quantity DESC, food_type ASC
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate demand: %w", err)
	}
	return entries, nil
}

func (r *DonationRepo) PlatformStats(ctx context.Context) (*repository.PlatformStats, error) {
	var stats repository.PlatformStats
	err := r.db.Get(ctx, &stats, `
        SELECT
            (SELECT COUNT(*) FROM donations) AS meals_donated,
            (SELECT COUNT(*) FROM accounts WHERE role = 'ngo') AS ngo_partners,
            (SELECT COUNT(*) FROM accounts WHERE role = 'farmer') AS farmers_connected,
            (SELECT COUNT(DISTINCT city) FROM donations) AS cities_served
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to load platform stats: %w", err)
	}
	return &stats, nil
}
