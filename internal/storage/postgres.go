package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gitlab.com/foodshare/backend/internal/db"
	"gitlab.com/foodshare/backend/internal/event"
	"gitlab.com/foodshare/backend/internal/repository"
)

type PostgresStore struct {
	db           db.DB
	donationRepo DonationRepository
	historyRepo  HistoryRepository
	accountRepo  AccountRepository
	outboxRepo   OutboxTaskRepository
	topic        string
	timeNow      func() time.Time
}

func NewPostgresStore(
	database db.DB,
	donationRepo DonationRepository,
	historyRepo HistoryRepository,
	accountRepo AccountRepository,
	outboxRepo OutboxTaskRepository,
	topic string,
) *PostgresStore {
	return &PostgresStore{
		db:           database,
		donationRepo: donationRepo,
		historyRepo:  historyRepo,
		accountRepo:  accountRepo,
		outboxRepo:   outboxRepo,
		topic:        topic,
		timeNow:      time.Now,
	}
}

func (s *PostgresStore) Create(ctx context.Context, donation Donation) (Donation, error) {
	now := s.timeNow().UTC()
	if donation.ID == "" {
		donation.ID = uuid.NewString()
	}
	if donation.Status == "" {
		donation.Status = StatusAvailable
	}
	donation.ClaimedBy = nil
	donation.CreatedAt = now
	donation.UpdatedAt = now

	err := db.InTx(ctx, s.db, func(tx db.Tx) error {
		if err := s.donationRepo.CreateTx(ctx, tx, toRepoDonation(donation)); err != nil {
			return fmt.Errorf("failed to add donation: %w", err)
		}
		if err := s.appendHistory(ctx, tx, donation, donation.DonorID); err != nil {
			return err
		}
		return s.enqueue(ctx, tx, donation.ID, event.Created(donation))
	})
	if err != nil {
		return Donation{}, err
	}
	return donation, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (Donation, error) {
	row, err := s.donationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return Donation{}, ErrNotFound
		}
		return Donation{}, fmt.Errorf("failed to get donation: %w", err)
	}
	return fromRepoDonation(row), nil
}

func (s *PostgresStore) FindByQuery(ctx context.Context, filter Filter) ([]Donation, error) {
	rows, err := s.donationRepo.List(ctx, string(filter.Status))
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	return fromRepoDonations(rows), nil
}

func (s *PostgresStore) FindByOwner(ctx context.Context, donorID string) ([]Donation, error) {
	rows, err := s.donationRepo.GetByDonorID(ctx, donorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get donor donations: %w", err)
	}
	return fromRepoDonations(rows), nil
}

// Update holds the row lock from the read until commit, so the mutator always
// sees the latest committed state of the donation.
func (s *PostgresStore) Update(ctx context.Context, id string, mutate Mutator) (Donation, error) {
	var updated Donation

	err := db.InTx(ctx, s.db, func(tx db.Tx) error {
		row, err := s.donationRepo.GetByIDTx(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to lock donation: %w", err)
		}

		current := fromRepoDonation(row)
		next := current
		if err := mutate(&next); err != nil {
			return err
		}

		next.ID = current.ID
		next.DonorID = current.DonorID
		next.CreatedAt = current.CreatedAt
		next.UpdatedAt = s.timeNow().UTC()
		if next.UpdatedAt.Before(current.UpdatedAt) {
			next.UpdatedAt = current.UpdatedAt
		}

		if err := s.donationRepo.UpdateTx(ctx, tx, toRepoDonation(next)); err != nil {
			return fmt.Errorf("failed to update donation: %w", err)
		}

		if next.Status != current.Status {
			actor := ""
			if next.ClaimedBy != nil {
				actor = next.ClaimedBy.ID
			}
			if err := s.appendHistory(ctx, tx, next, actor); err != nil {
				return err
			}
			if ev, ok := transitionEvent(next); ok {
				if err := s.enqueue(ctx, tx, next.ID, ev); err != nil {
					return err
				}
			}
		}

		updated = next
		return nil
	})
	if err != nil {
		return Donation{}, err
	}
	return updated, nil
}

func (s *PostgresStore) CountClaimedBy(ctx context.Context, claimantID string) (int, error) {
	count, err := s.donationRepo.CountByClaimer(ctx, claimantID)
	if err != nil {
		return 0, fmt.Errorf("failed to count claimed donations: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) CountByStatus(ctx context.Context, status Status) (int, error) {
	count, err := s.donationRepo.CountByStatus(ctx, string(status))
	if err != nil {
		return 0, fmt.Errorf("failed to count donations: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) ExpireOverdue(ctx context.Context, now time.Time) ([]Donation, error) {
	var expired []Donation

	err := db.InTx(ctx, s.db, func(tx db.Tx) error {
		rows, err := s.donationRepo.ExpireOverdueTx(ctx, tx, now.UTC())
		if err != nil {
			return err
		}
		for _, row := range rows {
			d := fromRepoDonation(row)
			if err := s.appendHistory(ctx, tx, d, ""); err != nil {
				return err
			}
			if err := s.enqueue(ctx, tx, d.ID, event.Expire(d.ID)); err != nil {
				return err
			}
			expired = append(expired, d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expired, nil
}

func (s *PostgresStore) History(ctx context.Context, id string) ([]HistoryEntry, error) {
	rows, err := s.historyRepo.GetByDonationID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get donation history: %w", err)
	}

	entries := make([]HistoryEntry, len(rows))
	for i, row := range rows {
		entries[i] = HistoryEntry{
			Status:    Status(row.Status),
			ActorID:   deref(row.ActorID),
			ChangedAt: row.ChangedAt,
		}
	}
	return entries, nil
}

func (s *PostgresStore) DemandByFoodType(ctx context.Context) ([]DemandEntry, error) {
	rows, err := s.donationRepo.DemandByFoodType(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]DemandEntry, len(rows))
	for i, row := range rows {
		entries[i] = DemandEntry{FoodType: row.FoodType, TotalQuantity: row.TotalQuantity}
	}
	return entries, nil
}

func (s *PostgresStore) Register(ctx context.Context, account Account, password string) (Account, error) {
	now := s.timeNow().UTC()
	row := &repository.Account{
		ID:           uuid.NewString(),
		Role:         account.Role,
		Name:         account.Name,
		Email:        account.Email,
		Phone:        account.Phone,
		City:         optional(account.City),
		FarmSize:     account.FarmSize,
		PrimaryCrops: account.PrimaryCrops,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.accountRepo.Create(ctx, row, password); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return Account{}, ErrDuplicate
		}
		return Account{}, fmt.Errorf("failed to register account: %w", err)
	}
	return fromRepoAccount(row), nil
}

func (s *PostgresStore) Authenticate(ctx context.Context, email, role, password string) (Account, error) {
	row, err := s.accountRepo.Authenticate(ctx, email, role, password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			return Account{}, ErrInvalidCredentials
		}
		return Account{}, fmt.Errorf("failed to authenticate: %w", err)
	}
	return fromRepoAccount(row), nil
}

func (s *PostgresStore) Account(ctx context.Context, id string) (Account, error) {
	row, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return Account{}, ErrNotFound
		}
		return Account{}, fmt.Errorf("failed to get account: %w", err)
	}
	return fromRepoAccount(row), nil
}

func (s *PostgresStore) UpdateFarmerProfile(ctx context.Context, id string, profile FarmerProfile) (Account, error) {
	row, err := s.accountRepo.UpdateFarmProfile(ctx, id, profile.FarmSize, profile.PrimaryCrops)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return Account{}, ErrNotFound
		}
		return Account{}, fmt.Errorf("failed to update farmer profile: %w", err)
	}
	return fromRepoAccount(row), nil
}

func (s *PostgresStore) PlatformStats(ctx context.Context) (PlatformStats, error) {
	row, err := s.donationRepo.PlatformStats(ctx)
	if err != nil {
		return PlatformStats{}, err
	}
	return PlatformStats{
		MealsDonated:     row.MealsDonated,
		NgoPartners:      row.NgoPartners,
		FarmersConnected: row.FarmersConnected,
		CitiesServed:     row.CitiesServed,
	}, nil
}

func (s *PostgresStore) appendHistory(ctx context.Context, tx db.Tx, d Donation, actorID string) error {
	entry := &repository.HistoryEntry{
		DonationID: d.ID,
		Status:     string(d.Status),
		ActorID:    optional(actorID),
		ChangedAt:  d.UpdatedAt,
	}
	if err := s.historyRepo.CreateTx(ctx, tx, entry); err != nil {
		return fmt.Errorf("failed to add donation history entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) enqueue(ctx context.Context, tx db.Tx, key string, ev event.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", ev.Name, err)
	}

	task := &repository.OutboxTask{
		Payload: payload,
		Topic:   s.topic,
		Key:     key,
	}
	if err := s.outboxRepo.CreateTx(ctx, tx, task); err != nil {
		return fmt.Errorf("failed to enqueue event %s: %w", ev.Name, err)
	}
	return nil
}

func transitionEvent(d Donation) (event.Event, bool) {
	switch d.Status {
	case StatusClaimed:
		name := ""
		if d.ClaimedBy != nil {
			name = d.ClaimedBy.Name
		}
		return event.Claim(d.ID, name), true
	case StatusExpired:
		return event.Expire(d.ID), true
	default:
		return event.Event{}, false
	}
}
