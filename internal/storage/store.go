package storage

import (
	"context"
	"time"
)

// Mutator edits a locked copy of a donation. A non-nil error aborts the update
// and is returned to the caller as is.
type Mutator func(d *Donation) error

type Store interface {
	Create(ctx context.Context, donation Donation) (Donation, error)
	FindByID(ctx context.Context, id string) (Donation, error)
	FindByQuery(ctx context.Context, filter Filter) ([]Donation, error)
	FindByOwner(ctx context.Context, donorID string) ([]Donation, error)
	// Update serializes with every other Update for the same id.
	Update(ctx context.Context, id string, mutate Mutator) (Donation, error)
	CountClaimedBy(ctx context.Context, claimantID string) (int, error)
	CountByStatus(ctx context.Context, status Status) (int, error)
	// ExpireOverdue only touches donations that are still available.
	ExpireOverdue(ctx context.Context, now time.Time) ([]Donation, error)
	History(ctx context.Context, id string) ([]HistoryEntry, error)
	DemandByFoodType(ctx context.Context) ([]DemandEntry, error)
}

type Accounts interface {
	Register(ctx context.Context, account Account, password string) (Account, error)
	Authenticate(ctx context.Context, email, role, password string) (Account, error)
	Account(ctx context.Context, id string) (Account, error)
	UpdateFarmerProfile(ctx context.Context, id string, profile FarmerProfile) (Account, error)
	PlatformStats(ctx context.Context) (PlatformStats, error)
}
