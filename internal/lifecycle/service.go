// Package lifecycle owns the donation state machine:
// available -> claimed and available -> expired, both terminal.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gitlab.com/foodshare/backend/internal/domainerr"
	"gitlab.com/foodshare/backend/internal/event"
	"gitlab.com/foodshare/backend/internal/identity"
	"gitlab.com/foodshare/backend/internal/metrics"
	"gitlab.com/foodshare/backend/internal/storage"
)

// PeoplePerClaim is the number of people one claimed donation is counted as
// feeding on the NGO dashboard.
const PeoplePerClaim = 25

type Broadcaster interface {
	Broadcast(ev event.Event)
}

type CreateInput struct {
	DonorName           string     `json:"donor_name"`
	ContactPerson       string     `json:"contact_person"`
	Phone               string     `json:"phone"`
	Email               string     `json:"email"`
	FoodType            string     `json:"food_type"`
	Quantity            string     `json:"quantity"`
	FoodDescription     string     `json:"food_description"`
	PreparedTime        *time.Time `json:"prepared_time"`
	ExpiryTime          *time.Time `json:"expiry_time"`
	Address             string     `json:"address"`
	City                string     `json:"city"`
	Pincode             string     `json:"pincode"`
	SpecialInstructions string     `json:"special_instructions"`
}

func (in CreateInput) missingFields() []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"donor_name", in.DonorName},
		{"contact_person", in.ContactPerson},
		{"phone", in.Phone},
		{"food_type", in.FoodType},
		{"quantity", in.Quantity},
		{"food_description", in.FoodDescription},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if in.ExpiryTime == nil || in.ExpiryTime.IsZero() {
		missing = append(missing, "expiry_time")
	}
	for _, f := range []struct {
		name  string
		value string
	}{
		{"address", in.Address},
		{"city", in.City},
		{"pincode", in.Pincode},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

type OwnerStats struct {
	TotalDonations  int   `json:"total_donations"`
	ActiveListings  int   `json:"active_listings"`
	ClaimedListings int   `json:"claimed_listings"`
	TotalQuantity   int64 `json:"total_quantity"`
}

type OwnerDashboard struct {
	Stats     OwnerStats         `json:"stats"`
	Donations []storage.Donation `json:"donations"`
}

type ClaimantStats struct {
	TotalClaimed int `json:"total_claimed"`
	AvailableNow int `json:"available_now"`
	PeopleServed int `json:"people_served"`
}

type ClaimantDashboard struct {
	Stats              ClaimantStats      `json:"stats"`
	AvailableDonations []storage.Donation `json:"available_donations"`
}

type Service struct {
	store    storage.Store
	notifier Broadcaster
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(store storage.Store, notifier Broadcaster, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) Create(ctx context.Context, donor identity.Donor, in CreateInput) (storage.Donation, error) {
	logger := s.logger.With(zap.String("operation", "create_donation"), zap.String("donor_id", donor.ID))

	if missing := in.missingFields(); len(missing) > 0 {
		return storage.Donation{}, domainerr.New(domainerr.CodeValidation,
			"missing required fields: "+strings.Join(missing, ", "))
	}

	donation, err := s.store.Create(ctx, storage.Donation{
		DonorID:             donor.ID,
		DonorName:           strings.TrimSpace(in.DonorName),
		ContactPerson:       strings.TrimSpace(in.ContactPerson),
		Phone:               strings.TrimSpace(in.Phone),
		Email:               strings.TrimSpace(in.Email),
		FoodType:            strings.TrimSpace(in.FoodType),
		Quantity:            strings.TrimSpace(in.Quantity),
		FoodDescription:     strings.TrimSpace(in.FoodDescription),
		PreparedTime:        in.PreparedTime,
		ExpiryTime:          in.ExpiryTime.UTC(),
		Address:             strings.TrimSpace(in.Address),
		City:                strings.TrimSpace(in.City),
		Pincode:             strings.TrimSpace(in.Pincode),
		SpecialInstructions: strings.TrimSpace(in.SpecialInstructions),
		Status:              storage.StatusAvailable,
	})
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("create_donation").Inc()
		logger.Error("failed to store donation", zap.Error(err))
		return storage.Donation{}, domainerr.Wrap(err, domainerr.CodeInternal, "failed to create donation")
	}

	metrics.DonationsCreatedTotal.Inc()
	logger.Info("donation listed", zap.String("donation_id", donation.ID))
	s.notifier.Broadcast(event.Created(donation))

	return donation, nil
}

// List returns donations newest first. An empty status lists everything.
func (s *Service) List(ctx context.Context, status string) ([]storage.Donation, error) {
	var filter storage.Filter
	if status != "" {
		parsed, ok := storage.ParseStatus(status)
		if !ok {
			return nil, domainerr.New(domainerr.CodeValidation, fmt.Sprintf("unknown status %q", status))
		}
		filter.Status = parsed
	}

	donations, err := s.store.FindByQuery(ctx, filter)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("list_donations").Inc()
		s.logger.Error("failed to list donations", zap.String("status", status), zap.Error(err))
		return nil, domainerr.Wrap(err, domainerr.CodeInternal, "failed to list donations")
	}
	return donations, nil
}

// Claim moves an available donation to claimed. The status check and the
// write happen inside one Store.Update, so of several racing claims exactly
// one succeeds and the others see the claimed state.
func (s *Service) Claim(ctx context.Context, id string, ngo identity.Ngo) (storage.Donation, error) {
	logger := s.logger.With(
		zap.String("operation", "claim_donation"),
		zap.String("donation_id", id),
		zap.String("ngo_id", ngo.ID),
	)

	if _, err := uuid.Parse(id); err != nil {
		metrics.ClaimsTotal.WithLabelValues("not_found").Inc()
		return storage.Donation{}, domainerr.New(domainerr.CodeNotFound, "Donation not found")
	}

	donation, err := s.store.Update(ctx, id, func(d *storage.Donation) error {
		if d.Status != storage.StatusAvailable {
			return domainerr.Conflict(string(d.Status), fmt.Sprintf("Donation is already %s", d.Status))
		}
		d.Status = storage.StatusClaimed
		d.ClaimedBy = &storage.Claimant{ID: ngo.ID, Name: ngo.Name}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			metrics.ClaimsTotal.WithLabelValues("not_found").Inc()
			return storage.Donation{}, domainerr.New(domainerr.CodeNotFound, "Donation not found")
		case domainerr.HasCode(err, domainerr.CodeConflict):
			metrics.ClaimsTotal.WithLabelValues("conflict").Inc()
			logger.Info("claim lost", zap.Error(err))
			return storage.Donation{}, err
		default:
			metrics.ClaimsTotal.WithLabelValues("error").Inc()
			metrics.OperationErrorsTotal.WithLabelValues("claim_donation").Inc()
			logger.Error("failed to claim donation", zap.Error(err))
			return storage.Donation{}, domainerr.Wrap(err, domainerr.CodeInternal, "failed to claim donation")
		}
	}

	metrics.ClaimsTotal.WithLabelValues("won").Inc()
	logger.Info("donation claimed")
	s.notifier.Broadcast(event.Claim(donation.ID, ngo.Name))

	return donation, nil
}

func (s *Service) OwnerDashboard(ctx context.Context, donor identity.Donor) (OwnerDashboard, error) {
	donations, err := s.store.FindByOwner(ctx, donor.ID)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("donor_dashboard").Inc()
		s.logger.Error("failed to load donor donations", zap.String("donor_id", donor.ID), zap.Error(err))
		return OwnerDashboard{}, domainerr.Wrap(err, domainerr.CodeInternal, "failed to load dashboard")
	}

	return OwnerDashboard{Stats: ownerStats(donations), Donations: donations}, nil
}

func ownerStats(donations []storage.Donation) OwnerStats {
	stats := OwnerStats{TotalDonations: len(donations)}
	for _, d := range donations {
		switch d.Status {
		case storage.StatusAvailable:
			stats.ActiveListings++
		case storage.StatusClaimed:
			stats.ClaimedListings++
		}
		stats.TotalQuantity += leadingInt(d.Quantity)
	}
	return stats
}

func (s *Service) ClaimantDashboard(ctx context.Context, ngo identity.Ngo) (ClaimantDashboard, error) {
	logger := s.logger.With(zap.String("operation", "ngo_dashboard"), zap.String("ngo_id", ngo.ID))

	claimed, err := s.store.CountClaimedBy(ctx, ngo.ID)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("ngo_dashboard").Inc()
		logger.Error("failed to count claims", zap.Error(err))
		return ClaimantDashboard{}, domainerr.Wrap(err, domainerr.CodeInternal, "failed to load dashboard")
	}

	available, err := s.store.FindByQuery(ctx, storage.Filter{Status: storage.StatusAvailable})
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("ngo_dashboard").Inc()
		logger.Error("failed to list available donations", zap.Error(err))
		return ClaimantDashboard{}, domainerr.Wrap(err, domainerr.CodeInternal, "failed to load dashboard")
	}

	return ClaimantDashboard{
		Stats: ClaimantStats{
			TotalClaimed: claimed,
			AvailableNow: len(available),
			PeopleServed: claimed * PeoplePerClaim,
		},
		AvailableDonations: available,
	}, nil
}

func (s *Service) Demand(ctx context.Context) ([]storage.DemandEntry, error) {
	demand, err := s.store.DemandByFoodType(ctx)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("demand").Inc()
		s.logger.Error("failed to aggregate demand", zap.Error(err))
		return nil, domainerr.Wrap(err, domainerr.CodeInternal, "failed to load demand")
	}
	return demand, nil
}

func (s *Service) History(ctx context.Context, id string) ([]storage.HistoryEntry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domainerr.New(domainerr.CodeNotFound, "Donation not found")
	}

	if _, err := s.store.FindByID(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, domainerr.New(domainerr.CodeNotFound, "Donation not found")
		}
		s.logger.Error("failed to load donation", zap.String("donation_id", id), zap.Error(err))
		return nil, domainerr.Wrap(err, domainerr.CodeInternal, "failed to load history")
	}

	entries, err := s.store.History(ctx, id)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("donation_history").Inc()
		s.logger.Error("failed to load history", zap.String("donation_id", id), zap.Error(err))
		return nil, domainerr.Wrap(err, domainerr.CodeInternal, "failed to load history")
	}
	return entries, nil
}

// ExpireOverdue moves every available donation whose expiry time has passed
// to expired and returns how many moved.
func (s *Service) ExpireOverdue(ctx context.Context) (int, error) {
	expired, err := s.store.ExpireOverdue(ctx, s.now())
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("expire_overdue").Inc()
		return 0, fmt.Errorf("failed to expire overdue donations: %w", err)
	}

	for _, d := range expired {
		s.notifier.Broadcast(event.Expire(d.ID))
	}
	metrics.DonationsExpiredTotal.Add(float64(len(expired)))
	return len(expired), nil
}
