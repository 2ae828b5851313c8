package storage

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var firstNumber = regexp.MustCompile(`\d+`)

type memoryAccount struct {
	Account
	passwordHash []byte
}

// MemoryStore keeps everything in process. It backs tests and local runs
// without Postgres; Update holds the store mutex for the whole mutation.
type MemoryStore struct {
	mu        sync.RWMutex
	donations map[string]Donation
	order     []string
	history   map[string][]HistoryEntry
	accounts  map[string]*memoryAccount
	timeNow   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		donations: make(map[string]Donation),
		history:   make(map[string][]HistoryEntry),
		accounts:  make(map[string]*memoryAccount),
		timeNow:   time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, donation Donation) (Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

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

	s.donations[donation.ID] = donation
	s.order = append(s.order, donation.ID)
	s.history[donation.ID] = append(s.history[donation.ID], HistoryEntry{
		Status:    donation.Status,
		ActorID:   donation.DonorID,
		ChangedAt: now,
	})
	return donation, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.donations[id]
	if !ok {
		return Donation{}, ErrNotFound
	}
	return s.withClaimantName(d), nil
}

func (s *MemoryStore) FindByQuery(_ context.Context, filter Filter) ([]Donation, error) {
	return s.collect(func(d Donation) bool {
		return filter.Status == "" || d.Status == filter.Status
	}), nil
}

func (s *MemoryStore) FindByOwner(_ context.Context, donorID string) ([]Donation, error) {
	return s.collect(func(d Donation) bool { return d.DonorID == donorID }), nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, mutate Mutator) (Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return Donation{}, err
	}

	current, ok := s.donations[id]
	if !ok {
		return Donation{}, ErrNotFound
	}

	next := current
	if current.ClaimedBy != nil {
		claimant := *current.ClaimedBy
		next.ClaimedBy = &claimant
	}
	if err := mutate(&next); err != nil {
		return Donation{}, err
	}

	next.ID = current.ID
	next.DonorID = current.DonorID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = s.timeNow().UTC()
	if next.UpdatedAt.Before(current.UpdatedAt) {
		next.UpdatedAt = current.UpdatedAt
	}

	s.donations[id] = next
	if next.Status != current.Status {
		actor := ""
		if next.ClaimedBy != nil {
			actor = next.ClaimedBy.ID
		}
		s.history[id] = append(s.history[id], HistoryEntry{Status: next.Status, ActorID: actor, ChangedAt: next.UpdatedAt})
	}
	return next, nil
}

func (s *MemoryStore) CountClaimedBy(_ context.Context, claimantID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, d := range s.donations {
		if d.ClaimedBy != nil && d.ClaimedBy.ID == claimantID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) CountByStatus(_ context.Context, status Status) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, d := range s.donations {
		if d.Status == status {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) ExpireOverdue(_ context.Context, now time.Time) ([]Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now = now.UTC()
	var expired []Donation
	for i := len(s.order) - 1; i >= 0; i-- {
		id := s.order[i]
		d := s.donations[id]
		if d.Status != StatusAvailable || d.ExpiryTime.After(now) {
			continue
		}
		d.Status = StatusExpired
		if now.After(d.UpdatedAt) {
			d.UpdatedAt = now
		}
		s.donations[id] = d
		s.history[id] = append(s.history[id], HistoryEntry{Status: StatusExpired, ChangedAt: d.UpdatedAt})
		expired = append(expired, d)
	}
	return expired, nil
}

func (s *MemoryStore) History(_ context.Context, id string) ([]HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]HistoryEntry, len(s.history[id]))
	copy(entries, s.history[id])
	return entries, nil
}

func (s *MemoryStore) DemandByFoodType(_ context.Context) ([]DemandEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[string]int64)
	for _, d := range s.donations {
		var n int64
		if m := firstNumber.FindString(d.Quantity); m != "" {
			n, _ = strconv.ParseInt(m, 10, 64)
		}
		totals[d.FoodType] += n
	}

	entries := make([]DemandEntry, 0, len(totals))
	for foodType, total := range totals {
		entries = append(entries, DemandEntry{FoodType: foodType, TotalQuantity: total})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalQuantity != entries[j].TotalQuantity {
			return entries[i].TotalQuantity > entries[j].TotalQuantity
		}
		return entries[i].FoodType < entries[j].FoodType
	})
	return entries, nil
}

func (s *MemoryStore) Register(_ context.Context, account Account, password string) (Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if strings.EqualFold(a.Email, account.Email) && a.Role == account.Role {
			return Account{}, ErrDuplicate
		}
	}

	account.ID = uuid.NewString()
	account.CreatedAt = s.timeNow().UTC()
	s.accounts[account.ID] = &memoryAccount{Account: account, passwordHash: hash}
	return account, nil
}

func (s *MemoryStore) Authenticate(_ context.Context, email, role, password string) (Account, error) {
	s.mu.RLock()
	var found *memoryAccount
	for _, a := range s.accounts {
		if strings.EqualFold(a.Email, email) && a.Role == role {
			found = a
			break
		}
	}
	s.mu.RUnlock()

	if found == nil {
		return Account{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(found.passwordHash, []byte(password)); err != nil {
		return Account{}, ErrInvalidCredentials
	}
	return found.Account, nil
}

func (s *MemoryStore) Account(_ context.Context, id string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	return a.Account, nil
}

func (s *MemoryStore) UpdateFarmerProfile(_ context.Context, id string, profile FarmerProfile) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok || a.Role != "farmer" {
		return Account{}, ErrNotFound
	}
	a.FarmSize = profile.FarmSize
	a.PrimaryCrops = append([]string(nil), profile.PrimaryCrops...)
	return a.Account, nil
}

func (s *MemoryStore) PlatformStats(_ context.Context) (PlatformStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := PlatformStats{MealsDonated: int64(len(s.donations))}
	for _, a := range s.accounts {
		switch a.Role {
		case "ngo":
			stats.NgoPartners++
		case "farmer":
			stats.FarmersConnected++
		}
	}

	cities := make(map[string]struct{})
	for _, d := range s.donations {
		cities[d.City] = struct{}{}
	}
	stats.CitiesServed = int64(len(cities))
	return stats, nil
}

func (s *MemoryStore) collect(match func(Donation) bool) []Donation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// order is creation order, so walking it backwards yields newest first
	donations := make([]Donation, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		d := s.donations[s.order[i]]
		if match(d) {
			donations = append(donations, s.withClaimantName(d))
		}
	}
	return donations
}

// withClaimantName resolves the claimant's display name from the account
// directory, falling back to the name captured at claim time.
func (s *MemoryStore) withClaimantName(d Donation) Donation {
	if d.ClaimedBy == nil {
		return d
	}
	claimant := *d.ClaimedBy
	if a, ok := s.accounts[claimant.ID]; ok {
		claimant.Name = a.Name
	}
	d.ClaimedBy = &claimant
	return d
}
