package storage

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicate          = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusClaimed   Status = "claimed"
	StatusExpired   Status = "expired"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusAvailable, StatusClaimed, StatusExpired:
		return Status(s), true
	default:
		return "", false
	}
}

type Claimant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Donation struct {
	ID                  string     `json:"id"`
	DonorID             string     `json:"donor_id"`
	DonorName           string     `json:"donor_name"`
	ContactPerson       string     `json:"contact_person"`
	Phone               string     `json:"phone"`
	Email               string     `json:"email,omitempty"`
	FoodType            string     `json:"food_type"`
	Quantity            string     `json:"quantity"`
	FoodDescription     string     `json:"food_description"`
	PreparedTime        *time.Time `json:"prepared_time,omitempty"`
	ExpiryTime          time.Time  `json:"expiry_time"`
	Address             string     `json:"address"`
	City                string     `json:"city"`
	Pincode             string     `json:"pincode"`
	SpecialInstructions string     `json:"special_instructions,omitempty"`
	Status              Status     `json:"status"`
	ClaimedBy           *Claimant  `json:"claimed_by,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// Filter narrows FindByQuery. A zero Status matches every donation.
type Filter struct {
	Status Status
}

type HistoryEntry struct {
	Status    Status    `json:"status"`
	ActorID   string    `json:"actor_id,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

type DemandEntry struct {
	FoodType      string `json:"food_type"`
	TotalQuantity int64  `json:"total_quantity"`
}

type Account struct {
	ID           string    `json:"id"`
	Role         string    `json:"role"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	City         string    `json:"city,omitempty"`
	FarmSize     float64   `json:"farm_size,omitempty"`
	PrimaryCrops []string  `json:"primary_crops,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type FarmerProfile struct {
	FarmSize     float64  `json:"farm_size"`
	PrimaryCrops []string `json:"primary_crops"`
}

type PlatformStats struct {
	MealsDonated     int64 `json:"meals_donated"`
	NgoPartners      int64 `json:"ngo_partners"`
	FarmersConnected int64 `json:"farmers_connected"`
	CitiesServed     int64 `json:"cities_served"`
}
