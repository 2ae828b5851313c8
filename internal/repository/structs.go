package repository

import (
	"errors"
	"time"
)

var (
	ErrObjectNotFound     = errors.New("not found")
	ErrDuplicate          = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Donation struct {
	ID                  string     `db:"id"`
	DonorID             string     `db:"donor_id"`
	DonorName           string     `db:"donor_name"`
	ContactPerson       string     `db:"contact_person"`
	Phone               string     `db:"phone"`
	Email               *string    `db:"email"`
	FoodType            string     `db:"food_type"`
	Quantity            string     `db:"quantity"`
	FoodDescription     string     `db:"food_description"`
	PreparedTime        *time.Time `db:"prepared_time"`
	ExpiryTime          time.Time  `db:"expiry_time"`
	Address             string     `db:"address"`
	City                string     `db:"city"`
	Pincode             string     `db:"pincode"`
	SpecialInstructions *string    `db:"special_instructions"`
	Status              string     `db:"status"`
	ClaimedBy           *string    `db:"claimed_by"`
	ClaimedByName       *string    `db:"claimed_by_name"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
}

type HistoryEntry struct {
	ID         int64     `db:"id"`
	DonationID string    `db:"donation_id"`
	Status     string    `db:"status"`
	ActorID    *string   `db:"actor_id"`
	ChangedAt  time.Time `db:"changed_at"`
}

type Account struct {
	ID           string    `db:"id"`
	Role         string    `db:"role"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	Password     string    `db:"password"`
	Phone        string    `db:"phone"`
	City         *string   `db:"city"`
	FarmSize     float64   `db:"farm_size"`
	PrimaryCrops []string  `db:"primary_crops"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type DemandEntry struct {
	FoodType      string `db:"food_type"`
	TotalQuantity int64  `db:"total_quantity"`
}

type PlatformStats struct {
	MealsDonated     int64 `db:"meals_donated"`
	NgoPartners      int64 `db:"ngo_partners"`
	FarmersConnected int64 `db:"farmers_connected"`
	CitiesServed     int64 `db:"cities_served"`
}
