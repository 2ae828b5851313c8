package server

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"gitlab.com/foodshare/backend/internal/identity"
	"gitlab.com/foodshare/backend/internal/market"
	"gitlab.com/foodshare/backend/internal/metrics"
	"gitlab.com/foodshare/backend/internal/storage"
)

type chartData struct {
	Labels []string `json:"labels"`
	Data   []int64  `json:"data"`
}

type farmerStats struct {
	FarmSize       float64 `json:"farm_size"`
	CropsGrown     int     `json:"crops_grown"`
	MarketsTracked int     `json:"markets_tracked"`
	MemberSince    int     `json:"member_since"`
}

type farmerDashboard struct {
	Stats        farmerStats             `json:"stats"`
	FarmSize     float64                 `json:"farm_size"`
	PrimaryCrops []string                `json:"primary_crops"`
	MarketPrices map[string]market.Price `json:"market_prices"`
	DemandData   []storage.DemandEntry   `json:"demand_data"`
	ChartData    chartData               `json:"chart_data"`
}

func (s *Server) handleDonorDashboard(w http.ResponseWriter, r *http.Request) {
	role, err := s.roleOf(r)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	donor, ok := role.(identity.Donor)
	if !ok {
		respondError(w, http.StatusForbidden, "Access denied. Not a donor.")
		return
	}

	dashboard, err := s.donations.OwnerDashboard(r.Context(), donor)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dashboard)
}

func (s *Server) handleNgoDashboard(w http.ResponseWriter, r *http.Request) {
	role, err := s.roleOf(r)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	ngo, ok := role.(identity.Ngo)
	if !ok {
		respondError(w, http.StatusForbidden, "Access denied. Not an NGO.")
		return
	}

	dashboard, err := s.donations.ClaimantDashboard(r.Context(), ngo)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dashboard)
}

func (s *Server) handleFarmerDashboard(w http.ResponseWriter, r *http.Request) {
	role, err := s.roleOf(r)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	farmer, ok := role.(identity.Farmer)
	if !ok {
		respondError(w, http.StatusForbidden, "Access denied. Not a farmer.")
		return
	}

	account, err := s.accounts.Account(r.Context(), farmer.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Farmer not found.")
			return
		}
		s.respondDomainError(w, r, err)
		return
	}

	demand, err := s.donations.Demand(r.Context())
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	if demand == nil {
		demand = []storage.DemandEntry{}
	}

	prices, err := s.prices.Prices(r.Context(), account.PrimaryCrops)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("market_prices").Inc()
		s.logger.Warn("market prices unavailable", zap.Error(err))
		prices = make(map[string]market.Price, len(account.PrimaryCrops))
		for _, crop := range account.PrimaryCrops {
			prices[crop] = market.Price{}
		}
	}

	chart := chartData{Labels: make([]string, len(demand)), Data: make([]int64, len(demand))}
	for i, d := range demand {
		chart.Labels[i] = d.FoodType
		chart.Data[i] = d.TotalQuantity
	}

	crops := account.PrimaryCrops
	if crops == nil {
		crops = []string{}
	}

	respondJSON(w, http.StatusOK, farmerDashboard{
		Stats: farmerStats{
			FarmSize:       account.FarmSize,
			CropsGrown:     len(crops),
			MarketsTracked: len(prices),
			MemberSince:    account.CreatedAt.Year(),
		},
		FarmSize:     account.FarmSize,
		PrimaryCrops: crops,
		MarketPrices: prices,
		DemandData:   demand,
		ChartData:    chart,
	})
}

func (s *Server) handleFarmerProfile(w http.ResponseWriter, r *http.Request) {
	role, err := s.roleOf(r)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	farmer, ok := role.(identity.Farmer)
	if !ok {
		respondError(w, http.StatusForbidden, "Access denied.")
		return
	}

	var profile storage.FarmerProfile
	if err := decodeJSON(r, &profile); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if profile.FarmSize < 0 {
		respondError(w, http.StatusBadRequest, "farm_size must not be negative")
		return
	}

	account, err := s.accounts.UpdateFarmerProfile(r.Context(), farmer.ID, profile)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Farmer not found.")
			return
		}
		s.respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully!",
		"farmer":  account,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.accounts.PlatformStats(r.Context())
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
