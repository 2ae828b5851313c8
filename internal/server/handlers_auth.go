package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"gitlab.com/foodshare/backend/internal/identity"
	"gitlab.com/foodshare/backend/internal/storage"
)

const minPasswordLength = 6

type registerRequest struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Password     string   `json:"password"`
	Phone        string   `json:"phone"`
	City         string   `json:"city"`
	Role         string   `json:"role"`
	FarmSize     float64  `json:"farm_size"`
	PrimaryCrops []string `json:"primary_crops"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if strings.TrimSpace(req.Name) == "" || req.Email == "" || req.Password == "" ||
		strings.TrimSpace(req.Phone) == "" || req.Role == "" {
		respondError(w, http.StatusBadRequest, "Please provide all required fields.")
		return
	}
	if len(req.Password) < minPasswordLength {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Password must be at least %d characters long.", minPasswordLength))
		return
	}
	if !identity.ValidRole(req.Role) {
		respondError(w, http.StatusBadRequest, "Invalid role specified")
		return
	}
	if req.Role != identity.RoleDonor && strings.TrimSpace(req.City) == "" {
		respondError(w, http.StatusBadRequest, "City is required for this role")
		return
	}

	account := storage.Account{
		Role:  req.Role,
		Name:  strings.TrimSpace(req.Name),
		Email: req.Email,
		Phone: strings.TrimSpace(req.Phone),
		City:  strings.TrimSpace(req.City),
	}
	if req.Role == identity.RoleFarmer {
		account.FarmSize = req.FarmSize
		account.PrimaryCrops = req.PrimaryCrops
	}

	created, err := s.accounts.Register(r.Context(), account, req.Password)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("A user with this email already exists as a(n) %s", req.Role))
			return
		}
		s.logger.Error("registration failed", zap.String("role", req.Role), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Server error during registration.")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": fmt.Sprintf("%s registered successfully!", strings.ToUpper(req.Role[:1])+req.Role[1:]),
		"user":    created,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" || req.Role == "" {
		respondError(w, http.StatusBadRequest, "Please provide email, password, and role.")
		return
	}
	if !identity.ValidRole(req.Role) {
		respondError(w, http.StatusBadRequest, "Invalid role specified")
		return
	}

	account, err := s.accounts.Authenticate(r.Context(), req.Email, req.Role, req.Password)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidCredentials) {
			s.logger.Info("login failed", zap.String("role", req.Role), zap.String("email", req.Email))
			respondError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		s.logger.Error("login failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	principal := identity.Principal{
		ID:    account.ID,
		Name:  account.Name,
		Role:  account.Role,
		Email: account.Email,
		Phone: account.Phone,
	}
	token, err := s.tokens.Issue(principal)
	if err != nil {
		s.logger.Error("failed to sign token", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Error creating session token.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  principal,
	})
}
