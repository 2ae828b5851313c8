package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/foodshare/backend/internal/domainerr"
	"gitlab.com/foodshare/backend/internal/identity"
	"gitlab.com/foodshare/backend/internal/lifecycle"
)

// roleOf resolves the authenticated caller. RequireAuth guarantees a principal
// on every private route.
func (s *Server) roleOf(r *http.Request) (identity.Role, error) {
	p, ok := identity.PrincipalFrom(r.Context())
	if !ok {
		return nil, domainerr.New(domainerr.CodeUnauthorized, "Access denied. No token provided.")
	}
	return p.AsRole()
}

func (s *Server) handleCreateDonation(w http.ResponseWriter, r *http.Request) {
	role, err := s.roleOf(r)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	donor, ok := role.(identity.Donor)
	if !ok {
		respondError(w, http.StatusForbidden, "Only registered donors can create a donation.")
		return
	}

	var in lifecycle.CreateInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	donation, err := s.donations.Create(r.Context(), donor, in)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Donation created successfully!",
		"data":    donation,
	})
}

func (s *Server) handleListDonations(w http.ResponseWriter, r *http.Request) {
	donations, err := s.donations.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, donations)
}

func (s *Server) handleClaimDonation(w http.ResponseWriter, r *http.Request) {
	role, err := s.roleOf(r)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	ngo, ok := role.(identity.Ngo)
	if !ok {
		respondError(w, http.StatusForbidden, "Only NGOs can claim donations.")
		return
	}

	donation, err := s.donations.Claim(r.Context(), mux.Vars(r)["id"], ngo)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Donation claimed successfully!",
		"data":    donation,
	})
}

func (s *Server) handleDonationHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.donations.History(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, history)
}
