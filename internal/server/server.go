//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gitlab.com/foodshare/backend/internal/domainerr"
	"gitlab.com/foodshare/backend/internal/identity"
	"gitlab.com/foodshare/backend/internal/lifecycle"
	"gitlab.com/foodshare/backend/internal/market"
	"gitlab.com/foodshare/backend/internal/storage"
)

type Donations interface {
	Create(ctx context.Context, donor identity.Donor, in lifecycle.CreateInput) (storage.Donation, error)
	List(ctx context.Context, status string) ([]storage.Donation, error)
	Claim(ctx context.Context, id string, ngo identity.Ngo) (storage.Donation, error)
	History(ctx context.Context, id string) ([]storage.HistoryEntry, error)
	OwnerDashboard(ctx context.Context, donor identity.Donor) (lifecycle.OwnerDashboard, error)
	ClaimantDashboard(ctx context.Context, ngo identity.Ngo) (lifecycle.ClaimantDashboard, error)
	Demand(ctx context.Context) ([]storage.DemandEntry, error)
}

type Accounts interface {
	Register(ctx context.Context, account storage.Account, password string) (storage.Account, error)
	Authenticate(ctx context.Context, email, role, password string) (storage.Account, error)
	Account(ctx context.Context, id string) (storage.Account, error)
	UpdateFarmerProfile(ctx context.Context, id string, profile storage.FarmerProfile) (storage.Account, error)
	PlatformStats(ctx context.Context) (storage.PlatformStats, error)
}

type Tokens interface {
	Issue(p identity.Principal) (string, error)
	Verify(token string) (identity.Principal, error)
}

type Deps struct {
	Donations Donations
	Accounts  Accounts
	Tokens    Tokens
	Prices    market.Source
	// Events serves the WebSocket endpoint.
	Events http.Handler
}

type Server struct {
	donations    Donations
	accounts     Accounts
	tokens       Tokens
	prices       market.Source
	events       http.Handler
	logger       *zap.Logger
	server       *http.Server
	AuditManager *AuditManager
}

func New(deps Deps, logger *zap.Logger) *Server {
	return &Server{
		donations:    deps.Donations,
		accounts:     deps.Accounts,
		tokens:       deps.Tokens,
		prices:       deps.Prices,
		events:       deps.Events,
		logger:       logger,
		AuditManager: NewAuditManager(2, 5, 500*time.Millisecond, logger.Named("audit")),
	}
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context, port string) error {
	s.server = &http.Server{
		Addr:              ":" + port,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.AuditManager.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("port", port))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("http server shutdown completed")

	s.AuditManager.Shutdown(ctx)
	return nil
}

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	if s.events != nil {
		r.Handle("/ws", s.events).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.auditLogMiddleware)

	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost).Name("handleRegister")
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost).Name("handleLogin")
	api.HandleFunc("/donations", s.handleListDonations).Methods(http.MethodGet).Name("handleListDonations")
	api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet).Name("handleStats")

	private := api.NewRoute().Subrouter()
	private.Use(identity.RequireAuth(s.tokens, s.logger))

	private.HandleFunc("/donations", s.handleCreateDonation).Methods(http.MethodPost).Name("handleCreateDonation")
	private.HandleFunc("/donations/{id}/claim", s.handleClaimDonation).Methods(http.MethodPatch).Name("handleClaimDonation")
	private.HandleFunc("/donations/{id}/history", s.handleDonationHistory).Methods(http.MethodGet).Name("handleDonationHistory")
	private.HandleFunc("/donor/dashboard", s.handleDonorDashboard).Methods(http.MethodGet).Name("handleDonorDashboard")
	private.HandleFunc("/ngo/dashboard", s.handleNgoDashboard).Methods(http.MethodGet).Name("handleNgoDashboard")
	private.HandleFunc("/farmer/dashboard", s.handleFarmerDashboard).Methods(http.MethodGet).Name("handleFarmerDashboard")
	private.HandleFunc("/farmer/profile", s.handleFarmerProfile).Methods(http.MethodPost).Name("handleFarmerProfile")

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps the error taxonomy onto HTTP. Anything outside it is
// logged and reported as a generic 500.
func (s *Server) respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	de, ok := domainerr.As(err)
	if !ok {
		de = domainerr.Wrap(err, domainerr.CodeInternal, "internal error")
	}

	switch de.Code {
	case domainerr.CodeValidation:
		respondError(w, http.StatusBadRequest, de.Message)
	case domainerr.CodeUnauthorized:
		respondError(w, http.StatusUnauthorized, de.Message)
	case domainerr.CodeForbidden:
		respondError(w, http.StatusForbidden, de.Message)
	case domainerr.CodeNotFound:
		respondError(w, http.StatusNotFound, de.Message)
	case domainerr.CodeConflict:
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": de.Message, "status": de.State})
	default:
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		respondError(w, http.StatusInternalServerError, "Server error")
	}
}

func decodeJSON(r *http.Request, dest interface{}) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	return json.NewDecoder(r.Body).Decode(dest)
}
