package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

func (s *Server) auditLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// credentials and session tokens stay out of the audit trail
		sensitive := strings.HasPrefix(r.URL.Path, "/api/auth/")

		entry := AuditLogEntry{
			Timestamp:  time.Now(),
			Method:     r.Method,
			Path:       r.URL.Path,
			Handler:    handlerName(r),
			DonationID: mux.Vars(r)["id"],
		}

		if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
			if principal, err := s.tokens.Verify(strings.TrimSpace(token)); err == nil {
				entry.UserID = principal.ID
				entry.Role = principal.Role
			}
		}

		if !sensitive && r.Body != nil {
			requestBody, _ := io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(requestBody))
			entry.Request = string(requestBody)
		}

		wrw := newResponseWriterWrapper(w)

		next.ServeHTTP(wrw, r)

		entry.StatusCode = wrw.GetStatusCode()
		if !sensitive {
			entry.Response = string(wrw.GetBody())
		}

		if entry.Handler == "handleClaimDonation" {
			entry.OldStatus, entry.NewStatus = claimTransition(entry.StatusCode, wrw.GetBody())
		}

		s.AuditManager.LogEntry(r.Context(), entry)
	})
}

func handlerName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if name := route.GetName(); name != "" {
			return name
		}
	}
	return "unknown"
}

// claimTransition reads the status change out of a claim response. A rejected
// claim reports the state that blocked it.
func claimTransition(statusCode int, body []byte) (string, string) {
	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", ""
	}
	if statusCode == http.StatusOK {
		return "available", resp.Data.Status
	}
	return resp.Status, ""
}
