package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gitlab.com/foodshare/backend/internal/identity"
	"gitlab.com/foodshare/backend/internal/lifecycle"
	"gitlab.com/foodshare/backend/internal/market"
	"gitlab.com/foodshare/backend/internal/notifier"
	"gitlab.com/foodshare/backend/internal/storage"
)

type apiClient struct {
	t    *testing.T
	base string
}

func (c apiClient) do(method, path, token string, body interface{}) (int, map[string]interface{}) {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var decoded interface{}
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&decoded))
	if m, ok := decoded.(map[string]interface{}); ok {
		return resp.StatusCode, m
	}
	return resp.StatusCode, map[string]interface{}{"items": decoded}
}

func (c apiClient) login(name, email, role, city string) string {
	c.t.Helper()

	status, _ := c.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "secret1", "phone": "555", "role": role, "city": city,
	})
	require.Equal(c.t, http.StatusCreated, status)

	status, body := c.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": "secret1", "role": role,
	})
	require.Equal(c.t, http.StatusOK, status)
	return body["token"].(string)
}

func TestDonationFlow(t *testing.T) {
	logger := zap.NewNop()
	store := storage.NewMemoryStore()
	hub := notifier.NewHub(logger)
	service := lifecycle.NewService(store, hub, logger)

	srv := New(Deps{
		Donations: service,
		Accounts:  store,
		Tokens:    identity.NewTokenService("test-secret", time.Hour),
		Prices:    market.NewCachedSource(&staticPrices{prices: map[string]market.Price{}}, time.Minute, logger),
		Events:    http.HandlerFunc(hub.ServeWS),
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv.AuditManager.Start(ctx)

	ts := httptest.NewServer(srv.routes())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	api := apiClient{t: t, base: ts.URL}
	donorToken := api.login("Anna", "anna@example.com", identity.RoleDonor, "")
	ngoToken := api.login("Food Bank", "bank@example.com", identity.RoleNgo, "Pune")
	otherNgoToken := api.login("Shelter", "shelter@example.com", identity.RoleNgo, "Pune")

	status, created := api.do(http.MethodPost, "/api/donations", donorToken, map[string]interface{}{
		"donor_name": "Anna's Kitchen", "contact_person": "Anna", "phone": "555",
		"food_type": "cooked", "quantity": "40 plates", "food_description": "rice and dal",
		"expiry_time": time.Now().Add(4 * time.Hour).UTC().Format(time.RFC3339),
		"address": "1 Main", "city": "Pune", "pincode": "411001",
	})
	require.Equal(t, http.StatusCreated, status)
	id := created["data"].(map[string]interface{})["id"].(string)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "newDonation", frame.Event)

	status, _ = api.do(http.MethodPatch, "/api/donations/"+id+"/claim", donorToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, claimed := api.do(http.MethodPatch, "/api/donations/"+id+"/claim", ngoToken, nil)
	require.Equal(t, http.StatusOK, status)
	data := claimed["data"].(map[string]interface{})
	assert.Equal(t, "claimed", data["status"])
	assert.Equal(t, "Food Bank", data["claimed_by"].(map[string]interface{})["name"])

	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "donationClaimed", frame.Event)
	assert.JSONEq(t, `{"id":"`+id+`","claimed_by_name":"Food Bank"}`, string(frame.Data))

	status, rejected := api.do(http.MethodPatch, "/api/donations/"+id+"/claim", otherNgoToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "claimed", rejected["status"])

	status, _ = api.do(http.MethodPatch, "/api/donations/not-a-uuid/claim", ngoToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, history := api.do(http.MethodGet, "/api/donations/"+id+"/history", donorToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, history["items"], 2)

	status, dashboard := api.do(http.MethodGet, "/api/donor/dashboard", donorToken, nil)
	require.Equal(t, http.StatusOK, status)
	stats := dashboard["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["claimed_listings"])
	assert.Equal(t, float64(40), stats["total_quantity"])

	status, ngoDashboard := api.do(http.MethodGet, "/api/ngo/dashboard", ngoToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(lifecycle.PeoplePerClaim), ngoDashboard["stats"].(map[string]interface{})["people_served"])

	status, listed := api.do(http.MethodGet, "/api/donations?status=available", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, listed["items"])

	status, listed = api.do(http.MethodGet, "/api/donations?status=claimed", "", nil)
	require.Equal(t, http.StatusOK, status)
	items := listed["items"].([]interface{})
	require.Len(t, items, 1)
	first := items[0].(map[string]interface{})
	assert.Equal(t, id, first["id"])
	assert.Equal(t, "Food Bank", first["claimed_by"].(map[string]interface{})["name"])

	status, _ = api.do(http.MethodGet, "/api/donations?status=bogus", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}
