package market

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPrice_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(map[string]Price{"Wheat": PriceOf(2150), "Rice": {}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Wheat":2150,"Rice":"N/A"}`, string(out))
}

func TestDataGovSource_Prices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("api-key"))
		_, _ = w.Write([]byte(`{"records":[
			{"commodity":"Wheat","arrival_date":"10/03/2024","modal_price":"2100"},
			{"commodity":"wheat","arrival_date":"12/03/2024","modal_price":"2150"},
			{"commodity":"Wheat","arrival_date":"20/03/2024","modal_price":"9999"},
			{"commodity":"Onion","arrival_date":"2024-03-11","modal_price":"1800.5"}
		]}`))
	}))
	defer srv.Close()

	src := NewDataGovSource(srv.URL, "secret", zap.NewNop())
	src.now = func() time.Time { return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC) }

	prices, err := src.Prices(context.Background(), []string{"Wheat", "Onion", "Saffron"})
	require.NoError(t, err)

	assert.Equal(t, PriceOf(2150), prices["Wheat"])
	assert.Equal(t, PriceOf(1800), prices["Onion"])
	assert.Equal(t, Price{}, prices["Saffron"])
}

func TestDataGovSource_FailureIsNotAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	prices, err := NewDataGovSource(srv.URL, "", zap.NewNop()).Prices(context.Background(), []string{"Wheat"})
	require.NoError(t, err)
	assert.Equal(t, map[string]Price{"Wheat": {}}, prices)
}

type countingSource struct {
	calls atomic.Int32
}

func (s *countingSource) Prices(_ context.Context, crops []string) (map[string]Price, error) {
	s.calls.Add(1)
	out := make(map[string]Price, len(crops))
	for i, crop := range crops {
		out[crop] = PriceOf(int64(100 * (i + 1)))
	}
	return out, nil
}

func TestCachedSource(t *testing.T) {
	ctx := context.Background()
	inner := &countingSource{}
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	cache := NewCachedSource(inner, time.Minute, zap.NewNop())
	cache.now = func() time.Time { return now }

	first, err := cache.Prices(ctx, []string{"Wheat"})
	require.NoError(t, err)
	second, err := cache.Prices(ctx, []string{"wheat "})
	require.NoError(t, err)

	assert.EqualValues(t, 1, inner.calls.Load())
	assert.Equal(t, first["Wheat"], second["wheat "])

	now = now.Add(2 * time.Minute)
	_, err = cache.Prices(ctx, []string{"Wheat"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, inner.calls.Load())
}
