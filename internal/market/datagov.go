package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const DefaultDataGovURL = "https://api.data.gov.in/resource/9ef84268-d588-465a-a308-a864a43d0070"

type dataGovRecord struct {
	Commodity   string `json:"commodity"`
	ArrivalDate string `json:"arrival_date"`
	ModalPrice  string `json:"modal_price"`
}

type dataGovResponse struct {
	Records []dataGovRecord `json:"records"`
}

// DataGovSource reads the daily mandi price feed published on data.gov.in.
type DataGovSource struct {
	client  *http.Client
	baseURL string
	apiKey  string
	logger  *zap.Logger
	now     func() time.Time
}

func NewDataGovSource(baseURL, apiKey string, logger *zap.Logger) *DataGovSource {
	if baseURL == "" {
		baseURL = DefaultDataGovURL
	}
	return &DataGovSource{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  logger,
		now:     time.Now,
	}
}

// Prices picks, per crop, the most recent record dated no later than today.
// Any fetch or decode failure yields N/A for every crop.
func (s *DataGovSource) Prices(ctx context.Context, crops []string) (map[string]Price, error) {
	if len(crops) == 0 {
		return map[string]Price{}, nil
	}

	records, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warn("failed to fetch market prices", zap.Error(err))
		return unavailable(crops), nil
	}

	today := truncateDay(s.now())
	prices := make(map[string]Price, len(crops))
	for _, crop := range crops {
		var (
			best     dataGovRecord
			bestDate time.Time
			found    bool
		)
		for _, r := range records {
			if !strings.EqualFold(strings.TrimSpace(r.Commodity), strings.TrimSpace(crop)) {
				continue
			}
			date, ok := parseArrivalDate(r.ArrivalDate)
			if !ok || date.After(today) {
				continue
			}
			if !found || date.After(bestDate) {
				best, bestDate, found = r, date, true
			}
		}

		if !found {
			prices[crop] = Price{}
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(best.ModalPrice), 64)
		if err != nil {
			prices[crop] = Price{}
			continue
		}
		prices[crop] = PriceOf(int64(value))
	}
	return prices, nil
}

func (s *DataGovSource) fetch(ctx context.Context) ([]dataGovRecord, error) {
	q := url.Values{}
	q.Set("api-key", s.apiKey)
	q.Set("format", "json")
	q.Set("limit", "1000")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body dataGovResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode price feed: %w", err)
	}
	return body.Records, nil
}

// parseArrivalDate accepts the feed's dd/mm/yyyy form as well as ISO dates.
func parseArrivalDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if len(s) >= len(layout) {
			if t, err := time.Parse(layout, s[:len(layout)]); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
