// Package market looks up commodity prices for the farmer dashboard. Prices
// are informational: lookups never fail the caller, unknown prices are N/A.
package market

import (
	"context"
	"encoding/json"
	"strconv"
)

type Source interface {
	Prices(ctx context.Context, crops []string) (map[string]Price, error)
}

// Price is a modal price in rupees per quintal, or N/A when no record was
// found.
type Price struct {
	Value     int64
	Available bool
}

func PriceOf(v int64) Price {
	return Price{Value: v, Available: true}
}

func (p Price) String() string {
	if !p.Available {
		return "N/A"
	}
	return strconv.FormatInt(p.Value, 10)
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Available {
		return json.Marshal("N/A")
	}
	return json.Marshal(p.Value)
}

func unavailable(crops []string) map[string]Price {
	prices := make(map[string]Price, len(crops))
	for _, crop := range crops {
		prices[crop] = Price{}
	}
	return prices
}
