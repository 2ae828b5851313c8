package market

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"gitlab.com/foodshare/backend/internal/metrics"
)

type cacheEntry struct {
	price     Price
	fetchedAt time.Time
}

// CachedSource keeps prices per crop for ttl in front of another Source.
type CachedSource struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	source  Source
	ttl     time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

func NewCachedSource(source Source, ttl time.Duration, logger *zap.Logger) *CachedSource {
	return &CachedSource{
		entries: make(map[string]cacheEntry),
		source:  source,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
	}
}

func (c *CachedSource) Prices(ctx context.Context, crops []string) (map[string]Price, error) {
	prices := make(map[string]Price, len(crops))
	var missing []string

	now := c.now()
	c.mu.RLock()
	for _, crop := range crops {
		entry, found := c.entries[cacheKey(crop)]
		if found && now.Sub(entry.fetchedAt) < c.ttl {
			prices[crop] = entry.price
			continue
		}
		missing = append(missing, crop)
	}
	c.mu.RUnlock()

	if len(missing) == 0 {
		return prices, nil
	}

	fetched, err := c.source.Prices(ctx, missing)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	for _, crop := range missing {
		price := fetched[crop]
		prices[crop] = price
		c.entries[cacheKey(crop)] = cacheEntry{price: price, fetchedAt: now}
	}
	size := len(c.entries)
	c.mu.Unlock()

	metrics.MarketCacheItems.Set(float64(size))
	c.logger.Debug("market cache refreshed", zap.Int("fetched", len(missing)), zap.Int("size", size))
	return prices, nil
}

func cacheKey(crop string) string {
	return strings.ToLower(strings.TrimSpace(crop))
}
