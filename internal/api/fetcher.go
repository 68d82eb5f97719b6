package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"product-detail-bff/internal/models"
	"product-detail-bff/internal/view"
)

type ProductCache interface {
	GetProduct(ctx context.Context, id string) ([]byte, error)
	SetProduct(ctx context.Context, id string, data []byte, ttl time.Duration) error
}

// CachedFetcher fronts the upstream catalog with a payload cache. The cache
// is an optimization only: any cache failure degrades to fetching.
type CachedFetcher struct {
	upstream view.Fetcher
	cache    ProductCache
	ttl      time.Duration
}

func NewCachedFetcher(upstream view.Fetcher, cache ProductCache, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{
		upstream: upstream,
		cache:    cache,
		ttl:      ttl,
	}
}

func (f *CachedFetcher) FetchProduct(ctx context.Context, id string) (*models.Product, error) {
	start := time.Now()

	if data, err := f.cache.GetProduct(ctx, id); err == nil {
		var p models.Product
		if err := json.Unmarshal(data, &p); err == nil {
			slog.Info("Cache HIT", "product_id", id, "duration", time.Since(start))
			return &p, nil
		}
		slog.Warn("Dropping malformed cache entry", "product_id", id)
	}

	p, err := f.upstream.FetchProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(p); err == nil {
		go func() {
			_ = f.cache.SetProduct(context.Background(), id, data, f.ttl)
		}()
	}

	return p, nil
}
