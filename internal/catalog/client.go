package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"product-detail-bff/internal/models"
	"product-detail-bff/internal/resilience"
)

// ErrFetchFailed is the single error kind surfaced to callers: any non-2xx
// status or transport failure collapses into it.
var ErrFetchFailed = errors.New("fetch failed")

type Client struct {
	baseURL string
	client  *http.Client
	breaker *resilience.CircuitBreaker
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		breaker: resilience.NewCircuitBreaker(3, 10*time.Second),
	}
}

func (c *Client) FetchProduct(ctx context.Context, id string) (*models.Product, error) {
	url := fmt.Sprintf("%s/products/%s", c.baseURL, id)

	result, err := c.breaker.Execute(func() (any, error) {
		var p models.Product
		if err := c.fetchJSON(ctx, url, &p); err != nil {
			return nil, err
		}
		return &p, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	return result.(*models.Product), nil
}

func (c *Client) fetchJSON(ctx context.Context, url string, target any) error {
	return resilience.Retry(ctx, 3, 500*time.Millisecond, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return resilience.Permanent(err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("server error: %d", resp.StatusCode)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return resilience.Permanent(fmt.Errorf("bad status code: %d", resp.StatusCode))
		}

		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return resilience.Permanent(err)
		}
		return nil
	})
}
