package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

func NewClient(addr string) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	return &Client{rdb: rdb}, nil
}

func (c *Client) IsRateLimited(ctx context.Context, ip string) bool {
	key := fmt.Sprintf("ratelimit:%s", ip)
	limitWindow := 60 * time.Second
	maxRequests := 60

	pipe := c.rdb.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, limitWindow)
	_, err := pipe.Exec(ctx)

	if err != nil {
		return false
	}

	return incr.Val() > int64(maxRequests)
}

// GetProduct returns the cached upstream payload for a product id, or a
// redis.Nil error on a miss.
func (c *Client) GetProduct(ctx context.Context, id string) ([]byte, error) {
	return c.rdb.Get(ctx, productKey(id)).Bytes()
}

func (c *Client) SetProduct(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, productKey(id), data, ttl).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}
