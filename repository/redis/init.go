package redis

import (
	"context"
	"fmt"

	redis9 "github.com/redis/go-redis/v9"
)

// NewClient connects to the redis server at url and pings it.
func NewClient(ctx context.Context, url string) (*redis9.Client, error) {
	opts, err := redis9.ParseURL(url)
	if err != nil {
		return nil, err
	}

	cl := redis9.NewClient(opts)
	if err := cl.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return cl, nil
}
