package database

import (
	"context"
	"fmt"

	rds "github.com/redis/go-redis/v9"
)

// OpenRedis parses a redis:// URL and pings the server.
func OpenRedis(URL string) (*rds.Client, func(), error) {
	opts, err := rds.ParseURL(URL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := rds.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}

	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}
