package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 3 * time.Second

// Client общий клиент Redis для кэша родителей и refresh-токенов
type Client struct {
	*redis.Client
}

type Options struct {
	Addr     string
	Password string
	DB       int
}

func NewClient(opts Options) *Client {
	return &Client{
		Client: redis.NewClient(&redis.Options{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		}),
	}
}

// Connect создает клиента и проверяет соединение. При ошибке клиент закрывается.
func Connect(ctx context.Context, opts Options) (*Client, error) {
	const op = "storage.redis.Connect"

	c := NewClient(opts)
	if err := c.HealthCheck(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("%s: %s: %w", op, opts.Addr, err)
	}
	return c, nil
}

func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	return c.Ping(ctx).Err()
}
