package ratecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"arbicalc/internal/domain"
)

type Redis struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedis(client *redis.Client, key string, ttl time.Duration) *Redis {
	return &Redis{client: client, key: key, ttl: ttl}
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Last(ctx context.Context) (domain.LastRate, bool, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.LastRate{}, false, nil
	}
	if err != nil {
		return domain.LastRate{}, false, fmt.Errorf("redis get %s: %w", r.key, err)
	}
	var lr domain.LastRate
	if err := json.Unmarshal(raw, &lr); err != nil {
		return domain.LastRate{}, false, fmt.Errorf("redis decode %s: %w", r.key, err)
	}
	return lr, true, nil
}

// ttl <= 0: без срока жизни (0 в go-redis).
func (r *Redis) Remember(ctx context.Context, lr domain.LastRate) error {
	raw, err := json.Marshal(lr)
	if err != nil {
		return err
	}
	ttl := r.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := r.client.Set(ctx, r.key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}

func (r *Redis) Close() error { return r.client.Close() }
