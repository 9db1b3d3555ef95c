// Package ratecache хранит последний успешно полученный курс.
// Memory живёт в процессе, Redis общий для нескольких инстансов.
package ratecache

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"arbicalc/internal/domain"
)

// Key: ключ записи для пары, например "rate:last:USDT:BOB:SELL".
func Key(asset, fiat, tradeType string) string {
	return strings.ToUpper(strings.Join([]string{"rate:last", asset, fiat, tradeType}, ":"))
}

type Memory struct {
	c   *cache.Cache
	key string
	ttl time.Duration
}

// ttl <= 0: запись не устаревает.
func NewMemory(key string, ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	cleanup := 2 * ttl
	if ttl == cache.NoExpiration {
		cleanup = 0
	}
	return &Memory{c: cache.New(ttl, cleanup), key: key, ttl: ttl}
}

func (m *Memory) Last(_ context.Context) (domain.LastRate, bool, error) {
	v, ok := m.c.Get(m.key)
	if !ok {
		return domain.LastRate{}, false, nil
	}
	lr, ok := v.(domain.LastRate)
	return lr, ok, nil
}

func (m *Memory) Remember(_ context.Context, r domain.LastRate) error {
	m.c.Set(m.key, r, m.ttl)
	return nil
}
