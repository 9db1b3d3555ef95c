package ratecache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbicalc/internal/domain"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "RATE:LAST:USDT:BOB:SELL", Key("usdt", "bob", "sell"))
}

func TestMemory_RememberAndLast(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(Key("USDT", "BOB", "SELL"), time.Minute)

	_, ok, err := m.Last(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	want := domain.LastRate{Rate: 9.91, Source: "Binance P2P", At: time.Now()}
	require.NoError(t, m.Remember(ctx, want))

	got, ok, err := m.Last(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestMemory_Expires(t *testing.T) {
	ctx := context.Background()
	m := NewMemory("k", 20*time.Millisecond)
	require.NoError(t, m.Remember(ctx, domain.LastRate{Rate: 7}))

	assert.Eventually(t, func() bool {
		_, ok, _ := m.Last(ctx)
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestMemory_NoTTL(t *testing.T) {
	ctx := context.Background()
	m := NewMemory("k", 0)
	require.NoError(t, m.Remember(ctx, domain.LastRate{Rate: 7}))
	got, ok, err := m.Last(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7.0, got.Rate)
}

func TestRedis_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	r := NewRedis(client, "k", time.Minute)
	defer r.Close()

	ctx := context.Background()
	assert.Error(t, r.Ping(ctx))

	_, ok, err := r.Last(ctx)
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, r.Remember(ctx, domain.LastRate{Rate: 7}))
}
