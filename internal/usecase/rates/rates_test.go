package rates

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbicalc/internal/domain"
	"arbicalc/internal/infra/ratecache"
)

type stubResolver struct {
	quote     domain.RateQuote
	fallbacks []float64
}

func (s *stubResolver) Resolve(_ context.Context, fallback float64) domain.RateQuote {
	s.fallbacks = append(s.fallbacks, fallback)
	if s.quote.Degraded {
		q := s.quote
		q.Rate = fallback
		return q
	}
	return s.quote
}

func resolved(rate float64, src string) *stubResolver {
	return &stubResolver{quote: domain.RateQuote{Rate: rate, Source: src}}
}

func degraded() *stubResolver {
	return &stubResolver{quote: domain.RateQuote{
		Degraded: true,
		LastErr:  fmt.Errorf("%w: AirTM: http 503", domain.ErrAllSourcesExhausted),
	}}
}

type brokenStore struct{}

func (brokenStore) Last(context.Context) (domain.LastRate, bool, error) {
	return domain.LastRate{}, false, errors.New("redis down")
}
func (brokenStore) Remember(context.Context, domain.LastRate) error { return errors.New("redis down") }

var at = time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC)

func TestSuggest_ResolvedIsRemembered(t *testing.T) {
	ctx := context.Background()
	store := ratecache.NewMemory("k", time.Minute)
	svc := New(resolved(9.876, "Binance P2P"), store, 6.97, WithClock(func() time.Time { return at }))

	got := svc.Suggest(ctx)
	assert.False(t, got.Degraded)
	assert.NoError(t, got.Err)
	assert.Equal(t, 9.876, got.Price)
	assert.Equal(t, 9.88, got.Suggested)
	assert.Equal(t, "Binance P2P", got.Source)

	lr, ok, err := store.Last(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.LastRate{Rate: 9.876, Source: "Binance P2P", At: at}, lr)
}

func TestSuggest_DegradedUsesDefault(t *testing.T) {
	res := degraded()
	svc := New(res, ratecache.NewMemory("k", time.Minute), 6.97)

	got := svc.Suggest(context.Background())
	assert.True(t, got.Degraded)
	assert.ErrorIs(t, got.Err, domain.ErrAllSourcesExhausted)
	assert.Equal(t, 6.97, got.Price)
	assert.Equal(t, SourceDefault, got.Source)
	assert.Equal(t, []float64{6.97}, res.fallbacks)
}

func TestSuggest_DegradedUsesCachedRate(t *testing.T) {
	ctx := context.Background()
	store := ratecache.NewMemory("k", time.Minute)
	require.NoError(t, store.Remember(ctx, domain.LastRate{Rate: 10.1, Source: "AirTM"}))

	res := degraded()
	got := New(res, store, 6.97).Suggest(ctx)
	assert.True(t, got.Degraded)
	assert.Equal(t, 10.1, got.Price)
	assert.Equal(t, SourceCache, got.Source)
	assert.Equal(t, []float64{10.1}, res.fallbacks)
}

func TestSuggest_Margin(t *testing.T) {
	svc := New(resolved(9.9, "AirTM"), ratecache.NewMemory("k", time.Minute), 6.97, WithMargin(0.15))
	got := svc.Suggest(context.Background())
	assert.Equal(t, 9.9, got.Price)
	assert.Equal(t, 9.75, got.Suggested)
}

func TestSuggest_MarginNeverMakesRateNonPositive(t *testing.T) {
	svc := New(resolved(0.5, "AirTM"), ratecache.NewMemory("k", time.Minute), 6.97, WithMargin(1))
	got := svc.Suggest(context.Background())
	assert.Equal(t, 0.5, got.Suggested)
}

func TestSuggest_StoreErrorsAreNotFatal(t *testing.T) {
	got := New(resolved(9.5, "AirTM"), brokenStore{}, 6.97).Suggest(context.Background())
	assert.False(t, got.Degraded)
	assert.Equal(t, 9.5, got.Price)

	res := degraded()
	got = New(res, brokenStore{}, 6.97).Suggest(context.Background())
	assert.True(t, got.Degraded)
	assert.Equal(t, 6.97, got.Price)
	assert.Equal(t, SourceDefault, got.Source)
}
