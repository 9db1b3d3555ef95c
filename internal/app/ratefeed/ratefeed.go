// Package ratefeed собирает цепочку подсказки курса: источники, резолвер, кэш и сервис.
package ratefeed

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"arbicalc/internal/adapters/source/airtm"
	"arbicalc/internal/adapters/source/binancep2p"
	"arbicalc/internal/adapters/source/binancespot"
	"arbicalc/internal/adapters/source/exchangerate"
	"arbicalc/internal/config"
	"arbicalc/internal/domain"
	"arbicalc/internal/infra/ratecache"
	"arbicalc/internal/shared/retry"
	"arbicalc/internal/usecase/rates"
	"arbicalc/internal/usecase/resolver"
)

// Sources возвращает источники в порядке приоритета: Binance P2P, AirTM, ExchangeRate-API, затем
// необязательный Binance Spot.
func Sources(cfg config.Config) ([]domain.PriceSource, error) {
	p2p, err := binancep2p.New(binancep2p.Config{
		URL:       cfg.P2PURL,
		Asset:     cfg.Asset,
		Fiat:      cfg.Fiat,
		TradeType: cfg.TradeType,
		Rows:      cfg.P2PRows,
		AverageOf: cfg.P2PAverageOf,
	})
	if err != nil {
		return nil, fmt.Errorf("binance p2p source: %w", err)
	}
	out := []domain.PriceSource{
		p2p,
		airtm.New(cfg.AirTMURL),
		exchangerate.New(cfg.ExchangeRateURL, cfg.Fiat),
	}
	if cfg.SpotSymbol != "" {
		out = append(out, binancespot.New(cfg.SpotSymbol))
	}
	return out, nil
}

// Store — Redis, если задан REDIS_ADDR и он отвечает на ping, иначе кэш в памяти.
// Второй результат закрывает соединение с Redis (для памяти no-op).
func Store(ctx context.Context, cfg config.Config, log zerolog.Logger) (rates.Store, func()) {
	key := ratecache.Key(cfg.Asset, cfg.Fiat, cfg.TradeType)
	if cfg.RedisAddr == "" {
		return ratecache.NewMemory(key, cfg.CacheTTL), func() {}
	}

	rs := ratecache.NewRedis(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), key, cfg.CacheTTL)
	err := retry.WithRetry(ctx, 3, 200*time.Millisecond, rs.Ping)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, falling back to in-memory rate cache")
		_ = rs.Close()
		return ratecache.NewMemory(key, cfg.CacheTTL), func() {}
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("rate cache: redis")
	return rs, func() { _ = rs.Close() }
}

// rec может быть nil.
func New(ctx context.Context, cfg config.Config, log zerolog.Logger, rec resolver.Recorder) (*rates.Service, func(), error) {
	srcs, err := Sources(cfg)
	if err != nil {
		return nil, nil, err
	}
	res := resolver.New(srcs,
		resolver.WithTimeout(cfg.SourceTimeout),
		resolver.WithLogger(log),
		resolver.WithRecorder(rec),
	)
	store, closeStore := Store(ctx, cfg, log)

	svc := rates.New(res, store, cfg.DefaultRate,
		rates.WithMargin(cfg.RateMargin),
		rates.WithLogger(log),
	)
	log.Info().Strs("sources", res.Sources()).Msg("rate sources configured")
	return svc, closeStore, nil
}
