package webserver

import (
	"context"

	"github.com/rs/zerolog"

	"arbicalc/internal/app/ratefeed"
	"arbicalc/internal/config"
	"arbicalc/internal/observability"
	"arbicalc/internal/transport/httpapi"
	"arbicalc/internal/usecase/quotation"
)

// New собирает HTTP API. Второй результат освобождает ресурсы (соединение с Redis).
func New(ctx context.Context, cfg config.Config, log zerolog.Logger) (*httpapi.Server, func(), error) {
	metrics := observability.NewMetrics("")

	// Подсказка курса: источники -> резолвер -> кэш последнего курса
	svc, closeFn, err := ratefeed.New(ctx, cfg, log, metrics)
	if err != nil {
		return nil, nil, err
	}

	srv := httpapi.New(cfg.HTTPAddr, httpapi.Deps{
		Rates:     svc,
		Quotes:    quotation.New(),
		Defaults:  cfg.FormDefaults(),
		Log:       log,
		Recorder:  metrics,
		Metrics:   metrics.Handler(),
		RateLimit: cfg.APIRateLimit,
		RateBurst: cfg.APIRateBurst,
	})
	return srv, closeFn, nil
}
