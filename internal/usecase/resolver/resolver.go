package resolver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"arbicalc/internal/domain"
)

const DefaultTimeout = 5 * time.Second

var errInvalidRate = errors.New("non-positive rate")

// Исходы одной попытки (лейблы метрик и поле outcome в логах).
const (
	OutcomeOK             = "ok"
	OutcomeHTTPError      = "http_error"
	OutcomeTransportError = "transport_error"
	OutcomeParseError     = "parse_error"
	OutcomeInvalidRate    = "invalid_rate"
	OutcomeTimeout        = "timeout"
	OutcomeCancelled      = "cancelled"
)

type Recorder interface {
	SourceAttempt(source, outcome string, elapsed time.Duration)
	Resolution(degraded bool)
}

type nopRecorder struct{}

func (nopRecorder) SourceAttempt(string, string, time.Duration) {}
func (nopRecorder) Resolution(bool)                             {}

// Resolver перебирает источники строго по очереди: первый положительный курс выигрывает,
// иначе возвращается fallback с флагом Degraded. Кросс-проверки между источниками нет.
type Resolver struct {
	client  *http.Client
	sources []domain.PriceSource
	timeout time.Duration
	log     zerolog.Logger
	rec     Recorder
}

type Option func(*Resolver)

// WithTimeout задаёт таймаут одной попытки.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func WithLogger(l zerolog.Logger) Option { return func(r *Resolver) { r.log = l } }

func WithRecorder(rec Recorder) Option {
	return func(r *Resolver) {
		if rec != nil {
			r.rec = rec
		}
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) {
		if c != nil {
			r.client = c
		}
	}
}

func New(sources []domain.PriceSource, opts ...Option) *Resolver {
	r := &Resolver{
		client:  &http.Client{},
		sources: append([]domain.PriceSource(nil), sources...),
		timeout: DefaultTimeout,
		log:     zerolog.Nop(),
		rec:     nopRecorder{},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Resolver) Sources() []string {
	out := make([]string, 0, len(r.sources))
	for _, s := range r.sources {
		out = append(out, s.Name())
	}
	return out
}

// Resolve никогда не возвращает ошибку: отказы источников логируются, при полном
// исчерпании возвращается fallback (Degraded=true, LastErr оборачивает ErrAllSourcesExhausted).
func (r *Resolver) Resolve(ctx context.Context, fallback float64) domain.RateQuote {
	var lastErr error
	for _, src := range r.sources {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}
		rate, err := r.attempt(ctx, src)
		if err == nil {
			r.rec.Resolution(false)
			return domain.RateQuote{Rate: rate, Source: src.Name()}
		}
		lastErr = &domain.SourceError{Source: src.Name(), Err: err}
	}

	r.rec.Resolution(true)
	exhausted := domain.ErrAllSourcesExhausted
	if lastErr != nil {
		exhausted = fmt.Errorf("%w: %w", domain.ErrAllSourcesExhausted, lastErr)
	}
	r.log.Warn().Err(exhausted).Float64("fallback", fallback).Msg("rate unresolved, using fallback")
	return domain.RateQuote{Rate: fallback, Degraded: true, LastErr: exhausted}
}

func (r *Resolver) attempt(ctx context.Context, src domain.PriceSource) (rate float64, err error) {
	actx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	name := src.Name()
	start := time.Now()
	rate, err = safeQuote(actx, src, r.client)
	elapsed := time.Since(start)
	outcome := classify(ctx, err)
	if err == nil && (rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0)) {
		err = fmt.Errorf("%w: %v", errInvalidRate, rate)
		outcome = OutcomeInvalidRate
	}
	r.rec.SourceAttempt(name, outcome, elapsed)

	if err != nil {
		r.log.Warn().Str("source", name).Str("outcome", outcome).Dur("elapsed", elapsed).Err(err).Msg("rate source failed")
		return 0, err
	}
	r.log.Info().Str("source", name).Str("outcome", outcome).Dur("elapsed", elapsed).Float64("rate", rate).Msg("rate source ok")
	return rate, nil
}

// safeQuote: паника парсера считается обычным отказом источника.
func safeQuote(ctx context.Context, src domain.PriceSource, c *http.Client) (rate float64, err error) {
	defer func() {
		if p := recover(); p != nil {
			rate, err = 0, &parsePanic{v: p}
		}
	}()
	return src.Quote(ctx, c)
}

type parsePanic struct{ v any }

func (p *parsePanic) Error() string { return fmt.Sprintf("source panicked: %v", p.v) }

func classify(parent context.Context, err error) string {
	if err == nil {
		return OutcomeOK
	}
	if parent.Err() != nil {
		return OutcomeCancelled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return OutcomeTimeout
	}
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		return OutcomeHTTPError
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		if ue.Timeout() {
			return OutcomeTimeout
		}
		return OutcomeTransportError
	}
	return OutcomeParseError
}
