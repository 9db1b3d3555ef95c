package rates

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"arbicalc/internal/domain"
)

const (
	SourceCache   = "cache"
	SourceDefault = "default"
)

// Store — хранилище последнего курса (ratecache.Memory / ratecache.Redis).
type Store interface {
	Last(ctx context.Context) (domain.LastRate, bool, error)
	Remember(ctx context.Context, r domain.LastRate) error
}

type RateResolver interface {
	Resolve(ctx context.Context, fallback float64) domain.RateQuote
}

// Suggestion — курс для предзаполнения формы.
// Price — курс источника (или fallback), Suggested — Price минус маржа, округлённый до сотых.
type Suggestion struct {
	Price     float64
	Suggested float64
	Source    string
	Degraded  bool
	Err       error
}

type Service struct {
	res    RateResolver
	store  Store
	def    float64
	margin decimal.Decimal
	log    zerolog.Logger
	now    func() time.Time
}

type Option func(*Service)

func WithMargin(m float64) Option {
	return func(s *Service) {
		if m > 0 {
			s.margin = decimal.NewFromFloat(m)
		}
	}
}

func WithLogger(l zerolog.Logger) Option    { return func(s *Service) { s.log = l } }
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func New(res RateResolver, store Store, defaultRate float64, opts ...Option) *Service {
	s := &Service{
		res:    res,
		store:  store,
		def:    defaultRate,
		margin: decimal.Zero,
		log:    zerolog.Nop(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Suggest: fallback берётся из кэша, иначе дефолт из конфига.
// Ошибки хранилища только логируются: подсказка курса не должна падать из-за кэша.
func (s *Service) Suggest(ctx context.Context) Suggestion {
	fallback, fbSource := s.fallback(ctx)

	q := s.res.Resolve(ctx, fallback)
	out := Suggestion{
		Price:    q.Rate,
		Source:   q.Source,
		Degraded: q.Degraded,
		Err:      q.LastErr,
	}
	if q.Degraded {
		out.Source = fbSource
	} else {
		lr := domain.LastRate{Rate: q.Rate, Source: q.Source, At: s.now()}
		if err := s.store.Remember(ctx, lr); err != nil {
			s.log.Warn().Err(err).Msg("rate cache: remember failed")
		}
	}
	out.Suggested = s.suggested(out.Price)
	return out
}

func (s *Service) fallback(ctx context.Context) (float64, string) {
	lr, ok, err := s.store.Last(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("rate cache: read failed")
	}
	if ok && lr.Rate > 0 {
		return lr.Rate, SourceCache
	}
	return s.def, SourceDefault
}

// suggested = rate − margin; если результат <= 0, маржа не применяется.
func (s *Service) suggested(rate float64) float64 {
	r := decimal.NewFromFloat(rate)
	v := r.Sub(s.margin)
	if !v.IsPositive() {
		v = r
	}
	return v.Round(2).InexactFloat64()
}
