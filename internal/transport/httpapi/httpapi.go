package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"arbicalc/internal/usecase"
	"arbicalc/internal/usecase/calculator"
	"arbicalc/internal/usecase/rates"
)

const maxBodyBytes = 1 << 20

type RateSuggester interface {
	Suggest(ctx context.Context) rates.Suggestion
}

// CalcRecorder считает расчёты по исходу (ok | invalid | invariant | error).
type CalcRecorder interface {
	Calculation(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) Calculation(string) {}

type Deps struct {
	Rates    RateSuggester
	Quotes   usecase.QuotationBuilder
	Defaults calculator.Defaults
	Log      zerolog.Logger

	Recorder CalcRecorder
	Metrics  http.Handler // nil = /metrics не публикуется

	RateLimit float64 // запросов в секунду на процесс; <= 0 = без лимита
	RateBurst int
}

type Server struct {
	addr    string
	deps    Deps
	log     zerolog.Logger
	limiter *rate.Limiter
	server  *http.Server
}

func New(addr string, d Deps) *Server {
	if d.Recorder == nil {
		d.Recorder = nopRecorder{}
	}
	s := &Server{addr: addr, deps: d, log: d.Log}
	if d.RateLimit > 0 {
		burst := d.RateBurst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(d.RateLimit), burst)
	}
	return s
}

// Handler собирает роутер с middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLog)
	r.Use(middleware.Recoverer)
	r.Use(withCORS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/defaults", s.handleDefaults)

		r.Group(func(r chi.Router) {
			r.Use(s.rateLimit)
			r.Get("/p2p-price", s.handleP2PPrice)
			r.Post("/p2p-price", s.handleP2PPrice)
			r.Post("/calculate", s.handleCalculate)
		})
	})
	if s.deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.deps.Metrics)
	}
	return r
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	s.log.Info().Str("addr", s.addr).Msg("HTTP server listening")
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
