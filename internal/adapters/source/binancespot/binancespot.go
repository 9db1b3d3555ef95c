package binancespot

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	gbinance "github.com/adshao/go-binance/v2"
)

// Source — спотовая цена пары (например USDTBRL) через SDK Binance.
// Включается только если задан символ: для BOB спотовой пары нет.
type Source struct {
	client *gbinance.Client
	symbol string
}

type Option func(*gbinance.Client)

// WithBaseURL: для тестов и зеркал API.
func WithBaseURL(u string) Option { return func(c *gbinance.Client) { c.BaseURL = u } }

func New(symbol string, opts ...Option) *Source {
	client := gbinance.NewClient("", "")
	client.HTTPClient = &http.Client{Timeout: 7 * time.Second}
	for _, o := range opts {
		o(client)
	}
	return &Source{client: client, symbol: strings.ToUpper(strings.TrimSpace(symbol))}
}

func (s *Source) Name() string { return "Binance Spot " + s.symbol }

// Quote ходит через собственный клиент SDK; общий http.Client резолвера не используется.
func (s *Source) Quote(ctx context.Context, _ *http.Client) (float64, error) {
	prices, err := s.client.NewListPricesService().Symbol(s.symbol).Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("binance: цена %s: %w", s.symbol, err)
	}
	for _, p := range prices {
		if p == nil || !strings.EqualFold(p.Symbol, s.symbol) {
			continue
		}
		return strconv.ParseFloat(p.Price, 64)
	}
	return 0, fmt.Errorf("binance: нет цены для %s", s.symbol)
}
