package binancep2p

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"arbicalc/internal/adapters/source/httpsource"
)

const DefaultURL = "https://p2p.binance.com/bapi/c2c/v2/friendly/c2c/adv/search"

type Config struct {
	URL       string
	Asset     string // USDT
	Fiat      string // BOB
	TradeType string // SELL
	Rows      int    // сколько объявлений запрашиваем
	AverageOf int    // по скольким первым считаем среднее
}

type searchRequest struct {
	Asset         string   `json:"asset"`
	Fiat          string   `json:"fiat"`
	TradeType     string   `json:"tradeType"`
	Page          int      `json:"page"`
	Rows          int      `json:"rows"`
	PayTypes      []string `json:"payTypes"`
	PublisherType *string  `json:"publisherType"`
}

type searchResponse struct {
	Data []struct {
		Adv *struct {
			Price string `json:"price"`
		} `json:"adv"`
	} `json:"data"`
}

// New — источник Binance P2P: POST поиска объявлений, курс = среднее первых AverageOf цен.
func New(cfg Config) (*httpsource.Source, error) {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Rows <= 0 {
		cfg.Rows = 10
	}
	if cfg.AverageOf <= 0 || cfg.AverageOf > cfg.Rows {
		cfg.AverageOf = min(5, cfg.Rows)
	}
	body, err := json.Marshal(searchRequest{
		Asset:     strings.ToUpper(cfg.Asset),
		Fiat:      strings.ToUpper(cfg.Fiat),
		TradeType: strings.ToUpper(cfg.TradeType),
		Page:      1,
		Rows:      cfg.Rows,
		PayTypes:  []string{},
	})
	if err != nil {
		return nil, fmt.Errorf("binance p2p: payload: %w", err)
	}
	req := httpsource.Request{
		Method:  http.MethodPost,
		URL:     cfg.URL,
		Body:    body,
		Headers: map[string]string{"Content-Type": "application/json"},
	}
	n := cfg.AverageOf
	return httpsource.New("Binance P2P", req, func(b []byte) (float64, error) { return parse(b, n) }), nil
}

func parse(body []byte, n int) (float64, error) {
	var raw searchResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return 0, fmt.Errorf("decode: %w", err)
	}
	var sum float64
	var cnt int
	for _, it := range raw.Data {
		if cnt == n {
			break
		}
		if it.Adv == nil {
			continue
		}
		p, err := strconv.ParseFloat(strings.TrimSpace(it.Adv.Price), 64)
		if err != nil || p <= 0 {
			continue
		}
		sum += p
		cnt++
	}
	if cnt == 0 {
		return 0, errors.New("no advertisements with a valid price")
	}
	return sum / float64(cnt), nil
}
