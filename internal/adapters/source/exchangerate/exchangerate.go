package exchangerate

import (
	"encoding/json"
	"fmt"
	"strings"

	"arbicalc/internal/adapters/source/httpsource"
)

const DefaultURL = "https://api.exchangerate-api.com/v4/latest/USD"

// New — резервный источник: официальная таблица курсов USD, берём rates[fiat].
func New(url, fiat string) *httpsource.Source {
	if url == "" {
		url = DefaultURL
	}
	fiat = strings.ToUpper(strings.TrimSpace(fiat))
	return httpsource.New("ExchangeRate-API", httpsource.Request{URL: url}, func(b []byte) (float64, error) {
		var raw struct {
			Rates map[string]float64 `json:"rates"`
		}
		if err := json.Unmarshal(b, &raw); err != nil {
			return 0, fmt.Errorf("decode: %w", err)
		}
		v, ok := raw.Rates[fiat]
		if !ok {
			return 0, fmt.Errorf("no rate for %s", fiat)
		}
		return v, nil
	})
}
