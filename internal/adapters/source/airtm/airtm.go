package airtm

import (
	"errors"
	"regexp"
	"strconv"

	"arbicalc/internal/adapters/source/httpsource"
)

const DefaultURL = "https://rates.airtm.com/bo"

// Разметка страницы не контракт: шаблон хрупкий и живёт только здесь.
var priceRe = regexp.MustCompile(`USD.*?(\d+\.?\d*)`)

// New — источник AirTM: GET страницы курсов и извлечение первого числа после "USD".
func New(url string) *httpsource.Source {
	if url == "" {
		url = DefaultURL
	}
	return httpsource.New("AirTM", httpsource.Request{URL: url}, parse)
}

func parse(body []byte) (float64, error) {
	m := priceRe.FindSubmatch(body)
	if len(m) < 2 {
		return 0, errors.New("price pattern not found")
	}
	return strconv.ParseFloat(string(m[1]), 64)
}
